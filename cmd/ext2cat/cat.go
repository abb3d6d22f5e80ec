package main

import (
	"fmt"
	"io"
	"time"

	"github.com/aligator/goext2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

type outputMode int

const (
	// modeContent copies the file content.
	modeContent outputMode = iota
	// modeInode prints the inode number.
	modeInode
	// modeList prints one line per directory entry.
	modeList
	// modeStat prints the filesystem and inode details as YAML.
	modeStat
)

type statFilesystem struct {
	Label       string `yaml:"label"`
	UUID        string `yaml:"uuid"`
	BlockSize   uint32 `yaml:"blockSize"`
	BlocksCount uint32 `yaml:"blocksCount"`
	InodesCount uint32 `yaml:"inodesCount"`
	Revision    uint32 `yaml:"revision"`
}

type statInode struct {
	Number uint32   `yaml:"number"`
	Mode   string   `yaml:"mode"`
	Size   int64    `yaml:"size"`
	Links  uint16   `yaml:"links"`
	UID    uint16   `yaml:"uid"`
	GID    uint16   `yaml:"gid"`
	MTime  string   `yaml:"mtime"`
	Blocks []uint32 `yaml:"blocks,flow"`
}

type statOutput struct {
	Filesystem statFilesystem `yaml:"filesystem"`
	Inode      statInode      `yaml:"inode"`
}

// run resolves path inside of the ext2 image and writes the result selected by mode to w.
func run(w io.Writer, image []byte, path string, mode outputMode) error {
	fs, err := goext2.New(image)
	if err != nil {
		return err
	}

	log.WithField("label", fs.Label()).
		WithField("uuid", fs.UUID()).
		WithField("blocks", fs.Superblock().BlocksCount).
		Debug("opened filesystem")

	switch mode {
	case modeStat:
		return writeStat(w, fs, path)

	case modeInode:
		ino, err := fs.Lookup(path)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, ino)
		return err

	case modeList:
		infos, err := afero.ReadDir(fs, path)
		if err != nil {
			return err
		}
		for _, info := range infos {
			if _, err := fmt.Fprintf(w, "%v %8d %v %v\n", info.Mode(), info.Size(), info.ModTime().Format(time.RFC3339), info.Name()); err != nil {
				return err
			}
		}
		return nil

	default:
		file, err := fs.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		log.WithField("path", path).
			WithField("inode", file.(*goext2.File).Ino()).
			Debug("resolved path")

		n, err := io.Copy(w, file)
		if err != nil {
			return fmt.Errorf("copying %q: %w", path, err)
		}

		log.WithField("bytes", n).Debug("copied file")
		return nil
	}
}

func writeStat(w io.Writer, fs *goext2.Fs, path string) error {
	ino, err := fs.Lookup(path)
	if err != nil {
		return err
	}

	info, err := fs.Stat(path)
	if err != nil {
		return err
	}
	inode := info.Sys().(goext2.Inode)

	sb := fs.Superblock()
	out := statOutput{
		Filesystem: statFilesystem{
			Label:       fs.Label(),
			UUID:        fs.UUID().String(),
			BlockSize:   1024 << sb.LogBlockSize,
			BlocksCount: sb.BlocksCount,
			InodesCount: sb.InodesCount,
			Revision:    sb.RevLevel,
		},
		Inode: statInode{
			Number: ino,
			Mode:   info.Mode().String(),
			Size:   info.Size(),
			Links:  inode.LinksCount,
			UID:    inode.UID,
			GID:    inode.GID,
			MTime:  info.ModTime().Format(time.RFC3339),
			Blocks: directBlocks(inode),
		},
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling stat to YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// directBlocks returns the used direct block pointers.
func directBlocks(inode goext2.Inode) []uint32 {
	blocks := []uint32{}
	for _, block := range inode.Block[:goext2.DirectBlocks] {
		if block != 0 {
			blocks = append(blocks, block)
		}
	}
	return blocks
}
