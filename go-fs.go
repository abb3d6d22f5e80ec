package goext2

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
)

type GoDirEntry struct {
	fs.FileInfo
}

func (g GoDirEntry) Type() fs.FileMode {
	return g.FileInfo.Mode().Type()
}

func (g GoDirEntry) Info() (fs.FileInfo, error) {
	return g.FileInfo, nil
}

type GoFile struct {
	*File
}

func (g GoFile) Stat() (fs.FileInfo, error) {
	return g.File.Stat()
}

func (g GoFile) Read(bytes []byte) (int, error) {
	return g.File.Read(bytes)
}

func (g GoFile) Close() error {
	return g.File.Close()
}

// ReadDir follows the fs.ReadDirFile contract, which differs from afero.File.Readdir
// only in the returned type.
func (g GoFile) ReadDir(n int) ([]fs.DirEntry, error) {
	entries, err := g.File.Readdir(n)

	goEntries := make([]fs.DirEntry, len(entries))
	for i, e := range entries {
		goEntries[i] = GoDirEntry{e}
	}

	return goEntries, err
}

// NewIOFS opens an ext2 filesystem from the given image as fs.FS compatible filesystem using afero.IOFS.
func NewIOFS(image []byte) (afero.IOFS, error) {
	fs, err := New(image)
	if err != nil {
		return afero.IOFS{}, err
	}

	return afero.NewIOFS(fs), nil
}

// NewIOFSSkipChecks is NewIOFS without the superblock validation. See NewSkipChecks.
func NewIOFSSkipChecks(image []byte) (afero.IOFS, error) {
	fs, err := NewSkipChecks(image)
	if err != nil {
		return afero.IOFS{}, err
	}

	return afero.NewIOFS(fs), nil
}

// GoFs just wraps the afero ext2 implementation to be compatible with fs.FS.
// afero.IOFS may be used instead.
type GoFs struct {
	Fs
}

// NewGoFS opens an ext2 filesystem from the given image as fs.FS compatible filesystem.
func NewGoFS(image []byte) (*GoFs, error) {
	fs, err := New(image)
	if err != nil {
		return nil, err
	}

	return &GoFs{*fs}, nil
}

// NewGoFSSkipChecks opens an ext2 filesystem from the given image as fs.FS compatible filesystem just like NewGoFS but
// it skips the superblock validation which may allow you to open not perfectly standard images.
// Use with caution!
func NewGoFSSkipChecks(image []byte) (*GoFs, error) {
	fs, err := NewSkipChecks(image)
	if err != nil {
		return nil, err
	}

	return &GoFs{*fs}, nil
}

func (g GoFs) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	file, err := g.Fs.Open(name)
	if err != nil {
		return nil, err
	}

	f, ok := file.(*File)
	if !ok {
		return nil, errors.New("invalid File implementation")
	}

	return GoFile{f}, nil
}
