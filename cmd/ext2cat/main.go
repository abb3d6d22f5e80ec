// Command ext2cat prints a file of an ext2 image without mounting it.
//
//  ext2cat [--mmap] [--inode|--list|--stat] [--verbose] IMAGE PATH
//
// The image may also be given by EXT2CAT_IMAGE, in which case PATH is the only argument.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

func main() {
	log.SetOutput(os.Stderr)

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cfg, afero.NewOsFs(), os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(cfg *Config, osFs afero.Fs, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "ext2cat",
		Usage:     "print a file of an ext2 image",
		ArgsUsage: "IMAGE PATH",
		Writer:    out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "mmap",
				Usage: "map the image into memory instead of reading it",
				Value: cfg.Mmap,
			},
			&cli.BoolFlag{
				Name:  "inode",
				Usage: "print the inode number instead of the content",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "list the directory instead of printing a file",
			},
			&cli.BoolFlag{
				Name:  "stat",
				Usage: "print the filesystem and inode details as YAML",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log what is going on to stderr",
				Value:   cfg.Verbose,
			},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("verbose") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Action: func(ctx *cli.Context) error {
			imageName, path, err := arguments(ctx.Args().Slice(), cfg.Image)
			if err != nil {
				return err
			}

			mode, err := outputModeOf(ctx.Bool("inode"), ctx.Bool("list"), ctx.Bool("stat"))
			if err != nil {
				return err
			}

			image, release, err := loadImage(osFs, imageName, ctx.Bool("mmap"))
			if err != nil {
				return err
			}
			defer func() {
				if err := release(); err != nil {
					log.WithError(err).Warn("releasing image")
				}
			}()

			return run(ctx.App.Writer, image, path, mode)
		},
	}
}

func outputModeOf(inode, list, stat bool) (outputMode, error) {
	mode := modeContent
	selected := 0
	for _, flag := range []struct {
		set  bool
		mode outputMode
	}{
		{inode, modeInode},
		{list, modeList},
		{stat, modeStat},
	} {
		if flag.set {
			mode = flag.mode
			selected++
		}
	}

	if selected > 1 {
		return modeContent, errors.New("only one of --inode, --list and --stat may be set")
	}
	return mode, nil
}

// arguments returns the image and the path inside of it.
// The image argument may be omitted if defaultImage is set.
func arguments(args []string, defaultImage string) (string, string, error) {
	switch {
	case len(args) == 2:
		return args[0], args[1], nil
	case len(args) == 1 && defaultImage != "":
		return defaultImage, args[0], nil
	default:
		return "", "", fmt.Errorf("expected IMAGE PATH, got %v arguments", len(args))
	}
}
