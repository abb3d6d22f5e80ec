package goext2

import (
	"fmt"
	"syscall"

	"github.com/aligator/goext2/checkpoint"
)

// dirIterator walks the entries of the first data block of a directory.
// It never reads behind the end of that block.
// Usage:
//  it, err := newDirIterator(image, dir)
//  for it.Next() {
//  	entry := it.Entry()
//  }
//  err = it.Err()
type dirIterator struct {
	image []byte

	offset int64
	end    int64

	entry DirEntry
	err   error
}

func newDirIterator(image []byte, dir Inode) (*dirIterator, error) {
	if !dir.IsDir() {
		return nil, checkpoint.Wrap(syscall.ENOTDIR, fmt.Errorf("%w, mode %#o", ErrNotADirectory, dir.Mode))
	}

	// Block 0 holds the boot record and the superblock, never directory entries.
	if dir.Block[0] == 0 {
		return nil, checkpoint.Wrap(syscall.EIO, fmt.Errorf("%w, directory without data block", ErrCorruptImage))
	}

	data, err := block(image, dir.Block[0])
	if err != nil {
		return nil, err
	}

	start, err := BlockOffset(image, dir.Block[0])
	if err != nil {
		return nil, err
	}

	return &dirIterator{
		image:  image,
		offset: start,
		end:    start + int64(len(data)),
	}, nil
}

// Next advances to the next used entry. Unused slots (inode 0) are skipped.
// It returns false at the end of the block or on the first error.
func (it *dirIterator) Next() bool {
	for it.err == nil && it.offset < it.end {
		if it.end-it.offset < dirEntryHeaderSize {
			it.err = checkpoint.Wrap(syscall.EIO, fmt.Errorf("%w, truncated directory entry at offset %v", ErrCorruptImage, it.offset))
			return false
		}

		entry, err := ReadDirEntry(it.image[:it.end], it.offset)
		if err != nil {
			it.err = err
			return false
		}

		if int64(entry.RecLen) < dirEntryHeaderSize+int64(entry.NameLen) || it.offset+int64(entry.RecLen) > it.end {
			it.err = checkpoint.Wrap(syscall.EIO, fmt.Errorf("%w, invalid record length %v at offset %v", ErrCorruptImage, entry.RecLen, it.offset))
			return false
		}

		it.offset += int64(entry.RecLen)

		if entry.Inode == 0 {
			continue
		}

		it.entry = entry
		return true
	}

	return false
}

func (it *dirIterator) Entry() DirEntry {
	return it.entry
}

func (it *dirIterator) Err() error {
	return it.err
}

// FindChild returns the inode number of the entry called name in the directory dir.
// The name has to match completely, a prefix is not enough.
// Only the first data block of the directory is searched.
func FindChild(image []byte, dir Inode, name string) (uint32, error) {
	it, err := newDirIterator(image, dir)
	if err != nil {
		return 0, err
	}

	for it.Next() {
		entry := it.Entry()
		if entry.Name == name {
			return entry.Inode, nil
		}
	}

	if it.Err() != nil {
		return 0, it.Err()
	}

	return 0, checkpoint.Wrap(syscall.ENOENT, fmt.Errorf("%w: %q", ErrNotFound, name))
}

// ReadDir returns all used entries of the first data block of the directory, including "." and "..".
func ReadDir(image []byte, dir Inode) ([]DirEntry, error) {
	it, err := newDirIterator(image, dir)
	if err != nil {
		return nil, err
	}

	var entries []DirEntry
	for it.Next() {
		entries = append(entries, it.Entry())
	}

	return entries, it.Err()
}
