package goext2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"syscall"

	"github.com/aligator/goext2/checkpoint"
)

var (
	superblockSize = binary.Size(Superblock{})
	inodeSize      = binary.Size(Inode{})
)

// decode reads the struct data from image at offset.
// Only the bytes of data are read, the rest of the image is ignored.
func decode(image []byte, offset int64, data interface{}) error {
	size := int64(binary.Size(data))
	if offset < 0 || offset+size > int64(len(image)) {
		return checkpoint.Wrap(syscall.EIO, fmt.Errorf("%w, reading %v bytes at offset %v of a %v byte image", ErrCorruptImage, size, offset, len(image)))
	}

	err := binary.Read(bytes.NewReader(image[offset:offset+size]), binary.LittleEndian, data)
	return checkpoint.From(err)
}

// ReadSuperblock decodes the primary superblock of the image.
// It does not validate anything, see New for that.
func ReadSuperblock(image []byte) (Superblock, error) {
	var sb Superblock
	err := decode(image, SuperblockOffset, &sb)
	return sb, err
}

// ReadGroupDescriptor decodes the first block group descriptor.
// It lives in the block directly after the block containing the superblock.
// Only filesystems with exactly one block group are supported, so this is always the only one.
func ReadGroupDescriptor(image []byte) (GroupDescriptor, error) {
	sb, err := ReadSuperblock(image)
	if err != nil {
		return GroupDescriptor{}, err
	}

	offset, err := BlockOffset(image, sb.FirstDataBlock+1)
	if err != nil {
		return GroupDescriptor{}, err
	}

	var gd GroupDescriptor
	err = decode(image, offset, &gd)
	return gd, err
}

// ReadInode decodes the inode with the given number.
func ReadInode(image []byte, ino uint32) (Inode, error) {
	return ResolveInode(image, ino)
}

// ReadDirEntry decodes the directory entry starting at the byte offset of the image.
// It checks that the name fits into the image, but not that the entry fits into its block.
func ReadDirEntry(image []byte, offset int64) (DirEntry, error) {
	var entry DirEntry
	if err := decode(image, offset, &entry.DirEntryHeader); err != nil {
		return DirEntry{}, err
	}

	nameStart := offset + dirEntryHeaderSize
	nameEnd := nameStart + int64(entry.NameLen)
	if nameEnd > int64(len(image)) {
		return DirEntry{}, checkpoint.Wrap(syscall.EIO, fmt.Errorf("%w, directory entry name at offset %v exceeds the image", ErrCorruptImage, nameStart))
	}

	entry.Name = string(image[nameStart:nameEnd])
	return entry, nil
}
