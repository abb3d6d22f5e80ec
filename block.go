package goext2

import (
	"fmt"
	"syscall"

	"github.com/aligator/goext2/checkpoint"
)

// BlockSize returns the block size of the filesystem, 1024 << Superblock.LogBlockSize.
func BlockSize(image []byte) (uint32, error) {
	sb, err := ReadSuperblock(image)
	if err != nil {
		return 0, err
	}
	return sb.blockSize()
}

func (sb Superblock) blockSize() (uint32, error) {
	// ext2 blocks are at most 64 KiB.
	if sb.LogBlockSize > maxLogBlockSize {
		return 0, checkpoint.Wrap(syscall.EIO, fmt.Errorf("%w, invalid block size exponent %v", ErrCorruptImage, sb.LogBlockSize))
	}
	return minBlockSize << sb.LogBlockSize, nil
}

// BlockOffset returns the byte offset of the block in the image.
// Block 0 starts at the beginning of the image.
func BlockOffset(image []byte, block uint32) (int64, error) {
	size, err := BlockSize(image)
	if err != nil {
		return 0, err
	}
	return int64(block) * int64(size), nil
}

// block returns the whole block. The slice shares memory with the image and must not be modified.
func block(image []byte, block uint32) ([]byte, error) {
	size, err := BlockSize(image)
	if err != nil {
		return nil, err
	}

	start := int64(block) * int64(size)
	end := start + int64(size)
	if end > int64(len(image)) {
		return nil, checkpoint.Wrap(syscall.EIO, fmt.Errorf("%w, block %v ends at %v behind the image end %v", ErrCorruptImage, block, end, len(image)))
	}

	return image[start:end:end], nil
}
