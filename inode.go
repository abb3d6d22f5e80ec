package goext2

import (
	"fmt"
	"syscall"

	"github.com/aligator/goext2/checkpoint"
)

// ResolveInode locates the inode table through the block group descriptor and
// decodes slot ino-1 of it.
// Returns ErrInvalidInode if ino is 0, bigger than the inode count or outside of the first block group.
func ResolveInode(image []byte, ino uint32) (Inode, error) {
	sb, err := ReadSuperblock(image)
	if err != nil {
		return Inode{}, err
	}

	if err := sb.checkIno(ino); err != nil {
		return Inode{}, err
	}

	gd, err := ReadGroupDescriptor(image)
	if err != nil {
		return Inode{}, err
	}

	table, err := BlockOffset(image, gd.InodeTable)
	if err != nil {
		return Inode{}, err
	}

	slotSize, err := sb.inodeSlotSize()
	if err != nil {
		return Inode{}, err
	}

	var inode Inode
	err = decode(image, table+int64(ino-1)*int64(slotSize), &inode)
	if err != nil {
		return Inode{}, checkpoint.Wrap(err, fmt.Errorf("reading inode %v", ino))
	}
	return inode, nil
}

func (sb Superblock) checkIno(ino uint32) error {
	limit := sb.InodesCount
	if sb.InodesPerGroup != 0 && sb.InodesPerGroup < limit {
		limit = sb.InodesPerGroup
	}

	if ino < 1 || ino > limit {
		return checkpoint.Wrap(syscall.EINVAL, fmt.Errorf("%w %v, valid are 1 to %v", ErrInvalidInode, ino, limit))
	}
	return nil
}

// inodeSlotSize is the distance between two inodes in the inode table.
func (sb Superblock) inodeSlotSize() (uint16, error) {
	if sb.RevLevel == RevGoodOld {
		return goodOldInodeSize, nil
	}

	if int(sb.InodeSize) < inodeSize {
		return 0, checkpoint.Wrap(syscall.EIO, fmt.Errorf("%w, inode size %v is smaller than %v", ErrCorruptImage, sb.InodeSize, inodeSize))
	}
	return sb.InodeSize, nil
}

// IsDir reports whether the inode is a directory.
func (i Inode) IsDir() bool {
	return i.Mode&ModeTypeMask == ModeDirectory
}

// IsRegular reports whether the inode is a regular file.
func (i Inode) IsRegular() bool {
	return i.Mode&ModeTypeMask == ModeRegular
}

// Size returns the size of the file in bytes.
// SizeHigh only counts for regular files, directories use it as dir_acl.
func (i Inode) Size() int64 {
	size := int64(i.SizeLow)
	if i.IsRegular() {
		size |= int64(i.SizeHigh) << 32
	}
	return size
}
