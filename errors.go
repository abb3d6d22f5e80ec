package goext2

import "errors"

// These errors may occur while resolving paths and inodes.
// They are wrapped together with a matching syscall.Errno, so both
//  errors.Is(err, ErrNotFound)
// and
//  errors.Is(err, fs.ErrNotExist)
// work for a missing path.
var (
	ErrNotFound      = errors.New("no such file or directory")
	ErrNotADirectory = errors.New("not a directory")
	ErrInvalidInode  = errors.New("invalid inode number")
	ErrCorruptImage  = errors.New("corrupt ext2 image")
	ErrBeyondDirect  = errors.New("file data beyond the direct blocks is not supported")
	ErrNoExt2        = errors.New("not a supported ext2 filesystem")
)
