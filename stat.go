package goext2

import (
	"os"
	"time"
)

// FileInfo returns the inode as os.FileInfo with the given name.
// The name is not part of the inode, it comes from the directory entry which led to it.
func (i Inode) FileInfo(name string) os.FileInfo {
	return inodeFileInfo{name: name, inode: i}
}

type inodeFileInfo struct {
	name  string
	inode Inode
}

func (e inodeFileInfo) Name() string {
	return e.name
}

func (e inodeFileInfo) Size() int64 {
	return e.inode.Size()
}

func (e inodeFileInfo) Mode() os.FileMode {
	mode := os.FileMode(e.inode.Mode & ModePerm)

	switch e.inode.Mode & ModeTypeMask {
	case ModeDirectory:
		mode |= os.ModeDir
	case ModeSymlink:
		mode |= os.ModeSymlink
	case ModeBlockDev:
		mode |= os.ModeDevice
	case ModeCharDev:
		mode |= os.ModeDevice | os.ModeCharDevice
	case ModeFifo:
		mode |= os.ModeNamedPipe
	case ModeSocket:
		mode |= os.ModeSocket
	}

	if e.inode.Mode&ModeSetuid != 0 {
		mode |= os.ModeSetuid
	}
	if e.inode.Mode&ModeSetgid != 0 {
		mode |= os.ModeSetgid
	}
	if e.inode.Mode&ModeSticky != 0 {
		mode |= os.ModeSticky
	}

	return mode
}

func (e inodeFileInfo) ModTime() time.Time {
	return ParseTimestamp(e.inode.MTime)
}

func (e inodeFileInfo) IsDir() bool {
	return e.inode.IsDir()
}

func (e inodeFileInfo) Sys() interface{} {
	return e.inode
}
