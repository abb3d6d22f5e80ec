package goext2

import (
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/aligator/goext2/checkpoint"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Fs is a read-only afero.Fs on top of an ext2 image held in memory.
// The image is never modified, so a Fs can be used by many goroutines at once.
type Fs struct {
	image []byte
	sb    Superblock
}

// New opens the ext2 filesystem contained in image.
// It checks the superblock for plausible values first.
func New(image []byte) (*Fs, error) {
	fs, err := NewSkipChecks(image)
	if err != nil {
		return nil, err
	}

	if err := fs.check(); err != nil {
		return nil, err
	}

	return fs, nil
}

// NewSkipChecks opens the ext2 filesystem contained in image just like New but
// it skips the superblock validation which may allow you to open not perfectly standard images.
// Use with caution!
func NewSkipChecks(image []byte) (*Fs, error) {
	sb, err := ReadSuperblock(image)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrNoExt2)
	}

	return &Fs{
		image: image,
		sb:    sb,
	}, nil
}

func (fs *Fs) check() error {
	if fs.sb.Magic != Magic {
		return checkpoint.From(fmt.Errorf("%w, invalid magic %#x", ErrNoExt2, fs.sb.Magic))
	}

	if _, err := fs.sb.blockSize(); err != nil {
		return checkpoint.Wrap(err, ErrNoExt2)
	}

	if fs.sb.InodesCount == 0 || fs.sb.InodesPerGroup == 0 {
		return checkpoint.From(fmt.Errorf("%w, no inodes", ErrNoExt2))
	}

	if _, err := fs.sb.inodeSlotSize(); err != nil {
		return checkpoint.Wrap(err, ErrNoExt2)
	}

	if _, err := ReadGroupDescriptor(fs.image); err != nil {
		return checkpoint.Wrap(err, ErrNoExt2)
	}

	return nil
}

// Superblock returns the decoded primary superblock.
func (fs *Fs) Superblock() Superblock {
	return fs.sb
}

// Label returns the volume name.
func (fs *Fs) Label() string {
	return strings.TrimRight(string(fs.sb.VolumeName[:]), "\x00")
}

// UUID returns the filesystem UUID.
func (fs *Fs) UUID() uuid.UUID {
	return uuid.UUID(fs.sb.UUID)
}

// Lookup returns the inode number of the given path. See ResolvePath.
func (fs *Fs) Lookup(path string) (uint32, error) {
	return ResolvePath(fs.image, path)
}

func (fs *Fs) lookup(path string) (uint32, Inode, error) {
	ino, err := ResolvePath(fs.image, path)
	if err != nil {
		return 0, Inode{}, err
	}

	inode, err := ResolveInode(fs.image, ino)
	if err != nil {
		return 0, Inode{}, err
	}

	return ino, inode, nil
}

// readFileAt reads up to readSize bytes of the file content starting at offset.
// Returns io.EOF together with the data if the end of the file is reached.
func (fs *Fs) readFileAt(inode Inode, offset int64, readSize int64) ([]byte, error) {
	if offset < 0 {
		return nil, checkpoint.Wrap(afero.ErrOutOfRange, fmt.Errorf("%w, offset: %v", ErrReadFile, offset))
	}

	fileSize := inode.Size()
	if offset >= fileSize {
		return nil, io.EOF
	}

	end := offset + readSize
	var eof error
	if end > fileSize {
		end = fileSize
		eof = io.EOF
	}

	blockSize, err := fs.sb.blockSize()
	if err != nil {
		return nil, err
	}
	size := int64(blockSize)

	result := make([]byte, 0, end-offset)
	for pos := offset; pos < end; {
		index := pos / size
		if index >= DirectBlocks {
			return result, checkpoint.Wrap(syscall.EFBIG, fmt.Errorf("%w, offset %v", ErrBeyondDirect, pos))
		}

		inBlock := pos % size
		n := size - inBlock
		if end-pos < n {
			n = end - pos
		}

		if inode.Block[index] == 0 {
			// Sparse file, holes read as zeros.
			result = append(result, make([]byte, n)...)
		} else {
			data, err := block(fs.image, inode.Block[index])
			if err != nil {
				return result, err
			}
			result = append(result, data[inBlock:inBlock+n]...)
		}

		pos += n
	}

	return result, eof
}

func (fs *Fs) readDir(inode Inode) ([]DirEntry, error) {
	return ReadDir(fs.image, inode)
}

func (fs *Fs) readInode(ino uint32) (Inode, error) {
	return ResolveInode(fs.image, ino)
}

func readOnly(op, name string) error {
	return &os.PathError{Op: op, Path: name, Err: syscall.EROFS}
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, readOnly("create", name)
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return readOnly("mkdir", name)
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return readOnly("mkdir", path)
}

// Open opens the file or directory at path.
// Paths are always relative to the root, so "a/b", "/a/b" and "/a/b/" are the same.
func (fs *Fs) Open(path string) (afero.File, error) {
	ino, inode, err := fs.lookup(path)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}

	return &File{
		fs:    fs,
		path:  path,
		ino:   ino,
		inode: inode,
		stat:  inode.FileInfo(baseName(path)),
	}, nil
}

// OpenFile only supports opening for reading. Any flag which could modify the filesystem results in syscall.EROFS.
func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, readOnly("open", name)
	}
	return fs.Open(name)
}

func (fs *Fs) Remove(name string) error {
	return readOnly("remove", name)
}

func (fs *Fs) RemoveAll(path string) error {
	return readOnly("remove", path)
}

func (fs *Fs) Rename(oldname, newname string) error {
	return readOnly("rename", oldname)
}

func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	_, inode, err := fs.lookup(name)
	if err != nil {
		return nil, &os.PathError{Op: "stat", Path: name, Err: err}
	}

	return inode.FileInfo(baseName(name)), nil
}

func (fs *Fs) Name() string {
	return "ext2"
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return readOnly("chmod", name)
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return readOnly("chown", name)
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return readOnly("chtimes", name)
}

// baseName returns the last path component or "/" for the root.
func baseName(path string) string {
	components := SplitPath(path)
	if len(components) == 0 {
		return "/"
	}
	return components[len(components)-1]
}
