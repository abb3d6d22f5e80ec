package goext2

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/aligator/goext2/checkpoint"
	"github.com/spf13/afero"
)

// These errors may occur while processing a file.
var (
	ErrReadFile = errors.New("could not read file completely")
	ErrSeekFile = errors.New("could not seek inside of the file")
	ErrReadDir  = errors.New("could not read the directory")
)

// ext2FileFs provides all methods needed from an ext2 filesystem for File.
// It mainly exists to be able to mock the Fs in tests.
// Generated mock using mockgen:
//  mockgen -source=file.go -destination=file_mock_test.go -package goext2
type ext2FileFs interface {
	readFileAt(inode Inode, offset int64, readSize int64) ([]byte, error)
	readDir(inode Inode) ([]DirEntry, error)
	readInode(ino uint32) (Inode, error)
}

// File is an opened file or directory of a Fs. It implements afero.File.
// All write operations fail with syscall.EROFS.
type File struct {
	fs   ext2FileFs
	path string

	ino    uint32
	inode  Inode
	stat   os.FileInfo
	offset int64
}

var _ afero.File = (*File)(nil)

// Ino returns the inode number of the file.
func (f *File) Ino() uint32 {
	return f.ino
}

func (f *File) Close() error {
	f.fs = nil
	f.path = ""
	f.ino = 0
	f.inode = Inode{}
	f.stat = nil
	f.offset = 0

	return nil
}

func (f *File) Read(p []byte) (n int, err error) {
	if p == nil {
		return 0, nil
	}

	if err := f.checkReadable(); err != nil {
		return 0, err
	}

	// Reading a file if the size has been already reached, makes no sense.
	if f.stat.Size() <= f.offset {
		return 0, io.EOF
	}

	data, err := f.fs.readFileAt(f.inode, f.offset, int64(len(p)))
	copy(p, data)

	// Seek even if an error occurred, errors from reading are used even if seek also errors.
	_, seekErr := f.Seek(int64(len(data)), io.SeekCurrent)

	if err != nil {
		return len(data), checkpoint.Wrap(err, ErrReadFile)
	}

	if seekErr != nil {
		return len(data), checkpoint.Wrap(seekErr, ErrReadFile)
	}

	return len(data), nil
}

func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if p == nil {
		return 0, nil
	}

	if err := f.checkReadable(); err != nil {
		return 0, err
	}

	if off < 0 {
		return 0, checkpoint.Wrap(afero.ErrOutOfRange, fmt.Errorf("%w, offset: %v", ErrReadFile, off))
	}

	// Reading over the end makes no sense.
	if f.stat.Size() <= off {
		return 0, io.EOF
	}

	data, err := f.fs.readFileAt(f.inode, off, int64(len(p)))
	copy(p, data)

	if err != nil {
		return len(data), checkpoint.Wrap(err, ErrReadFile)
	}

	// ReadAt must not return less than len(p) without an error.
	if len(data) < len(p) {
		return len(data), io.EOF
	}

	return len(data), nil
}

// Seek jumps to a specific offset in the file. This affects all Read operation except ReadAt.
// For directories the offset counts entries used by Readdir, so io.SeekEnd is relative to the number of entries.
// May return a syscall.EINVAL error if the whence value is invalid.
// May return an afero.ErrOutOfRange error if the offset is out of range.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = f.offset + offset
	case io.SeekEnd:
		end := f.stat.Size()
		if f.inode.IsDir() {
			content, err := f.dirContent()
			if err != nil {
				return 0, checkpoint.Wrap(err, ErrSeekFile)
			}
			end = int64(len(content))
		}
		offset = end + offset
	default:
		return 0, checkpoint.Wrap(ErrSeekFile, fmt.Errorf("%w, offset: %v, whence: %v", syscall.EINVAL, offset, whence))
	}

	if offset < 0 || (!f.inode.IsDir() && offset > f.stat.Size()) {
		return 0, checkpoint.Wrap(afero.ErrOutOfRange, fmt.Errorf("%w, offset: %v, whence: %v", ErrSeekFile, offset, whence))
	}

	f.offset = offset
	return offset, nil
}

func (f *File) Write(p []byte) (n int, err error) {
	return 0, readOnly("write", f.path)
}

func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, readOnly("write", f.path)
}

func (f *File) Name() string {
	return f.stat.Name()
}

// Readdir reads the contents of a directory.
// The entries "." and ".." are not included.
// May return syscall.ENOTDIR if the current File is no directory.
func (f *File) Readdir(count int) ([]os.FileInfo, error) {
	if !f.inode.IsDir() {
		return nil, checkpoint.Wrap(syscall.ENOTDIR, ErrReadDir)
	}

	content, err := f.dirContent()
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadDir)
	}

	start := int(f.offset)
	if start > len(content) {
		start = len(content)
	}

	if count > 0 && start == len(content) {
		return nil, io.EOF
	}

	end := len(content)
	if count > 0 && start+count < end {
		end = start + count
	}

	f.offset = int64(end)

	result := make([]os.FileInfo, 0, end-start)
	for _, entry := range content[start:end] {
		info, err := f.entryInfo(entry)
		if err != nil {
			return result, checkpoint.Wrap(err, ErrReadDir)
		}
		result = append(result, info)
	}

	return result, nil
}

// dirContent returns the directory entries without "." and "..".
func (f *File) dirContent() ([]DirEntry, error) {
	entries, err := f.fs.readDir(f.inode)
	if err != nil {
		return nil, err
	}

	content := make([]DirEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "." || entry.Name == ".." {
			continue
		}
		content = append(content, entry)
	}
	return content, nil
}

// checkReadable rejects everything but regular files.
// Symlinks may keep their target inside of the block pointers, so they are not read as data either.
func (f *File) checkReadable() error {
	if f.inode.IsDir() {
		return checkpoint.Wrap(syscall.EISDIR, ErrReadFile)
	}
	if !f.inode.IsRegular() {
		return checkpoint.Wrap(syscall.EINVAL, fmt.Errorf("%w, mode: %#o", ErrReadFile, f.inode.Mode))
	}
	return nil
}

func (f *File) entryInfo(entry DirEntry) (os.FileInfo, error) {
	inode, err := f.fs.readInode(entry.Inode)
	if err != nil {
		return nil, err
	}
	return inode.FileInfo(entry.Name), nil
}

func (f *File) Readdirnames(count int) ([]string, error) {
	content, err := f.Readdir(count)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadDir)
	}

	names := make([]string, len(content))
	for i, entry := range content {
		names[i] = entry.Name()
	}

	return names, nil
}

func (f *File) Stat() (os.FileInfo, error) {
	return f.stat, nil
}

func (f *File) Sync() error {
	return readOnly("sync", f.path)
}

func (f *File) Truncate(size int64) error {
	return readOnly("truncate", f.path)
}

func (f *File) WriteString(s string) (ret int, err error) {
	return f.Write([]byte(s))
}
