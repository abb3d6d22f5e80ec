package goext2

import (
	"encoding/binary"
	"errors"
	"syscall"
	"testing"

	"github.com/aligator/goext2/internal/testimage"
)

func TestReadSuperblock(t *testing.T) {
	tests := []struct {
		name               string
		opts               testimage.Options
		wantFirstDataBlock uint32
		wantLogBlockSize   uint32
		wantRevLevel       uint32
		wantInodeSize      uint16
	}{
		{
			name:               "1 KiB blocks",
			opts:               testimage.Options{BlockSize: 1024},
			wantFirstDataBlock: 1,
			wantLogBlockSize:   0,
			wantRevLevel:       RevDynamic,
			wantInodeSize:      128,
		},
		{
			name:               "4 KiB blocks with big inodes",
			opts:               testimage.Options{BlockSize: 4096, BlocksCount: 64, InodeSize: 256},
			wantFirstDataBlock: 0,
			wantLogBlockSize:   2,
			wantRevLevel:       RevDynamic,
			wantInodeSize:      256,
		},
		{
			name:               "revision 0",
			opts:               testimage.Options{GoodOld: true},
			wantFirstDataBlock: 1,
			wantLogBlockSize:   0,
			wantRevLevel:       RevGoodOld,
			wantInodeSize:      0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadSuperblock(testimage.New(tt.opts).Bytes())
			if err != nil {
				t.Fatalf("ReadSuperblock() error = %v", err)
			}
			if got.Magic != Magic {
				t.Errorf("ReadSuperblock().Magic = %#x, want %#x", got.Magic, Magic)
			}
			if got.FirstDataBlock != tt.wantFirstDataBlock {
				t.Errorf("ReadSuperblock().FirstDataBlock = %v, want %v", got.FirstDataBlock, tt.wantFirstDataBlock)
			}
			if got.LogBlockSize != tt.wantLogBlockSize {
				t.Errorf("ReadSuperblock().LogBlockSize = %v, want %v", got.LogBlockSize, tt.wantLogBlockSize)
			}
			if got.RevLevel != tt.wantRevLevel {
				t.Errorf("ReadSuperblock().RevLevel = %v, want %v", got.RevLevel, tt.wantRevLevel)
			}
			if got.InodeSize != tt.wantInodeSize {
				t.Errorf("ReadSuperblock().InodeSize = %v, want %v", got.InodeSize, tt.wantInodeSize)
			}
			if got.InodesCount != 32 {
				t.Errorf("ReadSuperblock().InodesCount = %v, want 32", got.InodesCount)
			}
		})
	}
}

func TestReadSuperblock_truncated(t *testing.T) {
	tests := []struct {
		name  string
		image []byte
	}{
		{name: "nil image", image: nil},
		{name: "only the boot block", image: make([]byte, 1024)},
		{name: "superblock cut off", image: make([]byte, SuperblockOffset+superblockSize-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSuperblock(tt.image)
			if !errors.Is(err, ErrCorruptImage) {
				t.Errorf("ReadSuperblock() error = %v, want %v", err, ErrCorruptImage)
			}
			if !errors.Is(err, syscall.EIO) {
				t.Errorf("ReadSuperblock() error = %v, want %v", err, syscall.EIO)
			}
		})
	}
}

func TestReadGroupDescriptor(t *testing.T) {
	tests := []struct {
		name string
		opts testimage.Options
	}{
		{name: "1 KiB blocks", opts: testimage.Options{BlockSize: 1024}},
		{name: "2 KiB blocks", opts: testimage.Options{BlockSize: 2048, BlocksCount: 128}},
		{name: "4 KiB blocks", opts: testimage.Options{BlockSize: 4096, BlocksCount: 64}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testimage.New(tt.opts)
			got, err := ReadGroupDescriptor(b.Bytes())
			if err != nil {
				t.Fatalf("ReadGroupDescriptor() error = %v", err)
			}

			wantTable := uint32(b.InodeOffset(1) / int64(b.BlockSize()))
			if got.InodeTable != wantTable {
				t.Errorf("ReadGroupDescriptor().InodeTable = %v, want %v", got.InodeTable, wantTable)
			}
			if got.UsedDirsCount != 1 {
				t.Errorf("ReadGroupDescriptor().UsedDirsCount = %v, want 1", got.UsedDirsCount)
			}
		})
	}
}

func TestReadGroupDescriptor_truncated(t *testing.T) {
	image := testImage()[:2*1024+10]

	_, err := ReadGroupDescriptor(image)
	if !errors.Is(err, ErrCorruptImage) {
		t.Errorf("ReadGroupDescriptor() error = %v, want %v", err, ErrCorruptImage)
	}
}

func TestReadDirEntry(t *testing.T) {
	b := newTestImage(testimage.Options{})
	image := b.Bytes()
	rootBlock := int64(b.DirBlock(testimage.RootIno)) * int64(b.BlockSize())

	tests := []struct {
		name    string
		offset  int64
		want    DirEntry
		wantErr error
	}{
		{
			name:   "first entry is the directory itself",
			offset: rootBlock,
			want: DirEntry{
				DirEntryHeader: DirEntryHeader{Inode: RootIno, RecLen: 12, NameLen: 1, FileType: FileTypeDirectory},
				Name:           ".",
			},
		},
		{
			name:   "second entry is the parent",
			offset: rootBlock + 12,
			want: DirEntry{
				DirEntryHeader: DirEntryHeader{Inode: RootIno, RecLen: 12, NameLen: 2, FileType: FileTypeDirectory},
				Name:           "..",
			},
		},
		{
			name:   "third entry is file.txt",
			offset: rootBlock + 24,
			want: DirEntry{
				DirEntryHeader: DirEntryHeader{Inode: testFileIno, RecLen: 16, NameLen: 8, FileType: FileTypeRegular},
				Name:           "file.txt",
			},
		},
		{
			name:    "header behind the image",
			offset:  int64(len(image)) - 4,
			wantErr: ErrCorruptImage,
		},
		{
			name:    "negative offset",
			offset:  -1,
			wantErr: ErrCorruptImage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadDirEntry(image, tt.offset)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadDirEntry() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ReadDirEntry() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadDirEntry_nameBehindImage(t *testing.T) {
	image := make([]byte, 16)
	binary.LittleEndian.PutUint32(image[8:], 11)
	binary.LittleEndian.PutUint16(image[12:], 16)
	image[14] = 10 // name would end at 26

	_, err := ReadDirEntry(image, 8)
	if !errors.Is(err, ErrCorruptImage) {
		t.Errorf("ReadDirEntry() error = %v, want %v", err, ErrCorruptImage)
	}
}

func TestReadInode(t *testing.T) {
	image := testImage()

	got, err := ReadInode(image, testDirIno)
	if err != nil {
		t.Fatalf("ReadInode() error = %v", err)
	}
	if !got.IsDir() {
		t.Errorf("ReadInode() mode = %#o, want a directory", got.Mode)
	}
}
