// Package testimage builds small ext2 images in memory for tests.
//
// The images always contain exactly one block group. Every directory uses a
// single data block and every file at most the twelve direct blocks, which is
// all the reading side supports. Inode numbers are chosen by the caller so
// tests can assert against known values.
package testimage

import (
	"encoding/binary"
	"fmt"
)

const (
	RootIno uint32 = 2

	superblockOffset = 1024
	directBlocks     = 12

	modeDir     uint16 = 0x4000
	modeRegular uint16 = 0x8000

	FileTypeRegular   uint8 = 1
	FileTypeDirectory uint8 = 2
)

// Options configures the geometry of an image. Zero values select the defaults.
type Options struct {
	BlockSize   uint32 // 1024
	BlocksCount uint32 // 256
	InodesCount uint32 // 32
	InodeSize   uint16 // 128, ignored if GoodOld is set
	// GoodOld creates a revision 0 filesystem without the dynamic superblock fields.
	GoodOld bool
	Label   string
	MTime   uint32 // 1600000000
}

type entry struct {
	ino      uint32
	fileType uint8
	name     string
}

type inode struct {
	mode   uint16
	size   uint32
	links  uint16
	blocks []uint32
}

// Builder collects inodes and directory entries. Bytes renders the image.
type Builder struct {
	opts Options

	firstDataBlock uint32
	inodeTable     uint32
	nextBlock      uint32

	inodes  map[uint32]*inode
	entries map[uint32][]entry
	data    map[uint32][]byte
}

// New creates a builder with an empty root directory.
func New(opts Options) *Builder {
	if opts.BlockSize == 0 {
		opts.BlockSize = 1024
	}
	if opts.BlocksCount == 0 {
		opts.BlocksCount = 256
	}
	if opts.InodesCount == 0 {
		opts.InodesCount = 32
	}
	if opts.InodeSize == 0 || opts.GoodOld {
		opts.InodeSize = 128
	}
	if opts.MTime == 0 {
		opts.MTime = 1600000000
	}

	b := &Builder{
		opts:    opts,
		inodes:  map[uint32]*inode{},
		entries: map[uint32][]entry{},
		data:    map[uint32][]byte{},
	}

	// With 1 KiB blocks the superblock fills block 1, otherwise it is inside block 0.
	if opts.BlockSize == 1024 {
		b.firstDataBlock = 1
	}

	// group descriptor, block bitmap, inode bitmap, inode table
	tableBlocks := (opts.InodesCount*uint32(opts.InodeSize) + opts.BlockSize - 1) / opts.BlockSize
	b.inodeTable = b.firstDataBlock + 4
	b.nextBlock = b.inodeTable + tableBlocks

	b.mkdir(RootIno, RootIno)
	return b
}

// Dir creates the directory ino called name inside of parent.
func (b *Builder) Dir(parent, ino uint32, name string) uint32 {
	b.mkdir(parent, ino)
	b.Link(parent, ino, name, FileTypeDirectory)
	b.inodes[parent].links++
	return ino
}

func (b *Builder) mkdir(parent, ino uint32) {
	b.checkNew(ino)
	b.inodes[ino] = &inode{
		mode:   modeDir | 0755,
		size:   b.opts.BlockSize,
		links:  2,
		blocks: []uint32{b.alloc()},
	}
	b.entries[ino] = []entry{
		{ino: ino, fileType: FileTypeDirectory, name: "."},
		{ino: parent, fileType: FileTypeDirectory, name: ".."},
	}
}

// File creates the regular file ino called name inside of parent.
func (b *Builder) File(parent, ino uint32, name string, content []byte) uint32 {
	b.checkNew(ino)

	count := (uint32(len(content)) + b.opts.BlockSize - 1) / b.opts.BlockSize
	if count > directBlocks {
		panic(fmt.Sprintf("testimage: file %q needs %v blocks, only %v are direct", name, count, directBlocks))
	}

	in := &inode{
		mode:  modeRegular | 0644,
		size:  uint32(len(content)),
		links: 1,
	}
	for i := uint32(0); i < count; i++ {
		blk := b.alloc()
		end := (i + 1) * b.opts.BlockSize
		if end > uint32(len(content)) {
			end = uint32(len(content))
		}
		b.data[blk] = content[i*b.opts.BlockSize : end]
		in.blocks = append(in.blocks, blk)
	}

	b.inodes[ino] = in
	b.Link(parent, ino, name, FileTypeRegular)
	return ino
}

// Link adds a raw directory entry to parent. ino may be 0 to create an unused slot,
// and it does not need to exist, which allows dangling entries.
func (b *Builder) Link(parent, ino uint32, name string, fileType uint8) {
	if _, ok := b.entries[parent]; !ok {
		panic(fmt.Sprintf("testimage: inode %v is no directory", parent))
	}
	if len(name) > 255 {
		panic(fmt.Sprintf("testimage: name %q is too long", name))
	}
	b.entries[parent] = append(b.entries[parent], entry{ino: ino, fileType: fileType, name: name})
}

// BlockSize returns the block size of the image.
func (b *Builder) BlockSize() uint32 {
	return b.opts.BlockSize
}

// DirBlock returns the data block of the directory ino.
func (b *Builder) DirBlock(ino uint32) uint32 {
	if _, ok := b.entries[ino]; !ok {
		panic(fmt.Sprintf("testimage: inode %v is no directory", ino))
	}
	return b.inodes[ino].blocks[0]
}

// InodeOffset returns the byte offset of the inode slot ino in the image.
func (b *Builder) InodeOffset(ino uint32) int64 {
	return int64(b.inodeTable)*int64(b.opts.BlockSize) + int64(ino-1)*int64(b.opts.InodeSize)
}

func (b *Builder) checkNew(ino uint32) {
	if ino == 0 || ino > b.opts.InodesCount {
		panic(fmt.Sprintf("testimage: inode %v out of range 1..%v", ino, b.opts.InodesCount))
	}
	if _, ok := b.inodes[ino]; ok {
		panic(fmt.Sprintf("testimage: inode %v already exists", ino))
	}
}

func (b *Builder) alloc() uint32 {
	if b.nextBlock >= b.opts.BlocksCount {
		panic("testimage: out of blocks")
	}
	blk := b.nextBlock
	b.nextBlock++
	return blk
}

// Bytes renders the image.
func (b *Builder) Bytes() []byte {
	bs := b.opts.BlockSize
	image := make([]byte, int(b.opts.BlocksCount)*int(bs))
	le := binary.LittleEndian

	usedDirs := uint16(0)
	for ino, in := range b.inodes {
		if in.mode&0xF000 == modeDir {
			usedDirs++
		}
		b.putInode(image[b.InodeOffset(ino):], in)
	}

	for ino, entries := range b.entries {
		b.putDir(image[int(b.DirBlock(ino))*int(bs):][:bs], entries)
	}

	for blk, content := range b.data {
		copy(image[int(blk)*int(bs):], content)
	}

	usedBlocks := b.nextBlock - b.firstDataBlock
	freeBlocks := b.opts.BlocksCount - b.nextBlock
	freeInodes := b.opts.InodesCount - uint32(len(b.inodes))

	sb := image[superblockOffset:]
	le.PutUint32(sb[0:], b.opts.InodesCount)
	le.PutUint32(sb[4:], b.opts.BlocksCount)
	le.PutUint32(sb[12:], freeBlocks)
	le.PutUint32(sb[16:], freeInodes)
	le.PutUint32(sb[20:], b.firstDataBlock)
	le.PutUint32(sb[24:], log2(bs/1024))
	le.PutUint32(sb[28:], log2(bs/1024))
	le.PutUint32(sb[32:], bs*8)
	le.PutUint32(sb[36:], bs*8)
	le.PutUint32(sb[40:], b.opts.InodesCount)
	le.PutUint32(sb[44:], b.opts.MTime)
	le.PutUint32(sb[48:], b.opts.MTime)
	le.PutUint16(sb[56:], 0xEF53)
	le.PutUint16(sb[58:], 1) // clean
	le.PutUint16(sb[60:], 1) // continue on errors
	if !b.opts.GoodOld {
		le.PutUint32(sb[76:], 1)
		le.PutUint32(sb[84:], 11)
		le.PutUint16(sb[88:], b.opts.InodeSize)
		le.PutUint32(sb[96:], 0x0002) // filetype
		for i := range sb[104:120] {
			sb[104+i] = byte(i + 1)
		}
		copy(sb[120:136], b.opts.Label)
	}

	gd := image[int(b.firstDataBlock+1)*int(bs):]
	le.PutUint32(gd[0:], b.firstDataBlock+2)
	le.PutUint32(gd[4:], b.firstDataBlock+3)
	le.PutUint32(gd[8:], b.inodeTable)
	le.PutUint16(gd[12:], uint16(freeBlocks))
	le.PutUint16(gd[14:], uint16(freeInodes))
	le.PutUint16(gd[16:], usedDirs)

	blockBitmap := image[int(b.firstDataBlock+2)*int(bs):][:bs]
	for i := uint32(0); i < usedBlocks; i++ {
		blockBitmap[i/8] |= 1 << (i % 8)
	}
	inodeBitmap := image[int(b.firstDataBlock+3)*int(bs):][:bs]
	for ino := range b.inodes {
		inodeBitmap[(ino-1)/8] |= 1 << ((ino - 1) % 8)
	}

	return image
}

func (b *Builder) putInode(buf []byte, in *inode) {
	le := binary.LittleEndian
	le.PutUint16(buf[0:], in.mode)
	le.PutUint32(buf[4:], in.size)
	le.PutUint32(buf[8:], b.opts.MTime)
	le.PutUint32(buf[12:], b.opts.MTime)
	le.PutUint32(buf[16:], b.opts.MTime)
	le.PutUint16(buf[26:], in.links)
	le.PutUint32(buf[28:], uint32(len(in.blocks))*(b.opts.BlockSize/512))
	for i, blk := range in.blocks {
		le.PutUint32(buf[40+4*i:], blk)
	}
}

func (b *Builder) putDir(buf []byte, entries []entry) {
	le := binary.LittleEndian
	offset := 0
	for i, e := range entries {
		recLen := (8 + len(e.name) + 3) &^ 3
		if i == len(entries)-1 {
			recLen = len(buf) - offset
		}
		if offset+recLen > len(buf) || recLen < 8+len(e.name) {
			panic("testimage: directory entries do not fit into one block")
		}

		le.PutUint32(buf[offset:], e.ino)
		le.PutUint16(buf[offset+4:], uint16(recLen))
		buf[offset+6] = uint8(len(e.name))
		if !b.opts.GoodOld {
			// Revision 0 uses both bytes as name length.
			buf[offset+7] = e.fileType
		}
		copy(buf[offset+8:], e.name)
		offset += recLen
	}
}

func log2(n uint32) uint32 {
	var l uint32
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}
