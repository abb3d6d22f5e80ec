// File model contains the structs which match the direct structures of the ext2 filesystem.
// All fields are little endian and decoded with encoding/binary, so the field order and
// the field sizes must not be changed.

package goext2

const (
	// SuperblockOffset is the byte offset of the primary superblock, regardless of the block size.
	SuperblockOffset = 1024
	// Magic is the value of Superblock.Magic for every ext2 filesystem.
	Magic uint16 = 0xEF53

	// RootIno is the inode number of the root directory.
	RootIno uint32 = 2

	// DirectBlocks is the number of entries of Inode.Block which point directly to data.
	DirectBlocks = 12

	minBlockSize    = 1024
	maxLogBlockSize = 6

	// goodOldInodeSize is the inode size of revision 0 filesystems.
	goodOldInodeSize = 128

	dirEntryHeaderSize = 8
)

// Revision levels.
const (
	RevGoodOld uint32 = 0
	RevDynamic uint32 = 1
)

// Inode mode bits.
const (
	ModeTypeMask  uint16 = 0xF000
	ModeSocket    uint16 = 0xC000
	ModeSymlink   uint16 = 0xA000
	ModeRegular   uint16 = 0x8000
	ModeBlockDev  uint16 = 0x6000
	ModeDirectory uint16 = 0x4000
	ModeCharDev   uint16 = 0x2000
	ModeFifo      uint16 = 0x1000

	ModeSetuid uint16 = 0x0800
	ModeSetgid uint16 = 0x0400
	ModeSticky uint16 = 0x0200
	ModePerm   uint16 = 0x01FF
)

// Directory entry file types, only set if the filetype feature is enabled.
const (
	FileTypeUnknown uint8 = iota
	FileTypeRegular
	FileTypeDirectory
	FileTypeCharDev
	FileTypeBlockDev
	FileTypeFifo
	FileTypeSocket
	FileTypeSymlink
)

type Superblock struct {
	InodesCount     uint32
	BlocksCount     uint32
	RBlocksCount    uint32
	FreeBlocksCount uint32
	FreeInodesCount uint32
	FirstDataBlock  uint32
	LogBlockSize    uint32
	LogFragSize     uint32
	BlocksPerGroup  uint32
	FragsPerGroup   uint32
	InodesPerGroup  uint32
	MTime           uint32
	WTime           uint32
	MntCount        uint16
	MaxMntCount     int16
	Magic           uint16
	State           uint16
	Errors          uint16
	MinorRevLevel   uint16
	LastCheck       uint32
	CheckInterval   uint32
	CreatorOS       uint32
	RevLevel        uint32
	DefResUID       uint16
	DefResGID       uint16

	// Only valid for RevDynamic.
	FirstIno        uint32
	InodeSize       uint16
	BlockGroupNr    uint16
	FeatureCompat   uint32
	FeatureIncompat uint32
	FeatureROCompat uint32
	UUID            [16]byte
	VolumeName      [16]byte
}

type GroupDescriptor struct {
	BlockBitmap     uint32
	InodeBitmap     uint32
	InodeTable      uint32
	FreeBlocksCount uint16
	FreeInodesCount uint16
	UsedDirsCount   uint16
	Pad             uint16
	Reserved        [12]byte
}

// Inode is the first 128 bytes of an inode table slot.
// Dynamic revision filesystems may use bigger slots, the rest is ignored.
type Inode struct {
	Mode       uint16
	UID        uint16
	SizeLow    uint32
	ATime      uint32
	CTime      uint32
	MTime      uint32
	DTime      uint32
	GID        uint16
	LinksCount uint16
	Blocks     uint32
	Flags      uint32
	OSD1       uint32
	Block      [15]uint32
	Generation uint32
	FileACL    uint32
	// SizeHigh is named dir_acl on revision 0 filesystems.
	SizeHigh uint32
	FragAddr uint32
	OSD2     [12]byte
}

// DirEntryHeader is the fixed part of a directory entry. The name follows directly.
type DirEntryHeader struct {
	Inode    uint32
	RecLen   uint16
	NameLen  uint8
	FileType uint8
}

// DirEntry is a decoded directory entry including its name.
type DirEntry struct {
	DirEntryHeader
	Name string
}
