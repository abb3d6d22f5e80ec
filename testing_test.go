package goext2

import (
	"testing"

	"github.com/aligator/goext2/internal/testimage"
)

// Inode numbers of the test image created by newTestImage.
const (
	testFileIno       uint32 = 12
	testDirIno        uint32 = 5
	testDirFileIno    uint32 = 7
	testFoobarIno     uint32 = 13
	testDocsIno       uint32 = 6
	testReadmeIno     uint32 = 14
	testNestedIno     uint32 = 8
	testDeepIno       uint32 = 9
	testAfterGhostIno uint32 = 15
	testEmptyIno      uint32 = 16
)

var (
	testFileContent   = []byte("Hello World\n")
	testReadmeContent = makeContent(2500)
)

// makeContent returns size bytes which differ from block to block.
func makeContent(size int) []byte {
	content := make([]byte, size)
	for i := range content {
		content[i] = byte('a' + i%26)
		if i%100 == 99 {
			content[i] = '\n'
		}
	}
	return content
}

// newTestImage builds:
//  /                   2
//  ├── file.txt       12  "Hello World\n"
//  ├── dir             5
//  │   └── a.txt       7
//  ├── foobar         13
//  ├── docs            6
//  │   ├── readme.md  14  2500 bytes, spans three 1 KiB blocks
//  │   └── nested      8
//  │       └── deep.txt 9
//  ├── (unused slot, inode 0, name "ghost")
//  ├── after-ghost    15
//  └── empty          16  0 bytes
func newTestImage(opts testimage.Options) *testimage.Builder {
	b := testimage.New(opts)
	root := testimage.RootIno

	b.File(root, testFileIno, "file.txt", testFileContent)
	dir := b.Dir(root, testDirIno, "dir")
	b.File(dir, testDirFileIno, "a.txt", []byte("a"))
	b.File(root, testFoobarIno, "foobar", []byte("foobar"))
	docs := b.Dir(root, testDocsIno, "docs")
	b.File(docs, testReadmeIno, "readme.md", testReadmeContent)
	nested := b.Dir(docs, testNestedIno, "nested")
	b.File(nested, testDeepIno, "deep.txt", []byte("deep"))
	b.Link(root, 0, "ghost", testimage.FileTypeRegular)
	b.File(root, testAfterGhostIno, "after-ghost", []byte("still here"))
	b.File(root, testEmptyIno, "empty", nil)

	return b
}

func testImage() []byte {
	return newTestImage(testimage.Options{Label: "goext2-test"}).Bytes()
}

func testingNew(t *testing.T, image []byte) *Fs {
	t.Helper()
	fs, err := New(image)
	if err != nil {
		t.Fatal(err)
	}
	return fs
}
