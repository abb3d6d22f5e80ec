package goext2

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/aligator/goext2/checkpoint"
)

// SplitPath splits the path into its components.
// Empty components are dropped, so leading, trailing and repeated slashes do not matter:
//  SplitPath("/a/b/c")   // []string{"a", "b", "c"}
//  SplitPath("a//b/")    // []string{"a", "b"}
//  SplitPath("/")        // []string{}
func SplitPath(path string) []string {
	components := make([]string, 0, strings.Count(path, "/")+1)
	for _, component := range strings.Split(path, "/") {
		if component != "" {
			components = append(components, component)
		}
	}
	return components
}

// ResolvePath walks the path from the root directory and returns the inode number of the last component.
// "." and ".." are looked up like any other name, so they resolve through the entries every ext2 directory has.
// The path "/" resolves to RootIno.
//
// It fails with ErrNotADirectory if a component other than the last one is no directory
// and with ErrNotFound if a component does not exist.
func ResolvePath(image []byte, path string) (uint32, error) {
	current := RootIno

	components := SplitPath(path)
	for i, component := range components {
		inode, err := ResolveInode(image, current)
		if err != nil {
			return 0, err
		}

		parent := "/" + strings.Join(components[:i], "/")
		if !inode.IsDir() {
			return 0, checkpoint.Wrap(syscall.ENOTDIR, fmt.Errorf("%w: %q", ErrNotADirectory, parent))
		}

		child, err := FindChild(image, inode, component)
		if err != nil {
			return 0, checkpoint.Wrap(err, fmt.Errorf("resolving %q in %q", component, parent))
		}

		current = child
	}

	return current, nil
}
