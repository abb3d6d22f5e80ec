//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd
// +build !darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd

package main

import "errors"

func mmapImage(name string) ([]byte, func() error, error) {
	return nil, nil, errors.New("mmap is not supported on this platform")
}
