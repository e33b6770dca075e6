//go:build unix

// Package mmfile maps image files into memory.
package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map maps the file at path as a private copy-on-write region and returns
// its contents with a release function.
//
// Writes to the returned slice never reach the file. The slice, and every
// slice derived from it, must not be used after release returns. Calling
// release more than once is harmless.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // the mapping outlives the descriptor

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}

	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: map %s: %w", path, err)
	}

	released := false
	release := func() error {
		if released {
			return nil
		}
		released = true

		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			return nil
		}

		return err
	}

	return data, release, nil
}
