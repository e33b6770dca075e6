//go:build !unix

// Package mmfile maps image files into memory.
package mmfile

import "os"

// Map reads the whole file where memory mapping is unavailable.
// The release function is a no-op.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	return data, func() error { return nil }, nil
}
