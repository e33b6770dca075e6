package memory

import (
	"os"

	"github.com/arloliu/bytesparse/internal/mmfile"
)

// LoadFile reads a raw image file into a new memory, its first byte at offset.
func LoadFile(path string, offset int64, opts ...Option) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return New(append([]Option{WithData(data), WithOffset(offset), WithCopy(false)}, opts...)...)
}

// MapFile maps a raw image file into a new memory without copying it, its
// first byte at offset.
//
// The mapping is private: edits never reach the file. The memory and
// everything read from it without copying must not be used after release is
// called.
func MapFile(path string, offset int64, opts ...Option) (*Memory, func() error, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, nil, err
	}

	m, err := New(append([]Option{WithData(data), WithOffset(offset), WithCopy(false)}, opts...)...)
	if err != nil {
		_ = release()
		return nil, nil, err
	}

	return m, release, nil
}
