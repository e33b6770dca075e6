// Package bytesparse provides a sparse, byte-addressable virtual memory for
// editing firmware images, memory dumps and other address-mapped data.
//
// A memory stores only the bytes that were written, as a sorted list of
// non-overlapping, non-touching blocks. Addresses between blocks are gaps.
// Edits work at any address without allocating the space in between, and the
// block list stays canonical after every operation: writing into a gap that
// closes the distance between two blocks merges them, deleting a range shifts
// everything above it down and merges the edges that meet.
//
// # Core Features
//
//   - Gap-aware reads, searches and iteration over 64-bit addresses
//   - Overwriting (Write, Fill, Flood) and shifting (Insert, Delete) edits
//   - An optional trim window that bounds the addressable space
//   - Backup and restore pairs for every mutation, for undo stacks
//   - Slice-style assignment and stepped extraction
//   - Typed integer accessors in either byte order
//   - Zero-copy loading of image files through memory mapping
//
// # Basic Usage
//
// Patching a sparse image:
//
//	import "github.com/arloliu/bytesparse"
//
//	mem, _ := bytesparse.FromBlocks([]bytesparse.Block{
//	    {Start: 1, Data: []byte("ABCD")},
//	    {Start: 6, Data: []byte("$")},
//	    {Start: 8, Data: []byte("xyz")},
//	})
//
//	// overwrite [3, 7) with a repeated pattern, merging through the gap
//	_ = mem.Fill(bytesparse.At(3), bytesparse.At(7), bytesparse.Bytes([]byte("123")))
//
//	// remove [4, 9) and close the hole
//	_ = mem.Delete(bytesparse.At(4), bytesparse.At(9))
//
//	for addr, data := range mem.Blocks(bytesparse.Auto, bytesparse.Auto) {
//	    fmt.Printf("%#x: %q\n", addr, data)
//	}
//
// Reading an image file without copying it:
//
//	mem, release, err := bytesparse.MapFile("boot.bin", 0x08000000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer release()
//
//	addr, found := mem.Find([]byte("\x7fELF"), bytesparse.Auto, bytesparse.Auto)
//
// # Package Structure
//
// This package provides top-level aliases and wrappers around the memory
// package, covering the most common use cases. The block package holds the
// canonical block list primitives, endian the byte order engines and errs
// the sentinel errors shared by all of them.
package bytesparse

import (
	"github.com/arloliu/bytesparse/block"
	"github.com/arloliu/bytesparse/endian"
	"github.com/arloliu/bytesparse/memory"
)

type (
	// Memory is a sparse byte-addressable memory. See memory.Memory.
	Memory = memory.Memory
	// Block is a contiguous run of bytes starting at an address.
	Block = block.Block
	// Endpoint is one side of an address range.
	Endpoint = memory.Endpoint
	// Cell is the content of one address: a byte or a gap.
	Cell = memory.Cell
	// Span is a half-open address range.
	Span = memory.Span
	// OpenSpan is a range whose sides may be unbounded.
	OpenSpan = memory.OpenSpan
	// Source is the data stored by a write.
	Source = memory.Source
	// Option configures the construction of a Memory.
	Option = memory.Option
)

var (
	// Auto resolves to the start or end of the memory.
	Auto = memory.Auto
	// Unbounded extends a range to infinity on its side.
	Unbounded = memory.Unbounded
	// Gap is the cell of an address holding no byte.
	Gap = memory.Gap
)

// At returns an explicit address endpoint.
func At(addr int64) Endpoint {
	return memory.At(addr)
}

// Bytes returns a Source writing data.
func Bytes(data []byte) Source {
	return memory.Bytes(data)
}

// Value returns a Source writing a single byte.
func Value(v byte) Source {
	return memory.Value(v)
}

// None returns a Source that clears instead of writing.
func None() Source {
	return memory.None()
}

// Sub returns a Source writing the content of another memory.
func Sub(m *Memory) Source {
	return memory.Sub(m)
}

// New creates a new memory with custom options.
//
// This is the most flexible factory function. Without options it returns an
// empty memory with signed addresses and no trim window.
//
// Parameters:
//   - opts: Optional configuration functions (see memory.Option)
//
// Returns:
//   - *Memory: The created memory.
//   - error: An error if the initial blocks are invalid or more than one
//     initial source is given.
//
// Available options:
//   - memory.WithData(data) / memory.WithBlocks(blocks) / memory.WithMemory(m)
//   - memory.WithOffset(offset)
//   - memory.WithStart(addr) / memory.WithEndex(addr)
//   - memory.WithCopy(true|false)
//   - memory.WithValidation(true|false)
//   - memory.WithUnsignedAddresses()
//
// Example:
//
//	mem, err := bytesparse.New(
//	    memory.WithData(image),
//	    memory.WithOffset(0x1000),
//	    memory.WithEndex(0x2000),
//	)
func New(opts ...Option) (*Memory, error) {
	return memory.New(opts...)
}

// FromBytes creates a memory holding a copy of data, its first byte at offset.
//
// Example:
//
//	mem := bytesparse.FromBytes([]byte("Hello"), 0x100)
func FromBytes(data []byte, offset int64) *Memory {
	return memory.FromBytes(data, offset)
}

// FromBlocks creates a memory from canonical blocks.
//
// The blocks must be sorted, non-empty and separated by at least one gap.
// Use FromUnsortedBlocks for anything else.
//
// Parameters:
//   - blocks: The initial blocks, copied unless memory.WithCopy(false) is given
//   - opts: Optional configuration functions
//
// Returns:
//   - *Memory: The created memory.
//   - error: errs.ErrInvalidBlockBounds, errs.ErrInvalidInterleaving or
//     errs.ErrInvalidBlockSize if the blocks are not canonical.
func FromBlocks(blocks []Block, opts ...Option) (*Memory, error) {
	return memory.FromBlocks(blocks, opts...)
}

// FromUnsortedBlocks creates a memory from blocks in any order. Overlapping
// blocks are resolved in order, later ones winning.
func FromUnsortedBlocks(blocks []Block, opts ...Option) (*Memory, error) {
	return memory.FromUnsortedBlocks(blocks, opts...)
}

// LoadFile reads a raw binary image into a new memory.
//
// Parameters:
//   - path: The image file
//   - offset: The address of the first byte of the file
//   - opts: Optional configuration functions, e.g. a trim window
//
// Returns:
//   - *Memory: The memory holding the file content in one block.
//   - error: An error if the file cannot be read.
func LoadFile(path string, offset int64, opts ...Option) (*Memory, error) {
	return memory.LoadFile(path, offset, opts...)
}

// MapFile maps a raw binary image into a new memory without copying it.
//
// The mapping is private, so edits never reach the file. The release
// function unmaps it; the memory must not be used afterwards.
//
// Example:
//
//	mem, release, err := bytesparse.MapFile("dump.bin", 0)
//	if err != nil {
//	    return err
//	}
//	defer release()
func MapFile(path string, offset int64, opts ...Option) (*Memory, func() error, error) {
	return memory.MapFile(path, offset, opts...)
}

// LittleEndian returns the engine for little-endian typed accessors.
func LittleEndian() endian.EndianEngine {
	return endian.GetLittleEndianEngine()
}

// BigEndian returns the engine for big-endian typed accessors.
func BigEndian() endian.EndianEngine {
	return endian.GetBigEndianEngine()
}
