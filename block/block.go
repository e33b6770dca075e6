package block

import (
	"bytes"
	"fmt"
)

// Block is a contiguous run of bytes starting at an address.
type Block struct {
	Start int64
	Data  []byte
}

// Endex returns the exclusive end address of the block.
func (b Block) Endex() int64 {
	return b.Start + int64(len(b.Data))
}

// Len returns the number of bytes in the block.
func (b Block) Len() int64 {
	return int64(len(b.Data))
}

// Clone returns a copy of the block owning its own data.
func (b Block) Clone() Block {
	return Block{Start: b.Start, Data: bytes.Clone(b.Data)}
}

// String formats the block as [start, "data"].
func (b Block) String() string {
	return fmt.Sprintf("[%d, %q]", b.Start, b.Data)
}

// List is an ordered sequence of blocks.
type List []Block

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}

	out := make(List, len(l))
	for i, b := range l {
		out[i] = b.Clone()
	}

	return out
}

// Equal reports whether both lists hold the same blocks.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}

	for i := range l {
		if l[i].Start != other[i].Start || !bytes.Equal(l[i].Data, other[i].Data) {
			return false
		}
	}

	return true
}

// ContentSize returns the total number of bytes held by the list.
func (l List) ContentSize() int64 {
	var size int64
	for _, b := range l {
		size += b.Len()
	}

	return size
}

// Start returns the start of the first block, or 0 for an empty list.
func (l List) Start() int64 {
	if len(l) == 0 {
		return 0
	}

	return l[0].Start
}

// Endex returns the end of the last block, or 0 for an empty list.
func (l List) Endex() int64 {
	if len(l) == 0 {
		return 0
	}

	return l[len(l)-1].Endex()
}
