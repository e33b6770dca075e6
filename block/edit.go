package block

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/arloliu/bytesparse/errs"
)

// Place writes data at addr, overwriting any byte already stored in
// [addr, addr+len(data)) and merging with blocks that end up touching.
// The bytes of data are copied.
func (l *List) Place(addr int64, data []byte) {
	if len(data) == 0 {
		return
	}

	blocks := *l
	endex := addr + int64(len(data))

	// touching blocks on either side are merged, hence >= and <=
	lo := sort.Search(len(blocks), func(i int) bool { return blocks[i].Endex() >= addr })
	hi := sort.Search(len(blocks), func(i int) bool { return blocks[i].Start > endex })

	if lo == hi {
		*l = slices.Insert(blocks, lo, Block{Start: addr, Data: bytes.Clone(data)})
		return
	}

	first, last := blocks[lo], blocks[hi-1]
	if lo+1 == hi && first.Start <= addr && endex <= first.Endex() {
		copy(first.Data[addr-first.Start:], data)
		return
	}

	start := addr
	var merged []byte
	if first.Start < addr {
		start = first.Start
		merged = first.Data[:addr-first.Start]
	}

	var tail []byte
	if last.Endex() > endex {
		tail = last.Data[endex-last.Start:]
	}

	if merged == nil {
		merged = make([]byte, 0, len(data)+len(tail))
	}
	merged = append(merged, data...)
	merged = append(merged, tail...)

	blocks[lo] = Block{Start: start, Data: merged}
	*l = slices.Delete(blocks, lo+1, hi)
}

// Clear removes the bytes in [start, endex) without moving the remaining ones.
func (l *List) Clear(start, endex int64) {
	if start >= endex {
		return
	}

	blocks := *l
	lo := blocks.IndexStart(start)
	hi := blocks.indexBefore(endex)
	if lo >= hi {
		return
	}

	first, last := blocks[lo], blocks[hi-1]
	keep := make([]Block, 0, 2)
	if first.Start < start {
		k := start - first.Start
		keep = append(keep, Block{Start: first.Start, Data: first.Data[:k:k]})
	}
	if last.Endex() > endex {
		keep = append(keep, Block{Start: endex, Data: last.Data[endex-last.Start:]})
	}

	*l = slices.Replace(blocks, lo, hi, keep...)
}

// ClearBefore removes every byte below addr.
func (l *List) ClearBefore(addr int64) {
	l.Clear(math.MinInt64, addr)
}

// ClearAfter removes every byte at or above addr.
func (l *List) ClearAfter(addr int64) {
	l.Clear(addr, math.MaxInt64)
}

// Reserve opens a gap of size addresses at addr, splitting the block that
// contains addr and moving every byte at or above addr up by size.
func (l *List) Reserve(addr, size int64) {
	if size <= 0 {
		return
	}

	blocks := *l
	i := blocks.IndexStart(addr)
	if i < len(blocks) && blocks[i].Start < addr {
		b := blocks[i]
		k := addr - b.Start
		blocks[i].Data = b.Data[:k:k]
		blocks = slices.Insert(blocks, i+1, Block{Start: addr + size, Data: b.Data[k:]})
		i += 2
	}

	blocks.shiftFrom(i, size)
	*l = blocks
}

// Delete removes the bytes in [start, endex) and moves every byte at or above
// endex down by endex-start, closing the hole.
func (l *List) Delete(start, endex int64) {
	if start >= endex {
		return
	}

	l.Clear(start, endex)

	blocks := *l
	i := blocks.indexBefore(endex)
	blocks.shiftFrom(i, start-endex)

	if i > 0 && i < len(blocks) && blocks[i-1].Endex() == blocks[i].Start {
		blocks[i-1].Data = append(blocks[i-1].Data, blocks[i].Data...)
		blocks = slices.Delete(blocks, i, i+1)
	}

	*l = blocks
}

// Shift moves every block by offset.
func (l List) Shift(offset int64) {
	l.shiftFrom(0, offset)
}

func (l List) shiftFrom(i int, offset int64) {
	if offset == 0 {
		return
	}

	for ; i < len(l); i++ {
		l[i].Start += offset
	}
}

// Extract returns a copy of the bytes stored in [start, endex).
func (l List) Extract(start, endex int64) List {
	if start >= endex {
		return nil
	}

	lo := l.IndexStart(start)
	hi := l.indexBefore(endex)
	if lo >= hi {
		return nil
	}

	out := make(List, 0, hi-lo)
	for _, b := range l[lo:hi] {
		s, e := max(b.Start, start), min(b.Endex(), endex)
		out = append(out, Block{Start: s, Data: bytes.Clone(b.Data[s-b.Start : e-b.Start])})
	}

	return out
}

// Validate reports whether the list is canonical: sorted, with non-empty
// blocks separated by at least one unused address.
func (l List) Validate() error {
	if len(l) == 0 {
		return nil
	}

	if l.Endex() <= l.Start() {
		return fmt.Errorf("%w: start %d, endex %d", errs.ErrInvalidBounds, l.Start(), l.Endex())
	}

	for i, b := range l {
		if i > 0 && b.Start <= l[i-1].Endex() {
			return fmt.Errorf("%w: block %d at %d, previous ends at %d",
				errs.ErrInvalidInterleaving, i, b.Start, l[i-1].Endex())
		}
		if len(b.Data) == 0 {
			return fmt.Errorf("%w: block %d at %d", errs.ErrInvalidBlockSize, i, b.Start)
		}
	}

	return nil
}

// Collapse folds an ordered sequence of possibly overlapping blocks into a
// canonical list. Later blocks overwrite earlier ones where they overlap.
func Collapse(blocks []Block) List {
	var l List
	for _, b := range blocks {
		l.Place(b.Start, b.Data)
	}

	return l
}
