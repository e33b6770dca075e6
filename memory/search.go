package memory

import (
	"bytes"
	"fmt"

	"github.com/arloliu/bytesparse/errs"
)

// Blocks are always separated by gaps and gaps match nothing, so every
// occurrence of a token lies within a single block.

// Find returns the lowest address of token within [start, endex).
// An empty token is never found.
func (m *Memory) Find(token []byte, start, endex Endpoint) (int64, bool) {
	if len(token) == 0 {
		return 0, false
	}

	s, e := m.span(start, endex)
	if e <= s {
		return 0, false
	}

	blocks := m.blocks
	for i := blocks.IndexStart(s); i < len(blocks) && blocks[i].Start < e; i++ {
		b := blocks[i]
		lo, hi := max(b.Start, s), min(b.Endex(), e)
		if j := bytes.Index(b.Data[lo-b.Start:hi-b.Start], token); j >= 0 {
			return lo + int64(j), true
		}
	}

	return 0, false
}

// RFind returns the highest address of token within [start, endex).
func (m *Memory) RFind(token []byte, start, endex Endpoint) (int64, bool) {
	if len(token) == 0 {
		return 0, false
	}

	s, e := m.span(start, endex)
	if e <= s {
		return 0, false
	}

	blocks := m.blocks
	for i := blocks.IndexEndex(e-1) - 1; i >= 0 && blocks[i].Endex() > s; i-- {
		b := blocks[i]
		lo, hi := max(b.Start, s), min(b.Endex(), e)
		if j := bytes.LastIndex(b.Data[lo-b.Start:hi-b.Start], token); j >= 0 {
			return lo + int64(j), true
		}
	}

	return 0, false
}

// Index is Find returning errs.ErrNotFound when token is absent.
func (m *Memory) Index(token []byte, start, endex Endpoint) (int64, error) {
	addr, ok := m.Find(token, start, endex)
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrNotFound, token)
	}

	return addr, nil
}

// RIndex is RFind returning errs.ErrNotFound when token is absent.
func (m *Memory) RIndex(token []byte, start, endex Endpoint) (int64, error) {
	addr, ok := m.RFind(token, start, endex)
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrNotFound, token)
	}

	return addr, nil
}

// Count returns the number of non-overlapping occurrences of token within
// [start, endex).
func (m *Memory) Count(token []byte, start, endex Endpoint) int {
	if len(token) == 0 {
		return 0
	}

	s, e := m.span(start, endex)
	count := 0
	blocks := m.blocks
	for i := blocks.IndexStart(s); i < len(blocks) && blocks[i].Start < e; i++ {
		b := blocks[i]
		lo, hi := max(b.Start, s), min(b.Endex(), e)
		if lo < hi {
			count += bytes.Count(b.Data[lo-b.Start:hi-b.Start], token)
		}
	}

	return count
}

// Contains reports whether token occurs anywhere in the memory.
func (m *Memory) Contains(token []byte) bool {
	_, ok := m.Find(token, Auto, Auto)
	return ok
}
