package memory

import (
	"bytes"
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/bytesparse/block"
	"github.com/arloliu/bytesparse/errs"
	"github.com/arloliu/bytesparse/internal/hash"
)

// Peek returns the cell at addr.
func (m *Memory) Peek(addr int64) Cell {
	i := m.blocks.IndexAt(addr)
	if i < 0 {
		return Gap
	}

	b := m.blocks[i]

	return Byte(b.Data[addr-b.Start])
}

// Get returns the byte at addr, or def for a gap.
func (m *Memory) Get(addr int64, def byte) byte {
	return m.Peek(addr).Or(def)
}

// forward resolves the range of a forward iteration. Auto takes Start and
// Endex; an Unbounded end makes the iteration infinite.
func (m *Memory) forward(start, endex Endpoint) (s, e int64, bounded bool) {
	s, ok := start.Addr()
	if !ok {
		s = m.Start()
	}

	if endex.IsUnbounded() {
		return s, math.MaxInt64, false
	}

	e, ok = endex.Addr()
	if !ok {
		e = m.Endex()
	}

	return s, e, true
}

// backward resolves the range of a reverse iteration. Auto takes Start and
// Endex; an Unbounded start makes the iteration infinite.
func (m *Memory) backward(start, endex Endpoint) (s, e int64, bounded bool) {
	e, ok := endex.Addr()
	if !ok {
		e = m.Endex()
	}

	if start.IsUnbounded() {
		return math.MinInt64, e, false
	}

	s, ok = start.Addr()
	if !ok {
		s = m.Start()
	}

	return s, e, true
}

// walk calls fn for each address of [s, e) in increasing order, or without
// end when bounded is false, until fn returns false.
func (m *Memory) walk(s, e int64, bounded bool, fn func(int64, Cell) bool) {
	blocks := m.blocks
	i := blocks.IndexStart(s)

	for addr := s; !bounded || addr < e; addr++ {
		c := Gap
		if i < len(blocks) && addr >= blocks[i].Start {
			b := blocks[i]
			c = Byte(b.Data[addr-b.Start])
			if addr+1 == b.Endex() {
				i++
			}
		}

		if !fn(addr, c) || addr == math.MaxInt64 {
			return
		}
	}
}

// rwalk calls fn for each address of [s, e) in decreasing order, or without
// end when bounded is false, until fn returns false.
func (m *Memory) rwalk(s, e int64, bounded bool, fn func(int64, Cell) bool) {
	if e == math.MinInt64 {
		return
	}

	blocks := m.blocks
	i := blocks.IndexEndex(e-1) - 1

	for addr := e - 1; !bounded || addr >= s; addr-- {
		c := Gap
		if i >= 0 && addr < blocks[i].Endex() {
			b := blocks[i]
			c = Byte(b.Data[addr-b.Start])
			if addr == b.Start {
				i--
			}
		}

		if !fn(addr, c) || addr == math.MinInt64 {
			return
		}
	}
}

// Values returns the cells of [start, endex) in increasing address order.
// An Unbounded endex never ends.
func (m *Memory) Values(start, endex Endpoint) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		s, e, bounded := m.forward(start, endex)
		m.walk(s, e, bounded, func(_ int64, c Cell) bool { return yield(c) })
	}
}

// RValues returns the cells of [start, endex) in decreasing address order.
// An Unbounded start never ends.
func (m *Memory) RValues(start, endex Endpoint) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		s, e, bounded := m.backward(start, endex)
		m.rwalk(s, e, bounded, func(_ int64, c Cell) bool { return yield(c) })
	}
}

// FilledValues is Values with gaps replaced by pattern, repeated from start.
func (m *Memory) FilledValues(start, endex Endpoint, pattern []byte) (iter.Seq[byte], error) {
	if len(pattern) == 0 {
		return nil, errs.ErrEmptyPattern
	}

	return func(yield func(byte) bool) {
		s, e, bounded := m.forward(start, endex)
		k := 0
		m.walk(s, e, bounded, func(_ int64, c Cell) bool {
			v := c.Value
			if !c.Defined {
				v = pattern[k]
			}
			k++
			if k == len(pattern) {
				k = 0
			}

			return yield(v)
		})
	}, nil
}

// RFilledValues is RValues with gaps replaced by pattern, repeated backwards
// from endex so that the last pattern byte falls on endex-1.
func (m *Memory) RFilledValues(start, endex Endpoint, pattern []byte) (iter.Seq[byte], error) {
	if len(pattern) == 0 {
		return nil, errs.ErrEmptyPattern
	}

	return func(yield func(byte) bool) {
		s, e, bounded := m.backward(start, endex)
		k := len(pattern) - 1
		m.rwalk(s, e, bounded, func(_ int64, c Cell) bool {
			v := c.Value
			if !c.Defined {
				v = pattern[k]
			}
			k--
			if k < 0 {
				k = len(pattern) - 1
			}

			return yield(v)
		})
	}, nil
}

// Keys returns the addresses of [start, endex) in increasing order.
// An Unbounded endex never ends.
func (m *Memory) Keys(start, endex Endpoint) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		s, e, bounded := m.forward(start, endex)
		for addr := s; !bounded || addr < e; addr++ {
			if !yield(addr) || addr == math.MaxInt64 {
				return
			}
		}
	}
}

// RKeys returns the addresses of [start, endex) in decreasing order.
// An Unbounded start never ends.
func (m *Memory) RKeys(start, endex Endpoint) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		s, e, bounded := m.backward(start, endex)
		if e == math.MinInt64 {
			return
		}
		for addr := e - 1; !bounded || addr >= s; addr-- {
			if !yield(addr) || addr == math.MinInt64 {
				return
			}
		}
	}
}

// Items returns the (address, cell) pairs of [start, endex) in increasing
// address order. An Unbounded endex never ends.
func (m *Memory) Items(start, endex Endpoint) iter.Seq2[int64, Cell] {
	return func(yield func(int64, Cell) bool) {
		s, e, bounded := m.forward(start, endex)
		m.walk(s, e, bounded, yield)
	}
}

// RItems returns the (address, cell) pairs of [start, endex) in decreasing
// address order. An Unbounded start never ends.
func (m *Memory) RItems(start, endex Endpoint) iter.Seq2[int64, Cell] {
	return func(yield func(int64, Cell) bool) {
		s, e, bounded := m.backward(start, endex)
		m.rwalk(s, e, bounded, yield)
	}
}

// clipRange resolves Auto and Unbounded sides to the widest range.
func clipRange(start, endex Endpoint) (int64, int64) {
	s, ok := start.Addr()
	if !ok {
		s = math.MinInt64
	}

	e, ok := endex.Addr()
	if !ok {
		e = math.MaxInt64
	}

	return s, e
}

// Blocks returns the blocks overlapping [start, endex), clipped to it.
// The slices alias the memory and must not be modified or retained across
// mutations.
func (m *Memory) Blocks(start, endex Endpoint) iter.Seq2[int64, []byte] {
	return func(yield func(int64, []byte) bool) {
		s, e := clipRange(start, endex)
		if e <= s {
			return
		}

		blocks := m.blocks
		for i := blocks.IndexStart(s); i < len(blocks) && blocks[i].Start < e; i++ {
			b := blocks[i]
			lo, hi := max(b.Start, s), min(b.Endex(), e)
			if !yield(lo, b.Data[lo-b.Start:hi-b.Start:hi-b.Start]) {
				return
			}
		}
	}
}

// ToBlocks returns a deep copy of the blocks overlapping [start, endex),
// clipped to it.
func (m *Memory) ToBlocks(start, endex Endpoint) block.List {
	out := make(block.List, 0, len(m.blocks))
	for addr, data := range m.Blocks(start, endex) {
		out = append(out, block.Block{Start: addr, Data: bytes.Clone(data)})
	}

	return out
}

// View returns the bytes of [start, endex) without copying. The range must
// be fully defined. The slice aliases the memory and must not be retained
// across mutations.
func (m *Memory) View(start, endex Endpoint) ([]byte, error) {
	s, e := m.span(start, endex)
	if e <= s {
		return []byte{}, nil
	}

	i := m.blocks.IndexAt(s)
	if i < 0 || m.blocks[i].Endex() < e {
		return nil, fmt.Errorf("%w: [%d, %d)", errs.ErrNonContiguous, s, e)
	}

	b := m.blocks[i]

	return b.Data[s-b.Start : e-b.Start : e-b.Start], nil
}

// ToBytes returns a copy of the bytes of [start, endex). The range must be
// fully defined.
func (m *Memory) ToBytes(start, endex Endpoint) ([]byte, error) {
	view, err := m.View(start, endex)
	if err != nil {
		return nil, err
	}

	return append([]byte{}, view...), nil
}

// Equal reports whether other has the same span and the same content.
func (m *Memory) Equal(other *Memory) bool {
	return m.Span() == other.Span() && m.blocks.Equal(other.blocks)
}

// EqualBytes reports whether the span of the memory is fully defined and
// holds exactly data, regardless of its start address.
func (m *Memory) EqualBytes(data []byte) bool {
	if m.Len() != int64(len(data)) {
		return false
	}

	view, err := m.View(Auto, Auto)
	if err != nil {
		return false
	}

	return bytes.Equal(view, data)
}

// Digest returns the xxHash64 of the content, addresses included.
func (m *Memory) Digest() uint64 {
	return hash.Blocks(m.Blocks(Auto, Auto))
}
