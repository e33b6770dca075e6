package memory

import (
	"fmt"

	"github.com/arloliu/bytesparse/block"
	"github.com/arloliu/bytesparse/errs"
	"github.com/arloliu/bytesparse/internal/options"
	"github.com/arloliu/bytesparse/internal/pool"
)

// Reserve opens a gap of size addresses at addr, moving every byte at or
// above addr up by size. Bytes pushed past the trim end are discarded.
func (m *Memory) Reserve(addr, size int64) error {
	if err := m.checkAddr(addr); err != nil {
		return err
	}

	m.reserve(addr, size)

	return nil
}

func (m *Memory) reserve(addr, size int64) {
	if size <= 0 {
		return
	}

	m.blocks.Reserve(addr, size)
	if m.hasTrimEndex {
		m.blocks.ClearAfter(m.trimEndex)
	}
}

// Insert opens room for src at addr and writes it there, moving every byte
// at or above addr up by the size of src. None inserts a single gap; Sub
// inserts the whole span of the source memory with its Start at addr.
func (m *Memory) Insert(addr int64, src Source) error {
	if err := m.checkAddr(addr); err != nil {
		return err
	}

	switch src.kind {
	case gapSource:
		m.reserve(addr, 1)
	case valueSource:
		m.reserve(addr, 1)
		m.place(addr, []byte{src.value})
	case bytesSource:
		m.reserve(addr, int64(len(src.data)))
		m.place(addr, src.data)
	case memorySource:
		sub := src.mem
		if sub == m {
			sub = m.Clone()
		}
		m.reserve(addr, sub.Len())
		m.writeMemory(addr-sub.Start(), sub, false)
	}

	return nil
}

// Delete removes the bytes of [start, endex) and moves every byte at or above
// endex down to close the hole. The range is clipped to the trim window
// first, so content never moves below the trim start.
func (m *Memory) Delete(start, endex Endpoint) error {
	if err := m.checkRange(start, endex); err != nil {
		return err
	}

	s, e := m.span(start, endex)
	m.deleteRange(s, e)

	return nil
}

// Shift moves all content by offset. Content moved outside the trim window,
// or below address 0 for unsigned memories, is discarded.
func (m *Memory) Shift(offset int64) {
	if offset == 0 {
		return
	}

	m.blocks.Shift(offset)
	m.applyTrim()
}

// Extract returns a new memory holding a copy of [start, endex).
//
// WithPattern fills the gaps of the range, WithStep keeps one address out of
// step and packs the kept bytes from start, and WithBound sets the trim
// window of the result to the extracted range.
func (m *Memory) Extract(start, endex Endpoint, opts ...ExtractOption) (*Memory, error) {
	cfg := &extractConfig{step: 1}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.hasPattern && len(cfg.pattern) == 0 {
		return nil, errs.ErrEmptyPattern
	}

	s, e := m.span(start, endex)
	out := &Memory{unsigned: m.unsigned}

	switch {
	case cfg.step <= 0 || e <= s:
		if cfg.bound {
			out.setBound(s, s)
		}
	case cfg.step == 1:
		out.blocks = m.blocks.Extract(s, e)
		if cfg.hasPattern {
			buf := pool.GetScratch()
			for _, g := range out.gapSpans(s, e) {
				out.blocks.Place(g.Start, tile(buf, cfg.pattern, g.Start-s, g.Len()))
			}
			pool.PutScratch(buf)
		}
		if cfg.bound {
			out.setBound(s, e)
		}
	default:
		src := m
		if cfg.hasPattern {
			filled, err := m.Extract(At(s), At(e), WithPattern(cfg.pattern))
			if err != nil {
				return nil, err
			}
			src = filled
		}

		count := (e - s + cfg.step - 1) / cfg.step
		out.blocks = stepped(src, s, cfg.step, count)
		if cfg.bound {
			out.setBound(s, s+count)
		}
	}

	return out, nil
}

// stepped packs the cells at start, start+step, ... from start on.
func stepped(src *Memory, start, step, count int64) block.List {
	runs := block.List{}
	var run []byte
	runStart := start

	for k := int64(0); k < count; k++ {
		c := src.Peek(start + k*step)
		if !c.Defined {
			if len(run) > 0 {
				runs = append(runs, block.Block{Start: runStart, Data: run})
				run = nil
			}
			continue
		}
		if len(run) == 0 {
			runStart = start + k
		}
		run = append(run, c.Value)
	}

	if len(run) > 0 {
		runs = append(runs, block.Block{Start: runStart, Data: run})
	}

	return runs
}

// Cut extracts [start, endex) and clears it from the memory. Remaining bytes
// do not move, so writing the result back at address 0 undoes the cut.
func (m *Memory) Cut(start, endex Endpoint, bound bool) (*Memory, error) {
	if err := m.checkRange(start, endex); err != nil {
		return nil, err
	}

	out, err := m.Extract(start, endex, WithBound(bound))
	if err != nil {
		return nil, err
	}

	s, e := m.span(start, endex)
	m.blocks.Clear(s, e)

	return out, nil
}

// Append stores one cell right after the last byte.
func (m *Memory) Append(item Source) error {
	c, err := item.cell()
	if err != nil {
		return err
	}

	if c.Defined {
		m.place(m.ContentEndex(), []byte{c.Value})
	}

	return nil
}

// Extend writes src offset addresses after the last byte. A Sub source keeps
// its own addresses relative to that point.
func (m *Memory) Extend(src Source, offset int64) error {
	if offset < 0 {
		return fmt.Errorf("%w: %d", errs.ErrNegativeOffset, offset)
	}

	return m.Write(m.ContentEndex()+offset, src, false)
}

// Pop removes the cell at addr, moving the following bytes down, and returns
// it. An address outside the trim window removes nothing. With Auto or
// Unbounded it removes the last byte instead. A memory without content
// returns Gap; callers wanting a default byte use Cell.Or, as with Get.
func (m *Memory) Pop(addr Endpoint) (Cell, error) {
	if a, ok := addr.Addr(); ok {
		if err := m.checkAddr(a); err != nil {
			return Gap, err
		}

		c := m.Peek(a)
		m.deleteRange(a, a+1)

		return c, nil
	}

	if len(m.blocks) == 0 {
		return Gap, nil
	}

	last := m.ContentEndin()
	c := m.Peek(last)
	m.blocks.Clear(last, last+1)

	return c, nil
}

// PopItem removes the last byte and returns its address and value.
func (m *Memory) PopItem() (int64, byte, error) {
	if len(m.blocks) == 0 {
		return 0, 0, errs.ErrEmpty
	}

	last := m.ContentEndin()
	c := m.Peek(last)
	m.blocks.Clear(last, last+1)

	return last, c.Value, nil
}

// Remove deletes the first occurrence of token within [start, endex).
func (m *Memory) Remove(token []byte, start, endex Endpoint) error {
	addr, err := m.Index(token, start, endex)
	if err != nil {
		return err
	}

	m.deleteRange(addr, addr+int64(len(token)))

	return nil
}

// Repeat replaces the span content with times copies of it laid out back to
// back from Start. Zero or fewer times clears all content.
func (m *Memory) Repeat(times int) {
	if times <= 0 {
		m.blocks = m.blocks[:0]
		return
	}

	start := m.Start()
	size := m.Endex() - start
	if times == 1 || size <= 0 {
		return
	}

	src := m.blocks.Clone()
	for k := int64(1); k < int64(times); k++ {
		for _, b := range src {
			m.place(b.Start+k*size, b.Data)
		}
	}
}
