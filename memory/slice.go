package memory

import (
	"fmt"

	"github.com/arloliu/bytesparse/errs"
	"github.com/arloliu/bytesparse/internal/pool"
)

// Assign replaces the stepped range start, start+step, ... below endex with
// src, list-slice style.
//
// With step 1 the range is replaced by the whole source, deleting or
// inserting addresses when the sizes differ. With a larger step the source
// must hold exactly one byte per selected address, otherwise
// errs.ErrSizeMismatch is returned. Value stores its byte at every selected
// address and None clears them. A step of zero or less does nothing.
func (m *Memory) Assign(start, endex Endpoint, step int64, src Source) error {
	if err := m.checkRange(start, endex); err != nil {
		return err
	}
	if step <= 0 {
		return nil
	}

	s, e := m.span(start, endex)
	e = max(e, s)

	switch src.kind {
	case gapSource:
		if step == 1 {
			m.blocks.Clear(s, e)
			return nil
		}
		for addr := s; addr < e; addr += step {
			m.blocks.Clear(addr, addr+1)
		}

		return nil
	case valueSource:
		if step == 1 {
			buf := pool.GetScratch()
			m.place(s, tile(buf, []byte{src.value}, 0, e-s))
			pool.PutScratch(buf)

			return nil
		}
		for addr := s; addr < e; addr += step {
			m.place(addr, []byte{src.value})
		}

		return nil
	}

	if step == 1 {
		return m.assignRange(s, e, src)
	}

	data := src.data
	if src.kind == memorySource {
		view, err := src.mem.View(Auto, Auto)
		if err != nil {
			return err
		}
		data = view
	}

	count := (e - s + step - 1) / step
	if int64(len(data)) != count {
		return fmt.Errorf("%w: attempt to assign bytes of size %d to extended slice of size %d",
			errs.ErrSizeMismatch, len(data), count)
	}

	for k, v := range data {
		m.place(s+int64(k)*step, []byte{v})
	}

	return nil
}

// assignRange replaces [s, e) with src, resizing the range to the source.
func (m *Memory) assignRange(s, e int64, src Source) error {
	size := src.size()
	if src.kind == memorySource {
		m.deleteRange(s, e)
		return m.Insert(s, src)
	}

	width := e - s
	switch {
	case size < width:
		m.place(s, src.data)
		m.deleteRange(s+size, e)
	case size > width:
		m.place(s, src.data[:width])
		m.reserve(s+width, size-width)
		m.place(s+width, src.data[width:])
	default:
		m.place(s, src.data)
	}

	return nil
}

// DeleteStep deletes the addresses start, start+step, ... below endex,
// moving the following bytes down. Addresses outside the trim window are
// skipped. A step of zero or less does nothing.
func (m *Memory) DeleteStep(start, endex Endpoint, step int64) error {
	if err := m.checkRange(start, endex); err != nil {
		return err
	}
	if step <= 0 {
		return nil
	}

	s, e := m.span(start, endex)
	if e <= s {
		return nil
	}

	if step == 1 {
		m.deleteRange(s, e)
		return nil
	}

	// highest first so earlier deletions do not move later targets
	count := (e - s + step - 1) / step
	for k := count - 1; k >= 0; k-- {
		addr := s + k*step
		m.deleteRange(addr, addr+1)
	}

	return nil
}
