package memory

import (
	"iter"
	"slices"

	"github.com/arloliu/bytesparse/internal/pool"
)

// Poke stores a single cell at addr. None clears the address.
func (m *Memory) Poke(addr int64, item Source) error {
	if err := m.checkAddr(addr); err != nil {
		return err
	}

	c, err := item.cell()
	if err != nil {
		return err
	}

	m.pokeCell(addr, c)

	return nil
}

func (m *Memory) pokeCell(addr int64, c Cell) {
	if c.Defined {
		m.place(addr, []byte{c.Value})
	} else {
		m.blocks.Clear(addr, addr+1)
	}
}

// Write overwrites memory at addr with src.
//
// Bytes and Value store their bytes from addr on, None clears addr. For Sub,
// every block of the source memory is stored at addr plus its own start; with
// clear set, the whole source span is cleared first so that its gaps are
// copied too. Existing bytes never move.
func (m *Memory) Write(addr int64, src Source, clear bool) error {
	if err := m.checkAddr(addr); err != nil {
		return err
	}

	switch src.kind {
	case gapSource:
		m.blocks.Clear(addr, addr+1)
	case valueSource:
		m.place(addr, []byte{src.value})
	case bytesSource:
		m.place(addr, src.data)
	case memorySource:
		m.writeMemory(addr, src.mem, clear)
	}

	return nil
}

func (m *Memory) writeMemory(addr int64, sub *Memory, clear bool) {
	if sub == m {
		sub = m.Clone()
	}

	if clear {
		m.blocks.Clear(addr+sub.Start(), addr+sub.Endex())
	}

	for _, b := range sub.blocks {
		m.place(addr+b.Start, b.Data)
	}
}

// Fill overwrites [start, endex) with pattern repeated from start.
func (m *Memory) Fill(start, endex Endpoint, pattern Source) error {
	if err := m.checkRange(start, endex); err != nil {
		return err
	}

	p, err := pattern.pattern()
	if err != nil {
		return err
	}

	s, e := m.span(start, endex)
	cs, ce := m.clip(s, e)
	if cs >= ce {
		return nil
	}

	buf := pool.GetScratch()
	defer pool.PutScratch(buf)

	m.blocks.Place(cs, tile(buf, p, cs-s, ce-cs))

	return nil
}

// Flood writes pattern, repeated from start, only into the gaps of
// [start, endex). Existing bytes are kept.
func (m *Memory) Flood(start, endex Endpoint, pattern Source) error {
	if err := m.checkRange(start, endex); err != nil {
		return err
	}

	p, err := pattern.pattern()
	if err != nil {
		return err
	}

	s, e := m.span(start, endex)
	cs, ce := m.clip(s, e)

	buf := pool.GetScratch()
	defer pool.PutScratch(buf)

	for _, g := range m.gapSpans(cs, ce) {
		m.blocks.Place(g.Start, tile(buf, p, g.Start-s, g.Len()))
	}

	return nil
}

// tile returns size bytes of pattern repeated, starting at pattern index
// phase modulo the pattern length. The result aliases buf.
func tile(buf *pool.ByteBuffer, pattern []byte, phase, size int64) []byte {
	out := buf.Resize(int(size))
	n := int64(len(pattern))
	k := phase % n
	if k < 0 {
		k += n
	}

	period := min(n, size)
	for i := int64(0); i < period; i++ {
		out[i] = pattern[(k+i)%n]
	}

	for filled := period; filled < size; {
		filled += int64(copy(out[filled:], out[:filled]))
	}

	return out
}

// Clear removes the bytes of [start, endex) without moving the others.
func (m *Memory) Clear(start, endex Endpoint) error {
	if err := m.checkRange(start, endex); err != nil {
		return err
	}

	s, e := m.span(start, endex)
	m.blocks.Clear(s, e)

	return nil
}

// Crop keeps only the bytes of [start, endex). Auto and Unbounded sides do
// not crop.
func (m *Memory) Crop(start, endex Endpoint) error {
	if err := m.checkRange(start, endex); err != nil {
		return err
	}

	if s, ok := start.Addr(); ok {
		m.blocks.ClearBefore(s)
	}
	if e, ok := endex.Addr(); ok {
		m.blocks.ClearAfter(e)
	}

	return nil
}

// SetDefault returns the cell at addr if defined. Otherwise it stores def
// there and returns it.
func (m *Memory) SetDefault(addr int64, def Source) (Cell, error) {
	if err := m.checkAddr(addr); err != nil {
		return Gap, err
	}

	if c := m.Peek(addr); c.Defined {
		return c, nil
	}

	c, err := def.cell()
	if err != nil {
		return Gap, err
	}

	m.pokeCell(addr, c)

	return c, nil
}

// Update pokes every (address, cell) pair of items in order.
func (m *Memory) Update(items iter.Seq2[int64, Cell]) error {
	pairs, err := m.collectItems(items)
	if err != nil {
		return err
	}

	for _, p := range pairs {
		m.pokeCell(p.Address, p.Cell)
	}

	return nil
}

func (m *Memory) collectItems(items iter.Seq2[int64, Cell]) ([]CellBackup, error) {
	var pairs []CellBackup
	for addr, c := range items {
		if err := m.checkAddr(addr); err != nil {
			return nil, err
		}
		pairs = append(pairs, CellBackup{Address: addr, Cell: c})
	}

	return pairs, nil
}

// UpdateFrom writes the content of other at its own addresses.
func (m *Memory) UpdateFrom(other *Memory, clear bool) error {
	return m.Write(0, Sub(other), clear)
}

// ItemsOf adapts a map of cells to the sequence accepted by Update, in
// increasing address order.
func ItemsOf(cells map[int64]Cell) iter.Seq2[int64, Cell] {
	return func(yield func(int64, Cell) bool) {
		keys := make([]int64, 0, len(cells))
		for k := range cells {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, k := range keys {
			if !yield(k, cells[k]) {
				return
			}
		}
	}
}
