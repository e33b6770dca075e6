package memory

import "iter"

// Intervals returns the spans of the blocks overlapping [start, endex),
// clipped to it. Auto and Unbounded sides do not clip.
func (m *Memory) Intervals(start, endex Endpoint) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for addr, data := range m.Blocks(start, endex) {
			if !yield(Span{Start: addr, Endex: addr + int64(len(data))}) {
				return
			}
		}
	}
}

// Gaps returns the empty spans within [start, endex).
//
// With bound set, the range is resolved by Bound and every gap is closed.
// Without it, explicit sides are used as given, and an Auto or Unbounded side
// with no trim limit yields an open gap before the first byte or after the
// last one. A memory without content and without limits is one gap open on
// both sides.
func (m *Memory) Gaps(start, endex Endpoint, bound bool) iter.Seq[OpenSpan] {
	return func(yield func(OpenSpan) bool) {
		blocks := m.blocks

		var s, e int64
		var sOpen, eOpen bool
		if bound {
			span := m.Bound(start, endex)
			s, e = span.Start, span.Endex
		} else {
			s, sOpen = m.gapSide(start, m.hasTrimStart, m.trimStart)
			e, eOpen = m.gapSide(endex, m.hasTrimEndex, m.trimEndex)
		}

		if len(blocks) == 0 {
			if sOpen || eOpen || s < e {
				yield(openSpan(s, sOpen, e, eOpen))
			}

			return
		}

		cursor := s
		if sOpen {
			if !yield(OpenSpan{Start: Unbounded, Endex: At(blocks[0].Start)}) {
				return
			}
			cursor = blocks[0].Start
		}

		for i := blocks.IndexStart(cursor); i < len(blocks) && (eOpen || blocks[i].Start < e); i++ {
			b := blocks[i]
			if cursor < b.Start {
				if !yield(OpenSpan{Start: At(cursor), Endex: At(b.Start)}) {
					return
				}
			}
			cursor = max(cursor, b.Endex())
		}

		if eOpen {
			yield(OpenSpan{Start: At(cursor), Endex: Unbounded})
		} else if cursor < e {
			yield(OpenSpan{Start: At(cursor), Endex: At(e)})
		}
	}
}

func (m *Memory) gapSide(side Endpoint, hasTrim bool, trim int64) (int64, bool) {
	if a, ok := side.Addr(); ok {
		return a, false
	}
	if hasTrim {
		return trim, false
	}

	return 0, true
}

func openSpan(s int64, sOpen bool, e int64, eOpen bool) OpenSpan {
	span := OpenSpan{Start: At(s), Endex: At(e)}
	if sOpen {
		span.Start = Unbounded
	}
	if eOpen {
		span.Endex = Unbounded
	}

	return span
}

// gapSpans returns the closed gaps within [start, endex).
func (m *Memory) gapSpans(start, endex int64) []Span {
	if start >= endex {
		return nil
	}

	var out []Span
	cursor := start
	blocks := m.blocks
	for i := blocks.IndexStart(start); i < len(blocks) && blocks[i].Start < endex; i++ {
		b := blocks[i]
		if cursor < b.Start {
			out = append(out, Span{Start: cursor, Endex: b.Start})
		}
		cursor = max(cursor, b.Endex())
	}

	if cursor < endex {
		out = append(out, Span{Start: cursor, Endex: endex})
	}

	return out
}

// EqualSpan returns the widest span around addr holding the same cell as
// addr. For a gap it is the gap itself, with Unbounded sides before the first
// block and after the last one.
func (m *Memory) EqualSpan(addr int64) (OpenSpan, Cell) {
	if i := m.blocks.IndexAt(addr); i >= 0 {
		b := m.blocks[i]
		k := addr - b.Start
		v := b.Data[k]

		lo := k
		for lo > 0 && b.Data[lo-1] == v {
			lo--
		}

		hi := k + 1
		for hi < b.Len() && b.Data[hi] == v {
			hi++
		}

		return OpenSpan{Start: At(b.Start + lo), Endex: At(b.Start + hi)}, Byte(v)
	}

	return m.gapAround(addr), Gap
}

// BlockSpan returns the span of the block containing addr, or the gap around
// addr as EqualSpan does.
func (m *Memory) BlockSpan(addr int64) (OpenSpan, Cell) {
	if i := m.blocks.IndexAt(addr); i >= 0 {
		b := m.blocks[i]
		return OpenSpan{Start: At(b.Start), Endex: At(b.Endex())}, Byte(b.Data[addr-b.Start])
	}

	return m.gapAround(addr), Gap
}

func (m *Memory) gapAround(addr int64) OpenSpan {
	span := OpenSpan{Start: Unbounded, Endex: Unbounded}
	j := m.blocks.IndexStart(addr)
	if j > 0 {
		span.Start = At(m.blocks[j-1].Endex())
	}
	if j < len(m.blocks) {
		span.Endex = At(m.blocks[j].Start)
	}

	return span
}
