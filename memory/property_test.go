package memory

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bytesparse/errs"
)

// windowModel applies edits to a model the way a memory with the trim window
// [lo, hi) does.
type windowModel struct {
	md     model
	lo, hi int
}

func (w *windowModel) grow(size int) {
	w.md = w.md.padded(max(len(w.md), size))
}

// clip drops every slot outside the window.
func (w *windowModel) clip() {
	for i := range w.md {
		if i < w.lo || i >= w.hi {
			w.md[i] = -1
		}
	}
}

func (w *windowModel) write(addr int, data []byte) {
	w.grow(addr + len(data))
	for i, v := range data {
		w.md[addr+i] = int(v)
	}
	w.clip()
}

func (w *windowModel) remove(start, endex int) {
	s, e := max(start, w.lo), min(endex, w.hi, len(w.md))
	if s < e {
		w.md = append(w.md[:s:s], w.md[e:]...)
	}
}

func (w *windowModel) insert(addr int, slots model) {
	w.grow(addr)
	out := append(model{}, w.md[:addr]...)
	out = append(out, slots...)
	w.md = append(out, w.md[addr:]...)
	w.clip()
}

func (w *windowModel) shift(offset int) {
	out := gapModel(len(w.md) + max(offset, 0))
	for i, v := range w.md {
		if v >= 0 && i+offset >= 0 {
			out[i+offset] = v
		}
	}
	w.md = out
	w.clip()
}

func (w *windowModel) first(v byte) int {
	return slices.Index(w.md, int(v))
}

func (w *windowModel) last() int {
	for i, v := range slices.Backward(w.md) {
		if v >= 0 {
			return i
		}
	}

	return -1
}

func bytesModel(data []byte) model {
	out := make(model, len(data))
	for i, v := range data {
		out[i] = int(v)
	}

	return out
}

// requireComplementary checks that the intervals and the bounded gaps of m
// tile its span without overlapping.
func requireComplementary(t *testing.T, m *Memory, msgAndArgs ...any) {
	t.Helper()

	var spans []Span
	for s := range m.Intervals(Auto, Auto) {
		spans = append(spans, s)
	}
	for g := range m.Gaps(Auto, Auto, true) {
		s, ok := g.Closed()
		require.True(t, ok, msgAndArgs...)
		spans = append(spans, s)
	}
	slices.SortFunc(spans, func(a, b Span) int { return cmp.Compare(a.Start, b.Start) })

	bound := m.Bound(Auto, Auto)
	cursor := bound.Start
	for _, s := range spans {
		require.Equal(t, cursor, s.Start, msgAndArgs...)
		require.Less(t, s.Start, s.Endex, msgAndArgs...)
		cursor = s.Endex
	}
	if len(spans) > 0 {
		require.Equal(t, bound.Endex, cursor, msgAndArgs...)
	}
}

// TestRandomEdits runs random mutations against the model. After each one it
// checks the block list, the invariants and gap complementarity, then undoes
// the mutation from its backup and replays it.
func TestRandomEdits(t *testing.T) {
	const noLimit = 1 << 30

	fixtures := []struct {
		name   string
		opts   []Option
		lo, hi int
	}{
		{"plain", nil, 0, noLimit},
		{"window", []Option{WithStart(3), WithEndex(30)}, 3, 30},
	}

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			rng := rand.New(rand.NewPCG(7, 11))
			const span = 40

			for round := range 20 {
				m := newMemory(t, templateBlocks(), fx.opts...)
				w := &windowModel{md: modelOf(m, gridSize), lo: fx.lo, hi: fx.hi}

				for step := range 60 {
					a := rng.IntN(span)
					b := a + rng.IntN(8)
					data := make([]byte, 1+rng.IntN(4))
					for i := range data {
						data[i] = byte('a' + rng.IntN(26))
					}
					w.grow(b + len(data) + 1)

					// run applies the edit and returns its undo
					var run func() func()
					var op string
					switch rng.IntN(14) {
					case 0:
						op = "poke"
						run = func() func() {
							bk := m.PokeBackup(int64(a))
							require.NoError(t, m.Poke(int64(a), Value(data[0])))
							return func() { m.PokeRestore(bk) }
						}
						w.write(a, data[:1])
					case 1:
						op = "write"
						run = func() func() {
							bk := m.WriteBackup(int64(a), Bytes(data))
							require.NoError(t, m.Write(int64(a), Bytes(data), false))
							return func() { m.WriteRestore(bk) }
						}
						w.write(a, data)
					case 2:
						op = "clear"
						run = func() func() {
							bk := m.ClearBackup(At(int64(a)), At(int64(b)))
							require.NoError(t, m.Clear(At(int64(a)), At(int64(b))))
							return func() { m.ClearRestore(bk) }
						}
						for i := a; i < b; i++ {
							w.md[i] = -1
						}
					case 3:
						op = "delete"
						run = func() func() {
							bk := m.DeleteBackup(At(int64(a)), At(int64(b)))
							require.NoError(t, m.Delete(At(int64(a)), At(int64(b))))
							return func() { m.DeleteRestore(bk) }
						}
						w.remove(a, b)
					case 4:
						op = "insert"
						run = func() func() {
							bk := m.InsertBackup(int64(a), Bytes(data))
							require.NoError(t, m.Insert(int64(a), Bytes(data)))
							return func() { m.InsertRestore(bk) }
						}
						w.insert(a, bytesModel(data))
					case 5:
						op = "reserve"
						run = func() func() {
							bk := m.ReserveBackup(int64(a), int64(b-a))
							require.NoError(t, m.Reserve(int64(a), int64(b-a)))
							return func() { m.ReserveRestore(bk) }
						}
						w.insert(a, gapModel(b-a))
					case 6:
						op = "fill"
						run = func() func() {
							bk := m.FillBackup(At(int64(a)), At(int64(b)))
							require.NoError(t, m.Fill(At(int64(a)), At(int64(b)), Bytes(data)))
							return func() { m.FillRestore(bk) }
						}
						for i := a; i < b; i++ {
							w.md[i] = int(data[(i-a)%len(data)])
						}
						w.clip()
					case 7:
						op = "flood"
						run = func() func() {
							bk := m.FloodBackup(At(int64(a)), At(int64(b)))
							require.NoError(t, m.Flood(At(int64(a)), At(int64(b)), Bytes(data)))
							return func() { m.FloodRestore(bk) }
						}
						for i := a; i < b; i++ {
							if w.md[i] < 0 {
								w.md[i] = int(data[(i-a)%len(data)])
							}
						}
						w.clip()
					case 8:
						op = "pop"
						run = func() func() {
							bk := m.PopBackup(At(int64(a)))
							_, err := m.Pop(At(int64(a)))
							require.NoError(t, err)
							return func() { m.PopRestore(bk) }
						}
						w.remove(a, a+1)
					case 9:
						op = "pop last"
						run = func() func() {
							bk := m.PopBackup(Auto)
							_, err := m.Pop(Auto)
							require.NoError(t, err)
							return func() { m.PopRestore(bk) }
						}
						if i := w.last(); i >= 0 {
							w.md[i] = -1
						}
					case 10:
						op = "remove"
						token := data[:1]
						found := w.first(token[0])
						run = func() func() {
							bk, err := m.RemoveBackup(token, Auto, Auto)
							if found < 0 {
								require.ErrorIs(t, err, errs.ErrNotFound)
								require.ErrorIs(t, m.Remove(token, Auto, Auto), errs.ErrNotFound)
								return func() {}
							}
							require.NoError(t, err)
							require.NoError(t, m.Remove(token, Auto, Auto))
							return func() { m.RemoveRestore(bk) }
						}
						if found >= 0 {
							w.remove(found, found+1)
						}
					case 11:
						op = "delete step"
						stride := 1 + rng.IntN(3)
						run = func() func() {
							snap := m.Snapshot()
							require.NoError(t, m.DeleteStep(At(int64(a)), At(int64(b)), int64(stride)))
							return func() { m.RestoreSnapshot(snap) }
						}
						for i := a + ((b-a-1)/stride)*stride; i >= a && b > a; i -= stride {
							w.remove(i, i+1)
						}
					case 12:
						op = "assign"
						run = func() func() {
							snap := m.Snapshot()
							require.NoError(t, m.Assign(At(int64(a)), At(int64(b)), 1, Bytes(data)))
							return func() { m.RestoreSnapshot(snap) }
						}
						width, size := b-a, len(data)
						switch {
						case size < width:
							w.write(a, data)
							w.remove(a+size, b)
						case size > width:
							w.write(a, data[:width])
							w.insert(a+width, gapModel(size-width))
							w.write(a+width, data[width:])
						default:
							w.write(a, data)
						}
					default:
						if rng.IntN(2) == 0 {
							op = "crop"
							run = func() func() {
								bk := m.CropBackup(At(int64(a)), At(int64(b)))
								require.NoError(t, m.Crop(At(int64(a)), At(int64(b))))
								return func() { m.CropRestore(bk) }
							}
							for i := range w.md {
								if i < a || i >= b {
									w.md[i] = -1
								}
							}
							break
						}

						op = "shift"
						offset := int64(rng.IntN(7) - 2)
						if m.ContentSize() > 0 && m.ContentStart()+offset < 0 {
							offset = -offset
						}
						run = func() func() {
							bk := m.ShiftBackup(offset)
							m.Shift(offset)
							return func() { m.ShiftRestore(bk) }
						}
						w.shift(int(offset))
					}

					msg := []any{"round %d step %d %s [%d, %d)", round, step, op, a, b}
					before := m.ToBlocks(Auto, Auto)
					window := m.TrimSpan()

					undo := run()
					requireModel(t, w.md, m, msg...)
					requireComplementary(t, m, msg...)

					undo()
					require.NoError(t, m.Validate(), msg...)
					require.Equal(t, before, m.ToBlocks(Auto, Auto), msg...)
					require.Equal(t, window, m.TrimSpan(), msg...)

					run()
					requireModel(t, w.md, m, msg...)
				}
			}
		})
	}
}
