package memory

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func closed(s, e int64) OpenSpan {
	return OpenSpan{Start: At(s), Endex: At(e)}
}

// TestIntervals verifies block spans clipped to a range.
func TestIntervals(t *testing.T) {
	m := newMemory(t, templateBlocks())

	require.Equal(t, []Span{{2, 5}, {8, 11}, {12, 13}, {14, 16}, {18, 19}}, slices.Collect(m.Intervals(Auto, Auto)))
	require.Equal(t, []Span{{3, 5}, {8, 11}, {12, 13}, {14, 15}}, slices.Collect(m.Intervals(At(3), At(15))))
	require.Empty(t, slices.Collect(m.Intervals(At(5), At(8))))
	require.Empty(t, slices.Collect((&Memory{}).Intervals(Auto, Auto)))
}

// TestGaps verifies open and bounded gap enumeration.
func TestGaps(t *testing.T) {
	m := newMemory(t, templateBlocks())

	t.Run("open", func(t *testing.T) {
		want := []OpenSpan{
			{Start: Unbounded, Endex: At(2)},
			closed(5, 8), closed(11, 12), closed(13, 14), closed(16, 18),
			{Start: At(19), Endex: Unbounded},
		}
		require.Equal(t, want, slices.Collect(m.Gaps(Auto, Auto, false)))
	})

	t.Run("bounded to content", func(t *testing.T) {
		want := []OpenSpan{closed(5, 8), closed(11, 12), closed(13, 14), closed(16, 18)}
		require.Equal(t, want, slices.Collect(m.Gaps(Auto, Auto, true)))
	})

	t.Run("explicit range", func(t *testing.T) {
		want := []OpenSpan{closed(0, 2), closed(5, 8), closed(11, 12), closed(13, 14), closed(16, 18), closed(19, 22)}
		require.Equal(t, want, slices.Collect(m.Gaps(At(0), At(22), true)))
		require.Equal(t, []OpenSpan{closed(5, 8), closed(11, 12)}, slices.Collect(m.Gaps(At(3), At(13), false)))
		require.Equal(t, []OpenSpan{closed(16, 18), {Start: At(19), Endex: Unbounded}}, slices.Collect(m.Gaps(At(15), Auto, false)))
	})

	t.Run("empty memory", func(t *testing.T) {
		e := &Memory{}
		require.Equal(t, []OpenSpan{{Start: Unbounded, Endex: Unbounded}}, slices.Collect(e.Gaps(Auto, Auto, false)))
		require.Empty(t, slices.Collect(e.Gaps(Auto, Auto, true)))
		require.Equal(t, []OpenSpan{closed(3, 7)}, slices.Collect(e.Gaps(At(3), At(7), true)))
		require.Equal(t, []OpenSpan{{Start: At(3), Endex: Unbounded}}, slices.Collect(e.Gaps(At(3), Auto, false)))
	})

	t.Run("trim window closes open sides", func(t *testing.T) {
		tm := newMemory(t, helloBlocks(), WithStart(0), WithEndex(20))
		require.Equal(t, []OpenSpan{closed(0, 2), closed(7, 10), closed(16, 20)}, slices.Collect(tm.Gaps(Auto, Auto, false)))
	})

	t.Run("early stop", func(t *testing.T) {
		var got []OpenSpan
		for g := range m.Gaps(Auto, Auto, false) {
			got = append(got, g)
			if len(got) == 2 {
				break
			}
		}
		require.Len(t, got, 2)
	})
}

// TestGapsComplementIntervals verifies that bounded gaps and intervals tile
// every range exactly.
func TestGapsComplementIntervals(t *testing.T) {
	m := newMemory(t, templateBlocks())

	for start := 0; start < gridSize; start++ {
		for endex := start; endex <= gridSize; endex++ {
			covered := make(map[int64]int)
			for iv := range m.Intervals(At(int64(start)), At(int64(endex))) {
				for a := iv.Start; a < iv.Endex; a++ {
					covered[a]++
				}
			}
			for g := range m.Gaps(At(int64(start)), At(int64(endex)), true) {
				span, ok := g.Closed()
				require.True(t, ok)
				for a := span.Start; a < span.Endex; a++ {
					covered[a]++
				}
			}

			require.Len(t, covered, endex-start, "range [%d, %d)", start, endex)
			for a, n := range covered {
				require.Equal(t, 1, n, "address %d in [%d, %d)", a, start, endex)
				require.True(t, Span{int64(start), int64(endex)}.Contains(a))
			}
		}
	}
}

// TestEqualSpan verifies runs of equal cells and gap spans.
func TestEqualSpan(t *testing.T) {
	m := newMemory(t, blocksOf(2, "AAB", 8, "ccc"))

	tests := []struct {
		addr int64
		span OpenSpan
		cell Cell
	}{
		{2, closed(2, 4), Byte('A')},
		{3, closed(2, 4), Byte('A')},
		{4, closed(4, 5), Byte('B')},
		{5, closed(5, 8), Gap},
		{9, closed(8, 11), Byte('c')},
		{0, OpenSpan{Start: Unbounded, Endex: At(2)}, Gap},
		{20, OpenSpan{Start: At(11), Endex: Unbounded}, Gap},
	}
	for _, tt := range tests {
		span, cell := m.EqualSpan(tt.addr)
		require.Equal(t, tt.span, span, "addr %d", tt.addr)
		require.Equal(t, tt.cell, cell, "addr %d", tt.addr)
	}

	span, cell := (&Memory{}).EqualSpan(0)
	require.Equal(t, OpenSpan{Start: Unbounded, Endex: Unbounded}, span)
	require.Equal(t, Gap, cell)
}

// TestBlockSpan verifies block and gap spans around an address.
func TestBlockSpan(t *testing.T) {
	m := newMemory(t, blocksOf(2, "AAB", 8, "ccc"))

	span, cell := m.BlockSpan(3)
	require.Equal(t, closed(2, 5), span)
	require.Equal(t, Byte('A'), cell)

	span, cell = m.BlockSpan(6)
	require.Equal(t, closed(5, 8), span)
	require.Equal(t, Gap, cell)

	span, _ = m.BlockSpan(-4)
	require.Equal(t, OpenSpan{Start: Unbounded, Endex: At(2)}, span)
}
