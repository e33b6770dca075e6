package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bytesparse/block"
)

// ==============================================================================
// Helper Functions

// gridSize covers every address used by the fixtures plus some slack.
const gridSize = 24

func blocksOf(pairs ...any) block.List {
	l := block.List{}
	for i := 0; i < len(pairs); i += 2 {
		l = append(l, block.Block{Start: int64(pairs[i].(int)), Data: []byte(pairs[i+1].(string))})
	}

	return l
}

// templateBlocks is the fixture used by most range tests.
func templateBlocks() block.List {
	return blocksOf(2, "234", 8, "89A", 12, "C", 14, "EF", 18, "I")
}

func helloBlocks() block.List {
	return blocksOf(2, "Hello", 10, "World!")
}

func newMemory(t *testing.T, l block.List, opts ...Option) *Memory {
	t.Helper()
	m, err := FromBlocks(l, opts...)
	require.NoError(t, err)

	return m
}

func requireBlocks(t *testing.T, m *Memory, pairs ...any) {
	t.Helper()
	require.Equal(t, blocksOf(pairs...), m.ToBlocks(Auto, Auto))
	require.NoError(t, m.Validate())
}

// model mirrors a memory as one slot per address in [0, len); -1 is a gap.
type model []int

func modelOf(m *Memory, size int) model {
	md := make(model, size)
	for i := range md {
		md[i] = -1
	}
	for addr, data := range m.Blocks(Auto, Auto) {
		for j, v := range data {
			if a := int(addr) + j; a >= 0 && a < size {
				md[a] = int(v)
			}
		}
	}

	return md
}

func (md model) list() block.List {
	l := block.List{}
	for addr, v := range md {
		if v < 0 {
			continue
		}
		if n := len(l); n > 0 && l[n-1].Endex() == int64(addr) {
			l[n-1].Data = append(l[n-1].Data, byte(v))
			continue
		}
		l = append(l, block.Block{Start: int64(addr), Data: []byte{byte(v)}})
	}

	return l
}

// padded returns md resized to size, filling new slots with gaps.
func (md model) padded(size int) model {
	out := make(model, size)
	for i := range out {
		out[i] = -1
	}
	copy(out, md)

	return out
}

func (md model) cells(start, endex int) []Cell {
	out := make([]Cell, 0, max(endex-start, 0))
	for addr := start; addr < endex; addr++ {
		if addr < 0 || addr >= len(md) || md[addr] < 0 {
			out = append(out, Gap)
		} else {
			out = append(out, Byte(byte(md[addr])))
		}
	}

	return out
}

func requireModel(t *testing.T, want model, m *Memory, msgAndArgs ...any) {
	t.Helper()
	require.NoError(t, m.Validate(), msgAndArgs...)
	require.Equal(t, want.list(), m.ToBlocks(Auto, Auto), msgAndArgs...)
}
