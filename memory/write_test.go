package memory

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bytesparse/errs"
)

// TestPoke verifies single cell writes.
func TestPoke(t *testing.T) {
	m := newMemory(t, templateBlocks())

	require.NoError(t, m.Poke(5, Value('5')))
	requireBlocks(t, m, 2, "2345", 8, "89A", 12, "C", 14, "EF", 18, "I")

	require.NoError(t, m.Poke(6, Bytes([]byte("6"))))
	require.NoError(t, m.Poke(7, FromCell(Byte('7'))))
	requireBlocks(t, m, 2, "23456789A", 12, "C", 14, "EF", 18, "I")

	require.NoError(t, m.Poke(12, None()))
	require.NoError(t, m.Poke(3, FromCell(Gap)))
	requireBlocks(t, m, 2, "2", 4, "456789A", 14, "EF", 18, "I")

	require.ErrorIs(t, m.Poke(0, Bytes([]byte("ab"))), errs.ErrExpectingSingleItem)
	require.ErrorIs(t, m.Poke(0, Bytes(nil)), errs.ErrExpectingSingleItem)
	require.ErrorIs(t, m.Poke(0, Sub(newMemory(t, helloBlocks()))), errs.ErrExpectingSingleItem)
	require.NoError(t, m.Poke(0, Sub(FromBytes([]byte("!"), 7))))
	require.Equal(t, Byte('!'), m.Peek(0))

	t.Run("clipped by trim", func(t *testing.T) {
		tm := newMemory(t, helloBlocks(), WithStart(2), WithEndex(16))
		require.NoError(t, tm.Poke(1, Value('x')))
		require.NoError(t, tm.Poke(16, Value('x')))
		requireBlocks(t, tm, 2, "Hello", 10, "World!")
	})
}

// TestWriteBytes verifies overwriting writes against the model.
func TestWriteBytes(t *testing.T) {
	for _, trimmed := range []bool{false, true} {
		for start := 0; start < gridSize-6; start++ {
			for size := 0; size < 6; size++ {
				var opts []Option
				if trimmed {
					opts = []Option{WithStart(3), WithEndex(15)}
				}
				m := newMemory(t, templateBlocks(), opts...)
				md := modelOf(m, gridSize)

				data := make([]byte, size)
				for i := range data {
					data[i] = byte('a' + i)
					addr := start + i
					if !trimmed || (addr >= 3 && addr < 15) {
						md[addr] = int(data[i])
					}
				}

				require.NoError(t, m.Write(int64(start), Bytes(data), false))
				requireModel(t, md, m, "trimmed %v start %d size %d", trimmed, start, size)
			}
		}
	}
}

// TestWriteMemory verifies writing the content of another memory.
func TestWriteMemory(t *testing.T) {
	for _, clear := range []bool{false, true} {
		for addr := -2; addr < 8; addr++ {
			m := newMemory(t, templateBlocks())
			src := newMemory(t, helloBlocks())
			md := modelOf(m, gridSize+8)
			sm := modelOf(src, gridSize)

			for a := src.Start(); a < src.Endex(); a++ {
				dst := int(a) + addr
				if dst < 0 || dst >= len(md) {
					continue
				}
				if sm[a] >= 0 {
					md[dst] = sm[a]
				} else if clear {
					md[dst] = -1
				}
			}

			require.NoError(t, m.Write(int64(addr), Sub(src), clear))
			requireModel(t, md, m, "clear %v addr %d", clear, addr)
		}
	}

	t.Run("self", func(t *testing.T) {
		m := newMemory(t, helloBlocks())
		require.NoError(t, m.Write(1, Sub(m), false))
		requireBlocks(t, m, 2, "HHello", 10, "WWorld!")
	})

	t.Run("value and none", func(t *testing.T) {
		m := newMemory(t, helloBlocks())
		require.NoError(t, m.Write(7, Value('!'), false))
		require.NoError(t, m.Write(2, None(), false))
		requireBlocks(t, m, 3, "ello!", 10, "World!")
	})
}

// TestFill verifies pattern filling against the model.
func TestFill(t *testing.T) {
	t.Run("scenarios", func(t *testing.T) {
		m := newMemory(t, blocksOf(1, "ABC", 6, "xyz"))
		require.NoError(t, m.Fill(At(3), At(7), Bytes([]byte("123"))))
		requireBlocks(t, m, 1, "AB1231yz")

		m = newMemory(t, blocksOf(1, "ABCD", 6, "$", 8, "xyz"))
		require.NoError(t, m.Fill(At(3), At(7), Bytes([]byte("123"))))
		requireBlocks(t, m, 1, "AB1231", 8, "xyz")

		m = newMemory(t, helloBlocks())
		require.NoError(t, m.Fill(Auto, Auto, Value('.')))
		requireBlocks(t, m, 2, "..............")
	})

	t.Run("empty pattern", func(t *testing.T) {
		m := newMemory(t, helloBlocks())
		require.ErrorIs(t, m.Fill(Auto, Auto, Bytes(nil)), errs.ErrEmptyPattern)
		require.ErrorIs(t, m.Fill(Auto, Auto, None()), errs.ErrEmptyPattern)
		require.ErrorIs(t, m.Fill(Auto, Auto, Sub(&Memory{})), errs.ErrEmptyPattern)
		requireBlocks(t, m, 2, "Hello", 10, "World!")
	})

	t.Run("grid", func(t *testing.T) {
		pattern := []byte("xyz")
		for _, trimmed := range []bool{false, true} {
			for start := 0; start < gridSize; start++ {
				for endex := start; endex <= gridSize; endex++ {
					var opts []Option
					if trimmed {
						opts = []Option{WithStart(2), WithEndex(18)}
					}
					m := newMemory(t, templateBlocks(), opts...)
					md := modelOf(m, gridSize)
					for addr := start; addr < endex; addr++ {
						if !trimmed || (addr >= 2 && addr < 18) {
							md[addr] = int(pattern[(addr-start)%len(pattern)])
						}
					}

					require.NoError(t, m.Fill(At(int64(start)), At(int64(endex)), Bytes(pattern)))
					requireModel(t, md, m, "trimmed %v fill [%d, %d)", trimmed, start, endex)
				}
			}
		}
	})
}

// TestFlood verifies gap-only filling against the model.
func TestFlood(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		m := newMemory(t, blocksOf(1, "ABC", 6, "xyz"))
		require.NoError(t, m.Flood(At(3), At(7), Bytes([]byte("123"))))
		requireBlocks(t, m, 1, "ABC23xyz")

		m = newMemory(t, blocksOf(1, "ABC", 6, "xyz"))
		require.NoError(t, m.Flood(Auto, Auto, Value('-')))
		requireBlocks(t, m, 1, "ABC--xyz")
	})

	t.Run("grid", func(t *testing.T) {
		pattern := []byte("xyz")
		for start := 0; start < gridSize; start++ {
			for endex := start; endex <= gridSize; endex++ {
				m := newMemory(t, templateBlocks())
				md := modelOf(m, gridSize)
				for addr := start; addr < endex; addr++ {
					if md[addr] < 0 {
						md[addr] = int(pattern[(addr-start)%len(pattern)])
					}
				}

				require.NoError(t, m.Flood(At(int64(start)), At(int64(endex)), Bytes(pattern)))
				requireModel(t, md, m, "flood [%d, %d)", start, endex)
			}
		}
	})

	t.Run("empty pattern", func(t *testing.T) {
		m := newMemory(t, helloBlocks())
		require.ErrorIs(t, m.Flood(Auto, Auto, Bytes([]byte{})), errs.ErrEmptyPattern)
	})
}

// TestClearCrop verifies range removal without shifting.
func TestClearCrop(t *testing.T) {
	for start := 0; start < gridSize; start++ {
		for endex := start; endex <= gridSize; endex++ {
			m := newMemory(t, templateBlocks())
			md := modelOf(m, gridSize)
			cleared := append(model{}, md...)
			for addr := start; addr < endex; addr++ {
				cleared[addr] = -1
			}
			require.NoError(t, m.Clear(At(int64(start)), At(int64(endex))))
			requireModel(t, cleared, m, "clear [%d, %d)", start, endex)

			m = newMemory(t, templateBlocks())
			cropped := append(model{}, md...)
			for addr := range cropped {
				if addr < start || addr >= endex {
					cropped[addr] = -1
				}
			}
			require.NoError(t, m.Crop(At(int64(start)), At(int64(endex))))
			requireModel(t, cropped, m, "crop [%d, %d)", start, endex)
		}
	}

	m := newMemory(t, templateBlocks())
	require.NoError(t, m.Crop(At(9), Auto))
	requireBlocks(t, m, 9, "9A", 12, "C", 14, "EF", 18, "I")
	require.NoError(t, m.Clear(Auto, Auto))
	require.True(t, m.IsEmpty())
}

// TestSetDefault verifies conditional single cell writes.
func TestSetDefault(t *testing.T) {
	m := newMemory(t, helloBlocks())

	c, err := m.SetDefault(3, Value('x'))
	require.NoError(t, err)
	require.Equal(t, Byte('e'), c)

	c, err = m.SetDefault(8, Value('x'))
	require.NoError(t, err)
	require.Equal(t, Byte('x'), c)
	require.Equal(t, Byte('x'), m.Peek(8))

	c, err = m.SetDefault(9, None())
	require.NoError(t, err)
	require.Equal(t, Gap, c)
	require.Equal(t, Gap, m.Peek(9))

	_, err = m.SetDefault(0, Bytes([]byte("xy")))
	require.ErrorIs(t, err, errs.ErrExpectingSingleItem)
}

// TestUpdate verifies bulk pokes from pairs and from other memories.
func TestUpdate(t *testing.T) {
	m := newMemory(t, helloBlocks())
	cells := map[int64]Cell{7: Byte('_'), 8: Byte('_'), 9: Byte('_'), 2: Gap}
	require.NoError(t, m.Update(ItemsOf(cells)))
	requireBlocks(t, m, 3, "ello___World!")

	other := newMemory(t, blocksOf(0, "ab", 20, "cd"))
	require.NoError(t, m.UpdateFrom(other, false))
	requireBlocks(t, m, 0, "ab", 3, "ello___World!", 20, "cd")

	u, err := New(WithUnsignedAddresses())
	require.NoError(t, err)
	require.ErrorIs(t, u.Update(maps.All(map[int64]Cell{1: Byte('a'), -1: Byte('b')})), errs.ErrNegativeAddress)
	require.True(t, u.IsEmpty())
}
