package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, bb.Cap(), "new buffer should have specified capacity")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(ScratchBufferDefaultSize)
	bb.B = append(bb.B, "some data"...)
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_Resize(t *testing.T) {
	bb := NewByteBuffer(8)
	copy(bb.Resize(4), "abcd")
	assert.Equal(t, []byte("abcd"), bb.Bytes())
	assert.Equal(t, 8, bb.Cap(), "resize within capacity should not reallocate")

	out := bb.Resize(100)
	assert.Len(t, out, 100)
	assert.Equal(t, []byte("abcd"), out[:4], "growing should keep the prefix")
	assert.GreaterOrEqual(t, bb.Cap(), 100)

	assert.Empty(t, bb.Resize(0))
	assert.Panics(t, func() { bb.Resize(-1) })
}

func TestByteBuffer_Grow(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		length   int
		required int
		minCap   int
	}{
		{"fits", 64, 10, 20, 64},
		{"small grows by default size", 64, 60, 10, 60 + ScratchBufferDefaultSize},
		{"large grows by quarter", 8 * ScratchBufferDefaultSize, 8 * ScratchBufferDefaultSize, 1, 10 * ScratchBufferDefaultSize},
		{"large request", 16, 16, 3 * ScratchBufferDefaultSize, 16 + 3*ScratchBufferDefaultSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := NewByteBuffer(tt.capacity)
			bb.B = bb.B[:tt.length]
			bb.B[0] = 'x'

			bb.Grow(tt.required)

			assert.Equal(t, tt.length, bb.Len(), "Grow should not change the length")
			assert.GreaterOrEqual(t, bb.Cap(), tt.minCap)
			assert.Equal(t, byte('x'), bb.B[0], "Grow should keep the content")
		})
	}
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(32, 0)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 32, bb.Cap())

	bb.Resize(10)
	p.Put(bb)
	p.Put(nil)

	again := p.Get()
	assert.Equal(t, 0, again.Len(), "pooled buffers come back empty")
}

func TestByteBufferPool_DropsLargeBuffers(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	bb.Resize(1024)
	p.Put(bb)

	for range 10 {
		got := p.Get()
		assert.LessOrEqual(t, got.Cap(), 64, "oversized buffers must not be reused")
	}
}

func TestScratchPool_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				bb := GetScratch()
				out := bb.Resize(i*100 + j)
				for k := range out {
					out[k] = byte(i)
				}
				for _, v := range out {
					assert.Equal(t, byte(i), v)
				}
				PutScratch(bb)
			}
		}()
	}
	wg.Wait()
}
