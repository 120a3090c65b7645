package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)

	require.NotNil(t, bb.B)
	assert.Equal(t, 0, bb.Len(), "new buffer should be empty")
	assert.Equal(t, 64, cap(bb.B))
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.WriteString("chain")
	require.NoError(t, bb.WriteByte('\t'))
	bb.WriteString("draw")

	assert.Equal(t, "chain\tdraw", bb.String())
	assert.Equal(t, []byte("chain\tdraw"), bb.Bytes())
	assert.Equal(t, 10, bb.Len())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(BufferDefaultSize)
	bb.WriteString("some data")
	capacity := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer")
	assert.Equal(t, capacity, cap(bb.B), "Reset should keep capacity")
}

func TestGetPutBuffer(t *testing.T) {
	bb := GetBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())

	bb.WriteString("key")
	PutBuffer(bb)
	PutBuffer(nil)

	again := GetBuffer()
	require.NotNil(t, again)
	assert.Equal(t, 0, again.Len(), "pooled buffers come back empty")
	PutBuffer(again)
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	large := NewByteBuffer(32)
	large.WriteString("oversized")
	p.Put(large)

	// the oversized buffer is dropped, so Get builds a fresh one
	for i := 0; i < 10; i++ {
		bb := p.Get()
		assert.LessOrEqual(t, cap(bb.B), 16)
	}
}

func TestByteBufferPool_Concurrent(t *testing.T) {
	p := NewByteBufferPool(8, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bb := p.Get()
				bb.WriteString("x")
				assert.Equal(t, 1, bb.Len())
				p.Put(bb)
			}
		}()
	}
	wg.Wait()
}
