// Package pool recycles the scratch buffers used to assemble row keys and
// render tables.
package pool

import "sync"

// Default buffer sizes.
const (
	BufferDefaultSize  = 256
	BufferMaxThreshold = 1024 * 64 // 64KiB
)

// ByteBuffer is an append-only byte slice that can be reset and reused.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// String copies the contents into a string.
func (bb *ByteBuffer) String() string { return string(bb.B) }

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// WriteString appends s.
func (bb *ByteBuffer) WriteString(s string) {
	bb.B = append(bb.B, s...)
}

// WriteByte appends c. It never fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// ByteBufferPool is a sync.Pool of ByteBuffers. Buffers that grew beyond
// maxThreshold are dropped on Put instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given initial size.
// A zero maxThreshold keeps every buffer.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool. nil is ignored.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var defaultPool = NewByteBufferPool(BufferDefaultSize, BufferMaxThreshold)

// GetBuffer takes a buffer from the default pool.
func GetBuffer() *ByteBuffer { return defaultPool.Get() }

// PutBuffer returns a buffer to the default pool.
func PutBuffer(bb *ByteBuffer) { defaultPool.Put(bb) }
