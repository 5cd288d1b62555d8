// Package pool provides pooled byte buffers for assembling MAT-file data
// elements.
//
// A per-channel output file is encoded as one in-memory element (array
// flags, dimensions, name and payload) before compression, so buffers in
// the sample-payload size range are requested and released once per channel.
// Pooling them keeps the per-channel allocation cost flat across a run.
package pool

import (
	"io"
	"sync"
)

const (
	// ElementBufferDefaultSize is the initial capacity of buffers used to
	// assemble a single MAT-file data element.
	ElementBufferDefaultSize = 64 * 1024 // 64KiB

	// ElementBufferMaxThreshold is the largest buffer capacity retained by
	// the pool. Channels with very large sample arrays grow their buffer
	// past this threshold; returning such buffers would pin the memory for
	// the rest of the process lifetime, so they are discarded instead.
	ElementBufferMaxThreshold = 16 * 1024 * 1024 // 16MiB
)

// ByteBuffer is a growable byte slice with explicit length control.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for
// reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Write appends the contents of data to the buffer, growing it as needed.
// It implements io.Writer and never returns an error.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally. The pool can be configured with a maximum
// capacity threshold to avoid retaining overly large buffers.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the
// specified default size. Buffers whose capacity exceeds maxThreshold are
// discarded on Put; a maxThreshold of 0 disables the limit.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var elementPool = NewByteBufferPool(ElementBufferDefaultSize, ElementBufferMaxThreshold)

// GetElementBuffer retrieves a ByteBuffer from the default element pool.
func GetElementBuffer() *ByteBuffer {
	return elementPool.Get()
}

// PutElementBuffer returns a ByteBuffer to the default element pool.
func PutElementBuffer(bb *ByteBuffer) {
	elementPool.Put(bb)
}
