package graphics

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// BufferObject wraps one GL buffer with a fixed target and byte size.
// The chunk drawer allocates all of its frame buffers through this.
type BufferObject struct {
	ID     uint32
	Target uint32
	Size   int
}

// NewBufferObject allocates a buffer of the given byte size. data may
// be nil for an uninitialized allocation.
func NewBufferObject(target uint32, size int, data unsafe.Pointer, usage uint32) *BufferObject {
	b := &BufferObject{Target: target, Size: size}
	gl.GenBuffers(1, &b.ID)
	gl.BindBuffer(target, b.ID)
	gl.BufferData(target, size, data, usage)
	gl.BindBuffer(target, 0)
	return b
}

// Bind binds the buffer to its target.
func (b *BufferObject) Bind() {
	gl.BindBuffer(b.Target, b.ID)
}

// BindAs binds the buffer to a different target, for buffers consumed
// by more than one stage (the indirect args buffer is written as an
// SSBO and read as DRAW_INDIRECT).
func (b *BufferObject) BindAs(target uint32) {
	gl.BindBuffer(target, b.ID)
}

// BindBase binds the buffer to an indexed binding point of its target.
func (b *BufferObject) BindBase(index uint32) {
	gl.BindBufferBase(b.Target, index, b.ID)
}

// UpdateSubData uploads size bytes at the given byte offset.
func (b *BufferObject) UpdateSubData(offset, size int, data unsafe.Pointer) {
	gl.BindBuffer(b.Target, b.ID)
	gl.BufferSubData(b.Target, offset, size, data)
	gl.BindBuffer(b.Target, 0)
}

// Delete frees the buffer.
func (b *BufferObject) Delete() {
	if b.ID != 0 {
		gl.DeleteBuffers(1, &b.ID)
		b.ID = 0
	}
}
