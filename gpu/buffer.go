// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"unsafe"
)

// Buffer is a GPU buffer object holding vertex, index or
// per-instance attribute data.
type Buffer struct {
	// Target is the binding target, e.g. [ArrayBuffer].
	Target Enum

	// Usage is the usage hint the data was uploaded with.
	Usage Enum

	// Size is the size of the data in bytes.
	Size int

	ctx Context
	id  uint32
}

// NewBufferFrom creates a new buffer for the given target and
// uploads data to it. The buffer is left bound to target.
func NewBufferFrom[T any](ctx Context, target Enum, data []T, usage Enum) *Buffer {
	bf := &Buffer{Target: target, Usage: usage, ctx: ctx}
	bf.id = ctx.GenBuffer()
	bf.SetData(unsafe.Pointer(unsafe.SliceData(data)), len(data)*int(unsafe.Sizeof(*new(T))))
	return bf
}

// SetData binds the buffer and replaces its contents with
// size bytes starting at data. A nil data allocates without
// initializing.
func (bf *Buffer) SetData(data unsafe.Pointer, size int) {
	bf.Size = size
	bf.ctx.BindBuffer(bf.Target, bf.id)
	bf.ctx.BufferData(bf.Target, size, data, bf.Usage)
}

// ID returns the GPU name of the buffer, 0 once released.
func (bf *Buffer) ID() uint32 {
	return bf.id
}

// Bind binds the buffer to its target.
func (bf *Buffer) Bind() {
	bf.ctx.BindBuffer(bf.Target, bf.id)
}

// Release deletes the GPU buffer.
func (bf *Buffer) Release() {
	if bf == nil || bf.id == 0 {
		return
	}
	bf.ctx.DeleteBuffer(bf.id)
	bf.id = 0
}

// VertexArray is a vertex array object, which records the attribute
// layout and the element buffer bound while it is current.
type VertexArray struct {
	ctx Context
	id  uint32
}

// NewVertexArray creates a new vertex array object.
func NewVertexArray(ctx Context) *VertexArray {
	return &VertexArray{ctx: ctx, id: ctx.GenVertexArray()}
}

// ID returns the GPU name of the vertex array, 0 once released.
func (va *VertexArray) ID() uint32 {
	return va.id
}

// Bind makes this the current vertex array.
func (va *VertexArray) Bind() {
	va.ctx.BindVertexArray(va.id)
}

// Unbind clears the current vertex array binding.
func (va *VertexArray) Unbind() {
	va.ctx.BindVertexArray(0)
}

// Attrib enables attribute index and points it at the currently bound
// array buffer with the given float component count, stride and
// byte offset. A divisor of 0 advances the attribute per vertex,
// a divisor of 1 advances it once per instance.
// The vertex array must be bound.
func (va *VertexArray) Attrib(index uint32, size int32, stride int32, offset uintptr, divisor uint32) {
	va.ctx.EnableVertexAttribArray(index)
	va.ctx.VertexAttribPointer(index, size, Float, false, stride, offset)
	if divisor > 0 {
		va.ctx.VertexAttribDivisor(index, divisor)
	}
}

// Release deletes the vertex array object.
func (va *VertexArray) Release() {
	if va == nil || va.id == 0 {
		return
	}
	va.ctx.DeleteVertexArray(va.id)
	va.id = 0
}
