// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu provides thin handles over OpenGL objects (buffers,
// vertex arrays, textures, renderbuffers, framebuffers and programs),
// all created and bound through an explicit [Context].
//
// OpenGL keeps the currently bound program, texture units, vertex array
// and framebuffers as global state of the context. Nothing in this
// package assumes that a binding survives a call into another component:
// every type that draws re-binds everything it needs.
//
// All handles have explicit Release methods. Use [Resources] to collect
// them so that every exit path, including error exits, releases them in
// reverse order of creation.
package gpu

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Context is the graphics context that all GPU calls go through.
// It mirrors the subset of the OpenGL 3.3 core API used by this module,
// with Go-friendly signatures. The gpu/glcore package implements it
// on top of a real OpenGL context, and gpu/gputest provides a software
// version for tests.
//
// A Context is bound to the thread that created it: all methods
// must be called from that thread.
type Context interface {
	GetString(name Enum) string

	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target Enum, id uint32)
	BufferData(target Enum, size int, data unsafe.Pointer, usage Enum)

	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype Enum, normalized bool, stride int32, offset uintptr)
	VertexAttribDivisor(index, divisor uint32)

	GenTexture() uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, id uint32)
	PixelStorei(pname Enum, param int32)
	TexImage2D(target Enum, level, internalFormat, width, height int32, format, xtype Enum, pixels unsafe.Pointer)
	TexImage2DMultisample(target Enum, samples int32, internalFormat Enum, width, height int32, fixedLocations bool)
	TexParameteri(target, pname Enum, param int32)
	GenerateMipmap(target Enum)

	GenRenderbuffer() uint32
	DeleteRenderbuffer(id uint32)
	BindRenderbuffer(target Enum, id uint32)
	RenderbufferStorageMultisample(target Enum, samples int32, internalFormat Enum, width, height int32)

	GenFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	BindFramebuffer(target Enum, id uint32)
	FramebufferTexture2D(target, attachment, texTarget Enum, texture uint32, level int32)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, renderbuffer uint32)
	CheckFramebufferStatus(target Enum) Enum
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter Enum)

	CreateShader(xtype Enum) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// GetUniformLocation returns -1 if name is not an active uniform of program.
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4fv(location int32, m mgl32.Mat4)
	GetUniformi(program uint32, location int32) int32
	GetUniformf(program uint32, location int32) float32

	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Enable(capability Enum)
	Disable(capability Enum)
	BlendFunc(sfactor, dfactor Enum)
	Viewport(x, y, width, height int32)

	DrawArrays(mode Enum, first, count int32)
	DrawElements(mode Enum, count int32, xtype Enum, offset uintptr)
	DrawElementsInstanced(mode Enum, count int32, xtype Enum, offset uintptr, instances int32)
}
