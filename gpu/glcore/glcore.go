// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glcore implements [gpu.Context] on an OpenGL 3.3 core
// profile context, using the go-gl bindings. The context must be
// current on the calling goroutine's locked OS thread.
package glcore

import (
	"fmt"
	"strings"
	"unsafe"

	"cogentcore.org/asteroids/gpu"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Context is a [gpu.Context] that calls OpenGL directly.
type Context struct{}

// New loads the OpenGL function pointers for the current context
// and returns a [gpu.Context] for it.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glcore: loading OpenGL functions: %w", err)
	}
	return &Context{}, nil
}

func (c *Context) GetString(name gpu.Enum) string {
	return gl.GoStr(gl.GetString(uint32(name)))
}

func (c *Context) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (c *Context) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (c *Context) BindBuffer(target gpu.Enum, id uint32) {
	gl.BindBuffer(uint32(target), id)
}

func (c *Context) BufferData(target gpu.Enum, size int, data unsafe.Pointer, usage gpu.Enum) {
	gl.BufferData(uint32(target), size, data, uint32(usage))
}

func (c *Context) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (c *Context) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (c *Context) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (c *Context) VertexAttribPointer(index uint32, size int32, xtype gpu.Enum, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(xtype), normalized, stride, offset)
}

func (c *Context) VertexAttribDivisor(index, divisor uint32) {
	gl.VertexAttribDivisor(index, divisor)
}

func (c *Context) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (c *Context) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (c *Context) ActiveTexture(unit gpu.Enum) {
	gl.ActiveTexture(uint32(unit))
}

func (c *Context) BindTexture(target gpu.Enum, id uint32) {
	gl.BindTexture(uint32(target), id)
}

func (c *Context) PixelStorei(pname gpu.Enum, param int32) {
	gl.PixelStorei(uint32(pname), param)
}

func (c *Context) TexImage2D(target gpu.Enum, level, internalFormat, width, height int32, format, xtype gpu.Enum, pixels unsafe.Pointer) {
	gl.TexImage2D(uint32(target), level, internalFormat, width, height, 0, uint32(format), uint32(xtype), pixels)
}

func (c *Context) TexImage2DMultisample(target gpu.Enum, samples int32, internalFormat gpu.Enum, width, height int32, fixedLocations bool) {
	gl.TexImage2DMultisample(uint32(target), samples, uint32(internalFormat), width, height, fixedLocations)
}

func (c *Context) TexParameteri(target, pname gpu.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (c *Context) GenerateMipmap(target gpu.Enum) {
	gl.GenerateMipmap(uint32(target))
}

func (c *Context) GenRenderbuffer() uint32 {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return id
}

func (c *Context) DeleteRenderbuffer(id uint32) {
	gl.DeleteRenderbuffers(1, &id)
}

func (c *Context) BindRenderbuffer(target gpu.Enum, id uint32) {
	gl.BindRenderbuffer(uint32(target), id)
}

func (c *Context) RenderbufferStorageMultisample(target gpu.Enum, samples int32, internalFormat gpu.Enum, width, height int32) {
	gl.RenderbufferStorageMultisample(uint32(target), samples, uint32(internalFormat), width, height)
}

func (c *Context) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (c *Context) DeleteFramebuffer(id uint32) {
	gl.DeleteFramebuffers(1, &id)
}

func (c *Context) BindFramebuffer(target gpu.Enum, id uint32) {
	gl.BindFramebuffer(uint32(target), id)
}

func (c *Context) FramebufferTexture2D(target, attachment, texTarget gpu.Enum, texture uint32, level int32) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), texture, level)
}

func (c *Context) FramebufferRenderbuffer(target, attachment, rbTarget gpu.Enum, renderbuffer uint32) {
	gl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(rbTarget), renderbuffer)
}

func (c *Context) CheckFramebufferStatus(target gpu.Enum) gpu.Enum {
	return gpu.Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (c *Context) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter gpu.Enum) {
	gl.BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, uint32(mask), uint32(filter))
}

func (c *Context) CreateShader(xtype gpu.Enum) uint32 {
	return gl.CreateShader(uint32(xtype))
}

func (c *Context) ShaderSource(shader uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
}

func (c *Context) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (c *Context) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (c *Context) ShaderInfoLog(shader uint32) string {
	var n int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(shader, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *Context) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (c *Context) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (c *Context) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (c *Context) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (c *Context) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (c *Context) ProgramInfoLog(program uint32) string {
	var n int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(program, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *Context) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (c *Context) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) Uniform1i(location, v int32) {
	gl.Uniform1i(location, v)
}

func (c *Context) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (c *Context) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (c *Context) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (c *Context) GetUniformi(program uint32, location int32) int32 {
	var v int32
	gl.GetUniformiv(program, location, &v)
	return v
}

func (c *Context) GetUniformf(program uint32, location int32) float32 {
	var v float32
	gl.GetUniformfv(program, location, &v)
	return v
}

func (c *Context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *Context) Clear(mask gpu.Enum) {
	gl.Clear(uint32(mask))
}

func (c *Context) Enable(capability gpu.Enum) {
	gl.Enable(uint32(capability))
}

func (c *Context) Disable(capability gpu.Enum) {
	gl.Disable(uint32(capability))
}

func (c *Context) BlendFunc(sfactor, dfactor gpu.Enum) {
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
}

func (c *Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (c *Context) DrawArrays(mode gpu.Enum, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (c *Context) DrawElements(mode gpu.Enum, count int32, xtype gpu.Enum, offset uintptr) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(xtype), offset)
}

func (c *Context) DrawElementsInstanced(mode gpu.Enum, count int32, xtype gpu.Enum, offset uintptr, instances int32) {
	gl.DrawElementsInstanced(uint32(mode), count, uint32(xtype), gl.PtrOffset(int(offset)), instances)
}

var _ gpu.Context = (*Context)(nil)
