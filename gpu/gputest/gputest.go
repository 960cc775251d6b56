// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gputest provides a software [gpu.Context] for tests.
// It records every call and simulates enough OpenGL state to check
// binding order, resource lifetimes, uniform round trips and the
// flow of color through framebuffers, without a GPU.
//
// Pixels are not rasterized. Each color texture and the window
// framebuffer hold a single fill color: Clear fills the draw
// framebuffer with the clear color, BlitFramebuffer copies the fill,
// and DrawArrays is modeled as a fullscreen textured quad that fills
// the draw framebuffer with the color of the 2D texture bound to
// unit 0. Indexed draws are recorded but leave colors untouched.
package gputest

import (
	"fmt"
	"image"
	"regexp"
	"strings"
	"unsafe"

	"cogentcore.org/asteroids/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Color is an RGBA fill color.
type Color [4]float32

// Call is one recorded Context call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// ClearEvent records a Clear call with the state it applied to.
type ClearEvent struct {
	Framebuffer uint32
	Mask        gpu.Enum
	Color       Color
	DepthTest   bool
}

// DrawEvent records a draw call with the state it applied to.
type DrawEvent struct {
	Name        string
	Mode        gpu.Enum
	Count       int32
	Instances   int32
	Program     uint32
	VertexArray uint32
	Framebuffer uint32
	DepthTest   bool
}

// Attrib is the recorded state of one vertex attribute of a vertex array.
type Attrib struct {
	Enabled bool
	Buffer  uint32
	Size    int32
	Stride  int32
	Offset  uintptr
	Divisor uint32
}

type buffer struct {
	target gpu.Enum
	size   int
	usage  gpu.Enum
}

type vertexArray struct {
	attribs map[uint32]*Attrib
	element uint32
}

type texture struct {
	target  gpu.Enum
	size    image.Point
	samples int
	format  gpu.Enum
	image   bool
	mipmap  bool
	params  map[gpu.Enum]int32
	color   Color
}

type renderbuffer struct {
	size    image.Point
	samples int
	format  gpu.Enum
}

type framebuffer struct {
	color        uint32
	colorTarget  gpu.Enum
	depthStencil uint32
}

type shader struct {
	xtype    gpu.Enum
	src      string
	compiled bool
	log      string
}

type uniform struct {
	name  string
	xtype string
}

type program struct {
	shaders  []uint32
	linked   bool
	log      string
	uniforms []uniform
	values   map[int32]any
}

// Context is a software [gpu.Context]. The zero value is not usable;
// use [New].
type Context struct {
	// Calls is the log of all calls, in order.
	Calls []Call

	// Clears and Draws are the logs of Clear and draw calls.
	Clears []ClearEvent
	Draws  []DrawEvent

	// Errors collects misuse that a real driver would flag
	// as a GL error, such as writing an invalid uniform location.
	Errors []string

	// IncompleteStatus, if non-zero, is returned by
	// CheckFramebufferStatus for every framebuffer object.
	IncompleteStatus gpu.Enum

	// VersionString is returned by GetString(gpu.Version).
	VersionString string

	nextID        uint32
	buffers       map[uint32]*buffer
	vertexArrays  map[uint32]*vertexArray
	textures      map[uint32]*texture
	renderbuffers map[uint32]*renderbuffer
	framebuffers  map[uint32]*framebuffer
	shaders       map[uint32]*shader
	programs      map[uint32]*program

	arrayBuffer  uint32
	vertexArray  uint32
	readFB       uint32
	drawFB       uint32
	renderbuf    uint32
	program      uint32
	activeUnit   int
	units        map[int]map[gpu.Enum]uint32
	enabled      map[gpu.Enum]bool
	clearColor   Color
	screen       Color
	viewport     [4]int32
	blendFactors [2]gpu.Enum
	pixelStore   map[gpu.Enum]int32
}

// New returns a new software context with nothing bound.
func New() *Context {
	return &Context{
		VersionString: "3.3.0 gputest",
		buffers:       map[uint32]*buffer{},
		vertexArrays:  map[uint32]*vertexArray{},
		textures:      map[uint32]*texture{},
		renderbuffers: map[uint32]*renderbuffer{},
		framebuffers:  map[uint32]*framebuffer{},
		shaders:       map[uint32]*shader{},
		programs:      map[uint32]*program{},
		units:         map[int]map[gpu.Enum]uint32{},
		enabled:       map[gpu.Enum]bool{},
		pixelStore:    map[gpu.Enum]int32{},
	}
}

func (c *Context) record(name string, args ...any) {
	c.Calls = append(c.Calls, Call{Name: name, Args: args})
}

func (c *Context) errorf(format string, args ...any) {
	c.Errors = append(c.Errors, fmt.Sprintf(format, args...))
}

func (c *Context) genID() uint32 {
	c.nextID++
	return c.nextID
}

////////  Inspection

// Reset clears the call, clear, draw and error logs, keeping all state.
func (c *Context) Reset() {
	c.Calls = nil
	c.Clears = nil
	c.Draws = nil
	c.Errors = nil
}

// Count returns the number of recorded calls with the given name.
func (c *Context) Count(name string) int {
	n := 0
	for _, cl := range c.Calls {
		if cl.Name == name {
			n++
		}
	}
	return n
}

// Named returns the recorded calls with the given name, in order.
func (c *Context) Named(name string) []Call {
	var calls []Call
	for _, cl := range c.Calls {
		if cl.Name == name {
			calls = append(calls, cl)
		}
	}
	return calls
}

// Names returns the names of all recorded calls, in order.
func (c *Context) Names() []string {
	names := make([]string, len(c.Calls))
	for i, cl := range c.Calls {
		names[i] = cl.Name
	}
	return names
}

// LiveObjects returns the number of GPU objects that have been
// created and not yet deleted.
func (c *Context) LiveObjects() int {
	return len(c.buffers) + len(c.vertexArrays) + len(c.textures) + len(c.renderbuffers) +
		len(c.framebuffers) + len(c.shaders) + len(c.programs)
}

// ScreenColor returns the fill color of the window framebuffer.
func (c *Context) ScreenColor() Color {
	return c.screen
}

// FramebufferColor returns the fill color of the color attachment
// of framebuffer id, or of the window framebuffer for id 0.
func (c *Context) FramebufferColor(id uint32) Color {
	if id == 0 {
		return c.screen
	}
	fb, ok := c.framebuffers[id]
	if !ok {
		return Color{}
	}
	if tx, ok := c.textures[fb.color]; ok {
		return tx.color
	}
	return Color{}
}

// TextureSize returns the size, format and whether an image
// was specified for texture id.
func (c *Context) TextureSize(id uint32) (size image.Point, format gpu.Enum, hasImage bool) {
	tx, ok := c.textures[id]
	if !ok {
		return
	}
	return tx.size, tx.format, tx.image
}

// TextureSamples returns the sample count of texture id.
func (c *Context) TextureSamples(id uint32) int {
	if tx, ok := c.textures[id]; ok {
		return tx.samples
	}
	return 0
}

// TextureParam returns the value of a texture parameter of texture id.
func (c *Context) TextureParam(id uint32, pname gpu.Enum) int32 {
	if tx, ok := c.textures[id]; ok {
		return tx.params[pname]
	}
	return 0
}

// TextureHasMipmap returns whether GenerateMipmap was called on texture id.
func (c *Context) TextureHasMipmap(id uint32) bool {
	if tx, ok := c.textures[id]; ok {
		return tx.mipmap
	}
	return false
}

// BufferSize returns the size in bytes of buffer id, -1 if it does not exist.
func (c *Context) BufferSize(id uint32) int {
	if bf, ok := c.buffers[id]; ok {
		return bf.size
	}
	return -1
}

// VertexAttrib returns the state of attribute index of vertex array vao.
func (c *Context) VertexAttrib(vao, index uint32) (Attrib, bool) {
	va, ok := c.vertexArrays[vao]
	if !ok {
		return Attrib{}, false
	}
	at, ok := va.attribs[index]
	if !ok {
		return Attrib{}, false
	}
	return *at, true
}

// ElementBuffer returns the element buffer recorded in vertex array vao.
func (c *Context) ElementBuffer(vao uint32) uint32 {
	if va, ok := c.vertexArrays[vao]; ok {
		return va.element
	}
	return 0
}

// Enabled returns whether capability is enabled.
func (c *Context) Enabled(capability gpu.Enum) bool {
	return c.enabled[capability]
}

// CurrentProgram returns the program in use.
func (c *Context) CurrentProgram() uint32 {
	return c.program
}

// CurrentVertexArray returns the bound vertex array.
func (c *Context) CurrentVertexArray() uint32 {
	return c.vertexArray
}

// ActiveUnit returns the active texture unit index.
func (c *Context) ActiveUnit() int {
	return c.activeUnit
}

// BoundTexture returns the texture bound to target on the given unit.
func (c *Context) BoundTexture(unit int, target gpu.Enum) uint32 {
	return c.units[unit][target]
}

// BoundFramebuffers returns the read and draw framebuffer bindings.
func (c *Context) BoundFramebuffers() (read, draw uint32) {
	return c.readFB, c.drawFB
}

// CurrentViewport returns the viewport as x, y, width, height.
func (c *Context) CurrentViewport() [4]int32 {
	return c.viewport
}

// BlendFactors returns the source and destination blend factors.
func (c *Context) BlendFactors() (src, dst gpu.Enum) {
	return c.blendFactors[0], c.blendFactors[1]
}

////////  gpu.Context

func (c *Context) GetString(name gpu.Enum) string {
	c.record("GetString", name)
	switch name {
	case gpu.Version:
		return c.VersionString
	case gpu.Vendor, gpu.Renderer:
		return "gputest"
	}
	return ""
}

func (c *Context) GenBuffer() uint32 {
	id := c.genID()
	c.buffers[id] = &buffer{}
	c.record("GenBuffer", id)
	return id
}

func (c *Context) DeleteBuffer(id uint32) {
	c.record("DeleteBuffer", id)
	delete(c.buffers, id)
	if c.arrayBuffer == id {
		c.arrayBuffer = 0
	}
}

func (c *Context) BindBuffer(target gpu.Enum, id uint32) {
	c.record("BindBuffer", target, id)
	if bf, ok := c.buffers[id]; ok {
		bf.target = target
	} else if id != 0 {
		c.errorf("BindBuffer: unknown buffer %d", id)
	}
	switch target {
	case gpu.ArrayBuffer:
		c.arrayBuffer = id
	case gpu.ElementArrayBuffer:
		if va, ok := c.vertexArrays[c.vertexArray]; ok {
			va.element = id
		}
	}
}

func (c *Context) BufferData(target gpu.Enum, size int, data unsafe.Pointer, usage gpu.Enum) {
	c.record("BufferData", target, size, usage)
	var id uint32
	switch target {
	case gpu.ArrayBuffer:
		id = c.arrayBuffer
	case gpu.ElementArrayBuffer:
		if va, ok := c.vertexArrays[c.vertexArray]; ok {
			id = va.element
		}
	}
	bf, ok := c.buffers[id]
	if !ok {
		c.errorf("BufferData: no buffer bound to 0x%X", uint32(target))
		return
	}
	bf.size = size
	bf.usage = usage
}

func (c *Context) GenVertexArray() uint32 {
	id := c.genID()
	c.vertexArrays[id] = &vertexArray{attribs: map[uint32]*Attrib{}}
	c.record("GenVertexArray", id)
	return id
}

func (c *Context) DeleteVertexArray(id uint32) {
	c.record("DeleteVertexArray", id)
	delete(c.vertexArrays, id)
	if c.vertexArray == id {
		c.vertexArray = 0
	}
}

func (c *Context) BindVertexArray(id uint32) {
	c.record("BindVertexArray", id)
	if _, ok := c.vertexArrays[id]; !ok && id != 0 {
		c.errorf("BindVertexArray: unknown vertex array %d", id)
	}
	c.vertexArray = id
}

func (c *Context) attrib(index uint32) *Attrib {
	va, ok := c.vertexArrays[c.vertexArray]
	if !ok {
		c.errorf("vertex attribute %d set with no vertex array bound", index)
		return &Attrib{}
	}
	at, ok := va.attribs[index]
	if !ok {
		at = &Attrib{}
		va.attribs[index] = at
	}
	return at
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.record("EnableVertexAttribArray", index)
	c.attrib(index).Enabled = true
}

func (c *Context) VertexAttribPointer(index uint32, size int32, xtype gpu.Enum, normalized bool, stride int32, offset uintptr) {
	c.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
	at := c.attrib(index)
	at.Buffer = c.arrayBuffer
	at.Size = size
	at.Stride = stride
	at.Offset = offset
}

func (c *Context) VertexAttribDivisor(index, divisor uint32) {
	c.record("VertexAttribDivisor", index, divisor)
	c.attrib(index).Divisor = divisor
}

func (c *Context) GenTexture() uint32 {
	id := c.genID()
	c.textures[id] = &texture{params: map[gpu.Enum]int32{}}
	c.record("GenTexture", id)
	return id
}

func (c *Context) DeleteTexture(id uint32) {
	c.record("DeleteTexture", id)
	delete(c.textures, id)
	for _, tg := range c.units {
		for target, tid := range tg {
			if tid == id {
				tg[target] = 0
			}
		}
	}
}

func (c *Context) ActiveTexture(unit gpu.Enum) {
	c.record("ActiveTexture", unit)
	c.activeUnit = int(unit - gpu.Texture0)
}

func (c *Context) BindTexture(target gpu.Enum, id uint32) {
	c.record("BindTexture", target, id)
	if tx, ok := c.textures[id]; ok {
		tx.target = target
	} else if id != 0 {
		c.errorf("BindTexture: unknown texture %d", id)
	}
	tg := c.units[c.activeUnit]
	if tg == nil {
		tg = map[gpu.Enum]uint32{}
		c.units[c.activeUnit] = tg
	}
	tg[target] = id
}

func (c *Context) boundTexture(target gpu.Enum) *texture {
	tx, ok := c.textures[c.units[c.activeUnit][target]]
	if !ok {
		c.errorf("no texture bound to 0x%X on unit %d", uint32(target), c.activeUnit)
		return &texture{params: map[gpu.Enum]int32{}}
	}
	return tx
}

func (c *Context) PixelStorei(pname gpu.Enum, param int32) {
	c.record("PixelStorei", pname, param)
	c.pixelStore[pname] = param
}

func (c *Context) TexImage2D(target gpu.Enum, level, internalFormat, width, height int32, format, xtype gpu.Enum, pixels unsafe.Pointer) {
	c.record("TexImage2D", target, level, internalFormat, width, height, format, xtype, pixels != nil)
	tx := c.boundTexture(target)
	tx.size = image.Pt(int(width), int(height))
	tx.format = format
	tx.samples = 1
	tx.image = pixels != nil
}

func (c *Context) TexImage2DMultisample(target gpu.Enum, samples int32, internalFormat gpu.Enum, width, height int32, fixedLocations bool) {
	c.record("TexImage2DMultisample", target, samples, internalFormat, width, height, fixedLocations)
	tx := c.boundTexture(target)
	tx.size = image.Pt(int(width), int(height))
	tx.format = internalFormat
	tx.samples = int(samples)
}

func (c *Context) TexParameteri(target, pname gpu.Enum, param int32) {
	c.record("TexParameteri", target, pname, param)
	c.boundTexture(target).params[pname] = param
}

func (c *Context) GenerateMipmap(target gpu.Enum) {
	c.record("GenerateMipmap", target)
	c.boundTexture(target).mipmap = true
}

func (c *Context) GenRenderbuffer() uint32 {
	id := c.genID()
	c.renderbuffers[id] = &renderbuffer{}
	c.record("GenRenderbuffer", id)
	return id
}

func (c *Context) DeleteRenderbuffer(id uint32) {
	c.record("DeleteRenderbuffer", id)
	delete(c.renderbuffers, id)
}

func (c *Context) BindRenderbuffer(target gpu.Enum, id uint32) {
	c.record("BindRenderbuffer", target, id)
	c.renderbuf = id
}

func (c *Context) RenderbufferStorageMultisample(target gpu.Enum, samples int32, internalFormat gpu.Enum, width, height int32) {
	c.record("RenderbufferStorageMultisample", target, samples, internalFormat, width, height)
	rb, ok := c.renderbuffers[c.renderbuf]
	if !ok {
		c.errorf("RenderbufferStorageMultisample: no renderbuffer bound")
		return
	}
	rb.size = image.Pt(int(width), int(height))
	rb.samples = int(samples)
	rb.format = internalFormat
}

func (c *Context) GenFramebuffer() uint32 {
	id := c.genID()
	c.framebuffers[id] = &framebuffer{}
	c.record("GenFramebuffer", id)
	return id
}

func (c *Context) DeleteFramebuffer(id uint32) {
	c.record("DeleteFramebuffer", id)
	delete(c.framebuffers, id)
	if c.readFB == id {
		c.readFB = 0
	}
	if c.drawFB == id {
		c.drawFB = 0
	}
}

func (c *Context) BindFramebuffer(target gpu.Enum, id uint32) {
	c.record("BindFramebuffer", target, id)
	if _, ok := c.framebuffers[id]; !ok && id != 0 {
		c.errorf("BindFramebuffer: unknown framebuffer %d", id)
	}
	switch target {
	case gpu.ReadFramebuffer:
		c.readFB = id
	case gpu.DrawFramebuffer:
		c.drawFB = id
	default:
		c.readFB = id
		c.drawFB = id
	}
}

func (c *Context) targetFramebuffer(target gpu.Enum) uint32 {
	if target == gpu.ReadFramebuffer {
		return c.readFB
	}
	return c.drawFB
}

func (c *Context) FramebufferTexture2D(target, attachment, texTarget gpu.Enum, tex uint32, level int32) {
	c.record("FramebufferTexture2D", target, attachment, texTarget, tex, level)
	fb, ok := c.framebuffers[c.targetFramebuffer(target)]
	if !ok {
		c.errorf("FramebufferTexture2D: no framebuffer bound")
		return
	}
	if attachment == gpu.ColorAttachment0 {
		fb.color = tex
		fb.colorTarget = texTarget
	}
}

func (c *Context) FramebufferRenderbuffer(target, attachment, rbTarget gpu.Enum, rb uint32) {
	c.record("FramebufferRenderbuffer", target, attachment, rbTarget, rb)
	fb, ok := c.framebuffers[c.targetFramebuffer(target)]
	if !ok {
		c.errorf("FramebufferRenderbuffer: no framebuffer bound")
		return
	}
	if attachment == gpu.DepthStencilAttachment {
		fb.depthStencil = rb
	}
}

func (c *Context) CheckFramebufferStatus(target gpu.Enum) gpu.Enum {
	c.record("CheckFramebufferStatus", target)
	id := c.targetFramebuffer(target)
	if id == 0 {
		return gpu.FramebufferComplete
	}
	if c.IncompleteStatus != 0 {
		return c.IncompleteStatus
	}
	fb := c.framebuffers[id]
	tx, ok := c.textures[fb.color]
	if !ok {
		return gpu.FramebufferIncompleteMissingAttachment
	}
	if rb, ok := c.renderbuffers[fb.depthStencil]; ok {
		if rb.samples != tx.samples && !(rb.samples <= 1 && tx.samples <= 1) {
			return gpu.FramebufferIncompleteMultisample
		}
		if rb.size != tx.size {
			return gpu.FramebufferIncompleteAttachment
		}
	}
	return gpu.FramebufferComplete
}

func (c *Context) colorSize(id uint32) (image.Point, int) {
	if id == 0 {
		return image.Pt(int(c.viewport[2]), int(c.viewport[3])), 1
	}
	if fb, ok := c.framebuffers[id]; ok {
		if tx, ok := c.textures[fb.color]; ok {
			return tx.size, tx.samples
		}
	}
	return image.Point{}, 0
}

func (c *Context) setColor(id uint32, clr Color) {
	if id == 0 {
		c.screen = clr
		return
	}
	if fb, ok := c.framebuffers[id]; ok {
		if tx, ok := c.textures[fb.color]; ok {
			tx.color = clr
		}
	}
}

func (c *Context) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter gpu.Enum) {
	c.record("BlitFramebuffer", srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
	if c.readFB == c.drawFB {
		c.errorf("BlitFramebuffer: read and draw framebuffers are the same")
		return
	}
	ssz, ssamp := c.colorSize(c.readFB)
	dsz, _ := c.colorSize(c.drawFB)
	if ssamp > 1 && (ssz != dsz || srcX1-srcX0 != dstX1-dstX0 || srcY1-srcY0 != dstY1-dstY0) {
		c.errorf("BlitFramebuffer: multisample resolve with mismatched sizes %v -> %v", ssz, dsz)
		return
	}
	if mask&gpu.ColorBufferBit != 0 {
		c.setColor(c.drawFB, c.FramebufferColor(c.readFB))
	}
}

func (c *Context) CreateShader(xtype gpu.Enum) uint32 {
	id := c.genID()
	c.shaders[id] = &shader{xtype: xtype}
	c.record("CreateShader", xtype, id)
	return id
}

func (c *Context) ShaderSource(id uint32, src string) {
	c.record("ShaderSource", id)
	if sh, ok := c.shaders[id]; ok {
		sh.src = src
	}
}

func (c *Context) CompileShader(id uint32) {
	c.record("CompileShader", id)
	sh, ok := c.shaders[id]
	if !ok {
		return
	}
	src := strings.TrimSpace(sh.src)
	switch {
	case src == "":
		sh.log = "0:1(1): error: syntax error, unexpected end of file"
	case strings.Contains(src, "#error"):
		sh.log = "0:1(1): error: #error directive"
	case !strings.Contains(src, "void main"):
		sh.log = "0:1(1): error: function `main' is not defined"
	default:
		sh.compiled = true
		sh.log = ""
		return
	}
	sh.compiled = false
}

func (c *Context) ShaderCompiled(id uint32) bool {
	sh, ok := c.shaders[id]
	return ok && sh.compiled
}

func (c *Context) ShaderInfoLog(id uint32) string {
	if sh, ok := c.shaders[id]; ok {
		return sh.log
	}
	return ""
}

func (c *Context) DeleteShader(id uint32) {
	c.record("DeleteShader", id)
	delete(c.shaders, id)
}

func (c *Context) CreateProgram() uint32 {
	id := c.genID()
	c.programs[id] = &program{values: map[int32]any{}}
	c.record("CreateProgram", id)
	return id
}

func (c *Context) AttachShader(prog, sh uint32) {
	c.record("AttachShader", prog, sh)
	if pr, ok := c.programs[prog]; ok {
		pr.shaders = append(pr.shaders, sh)
	}
}

var uniformRe = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*;`)

func (c *Context) LinkProgram(prog uint32) {
	c.record("LinkProgram", prog)
	pr, ok := c.programs[prog]
	if !ok {
		return
	}
	var vert, frag bool
	seen := map[string]bool{}
	pr.uniforms = nil
	for _, id := range pr.shaders {
		sh, ok := c.shaders[id]
		if !ok || !sh.compiled {
			pr.log = fmt.Sprintf("error: shader %d is not compiled", id)
			return
		}
		switch sh.xtype {
		case gpu.VertexShader:
			vert = true
		case gpu.FragmentShader:
			frag = true
		}
		for _, m := range uniformRe.FindAllStringSubmatch(sh.src, -1) {
			if !seen[m[2]] {
				seen[m[2]] = true
				pr.uniforms = append(pr.uniforms, uniform{name: m[2], xtype: m[1]})
			}
		}
	}
	if !vert || !frag {
		pr.log = "error: linking requires a vertex and a fragment shader"
		return
	}
	pr.linked = true
	pr.log = ""
}

func (c *Context) ProgramLinked(prog uint32) bool {
	pr, ok := c.programs[prog]
	return ok && pr.linked
}

func (c *Context) ProgramInfoLog(prog uint32) string {
	if pr, ok := c.programs[prog]; ok {
		return pr.log
	}
	return ""
}

func (c *Context) DeleteProgram(prog uint32) {
	c.record("DeleteProgram", prog)
	delete(c.programs, prog)
	if c.program == prog {
		c.program = 0
	}
}

func (c *Context) UseProgram(prog uint32) {
	c.record("UseProgram", prog)
	if prog != 0 {
		if pr, ok := c.programs[prog]; !ok || !pr.linked {
			c.errorf("UseProgram: program %d is not linked", prog)
			return
		}
	}
	c.program = prog
}

func (c *Context) GetUniformLocation(prog uint32, name string) int32 {
	c.record("GetUniformLocation", prog, name)
	pr, ok := c.programs[prog]
	if !ok || !pr.linked {
		c.errorf("GetUniformLocation: program %d is not linked", prog)
		return -1
	}
	for i, u := range pr.uniforms {
		if u.name == name {
			return int32(i)
		}
	}
	return -1
}

// setUniform stores v for location of the current program.
// Location -1 is silently ignored, as in OpenGL.
func (c *Context) setUniform(location int32, v any) {
	if location == -1 {
		return
	}
	pr, ok := c.programs[c.program]
	if !ok {
		c.errorf("uniform %d set with no program in use", location)
		return
	}
	if location < 0 || int(location) >= len(pr.uniforms) {
		c.errorf("uniform location %d is invalid for program %d", location, c.program)
		return
	}
	pr.values[location] = v
}

func (c *Context) Uniform1i(location, v int32) {
	c.record("Uniform1i", location, v)
	c.setUniform(location, v)
}

func (c *Context) Uniform1f(location int32, v float32) {
	c.record("Uniform1f", location, v)
	c.setUniform(location, v)
}

func (c *Context) Uniform3f(location int32, x, y, z float32) {
	c.record("Uniform3f", location, x, y, z)
	c.setUniform(location, mgl32.Vec3{x, y, z})
}

func (c *Context) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	c.record("UniformMatrix4fv", location, m)
	c.setUniform(location, m)
}

func (c *Context) uniformValue(prog uint32, location int32) any {
	pr, ok := c.programs[prog]
	if !ok {
		return nil
	}
	return pr.values[location]
}

func (c *Context) GetUniformi(prog uint32, location int32) int32 {
	c.record("GetUniformi", prog, location)
	v, _ := c.uniformValue(prog, location).(int32)
	return v
}

func (c *Context) GetUniformf(prog uint32, location int32) float32 {
	c.record("GetUniformf", prog, location)
	v, _ := c.uniformValue(prog, location).(float32)
	return v
}

// UniformValue returns the value last set for the named uniform
// of program prog, nil if it was never set.
func (c *Context) UniformValue(prog uint32, name string) any {
	pr, ok := c.programs[prog]
	if !ok {
		return nil
	}
	for i, u := range pr.uniforms {
		if u.name == name {
			return pr.values[int32(i)]
		}
	}
	return nil
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.record("ClearColor", r, g, b, a)
	c.clearColor = Color{r, g, b, a}
}

func (c *Context) Clear(mask gpu.Enum) {
	c.record("Clear", mask)
	c.Clears = append(c.Clears, ClearEvent{Framebuffer: c.drawFB, Mask: mask, Color: c.clearColor, DepthTest: c.enabled[gpu.DepthTest]})
	if mask&gpu.ColorBufferBit != 0 {
		c.setColor(c.drawFB, c.clearColor)
	}
}

func (c *Context) Enable(capability gpu.Enum) {
	c.record("Enable", capability)
	c.enabled[capability] = true
}

func (c *Context) Disable(capability gpu.Enum) {
	c.record("Disable", capability)
	c.enabled[capability] = false
}

func (c *Context) BlendFunc(sfactor, dfactor gpu.Enum) {
	c.record("BlendFunc", sfactor, dfactor)
	c.blendFactors = [2]gpu.Enum{sfactor, dfactor}
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.record("Viewport", x, y, width, height)
	c.viewport = [4]int32{x, y, width, height}
}

func (c *Context) draw(name string, mode gpu.Enum, count, instances int32) {
	if c.program == 0 {
		c.errorf("%s with no program in use", name)
	}
	c.Draws = append(c.Draws, DrawEvent{
		Name:        name,
		Mode:        mode,
		Count:       count,
		Instances:   instances,
		Program:     c.program,
		VertexArray: c.vertexArray,
		Framebuffer: c.drawFB,
		DepthTest:   c.enabled[gpu.DepthTest],
	})
}

func (c *Context) DrawArrays(mode gpu.Enum, first, count int32) {
	c.record("DrawArrays", mode, first, count)
	c.draw("DrawArrays", mode, count, 1)
	if c.program == 0 || mode != gpu.Triangles || count < 6 {
		return
	}
	tx, ok := c.textures[c.units[0][gpu.Texture2D]]
	if !ok {
		return
	}
	c.setColor(c.drawFB, tx.color)
}

func (c *Context) DrawElements(mode gpu.Enum, count int32, xtype gpu.Enum, offset uintptr) {
	c.record("DrawElements", mode, count, xtype, offset)
	c.draw("DrawElements", mode, count, 1)
}

func (c *Context) DrawElementsInstanced(mode gpu.Enum, count int32, xtype gpu.Enum, offset uintptr, instances int32) {
	c.record("DrawElementsInstanced", mode, count, xtype, offset, instances)
	c.draw("DrawElementsInstanced", mode, count, instances)
}
