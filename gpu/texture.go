// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"unsafe"
)

// Texture is a GPU texture object.
type Texture struct {
	// Name of the texture, for debugging; auto-set to the file
	// path when loaded from a file.
	Name string

	// Target is [Texture2D] or [Texture2DMultisample].
	Target Enum

	// Size is the size of the texture image, zero until
	// an image has been specified.
	Size image.Point

	// Samples is the number of samples for multisampled textures.
	Samples int

	ctx Context
	id  uint32
}

// NewTexture generates a new texture name for the given target.
// The texture has no image until SetImage or SetMultisample is called.
func NewTexture(ctx Context, name string, target Enum) *Texture {
	return &Texture{Name: name, Target: target, ctx: ctx, id: ctx.GenTexture()}
}

// ID returns the GPU name of the texture, 0 once released.
func (tx *Texture) ID() uint32 {
	return tx.id
}

// Context returns the context the texture was created in.
func (tx *Texture) Context() Context {
	return tx.ctx
}

// Bind makes unit the active texture unit and binds the texture to it.
func (tx *Texture) Bind(unit int) {
	tx.ctx.ActiveTexture(Texture0 + Enum(unit))
	tx.ctx.BindTexture(tx.Target, tx.id)
}

// SetImage binds the texture and specifies its level 0 image with the
// given format, using the same format for the internal storage.
// pix may be nil to allocate storage without data; otherwise it must
// hold size.X*size.Y pixels of tightly packed unsigned bytes.
func (tx *Texture) SetImage(size image.Point, format Enum, pix []byte) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("gpu.Texture %q: invalid size %v", tx.Name, size)
	}
	tx.Size = size
	tx.ctx.BindTexture(tx.Target, tx.id)
	var ptr unsafe.Pointer
	if len(pix) > 0 {
		ptr = unsafe.Pointer(&pix[0])
	}
	tx.ctx.TexImage2D(tx.Target, 0, int32(format), int32(size.X), int32(size.Y), format, UnsignedByte, ptr)
	return nil
}

// SetMultisample binds the texture and allocates multisampled storage
// with the given sample count and internal format.
func (tx *Texture) SetMultisample(size image.Point, samples int, format Enum) {
	tx.Size = size
	tx.Samples = samples
	tx.ctx.BindTexture(tx.Target, tx.id)
	tx.ctx.TexImage2DMultisample(tx.Target, int32(samples), format, int32(size.X), int32(size.Y), true)
}

// SetFilter sets the minification and magnification filters.
// The texture must be bound.
func (tx *Texture) SetFilter(min, mag Enum) {
	tx.ctx.TexParameteri(tx.Target, TextureMinFilter, int32(min))
	tx.ctx.TexParameteri(tx.Target, TextureMagFilter, int32(mag))
}

// SetWrap sets the wrap mode for both texture coordinates.
// The texture must be bound.
func (tx *Texture) SetWrap(mode Enum) {
	tx.ctx.TexParameteri(tx.Target, TextureWrapS, int32(mode))
	tx.ctx.TexParameteri(tx.Target, TextureWrapT, int32(mode))
}

// Release deletes the GPU texture.
func (tx *Texture) Release() {
	if tx == nil || tx.id == 0 {
		return
	}
	tx.ctx.DeleteTexture(tx.id)
	tx.id = 0
}

// Renderbuffer is a renderbuffer object, used for attachments
// that are never sampled, such as depth and stencil.
type Renderbuffer struct {
	Size    image.Point
	Samples int
	Format  Enum

	ctx Context
	id  uint32
}

// NewMultisampleRenderbuffer creates a renderbuffer with multisampled
// storage of the given internal format.
func NewMultisampleRenderbuffer(ctx Context, size image.Point, samples int, format Enum) *Renderbuffer {
	rb := &Renderbuffer{Size: size, Samples: samples, Format: format, ctx: ctx}
	rb.id = ctx.GenRenderbuffer()
	ctx.BindRenderbuffer(RenderbufferTarget, rb.id)
	ctx.RenderbufferStorageMultisample(RenderbufferTarget, int32(samples), format, int32(size.X), int32(size.Y))
	ctx.BindRenderbuffer(RenderbufferTarget, 0)
	return rb
}

// ID returns the GPU name of the renderbuffer, 0 once released.
func (rb *Renderbuffer) ID() uint32 {
	return rb.id
}

// Release deletes the renderbuffer.
func (rb *Renderbuffer) Release() {
	if rb == nil || rb.id == 0 {
		return
	}
	rb.ctx.DeleteRenderbuffer(rb.id)
	rb.id = 0
}
