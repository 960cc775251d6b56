// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
)

// Framebuffer is an offscreen render target with a color attachment
// and an optional depth-stencil attachment.
type Framebuffer struct {
	// Name is used in error messages.
	Name string

	// Size is the size of all attachments.
	Size image.Point

	// Samples is the number of samples per pixel; 1 for a
	// single-sample target whose color can be sampled.
	Samples int

	// Color is the color attachment.
	Color *Texture

	// DepthStencil is the depth-stencil attachment, nil if none.
	DepthStencil *Renderbuffer

	ctx Context
	id  uint32
}

// NewMultisampleFramebuffer returns a framebuffer with a multisampled
// RGB color texture and a multisampled depth-stencil renderbuffer,
// both of the given size. It returns a [*FramebufferIncompleteError]
// if the driver rejects the attachments, in which case nothing is
// left allocated. The default framebuffer is bound on return.
func NewMultisampleFramebuffer(ctx Context, name string, size image.Point, samples int) (*Framebuffer, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("gpu: framebuffer %q: invalid size %v", name, size)
	}
	if samples < 1 {
		return nil, fmt.Errorf("gpu: framebuffer %q: invalid sample count %d", name, samples)
	}
	fb := &Framebuffer{Name: name, Size: size, Samples: samples, ctx: ctx}
	fb.id = ctx.GenFramebuffer()
	ctx.BindFramebuffer(FramebufferTarget, fb.id)

	fb.Color = NewTexture(ctx, name+"-color", Texture2DMultisample)
	fb.Color.SetMultisample(size, samples, RGB)
	ctx.BindTexture(Texture2DMultisample, 0)
	ctx.FramebufferTexture2D(FramebufferTarget, ColorAttachment0, Texture2DMultisample, fb.Color.ID(), 0)

	fb.DepthStencil = NewMultisampleRenderbuffer(ctx, size, samples, Depth24Stencil8)
	ctx.FramebufferRenderbuffer(FramebufferTarget, DepthStencilAttachment, RenderbufferTarget, fb.DepthStencil.ID())

	if err := fb.complete(); err != nil {
		return nil, err
	}
	return fb, nil
}

// NewResolveFramebuffer returns a single-sample framebuffer with an RGB
// color texture of the given size and linear filtering, suitable as the
// destination of a multisample resolve and as a sampler source.
// It has no depth attachment. The default framebuffer is bound on return.
func NewResolveFramebuffer(ctx Context, name string, size image.Point) (*Framebuffer, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("gpu: framebuffer %q: invalid size %v", name, size)
	}
	fb := &Framebuffer{Name: name, Size: size, Samples: 1, ctx: ctx}
	fb.id = ctx.GenFramebuffer()
	ctx.BindFramebuffer(FramebufferTarget, fb.id)

	fb.Color = NewTexture(ctx, name+"-color", Texture2D)
	fb.Color.SetImage(size, RGB, nil)
	fb.Color.SetFilter(Linear, Linear)
	ctx.FramebufferTexture2D(FramebufferTarget, ColorAttachment0, Texture2D, fb.Color.ID(), 0)

	if err := fb.complete(); err != nil {
		return nil, err
	}
	return fb, nil
}

// complete checks the currently bound framebuffer, releasing
// everything on failure, and restores the default framebuffer.
func (fb *Framebuffer) complete() error {
	status := fb.ctx.CheckFramebufferStatus(FramebufferTarget)
	fb.ctx.BindFramebuffer(FramebufferTarget, 0)
	if status != FramebufferComplete {
		fb.Release()
		return &FramebufferIncompleteError{Name: fb.Name, Status: status}
	}
	return nil
}

// ID returns the GPU name of the framebuffer, 0 once released.
func (fb *Framebuffer) ID() uint32 {
	return fb.id
}

// Bind binds the framebuffer for both reading and drawing,
// and sets the viewport to cover it.
func (fb *Framebuffer) Bind() {
	fb.ctx.BindFramebuffer(FramebufferTarget, fb.id)
	fb.ctx.Viewport(0, 0, int32(fb.Size.X), int32(fb.Size.Y))
}

// BlitColorTo copies the color attachment into dst, resolving samples
// when this framebuffer is multisampled. Depth and stencil are not
// copied. Both framebuffers must have the same size.
func (fb *Framebuffer) BlitColorTo(dst *Framebuffer) error {
	if fb.Size != dst.Size {
		return &SizeMismatchError{MSAA: fb.Size, Resolve: dst.Size}
	}
	w, h := int32(fb.Size.X), int32(fb.Size.Y)
	fb.ctx.BindFramebuffer(ReadFramebuffer, fb.id)
	fb.ctx.BindFramebuffer(DrawFramebuffer, dst.id)
	fb.ctx.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, ColorBufferBit, Nearest)
	return nil
}

// BindDefaultFramebuffer binds the window-system framebuffer
// for both reading and drawing.
func BindDefaultFramebuffer(ctx Context) {
	ctx.BindFramebuffer(FramebufferTarget, 0)
}

// Release deletes the framebuffer and its attachments.
func (fb *Framebuffer) Release() {
	if fb == nil {
		return
	}
	fb.DepthStencil.Release()
	fb.Color.Release()
	if fb.id != 0 {
		fb.ctx.DeleteFramebuffer(fb.id)
		fb.id = 0
	}
}
