// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline renders a frame through a multisampled offscreen
// framebuffer, resolves it into a single-sample texture, and presents
// that texture to the window with a fullscreen quad.
//
// Each frame goes through the phases in order:
//
//	pl.BeginScene() // bind and clear the MSAA target; draw the scene
//	pl.Resolve()    // blit the color into the resolve target
//	pl.Present()    // draw the resolved texture to the window
package pipeline

import (
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/asteroids/base/errors"
	"cogentcore.org/asteroids/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrPhase is returned when a phase method is called out of order.
var ErrPhase = errors.New("pipeline: phase called out of order")

// Phase is the position of a [Pipeline] in the frame sequence.
type Phase int32

const (
	// Idle is before BeginScene and after Present.
	Idle Phase = iota

	// Scene is after BeginScene: draws go to the MSAA target.
	Scene

	// Resolved is after Resolve.
	Resolved
)

func (ph Phase) String() string {
	switch ph {
	case Idle:
		return "Idle"
	case Scene:
		return "Scene"
	case Resolved:
		return "Resolved"
	}
	return fmt.Sprintf("Phase(%d)", int32(ph))
}

// Options configure a [Pipeline].
type Options struct {
	// Size is the size of the multisampled render target.
	Size image.Point

	// ResolveSize is the size of the resolve target, which must
	// equal Size. Zero means Size.
	ResolveSize image.Point

	// Samples is the number of samples per pixel of the render target.
	Samples int

	// SceneClear is the clear color of the render target.
	SceneClear mgl32.Vec4

	// ScreenClear is the clear color of the window before the
	// resolved image is drawn.
	ScreenClear mgl32.Vec4

	// Screen is the program that draws the fullscreen quad,
	// sampling the resolved texture from a sampler uniform
	// named screenTexture.
	Screen *gpu.Program
}

// Defaults sets the options of the standard scene, except Screen.
func (op *Options) Defaults() {
	op.Size = image.Pt(800, 600)
	op.Samples = 4
	op.SceneClear = mgl32.Vec4{0.1, 0.1, 0.1, 1}
	op.ScreenClear = mgl32.Vec4{1, 1, 1, 1}
}

// Pipeline owns the render and resolve targets and the
// presentation quad.
type Pipeline struct {
	Options

	// MSAA is the multisampled render target.
	MSAA *gpu.Framebuffer

	// Target is the single-sample resolve target.
	Target *gpu.Framebuffer

	ctx      gpu.Context
	quadVAO  *gpu.VertexArray
	quadVBO  *gpu.Buffer
	viewport image.Point
	phase    Phase
	res      gpu.Resources
}

// quadVertices are two triangles covering clip space,
// as position xy and texture coordinate uv.
var quadVertices = []float32{
	-1, 1, 0, 1,
	-1, -1, 0, 0,
	1, -1, 1, 0,

	-1, 1, 0, 1,
	1, -1, 1, 0,
	1, 1, 1, 1,
}

// New creates the render and resolve targets and the presentation
// quad. A size mismatch between the targets or an incomplete
// framebuffer is returned as an error, and nothing is left allocated.
func New(ctx gpu.Context, opts Options) (*Pipeline, error) {
	if opts.ResolveSize == (image.Point{}) {
		opts.ResolveSize = opts.Size
	}
	if opts.Screen == nil {
		return nil, errors.New("pipeline: no screen program")
	}
	if opts.ResolveSize != opts.Size {
		return nil, errors.Log(&gpu.SizeMismatchError{MSAA: opts.Size, Resolve: opts.ResolveSize})
	}
	pl := &Pipeline{Options: opts, ctx: ctx, viewport: opts.Size}
	var err error
	pl.MSAA, err = gpu.NewMultisampleFramebuffer(ctx, "msaa", opts.Size, opts.Samples)
	if err != nil {
		return nil, errors.Log(err)
	}
	pl.res.Add(pl.MSAA)
	pl.Target, err = gpu.NewResolveFramebuffer(ctx, "resolve", opts.ResolveSize)
	if err != nil {
		pl.res.Release()
		return nil, errors.Log(err)
	}
	pl.res.Add(pl.Target)

	pl.quadVAO = gpu.NewVertexArray(ctx)
	pl.quadVAO.Bind()
	pl.quadVBO = gpu.NewBufferFrom(ctx, gpu.ArrayBuffer, quadVertices, gpu.StaticDraw)
	pl.quadVAO.Attrib(0, 2, 16, 0, 0)
	pl.quadVAO.Attrib(1, 2, 16, 8, 0)
	pl.quadVAO.Unbind()
	pl.res.Add(pl.quadVAO, pl.quadVBO)

	if err := opts.Screen.Validate(); err != nil {
		slog.Warn("screen program draws nothing", "err", err)
	} else {
		opts.Screen.Use()
		opts.Screen.SetInt("screenTexture", 0)
	}
	slog.Info("render pipeline", "size", opts.Size, "samples", opts.Samples)
	return pl, nil
}

// Phase returns the current phase.
func (pl *Pipeline) Phase() Phase {
	return pl.phase
}

// SetViewport sets the size of the window framebuffer that
// [Pipeline.Present] draws into.
func (pl *Pipeline) SetViewport(size image.Point) {
	pl.viewport = size
}

// Viewport returns the size of the window framebuffer.
func (pl *Pipeline) Viewport() image.Point {
	return pl.viewport
}

// ResolvedTexture returns the single-sample color texture
// holding the last resolved frame.
func (pl *Pipeline) ResolvedTexture() *gpu.Texture {
	return pl.Target.Color
}

func (pl *Pipeline) checkPhase(op string, want Phase) error {
	if pl.phase != want {
		return fmt.Errorf("%w: %s in phase %v, want %v", ErrPhase, op, pl.phase, want)
	}
	return nil
}

// BeginScene binds the multisampled target, clears its color and
// depth, and enables depth testing. Scene draws follow.
func (pl *Pipeline) BeginScene() error {
	if err := pl.checkPhase("BeginScene", Idle); err != nil {
		return err
	}
	pl.MSAA.Bind()
	c := pl.SceneClear
	pl.ctx.ClearColor(c[0], c[1], c[2], c[3])
	pl.ctx.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)
	pl.ctx.Enable(gpu.DepthTest)
	pl.phase = Scene
	return nil
}

// Resolve blits the color of the multisampled target into the
// resolve target. Depth and stencil are not copied.
func (pl *Pipeline) Resolve() error {
	if err := pl.checkPhase("Resolve", Scene); err != nil {
		return err
	}
	if err := pl.MSAA.BlitColorTo(pl.Target); err != nil {
		return err
	}
	pl.phase = Resolved
	return nil
}

// Present binds the window framebuffer, clears it, disables depth
// testing and draws the resolved texture over it with the screen program.
func (pl *Pipeline) Present() error {
	if err := pl.checkPhase("Present", Resolved); err != nil {
		return err
	}
	gpu.BindDefaultFramebuffer(pl.ctx)
	pl.ctx.Viewport(0, 0, int32(pl.viewport.X), int32(pl.viewport.Y))
	c := pl.ScreenClear
	pl.ctx.ClearColor(c[0], c[1], c[2], c[3])
	pl.ctx.Clear(gpu.ColorBufferBit)
	pl.ctx.Disable(gpu.DepthTest)

	pl.Screen.Use()
	pl.quadVAO.Bind()
	pl.Target.Color.Bind(0)
	pl.ctx.DrawArrays(gpu.Triangles, 0, 6)
	pl.quadVAO.Unbind()
	pl.phase = Idle
	return nil
}

// Release deletes the framebuffers and the quad.
func (pl *Pipeline) Release() {
	if pl == nil {
		return
	}
	pl.res.Release()
}
