// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"errors"
	"image"
	"io/fs"
	"testing"

	"cogentcore.org/asteroids/gpu"
	"cogentcore.org/asteroids/gpu/gputest"
	"cogentcore.org/asteroids/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screenProgram(t *testing.T, ctx gpu.Context) *gpu.Program {
	vs, err := fs.ReadFile(shaders.FS, shaders.ScreenVertex)
	require.NoError(t, err)
	fsrc, err := fs.ReadFile(shaders.FS, shaders.ScreenFragment)
	require.NoError(t, err)
	pr, err := gpu.NewProgram(ctx, "screen", map[gpu.Stage]string{gpu.VertexStage: string(vs), gpu.FragmentStage: string(fsrc)})
	require.NoError(t, err)
	return pr
}

func testOptions(t *testing.T, ctx gpu.Context) Options {
	var op Options
	op.Defaults()
	op.Screen = screenProgram(t, ctx)
	return op
}

func TestFrame(t *testing.T) {
	ctx := gputest.New()
	pl, err := New(ctx, testOptions(t, ctx))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(800, 600), pl.MSAA.Size)
	assert.Equal(t, image.Pt(800, 600), pl.Target.Size)
	assert.Equal(t, 4, ctx.TextureSamples(pl.MSAA.Color.ID()))
	assert.Equal(t, int32(0), ctx.UniformValue(pl.Screen.ID(), "screenTexture"))
	ctx.Reset()

	require.NoError(t, pl.BeginScene())
	assert.Equal(t, Scene, pl.Phase())
	assert.True(t, ctx.Enabled(gpu.DepthTest))
	require.NoError(t, pl.Resolve())
	assert.Equal(t, gputest.Color{0.1, 0.1, 0.1, 1}, ctx.FramebufferColor(pl.Target.ID()))
	require.NoError(t, pl.Present())
	assert.Equal(t, Idle, pl.Phase())

	require.Len(t, ctx.Clears, 2)
	scene, screen := ctx.Clears[0], ctx.Clears[1]
	assert.Equal(t, pl.MSAA.ID(), scene.Framebuffer)
	assert.Equal(t, gpu.ColorBufferBit|gpu.DepthBufferBit, scene.Mask)
	assert.Equal(t, gputest.Color{0.1, 0.1, 0.1, 1}, scene.Color)
	assert.Zero(t, screen.Framebuffer)
	assert.Equal(t, gpu.ColorBufferBit, screen.Mask)
	assert.Equal(t, gputest.Color{1, 1, 1, 1}, screen.Color)

	// the presented image is the scene clear color, drawn over the white clear
	assert.Equal(t, gputest.Color{0.1, 0.1, 0.1, 1}, ctx.ScreenColor())
	require.Len(t, ctx.Draws, 1)
	quad := ctx.Draws[0]
	assert.Equal(t, "DrawArrays", quad.Name)
	assert.Equal(t, int32(6), quad.Count)
	assert.False(t, quad.DepthTest)
	assert.Zero(t, quad.Framebuffer)
	assert.Equal(t, pl.Screen.ID(), quad.Program)
	assert.Equal(t, [4]int32{0, 0, 800, 600}, ctx.CurrentViewport())
	assert.Equal(t, pl.ResolvedTexture().ID(), ctx.BoundTexture(0, gpu.Texture2D))

	blit := ctx.Named("BlitFramebuffer")
	require.Len(t, blit, 1)
	assert.Equal(t, gpu.ColorBufferBit, blit[0].Args[8])
	assert.Empty(t, ctx.Errors)
}

func TestPhaseOrder(t *testing.T) {
	ctx := gputest.New()
	pl, err := New(ctx, testOptions(t, ctx))
	require.NoError(t, err)

	assert.ErrorIs(t, pl.Resolve(), ErrPhase)
	assert.ErrorIs(t, pl.Present(), ErrPhase)
	require.NoError(t, pl.BeginScene())
	assert.ErrorIs(t, pl.BeginScene(), ErrPhase)
	assert.ErrorIs(t, pl.Present(), ErrPhase)
	require.NoError(t, pl.Resolve())
	assert.ErrorIs(t, pl.Resolve(), ErrPhase)
	require.NoError(t, pl.Present())
	require.NoError(t, pl.BeginScene())
}

func TestSizeMismatch(t *testing.T) {
	ctx := gputest.New()
	op := testOptions(t, ctx)
	op.ResolveSize = image.Pt(640, 480)
	live := ctx.LiveObjects()
	pl, err := New(ctx, op)
	assert.Nil(t, pl)
	var se *gpu.SizeMismatchError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, image.Pt(800, 600), se.MSAA)
	assert.Equal(t, image.Pt(640, 480), se.Resolve)
	assert.Contains(t, err.Error(), "800x600")
	assert.Equal(t, live, ctx.LiveObjects())
}

func TestIncomplete(t *testing.T) {
	ctx := gputest.New()
	op := testOptions(t, ctx)
	live := ctx.LiveObjects()
	ctx.IncompleteStatus = gpu.FramebufferUnsupported
	pl, err := New(ctx, op)
	assert.Nil(t, pl)
	var fe *gpu.FramebufferIncompleteError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, live, ctx.LiveObjects())
}

func TestNoScreenProgram(t *testing.T) {
	var op Options
	op.Defaults()
	_, err := New(gputest.New(), op)
	assert.Error(t, err)
}

func TestViewportAndRelease(t *testing.T) {
	ctx := gputest.New()
	op := testOptions(t, ctx)
	live := ctx.LiveObjects()
	pl, err := New(ctx, op)
	require.NoError(t, err)
	pl.SetViewport(image.Pt(1600, 1200))
	assert.Equal(t, image.Pt(1600, 1200), pl.Viewport())
	require.NoError(t, pl.BeginScene())
	assert.Equal(t, [4]int32{0, 0, 800, 600}, ctx.CurrentViewport())
	require.NoError(t, pl.Resolve())
	require.NoError(t, pl.Present())
	assert.Equal(t, [4]int32{0, 0, 1600, 1200}, ctx.CurrentViewport())

	pl.Release()
	pl.Release()
	assert.Equal(t, live, ctx.LiveObjects())
}

func TestInvalidScreenProgram(t *testing.T) {
	ctx := gputest.New()
	op := testOptions(t, ctx)
	op.Screen.Release()
	pl, err := New(ctx, op)
	require.NoError(t, err)
	require.NoError(t, pl.BeginScene())
	require.NoError(t, pl.Resolve())
	require.NoError(t, pl.Present())
	// nothing is drawn over the white clear
	assert.Equal(t, gputest.Color{1, 1, 1, 1}, ctx.ScreenColor())
}
