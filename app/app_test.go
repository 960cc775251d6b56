// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"testing"
	"testing/fstest"

	"cogentcore.org/asteroids/config"
	"cogentcore.org/asteroids/gpu"
	"cogentcore.org/asteroids/gpu/gputest"
	"cogentcore.org/asteroids/mesh"
	"cogentcore.org/asteroids/shaders"
	"cogentcore.org/asteroids/window"
	"cogentcore.org/asteroids/window/windowtest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadLoader returns a model loader producing a one-quad model,
// recording the requested paths.
func quadLoader(paths *[]string) ModelLoader {
	return func(ctx gpu.Context, path string) (*mesh.Model, error) {
		*paths = append(*paths, path)
		vs := []mesh.Vertex{
			{Position: mgl32.Vec3{-1, -1, 0}},
			{Position: mgl32.Vec3{1, -1, 0}},
			{Position: mgl32.Vec3{1, 1, 0}},
			{Position: mgl32.Vec3{-1, 1, 0}},
		}
		ms, err := mesh.New(ctx, vs, []uint32{0, 1, 2, 0, 2, 3}, nil)
		if err != nil {
			return nil, err
		}
		md := mesh.NewModel(ctx, path)
		md.Meshes = append(md.Meshes, ms)
		return md, nil
	}
}

// shaderFS returns the built-in shaders with the given files
// replaced, or removed when the replacement is empty.
func shaderFS(t *testing.T, replace map[string]string) fs.FS {
	mfs := fstest.MapFS{}
	for _, name := range []string{shaders.SceneVertex, shaders.InstanceVertex, shaders.SceneFragment, shaders.ScreenVertex, shaders.ScreenFragment} {
		b, err := fs.ReadFile(shaders.FS, name)
		require.NoError(t, err)
		mfs[name] = &fstest.MapFile{Data: b}
	}
	for name, src := range replace {
		if src == "" {
			delete(mfs, name)
			continue
		}
		mfs[name] = &fstest.MapFile{Data: []byte(src)}
	}
	return mfs
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Defaults()
	cfg.Rocks = 100
	cfg.Seed = 7
	return cfg
}

func testApp(t *testing.T) (*App, *gputest.Context, *windowtest.Window) {
	ctx := gputest.New()
	win := windowtest.New(image.Pt(800, 600))
	var paths []string
	a, err := New(ctx, win, testConfig(), Options{LoadModel: quadLoader(&paths)})
	require.NoError(t, err)
	assert.Equal(t, []string{"models/planet/planet.obj", "models/rock/rock.obj"}, paths)
	return a, ctx, win
}

func TestNew(t *testing.T) {
	a, ctx, _ := testApp(t)
	defer a.Release()
	assert.True(t, a.Scene.Valid())
	assert.True(t, a.Instanced.Valid())
	assert.True(t, a.Screen.Valid())
	assert.Equal(t, uint64(7), a.Seed)
	assert.Equal(t, 100, a.Rocks.NumInstances)
	assert.Equal(t, 100*64, ctx.BufferSize(a.Rocks.Instances.ID()))
	assert.Zero(t, a.Planet.NumInstances)
	assert.True(t, ctx.Enabled(gpu.Blend))
	src, dst := ctx.BlendFactors()
	assert.Equal(t, gpu.SrcAlpha, src)
	assert.Equal(t, gpu.OneMinusSrcAlpha, dst)
	assert.Equal(t, image.Pt(800, 600), a.Pipeline.MSAA.Size)
	assert.Equal(t, 4, a.Pipeline.MSAA.Samples)
	assert.Empty(t, ctx.Errors)
}

func TestFrame(t *testing.T) {
	a, ctx, _ := testApp(t)
	defer a.Release()
	ctx.Reset()
	require.NoError(t, a.Frame(1.0/60))

	require.Len(t, ctx.Draws, 3)
	planet, rocks, screen := ctx.Draws[0], ctx.Draws[1], ctx.Draws[2]

	assert.Equal(t, "DrawElements", planet.Name)
	assert.Equal(t, a.Scene.ID(), planet.Program)
	assert.Equal(t, a.Pipeline.MSAA.ID(), planet.Framebuffer)
	assert.True(t, planet.DepthTest)
	assert.Equal(t, int32(6), planet.Count)

	assert.Equal(t, "DrawElementsInstanced", rocks.Name)
	assert.Equal(t, a.Instanced.ID(), rocks.Program)
	assert.Equal(t, a.Pipeline.MSAA.ID(), rocks.Framebuffer)
	assert.Equal(t, int32(100), rocks.Instances)

	assert.Equal(t, "DrawArrays", screen.Name)
	assert.Equal(t, a.Screen.ID(), screen.Program)
	assert.Zero(t, screen.Framebuffer)
	assert.False(t, screen.DepthTest)

	view := a.Camera.ViewMatrix()
	proj := a.Camera.Projection(a.Config.Aspect(), a.Config.Near, a.Config.Far)
	assert.Equal(t, a.PlanetTransform(), ctx.UniformValue(a.Scene.ID(), "model"))
	assert.Equal(t, view, ctx.UniformValue(a.Scene.ID(), "view"))
	assert.Equal(t, proj, ctx.UniformValue(a.Scene.ID(), "projection"))
	assert.Equal(t, view, ctx.UniformValue(a.Instanced.ID(), "view"))
	assert.Equal(t, proj, ctx.UniformValue(a.Instanced.ID(), "projection"))

	assert.Equal(t, gputest.Color{0.1, 0.1, 0.1, 1}, ctx.ScreenColor())
	assert.Empty(t, ctx.Errors)
}

func TestPlanetTransform(t *testing.T) {
	a, _, _ := testApp(t)
	defer a.Release()
	p := a.PlanetTransform().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 10, p[0], 1e-5)
	assert.InDelta(t, -3, p[1], 1e-5)
	assert.InDelta(t, 0, p[2], 1e-5)
}

func TestInput(t *testing.T) {
	a, _, win := testApp(t)
	defer a.Release()
	start := a.Camera.Position

	win.Keys[window.KeyW] = true
	require.NoError(t, a.Frame(0.5))
	assert.InDelta(t, start[2]-1.25, a.Camera.Position[2], 1e-4)
	assert.InDelta(t, float32(-90), a.Camera.Yaw, 1e-5)
	win.Keys[window.KeyW] = false

	win.CursorX += 100
	require.NoError(t, a.Frame(0.1))
	assert.InDelta(t, float32(-80), a.Camera.Yaw, 1e-4)

	win.Scroll = 5
	require.NoError(t, a.Frame(0.1))
	assert.InDelta(t, float32(40), a.Camera.Zoom, 1e-5)
	assert.Zero(t, win.Scroll)

	assert.False(t, win.ShouldClose())
	win.Keys[window.KeyEscape] = true
	require.NoError(t, a.Frame(0.1))
	assert.True(t, win.ShouldClose())
}

func TestViewportFollowsWindow(t *testing.T) {
	a, ctx, win := testApp(t)
	defer a.Release()
	win.Size = image.Pt(1600, 1200)
	require.NoError(t, a.Frame(0))
	assert.Equal(t, image.Pt(1600, 1200), a.Pipeline.Viewport())
	assert.Equal(t, [4]int32{0, 0, 1600, 1200}, ctx.CurrentViewport())
	assert.Equal(t, image.Pt(800, 600), a.Pipeline.MSAA.Size)
}

func TestRun(t *testing.T) {
	a, ctx, win := testApp(t)
	win.CloseAfter = 3
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 3, win.Swaps)
	assert.Equal(t, 3, win.Polls)
	assert.Zero(t, ctx.LiveObjects())
	assert.Equal(t, gputest.Color{0.1, 0.1, 0.1, 1}, ctx.ScreenColor())
	a.Release()
}

func TestRunEscape(t *testing.T) {
	a, ctx, win := testApp(t)
	win.OnPoll = func(w *windowtest.Window) {
		if w.Polls == 2 {
			w.Keys[window.KeyEscape] = true
		}
	}
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 3, win.Swaps)
	assert.Zero(t, ctx.LiveObjects())
}

func TestRunCanceled(t *testing.T) {
	a, ctx, win := testApp(t)
	cctx, cancel := context.WithCancel(context.Background())
	win.OnPoll = func(w *windowtest.Window) {
		if w.Polls == 2 {
			cancel()
		}
	}
	require.NoError(t, a.Run(cctx))
	assert.Equal(t, 2, win.Swaps)
	assert.Zero(t, ctx.LiveObjects())
}

func TestSoftShaderFailure(t *testing.T) {
	ctx := gputest.New()
	win := windowtest.New(image.Pt(800, 600))
	var paths []string
	opts := Options{
		LoadModel: quadLoader(&paths),
		Shaders:   shaderFS(t, map[string]string{shaders.ScreenFragment: ""}),
	}
	a, err := New(ctx, win, testConfig(), opts)
	require.NoError(t, err)
	defer a.Release()
	assert.True(t, a.Scene.Valid())
	assert.False(t, a.Screen.Valid())

	require.NoError(t, a.Frame(0))
	assert.Equal(t, gputest.Color{1, 1, 1, 1}, ctx.ScreenColor())
}

func TestStrictShaders(t *testing.T) {
	tests := []struct {
		name    string
		replace map[string]string
		check   func(t *testing.T, err error)
	}{
		{"missing", map[string]string{shaders.SceneFragment: ""}, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, fs.ErrNotExist)
		}},
		{"compile", map[string]string{shaders.InstanceVertex: "#version 330 core\n#error broken\nvoid main() {}\n"}, func(t *testing.T, err error) {
			var ce *gpu.CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "instanced", ce.Program)
			assert.Equal(t, gpu.VertexStage, ce.Stage)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := gputest.New()
			cfg := testConfig()
			cfg.StrictShaders = true
			var paths []string
			opts := Options{LoadModel: quadLoader(&paths), Shaders: shaderFS(t, tt.replace)}
			a, err := New(ctx, windowtest.New(image.Pt(800, 600)), cfg, opts)
			assert.Nil(t, a)
			tt.check(t, err)
			assert.Empty(t, paths)
			assert.Zero(t, ctx.LiveObjects())
		})
	}
}

func TestModelLoadError(t *testing.T) {
	ctx := gputest.New()
	var paths []string
	quad := quadLoader(&paths)
	errMissing := errors.New("no such model")
	load := func(ctx gpu.Context, path string) (*mesh.Model, error) {
		if path == "models/rock/rock.obj" {
			return nil, fmt.Errorf("loading %s: %w", path, errMissing)
		}
		return quad(ctx, path)
	}
	a, err := New(ctx, windowtest.New(image.Pt(800, 600)), testConfig(), Options{LoadModel: load})
	assert.Nil(t, a)
	assert.ErrorIs(t, err, errMissing)
	assert.Zero(t, ctx.LiveObjects())
}

func TestFramebufferIncomplete(t *testing.T) {
	ctx := gputest.New()
	ctx.IncompleteStatus = gpu.FramebufferUnsupported
	var paths []string
	a, err := New(ctx, windowtest.New(image.Pt(800, 600)), testConfig(), Options{LoadModel: quadLoader(&paths)})
	assert.Nil(t, a)
	var fe *gpu.FramebufferIncompleteError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, gpu.FramebufferUnsupported, fe.Status)
	assert.Zero(t, ctx.LiveObjects())
}
