// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app composes the asteroid field scene, a planet circled by
// a belt of instanced rocks, and runs the frame loop that draws it
// through the multisampled render pipeline.
package app

import (
	"context"
	"io/fs"
	"log/slog"
	"os"

	"cogentcore.org/asteroids/base/errors"
	"cogentcore.org/asteroids/belt"
	"cogentcore.org/asteroids/camera"
	"cogentcore.org/asteroids/config"
	"cogentcore.org/asteroids/gpu"
	"cogentcore.org/asteroids/loader"
	"cogentcore.org/asteroids/mesh"
	"cogentcore.org/asteroids/pipeline"
	"cogentcore.org/asteroids/shaders"
	"cogentcore.org/asteroids/window"
	"github.com/go-gl/mathgl/mgl32"
)

// ModelLoader loads the model file at path onto the GPU.
type ModelLoader func(ctx gpu.Context, path string) (*mesh.Model, error)

// Options are the collaborators of an [App].
type Options struct {
	// LoadModel loads the planet and rock models.
	// Nil means [loader.LoadModel].
	LoadModel ModelLoader

	// Shaders holds the shader sources by the file names in
	// package shaders. Nil means the Config.ShaderDir directory,
	// or the built-in shaders if that is empty.
	Shaders fs.FS
}

// App is the scene and its frame loop.
type App struct {
	Config *config.Config
	Camera *camera.Camera

	Planet *mesh.Model
	Rocks  *mesh.Model

	// Scene draws the planet, Instanced draws the rocks and
	// Screen presents the resolved frame.
	Scene     *gpu.Program
	Instanced *gpu.Program
	Screen    *gpu.Program

	Pipeline *pipeline.Pipeline

	// Seed is the seed the belt was generated with.
	Seed uint64

	ctx      gpu.Context
	win      window.Window
	mouse    camera.Mouse
	lastTime float64
	res      gpu.Resources
}

// New builds the scene on ctx: it compiles the programs, loads the
// models, generates the belt and creates the render pipeline.
// Shader errors are logged and leave a program that draws nothing,
// unless cfg.StrictShaders is set, when they are returned. Any other
// error is returned, with everything created so far released.
func New(ctx gpu.Context, win window.Window, cfg *config.Config, opts Options) (*App, error) {
	if opts.LoadModel == nil {
		opts.LoadModel = loader.LoadModel
	}
	if opts.Shaders == nil {
		opts.Shaders = shaders.FS
		if cfg.ShaderDir != "" {
			opts.Shaders = os.DirFS(cfg.ShaderDir)
		}
	}
	a := &App{Config: cfg, Camera: camera.New(cfg.Camera), ctx: ctx, win: win}
	slog.Info("OpenGL", "version", ctx.GetString(gpu.Version), "renderer", ctx.GetString(gpu.Renderer))
	if err := a.build(opts); err != nil {
		a.Release()
		return nil, err
	}
	return a, nil
}

func (a *App) build(opts Options) error {
	cfg := a.Config
	a.ctx.Enable(gpu.DepthTest)
	a.ctx.Enable(gpu.Blend)
	a.ctx.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)

	var err error
	a.Scene, err = a.program(opts.Shaders, "scene", shaders.SceneVertex, shaders.SceneFragment)
	if err != nil {
		return err
	}
	a.Instanced, err = a.program(opts.Shaders, "instanced", shaders.InstanceVertex, shaders.SceneFragment)
	if err != nil {
		return err
	}
	a.Screen, err = a.program(opts.Shaders, "screen", shaders.ScreenVertex, shaders.ScreenFragment)
	if err != nil {
		return err
	}

	a.Planet, err = opts.LoadModel(a.ctx, cfg.PlanetModel)
	if err != nil {
		return errors.Log(err)
	}
	a.res.Add(a.Planet)
	a.Rocks, err = opts.LoadModel(a.ctx, cfg.RockModel)
	if err != nil {
		return errors.Log(err)
	}
	a.res.Add(a.Rocks)

	rnd, seed := belt.NewRand(cfg.Seed)
	a.Seed = seed
	a.Rocks.SetInstanceTransforms(belt.Generate(cfg.Belt(), rnd))
	slog.Info("asteroid belt", "rocks", a.Rocks.NumInstances, "radius", cfg.Radius, "seed", seed)

	a.Pipeline, err = pipeline.New(a.ctx, pipeline.Options{
		Size:        cfg.Size(),
		Samples:     cfg.Samples,
		SceneClear:  cfg.SceneClear,
		ScreenClear: cfg.ScreenClear,
		Screen:      a.Screen,
	})
	if err != nil {
		return err
	}
	a.res.Add(a.Pipeline)
	return nil
}

// program reads the vertex and fragment sources from fsys and
// links them. A read error leaves the source empty, which then fails
// to compile. Errors are only returned in strict mode.
func (a *App) program(fsys fs.FS, name, vertex, fragment string) (*gpu.Program, error) {
	strict := a.Config.StrictShaders
	sources := map[gpu.Stage]string{}
	for st, file := range map[gpu.Stage]string{gpu.VertexStage: vertex, gpu.FragmentStage: fragment} {
		src, err := loader.ShaderSource(fsys, file)
		if err != nil {
			if strict {
				return nil, err
			}
			errors.Log(err)
		}
		sources[st] = src
	}
	pr, err := gpu.NewProgram(a.ctx, name, sources)
	if err != nil && strict {
		return nil, err
	}
	a.res.Add(pr)
	return pr, nil
}

// ProcessInput applies the polled keyboard, cursor and scroll
// state to the camera. Escape raises the window close signal.
func (a *App) ProcessInput(dt float32) {
	if a.win.KeyPressed(window.KeyEscape) {
		a.win.SetShouldClose(true)
	}
	for key, mv := range map[window.Key]camera.Movement{
		window.KeyW: camera.Forward,
		window.KeyS: camera.Backward,
		window.KeyA: camera.Left,
		window.KeyD: camera.Right,
	} {
		if a.win.KeyPressed(key) {
			a.Camera.ProcessKeyboard(mv, dt)
		}
	}
	dx, dy := a.mouse.Offsets(a.win.CursorPos())
	if dx != 0 || dy != 0 {
		a.Camera.ProcessMouseMovement(dx, dy, true)
	}
	if sy := a.win.ScrollDelta(); sy != 0 {
		a.Camera.ProcessMouseScroll(float32(sy))
	}
}

// PlanetTransform returns the model matrix of the planet.
func (a *App) PlanetTransform() mgl32.Mat4 {
	o, s := a.Config.PlanetOffset, a.Config.PlanetScale
	return mgl32.Translate3D(o[0], o[1], o[2]).Mul4(mgl32.Scale3D(s, s, s))
}

// Frame processes input and renders one frame into the window
// framebuffer, dt seconds after the previous one. The view and
// projection follow the camera state of this frame.
func (a *App) Frame(dt float32) error {
	a.ProcessInput(dt)
	a.Pipeline.SetViewport(a.win.FramebufferSize())
	if err := a.Pipeline.BeginScene(); err != nil {
		return err
	}
	view := a.Camera.ViewMatrix()
	proj := a.Camera.Projection(a.Config.Aspect(), a.Config.Near, a.Config.Far)

	a.Scene.Use()
	a.Scene.SetMat4("projection", proj)
	a.Scene.SetMat4("view", view)
	a.Scene.SetMat4("model", a.PlanetTransform())
	a.Planet.Draw(a.Scene)

	a.Instanced.Use()
	a.Instanced.SetMat4("projection", proj)
	a.Instanced.SetMat4("view", view)
	a.Rocks.DrawInstanced(a.Instanced, a.Rocks.NumInstances)

	if err := a.Pipeline.Resolve(); err != nil {
		return err
	}
	return a.Pipeline.Present()
}

// Run draws frames until the window close signal is raised or
// ctx is done, checking both before each frame, and then releases
// the scene. A frame in progress always completes.
func (a *App) Run(ctx context.Context) error {
	defer a.Release()
	a.lastTime = a.win.Time()
	frames := 0
	for !a.win.ShouldClose() {
		if ctx.Err() != nil {
			slog.Info("frame loop canceled", "frames", frames, "cause", context.Cause(ctx))
			return nil
		}
		now := a.win.Time()
		dt := float32(now - a.lastTime)
		a.lastTime = now
		if err := a.Frame(dt); err != nil {
			return err
		}
		a.win.SwapBuffers()
		a.win.PollEvents()
		frames++
	}
	slog.Info("window closed", "frames", frames)
	return nil
}

// Release deletes every GPU object of the scene, most recent first.
// It is safe to call more than once.
func (a *App) Release() {
	a.res.Release()
}
