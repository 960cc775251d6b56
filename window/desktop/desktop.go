// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package desktop implements [window.Window] with glfw, creating an
// OpenGL 3.3 core profile context. glfw must be used from the main
// thread, so callers lock it with [runtime.LockOSThread] in an init
// function before calling [New].
package desktop

import (
	"image"
	"log/slog"

	"cogentcore.org/asteroids/window"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Options configure a new [Window].
type Options struct {
	Title string
	Size  image.Point

	// VSync waits for the display refresh on each buffer swap.
	VSync bool
}

// Window is a glfw window with a current OpenGL context.
// The cursor is captured for mouse look.
type Window struct {
	Options

	glw    *glfw.Window
	scroll float64
	fbSize image.Point
}

var keys = map[window.Key]glfw.Key{
	window.KeyEscape: glfw.KeyEscape,
	window.KeyW:      glfw.KeyW,
	window.KeyA:      glfw.KeyA,
	window.KeyS:      glfw.KeyS,
	window.KeyD:      glfw.KeyD,
}

// New initializes glfw and opens a window whose OpenGL context is
// made current. Failures are returned as [*window.ResourceCreationError].
func New(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &window.ResourceCreationError{Resource: "window system", Err: err}
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glw, err := glfw.CreateWindow(opts.Size.X, opts.Size.Y, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &window.ResourceCreationError{Resource: "window", Err: err}
	}
	w := &Window{Options: opts, glw: glw}
	glw.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	glw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	glw.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.scroll += yoff
	})
	fw, fh := glw.GetFramebufferSize()
	w.fbSize = image.Pt(fw, fh)
	glw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.fbSize = image.Pt(width, height)
	})
	slog.Info("opened window", "title", opts.Title, "size", opts.Size, "framebuffer", w.fbSize)
	return w, nil
}

func (w *Window) ShouldClose() bool {
	return w.glw.ShouldClose()
}

func (w *Window) SetShouldClose(close bool) {
	w.glw.SetShouldClose(close)
}

func (w *Window) KeyPressed(key window.Key) bool {
	gk, ok := keys[key]
	return ok && w.glw.GetKey(gk) == glfw.Press
}

func (w *Window) CursorPos() (x, y float64) {
	return w.glw.GetCursorPos()
}

func (w *Window) ScrollDelta() float64 {
	d := w.scroll
	w.scroll = 0
	return d
}

func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) FramebufferSize() image.Point {
	return w.fbSize
}

func (w *Window) SwapBuffers() {
	w.glw.SwapBuffers()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Release destroys the window and terminates glfw.
func (w *Window) Release() {
	if w.glw == nil {
		return
	}
	w.glw.Destroy()
	w.glw = nil
	glfw.Terminate()
}

var _ window.Window = (*Window)(nil)
