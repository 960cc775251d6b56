// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package window defines the window and input surface the frame loop
// runs against. Package desktop implements it with glfw.
package window

import (
	"fmt"
	"image"
)

// Key is a keyboard key polled by the frame loop.
type Key int32

const (
	KeyEscape Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	}
	return fmt.Sprintf("Key(%d)", int32(k))
}

// Window is a window with a current OpenGL context. All methods must
// be called on the thread that created it.
type Window interface {
	// ShouldClose returns whether the window has been asked to close.
	ShouldClose() bool

	// SetShouldClose sets or clears the close signal.
	SetShouldClose(close bool)

	// KeyPressed returns whether key is currently down.
	KeyPressed(key Key) bool

	// CursorPos returns the cursor position in window coordinates.
	CursorPos() (x, y float64)

	// ScrollDelta returns the vertical scroll since the last call.
	ScrollDelta() float64

	// Time returns the seconds elapsed since the window system started.
	Time() float64

	// FramebufferSize returns the size in pixels of the window framebuffer.
	FramebufferSize() image.Point

	// SwapBuffers presents the rendered frame.
	SwapBuffers()

	// PollEvents processes pending window and input events.
	PollEvents()

	// Release destroys the window and its context.
	Release()
}

// ResourceCreationError is returned when the window system,
// the window or its graphics context cannot be created.
type ResourceCreationError struct {
	Resource string
	Err      error
}

func (re *ResourceCreationError) Error() string {
	return fmt.Sprintf("window: creating %s: %v", re.Resource, re.Err)
}

func (re *ResourceCreationError) Unwrap() error {
	return re.Err
}
