// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package windowtest provides a scripted [window.Window] for tests.
package windowtest

import (
	"image"

	"cogentcore.org/asteroids/window"
)

// Window is a [window.Window] whose input is set directly by tests.
// Each PollEvents advances the clock by Step seconds and, once
// CloseAfter polls have happened (if positive), raises the close signal.
type Window struct {
	Keys     map[window.Key]bool
	CursorX  float64
	CursorY  float64
	Scroll   float64
	Clock    float64
	Step     float64
	Size     image.Point
	Closed   bool
	Released bool

	// CloseAfter is the number of polls after which the window closes.
	CloseAfter int

	// Swaps and Polls count the calls.
	Swaps int
	Polls int

	// OnPoll, if set, is called at each poll, after the clock advances.
	OnPoll func(w *Window)
}

// New returns a window of the given size with a 60 Hz clock.
func New(size image.Point) *Window {
	return &Window{Keys: map[window.Key]bool{}, Size: size, Step: 1.0 / 60}
}

func (w *Window) ShouldClose() bool              { return w.Closed }
func (w *Window) SetShouldClose(close bool)      { w.Closed = close }
func (w *Window) KeyPressed(key window.Key) bool { return w.Keys[key] }
func (w *Window) CursorPos() (x, y float64)      { return w.CursorX, w.CursorY }
func (w *Window) Time() float64                  { return w.Clock }
func (w *Window) FramebufferSize() image.Point   { return w.Size }
func (w *Window) SwapBuffers()                   { w.Swaps++ }
func (w *Window) Release()                       { w.Released = true }

func (w *Window) ScrollDelta() float64 {
	d := w.Scroll
	w.Scroll = 0
	return d
}

func (w *Window) PollEvents() {
	w.Polls++
	w.Clock += w.Step
	if w.OnPoll != nil {
		w.OnPoll(w)
	}
	if w.CloseAfter > 0 && w.Polls >= w.CloseAfter {
		w.Closed = true
	}
}

var _ window.Window = (*Window)(nil)
