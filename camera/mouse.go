// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

// Mouse turns absolute cursor positions into offsets for
// [Camera.ProcessMouseMovement]. The first position only sets the
// reference point, so the camera does not jump when the cursor is
// first captured.
type Mouse struct {
	lastX, lastY float64
	started      bool
}

// Offsets returns the cursor movement since the last call, with y
// positive upward since window coordinates grow downward.
func (ms *Mouse) Offsets(x, y float64) (dx, dy float32) {
	if !ms.started {
		ms.lastX, ms.lastY = x, y
		ms.started = true
	}
	dx = float32(x - ms.lastX)
	dy = float32(ms.lastY - y)
	ms.lastX, ms.lastY = x, y
	return
}
