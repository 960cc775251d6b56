// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides a first-person fly camera driven directly
// by keyboard, mouse movement and scroll input.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a keyboard movement direction.
type Movement int32

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

// Limits of the camera state.
const (
	MaxPitch = 89
	MinZoom  = 1
	MaxZoom  = 45
)

// Camera is a fly camera defined by a position and Euler angles.
type Camera struct {
	// Position is the location of the camera in world space.
	Position mgl32.Vec3

	// WorldUp is the up direction of the world.
	WorldUp mgl32.Vec3

	// Yaw is the rotation about the up axis in degrees;
	// -90 looks down the negative Z axis.
	Yaw float32

	// Pitch is the elevation in degrees, kept within [-MaxPitch, MaxPitch].
	Pitch float32

	// Speed is the movement speed in units per second.
	Speed float32

	// Sensitivity scales mouse offsets to degrees.
	Sensitivity float32

	// Zoom is the vertical field of view in degrees.
	Zoom float32

	// Front, Up and Right are the camera basis, derived from the angles.
	Front mgl32.Vec3
	Up    mgl32.Vec3
	Right mgl32.Vec3
}

// New returns a camera at the given position with default settings.
func New(pos mgl32.Vec3) *Camera {
	cm := &Camera{}
	cm.Defaults()
	cm.Position = pos
	cm.update()
	return cm
}

// Defaults sets the default orientation, speed, sensitivity and zoom.
func (cm *Camera) Defaults() {
	cm.WorldUp = mgl32.Vec3{0, 1, 0}
	cm.Yaw = -90
	cm.Pitch = 0
	cm.Speed = 2.5
	cm.Sensitivity = 0.1
	cm.Zoom = MaxZoom
	cm.update()
}

// ViewMatrix returns the world-to-view transform.
func (cm *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(cm.Position, cm.Position.Add(cm.Front), cm.Up)
}

// Projection returns the perspective projection for the current zoom.
func (cm *Camera) Projection(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(cm.Zoom), aspect, near, far)
}

// ProcessKeyboard moves the camera in direction for dt seconds.
func (cm *Camera) ProcessKeyboard(direction Movement, dt float32) {
	vel := cm.Speed * dt
	switch direction {
	case Forward:
		cm.Position = cm.Position.Add(cm.Front.Mul(vel))
	case Backward:
		cm.Position = cm.Position.Sub(cm.Front.Mul(vel))
	case Left:
		cm.Position = cm.Position.Sub(cm.Right.Mul(vel))
	case Right:
		cm.Position = cm.Position.Add(cm.Right.Mul(vel))
	}
}

// ProcessMouseMovement turns the camera by the given cursor offsets,
// with yOffset positive upward. If constrainPitch, the pitch is
// clamped so the view never flips over the poles.
func (cm *Camera) ProcessMouseMovement(xOffset, yOffset float32, constrainPitch bool) {
	cm.Yaw += xOffset * cm.Sensitivity
	cm.Pitch += yOffset * cm.Sensitivity
	if constrainPitch {
		cm.Pitch = mgl32.Clamp(cm.Pitch, -MaxPitch, MaxPitch)
	}
	cm.update()
}

// ProcessMouseScroll zooms by the vertical scroll offset.
func (cm *Camera) ProcessMouseScroll(yOffset float32) {
	cm.Zoom = mgl32.Clamp(cm.Zoom-yOffset, MinZoom, MaxZoom)
}

// update recomputes the basis vectors from the angles.
func (cm *Camera) update() {
	yaw, pitch := mgl32.DegToRad(cm.Yaw), mgl32.DegToRad(cm.Pitch)
	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	cm.Front = front.Normalize()
	cm.Right = cm.Front.Cross(cm.WorldUp).Normalize()
	cm.Up = cm.Right.Cross(cm.Front).Normalize()
}
