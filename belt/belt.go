// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package belt generates the model matrices of an asteroid belt:
// instances scattered around a flattened ring in the XZ plane.
package belt

import (
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis is the fixed oblique axis every instance is rotated about.
var Axis = mgl32.Vec3{0.4, 0.6, 0.8}

// Scale range of the instances.
const (
	MinScale = 0.05
	MaxScale = 0.25
)

// Params are the ring distribution parameters.
type Params struct {
	// Count is the number of instances.
	Count int

	// Radius is the radius of the ring.
	Radius float32

	// Offset bounds the random displacement from the ring point
	// on X and Z; Y is displaced by at most 0.4 * Offset.
	Offset float32
}

// DefaultParams returns the parameters of the standard scene.
func DefaultParams() Params {
	return Params{Count: 50000, Radius: 150, Offset: 25}
}

// NewRand returns a random source seeded with seed, or with the wall
// clock if seed is 0, along with the seed actually used.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed)), seed
}

// Generate returns p.Count model matrices. Instance i sits at angle
// i/Count of a full turn around the ring, displaced uniformly in
// [-Offset, Offset] on X and Z and by 0.4 times such a displacement on Y.
// Each matrix is the identity translated, then uniformly scaled by a
// factor in [MinScale, MaxScale), then rotated by a random angle about
// [Axis], each step multiplied on the right.
func Generate(p Params, rnd *rand.Rand) []mgl32.Mat4 {
	if p.Count <= 0 {
		return []mgl32.Mat4{}
	}
	axis := Axis.Normalize()
	mats := make([]mgl32.Mat4, p.Count)
	for i := range mats {
		angle := float32(i) / float32(p.Count) * 2 * math32.Pi
		x := math32.Sin(angle)*p.Radius + displace(rnd, p.Offset)
		y := displace(rnd, p.Offset) * 0.4
		z := math32.Cos(angle)*p.Radius + displace(rnd, p.Offset)
		model := mgl32.Translate3D(x, y, z)

		scale := MinScale + rnd.Float32()*(MaxScale-MinScale)
		model = model.Mul4(mgl32.Scale3D(scale, scale, scale))

		rot := mgl32.DegToRad(rnd.Float32() * 360)
		model = model.Mul4(mgl32.HomogRotate3D(rot, axis))
		mats[i] = model
	}
	return mats
}

// displace returns a uniform value in [-offset, offset).
func displace(rnd *rand.Rand, offset float32) float32 {
	return rnd.Float32()*2*offset - offset
}
