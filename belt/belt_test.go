// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package belt

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-3

// assertVec3 compares each component within tol.
func assertVec3(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, msgAndArgs...)
	}
}

func TestCount(t *testing.T) {
	rnd, _ := NewRand(1)
	for _, n := range []int{0, 1, 7, 1000} {
		p := Params{Count: n, Radius: 150, Offset: 25}
		assert.Len(t, Generate(p, rnd), n)
	}
	assert.Empty(t, Generate(Params{Count: -3}, rnd))
}

func TestBounds(t *testing.T) {
	p := DefaultParams()
	p.Count = 5000
	rnd, _ := NewRand(42)
	mats := Generate(p, rnd)
	for i, m := range mats {
		angle := float32(i) / float32(p.Count) * 2 * math32.Pi
		pos := m.Col(3).Vec3()
		assert.LessOrEqual(t, math32.Abs(pos.X()-math32.Sin(angle)*p.Radius), p.Offset+tol)
		assert.LessOrEqual(t, math32.Abs(pos.Z()-math32.Cos(angle)*p.Radius), p.Offset+tol)
		assert.LessOrEqual(t, math32.Abs(pos.Y()), 0.4*p.Offset+tol)

		dist := math32.Hypot(pos.X(), pos.Z())
		assert.GreaterOrEqual(t, dist, p.Radius-p.Offset*math32.Sqrt2-tol)
		assert.LessOrEqual(t, dist, p.Radius+p.Offset*math32.Sqrt2+tol)

		for c := range 3 {
			s := m.Col(c).Vec3().Len()
			assert.GreaterOrEqual(t, s, float32(MinScale)-tol)
			assert.LessOrEqual(t, s, float32(MaxScale)+tol)
		}
		assert.Equal(t, float32(1), m.At(3, 3))
	}
}

func TestUniformScale(t *testing.T) {
	rnd, _ := NewRand(7)
	for _, m := range Generate(Params{Count: 100, Radius: 10, Offset: 2}, rnd) {
		s0 := m.Col(0).Vec3().Len()
		assert.InDelta(t, s0, m.Col(1).Vec3().Len(), tol)
		assert.InDelta(t, s0, m.Col(2).Vec3().Len(), tol)
	}
}

func TestCompositionOrder(t *testing.T) {
	// translation is not affected by the later scale and rotation
	p := Params{Count: 4, Radius: 100, Offset: 0}
	rnd, _ := NewRand(3)
	mats := Generate(p, rnd)
	want := []mgl32.Vec3{{0, 0, 100}, {100, 0, 0}, {0, 0, -100}, {-100, 0, 0}}
	for i, m := range mats {
		assertVec3(t, want[i], m.Col(3).Vec3(), "instance %d: %v", i, m.Col(3))
	}
}

func TestDeterministic(t *testing.T) {
	p := Params{Count: 500, Radius: 150, Offset: 25}
	r1, s1 := NewRand(1234)
	r2, s2 := NewRand(1234)
	assert.Equal(t, uint64(1234), s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, Generate(p, r1), Generate(p, r2))

	r3, _ := NewRand(99)
	assert.NotEqual(t, Generate(p, r3), Generate(p, r2))
}

func TestWallClockSeed(t *testing.T) {
	_, seed := NewRand(0)
	assert.NotZero(t, seed)
}
