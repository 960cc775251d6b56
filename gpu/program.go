// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program with typed uniform setters.
//
// Uniform setters apply to the program that is currently in use, so
// [Program.Use] must be called first; that binding is global context
// state that any other program's Use replaces. Setting a uniform that
// the linked program does not have is a silent no-op, which lets
// shaders omit optional uniforms.
//
// A Program that failed to compile or link is still returned by
// [NewProgram], with [Program.Valid] false: Use binds no program and
// all setters do nothing, so drawing with it renders nothing.
type Program struct {
	// Name is used in error messages.
	Name string

	ctx Context
	id  uint32

	// locations caches uniform locations by name, including misses as -1.
	// Locations are fixed once a program is linked.
	locations map[string]int32
}

// NewProgram compiles each stage source present in sources and links
// them into a program. Stages are compiled in pipeline order and the
// first [*CompileError] or the [*LinkError] is returned together with
// an invalid program, which the caller may keep using (see [Program]).
func NewProgram(ctx Context, name string, sources map[Stage]string) (*Program, error) {
	pr := &Program{Name: name, ctx: ctx, locations: map[string]int32{}}
	var shaders []uint32
	defer func() {
		for _, sh := range shaders {
			ctx.DeleteShader(sh)
		}
	}()
	for _, st := range Stages {
		src, ok := sources[st]
		if !ok {
			continue
		}
		sh, err := CompileShader(ctx, name, st, src)
		if err != nil {
			return pr, err
		}
		shaders = append(shaders, sh)
	}
	id, err := LinkProgram(ctx, name, shaders...)
	if err != nil {
		return pr, err
	}
	pr.id = id
	return pr, nil
}

// ID returns the GPU name of the program, 0 if invalid.
func (pr *Program) ID() uint32 {
	return pr.id
}

// Valid returns whether the program linked successfully
// and has not been released.
func (pr *Program) Valid() bool {
	return pr != nil && pr.id != 0
}

// Validate returns an error wrapping [ErrInvalidProgram]
// if the program is not linked.
func (pr *Program) Validate() error {
	if pr.Valid() {
		return nil
	}
	name := ""
	if pr != nil {
		name = pr.Name
	}
	return fmt.Errorf("%w: %q", ErrInvalidProgram, name)
}

// Use makes this the current program for subsequent draw and uniform calls.
func (pr *Program) Use() {
	pr.ctx.UseProgram(pr.id)
}

// Location returns the location of the named uniform, or -1 if
// the program has no active uniform of that name.
func (pr *Program) Location(name string) int32 {
	if !pr.Valid() {
		return -1
	}
	if loc, ok := pr.locations[name]; ok {
		return loc
	}
	loc := pr.ctx.GetUniformLocation(pr.id, name)
	pr.locations[name] = loc
	return loc
}

// SetBool sets a bool uniform, as an int of 0 or 1.
func (pr *Program) SetBool(name string, v bool) {
	iv := 0
	if v {
		iv = 1
	}
	pr.SetInt(name, iv)
}

// SetInt sets an int or sampler uniform.
func (pr *Program) SetInt(name string, v int) {
	if loc := pr.Location(name); loc >= 0 {
		pr.ctx.Uniform1i(loc, int32(v))
	}
}

// SetFloat sets a float uniform.
func (pr *Program) SetFloat(name string, v float32) {
	if loc := pr.Location(name); loc >= 0 {
		pr.ctx.Uniform1f(loc, v)
	}
}

// SetVec3 sets a vec3 uniform.
func (pr *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := pr.Location(name); loc >= 0 {
		pr.ctx.Uniform3f(loc, v[0], v[1], v[2])
	}
}

// SetMat4 sets a mat4 uniform from a column-major matrix.
func (pr *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := pr.Location(name); loc >= 0 {
		pr.ctx.UniformMatrix4fv(loc, m)
	}
}

// GetInt reads back the current value of an int or sampler uniform.
// It returns false if the program has no such uniform.
func (pr *Program) GetInt(name string) (int32, bool) {
	loc := pr.Location(name)
	if loc < 0 {
		return 0, false
	}
	return pr.ctx.GetUniformi(pr.id, loc), true
}

// GetFloat reads back the current value of a float uniform.
// It returns false if the program has no such uniform.
func (pr *Program) GetFloat(name string) (float32, bool) {
	loc := pr.Location(name)
	if loc < 0 {
		return 0, false
	}
	return pr.ctx.GetUniformf(pr.id, loc), true
}

// Release deletes the program. The program is invalid afterwards.
func (pr *Program) Release() {
	if !pr.Valid() {
		return
	}
	pr.ctx.DeleteProgram(pr.id)
	pr.id = 0
	clear(pr.locations)
}
