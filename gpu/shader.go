// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/asteroids/base/errors"
)

// Stage is a programmable pipeline stage.
type Stage int32

const (
	VertexStage Stage = iota
	GeometryStage
	FragmentStage
)

// Stages lists all stages in pipeline order.
var Stages = []Stage{VertexStage, GeometryStage, FragmentStage}

// String returns the diagnostic label of the stage.
func (st Stage) String() string {
	switch st {
	case VertexStage:
		return "VERTEX_SHADER"
	case GeometryStage:
		return "GEOMETRY_SHADER"
	case FragmentStage:
		return "FRAGMENT_SHADER"
	}
	return fmt.Sprintf("Stage(%d)", int32(st))
}

// ShaderType returns the OpenGL shader type of the stage.
func (st Stage) ShaderType() Enum {
	switch st {
	case GeometryStage:
		return GeometryShader
	case FragmentStage:
		return FragmentShader
	}
	return VertexShader
}

// CompileShader compiles src as a shader for the given stage and
// returns its GPU name. On failure the shader is deleted and a
// [*CompileError] carrying the driver log is returned and logged.
func CompileShader(ctx Context, program string, stage Stage, src string) (uint32, error) {
	sh := ctx.CreateShader(stage.ShaderType())
	ctx.ShaderSource(sh, src)
	ctx.CompileShader(sh)
	if !ctx.ShaderCompiled(sh) {
		err := &CompileError{Program: program, Stage: stage, Log: ctx.ShaderInfoLog(sh)}
		ctx.DeleteShader(sh)
		return 0, errors.Log(err)
	}
	return sh, nil
}

// LinkProgram links the given compiled shaders into a program and
// returns its GPU name. On failure the program is deleted and a
// [*LinkError] carrying the driver log is returned and logged.
// The shaders are left attached; callers may delete them after.
func LinkProgram(ctx Context, program string, shaders ...uint32) (uint32, error) {
	id := ctx.CreateProgram()
	for _, sh := range shaders {
		ctx.AttachShader(id, sh)
	}
	ctx.LinkProgram(id)
	if !ctx.ProgramLinked(id) {
		err := &LinkError{Program: program, Log: ctx.ProgramInfoLog(id)}
		ctx.DeleteProgram(id)
		return 0, errors.Log(err)
	}
	return id, nil
}
