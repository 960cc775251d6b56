// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shaders embeds the GLSL sources of the scene programs.
package shaders

import "embed"

// FS holds the shader sources, by file name.
//
//go:embed *.glsl *.vert *.frag
var FS embed.FS

// Source file names of each program.
const (
	SceneVertex    = "vshader.glsl"
	InstanceVertex = "instancevshader.glsl"
	SceneFragment  = "fshader.glsl"
	ScreenVertex   = "fbvshader.vert"
	ScreenFragment = "fbfshader.frag"
)
