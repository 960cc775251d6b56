// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"strings"

	"cogentcore.org/asteroids/base/errors"
)

// ErrInvalidProgram is returned when an operation needs a linked program.
var ErrInvalidProgram = errors.New("gpu: program is not linked")

// CompileError is returned when a shader stage fails to compile.
// Log is the driver's info log for the shader.
type CompileError struct {
	Program string
	Stage   Stage
	Log     string
}

func (ce *CompileError) Error() string {
	return fmt.Sprintf("gpu: program %q: %s compilation failed:\n%s", ce.Program, ce.Stage, strings.TrimSpace(ce.Log))
}

// LinkError is returned when a program fails to link.
// Log is the driver's info log for the program.
type LinkError struct {
	Program string
	Log     string
}

func (le *LinkError) Error() string {
	return fmt.Sprintf("gpu: program %q: linking failed:\n%s", le.Program, strings.TrimSpace(le.Log))
}

// FramebufferIncompleteError is returned when a framebuffer fails the
// completeness check. It means the driver cannot support the requested
// combination of attachments, which is not recoverable.
type FramebufferIncompleteError struct {
	Name   string
	Status Enum
}

func (fe *FramebufferIncompleteError) Error() string {
	return fmt.Sprintf("gpu: framebuffer %q is not complete: %s", fe.Name, FramebufferStatusString(fe.Status))
}

// SizeMismatchError is returned when a multisampled framebuffer and its
// resolve target do not have identical dimensions, which makes the
// resolve blit undefined.
type SizeMismatchError struct {
	MSAA    image.Point
	Resolve image.Point
}

func (se *SizeMismatchError) Error() string {
	return fmt.Sprintf("gpu: multisample target size %dx%d does not match resolve target size %dx%d",
		se.MSAA.X, se.MSAA.Y, se.Resolve.X, se.Resolve.Y)
}
