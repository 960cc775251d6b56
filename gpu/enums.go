// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "fmt"

// Enum is an OpenGL enumerant. The values are the ones defined by the
// OpenGL 3.3 core profile, so that a [Context] implementation can pass
// them straight through to the driver.
type Enum uint32

// Buffer clear bits.
const (
	DepthBufferBit   Enum = 0x00000100
	StencilBufferBit Enum = 0x00000400
	ColorBufferBit   Enum = 0x00004000
)

// Primitive and data types.
const (
	Triangles    Enum = 0x0004
	UnsignedByte Enum = 0x1401
	UnsignedInt  Enum = 0x1405
	Float        Enum = 0x1406
)

// Capabilities and blend factors.
const (
	CullFace         Enum = 0x0B44
	DepthTest        Enum = 0x0B71
	Blend            Enum = 0x0BE2
	SrcAlpha         Enum = 0x0302
	OneMinusSrcAlpha Enum = 0x0303
)

// Strings.
const (
	Vendor   Enum = 0x1F00
	Renderer Enum = 0x1F01
	Version  Enum = 0x1F02
)

// Textures.
const (
	Texture2D            Enum = 0x0DE1
	Texture2DMultisample Enum = 0x9100
	Texture0             Enum = 0x84C0
	UnpackAlignment      Enum = 0x0CF5

	Red  Enum = 0x1903
	RGB  Enum = 0x1907
	RGBA Enum = 0x1908

	Nearest            Enum = 0x2600
	Linear             Enum = 0x2601
	LinearMipmapLinear Enum = 0x2703
	TextureMagFilter   Enum = 0x2800
	TextureMinFilter   Enum = 0x2801
	TextureWrapS       Enum = 0x2802
	TextureWrapT       Enum = 0x2803
	Repeat             Enum = 0x2901
	ClampToEdge        Enum = 0x812F
)

// Buffers.
const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4
	DynamicDraw        Enum = 0x88E8
)

// Shaders.
const (
	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
	GeometryShader Enum = 0x8DD9
)

// Framebuffers and renderbuffers.
const (
	FramebufferTarget      Enum = 0x8D40
	ReadFramebuffer        Enum = 0x8CA8
	DrawFramebuffer        Enum = 0x8CA9
	RenderbufferTarget     Enum = 0x8D41
	ColorAttachment0       Enum = 0x8CE0
	DepthStencilAttachment Enum = 0x821A
	Depth24Stencil8        Enum = 0x88F0

	FramebufferComplete                    Enum = 0x8CD5
	FramebufferIncompleteAttachment        Enum = 0x8CD6
	FramebufferIncompleteMissingAttachment Enum = 0x8CD7
	FramebufferUnsupported                 Enum = 0x8CDD
	FramebufferIncompleteMultisample       Enum = 0x8D56
	FramebufferUndefined                   Enum = 0x8219
)

var framebufferStatusNames = map[Enum]string{
	FramebufferComplete:                    "FRAMEBUFFER_COMPLETE",
	FramebufferIncompleteAttachment:        "FRAMEBUFFER_INCOMPLETE_ATTACHMENT",
	FramebufferIncompleteMissingAttachment: "FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT",
	FramebufferUnsupported:                 "FRAMEBUFFER_UNSUPPORTED",
	FramebufferIncompleteMultisample:       "FRAMEBUFFER_INCOMPLETE_MULTISAMPLE",
	FramebufferUndefined:                   "FRAMEBUFFER_UNDEFINED",
}

// FramebufferStatusString returns the name of a framebuffer completeness status.
func FramebufferStatusString(status Enum) string {
	if nm, ok := framebufferStatusNames[status]; ok {
		return nm
	}
	return fmt.Sprintf("0x%04X", uint32(status))
}
