// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh provides indexed triangle meshes with bound textures,
// drawn singly or instanced with a per-instance model matrix.
package mesh

import (
	"fmt"
	"strconv"
	"unsafe"

	"cogentcore.org/asteroids/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex attribute locations shared with the shaders.
const (
	PositionLocation = 0
	NormalLocation   = 1
	TexCoordLocation = 2

	// InstanceLocation is the first of the four consecutive vec4
	// locations holding the columns of the per-instance model matrix.
	InstanceLocation = 3
)

// Vertex is one mesh vertex, uploaded interleaved.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// VertexStride is the size in bytes of one [Vertex].
const VertexStride = int32(unsafe.Sizeof(Vertex{}))

// matrixStride is the size in bytes of one per-instance model matrix.
const matrixStride = int32(unsafe.Sizeof(mgl32.Mat4{}))

// TextureType is the semantic role of a mesh texture.
type TextureType int32

const (
	Diffuse TextureType = iota
	Specular
)

func (tt TextureType) String() string {
	switch tt {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	}
	return "TextureType(" + strconv.Itoa(int(tt)) + ")"
}

// SamplerPrefix returns the prefix of the sampler uniform names for
// textures of this type; the uniform for the n-th texture of a type
// is the prefix followed by n, starting at 1.
func (tt TextureType) SamplerPrefix() string {
	return "texture_" + tt.String()
}

// Texture is a texture used by a mesh. The handle may be shared
// across meshes and is not released by them.
type Texture struct {
	Handle *gpu.Texture
	Type   TextureType

	// Path is the file the texture was loaded from.
	Path string
}

// Mesh is an indexed triangle mesh on the GPU.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Textures []Texture

	ctx       gpu.Context
	vao       *gpu.VertexArray
	vbo       *gpu.Buffer
	ebo       *gpu.Buffer
	instances *gpu.Buffer
}

// New uploads the vertices and indices to the GPU and records the
// vertex layout. Every index must be less than the number of vertices.
func New(ctx gpu.Context, vertices []Vertex, indices []uint32, textures []Texture) (*Mesh, error) {
	for i, ix := range indices {
		if int(ix) >= len(vertices) {
			return nil, fmt.Errorf("mesh: index %d at position %d is out of range for %d vertices", ix, i, len(vertices))
		}
	}
	ms := &Mesh{Vertices: vertices, Indices: indices, Textures: textures, ctx: ctx}
	ms.vao = gpu.NewVertexArray(ctx)
	ms.vao.Bind()
	ms.vbo = gpu.NewBufferFrom(ctx, gpu.ArrayBuffer, vertices, gpu.StaticDraw)
	ms.ebo = gpu.NewBufferFrom(ctx, gpu.ElementArrayBuffer, indices, gpu.StaticDraw)
	ms.vao.Attrib(PositionLocation, 3, VertexStride, unsafe.Offsetof(Vertex{}.Position), 0)
	ms.vao.Attrib(NormalLocation, 3, VertexStride, unsafe.Offsetof(Vertex{}.Normal), 0)
	ms.vao.Attrib(TexCoordLocation, 2, VertexStride, unsafe.Offsetof(Vertex{}.TexCoord), 0)
	ms.vao.Unbind()
	return ms, nil
}

// SetInstanceBuffer points the per-instance model matrix attributes at
// bf, which holds tightly packed [mgl32.Mat4] values. Each matrix
// occupies four vec4 attributes starting at [InstanceLocation], each
// advancing once per instance. The mesh does not take ownership of bf.
func (ms *Mesh) SetInstanceBuffer(bf *gpu.Buffer) {
	ms.instances = bf
	ms.vao.Bind()
	bf.Bind()
	col := uintptr(matrixStride / 4)
	for i := range uint32(4) {
		ms.vao.Attrib(InstanceLocation+i, 4, matrixStride, uintptr(i)*col, 1)
	}
	ms.vao.Unbind()
}

// bindTextures binds texture i to unit i and points the matching
// sampler uniform of pr at it.
func (ms *Mesh) bindTextures(pr *gpu.Program) {
	var counts [2]int
	for i, tx := range ms.Textures {
		ms.ctx.ActiveTexture(gpu.Texture0 + gpu.Enum(i))
		n := 1
		if tx.Type >= 0 && int(tx.Type) < len(counts) {
			counts[tx.Type]++
			n = counts[tx.Type]
		}
		pr.SetInt(tx.Type.SamplerPrefix()+strconv.Itoa(n), i)
		var id uint32
		if tx.Handle != nil {
			id = tx.Handle.ID()
		}
		ms.ctx.BindTexture(gpu.Texture2D, id)
	}
}

// Draw draws the mesh once with pr, which is made current.
// The active texture unit is reset to 0 afterwards, and no
// texture binding should be assumed to persist.
func (ms *Mesh) Draw(pr *gpu.Program) {
	pr.Use()
	ms.bindTextures(pr)
	ms.vao.Bind()
	ms.ctx.DrawElements(gpu.Triangles, int32(len(ms.Indices)), gpu.UnsignedInt, 0)
	ms.vao.Unbind()
	ms.ctx.ActiveTexture(gpu.Texture0)
}

// DrawInstanced draws count instances of the mesh with pr, each
// reading its model matrix from the buffer set by [Mesh.SetInstanceBuffer].
func (ms *Mesh) DrawInstanced(pr *gpu.Program, count int) {
	pr.Use()
	ms.bindTextures(pr)
	ms.vao.Bind()
	ms.ctx.DrawElementsInstanced(gpu.Triangles, int32(len(ms.Indices)), gpu.UnsignedInt, 0, int32(count))
	ms.vao.Unbind()
	ms.ctx.ActiveTexture(gpu.Texture0)
}

// Release deletes the vertex array and the vertex and index buffers.
// Textures and the instance buffer are owned elsewhere.
func (ms *Mesh) Release() {
	if ms == nil {
		return
	}
	ms.vao.Release()
	ms.vbo.Release()
	ms.ebo.Release()
	ms.instances = nil
}
