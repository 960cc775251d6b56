// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"cogentcore.org/asteroids/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Model is a set of meshes loaded from one file, drawn together.
// It owns its meshes, the textures they share and the instance buffer.
type Model struct {
	// Name is the file the model was loaded from.
	Name string

	Meshes []*Mesh

	// Textures are the distinct textures used by the meshes.
	Textures []*gpu.Texture

	// Instances holds the per-instance model matrices, nil until
	// [Model.SetInstanceTransforms] is called.
	Instances *gpu.Buffer

	// NumInstances is the number of matrices in Instances.
	NumInstances int

	ctx gpu.Context
}

// NewModel returns an empty model.
func NewModel(ctx gpu.Context, name string) *Model {
	return &Model{Name: name, ctx: ctx}
}

// SetInstanceTransforms uploads the model matrices as a static
// instance buffer shared by all meshes, replacing any previous one.
func (md *Model) SetInstanceTransforms(mats []mgl32.Mat4) {
	md.Instances.Release()
	md.Instances = gpu.NewBufferFrom(md.ctx, gpu.ArrayBuffer, mats, gpu.StaticDraw)
	md.NumInstances = len(mats)
	for _, ms := range md.Meshes {
		ms.SetInstanceBuffer(md.Instances)
	}
	md.ctx.BindBuffer(gpu.ArrayBuffer, 0)
}

// Draw draws each mesh once with pr.
func (md *Model) Draw(pr *gpu.Program) {
	for _, ms := range md.Meshes {
		ms.Draw(pr)
	}
}

// DrawInstanced draws count instances of each mesh with pr.
func (md *Model) DrawInstanced(pr *gpu.Program, count int) {
	for _, ms := range md.Meshes {
		ms.DrawInstanced(pr, count)
	}
}

// Release deletes the meshes, textures and instance buffer.
func (md *Model) Release() {
	if md == nil {
		return
	}
	for _, ms := range md.Meshes {
		ms.Release()
	}
	for _, tx := range md.Textures {
		tx.Release()
	}
	md.Instances.Release()
	md.Meshes = nil
	md.Textures = nil
	md.Instances = nil
	md.NumInstances = 0
}
