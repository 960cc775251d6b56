// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/asteroids/gpu/gputest"
	"cogentcore.org/asteroids/mesh"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOBJ = `# two quads with different materials
mtllib rock.mtl
o rock
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl stone
f 1/1/1 2/2/1 3/3/1 4/4/1
usemtl moss
f -4/-4 -3/-3 -2/-2
`

const testMTL = `newmtl stone
Kd 0.5 0.4 0.3
Ns 12
map_Kd -s 1 1 stone.png
map_Ks stone_spec.png

newmtl moss
Kd 0.1 0.6 0.1
map_Kd stone.png
`

func TestDecoder(t *testing.T) {
	dec := NewDecoder()
	require.NoError(t, dec.Decode(strings.NewReader(testOBJ), strings.NewReader(testMTL)))
	assert.Equal(t, "rock.mtl", dec.Matlib)
	assert.Len(t, dec.Vertices, 4)
	assert.Len(t, dec.Uvs, 4)
	require.Len(t, dec.Objects, 1)
	require.Len(t, dec.Objects[0].Faces, 2)
	assert.Equal(t, []int{0, 1, 2}, dec.Objects[0].Faces[1].Vertices)
	assert.Equal(t, []int{noIndex, noIndex, noIndex}, dec.Objects[0].Faces[1].Normals)

	stone := dec.Materials["stone"]
	require.NotNil(t, stone)
	assert.Equal(t, "stone.png", stone.MapKd)
	assert.Equal(t, "stone_spec.png", stone.MapKs)
	assert.Equal(t, float32(12), stone.Shininess)
	assert.Equal(t, mgl32.Vec3{0.5, 0.4, 0.3}, stone.Diffuse)

	mds := dec.Meshes()
	require.Len(t, mds, 2)
	// the quad is a fan of two triangles over four shared vertices
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mds[0].Indices)
	assert.Len(t, mds[0].Vertices, 4)
	assert.Equal(t, mgl32.Vec2{1, 1}, mds[0].Vertices[2].TexCoord)
	assert.Equal(t, "moss", mds[1].Material.Name)
	assert.Len(t, mds[1].Indices, 3)
	// flat normal for faces without normals
	assert.True(t, mds[1].Vertices[0].Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}))
}

func TestDecoderErrors(t *testing.T) {
	for _, src := range []string{
		"v 0 0 0\nv 1 0 0\nf 1 2\n",
		"v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 0\n",
		"v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 9\n",
		"v 0 0\n",
	} {
		err := NewDecoder().Decode(strings.NewReader(src), nil)
		assert.Error(t, err, src)
		assert.Contains(t, err.Error(), "line:")
	}
}

func TestDecoderDefaultMaterial(t *testing.T) {
	dec := NewDecoder()
	require.NoError(t, dec.Decode(strings.NewReader("v 0 0 0\nv 1 0 0\nv 1 1 0\nusemtl nowhere\nf 1 2 3\nf 1 3 2\n"), nil))
	mds := dec.Meshes()
	require.Len(t, mds, 1)
	assert.Equal(t, "nowhere", mds[0].Material.Name)
	assert.Empty(t, mds[0].Material.MapKd)
	assert.Len(t, mds[0].Indices, 6)
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rock.obj"), []byte(testOBJ), 0666))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rock.mtl"), []byte(testMTL), 0666))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stone.png"), encodePNG(t, twoRows(255)), 0666))

	ctx := gputest.New()
	md, err := LoadModel(ctx, filepath.Join(dir, "rock.obj"))
	require.NoError(t, err)
	require.Len(t, md.Meshes, 2)
	// stone.png is shared, stone_spec.png is missing and left blank
	assert.Len(t, md.Textures, 2)

	stone := md.Meshes[0].Textures
	require.Len(t, stone, 2)
	assert.Equal(t, mesh.Diffuse, stone[0].Type)
	assert.Equal(t, mesh.Specular, stone[1].Type)
	moss := md.Meshes[1].Textures
	require.Len(t, moss, 1)
	assert.Same(t, stone[0].Handle, moss[0].Handle)
	_, _, hasImage := ctx.TextureSize(stone[1].Handle.ID())
	assert.False(t, hasImage)

	md.Release()
	assert.Zero(t, ctx.LiveObjects())
}

func TestLoadModelMissing(t *testing.T) {
	ctx := gputest.New()
	_, err := LoadModel(ctx, filepath.Join(t.TempDir(), "none.obj"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.obj")
	require.NoError(t, os.WriteFile(path, []byte("# nothing\nv 0 0 0\n"), 0666))
	_, err = LoadModel(ctx, path)
	assert.ErrorContains(t, err, "no faces")
	assert.Zero(t, ctx.LiveObjects())
}
