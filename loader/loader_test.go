// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"cogentcore.org/asteroids/gpu"
	"cogentcore.org/asteroids/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShaderSource(t *testing.T) {
	fsys := fstest.MapFS{"shaders/a.glsl": {Data: []byte("void main() {}")}}
	src, err := ShaderSource(fsys, "shaders/a.glsl")
	assert.NoError(t, err)
	assert.Equal(t, "void main() {}", src)

	src, err = ShaderSource(fsys, "shaders/missing.glsl")
	assert.Error(t, err)
	assert.Empty(t, src)
}

func encodePNG(t *testing.T, img image.Image) []byte {
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, img))
	return b.Bytes()
}

// twoRows returns a 2x2 image with a red top row and a blue bottom row.
func twoRows(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := range 2 {
		img.SetNRGBA(x, 0, color.NRGBA{255, 0, 0, alpha})
		img.SetNRGBA(x, 1, color.NRGBA{0, 0, 255, alpha})
	}
	return img
}

func TestDecodeImageChannels(t *testing.T) {
	im, err := DecodeImage(bytes.NewReader(encodePNG(t, twoRows(255))))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 2), im.Size)
	assert.Equal(t, 3, im.Channels)
	// rows are stored bottom to top
	assert.Equal(t, []byte{0, 0, 255, 0, 0, 255, 255, 0, 0, 255, 0, 0}, im.Pix)

	im, err = DecodeImage(bytes.NewReader(encodePNG(t, twoRows(128))))
	require.NoError(t, err)
	assert.Equal(t, 4, im.Channels)
	assert.Len(t, im.Pix, 16)
	assert.Equal(t, []byte{0, 0, 255, 128}, im.Pix[:4])

	gray := image.NewGray(image.Rect(0, 0, 3, 1))
	gray.SetGray(2, 0, color.Gray{200})
	im, err = DecodeImage(bytes.NewReader(encodePNG(t, gray)))
	require.NoError(t, err)
	assert.Equal(t, 1, im.Channels)
	assert.Equal(t, []byte{0, 0, 200}, im.Pix)
}

func TestDecodeNotImage(t *testing.T) {
	_, err := DecodeImage(bytes.NewReader([]byte("just some text, not pixels")))
	assert.ErrorContains(t, err, "not an image")
}

func TestFormatForChannels(t *testing.T) {
	for n, want := range map[int]gpu.Enum{1: gpu.Red, 3: gpu.RGB, 4: gpu.RGBA} {
		f, err := FormatForChannels(n)
		assert.NoError(t, err)
		assert.Equal(t, want, f)
	}
	for _, n := range []int{0, 2, 5} {
		_, err := FormatForChannels(n)
		var ue *UnsupportedChannelsError
		require.True(t, errors.As(err, &ue))
		assert.Equal(t, n, ue.Channels)
	}
}

func TestTextureFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rock.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, twoRows(255)), 0666))

	ctx := gputest.New()
	tx, err := TextureFromFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, path, tx.Name)
	size, format, hasImage := ctx.TextureSize(tx.ID())
	assert.Equal(t, image.Pt(2, 2), size)
	assert.Equal(t, gpu.RGB, format)
	assert.True(t, hasImage)
	assert.True(t, ctx.TextureHasMipmap(tx.ID()))
	assert.Equal(t, int32(gpu.Repeat), ctx.TextureParam(tx.ID(), gpu.TextureWrapS))
	assert.Equal(t, int32(gpu.LinearMipmapLinear), ctx.TextureParam(tx.ID(), gpu.TextureMinFilter))
	assert.Empty(t, ctx.Errors)
}

func TestTextureFromFileBlank(t *testing.T) {
	ctx := gputest.New()
	path := filepath.Join(t.TempDir(), "missing.png")
	tx, err := TextureFromFile(ctx, path)
	var te *TextureLoadError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, path, te.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NotNil(t, tx)
	assert.NotZero(t, tx.ID())
	_, _, hasImage := ctx.TextureSize(tx.ID())
	assert.False(t, hasImage)
	tx.Release()
	assert.Zero(t, ctx.LiveObjects())
}
