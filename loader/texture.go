// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"cogentcore.org/asteroids/base/errors"
	"cogentcore.org/asteroids/gpu"
)

// TextureFromFile loads the image at path into a new mipmapped
// texture. If the image cannot be loaded the texture is still
// returned, without an image, together with a logged
// [*TextureLoadError], so drawing can proceed.
func TextureFromFile(ctx gpu.Context, path string) (*gpu.Texture, error) {
	tx := gpu.NewTexture(ctx, path, gpu.Texture2D)
	img, err := OpenImage(path)
	if err != nil {
		return tx, errors.Log(&TextureLoadError{Path: path, Err: err})
	}
	if err := SetTextureImage(tx, img); err != nil {
		return tx, errors.Log(&TextureLoadError{Path: path, Err: err})
	}
	return tx, nil
}

// SetTextureImage uploads img to tx, generates mipmaps and sets
// repeat wrapping with trilinear filtering.
func SetTextureImage(tx *gpu.Texture, img *Image) error {
	format, err := FormatForChannels(img.Channels)
	if err != nil {
		return err
	}
	ctx := tx.Context()
	ctx.PixelStorei(gpu.UnpackAlignment, 1)
	if err := tx.SetImage(img.Size, format, img.Pix); err != nil {
		return err
	}
	ctx.GenerateMipmap(tx.Target)
	tx.SetWrap(gpu.Repeat)
	tx.SetFilter(gpu.LinearMipmapLinear, gpu.Linear)
	return nil
}
