// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import "fmt"

// UnsupportedChannelsError is returned for an image whose channel
// count has no matching texture format.
type UnsupportedChannelsError struct {
	Channels int
}

func (ue *UnsupportedChannelsError) Error() string {
	return fmt.Sprintf("loader: unsupported image channel count %d", ue.Channels)
}

// TextureLoadError is returned when a texture image cannot be loaded.
// The texture returned along with it is valid but has no image.
type TextureLoadError struct {
	Path string
	Err  error
}

func (te *TextureLoadError) Error() string {
	return fmt.Sprintf("loader: texture %q: %v", te.Path, te.Err)
}

func (te *TextureLoadError) Unwrap() error {
	return te.Err
}
