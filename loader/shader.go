// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader loads the assets of a scene: shader sources,
// images as textures, and Wavefront OBJ models.
package loader

import (
	"fmt"
	"io/fs"
)

// ShaderSource returns the text of the named shader file in fsys.
// On failure it returns an empty string with the error, and the
// caller decides whether to continue; an empty source does not compile.
func ShaderSource(fsys fs.FS, name string) (string, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("loader: reading shader: %w", err)
	}
	return string(b), nil
}
