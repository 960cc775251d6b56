// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaders

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSources(t *testing.T) {
	for _, name := range []string{SceneVertex, InstanceVertex, SceneFragment, ScreenVertex, ScreenFragment} {
		b, err := fs.ReadFile(FS, name)
		assert.NoError(t, err, name)
		assert.Contains(t, string(b), "#version 330 core", name)
		assert.Contains(t, string(b), "void main()", name)
	}
}
