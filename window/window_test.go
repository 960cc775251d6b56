// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Escape", KeyEscape.String())
	assert.Equal(t, "D", KeyD.String())
	assert.Equal(t, "Key(42)", Key(42).String())
}

func TestResourceCreationError(t *testing.T) {
	cause := errors.New("no display")
	var err error = &ResourceCreationError{Resource: "window", Err: cause}
	assert.Equal(t, "window: creating window: no display", err.Error())
	assert.ErrorIs(t, err, cause)
}
