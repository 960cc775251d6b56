// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := New("boom")
	assert.Equal(t, err, Log(err))
}

type codeError struct{ code int }

func (ce *codeError) Error() string { return fmt.Sprint("code ", ce.code) }

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &codeError{7})
	assert.True(t, Is(err, err))
	assert.True(t, Is(Join(err, nil), err))
	assert.False(t, Is(New("other"), err))
	assert.NoError(t, Join(nil, nil))
}
