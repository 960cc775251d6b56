// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// Releaser is implemented by everything that owns GPU objects.
type Releaser interface {
	Release()
}

// ReleaseFunc adapts a function to the [Releaser] interface.
type ReleaseFunc func()

func (rf ReleaseFunc) Release() { rf() }

// Resources is a stack of owned GPU objects, released in reverse
// order of addition. The zero value is ready to use.
// A typical use is:
//
//	var res gpu.Resources
//	defer res.Release()
//	buf := gpu.NewBufferFrom(ctx, gpu.ArrayBuffer, data, gpu.StaticDraw)
//	res.Add(buf)
type Resources struct {
	list []Releaser
}

// Add pushes the given releasers onto the stack. Nil entries are ignored.
func (rs *Resources) Add(rel ...Releaser) {
	for _, r := range rel {
		if r != nil {
			rs.list = append(rs.list, r)
		}
	}
}

// Len returns the number of resources still owned.
func (rs *Resources) Len() int {
	return len(rs.list)
}

// Release releases all resources, most recently added first.
// It is safe to call more than once.
func (rs *Resources) Release() {
	for i := len(rs.list) - 1; i >= 0; i-- {
		rs.list[i].Release()
	}
	rs.list = nil
}
