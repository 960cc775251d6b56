// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"cogentcore.org/asteroids/gpu"
	"github.com/h2non/filetype"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is decoded pixel data ready for upload as a texture.
type Image struct {
	// Size is the width and height in pixels.
	Size image.Point

	// Channels is the number of 8-bit channels per pixel: 1 for
	// gray images, 3 for opaque color and 4 for color with alpha.
	Channels int

	// Pix holds the rows bottom to top, matching the OpenGL
	// texture origin at the lower left.
	Pix []byte
}

// sniffLen is the number of header bytes filetype needs.
const sniffLen = 262

// DecodeImage decodes an image in any registered format.
func DecodeImage(r io.Reader) (*Image, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, _ := br.Peek(sniffLen)
	if !filetype.IsImage(head) {
		kind, _ := filetype.Match(head)
		return nil, fmt.Errorf("loader: not an image (detected %q)", kind.MIME.Value)
	}
	src, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("loader: decoding image: %w", err)
	}
	return FromImage(src), nil
}

// OpenImage decodes the image file at path.
func OpenImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeImage(f)
}

// FromImage converts src to an [Image], choosing the channel count
// from its color model and opacity, and flipping it vertically.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	im := &Image{Size: bounds.Size(), Channels: channels(src)}
	rgba := image.NewNRGBA(image.Rectangle{Max: im.Size})
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	w, h := im.Size.X, im.Size.Y
	im.Pix = make([]byte, w*h*im.Channels)
	for y := range h {
		srow := rgba.Pix[y*rgba.Stride:]
		drow := im.Pix[(h-1-y)*w*im.Channels:]
		for x := range w {
			s := srow[x*4 : x*4+4]
			d := drow[x*im.Channels : (x+1)*im.Channels]
			if im.Channels == 1 {
				d[0] = s[0]
				continue
			}
			copy(d, s[:im.Channels])
		}
	}
	return im
}

func channels(src image.Image) int {
	if m := src.ColorModel(); m == color.GrayModel || m == color.Gray16Model {
		return 1
	}
	if op, ok := src.(interface{ Opaque() bool }); ok && op.Opaque() {
		return 3
	}
	return 4
}

// FormatForChannels returns the texture format for a channel count:
// [gpu.Red] for 1, [gpu.RGB] for 3 and [gpu.RGBA] for 4.
// Any other count is an [*UnsupportedChannelsError].
func FormatForChannels(n int) (gpu.Enum, error) {
	switch n {
	case 1:
		return gpu.Red, nil
	case 3:
		return gpu.RGB, nil
	case 4:
		return gpu.RGBA, nil
	}
	return 0, &UnsupportedChannelsError{Channels: n}
}
