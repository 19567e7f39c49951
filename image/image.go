// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package image holds the packed-pixel raster the core renders into,
// and the PNG codec used to get it on and off disk. The core itself
// only knows about the packed Image; encoding/decoding is a
// collaborator, the way load/png.go is a collaborator of the render
// package rather than part of it.
package image

import "fmt"

// Image is a row-major sequence of packed 0x00RRGGBB 24-bit pixels.
type Image struct {
	Width, Height int
	Pixels        []uint32
}

// New allocates a black image of the given size. width and height must
// both be positive.
func New(width, height int) *Image {
	return &Image{Width: width, Height: height, Pixels: make([]uint32, width*height)}
}

// Set writes the packed pixel p at (x,y). It panics on an out of range
// coordinate, since that always indicates a backend bug rather than
// user input.
func (img *Image) Set(x, y int, p uint32) {
	img.Pixels[img.index(x, y)] = p
}

// At returns the packed pixel at (x,y).
func (img *Image) At(x, y int) uint32 {
	return img.Pixels[img.index(x, y)]
}

func (img *Image) index(x, y int) int {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		panic(fmt.Sprintf("image: coordinate (%d,%d) out of bounds for %dx%d image", x, y, img.Width, img.Height))
	}
	return y*img.Width + x
}

// Equal reports whether img and other have the same dimensions and
// pixel values. Used by determinism tests that render a scene twice.
func (img *Image) Equal(other *Image) bool {
	if img.Width != other.Width || img.Height != other.Height {
		return false
	}
	for i := range img.Pixels {
		if img.Pixels[i] != other.Pixels[i] {
			return false
		}
	}
	return true
}
