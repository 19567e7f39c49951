// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package imgdiff compares two packed-pixel images for the gold-image
// testable properties in the spec: a per-channel absolute difference
// within a tolerance counts as equal. It is grounded on the original
// Rust imgcomparator's channel-split compare, generalized with an
// explicit tolerance instead of an exact-match-only diff.
package imgdiff

import (
	"fmt"

	"github.com/gazed/raytracer/image"
)

// Result reports how two images compared: the count of pixels whose
// per-channel difference exceeded tolerance, and a packed diff image
// with the same per-channel-absolute-difference encoding the original
// comparator produced (0 for pixels within tolerance).
type Result struct {
	DiffCount int
	Diff      *image.Image
}

// Compare reports the per-channel tolerant difference between a and b.
// A pixel counts as differing when any channel's absolute difference
// exceeds tolerance. Compare returns an error if the images have
// different dimensions, since there is no meaningful pixel-to-pixel
// comparison otherwise.
func Compare(a, b *image.Image, tolerance uint8) (Result, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return Result{}, fmt.Errorf("imgdiff: dimensions differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	diff := image.New(a.Width, a.Height)
	count := 0
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			p1, p2 := a.At(x, y), b.At(x, y)
			rd := absDiff(uint8(p1>>16), uint8(p2>>16))
			gd := absDiff(uint8(p1>>8), uint8(p2>>8))
			bd := absDiff(uint8(p1), uint8(p2))
			diff.Set(x, y, uint32(rd)<<16|uint32(gd)<<8|uint32(bd))
			if rd > tolerance || gd > tolerance || bd > tolerance {
				count++
			}
		}
	}
	return Result{DiffCount: count, Diff: diff}, nil
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
