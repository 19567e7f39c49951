// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package image

import (
	"fmt"
	stdimage "image"
	"image/color"
	"image/png"
	"io"
)

// Encode writes img to w as a PNG, opaque and 8 bits per channel. The
// caller is expected to open and close w, the same convention
// load/png.go uses for decoding.
func Encode(img *Image, w io.Writer) error {
	nrgba := stdimage.NewNRGBA(stdimage.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			r, g, b := uint8(p>>16), uint8(p>>8), uint8(p)
			nrgba.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	if err := png.Encode(w, nrgba); err != nil {
		return fmt.Errorf("could not encode png: %w", err)
	}
	return nil
}

// Decode reads a PNG from r and packs it into an Image. Any decoded
// image is converted through NRGBA regardless of its native PNG color
// model, and the alpha channel is discarded.
func Decode(r io.Reader) (*Image, error) {
	decoded, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode png: %w", err)
	}
	bounds := decoded.Bounds()
	img := New(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r32, g32, b32, _ := decoded.At(x, y).RGBA()
			// RGBA() returns 16 bit premultiplied-alpha-scaled channels;
			// since Encode always writes alpha=255 this is a plain shift.
			packed := uint32(r32>>8)<<16 | uint32(g32>>8)<<8 | uint32(b32>>8)
			img.Set(x-bounds.Min.X, y-bounds.Min.Y, packed)
		}
	}
	return img, nil
}
