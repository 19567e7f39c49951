// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package image

import (
	"bytes"
	"testing"
)

// TestEncodeDecodeRoundTrip reproduces the spec's round-trip property:
// encoding then decoding an Image yields pixels matching the original
// to within 1 per channel absolute difference (here, exactly, since
// Encode always writes full 8-bit alpha and no color space conversion
// is involved).
func TestEncodeDecodeRoundTrip(t *testing.T) {
	img := New(4, 3)
	img.Set(0, 0, 0x00FF0080)
	img.Set(3, 2, 0x00010203)
	img.Set(2, 1, 0x00FFFFFF)

	var buf bytes.Buffer
	if err := Encode(img, &buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !img.Equal(decoded) {
		t.Errorf("round-tripped image does not match original")
	}
}

func TestDecodeInvalidData(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a png")))
	if err == nil {
		t.Error("Decode of garbage input should fail")
	}
}
