// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scenefile

import (
	"strings"
	"testing"

	"github.com/gazed/raytracer/scene"
)

const sampleScene = `
# scenario 1: single red sphere, no lights, ambient only.
size 200 200
output out.png
camera 0 0 5 0 0 0 0 1 0 60
ambient 0.1 0.1 0.1
diffuse 0.8 0 0
sphere 0 0 0 1
`

func TestParseMinimalScene(t *testing.T) {
	sc, err := Parse(strings.NewReader(sampleScene))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sc.Width != 200 || sc.Height != 200 {
		t.Errorf("size = %dx%d, want 200x200", sc.Width, sc.Height)
	}
	if sc.OutputPath != "out.png" {
		t.Errorf("output = %q, want out.png", sc.OutputPath)
	}
	if len(sc.Primitives) != 1 {
		t.Fatalf("len(Primitives) = %d, want 1", len(sc.Primitives))
	}
	if sc.Primitives[0].Kind != scene.SphereKind {
		t.Errorf("primitive kind = %v, want SphereKind", sc.Primitives[0].Kind)
	}
	if sc.MaxDepth != 1 {
		t.Errorf("default maxdepth = %d, want 1", sc.MaxDepth)
	}
}

func TestParseTriangleWithVertexPool(t *testing.T) {
	const src = `
size 10 10
camera 0 0 5 0 0 0 0 1 0 45
maxverts 3
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
diffuse 0.5 0.5 0.5
tri 0 1 2
`
	sc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sc.Primitives) != 1 || sc.Primitives[0].Kind != scene.TriangleKind {
		t.Fatalf("expected a single triangle primitive, got %+v", sc.Primitives)
	}
}

func TestParseUnknownDirective(t *testing.T) {
	_, err := Parse(strings.NewReader("size 10 10\nbogus 1 2 3\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown directive")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", perr.Line)
	}
}

func TestParseVertexIndexOutOfRange(t *testing.T) {
	const src = `
size 10 10
camera 0 0 5 0 0 0 0 1 0 45
maxverts 1
vertex 0 0 0
tri 0 1 2
`
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for an out-of-range vertex index")
	}
}

func TestParseVertexPoolOverflow(t *testing.T) {
	const src = `
size 10 10
camera 0 0 5 0 0 0 0 1 0 45
maxverts 1
vertex 0 0 0
vertex 1 1 1
`
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error when the vertex pool overflows maxverts")
	}
}

func TestParseConflictingAmbientDiffuse(t *testing.T) {
	const src = `
size 10 10
camera 0 0 5 0 0 0 0 1 0 45
ambient 0.9 0.9 0.9
diffuse 0.5 0.5 0.5
sphere 0 0 0 1
`
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error when diffuse+ambient exceeds 1")
	}
}

func TestParseOutOfRangeFov(t *testing.T) {
	const src = `
size 10 10
camera 0 0 5 0 0 0 0 1 0 180
`
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for fov out of [1,179]")
	}
}

func TestParseMalformedNumber(t *testing.T) {
	const src = `
size 10 ten
`
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a malformed integer")
	}
}

func TestParseMissingCamera(t *testing.T) {
	const src = `
size 10 10
sphere 0 0 0 1
`
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error when no camera directive is present")
	}
}

func TestParseIgnoresBlankAndCommentLines(t *testing.T) {
	const src = `

# a comment

size 10 10

camera 0 0 5 0 0 0 0 1 0 45

`
	sc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sc.Width != 10 || sc.Height != 10 {
		t.Errorf("size = %dx%d, want 10x10", sc.Width, sc.Height)
	}
}
