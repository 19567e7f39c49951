// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import "github.com/gazed/raytracer/rtmath"

// Scene is the immutable aggregate passed to both rendering backends.
// It is built once by the scene-file loader and shared read-only by
// every CPU worker and GPU invocation for the life of a render. The
// only mutation that happens after construction is replacing
// Primitives with the BVH builder's permuted copy, in which each
// Primitive's BVHIndex is set, a one-time step completed before any ray
// is cast.
type Scene struct {
	Width, Height int
	OutputPath    string
	Camera        Camera
	Ambient       rtmath.Vec3
	MaxDepth      int
	MaxVerts      int

	Primitives []Primitive
	Lights     []Light
}

// Validate checks the invariants a Scene must satisfy before it can be
// rendered: positive dimensions, at least one bound on recursion depth,
// and each material's diffuse+ambient per-channel limit.
func (s Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errDims(s.Width, s.Height)
	}
	if s.MaxDepth < 1 {
		return errMaxDepth(s.MaxDepth)
	}
	for i, p := range s.Primitives {
		if err := p.Material.Validate(s.Ambient); err != nil {
			return errMaterial(i, err)
		}
	}
	return nil
}
