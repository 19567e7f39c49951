// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"fmt"
	"math"

	"github.com/gazed/raytracer/rtmath"
)

// Camera tracks the location and orientation of the eye point used to
// generate primary rays. Unlike a rasterizer's camera, which only needs
// a combined view-projection matrix, a ray tracer's camera needs an
// orthonormal basis (direction, right, vplane) so that each pixel can
// derive its own ray without a matrix multiply.
type Camera struct {
	Position rtmath.Vec3 // eye point.
	LookAt   rtmath.Vec3 // point the camera is aimed at.
	Up       rtmath.Vec3 // approximate up direction, reorthonormalized.
	Fov      float32     // vertical field of view in degrees, 1..179.

	// Derived once in NewCamera and reused for every pixel.
	direction rtmath.Vec3
	right     rtmath.Vec3
	vplane    rtmath.Vec3
}

// NewCamera builds a Camera and derives its orthonormal basis from
// position, lookAt and up. Fov must be in [1,179] degrees.
func NewCamera(position, lookAt, up rtmath.Vec3, fov float32) (Camera, error) {
	if fov < 1 || fov > 179 {
		return Camera{}, fmt.Errorf("camera fov %v out of range [1,179]", fov)
	}
	c := Camera{Position: position, LookAt: lookAt, Up: up, Fov: fov}
	c.direction = lookAt.Sub(position).Unit()
	c.right = c.direction.Cross(up).Unit()
	c.vplane = c.right.Cross(c.direction).Unit()
	return c, nil
}

// Ray is a ray cast through the scene: an origin point and a unit
// direction.
type Ray struct {
	Origin rtmath.Vec3
	Dir    rtmath.Vec3
}

// PrimaryRay generates the camera ray through the center of pixel (x,y)
// in an image of size w×h. Row 0 is the top of the image, so y is
// inverted relative to the vplane basis vector. The +0.5 pixel-center
// convention is mandatory: shifting it produces a visibly different
// image.
func (c Camera) PrimaryRay(x, y, w, h int) Ray {
	fovRad := rtmath.Rad(c.Fov)
	ph := float32(math.Tan(float64(fovRad / 2)))
	pw := ph * float32(w) / float32(h)

	halfW := float32(w) / 2
	halfH := float32(h) / 2
	a := pw * ((float32(x) + 0.5) - halfW) / halfW
	b := ph * (halfH - (float32(y) + 0.5)) / halfH

	dir := c.right.Scale(a).Add(c.vplane.Scale(b)).Add(c.direction).Unit()
	return Ray{Origin: c.Position, Dir: dir}
}

// Basis returns the camera's derived orthonormal basis, computed once
// in NewCamera. Exposed so the GPU backend can pack it into its uniform
// buffer without recomputing per invocation.
func (c Camera) Basis() (direction, right, vplane rtmath.Vec3) {
	return c.direction, c.right, c.vplane
}
