// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

// intersection.go holds the per-kind ray/primitive intersection tests.
// Each follows a well known formula, cited in the function it belongs
// to, the way physics/caster.go documents its ray-plane and ray-sphere
// casts.

import (
	"fmt"
	"math"

	"github.com/gazed/raytracer/rtmath"
)

// Intersection is the result of a ray hitting a primitive's surface.
type Intersection struct {
	Distance   float32
	Point      rtmath.Vec3
	Normal     rtmath.Vec3 // unit length.
	Material   Material
	IsBackFace bool
}

func errRadius(r float32) error {
	return fmt.Errorf("sphere radius %v must be > 0", r)
}

// intersectSphere: http://en.wikipedia.org/wiki/Line-sphere_intersection
// Uses the normalized-ray simplification from the ray direction being
// unit length, solving |o+td-c|²=r² for the smaller root. When that
// root is not positive (the ray starts inside or past the sphere) the
// ray misses; the larger root is not used.
func intersectSphere(p Primitive, r Ray) (Intersection, bool) {
	oc := r.Origin.Sub(p.Center)
	halfB := oc.Dot(r.Dir)
	c := oc.Dot(oc) - p.Radius*p.Radius
	disc := halfB*halfB - c
	if disc < 0 {
		return Intersection{}, false
	}
	sqrtDisc := float32(math.Sqrt(float64(disc)))
	t := -halfB - sqrtDisc
	if t <= 0 {
		return Intersection{}, false
	}
	point := r.Origin.Add(r.Dir.Scale(t))
	normal := point.Sub(p.Center).Scale(1 / p.Radius)
	return Intersection{Distance: t, Point: point, Normal: normal, Material: p.Material}, true
}

// intersectPlane: http://en.wikipedia.org/wiki/Line-plane_intersection
func intersectPlane(p Primitive, r Ray) (Intersection, bool) {
	denom := p.Normal.Dot(r.Dir)
	if denom > -1e-6 && denom < 1e-6 {
		return Intersection{}, false // ray parallel to the plane.
	}
	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t <= 0 {
		return Intersection{}, false
	}
	point := r.Origin.Add(r.Dir.Scale(t))
	return Intersection{
		Distance:   t,
		Point:      point,
		Normal:     p.Normal,
		Material:   p.Material,
		IsBackFace: denom > 0,
	}, true
}

// intersectTriangle implements the Möller-Trumbore algorithm:
// https://en.wikipedia.org/wiki/M%C3%B6ller%E2%80%93Trumbore_intersection_algorithm
func intersectTriangle(p Primitive, r Ray) (Intersection, bool) {
	const eps = 1e-6
	edge1 := p.V1.Sub(p.V0)
	edge2 := p.V2.Sub(p.V0)
	pvec := r.Dir.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -eps && det < eps {
		return Intersection{}, false // ray parallel to the triangle's plane.
	}
	invDet := 1 / det
	tvec := r.Origin.Sub(p.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return Intersection{}, false
	}
	qvec := tvec.Cross(edge1)
	v := r.Dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return Intersection{}, false
	}
	t := edge2.Dot(qvec) * invDet
	if t <= 0 {
		return Intersection{}, false
	}
	normal := edge1.Cross(edge2).Unit()
	point := r.Origin.Add(r.Dir.Scale(t))
	return Intersection{
		Distance:   t,
		Point:      point,
		Normal:     normal,
		Material:   p.Material,
		IsBackFace: normal.Dot(r.Dir) > 0,
	}, true
}
