// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"math"

	"github.com/gazed/raytracer/rtmath"
)

// Kind enumerates the shapes a Primitive may hold. A tagged-variant
// struct is used instead of an interface with dynamic dispatch so the
// BVH and shader can branch on shape kind without an indirect call per
// ray, and so the GPU backend can mirror the same layout in a fixed-size
// buffer element.
type Kind int

const (
	SphereKind Kind = iota
	PlaneKind
	TriangleKind
)

// Primitive is a tagged-variant surface: a Sphere, Plane, or Triangle
// plus the material it is shaded with. BVHIndex is assigned once by the
// BVH builder and is otherwise unused by the primitive itself; it is the
// primitive's position in the BVH's permuted primitive slice.
type Primitive struct {
	Kind Kind

	// Sphere fields.
	Center rtmath.Vec3
	Radius float32

	// Plane fields.
	Point  rtmath.Vec3
	Normal rtmath.Vec3

	// Triangle fields.
	V0, V1, V2 rtmath.Vec3

	Material Material
	BVHIndex int
}

// NewSphere creates a sphere primitive. radius must be > 0.
func NewSphere(center rtmath.Vec3, radius float32, mat Material) (Primitive, error) {
	if radius <= 0 {
		return Primitive{}, errRadius(radius)
	}
	return Primitive{Kind: SphereKind, Center: center, Radius: radius, Material: mat}, nil
}

// NewPlane creates a plane primitive. normal is normalized to unit length.
func NewPlane(point, normal rtmath.Vec3, mat Material) Primitive {
	return Primitive{Kind: PlaneKind, Point: point, Normal: normal.Unit(), Material: mat}
}

// NewTriangle creates a triangle primitive from three vertices.
func NewTriangle(v0, v1, v2 rtmath.Vec3, mat Material) Primitive {
	return Primitive{Kind: TriangleKind, V0: v0, V1: v1, V2: v2, Material: mat}
}

// Intersect reports the closest positive-t hit between ray and the
// primitive, following the formulas in each kind's intersect* helper.
// A hit is only reported when the parametric distance is strictly
// positive (in front of the ray origin).
func (p Primitive) Intersect(r Ray) (Intersection, bool) {
	switch p.Kind {
	case SphereKind:
		return intersectSphere(p, r)
	case PlaneKind:
		return intersectPlane(p, r)
	default:
		return intersectTriangle(p, r)
	}
}

// AABB returns the primitive's axis-aligned bounding box, used by the
// BVH builder and traversal.
func (p Primitive) AABB() AABB {
	switch p.Kind {
	case SphereKind:
		r := rtmath.NewVec3(p.Radius, p.Radius, p.Radius)
		return AABB{Min: p.Center.Sub(r), Max: p.Center.Add(r)}
	case PlaneKind:
		// Planes have no natural bounds; use a very large cube so the
		// plane is always queryable, at the cost of BVH efficiency.
		const big = 1e10
		huge := rtmath.NewVec3(big, big, big)
		return AABB{Min: p.Point.Sub(huge), Max: p.Point.Add(huge)}
	default:
		min := p.V0.Min(p.V1).Min(p.V2)
		max := p.V0.Max(p.V1).Max(p.V2)
		return AABB{Min: min, Max: max}
	}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max rtmath.Vec3
}

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// SurfaceArea returns the box's surface area, used by the BVH's
// surface-area-heuristic split search.
func (a AABB) SurfaceArea() float32 {
	d := a.Max.Sub(a.Min)
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// Centroid returns the AABB's center point, used as the per-primitive
// sort key during BVH construction.
func (a AABB) Centroid() rtmath.Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Hit reports whether ray intersects the box at all — a cheap slab
// test used by BVH traversal to cull subtrees. It does not compute a
// hit point; the caller only needs to know whether to descend.
func (a AABB) Hit(r Ray) bool {
	tmin, tmax := float32(0), float32(math.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		origin := r.Origin.Component(axis)
		dir := r.Dir.Component(axis)
		lo := a.Min.Component(axis)
		hi := a.Max.Component(axis)
		if dir == 0 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}
		inv := 1 / dir
		t0 := (lo - origin) * inv
		t1 := (hi - origin) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return false
		}
	}
	return true
}
