// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rtmath performs the 3-vector algebra needed for ray tracing:
// dot, cross, normalize and a handful of scalar helpers. Vectors are
// plain value types so they can be freely copied between goroutines
// without synchronization.
package rtmath

import "math"

// Epsilon is the tolerance below which a float32 difference is
// considered zero. Anything with less precision than this is noise.
const Epsilon float32 = 1e-6

// Vec3 is a 3 element vector. It can also be used as a point.
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 builds a vector from its components.
func NewVec3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Add returns v+a.
func (v Vec3) Add(a Vec3) Vec3 { return Vec3{v.X + a.X, v.Y + a.Y, v.Z + a.Z} }

// Sub returns v-a.
func (v Vec3) Sub(a Vec3) Vec3 { return Vec3{v.X - a.X, v.Y - a.Y, v.Z - a.Z} }

// Mul returns the componentwise (Hadamard) product v⊙a.
func (v Vec3) Mul(a Vec3) Vec3 { return Vec3{v.X * a.X, v.Y * a.Y, v.Z * a.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Neg returns -v.
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product v·a.
func (v Vec3) Dot(a Vec3) float32 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Cross returns the cross product v×a.
func (v Vec3) Cross(a Vec3) Vec3 {
	return Vec3{
		v.Y*a.Z - v.Z*a.Y,
		v.Z*a.X - v.X*a.Z,
		v.X*a.Y - v.Y*a.X,
	}
}

// Len returns the vector's length.
func (v Vec3) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// LenSqr returns the vector's squared length, avoiding a sqrt.
func (v Vec3) LenSqr() float32 { return v.Dot(v) }

// Unit returns v normalized to unit length. The zero vector is returned
// unchanged rather than producing NaNs.
func (v Vec3) Unit() Vec3 {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	return v.Scale(1 / l)
}

// Reflect returns v reflected about the unit normal n: v - 2(v·n)n.
// Used for the shader's recursive reflection ray direction.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Eq returns true if every component of v equals the corresponding
// component of a.
func (v Vec3) Eq(a Vec3) bool { return v.X == a.X && v.Y == a.Y && v.Z == a.Z }

// Aeq (~=) almost-equals returns true if v and a are within Epsilon of
// each other in every component. Used in tests where direct float
// comparison is unreliable.
func (v Vec3) Aeq(a Vec3) bool {
	return AeqF(v.X, a.X) && AeqF(v.Y, a.Y) && AeqF(v.Z, a.Z)
}

// Min returns the componentwise minimum of v and a.
func (v Vec3) Min(a Vec3) Vec3 {
	return Vec3{min32(v.X, a.X), min32(v.Y, a.Y), min32(v.Z, a.Z)}
}

// Max returns the componentwise maximum of v and a.
func (v Vec3) Max(a Vec3) Vec3 {
	return Vec3{max32(v.X, a.X), max32(v.Y, a.Y), max32(v.Z, a.Z)}
}

// Component returns the i'th axis value (0=X, 1=Y, 2=Z). Used by the BVH
// builder to split along an arbitrary axis without a switch at every call
// site.
func (v Vec3) Component(axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// AeqF (~=) almost-equals returns true if f1 and f2 are within Epsilon.
func AeqF(f1, f2 float32) bool {
	diff := f1 - f2
	return diff < Epsilon && diff > -Epsilon
}

// Clamp01 clamps f to the [0,1] range, as used before tone-mapping a
// shaded color to a packed pixel.
func Clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Rad converts degrees to radians.
func Rad(degrees float32) float32 { return degrees * math.Pi / 180 }
