// Copyright © 2014-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"math"

	"github.com/gazed/raytracer/rtmath"
)

// LightKind distinguishes the two light variants a scene may contain.
type LightKind int

const (
	PointLight LightKind = iota
	DirectionalLight
)

// Light is a tagged-variant light source. Valid R,G,B color channels
// range from 0 to 1.
//
// For a Directional light, Direction is the unit vector pointing from
// a surface toward the light (see the scene-file "directional"
// directive); the shader uses it unnegated.
type Light struct {
	Kind      LightKind
	Position  rtmath.Vec3 // PointLight only.
	Direction rtmath.Vec3 // DirectionalLight only, unit length.
	Color     rtmath.Vec3
}

// NewPointLight creates a point light at position with the given color.
func NewPointLight(position, color rtmath.Vec3) Light {
	return Light{Kind: PointLight, Position: position, Color: color}
}

// NewDirectionalLight creates a directional light. direction is
// normalized to unit length; it is stored pointing from a lit surface
// toward the light, per the scene-file convention.
func NewDirectionalLight(direction, color rtmath.Vec3) Light {
	return Light{Kind: DirectionalLight, Direction: direction.Unit(), Color: color}
}

// ShadowDir returns the unit direction from the hit point toward the
// light, and for point lights the distance to the light (math.MaxFloat32
// for directional lights, which have no finite distance).
func (l Light) ShadowDir(hitPoint rtmath.Vec3) (dir rtmath.Vec3, distance float32) {
	if l.Kind == PointLight {
		toLight := l.Position.Sub(hitPoint)
		return toLight.Unit(), toLight.Len()
	}
	return l.Direction, math.MaxFloat32
}
