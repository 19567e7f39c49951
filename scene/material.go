// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"fmt"

	"github.com/gazed/raytracer/rtmath"
)

// Material is the per-primitive surface description used by the
// blinn-phong shader.
type Material struct {
	DiffuseColor  rtmath.Vec3 // diffuse reflectance, each channel in [0,1].
	SpecularColor rtmath.Vec3 // specular reflectance, each channel >= 0.
	Shininess     float32     // phong exponent, >= 0.
}

// Validate checks the material against the scene's ambient term.
// diffuse+ambient must not exceed 1 per channel, matching the scene
// file's load-time invariant.
func (m Material) Validate(ambient rtmath.Vec3) error {
	if m.DiffuseColor.X+ambient.X > 1+rtmath.Epsilon ||
		m.DiffuseColor.Y+ambient.Y > 1+rtmath.Epsilon ||
		m.DiffuseColor.Z+ambient.Z > 1+rtmath.Epsilon {
		return fmt.Errorf("material diffuse %v + ambient %v exceeds 1 in some channel", m.DiffuseColor, ambient)
	}
	if m.SpecularColor.X < 0 || m.SpecularColor.Y < 0 || m.SpecularColor.Z < 0 {
		return fmt.Errorf("material specular %v has a negative channel", m.SpecularColor)
	}
	if m.Shininess < 0 {
		return fmt.Errorf("material shininess %v is negative", m.Shininess)
	}
	return nil
}

// HasSpecular reports whether any specular channel is non-zero, gating
// whether the shader needs to cast a reflection ray for a hit using
// this material.
func (m Material) HasSpecular() bool {
	return m.SpecularColor.X > 0 || m.SpecularColor.Y > 0 || m.SpecularColor.Z > 0
}
