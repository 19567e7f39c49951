// Copyright © 2015-2016 Galvanized Logic. All rights reserved.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package shade implements the Whitted ray tracer's shading pipeline:
// closest-hit resolution against a BVH, shadow testing, blinn-phong
// illumination, and recursive specular reflection. It is the spiritual
// successor of the business-card ray tracer in vu/eg/rt.go, generalized
// from a hardcoded sphere scene and a fixed falloff to an arbitrary
// Scene with materials, multiple light kinds, and a SAH-accelerated BVH.
package shade

import (
	"math"

	"github.com/gazed/raytracer/bvh"
	"github.com/gazed/raytracer/rtmath"
	"github.com/gazed/raytracer/scene"
)

// shadowBias nudges a ray origin off the surface it was cast from so
// that the surface does not immediately re-intersect its own shadow or
// reflection ray because of floating point error.
const shadowBias = 1e-6

// PrimaryDepth is the depth value backends must pass for a primary
// (camera) ray. maxdepth==1 means primary rays only, no reflection;
// counting the primary ray as depth 1 (not 0) makes the
// "depth+1 < maxdepth" reflection gate match that definition exactly.
const PrimaryDepth = 1

// Shader resolves primary, shadow, and reflection rays against a
// Scene's BVH. A Shader holds only read-only references, so the same
// Shader value may be used concurrently by every CPU worker or GPU
// emulation invocation.
type Shader struct {
	Scene *scene.Scene
	Tree  *bvh.BVH
}

// New builds a Shader for the given scene and its already-built BVH.
func New(s *scene.Scene, tree *bvh.BVH) *Shader {
	return &Shader{Scene: s, Tree: tree}
}

// Trace resolves the color seen along the ray (origin,dir). depth
// counts primary rays as 1 (PrimaryDepth); maxdepth 1 means primary
// rays only (no reflection), since reflection is gated by
// depth+1 < maxdepth.
func (s *Shader) Trace(origin, dir rtmath.Vec3, depth int) rtmath.Vec3 {
	if depth > s.Scene.MaxDepth {
		return rtmath.Vec3{}
	}
	ray := scene.Ray{Origin: origin, Dir: dir}
	hit, ok := s.closestHit(ray)
	if !ok {
		return rtmath.Vec3{}
	}

	var direct rtmath.Vec3
	for _, light := range s.Scene.Lights {
		if s.shadowed(hit, light) {
			continue
		}
		direct = direct.Add(s.blinnPhong(hit, dir, light))
	}
	color := direct.Add(s.Scene.Ambient)

	if hit.Material.HasSpecular() && depth+1 < s.Scene.MaxDepth {
		reflectDir := dir.Reflect(hit.Normal)
		reflectOrigin := hit.Point.Add(hit.Normal.Scale(shadowBias))
		bounced := s.Trace(reflectOrigin, reflectDir, depth+1)
		color = color.Add(hit.Material.SpecularColor.Mul(bounced))
	}
	return color
}

// closestHit queries the BVH for ray candidates and returns the
// minimum-distance hit among the ones whose own Intersect test
// succeeds. The BVH only narrows the candidate set; picking the
// closest hit is the shader's job, per the BVH's traversal contract.
func (s *Shader) closestHit(r scene.Ray) (scene.Intersection, bool) {
	candidates := s.Tree.Traverse(r)
	var closest scene.Intersection
	found := false
	for _, p := range candidates {
		hit, ok := p.Intersect(r)
		if !ok {
			continue
		}
		if !found || hit.Distance < closest.Distance {
			closest = hit
			found = true
		}
	}
	return closest, found
}

// shadowed casts a shadow ray from the hit point toward the light and
// reports whether any other surface blocks it. Back-face self-shadowing
// between coplanar faces is ignored, matching the spec's shadow-test
// rule.
func (s *Shader) shadowed(hit scene.Intersection, light scene.Light) bool {
	dir, lightDistance := light.ShadowDir(hit.Point)
	origin := hit.Point.Add(hit.Normal.Scale(shadowBias))
	ray := scene.Ray{Origin: origin, Dir: dir}

	for _, p := range s.Tree.Traverse(ray) {
		blocker, ok := p.Intersect(ray)
		if !ok || blocker.Distance < shadowBias {
			continue
		}
		if hit.IsBackFace && blocker.IsBackFace {
			continue
		}
		if light.Kind == scene.PointLight && blocker.Distance >= lightDistance {
			continue
		}
		return true
	}
	return false
}

// blinnPhong evaluates the diffuse+specular contribution of a single
// light at a hit point. viewDir is the incoming primary/reflection ray
// direction (not the view vector itself — the view vector is its
// negation).
func (s *Shader) blinnPhong(hit scene.Intersection, viewDir rtmath.Vec3, light scene.Light) rtmath.Vec3 {
	dirToLight, _ := light.ShadowDir(hit.Point)
	nDotL := hit.Normal.Dot(dirToLight)
	if nDotL < 0 {
		nDotL = 0
	}
	view := viewDir.Neg()
	half := dirToLight.Add(view).Unit()
	nDotH := hit.Normal.Dot(half)
	if nDotH < 0 {
		nDotH = 0
	}

	specularFactor := specularFactor(hit.Material.Shininess, nDotH, nDotL)

	diffuse := hit.Material.DiffuseColor.Scale(nDotL)
	specular := hit.Material.SpecularColor.Scale(specularFactor)
	return diffuse.Add(specular).Mul(light.Color)
}

// specularFactor implements the legacy piecewise specular rule: the
// shininess==0 and shininess==1 special cases preserve the original
// reference renderer's output and must not be "simplified" into a
// single math.Pow call without regenerating gold images.
func specularFactor(shininess, nDotH, nDotL float32) float32 {
	switch shininess {
	case 1.0:
		return nDotH
	case 0.0:
		if nDotL > 0 {
			return nDotH
		}
		return 0
	default:
		if nDotL > 0 {
			return float32(math.Pow(float64(nDotH), float64(shininess)))
		}
		return 0
	}
}

// Pack tone-maps a linear color to a packed 0x00RRGGBB pixel: clamp
// each channel to [0,1], scale to [0,255], and round to nearest.
func Pack(c rtmath.Vec3) uint32 {
	r := packChannel(c.X)
	g := packChannel(c.Y)
	b := packChannel(c.Z)
	return r<<16 | g<<8 | b
}

func packChannel(f float32) uint32 {
	clamped := rtmath.Clamp01(f)
	return uint32(math.Round(float64(clamped) * 255))
}

// Unpack splits a packed 0x00RRGGBB pixel back into its byte channels.
func Unpack(p uint32) (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}
