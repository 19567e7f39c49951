// Copyright © 2014-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/gazed/raytracer/rtmath"
)

func TestPointLightShadowDir(t *testing.T) {
	l := NewPointLight(rtmath.NewVec3(0, 5, 0), rtmath.NewVec3(1, 1, 1))
	dir, dist := l.ShadowDir(rtmath.NewVec3(0, 0, 0))
	if !dir.Aeq(rtmath.NewVec3(0, 1, 0)) {
		t.Errorf("ShadowDir direction = %v, want (0,1,0)", dir)
	}
	if !rtmath.AeqF(dist, 5) {
		t.Errorf("ShadowDir distance = %f, want 5", dist)
	}
}

func TestDirectionalLightNormalizesDirection(t *testing.T) {
	l := NewDirectionalLight(rtmath.NewVec3(0, 2, 0), rtmath.NewVec3(1, 1, 1))
	if !rtmath.AeqF(l.Direction.Len(), 1) {
		t.Errorf("directional light direction length = %f, want 1", l.Direction.Len())
	}
}

func TestDirectionalLightShadowDirIgnoresHitPoint(t *testing.T) {
	l := NewDirectionalLight(rtmath.NewVec3(0, 1, 0), rtmath.NewVec3(1, 1, 1))
	dirA, _ := l.ShadowDir(rtmath.NewVec3(0, 0, 0))
	dirB, _ := l.ShadowDir(rtmath.NewVec3(100, -50, 3))
	if !dirA.Eq(dirB) {
		t.Error("directional light shadow direction should not depend on the hit point")
	}
}
