// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/gazed/raytracer/rtmath"
)

func TestNewCameraRejectsBadFov(t *testing.T) {
	pos := rtmath.NewVec3(0, 0, 5)
	look := rtmath.NewVec3(0, 0, 0)
	up := rtmath.NewVec3(0, 1, 0)
	if _, err := NewCamera(pos, look, up, 0); err == nil {
		t.Error("NewCamera(fov=0) should have failed")
	}
	if _, err := NewCamera(pos, look, up, 180); err == nil {
		t.Error("NewCamera(fov=180) should have failed")
	}
	if _, err := NewCamera(pos, look, up, 90); err != nil {
		t.Errorf("NewCamera(fov=90) failed: %v", err)
	}
}

func TestPrimaryRayIsUnit(t *testing.T) {
	cam, err := NewCamera(rtmath.NewVec3(0, 0, 5), rtmath.NewVec3(0, 0, 0), rtmath.NewVec3(0, 1, 0), 60)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	w, h := 200, 150
	for y := 0; y < h; y += 7 {
		for x := 0; x < w; x += 7 {
			ray := cam.PrimaryRay(x, y, w, h)
			if l := ray.Dir.Len(); !rtmath.AeqF(l, 1) {
				t.Errorf("PrimaryRay(%d,%d).Dir length = %f, want 1", x, y, l)
			}
		}
	}
}

func TestPrimaryRayCenterPixelPointsAtDirection(t *testing.T) {
	cam, err := NewCamera(rtmath.NewVec3(0, 0, 5), rtmath.NewVec3(0, 0, 0), rtmath.NewVec3(0, 1, 0), 60)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	w, h := 200, 200
	ray := cam.PrimaryRay(w/2-1, h/2-1, w, h)
	direction, _, _ := cam.Basis()
	// The nearest-to-center pixel ray should be very close to straight ahead.
	if dot := ray.Dir.Dot(direction); dot < 0.99 {
		t.Errorf("center pixel ray diverges from camera direction: dot=%f", dot)
	}
}

func TestPrimaryRayRowZeroIsTop(t *testing.T) {
	cam, err := NewCamera(rtmath.NewVec3(0, 0, 5), rtmath.NewVec3(0, 0, 0), rtmath.NewVec3(0, 1, 0), 60)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	w, h := 100, 100
	_, _, vplane := cam.Basis()
	top := cam.PrimaryRay(w/2, 0, w, h)
	bottom := cam.PrimaryRay(w/2, h-1, w, h)
	if top.Dir.Dot(vplane) < bottom.Dir.Dot(vplane) {
		t.Error("row 0 should be the top of the image (larger vplane component)")
	}
}
