// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rtmath

import "testing"

func TestDotCross(t *testing.T) {
	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)
	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot of orthogonal unit vectors = %f, want 0", got)
	}
	if got := a.Cross(b); !got.Aeq(NewVec3(0, 0, 1)) {
		t.Errorf("Cross(X,Y) = %v, want (0,0,1)", got)
	}
}

func TestUnit(t *testing.T) {
	v := NewVec3(3, 4, 0)
	u := v.Unit()
	if !AeqF(u.Len(), 1) {
		t.Errorf("Unit().Len() = %f, want 1", u.Len())
	}
	if !u.Aeq(NewVec3(0.6, 0.8, 0)) {
		t.Errorf("Unit() = %v, want (0.6,0.8,0)", u)
	}
}

func TestUnitZeroVector(t *testing.T) {
	z := NewVec3(0, 0, 0)
	if got := z.Unit(); !got.Eq(z) {
		t.Errorf("Unit() of the zero vector = %v, want unchanged zero vector", got)
	}
}

func TestReflect(t *testing.T) {
	// a ray going straight down reflected off an up-facing normal bounces
	// straight back up.
	dir := NewVec3(0, -1, 0)
	n := NewVec3(0, 1, 0)
	if got := dir.Reflect(n); !got.Aeq(NewVec3(0, 1, 0)) {
		t.Errorf("Reflect() = %v, want (0,1,0)", got)
	}
}

func TestClamp01(t *testing.T) {
	cases := []struct{ in, want float32 }{
		{-0.5, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {1.5, 1},
	}
	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Errorf("Clamp01(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestComponent(t *testing.T) {
	v := NewVec3(1, 2, 3)
	if v.Component(0) != 1 || v.Component(1) != 2 || v.Component(2) != 3 {
		t.Errorf("Component(0..2) = %f,%f,%f, want 1,2,3", v.Component(0), v.Component(1), v.Component(2))
	}
}
