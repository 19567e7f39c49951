// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import "fmt"

func errDims(w, h int) error {
	return fmt.Errorf("scene dimensions %dx%d must both be positive", w, h)
}

func errMaxDepth(d int) error {
	return fmt.Errorf("scene maxdepth %d must be >= 1", d)
}

func errMaterial(index int, err error) error {
	return fmt.Errorf("primitive %d: %w", index, err)
}
