// Copyright © 2015-2016 Galvanized Logic. All rights reserved.
// Use is governed by a BSD-style license found in the LICENSE file.

package gpu

import "errors"

// Render error kinds, matching the spec's GPU render-error taxonomy:
// no suitable adapter, device request failed, buffer map failed. They
// are wrapped, so callers can tell them apart with errors.Is;
// cmd/raytrace falls back to the CPU backend on any GPU render error
// when its config enables fallback, without checking the kind.
var (
	ErrNoAdapter           = errors.New("gpu: no suitable adapter")
	ErrDeviceRequestFailed = errors.New("gpu: device request failed")
	ErrMapFailed           = errors.New("gpu: buffer map failed")
)
