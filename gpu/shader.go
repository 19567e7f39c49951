// Copyright © 2015-2016 Galvanized Logic. All rights reserved.
// Use is governed by a BSD-style license found in the LICENSE file.

package gpu

import _ "embed"

// shaderSource is the WGSL compute kernel source for sphere-only
// scenes. It is never compiled by this package — there is no wgpu
// binding in this module's dependency graph. It declares the buffer
// layout and entry point that backend.go's computeInvocation mirrors;
// its main() only bounds-checks and writes a zero pixel, listing the
// shading steps in comments rather than implementing them.
//
//go:embed shader.wgsl
var shaderSource string

// ShaderSource returns the embedded WGSL compute shader text, exposed
// so tooling (or a future real wgpu backend) can inspect or compile it
// without this package depending on a WGSL toolchain itself.
func ShaderSource() string { return shaderSource }
