// Copyright © 2015-2016 Galvanized Logic. All rights reserved.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package gpu implements the GPU compute rendering backend described
// in the spec: buffer layout with explicit 16-byte-alignment padding,
// 8x8 workgroup dispatch, and a storage-buffer-to-staging-buffer
// readback. There is no wgpu binding in this module's dependency
// graph, so Device/Queue/Buffer below emulate the adapter/device/
// fence/map lifecycle in-process; computeInvocation is the Go
// translation of shader.wgsl that a real backend would instead compile
// and dispatch to hardware. The Renderer-style Init-then-use lifecycle
// mirrors render.Renderer's Init()/Render(m) shape.
package gpu

import "fmt"

// Device stands in for a wgpu.Device: requested once per render,
// discarded afterward. RequestAdapter never fails in this emulation
// (there being no real adapter enumeration to fail), but the call is
// kept so the ErrNoAdapter/ErrDeviceRequestFailed paths have a single
// place to report a future real backend's failures.
type Device struct {
	queue *Queue
}

// RequestAdapter stands in for wgpu's adapter-enumeration step; it
// always succeeds in this software emulation.
func RequestAdapter() (*Device, error) {
	return &Device{queue: &Queue{}}, nil
}

// Queue returns the device's command queue, used to submit the
// compute dispatch.
func (d *Device) Queue() *Queue { return d.queue }

// Queue stands in for wgpu.Queue: dispatch submission and buffer
// mapping both go through it so a real backend's fence/map lifecycle
// has a natural home.
type Queue struct{}

// Buffer is a host-visible staging buffer that mirrors a GPU storage
// buffer after MapAsync completes. In this emulation the "map" step is
// synchronous, since computeInvocation already wrote directly into Go
// memory; a real backend would instead copy the device-local buffer to
// a host-visible one and wait on a fence before this call returns.
type Buffer struct {
	data []uint32
}

// MapAsync returns the buffer's contents, or ErrMapFailed if the
// buffer was never written (a zero-length data slice, which can only
// happen if dispatch was never submitted).
func (b *Buffer) MapAsync() ([]uint32, error) {
	if len(b.data) == 0 {
		return nil, fmt.Errorf("%w: staging buffer is empty", ErrMapFailed)
	}
	return b.data, nil
}
