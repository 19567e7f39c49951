// Copyright © 2015-2016 Galvanized Logic. All rights reserved.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package cpu implements the scanline-parallel CPU rendering backend.
// It follows the worker-per-processor, channel-of-rows pattern from
// vu/eg/rt.go: a fixed pool of goroutines reads row numbers from a
// channel and renders each row independently, with no synchronization
// between rows because every pixel is a pure function of the
// (read-only) Scene, BVH, and its own (x,y).
package cpu

import (
	"log/slog"
	"runtime"
	"sync"

	syscpu "golang.org/x/sys/cpu"

	"github.com/gazed/raytracer/bvh"
	"github.com/gazed/raytracer/image"
	"github.com/gazed/raytracer/rtmath"
	"github.com/gazed/raytracer/scene"
	"github.com/gazed/raytracer/shade"
)

// Render builds a BVH over sc's primitives (if tree is nil) and
// produces the rendered Image using workers goroutines (runtime.NumCPU()
// if workers <= 0). Render is deterministic: two calls on the same
// Scene produce byte-identical Images, since each pixel depends only
// on the immutable Scene/BVH and its own coordinates.
func Render(sc *scene.Scene, tree *bvh.BVH, workers int) *image.Image {
	if tree == nil {
		tree = bvh.Build(sc.Primitives)
		sc.Primitives = tree.Primitives()
	}
	shader := shade.New(sc, tree)
	img := image.New(sc.Width, sc.Height)

	procs := workers
	if procs <= 0 {
		procs = runtime.NumCPU()
	}
	logSIMDPath(procs)
	rows := make(chan int, sc.Height)
	var wg sync.WaitGroup
	wg.Add(procs)
	for i := 0; i < procs; i++ {
		go worker(shader, sc, img, rows, &wg)
	}

	for y := 0; y < sc.Height; y++ {
		rows <- y
	}
	close(rows) // workers terminate once the channel drains.
	wg.Wait()
	return img
}

// worker reads row numbers from rows until the channel is closed,
// rendering one full row per read. Each row is written by exactly one
// worker, so no pixel is ever written twice.
func worker(shader *shade.Shader, sc *scene.Scene, img *image.Image, rows <-chan int, wg *sync.WaitGroup) {
	defer wg.Done()
	for y := range rows {
		renderRow(shader, sc, img, y)
	}
}

// renderRow fills in every pixel of row y by generating its primary
// ray, tracing it, and packing the resulting color.
func renderRow(shader *shade.Shader, sc *scene.Scene, img *image.Image, y int) {
	for x := 0; x < sc.Width; x++ {
		ray := sc.Camera.PrimaryRay(x, y, sc.Width, sc.Height)
		color := shader.Trace(ray.Origin, ray.Dir, shade.PrimaryDepth)
		img.Set(x, y, shade.Pack(clampNaN(color)))
	}
}

// clampNaN guards against a degenerate scene (e.g. a zero-length basis
// vector) producing a NaN channel; NaN clamps to 0 rather than
// propagating into the packed image, matching the "never fatal"
// failure semantics for numeric degeneracies.
func clampNaN(c rtmath.Vec3) rtmath.Vec3 {
	return rtmath.NewVec3(zeroIfNaN(c.X), zeroIfNaN(c.Y), zeroIfNaN(c.Z))
}

func zeroIfNaN(f float32) float32 {
	if f != f {
		return 0
	}
	return f
}

// logSIMDPath reports, once per render, whether the host CPU exposes
// the wider vector units Vec3 math could eventually target. This is
// informational only — the scalar rtmath.Vec3 implementation does not
// branch on it — so a render never behaves differently across hosts.
func logSIMDPath(procs int) {
	wide := syscpu.X86.HasAVX2 || syscpu.ARM64.HasASIMD
	slog.Debug("cpu backend starting", "wide_vector_units", wide, "workers", procs)
}
