// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package bvh builds and traverses a bounding-volume hierarchy over a
// scene's primitives. Construction is a one-time, top-down binary split
// guided by the surface-area heuristic (SAH). Traversal is read-only and
// safe for concurrent use from any number of goroutines.
package bvh

import (
	"sort"

	"github.com/gazed/raytracer/scene"
)

// leafSize is the maximum number of primitives a leaf node may hold.
// The spec requires a leaf to terminate at a single primitive; this is
// kept as a named constant rather than a magic 1 so the split loop and
// its termination check read the same way.
const leafSize = 1

// node is one node of the binary tree. Interior nodes reference two
// children by index into the tree's node slice. Leaf nodes instead
// reference a contiguous range [start,end) of the tree's final
// primitive order.
type node struct {
	bounds      scene.AABB
	left, right int // child node indices, -1 if this is a leaf.
	start, end  int // primitive index range, valid only for leaves.
}

func (n node) isLeaf() bool { return n.left < 0 }

// BVH is the built tree. It holds its own copy of the primitives,
// permuted into the order construction chose, plus the leaf index
// range every node covers. Once Build returns, a BVH is read-only and
// may be traversed concurrently by any number of workers.
type BVH struct {
	nodes      []node
	primitives []scene.Primitive // permuted by Build.
}

// Build constructs a BVH over prims. prims itself is left unchanged:
// the BVH keeps its own permuted copy, with each primitive's BVHIndex
// set, which Primitives returns. Build must complete before any call
// to Traverse.
func Build(prims []scene.Primitive) *BVH {
	b := &BVH{}
	if len(prims) == 0 {
		return b
	}
	bounds := make([]scene.AABB, len(prims))
	order := make([]int, len(prims)) // order[i] is an index into prims/bounds.
	for i := range prims {
		order[i] = i
		bounds[i] = prims[i].AABB()
	}
	b.nodes = make([]node, 0, 2*len(prims))
	b.build(order, 0, len(order), bounds) // root node is always index 0.

	b.primitives = make([]scene.Primitive, len(prims))
	for finalIdx, origIdx := range order {
		p := prims[origIdx]
		p.BVHIndex = finalIdx
		b.primitives[finalIdx] = p
	}
	return b
}

// build recursively splits order[lo:hi] in place and returns the index
// of the node it created in b.nodes. Because order is never reallocated
// (only its sub-ranges are sorted), [lo,hi) remains a valid absolute
// position range into the final permutation once recursion completes.
func (b *BVH) build(order []int, lo, hi int, bounds []scene.AABB) int {
	nodeBounds := boundsOf(order[lo:hi], bounds)
	nodeIdx := len(b.nodes)
	b.nodes = append(b.nodes, node{bounds: nodeBounds, left: -1})

	if hi-lo <= leafSize {
		b.nodes[nodeIdx].start = lo
		b.nodes[nodeIdx].end = hi
		return nodeIdx
	}

	span := order[lo:hi]
	axis, splitPos, ok := bestSplit(span, bounds)
	if !ok {
		// bestSplit reports a split for every span of two or more
		// primitives, so this median-split fallback is not reached from
		// here; it keeps construction terminating regardless.
		axis = longestAxis(nodeBounds)
		splitPos = len(span) / 2
	}
	sort.Slice(span, func(i, j int) bool {
		return bounds[span[i]].Centroid().Component(axis) < bounds[span[j]].Centroid().Component(axis)
	})
	if splitPos <= 0 || splitPos >= len(span) {
		splitPos = len(span) / 2
	}
	mid := lo + splitPos

	leftIdx := b.build(order, lo, mid, bounds)
	rightIdx := b.build(order, mid, hi, bounds)
	b.nodes[nodeIdx].left = leftIdx
	b.nodes[nodeIdx].right = rightIdx
	return nodeIdx
}

// bestSplit searches the three axes for the split position minimizing
// SA(L)*|L| + SA(R)*|R|, the surface-area heuristic cost, over the
// given span of order indices. It returns ok=false only when span holds
// fewer than two primitives, since then there is no split position to
// try; coinciding centroids still yield a (cost-tied) split.
func bestSplit(span []int, bounds []scene.AABB) (axis, pos int, ok bool) {
	bestCost := float32(-1)
	for a := 0; a < 3; a++ {
		byAxis := append([]int(nil), span...)
		sort.Slice(byAxis, func(i, j int) bool {
			return bounds[byAxis[i]].Centroid().Component(a) < bounds[byAxis[j]].Centroid().Component(a)
		})
		n := len(byAxis)
		prefix := make([]scene.AABB, n)
		suffix := make([]scene.AABB, n)
		prefix[0] = bounds[byAxis[0]]
		for i := 1; i < n; i++ {
			prefix[i] = prefix[i-1].Union(bounds[byAxis[i]])
		}
		suffix[n-1] = bounds[byAxis[n-1]]
		for i := n - 2; i >= 0; i-- {
			suffix[i] = suffix[i+1].Union(bounds[byAxis[i]])
		}
		for split := 1; split < n; split++ {
			leftCount := split
			rightCount := n - split
			cost := prefix[split-1].SurfaceArea()*float32(leftCount) + suffix[split].SurfaceArea()*float32(rightCount)
			if bestCost < 0 || cost < bestCost {
				bestCost = cost
				axis = a
				pos = split
				ok = true
			}
		}
	}
	return axis, pos, ok
}

func longestAxis(b scene.AABB) int {
	d := b.Max.Sub(b.Min)
	axis := 0
	best := d.X
	if d.Y > best {
		axis, best = 1, d.Y
	}
	if d.Z > best {
		axis = 2
	}
	return axis
}

func boundsOf(order []int, bounds []scene.AABB) scene.AABB {
	box := bounds[order[0]]
	for _, i := range order[1:] {
		box = box.Union(bounds[i])
	}
	return box
}

// Primitives returns the BVH's permuted copy of the scene's primitives,
// with each one's BVHIndex set to its position in this slice.
func (b *BVH) Primitives() []scene.Primitive { return b.primitives }

// Traverse returns the candidate primitives whose AABB the ray
// intersects. The caller is responsible for running each candidate's
// own Intersect and picking the closest positive-t hit: Traverse never
// computes a closest hit itself, only a candidate superset. Traverse is
// safe to call concurrently from any number of goroutines since the
// tree is read-only once Build returns.
func (b *BVH) Traverse(r scene.Ray) []scene.Primitive {
	if len(b.nodes) == 0 {
		return nil
	}
	var candidates []scene.Primitive
	stack := make([]int, 1, 64)
	stack[0] = 0
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := b.nodes[idx]
		if !n.bounds.Hit(r) {
			continue
		}
		if n.isLeaf() {
			candidates = append(candidates, b.primitives[n.start:n.end]...)
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return candidates
}
