// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import "sync"

// Level is the working arena for one Build call: the growable vertex and
// seg tables, plus a reference to the decoded input geometry. Segs and
// vertices are referenced by index into these slices rather than by
// pointer (Design Note 9), so splitting a seg or adding a vertex never
// invalidates a reference held elsewhere in the tree being built.
type Level struct {
	geom     *LevelGeometry
	Vertices []Vertex
	Segs     []Seg

	numOldVert int // vertex count as decoded, before any splits
}

// newLevel seeds a Level's arena from decoded input geometry. Vertices
// are copied in (not shared) because splitting appends new ones.
func newLevel(geom *LevelGeometry) *Level {
	lvl := &Level{
		geom:     geom,
		Vertices: append([]Vertex(nil), geom.Vertices...),
	}
	lvl.numOldVert = len(lvl.Vertices)
	return lvl
}

func (lvl *Level) newVertex(x, y float64) int {
	idx := len(lvl.Vertices)
	lvl.Vertices = append(lvl.Vertices, Vertex{X: x, Y: y, Index: idx, Overlap: -1})
	return idx
}

func (lvl *Level) newSeg() int {
	idx := len(lvl.Segs)
	lvl.Segs = append(lvl.Segs, Seg{Index: idx, Partner: -1, Linedef: -1, quad: -1})
	return idx
}

// vertexIndexXNOD maps a vertex's arena index to the XGL3 wire index
// space. Grounded on bsp_level.cc's VertexIndex_XNOD, which numbers
// original (decoded) vertices first and vertices synthesized by
// splitting after them; since newVertex only ever appends, the arena
// index already matches that ordering and no remapping is needed.
func (lvl *Level) vertexIndexXNOD(idx int) uint32 {
	return uint32(idx)
}

// ===================== Intersection scratch pool =====================
//
// Reuses the []Intersection slices built while dividing segs along a
// partition line. Every recursive step builds one, hands it to
// AddMinisegs, then discards it — a short-lived, uniformly-shaped
// allocation that is exactly what sync.Pool is for. Adapted from the
// teacher's GetIntSlice/PutIntSlice pair (memory_pools.go in the
// original tree), generalized from []int to []Intersection and
// specialized to this package's single-threaded, one-arena-per-build
// usage: unlike the teacher's pool (shared across concurrent page
// extractions), this one only ever has one slice checked out at a time,
// so it carries no extra synchronization beyond what sync.Pool already
// gives it for free.

var intersectionScratchPool = sync.Pool{
	New: func() interface{} {
		s := make([]Intersection, 0, 32)
		return &s
	},
}

// getIntersectionScratch returns an empty, possibly-reused Intersection
// slice.
func getIntersectionScratch() []Intersection {
	sp := intersectionScratchPool.Get().(*[]Intersection)
	return (*sp)[:0]
}

// putIntersectionScratch returns s to the pool once its node is finished
// with it. Slices that have grown unusually large are dropped instead of
// pooled, so one pathological level doesn't inflate every later build.
func putIntersectionScratch(s []Intersection) {
	if cap(s) > 4096 {
		return
	}
	s = s[:0]
	intersectionScratchPool.Put(&s)
}
