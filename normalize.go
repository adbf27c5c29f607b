// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import "sort"

// kVertexOverlapEpsilon is the tolerance used to decide two vertices
// occupy the same point in space. Matches bsp_misc.cc's cmpVertex
// tolerance of 0.0001.
const kVertexOverlapEpsilon = 0.0001

// DetectOverlappingVertices marks every vertex that coincides (within
// kVertexOverlapEpsilon) with an earlier one, and rewrites every
// linedef's Start/End through the resulting overlap chains so downstream
// stages only ever see one canonical vertex per location. Grounded on
// bsp_misc.cc's DetectOverlappingVertices.
func DetectOverlappingVertices(geom *LevelGeometry) {
	order := make([]int, len(geom.Vertices))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := geom.Vertices[order[i]], geom.Vertices[order[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	for i := 1; i < len(order); i++ {
		a := &geom.Vertices[order[i-1]]
		b := &geom.Vertices[order[i]]
		if !floatEqualsTol(a.X, b.X, kVertexOverlapEpsilon) || !floatEqualsTol(a.Y, b.Y, kVertexOverlapEpsilon) {
			continue
		}
		canon := order[i-1]
		if a.Overlap >= 0 {
			canon = a.Overlap
		}
		b.Overlap = canon
	}

	resolve := func(idx int) int {
		for geom.Vertices[idx].Overlap >= 0 {
			idx = geom.Vertices[idx].Overlap
		}
		return idx
	}
	for i := range geom.Linedefs {
		geom.Linedefs[i].Start = resolve(geom.Linedefs[i].Start)
		geom.Linedefs[i].End = resolve(geom.Linedefs[i].End)
		if geom.Linedefs[i].Start == geom.Linedefs[i].End {
			geom.Linedefs[i].ZeroLength = true
		}
	}
}

func floatEqualsTol(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < tol
}

// DetectOverlappingLines marks every linedef that shares both endpoints
// (in either direction) with an earlier one, so CreateSegs skips the
// duplicate. Grounded on bsp_misc.cc's DetectOverlappingLines.
func DetectOverlappingLines(geom *LevelGeometry) {
	order := make([]int, len(geom.Linedefs))
	for i := range order {
		order[i] = i
	}
	lowVertex := func(ld Linedef) int {
		if ld.Start < ld.End {
			return ld.Start
		}
		return ld.End
	}
	highVertex := func(ld Linedef) int {
		if ld.Start < ld.End {
			return ld.End
		}
		return ld.Start
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := geom.Linedefs[order[i]], geom.Linedefs[order[j]]
		if lowVertex(a) != lowVertex(b) {
			return lowVertex(a) < lowVertex(b)
		}
		if highVertex(a) != highVertex(b) {
			return highVertex(a) < highVertex(b)
		}
		return order[i] < order[j]
	})

	sameLine := func(a, b Linedef) bool {
		return (a.Start == b.Start && a.End == b.End) || (a.Start == b.End && a.End == b.Start)
	}

	for i := 1; i < len(order); i++ {
		a := &geom.Linedefs[order[i-1]]
		b := &geom.Linedefs[order[i]]
		if !sameLine(*a, *b) {
			continue
		}
		canon := order[i-1]
		if a.Overlap >= 0 {
			canon = a.Overlap
		}
		b.Overlap = canon
	}
}

// DetectSelfReferencingLines flags two-sided linedefs whose front and
// back sidedefs face the same sector: these contribute no real space
// division and the original excludes them from seg creation entirely
// (a common "see-through fence" or lighting trick in vanilla maps).
func DetectSelfReferencingLines(geom *LevelGeometry) {
	for i := range geom.Linedefs {
		ld := &geom.Linedefs[i]
		if !ld.TwoSided || ld.Right < 0 || ld.Left < 0 {
			continue
		}
		if geom.Sidedefs[ld.Right].Sector == geom.Sidedefs[ld.Left].Sector {
			ld.SelfReferencing = true
		}
	}
}
