// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import "math"

// kSegIsGarbage is the marker value for a collected seg slot in the
// arena; no code in this package sets or reads it.
const kSegIsGarbage = -1

// Seg is one directed wall fragment: either a piece of a real linedef's
// sidedef, or a "miniseg" inserted purely to seal a BSP leaf. Segs are
// referenced by index into Level.Segs rather than by pointer, so that
// partner/list relationships survive arena growth (Design Note 9).
type Seg struct {
	Start, End int // vertex indices
	Linedef    int // -1 for minisegs
	Side       int // 0 = right/front, 1 = left/back
	Partner    int // index of the complementary seg, -1 if none
	Index      int

	IsDegenerate bool

	// Precomputed partition-relative quantities, refreshed by Recompute
	// whenever Start/End change (e.g. after a split).
	psx, psy, pex, pey float64
	pdx, pdy           float64
	pLength            float64
	pPara, pPerp       float64

	// SourceLine is the original linedef a split seg was cut from, kept
	// for precious/two-sided bookkeeping even once Linedef has changed.
	SourceLine int

	CmpAngle float64

	quad int // index of the owning quad-tree leaf, -1 if unassigned
}

// Recompute refreshes the cached partition-relative fields after Start or
// End changes. Grounded on bsp_node.cc's Seg::Recompute.
func (s *Seg) Recompute(lvl *Level) {
	a := lvl.Vertices[s.Start]
	b := lvl.Vertices[s.End]
	s.psx, s.psy = a.X, a.Y
	s.pex, s.pey = b.X, b.Y
	s.pdx = s.pex - s.psx
	s.pdy = s.pey - s.psy
	s.pLength = math.Hypot(s.pdx, s.pdy)
	if s.pLength < kEpsilon {
		s.IsDegenerate = true
	}
}

// PointOnLineSide returns a positive value if (x, y) lies to the right of
// this seg's direction, negative if to the left, and ~0 if on the line.
func (s *Seg) PointOnLineSide(x, y float64) float64 {
	return (x-s.psx)*s.pdy - (y-s.psy)*s.pdx
}

// ParallelDistance projects (x, y) onto the seg's direction vector,
// returning the distance along it from Start.
func (s *Seg) ParallelDistance(x, y float64) float64 {
	if s.pLength < kEpsilon {
		return 0
	}
	return ((x-s.psx)*s.pdx + (y-s.psy)*s.pdy) / s.pLength
}

// PerpendicularDistance returns the signed distance of (x, y) from the
// line containing this seg.
func (s *Seg) PerpendicularDistance(x, y float64) float64 {
	if s.pLength < kEpsilon {
		return 0
	}
	return s.PointOnLineSide(x, y) / s.pLength
}

// CreateSegs builds one or two Segs (front, and back if two-sided) for
// every non-overlapping, non-zero-length, non-self-referencing Linedef.
// Grounded on bsp_node.cc's CreateOneSeg / CreateSegs.
func CreateSegs(lvl *Level, geom *LevelGeometry) *Stats {
	stats := &Stats{}

	for i := range geom.Linedefs {
		ld := &geom.Linedefs[i]
		if ld.Overlap >= 0 || ld.ZeroLength || ld.SelfReferencing {
			continue
		}

		if ld.Right < 0 {
			stats.Warnings = append(stats.Warnings, "linedef has no right sidedef")
			continue
		}

		rightIdx := lvl.newSeg()
		right := &lvl.Segs[rightIdx]
		*right = Seg{
			Start: ld.Start, End: ld.End,
			Linedef: i, Side: 0, Partner: -1,
			Index: rightIdx, SourceLine: i,
		}
		right.Recompute(lvl)

		if ld.TwoSided {
			if ld.Left < 0 {
				stats.Warnings = append(stats.Warnings, "two-sided but no left sidedef")
				ld.TwoSided = false
			} else {
				leftIdx := lvl.newSeg()
				left := &lvl.Segs[leftIdx]
				*left = Seg{
					Start: ld.End, End: ld.Start,
					Linedef: i, Side: 1, Partner: rightIdx,
					Index: leftIdx, SourceLine: i,
				}
				left.Recompute(lvl)
				lvl.Segs[rightIdx].Partner = leftIdx
			}
		}
	}

	stats.InitialSegs = len(lvl.Segs)
	return stats
}

// SplitSeg cuts seg at the point (x, y), which lies on it, creating a
// new vertex there and a new seg covering [split, End);
// the original seg is shortened to [Start, split). If the seg has a
// partner, the partner is split symmetrically so the pair continues to
// mirror each other. Returns the new seg's index. Grounded on
// bsp_node.cc's SplitSeg / NewVertexFromSplitSeg.
func (lvl *Level) SplitSeg(segIdx int, x, y float64) int {
	newVertIdx := lvl.newVertexFromSplit(segIdx, x, y)

	// newSeg may grow the arena, so pointers are only taken after it.
	newSegIdx := lvl.newSeg()
	seg := &lvl.Segs[segIdx]
	newSeg := &lvl.Segs[newSegIdx]
	*newSeg = *seg
	newSeg.Index = newSegIdx
	newSeg.Start = newVertIdx
	newSeg.End = seg.End
	newSeg.Recompute(lvl)

	seg.End = newVertIdx
	seg.Recompute(lvl)

	if seg.Partner >= 0 {
		partnerIdx := seg.Partner

		newPartnerIdx := lvl.newSeg()
		partner := &lvl.Segs[partnerIdx]
		newSeg = &lvl.Segs[newSegIdx]
		newPartner := &lvl.Segs[newPartnerIdx]
		*newPartner = *partner
		newPartner.Index = newPartnerIdx
		newPartner.End = newVertIdx
		newPartner.Start = partner.Start
		newPartner.Recompute(lvl)

		partner.Start = newVertIdx
		partner.Recompute(lvl)

		newSeg.Partner = newPartnerIdx
		newPartner.Partner = newSegIdx
	}

	return newSegIdx
}

// newVertexFromSplit creates the vertex introduced by splitting segIdx at
// (x, y), wiring wall-tips for it when the seg carries a real linedef.
func (lvl *Level) newVertexFromSplit(segIdx int, x, y float64) int {
	idx := lvl.newVertex(x, y)
	v := &lvl.Vertices[idx]
	v.IsNew = true

	seg := &lvl.Segs[segIdx]
	if seg.Linedef < 0 {
		return idx
	}

	ld := &lvl.geom.Linedefs[seg.SourceLine]
	angle := computeAngle(seg.pdx, seg.pdy)
	backAngle := computeAngle(-seg.pdx, -seg.pdy)
	openLeft := sidedefHasSector(lvl.geom, ld.Left)
	openRight := sidedefHasSector(lvl.geom, ld.Right)
	v.AddWallTip(angle, openLeft, openRight)
	v.AddWallTip(backAngle, openRight, openLeft)
	return idx
}
