// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import "math"

// RepairRoundingCollapses walks every seg reachable from subsectors and
// synthesizes a compensating vertex wherever rounding both endpoints to
// whole map units would collapse the seg to a single point (§3's
// invariant: "if rounding-to-integer during emission would collapse
// it, a compensating vertex is synthesized and its partner, if any, is
// re-linked"). Grounded on bsp_misc.cc's NewVertexDegenerate, which the
// original calls only once prior rounding has reduced a seg to zero
// length on the integer map-unit grid (distinct from the finer 16.16
// fixed point the XGL3 wire format itself stores coordinates in).
//
// cfg.LegacyDegenerateVertexY resolves Open Question 1: the original
// assigns the repaired vertex's Y from the start vertex's X (a likely
// typo for Y). That behavior is preserved when the flag is set; the
// default path uses the corrected assignment.
func RepairRoundingCollapses(lvl *Level, order []int, cfg Config, stats *Stats) {
	for _, idx := range order {
		repairOneSeg(lvl, idx, cfg, stats)
	}
}

func repairOneSeg(lvl *Level, segIdx int, cfg Config, stats *Stats) {
	seg := &lvl.Segs[segIdx]

	start := lvl.Vertices[seg.Start]
	end := lvl.Vertices[seg.End]
	if roundToInteger(start.X) != roundToInteger(end.X) || roundToInteger(start.Y) != roundToInteger(end.Y) {
		return
	}

	newVertIdx := newVertexDegenerate(lvl, seg.Start, seg.End, cfg.LegacyDegenerateVertexY)
	if newVertIdx < 0 {
		stats.MinorIssues = append(stats.MinorIssues, "degenerate seg could not be repaired")
		return
	}

	seg.End = newVertIdx
	seg.Recompute(lvl)

	if seg.Partner >= 0 {
		partner := &lvl.Segs[seg.Partner]
		partner.Start = newVertIdx
		partner.Recompute(lvl)
	}
}

// roundToInteger rounds v to the nearest whole map unit, ties away from
// zero, matching the original's RoundToInteger.
func roundToInteger(v float64) int64 {
	if v >= 0 {
		return int64(v + 0.5)
	}
	return -int64(-v + 0.5)
}

// newVertexDegenerate synthesizes a vertex near start, offset along the
// start->end direction just far enough that its rounded-to-integer
// coordinates differ from start's. Returns -1 if start and end already
// coincide (no direction to walk). Grounded on bsp_misc.cc's
// NewVertexDegenerate.
func newVertexDegenerate(lvl *Level, startIdx, endIdx int, legacyY bool) int {
	start := lvl.Vertices[startIdx]
	end := lvl.Vertices[endIdx]

	dx := end.X - start.X
	dy := end.Y - start.Y
	dlen := math.Hypot(dx, dy)
	if dlen < kEpsilon {
		return -1
	}
	dx /= dlen
	dy /= dlen

	x, y := start.X, start.Y
	if legacyY {
		y = start.X
	}

	startIX, startIY := roundToInteger(start.X), roundToInteger(start.Y)
	for roundToInteger(x) == startIX && roundToInteger(y) == startIY {
		x += dx
		y += dy
	}

	idx := lvl.newVertex(x, y)
	lvl.Vertices[idx].IsNew = true
	return idx
}
