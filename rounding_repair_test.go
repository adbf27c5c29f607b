// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import "testing"

func TestRoundToInteger(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{-0.5, -1},
		{-0.49, 0},
		{3.7, 4},
	}
	for _, tt := range tests {
		if got := roundToInteger(tt.in); got != tt.want {
			t.Errorf("roundToInteger(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewVertexDegenerateWalksUntilDistinct(t *testing.T) {
	lvl := &Level{Vertices: []Vertex{
		{X: 10.1, Y: 10.1, Overlap: -1},
		{X: 10.2, Y: 10.2, Overlap: -1}, // rounds to the same integer point
	}}

	idx := newVertexDegenerate(lvl, 0, 1, false)
	if idx < 0 {
		t.Fatal("expected a synthesized vertex")
	}
	v := lvl.Vertices[idx]
	if roundToInteger(v.X) == roundToInteger(lvl.Vertices[0].X) && roundToInteger(v.Y) == roundToInteger(lvl.Vertices[0].Y) {
		t.Errorf("repaired vertex (%v,%v) still collapses onto start", v.X, v.Y)
	}
	if !v.IsNew {
		t.Error("repaired vertex should be marked IsNew")
	}
}

func TestNewVertexDegenerateLegacyBugAssignsYFromX(t *testing.T) {
	lvl := &Level{Vertices: []Vertex{
		{X: 5.0, Y: 5.4, Overlap: -1},
		{X: 5.1, Y: 5.4, Overlap: -1},
	}}

	idx := newVertexDegenerate(lvl, 0, 1, true)
	if idx < 0 {
		t.Fatal("expected a synthesized vertex")
	}
	// With the legacy bug, the walk starts from y = start.X (5.0) rather
	// than start.Y (5.4), so the resulting vertex must not equal what
	// the corrected path would have produced.
	fixed := newVertexDegenerate(lvl, 0, 1, false)
	if lvl.Vertices[idx].Y == lvl.Vertices[fixed].Y {
		t.Error("expected the legacy path to diverge from the corrected path")
	}
}

func TestNewVertexDegenerateCoincidentReturnsInvalid(t *testing.T) {
	lvl := &Level{Vertices: []Vertex{
		{X: 1, Y: 1, Overlap: -1},
		{X: 1, Y: 1, Overlap: -1},
	}}
	if idx := newVertexDegenerate(lvl, 0, 1, false); idx >= 0 {
		t.Errorf("expected -1 for coincident start/end, got %d", idx)
	}
}

func TestRepairOneSegRelinksPartner(t *testing.T) {
	lvl := newLevel(&LevelGeometry{
		Vertices: []Vertex{
			{X: 0.2, Y: 0.2, Overlap: -1},
			{X: 0.3, Y: 0.3, Overlap: -1}, // collapses onto vertex 0 at integer resolution
		},
	})

	right := lvl.newSeg()
	lvl.Segs[right] = Seg{Start: 0, End: 1, Linedef: 0, Side: 0, Partner: -1, Index: right}
	lvl.Segs[right].Recompute(lvl)

	left := lvl.newSeg()
	lvl.Segs[left] = Seg{Start: 1, End: 0, Linedef: 0, Side: 1, Partner: right, Index: left}
	lvl.Segs[left].Recompute(lvl)
	lvl.Segs[right].Partner = left

	stats := &Stats{}
	repairOneSeg(lvl, right, DefaultConfig(), stats)

	r := lvl.Segs[right]
	l := lvl.Segs[left]
	if r.End == 1 {
		t.Fatal("expected seg's End to be repointed at the synthesized vertex")
	}
	if l.Start != r.End {
		t.Errorf("partner invariant broken: partner.Start=%d, seg.End=%d", l.Start, r.End)
	}
}
