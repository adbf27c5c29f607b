package ajbsp

import "testing"

func TestBuildQuadTreeSmallBoxIsLeaf(t *testing.T) {
	q := buildQuadTree(0, 0, 100, 100)
	if q.Subs[0] != nil {
		t.Error("a box under the split threshold should be a single leaf")
	}
}

func TestBuildQuadTreeSplitsLargeBox(t *testing.T) {
	q := buildQuadTree(0, 0, 1000, 100)
	if q.Subs[0] == nil || q.Subs[1] == nil {
		t.Fatal("a box over the split threshold should have two children")
	}
	if q.Subs[0].X2 != q.Subs[1].X1 {
		t.Error("children should share a boundary at the midpoint")
	}
}

func TestQuadTreeAddListCountsRealAndMini(t *testing.T) {
	lvl := twoVertLevel(0, 0, 10, 0)
	idx := lvl.newSeg()
	lvl.Segs[idx].Start, lvl.Segs[idx].End, lvl.Segs[idx].Linedef = 0, 1, 0
	lvl.Segs[idx].Recompute(lvl)

	miniIdx := lvl.newSeg()
	lvl.Segs[miniIdx].Start, lvl.Segs[miniIdx].End, lvl.Segs[miniIdx].Linedef = 0, 1, -1
	lvl.Segs[miniIdx].Recompute(lvl)

	q := buildQuadTree(-5, -5, 15, 5)
	q.AddList(lvl, []int{idx, miniIdx})

	if q.RealNum != 1 || q.MiniNum != 1 {
		t.Errorf("expected 1 real and 1 mini seg filed, got %d/%d", q.RealNum, q.MiniNum)
	}
	if q.Empty() {
		t.Error("a tree holding segs must not report Empty")
	}
}

func TestQuadTreeConvertToListRoundTrips(t *testing.T) {
	lvl := twoVertLevel(0, 0, 400, 0)
	a := lvl.newSeg()
	lvl.Segs[a].Start, lvl.Segs[a].End, lvl.Segs[a].Linedef = 0, 1, 0
	lvl.Segs[a].Recompute(lvl)

	q := buildQuadTree(-5, -5, 405, 5)
	q.AddList(lvl, []int{a})

	out := q.ConvertToList(nil)
	if len(out) != 1 || out[0] != a {
		t.Errorf("expected [%d], got %v", a, out)
	}
}

func TestOnLineSideAxisAlignedShortcut(t *testing.T) {
	lvl := twoVertLevel(0, 0, 10, 0)
	idx := lvl.newSeg()
	lvl.Segs[idx].Start, lvl.Segs[idx].End, lvl.Segs[idx].Linedef = 0, 1, 0
	lvl.Segs[idx].Recompute(lvl)
	part := &lvl.Segs[idx]

	above := &QuadTree{X1: 0, Y1: 10, X2: 10, Y2: 20}
	below := &QuadTree{X1: 0, Y1: -20, X2: 10, Y2: -10}
	straddle := &QuadTree{X1: 0, Y1: -5, X2: 10, Y2: 5}

	if above.OnLineSide(part) == 0 {
		t.Error("a box entirely above a horizontal partition should not straddle")
	}
	if below.OnLineSide(part) == 0 {
		t.Error("a box entirely below a horizontal partition should not straddle")
	}
	if straddle.OnLineSide(part) != 0 {
		t.Error("a box crossing the partition should straddle (return 0)")
	}
}
