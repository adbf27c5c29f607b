package ajbsp

import "testing"

func TestSetPartitionHalvesOverflowingDeltas(t *testing.T) {
	n := &Node{}
	n.SetPartition(0, 0, 100000, 50000)

	if n.DX > 32766 || n.DX < -32766 || n.DY > 32766 || n.DY < -32766 {
		t.Errorf("expected DX/DY to fit 16.16 range, got (%v, %v)", n.DX, n.DY)
	}
	// Halving preserves the direction's slope.
	if n.DX/n.DY != 2 {
		t.Errorf("expected slope to be preserved by halving, got %v", n.DX/n.DY)
	}
}

func TestSetPartitionLeavesSmallDeltasAlone(t *testing.T) {
	n := &Node{}
	n.SetPartition(1, 2, 100, 200)
	if n.DX != 100 || n.DY != 200 {
		t.Errorf("expected (100, 200) unchanged, got (%v, %v)", n.DX, n.DY)
	}
}

func TestBuildNodesIterativeConvexBoxIsSingleSubsector(t *testing.T) {
	lvl, segs := squareSubsectorLevel()
	cfg := DefaultConfig()
	cc := newCancelChecker(nil, cfg.Limits.CheckInterval)
	stats := &Stats{}

	root, subs, nodes, err := buildNodesIterative(lvl, cfg, cc, segs, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !root.IsSub {
		t.Fatal("a convex box should resolve directly to a single subsector")
	}
	if len(nodes) != 0 {
		t.Errorf("expected no internal nodes, got %d", len(nodes))
	}
	if len(subs) != 1 {
		t.Errorf("expected exactly one subsector, got %d", len(subs))
	}
}

func TestBuildNodesIterativeSplitsCrossingSegs(t *testing.T) {
	// The two parallel segs give the horizontal seg a real seg on each
	// side; the crossing pair alone offers no usable partition, since a
	// straddling seg counts toward neither side.
	geom := &LevelGeometry{
		Vertices: []Vertex{
			{X: -50, Y: 0, Overlap: -1}, {X: 50, Y: 0, Overlap: -1},
			{X: 0, Y: -50, Overlap: -1}, {X: 0, Y: 50, Overlap: -1},
			{X: -50, Y: 20, Overlap: -1}, {X: 50, Y: 20, Overlap: -1},
			{X: -50, Y: -20, Overlap: -1}, {X: 50, Y: -20, Overlap: -1},
		},
		Linedefs: []Linedef{{}, {}, {}, {}},
	}
	lvl := newLevel(geom)
	horiz := lvl.newSeg()
	lvl.Segs[horiz].Start, lvl.Segs[horiz].End, lvl.Segs[horiz].Linedef = 0, 1, 0
	lvl.Segs[horiz].SourceLine = 0
	lvl.Segs[horiz].Recompute(lvl)
	vert := lvl.newSeg()
	lvl.Segs[vert].Start, lvl.Segs[vert].End, lvl.Segs[vert].Linedef = 2, 3, 1
	lvl.Segs[vert].SourceLine = 1
	lvl.Segs[vert].Recompute(lvl)
	upper := lvl.newSeg()
	lvl.Segs[upper].Start, lvl.Segs[upper].End, lvl.Segs[upper].Linedef = 4, 5, 2
	lvl.Segs[upper].SourceLine = 2
	lvl.Segs[upper].Recompute(lvl)
	lower := lvl.newSeg()
	lvl.Segs[lower].Start, lvl.Segs[lower].End, lvl.Segs[lower].Linedef = 6, 7, 3
	lvl.Segs[lower].SourceLine = 3
	lvl.Segs[lower].Recompute(lvl)

	cfg := DefaultConfig()
	cc := newCancelChecker(nil, cfg.Limits.CheckInterval)
	stats := &Stats{}

	root, subs, nodes, err := buildNodesIterative(lvl, cfg, cc, []int{horiz, vert, upper, lower}, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.IsSub {
		t.Fatal("the crossing and parallel segs must produce at least one internal node")
	}
	if len(nodes) == 0 {
		t.Error("expected at least one internal node")
	}
	if len(subs) < 2 {
		t.Errorf("expected at least 2 subsectors after the split, got %d", len(subs))
	}
}

func TestComputeBSPHeightLeaf(t *testing.T) {
	root := Child{IsSub: true}
	if h := computeBSPHeight(nil, root); h != 0 {
		t.Errorf("expected height 0 for a leaf, got %d", h)
	}
}

func TestComputeBSPHeightOneLevel(t *testing.T) {
	nodes := []*Node{{Index: 0, Left: Child{IsSub: true}, Right: Child{IsSub: true}}}
	root := Child{IsSub: false, NodeIndex: 0}
	if h := computeBSPHeight(nodes, root); h != 1 {
		t.Errorf("expected height 1, got %d", h)
	}
}
