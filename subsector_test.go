package ajbsp

import "testing"

// squareSubsectorLevel builds a level with four segs forming a closed
// square loop, each seg's End meeting the next seg's Start, running
// clockwise so the square's interior lies on every seg's right side.
func squareSubsectorLevel() (*Level, []int) {
	geom := &LevelGeometry{
		Vertices: []Vertex{
			{X: 0, Y: 0, Overlap: -1}, {X: 10, Y: 0, Overlap: -1},
			{X: 10, Y: 10, Overlap: -1}, {X: 0, Y: 10, Overlap: -1},
		},
		Linedefs: []Linedef{{}, {}, {}, {}},
	}
	lvl := newLevel(geom)
	edges := [][2]int{{0, 3}, {3, 2}, {2, 1}, {1, 0}}
	segs := make([]int, len(edges))
	for i, e := range edges {
		idx := lvl.newSeg()
		lvl.Segs[idx].Start, lvl.Segs[idx].End, lvl.Segs[idx].Linedef = e[0], e[1], i
		lvl.Segs[idx].SourceLine = i
		lvl.Segs[idx].Recompute(lvl)
		segs[i] = idx
	}
	return lvl, segs
}

func TestFinalizeSubsectorClosedLoop(t *testing.T) {
	lvl, segs := squareSubsectorLevel()
	stats := &Stats{}

	sub, err := finalizeSubsector(lvl, segs, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sub.Segs) != 4 {
		t.Fatalf("expected 4 segs, got %d", len(sub.Segs))
	}
	if len(stats.MinorIssues) != 0 {
		t.Errorf("a properly closed square should report no minor issues, got %v", stats.MinorIssues)
	}
	if sub.MidX != 5 || sub.MidY != 5 {
		t.Errorf("expected midpoint (5, 5), got (%v, %v)", sub.MidX, sub.MidY)
	}
}

func TestFinalizeSubsectorEmptyIsError(t *testing.T) {
	lvl, _ := squareSubsectorLevel()
	_, err := finalizeSubsector(lvl, nil, &Stats{})
	if err == nil {
		t.Fatal("expected an error for an empty seg group")
	}
}

func TestFinalizeSubsectorFlagsOpenLoop(t *testing.T) {
	lvl, segs := squareSubsectorLevel()
	stats := &Stats{}

	// Drop the closing edge so the loop no longer meets up.
	_, err := finalizeSubsector(lvl, segs[:3], stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats.MinorIssues) == 0 {
		t.Error("expected an open loop to be flagged as a minor issue")
	}
}

func TestHasRealSegFalseForAllMinisegs(t *testing.T) {
	lvl, segs := squareSubsectorLevel()
	for _, idx := range segs {
		lvl.Segs[idx].Linedef = -1
	}
	sub := &Subsector{Segs: segs}
	if sub.hasRealSeg(lvl) {
		t.Error("a subsector made entirely of minisegs should report no real seg")
	}
}

func TestRenumberSegsDedupsAndOrders(t *testing.T) {
	subA := &Subsector{Segs: []int{3, 1}}
	subB := &Subsector{Segs: []int{1, 2}}

	order := renumberSegs([]*Subsector{subA, subB})
	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("expected %v, got %v", want, order)
			break
		}
	}
}
