// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

// QuadTree is a binary-splitting spatial index over a seg list, used to
// cheaply reject segs that cannot possibly lie near a candidate partition
// line during cost evaluation (§4.4). Despite the name it is a binary
// tree, not a literal quadtree: each level splits its box in half along
// whichever axis is currently longer.
// Grounded on bsp_node.cc's QuadTree.
type QuadTree struct {
	X1, Y1, X2, Y2 float64

	// Subs holds the two children; both nil at a leaf.
	Subs [2]*QuadTree

	// List holds segs living directly in this node: populated at
	// leaves, and at internal nodes only for segs straddling the split
	// that could not be pushed into either child.
	List []int // seg indices

	RealNum int
	MiniNum int
}

// buildQuadTree constructs an empty QuadTree shell over the given bounds,
// splitting recursively until both the width and the height of a node
// are at most 320 map units.
func buildQuadTree(x1, y1, x2, y2 float64) *QuadTree {
	q := &QuadTree{X1: x1, Y1: y1, X2: x2, Y2: y2}

	dx := x2 - x1
	dy := y2 - y1
	if dx <= 320 && dy <= 320 {
		return q // leaf
	}

	if dx >= dy {
		mid := x1 + dx/2
		q.Subs[0] = buildQuadTree(x1, y1, mid, y2)
		q.Subs[1] = buildQuadTree(mid, y1, x2, y2)
	} else {
		mid := y1 + dy/2
		q.Subs[0] = buildQuadTree(x1, y1, x2, mid)
		q.Subs[1] = buildQuadTree(x1, mid, x2, y2)
	}
	return q
}

// OnLineSide reports which side of (seg) this quad-tree node's box falls
// on: -1 entirely left, +1 entirely right, 0 if the box straddles the
// line. Axis-aligned partitions take a cheap shortcut; others fall back
// to checking all four corners, expanding the box slightly so segs lying
// exactly on the boundary aren't missed to floating point error.
func (q *QuadTree) OnLineSide(seg *Seg) int {
	const expand = 0.4

	x1, y1 := q.X1-expand, q.Y1-expand
	x2, y2 := q.X2+expand, q.Y2+expand

	if seg.pdy == 0 { // horizontal partition
		if y1 > seg.psy && y2 > seg.psy {
			return sideSign(-seg.pdx)
		}
		if y1 < seg.psy && y2 < seg.psy {
			return sideSign(seg.pdx)
		}
		return 0
	}
	if seg.pdx == 0 { // vertical partition
		if x1 > seg.psx && x2 > seg.psx {
			return sideSign(seg.pdy)
		}
		if x1 < seg.psx && x2 < seg.psx {
			return sideSign(-seg.pdy)
		}
		return 0
	}

	corners := [4][2]float64{{x1, y1}, {x2, y1}, {x1, y2}, {x2, y2}}
	pos, neg := false, false
	for _, c := range corners {
		side := seg.PointOnLineSide(c[0], c[1])
		if side > kEpsilon {
			pos = true
		} else if side < -kEpsilon {
			neg = true
		}
		if pos && neg {
			return 0
		}
	}
	if pos {
		return 1
	}
	return -1
}

func sideSign(v float64) int {
	if v > 0 {
		return 1
	}
	return -1
}

// AddSeg inserts a single seg into the tree, recursing into whichever
// child wholly contains its axis extent and falling back to this node's
// own list when it straddles the split.
func (q *QuadTree) AddSeg(lvl *Level, segIdx int) {
	q.file(lvl, segIdx)
}

// AddList files every seg in segs into the tree, recursing each into
// whichever child wholly contains its axis extent and falling back to
// the node's own list when it straddles a split. Grounded on
// bsp_node.cc's QuadTree::AddList / ConvertToList (run in reverse: here
// we build the tree once and populate it, rather than reading a flat
// list back out).
func (q *QuadTree) AddList(lvl *Level, segs []int) {
	for _, idx := range segs {
		q.file(lvl, idx)
	}
}

// file inserts segIdx into this node, recursing into whichever child
// wholly contains it along the axis this node split on, and otherwise
// keeping it at this node. A seg is filed by full axis-extent
// containment, not by midpoint: a seg that merely has its midpoint
// inside a child but extends past its boundary must stay at the
// straddling level or it could be skipped by a later bulk
// OnLineSide-based subtree check that child never sees it go through.
// Grounded on bsp_node.cc's QuadTree::AddSeg.
func (q *QuadTree) file(lvl *Level, segIdx int) {
	seg := &lvl.Segs[segIdx]
	if seg.Linedef >= 0 {
		q.RealNum++
	} else {
		q.MiniNum++
	}

	if q.Subs[0] != nil {
		xMin, xMax := minF(seg.psx, seg.pex), maxF(seg.psx, seg.pex)
		yMin, yMax := minF(seg.psy, seg.pey), maxF(seg.psy, seg.pey)

		if q.X2-q.X1 >= q.Y2-q.Y1 {
			if xMin > q.Subs[1].X1 {
				q.Subs[1].file(lvl, segIdx)
				return
			} else if xMax < q.Subs[0].X2 {
				q.Subs[0].file(lvl, segIdx)
				return
			}
		} else {
			if yMin > q.Subs[1].Y1 {
				q.Subs[1].file(lvl, segIdx)
				return
			} else if yMax < q.Subs[0].Y2 {
				q.Subs[0].file(lvl, segIdx)
				return
			}
		}
	}

	q.List = append(q.List, segIdx)
}

// ConvertToList flattens the tree back into a single slice of seg
// indices, used once a partition has been chosen and the tree's job is
// done for this recursive step.
func (q *QuadTree) ConvertToList(out []int) []int {
	out = append(out, q.List...)
	for _, sub := range q.Subs {
		if sub != nil {
			out = sub.ConvertToList(out)
		}
	}
	return out
}

// Empty reports whether the node (and everything below it) holds no
// segs at all.
func (q *QuadTree) Empty() bool {
	return q.RealNum == 0 && q.MiniNum == 0
}
