// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

// Child references either a child Node or a terminal Subsector. Exactly
// one of NodeIndex/SubIndex is valid, distinguished by IsSub.
type Child struct {
	IsSub     bool
	NodeIndex int
	SubIndex  int
	Box       BoundingBox
}

// Node is one branch of the finished BSP tree: a partition line plus its
// two children. X/Y/DX/DY describe the partition in the same units as
// map coordinates; SetPartition halves them if they would overflow the
// XGL3 wire format's 16.16 fixed-point range.
type Node struct {
	X, Y, DX, DY float64
	Right, Left  Child
	Index        int
	Depth        int
}

// SetPartition stores the partition line, halving DX/DY when they would
// not survive the round trip through 16.16 fixed point. Grounded on
// bsp_node.cc's Node::SetPartition.
func (n *Node) SetPartition(x, y, dx, dy float64) {
	n.X, n.Y = x, y
	for dx > 32766 || dx < -32766 || dy > 32766 || dy < -32766 {
		dx /= 2
		dy /= 2
	}
	n.DX, n.DY = dx, dy
}

// buildWork is one pending unit of the iterative BSP build: a group of
// segs that still needs a partition (or is ready to become a leaf), plus
// where its result should be written back into the parent.
type buildWork struct {
	segs  []int
	depth int

	// back-reference: nil at the root, otherwise the slot in the parent
	// Node that this work's result belongs in.
	parent   *Node
	intoSide int // 0 = Right, 1 = Left
}

// buildResult is what one buildWork step produces once resolved.
type buildResult struct {
	child Child
}

// buildNodesIterative drives the recursive partition/divide/recurse
// algorithm (§4.8) as an explicit worklist rather than native Go
// recursion, per Design Note 9's observation that pathological levels
// can reach depths of 30-40: a worklist keeps the native stack flat and
// gives a single place to poll cancellation and accumulate stats.
// Grounded on bsp_node.cc's BuildNodes.
func buildNodesIterative(lvl *Level, cfg Config, cc *cancelChecker, segs []int, stats *Stats) (Child, []*Subsector, []*Node, error) {
	var subs []*Subsector
	var nodes []*Node

	root := &buildWork{segs: segs}
	stack := []*buildWork{root}

	var rootChild Child
	haveRoot := false

	for len(stack) > 0 {
		if cc.Check() {
			return Child{}, nil, nil, ErrBuildCancelled
		}

		work := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tree := buildQuadTree(boxOf(FindLimits(lvl, work.segs)))
		tree.AddList(lvl, work.segs)

		partIdx, ok := pickNode(lvl, cfg, tree, work.segs)

		var result Child
		if !ok {
			sub, err := finalizeSubsector(lvl, work.segs, stats)
			if err != nil {
				return Child{}, nil, nil, err
			}
			sub.Index = len(subs)
			subs = append(subs, sub)
			result = Child{IsSub: true, SubIndex: sub.Index}
		} else {
			part := lvl.Segs[partIdx]
			left, right, cuts := separateSegs(lvl, work.segs, &part)
			left, right = addMinisegs(lvl, cuts, &part, left, right, stats)

			if len(left) == 0 || len(right) == 0 {
				return Child{}, nil, nil, ErrPartitionYieldedEmptySide
			}

			node := &Node{Index: len(nodes), Depth: work.depth}
			node.SetPartition(part.psx, part.psy, part.pdx, part.pdy)
			nodes = append(nodes, node)
			result = Child{IsSub: false, NodeIndex: node.Index}

			stack = append(stack,
				&buildWork{segs: right, depth: work.depth + 1, parent: node, intoSide: 0},
				&buildWork{segs: left, depth: work.depth + 1, parent: node, intoSide: 1},
			)
		}

		if work.parent == nil {
			rootChild = result
			haveRoot = true
			continue
		}
		if work.intoSide == 0 {
			work.parent.Right = result
		} else {
			work.parent.Left = result
		}
	}

	if !haveRoot {
		return Child{}, nil, nil, ErrDegenerateSubsector
	}

	return rootChild, subs, nodes, nil
}

func boxOf(b BoundingBox) (float64, float64, float64, float64) {
	return b.X1, b.Y1, b.X2, b.Y2
}

// computeBSPHeight returns the depth of the tree rooted at child,
// counting subsectors as leaves at depth 0. Grounded on bsp_node.cc's
// ComputeBSPHeight.
func computeBSPHeight(nodes []*Node, child Child) int {
	if child.IsSub {
		return 0
	}
	n := nodes[child.NodeIndex]
	l := computeBSPHeight(nodes, n.Left)
	r := computeBSPHeight(nodes, n.Right)
	if l > r {
		return l + 1
	}
	return r + 1
}
