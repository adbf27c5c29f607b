// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import "math"

// kSegFastModeThreshold is the seg count at or above which the picker skips the
// full cost function and grabs the first axis-aligned candidate it finds,
// trading optimality for tractable build times on huge leaves.
const kSegFastModeThreshold = 200

// evalInfo accumulates the running cost and counts while evaluating one
// candidate partition line against every seg in a group.
type evalInfo struct {
	cost                       float64
	realLeft, realRight        int
	miniLeft, miniRight        int
	aborted                    bool
}

func (e *evalInfo) bumpLeft(seg *Seg) {
	if seg.Linedef >= 0 {
		e.realLeft++
	} else {
		e.miniLeft++
	}
}

func (e *evalInfo) bumpRight(seg *Seg) {
	if seg.Linedef >= 0 {
		e.realRight++
	} else {
		e.miniRight++
	}
}

// evalPartition scores partition candidate against every seg reachable
// from the quad tree, returning (cost, ok). ok is false if the partition
// would leave either side without a real seg, or if splitCost ever pushes the
// running cost past bestCost (an early abort, since the caller only
// cares about candidates that can still win).
func evalPartition(lvl *Level, cfg Config, tree *QuadTree, candidate *Seg, bestCost float64) (float64, bool) {
	info := &evalInfo{}
	if !evalQuadTree(lvl, cfg, tree, candidate, info, bestCost) {
		return 0, false
	}

	if info.realLeft == 0 || info.realRight == 0 {
		return 0, false
	}

	// Balance penalty: favor partitions that split the seg count evenly.
	info.cost += 100 * float64(absInt(info.realLeft-info.realRight))
	info.cost += 50 * float64(absInt(info.miniLeft-info.miniRight))

	if candidate.pdx != 0 && candidate.pdy != 0 {
		info.cost += 25 // penalize diagonal partitions slightly
	}

	return info.cost, true
}

// evalQuadTree folds every seg under tree into info. Grounded on
// bsp_node.cc's EvalPartitionWorker: node.OnLineSide(candidate) is
// consulted first, and when it proves the whole subtree lies wholly to
// one side, that subtree's real/mini counts are bulk-added and it is
// never walked seg by seg; only a node the partition actually crosses
// is evaluated seg by seg and recursed into.
func evalQuadTree(lvl *Level, cfg Config, tree *QuadTree, candidate *Seg, info *evalInfo, bestCost float64) bool {
	switch tree.OnLineSide(candidate) {
	case -1:
		info.realLeft += tree.RealNum
		info.miniLeft += tree.MiniNum
		return true
	case 1:
		info.realRight += tree.RealNum
		info.miniRight += tree.MiniNum
		return true
	}

	for _, idx := range tree.List {
		if idx == candidate.Index {
			continue
		}
		seg := &lvl.Segs[idx]
		if !evalOneSeg(lvl, info, cfg, candidate, seg, bestCost) {
			return false
		}
	}

	for _, sub := range tree.Subs {
		if sub == nil || sub.Empty() {
			continue
		}
		if info.cost > bestCost {
			return false
		}
		if !evalQuadTree(lvl, cfg, sub, candidate, info, bestCost) {
			return false
		}
	}
	return true
}

// evalOneSeg folds one seg's contribution into info, classifying it as
// collinear, a vertex-on-partition case, fully left, fully right, or a
// straddling split against the candidate partition. Grounded on
// bsp_node.cc's EvalPartitionWorker.
func evalOneSeg(lvl *Level, info *evalInfo, cfg Config, candidate, seg *Seg, bestCost float64) bool {
	aSide := candidate.PerpendicularDistance(seg.psx, seg.psy)
	bSide := candidate.PerpendicularDistance(seg.pex, seg.pey)

	if seg.Linedef >= 0 && seg.SourceLine == candidate.SourceLine {
		aSide, bSide = 0, 0
	}

	const onEpsilon = kEpsilon
	splitCost := float64(cfg.SplitCost) / kSplitCostDefault
	isPrecious := seg.Linedef >= 0 && lvl.geom.Linedefs[seg.SourceLine].IsPrecious

	switch {
	case math.Abs(aSide) <= onEpsilon && math.Abs(bSide) <= onEpsilon:
		// Collinear with the partition: goes with whichever side its
		// own direction agrees with, never splits.
		dot := seg.pdx*candidate.pdx + seg.pdy*candidate.pdy
		if dot < 0 {
			info.bumpLeft(seg)
		} else {
			info.bumpRight(seg)
		}

	default:
		// -AJA- the partition passes through exactly one of this seg's
		// vertices. Normally harmless, but a precious linedef can still
		// have its sector bisected this way.
		if math.Abs(aSide) <= onEpsilon || math.Abs(bSide) <= onEpsilon {
			if isPrecious {
				info.cost += 40 * 100 * splitCost
			}
		}

		switch {
		case aSide > -onEpsilon && bSide > -onEpsilon:
			info.bumpRight(seg)

			clearMiss := (aSide >= kIffySegLength && bSide >= kIffySegLength) ||
				(aSide <= onEpsilon && bSide >= kIffySegLength) ||
				(bSide <= onEpsilon && aSide >= kIffySegLength)
			if !clearMiss {
				var qnty float64
				if aSide <= onEpsilon || bSide <= onEpsilon {
					qnty = kIffySegLength / math.Max(aSide, bSide)
				} else {
					qnty = kIffySegLength / math.Min(aSide, bSide)
				}
				info.cost += 70 * splitCost * (qnty*qnty - 1)
			}

		case aSide < onEpsilon && bSide < onEpsilon:
			info.bumpLeft(seg)

			clearMiss := (aSide <= -kIffySegLength && bSide <= -kIffySegLength) ||
				(aSide >= -onEpsilon && bSide <= -kIffySegLength) ||
				(bSide >= -onEpsilon && aSide <= -kIffySegLength)
			if !clearMiss {
				var qnty float64
				if aSide >= -onEpsilon || bSide >= -onEpsilon {
					qnty = kIffySegLength / -math.Min(aSide, bSide)
				} else {
					qnty = kIffySegLength / -math.Max(aSide, bSide)
				}
				info.cost += 70 * splitCost * (qnty*qnty - 1)
			}

		default:
			// Opposite signs, non-zero: this seg will be split.
			if isPrecious {
				info.cost += 100 * 100 * splitCost
			} else {
				info.cost += 100 * splitCost
			}

			if math.Abs(aSide) < kIffySegLength || math.Abs(bSide) < kIffySegLength {
				qnty := kIffySegLength / math.Min(math.Abs(aSide), math.Abs(bSide))
				info.cost += 140 * splitCost * (qnty*qnty - 1)
			}
		}
	}

	if info.cost > bestCost {
		info.aborted = true
		return false
	}
	return true
}

// evaluateFast implements the fast-mode shortcut used once a leaf's seg
// count reaches kSegFastModeThreshold: it returns the first real
// axis-aligned seg in segs, skipping full cost scoring. It does not look
// at how evenly that seg divides the group, nor at which axis-aligned
// seg lies nearest the group's middle.
func evaluateFast(lvl *Level, segs []int) (int, bool) {
	for _, idx := range segs {
		seg := &lvl.Segs[idx]
		if seg.Linedef < 0 {
			continue
		}
		if seg.pdx == 0 || seg.pdy == 0 {
			return idx, true
		}
	}
	return -1, false
}

// pickNode chooses the best partition seg among those reachable from
// tree, or returns (-1, false) if every candidate rejects (segs is
// already convex and should become a subsector). Grounded on
// bsp_node.cc's PickNodeWorker/PickNode.
func pickNode(lvl *Level, cfg Config, tree *QuadTree, segs []int) (int, bool) {
	if len(segs) >= kSegFastModeThreshold {
		if idx, ok := evaluateFast(lvl, segs); ok {
			return idx, true
		}
	}

	best := -1
	bestCost := math.MaxFloat64

	for _, idx := range segs {
		seg := &lvl.Segs[idx]
		if seg.Linedef < 0 || seg.IsDegenerate {
			continue
		}
		cost, ok := evalPartition(lvl, cfg, tree, seg, bestCost)
		if !ok {
			continue
		}
		if cost < bestCost {
			bestCost = cost
			best = idx
		}
	}

	return best, best >= 0
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
