// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import "sort"

// WallTip records that a linedef touches a vertex at a given angle, and
// whether the map is open (walkable) immediately to the left/right of
// that angle as seen from the vertex. Grounded on bsp_misc.cc's
// Vertex::AddWallTip / CalculateWallTips.
type WallTip struct {
	Angle     float64
	OpenLeft  bool
	OpenRight bool
}

// AddWallTip inserts a wall-tip into v.Tips, kept sorted by Angle
// ascending via binary-search insertion (O(log n) per tip, matching
// Design Note 9's recommendation).
func (v *Vertex) AddWallTip(angle float64, openLeft, openRight bool) {
	idx := sort.Search(len(v.Tips), func(i int) bool {
		return v.Tips[i].Angle >= angle
	})
	v.Tips = append(v.Tips, WallTip{})
	copy(v.Tips[idx+1:], v.Tips[idx:])
	v.Tips[idx] = WallTip{Angle: angle, OpenLeft: openLeft, OpenRight: openRight}
}

// CheckOpen reports whether the area immediately around angle (as seen
// from this vertex) is open space, by consulting the sorted wall-tip
// list. An empty tip list means nothing touches this vertex, so it is
// open.
func (v *Vertex) CheckOpen(angle float64) bool {
	if len(v.Tips) == 0 {
		return true
	}
	for _, tip := range v.Tips {
		if floatEquals(tip.Angle, angle) {
			return false
		}
		if tip.Angle > angle {
			return tip.OpenRight
		}
	}
	return v.Tips[len(v.Tips)-1].OpenLeft
}

// CalculateWallTips populates every Vertex's wall-tip list from the
// level's (non-overlapping, non-zero-length) linedefs. Grounded on
// bsp_misc.cc's CalculateWallTips.
func CalculateWallTips(geom *LevelGeometry) {
	for i := range geom.Linedefs {
		ld := &geom.Linedefs[i]
		if ld.Overlap >= 0 || ld.ZeroLength {
			continue
		}

		start := &geom.Vertices[ld.Start]
		end := &geom.Vertices[ld.End]

		angle := computeAngle(end.X-start.X, end.Y-start.Y)
		backAngle := computeAngle(start.X-end.X, start.Y-end.Y)

		openLeft := sidedefHasSector(geom, ld.Left)
		openRight := sidedefHasSector(geom, ld.Right)

		start.AddWallTip(angle, openLeft, openRight)
		end.AddWallTip(backAngle, openRight, openLeft)
	}
}

// sidedefHasSector reports whether sideIdx refers to a present sidedef
// that itself faces a valid sector (§3's "invalid sidedef" case: a
// sidedef with no sector behaves as if the side were missing).
func sidedefHasSector(geom *LevelGeometry, sideIdx int) bool {
	return sideIdx >= 0 && sideIdx < len(geom.Sidedefs) && geom.Sidedefs[sideIdx].Sector >= 0
}
