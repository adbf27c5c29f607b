// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import "math"

// kEpsilon is the tolerance used throughout the builder for "same point"
// and "on the line" comparisons.
const kEpsilon = 1.0 / 1024.0

// kIffySegLength is the distance from a candidate partition line below
// which a seg endpoint counts as a near miss, or a split point as too
// close to a seg end; both the "near miss" and "iffy split" partition
// penalties key off this constant (Open Question 2: kept equal and
// independent of SplitCost).
const kIffySegLength = 4.0

// toFixed16_16 converts a floating point map-unit coordinate into the
// 16.16 fixed-point representation used by the XGL3 wire format, rounding
// ties to even to keep output deterministic across platforms.
func toFixed16_16(v float64) int32 {
	scaled := v * 65536.0
	return int32(roundTiesToEven(scaled))
}

// roundTiesToEven implements banker's rounding: ties round to the nearest
// even integer rather than always away from zero. The original node
// builder relies on the platform's rint() semantics, which default to
// ties-to-even on every machine it was ever compiled for.
func roundTiesToEven(v float64) float64 {
	floor := math.Floor(v)
	diff := v - floor
	switch {
	case diff < 0.5:
		return floor
	case diff > 0.5:
		return floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			return floor
		}
		return floor + 1
	}
}

// computeAngle returns the angle of vector (dx, dy) in degrees, measured
// counter-clockwise from east, normalized to [0, 360).
func computeAngle(dx, dy float64) float64 {
	var angle float64
	if dx == 0 && dy == 0 {
		angle = 0
	} else {
		angle = math.Atan2(dy, dx) * (180.0 / math.Pi)
		if angle < 0 {
			angle += 360.0
		}
	}
	return angle
}

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < kEpsilon
}
