// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import (
	"context"
	"sync/atomic"
)

// kSplitCostDefault mirrors the original node builder's default split cost.
const kSplitCostDefault = 11

// Config controls how a Builder partitions segs and emits the node tree.
type Config struct {
	// SplitCost weighs the "splits existing segs" penalty in the
	// partition cost function (§4.5). Higher values favor fewer splits
	// at the expense of tree balance.
	SplitCost int

	// CompressNodes selects ZGL3 (deflate-compressed) output instead of
	// plain XGL3.
	CompressNodes bool

	// Limits tunes cooperative cancellation.
	Limits Limits

	// LegacyDegenerateVertexY reproduces a suspected defect in the
	// original node builder's NewVertexDegenerate, which assigns the
	// repaired vertex's Y coordinate from the start vertex's X
	// coordinate rather than its Y (Design Note 9, Open Question 1).
	// Default false: the repair uses the corrected (X,Y) assignment.
	LegacyDegenerateVertexY bool
}

// Limits tunes how often the builder polls its context for cancellation.
type Limits struct {
	// CheckInterval is how many recursive build steps elapse between
	// context checks. Higher values reduce overhead, lower values
	// improve cancellation responsiveness. Default: 64.
	CheckInterval int
}

// DefaultConfig returns the node builder's traditional defaults.
func DefaultConfig() Config {
	return Config{
		SplitCost:     kSplitCostDefault,
		CompressNodes: true,
		Limits:        DefaultLimits(),
	}
}

// DefaultLimits returns sensible cancellation-check defaults.
func DefaultLimits() Limits {
	return Limits{CheckInterval: 64}
}

func (c Config) validate() Config {
	if c.SplitCost <= 0 {
		c.SplitCost = kSplitCostDefault
	}
	if c.Limits.CheckInterval <= 0 {
		c.Limits.CheckInterval = DefaultLimits().CheckInterval
	}
	return c
}

// cancelChecker provides cheap, periodic context-cancellation checking for
// the recursive build driver. It is modeled on the teacher's contextChecker:
// most calls only bump a counter, and the context is actually consulted
// once every checkInterval calls, so the hot partition/divide loop never
// pays a channel select per seg.
type cancelChecker struct {
	ctx           context.Context
	checkInterval int
	counter       int64
	cancelled     int32 // atomic flag
}

func newCancelChecker(ctx context.Context, checkInterval int) *cancelChecker {
	if ctx == nil {
		ctx = context.Background()
	}
	if checkInterval <= 0 {
		checkInterval = DefaultLimits().CheckInterval
	}
	return &cancelChecker{ctx: ctx, checkInterval: checkInterval}
}

// Check returns true if the context has been cancelled. Cheap on the fast
// path; only touches the context every checkInterval calls.
func (cc *cancelChecker) Check() bool {
	if atomic.LoadInt32(&cc.cancelled) != 0 {
		return true
	}

	cc.counter++
	if cc.counter%int64(cc.checkInterval) != 0 {
		return false
	}

	select {
	case <-cc.ctx.Done():
		atomic.StoreInt32(&cc.cancelled, 1)
		return true
	default:
		return false
	}
}

// CheckNow forces an immediate check regardless of interval.
func (cc *cancelChecker) CheckNow() bool {
	if atomic.LoadInt32(&cc.cancelled) != 0 {
		return true
	}
	select {
	case <-cc.ctx.Done():
		atomic.StoreInt32(&cc.cancelled, 1)
		return true
	default:
		return false
	}
}

// Err returns ErrBuildCancelled if the checker has observed cancellation.
func (cc *cancelChecker) Err() error {
	if cc.ctx.Err() != nil {
		return ErrBuildCancelled
	}
	return nil
}
