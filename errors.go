// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import (
	"errors"
	"fmt"
)

// BuildError represents an error that occurred while building a BSP tree.
// It includes contextual information about where in the pipeline the error
// occurred.
type BuildError struct {
	Op    string // stage that failed (e.g. "pick node", "divide segs")
	Level string // level name, if known ("" if not applicable)
	Index int    // seg/vertex/node index relevant to the failure, -1 if none
	Err   error  // underlying sentinel error
}

func (e *BuildError) Error() string {
	if e.Level != "" && e.Index >= 0 {
		return fmt.Sprintf("ajbsp: %s (level %s, index %d): %v", e.Op, e.Level, e.Index, e.Err)
	}
	if e.Level != "" {
		return fmt.Sprintf("ajbsp: %s (level %s): %v", e.Op, e.Level, e.Err)
	}
	if e.Index >= 0 {
		return fmt.Sprintf("ajbsp: %s (index %d): %v", e.Op, e.Index, e.Err)
	}
	return fmt.Sprintf("ajbsp: %s: %v", e.Op, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Sentinel errors, modeled on the build-result taxonomy of the original
// node builder (kBuildOK .. kIllegalIndex).
var (
	// ErrBuildCancelled indicates the build's context was cancelled or
	// timed out.
	ErrBuildCancelled = errors.New("build cancelled")

	// ErrZeroLengthSeg indicates a seg was created with coincident start
	// and end vertices.
	ErrZeroLengthSeg = errors.New("zero-length seg")

	// ErrBadIntersectionOrder indicates the intersection list along a
	// partition line was not monotonic in along_dist.
	ErrBadIntersectionOrder = errors.New("intersection list out of order")

	// ErrPartitionYieldedEmptySide indicates a chosen partition put every
	// seg on one side, which should have been excluded by the picker.
	ErrPartitionYieldedEmptySide = errors.New("partition yielded an empty side")

	// ErrDegenerateSubsector indicates a subsector was finalized with no
	// segs, or the level produced no segs at all. A failed closure check
	// is recorded as a minor issue, not as this error.
	ErrDegenerateSubsector = errors.New("degenerate subsector")

	// ErrMissingChild indicates a node was emitted with a child reference
	// that does not resolve to either a node or a subsector.
	ErrMissingChild = errors.New("missing node child")

	// ErrIllegalIndex indicates a lookup (vertex, sector, sidedef, line)
	// referenced an index outside the bounds of its table.
	ErrIllegalIndex = errors.New("illegal index")
)

// wrapBuildError wraps err with stage context. Returns nil if err is nil.
func wrapBuildError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BuildError{Op: op, Index: -1, Err: err}
}

// wrapIndexError wraps err with stage and index context.
func wrapIndexError(op string, index int, err error) error {
	if err == nil {
		return nil
	}
	return &BuildError{Op: op, Index: index, Err: err}
}

// wrapLevelError wraps err with stage and level-name context.
func wrapLevelError(op, level string, err error) error {
	if err == nil {
		return nil
	}
	return &BuildError{Op: op, Level: level, Index: -1, Err: err}
}
