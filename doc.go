// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ajbsp builds Doom-engine BSP node trees from decoded level
// geometry and emits them in the XGL3 (optionally deflate-compressed
// ZGL3) wire format.
//
// # Overview
//
// A Builder takes a LevelGeometry (vertices, linedefs, sidedefs,
// sectors, and things already decoded from their lumps, or assembled by
// a caller from UDMF TEXTMAP) and runs it through geometry
// normalization, wall-tip analysis, seg construction, recursive space
// partitioning, subsector finalization, and node emission:
//
//	cfg := ajbsp.DefaultConfig()
//	b := ajbsp.NewBuilder(cfg)
//	result, err := b.Build(ctx, geom)
//
// Reading WAD lump directories, tokenizing UDMF TEXTMAP, and writing the
// resulting lump back into a WAD file are all the caller's
// responsibility; this package's input boundary is a LevelGeometry and
// its output boundary is a []byte ready to be written into one lump.
package ajbsp
