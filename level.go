// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ajbsp

import (
	"encoding/binary"
	"fmt"
)

// Vertex is a map coordinate. Index is its stable position in the level's
// vertex table; IsNew marks vertices synthesized by SplitSeg rather than
// read from the VERTEXES lump.
type Vertex struct {
	X, Y  float64
	Index int
	IsNew bool

	// Overlap points at the index of an earlier vertex this one
	// coincides with, or -1 if this vertex is not an overlap.
	Overlap int

	// Tips holds this vertex's wall-tips, kept sorted by Angle ascending.
	// A slice suffices in place of a separately indexed arena: vertices
	// live in a single growable table and are referenced by index, so
	// nothing here is ever relocated out from under a pointer.
	Tips []WallTip
}

// Linedef is a two-sided (or one-sided) map line connecting two vertices.
type Linedef struct {
	Start, End      int // vertex indices
	Right, Left     int // sidedef indices, -1 if none
	Type            int
	Tag             int
	TwoSided        bool
	IsPrecious      bool
	ZeroLength      bool
	SelfReferencing bool
	Overlap         int // index of an earlier, coincident linedef, or -1
	Index           int
}

// Sidedef is one side of a Linedef, facing into a Sector.
type Sidedef struct {
	Sector int // sector index, -1 if missing
	Index  int
}

// Sector is a region of floor/ceiling sharing light and height.
type Sector struct {
	Index         int
	HasPolyobject bool
}

// Thing is a map actor spawn point; the core only consumes it far enough
// to derive Sector.HasPolyobject.
type Thing struct {
	X, Y int
	Type int
}

// kPolyobjAnchorTypes lists the Hexen/ZDoom thing types that anchor a
// polyobject to its containing sector.
var kPolyobjAnchorTypes = map[int]bool{
	3000: true, // polyobject spawn
	3001: true, // polyobject spawn, crush
	9300: true, // polyobject spawn (ZDoom)
}

// LevelGeometry is the fully decoded input boundary: either parsed
// directly from raw Doom-format lumps (DecodeVertexes et al.) or supplied
// pre-built by a caller that tokenized UDMF TEXTMAP itself.
type LevelGeometry struct {
	Name     string
	Vertices []Vertex
	Linedefs []Linedef
	Sidedefs []Sidedef
	Sectors  []Sector
	Things   []Thing
}

const (
	vertexRecordSize  = 4
	linedefRecordSize = 14
	sidedefRecordSize = 30
	sectorRecordSize  = 26
	thingRecordSize   = 10
)

// DecodeVertexes decodes a raw Doom-format VERTEXES lump.
func DecodeVertexes(data []byte) ([]Vertex, error) {
	if len(data)%vertexRecordSize != 0 {
		return nil, wrapBuildError("decode vertexes", fmt.Errorf("%w: length %d not a multiple of %d", ErrIllegalIndex, len(data), vertexRecordSize))
	}
	n := len(data) / vertexRecordSize
	out := make([]Vertex, n)
	for i := 0; i < n; i++ {
		rec := data[i*vertexRecordSize:]
		x := int16(binary.LittleEndian.Uint16(rec[0:2]))
		y := int16(binary.LittleEndian.Uint16(rec[2:4]))
		out[i] = Vertex{X: float64(x), Y: float64(y), Index: i, Overlap: -1}
	}
	return out, nil
}

// DecodeLinedefs decodes a raw Doom-format LINEDEFS lump.
func DecodeLinedefs(data []byte, vertexCount, sidedefCount int) ([]Linedef, error) {
	if len(data)%linedefRecordSize != 0 {
		return nil, wrapBuildError("decode linedefs", fmt.Errorf("%w: length %d not a multiple of %d", ErrIllegalIndex, len(data), linedefRecordSize))
	}
	n := len(data) / linedefRecordSize
	out := make([]Linedef, n)
	for i := 0; i < n; i++ {
		rec := data[i*linedefRecordSize:]
		start := int(binary.LittleEndian.Uint16(rec[0:2]))
		end := int(binary.LittleEndian.Uint16(rec[2:4]))
		typ := int(binary.LittleEndian.Uint16(rec[6:8]))
		tag := int(binary.LittleEndian.Uint16(rec[8:10]))
		right := int(int16(binary.LittleEndian.Uint16(rec[10:12])))
		left := int(int16(binary.LittleEndian.Uint16(rec[12:14])))
		if start < 0 || start >= vertexCount || end < 0 || end >= vertexCount {
			return nil, wrapIndexError("decode linedefs", i, ErrIllegalIndex)
		}
		if right >= sidedefCount || left >= sidedefCount {
			return nil, wrapIndexError("decode linedefs", i, ErrIllegalIndex)
		}
		out[i] = Linedef{
			Start:      start,
			End:        end,
			Right:      right,
			Left:       left,
			Type:       typ,
			Tag:        tag,
			TwoSided:   left >= 0,
			IsPrecious: tag >= 900 && tag < 1000,
			Overlap:    -1,
			Index:      i,
		}
	}
	return out, nil
}

// DecodeSidedefs decodes a raw Doom-format SIDEDEFS lump.
func DecodeSidedefs(data []byte, sectorCount int) ([]Sidedef, error) {
	if len(data)%sidedefRecordSize != 0 {
		return nil, wrapBuildError("decode sidedefs", fmt.Errorf("%w: length %d not a multiple of %d", ErrIllegalIndex, len(data), sidedefRecordSize))
	}
	n := len(data) / sidedefRecordSize
	out := make([]Sidedef, n)
	for i := 0; i < n; i++ {
		rec := data[i*sidedefRecordSize:]
		sector := int(int16(binary.LittleEndian.Uint16(rec[28:30])))
		if sector >= sectorCount {
			return nil, wrapIndexError("decode sidedefs", i, ErrIllegalIndex)
		}
		out[i] = Sidedef{Sector: sector, Index: i}
	}
	return out, nil
}

// DecodeSectors decodes a raw Doom-format SECTORS lump.
func DecodeSectors(data []byte) ([]Sector, error) {
	if len(data)%sectorRecordSize != 0 {
		return nil, wrapBuildError("decode sectors", fmt.Errorf("%w: length %d not a multiple of %d", ErrIllegalIndex, len(data), sectorRecordSize))
	}
	n := len(data) / sectorRecordSize
	out := make([]Sector, n)
	for i := range out {
		out[i] = Sector{Index: i}
	}
	return out, nil
}

// DecodeThings decodes a raw Doom-format THINGS lump.
func DecodeThings(data []byte) ([]Thing, error) {
	if len(data)%thingRecordSize != 0 {
		return nil, wrapBuildError("decode things", fmt.Errorf("%w: length %d not a multiple of %d", ErrIllegalIndex, len(data), thingRecordSize))
	}
	n := len(data) / thingRecordSize
	out := make([]Thing, n)
	for i := 0; i < n; i++ {
		rec := data[i*thingRecordSize:]
		x := int16(binary.LittleEndian.Uint16(rec[0:2]))
		y := int16(binary.LittleEndian.Uint16(rec[2:4]))
		typ := int(binary.LittleEndian.Uint16(rec[6:8]))
		out[i] = Thing{X: int(x), Y: int(y), Type: typ}
	}
	return out, nil
}

// DetectPolyobjSectors flags Sectors that contain a polyobject anchor
// Thing. This does not change core BSP behavior (the original keeps it
// purely for renderer use) but fulfils the data model's Sector.polyobj
// field.
func DetectPolyobjSectors(geom *LevelGeometry) {
	if len(geom.Things) == 0 || len(geom.Sectors) == 0 {
		return
	}
	for _, th := range geom.Things {
		if !kPolyobjAnchorTypes[th.Type] {
			continue
		}
		sec := sectorContaining(geom, float64(th.X), float64(th.Y))
		if sec >= 0 {
			geom.Sectors[sec].HasPolyobject = true
		}
	}
}

// sectorContaining returns the index of a sector whose linedefs enclose
// (x, y), using a simple point-in-polygon test against each linedef's
// right sidedef. Returns -1 if no enclosing sector is found.
func sectorContaining(geom *LevelGeometry, x, y float64) int {
	best := -1
	for _, ld := range geom.Linedefs {
		if ld.Right < 0 || ld.Right >= len(geom.Sidedefs) {
			continue
		}
		a := geom.Vertices[ld.Start]
		b := geom.Vertices[ld.End]
		if !rayCrossesEdge(x, y, a, b) {
			continue
		}
		best = geom.Sidedefs[ld.Right].Sector
	}
	return best
}

func rayCrossesEdge(px, py float64, a, b Vertex) bool {
	if (a.Y > py) == (b.Y > py) {
		return false
	}
	xCross := a.X + (py-a.Y)/(b.Y-a.Y)*(b.X-a.X)
	return px < xCross
}
