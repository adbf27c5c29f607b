package ajbsp

import (
	"encoding/binary"
	"testing"
)

func makeVertexLump(points [][2]int16) []byte {
	buf := make([]byte, len(points)*vertexRecordSize)
	for i, p := range points {
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(p[0]))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(p[1]))
	}
	return buf
}

func TestDecodeVertexes(t *testing.T) {
	data := makeVertexLump([][2]int16{{10, -20}, {0, 0}})
	verts, err := DecodeVertexes(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(verts) != 2 {
		t.Fatalf("expected 2 vertices, got %d", len(verts))
	}
	if verts[0].X != 10 || verts[0].Y != -20 {
		t.Errorf("expected (10, -20), got (%v, %v)", verts[0].X, verts[0].Y)
	}
}

func TestDecodeVertexesBadLength(t *testing.T) {
	_, err := DecodeVertexes([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected an error for a malformed vertex lump")
	}
}

func TestDecodeLinedefsRejectsOutOfRangeVertex(t *testing.T) {
	buf := make([]byte, linedefRecordSize)
	binary.LittleEndian.PutUint16(buf[0:2], 5) // start vertex 5, but only 2 exist
	_, err := DecodeLinedefs(buf, 2, 0)
	if err == nil {
		t.Fatal("expected an illegal-index error")
	}
}

func TestDetectPolyobjSectors(t *testing.T) {
	geom := &LevelGeometry{
		Vertices: []Vertex{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}},
		Linedefs: []Linedef{
			{Start: 0, End: 1, Right: 0, Left: -1},
			{Start: 1, End: 2, Right: 0, Left: -1},
			{Start: 2, End: 3, Right: 0, Left: -1},
			{Start: 3, End: 0, Right: 0, Left: -1},
		},
		Sidedefs: []Sidedef{{Sector: 0}},
		Sectors:  []Sector{{Index: 0}},
		Things:   []Thing{{X: 50, Y: 50, Type: 3000}},
	}

	DetectPolyobjSectors(geom)

	if !geom.Sectors[0].HasPolyobject {
		t.Error("expected sector 0 to be flagged as containing a polyobject")
	}
}
