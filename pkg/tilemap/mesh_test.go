package tilemap

import (
	"reflect"
	"testing"

	"github.com/Faultbox/chunktile/pkg/atlas"
	"github.com/Faultbox/chunktile/pkg/geom"
)

func TestSingleTileQuad(t *testing.T) {
	chunkDims := geom.D(16, 16)
	tile := geom.D(32, 32)
	l := newLayer(Sparse, chunkDims.Area())
	// local (1, 2) on layer 0
	l.set(2*16+1, TileData{Index: 7, Tint: RGBA(1, 0, 0, 1)})

	m := buildChunkMesh([]*layer{l}, Square, chunkDims, tile)

	if m.VertexCount() != 4 {
		t.Fatalf("VertexCount() = %d, want 4", m.VertexCount())
	}
	wantPositions := []float32{
		32, 64, 0,
		32, 96, 0,
		64, 96, 0,
		64, 64, 0,
	}
	if !reflect.DeepEqual(m.Positions, wantPositions) {
		t.Errorf("Positions = %v, want %v", m.Positions, wantPositions)
	}
	wantIndices := []uint32{0, 2, 1, 0, 3, 2}
	if !reflect.DeepEqual(m.Indices, wantIndices) {
		t.Errorf("Indices = %v, want %v", m.Indices, wantIndices)
	}
	for i := 0; i < 4; i++ {
		if m.TileIndices[i] != 7 {
			t.Errorf("TileIndices[%d] = %v, want 7", i, m.TileIndices[i])
		}
	}
	wantColor := []float32{1, 0, 0, 1}
	if !reflect.DeepEqual(m.Colors[:4], wantColor) {
		t.Errorf("Colors[:4] = %v, want %v", m.Colors[:4], wantColor)
	}
}

func TestEmptySlotsProduceNoGeometry(t *testing.T) {
	chunkDims := geom.D(8, 8)
	l := newLayer(Dense, chunkDims.Area())
	l.set(10, TileData{Index: 1, Tint: White})
	l.remove(10)

	m := buildChunkMesh([]*layer{l}, Square, chunkDims, geom.D(32, 32))
	if !m.Empty() {
		t.Errorf("mesh of an emptied layer has %d vertices, want 0", m.VertexCount())
	}
}

func TestLayerDepthInPositions(t *testing.T) {
	chunkDims := geom.D(8, 8)
	bottom := newLayer(Dense, chunkDims.Area())
	top := newLayer(Sparse, chunkDims.Area())
	bottom.set(0, TileData{Index: 1, Tint: White})
	top.set(0, TileData{Index: 2, Tint: White})

	m := buildChunkMesh([]*layer{bottom, nil, top}, Square, chunkDims, geom.D(32, 32))
	if m.VertexCount() != 8 {
		t.Fatalf("VertexCount() = %d, want 8", m.VertexCount())
	}
	if m.Positions[2] != 0 {
		t.Errorf("bottom layer z = %v, want 0", m.Positions[2])
	}
	if m.Positions[4*3+2] != 2 {
		t.Errorf("top layer z = %v, want 2", m.Positions[4*3+2])
	}
}

func TestMeshBuildIsIdempotent(t *testing.T) {
	chunkDims := geom.D(8, 8)
	l := newLayer(Sparse, chunkDims.Area())
	for _, idx := range []uint32{33, 5, 60, 12} {
		l.set(idx, TileData{Index: idx, Tint: White})
	}
	layers := []*layer{l}

	first := buildChunkMesh(layers, HexOddRows, chunkDims, geom.D(32, 28))
	second := buildChunkMesh(layers, HexOddRows, chunkDims, geom.D(32, 28))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two builds of unchanged content differ")
	}
}

func TestChunkMeshCache(t *testing.T) {
	c := newChunk(geom.ChunkIndex{}, geom.D(8, 8), 1)
	c.insertLayer(Dense, 0)
	c.setTile(3, 0, TileData{Index: 1, Tint: White})

	first := c.Mesh(Square, geom.D(32, 32))
	second := c.Mesh(Square, geom.D(32, 32))
	if first != second {
		t.Errorf("clean chunk rebuilt its mesh")
	}

	c.setTile(4, 0, TileData{Index: 2, Tint: White})
	third := c.Mesh(Square, geom.D(32, 32))
	if third == second {
		t.Errorf("dirty chunk served the stale mesh")
	}
	if third.VertexCount() != 8 {
		t.Errorf("VertexCount() = %d, want 8", third.VertexCount())
	}
}

func TestBuildAtlasTable(t *testing.T) {
	sheet, err := atlas.NewSpriteSheet(geom.D(64, 64), geom.D(32, 32))
	if err != nil {
		t.Fatal(err)
	}
	table := BuildAtlasTable(sheet)
	if len(table) != 16 {
		t.Fatalf("len(table) = %d, want 16", len(table))
	}
	// sprite 3 occupies the bottom right cell
	want := []float32{0.5, 0.5, 1, 1}
	if !reflect.DeepEqual(table[12:16], want) {
		t.Errorf("table[12:16] = %v, want %v", table[12:16], want)
	}
}
