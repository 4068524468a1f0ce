package tilemap

import (
	"errors"
	"testing"

	"github.com/Faultbox/chunktile/pkg/atlas"
	"github.com/Faultbox/chunktile/pkg/geom"
)

func testAtlas(t *testing.T) atlas.Atlas {
	t.Helper()
	sheet, err := atlas.NewSpriteSheet(geom.D(128, 128), geom.D(32, 32))
	if err != nil {
		t.Fatal(err)
	}
	return sheet
}

func testMap(t *testing.T, opts ...func(*Builder)) *Tilemap {
	t.Helper()
	b := NewBuilder().
		TextureAtlas(testAtlas(t)).
		ChunkDimensions(16, 16).
		TileDimensions(32, 32)
	for _, opt := range opts {
		opt(b)
	}
	m, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func withAutoChunk(b *Builder) { b.AutoChunk() }
func withAutoSpawn(b *Builder) { b.AutoSpawn() }
func withBounds2x2(b *Builder) { b.Dimensions(2, 2) }

func TestSetTileAutoChunksAtBoundary(t *testing.T) {
	m := testMap(t, withAutoChunk)

	// (16, 16) is the first tile of chunk (1, 1), not the last of (0, 0)
	if err := m.SetTile(Tile{Point: geom.P(16, 16), SpriteIndex: 4}); err != nil {
		t.Fatal(err)
	}
	if !m.ContainsChunk(geom.ChunkIndex{X: 1, Y: 1}) {
		t.Errorf("chunk (1, 1) was not created")
	}
	if m.ContainsChunk(geom.ChunkIndex{X: 0, Y: 0}) {
		t.Errorf("chunk (0, 0) was created for a tile it does not contain")
	}

	got, err := m.GetTile(geom.P(16, 16))
	if err != nil {
		t.Fatal(err)
	}
	if got.Index != 4 {
		t.Errorf("GetTile(16, 16).Index = %d, want 4", got.Index)
	}
	if got.Tint != White {
		t.Errorf("zero tint stored as %v, want opaque white", got.Tint)
	}
}

func TestNegativePointsLandInNegativeChunks(t *testing.T) {
	m := testMap(t, withAutoChunk)

	if err := m.SetTile(Tile{Point: geom.P(-1, -1), SpriteIndex: 2}); err != nil {
		t.Fatal(err)
	}
	if !m.ContainsChunk(geom.ChunkIndex{X: -1, Y: -1}) {
		t.Errorf("chunk (-1, -1) was not created")
	}

	got, err := m.GetTile(geom.P(-1, -1))
	if err != nil {
		t.Fatal(err)
	}
	if got.Index != 2 {
		t.Errorf("GetTile(-1, -1).Index = %d, want 2", got.Index)
	}
}

func TestSetTileWithoutAutoChunk(t *testing.T) {
	m := testMap(t)
	err := m.SetTile(Tile{Point: geom.P(5, 5), SpriteIndex: 1})
	var unknown *UnknownChunkError
	if !errors.As(err, &unknown) {
		t.Fatalf("SetTile on missing chunk = %v, want UnknownChunkError", err)
	}
	if unknown.Index != (geom.ChunkIndex{}) {
		t.Errorf("error chunk = %s, want (0, 0)", unknown.Index)
	}

	if err := m.InsertChunk(geom.ChunkIndex{}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetTile(Tile{Point: geom.P(5, 5), SpriteIndex: 1}); err != nil {
		t.Fatal(err)
	}
}

func TestInsertChunkTwice(t *testing.T) {
	m := testMap(t)
	if err := m.InsertChunk(geom.ChunkIndex{}); err != nil {
		t.Fatal(err)
	}
	err := m.InsertChunk(geom.ChunkIndex{})
	var exists *ChunkExistsError
	if !errors.As(err, &exists) {
		t.Errorf("second InsertChunk = %v, want ChunkExistsError", err)
	}
}

func TestLastWriteWins(t *testing.T) {
	m := testMap(t, withAutoChunk)
	p := geom.P(3, 3)
	m.SetTile(Tile{Point: p, SpriteIndex: 1})
	m.SetTile(Tile{Point: p, SpriteIndex: 8})

	got, err := m.GetTile(p)
	if err != nil {
		t.Fatal(err)
	}
	if got.Index != 8 {
		t.Errorf("GetTile.Index = %d, want 8", got.Index)
	}
}

func TestClearTile(t *testing.T) {
	m := testMap(t, withAutoChunk)
	p := geom.P(3, 3)
	m.SetTile(Tile{Point: p, SpriteIndex: 1})

	if err := m.ClearTile(p); err != nil {
		t.Fatal(err)
	}
	_, err := m.GetTile(p)
	var missing *MissingTileError
	if !errors.As(err, &missing) {
		t.Errorf("GetTile after clear = %v, want MissingTileError", err)
	}

	// clearing an empty slot is fine
	if err := m.ClearTile(p); err != nil {
		t.Errorf("ClearTile on empty slot = %v, want nil", err)
	}
}

func TestFiniteBounds(t *testing.T) {
	m := testMap(t, withAutoChunk, withBounds2x2)

	// a 2x2 chunk map covers chunk indices -1 and 0 per axis
	for _, p := range []geom.Point{geom.P(0, 0), geom.P(-16, -16), geom.P(15, 15), geom.P(-1, -1)} {
		if err := m.SetTile(Tile{Point: p, SpriteIndex: 1}); err != nil {
			t.Errorf("SetTile(%s) = %v, want nil", p, err)
		}
	}

	err := m.SetTile(Tile{Point: geom.P(16, 0), SpriteIndex: 1})
	var bounds *BoundsError
	if !errors.As(err, &bounds) {
		t.Errorf("SetTile(16, 0) = %v, want BoundsError", err)
	}
	if err := m.SetTile(Tile{Point: geom.P(-17, 0), SpriteIndex: 1}); !errors.As(err, &bounds) {
		t.Errorf("SetTile(-17, 0) = %v, want BoundsError", err)
	}
}

func TestUnboundedMapNeverOutOfBounds(t *testing.T) {
	m := testMap(t, withAutoChunk)
	for _, p := range []geom.Point{geom.P(1 << 20, 0), geom.P(0, -(1 << 20))} {
		if err := m.SetTile(Tile{Point: p, SpriteIndex: 1}); err != nil {
			t.Errorf("SetTile(%s) = %v, want nil", p, err)
		}
	}
}

func TestMissingLayer(t *testing.T) {
	m := testMap(t, withAutoChunk)

	// in-range z orders auto create a dense layer
	if err := m.SetTile(Tile{Point: geom.P3(0, 0, 3), SpriteIndex: 1}); err != nil {
		t.Fatalf("SetTile on unconfigured order 3 = %v, want auto creation", err)
	}

	err := m.SetTile(Tile{Point: geom.P3(0, 0, 99), SpriteIndex: 1})
	var missing *MissingLayerError
	if !errors.As(err, &missing) {
		t.Fatalf("SetTile on order 99 = %v, want MissingLayerError", err)
	}
	if missing.Order != 99 {
		t.Errorf("error order = %d, want 99", missing.Order)
	}
}

func TestLayerManagement(t *testing.T) {
	m := testMap(t, withAutoChunk)
	m.SetTile(Tile{Point: geom.P(0, 0), SpriteIndex: 1})

	var dup *DuplicateLayerError
	if err := m.InsertLayer(Sparse, 0); !errors.As(err, &dup) {
		t.Errorf("InsertLayer on occupied order = %v, want DuplicateLayerError", err)
	}

	if err := m.MoveLayer(0, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := m.GetTile(geom.P3(0, 0, 2)); err != nil {
		t.Errorf("tile did not move with its layer: %v", err)
	}
	var missing *MissingLayerError
	if _, err := m.GetTile(geom.P(0, 0)); !errors.As(err, &missing) {
		t.Errorf("GetTile on vacated order = %v, want MissingLayerError", err)
	}

	if err := m.RemoveLayer(2); err != nil {
		t.Fatal(err)
	}
	if err := m.RemoveLayer(2); !errors.As(err, &missing) {
		t.Errorf("second RemoveLayer = %v, want MissingLayerError", err)
	}
}

func TestGetTileRefWrites(t *testing.T) {
	m := testMap(t, withAutoChunk)
	p := geom.P(2, 2)
	m.SetTile(Tile{Point: p, SpriteIndex: 1})

	ref, err := m.GetTileRef(p)
	if err != nil {
		t.Fatal(err)
	}
	ref.Index = 6

	got, err := m.GetTile(p)
	if err != nil {
		t.Fatal(err)
	}
	if got.Index != 6 {
		t.Errorf("GetTile.Index = %d, want 6 after write through ref", got.Index)
	}
}

func TestSetTilesGroupsPerChunk(t *testing.T) {
	m := testMap(t, withAutoChunk)
	tiles := []Tile{
		{Point: geom.P(0, 0), SpriteIndex: 1},
		{Point: geom.P(20, 0), SpriteIndex: 2},
		{Point: geom.P(-1, 0), SpriteIndex: 3},
		{Point: geom.P(1, 0), SpriteIndex: 4},
	}
	if err := m.SetTiles(tiles); err != nil {
		t.Fatal(err)
	}
	if m.ChunkCount() != 3 {
		t.Errorf("ChunkCount() = %d, want 3", m.ChunkCount())
	}
	if m.TileCount() != 4 {
		t.Errorf("TileCount() = %d, want 4", m.TileCount())
	}
}

func TestRemoveChunkDestroysTiles(t *testing.T) {
	m := testMap(t, withAutoChunk)
	m.SetTile(Tile{Point: geom.P(0, 0), SpriteIndex: 1})

	if err := m.RemoveChunk(geom.ChunkIndex{}); err != nil {
		t.Fatal(err)
	}
	var unknown *UnknownChunkError
	if _, err := m.GetTile(geom.P(0, 0)); !errors.As(err, &unknown) {
		t.Errorf("GetTile after RemoveChunk = %v, want UnknownChunkError", err)
	}
	if err := m.RemoveChunk(geom.ChunkIndex{}); !errors.As(err, &unknown) {
		t.Errorf("second RemoveChunk = %v, want UnknownChunkError", err)
	}
}

func TestDespawnKeepsTiles(t *testing.T) {
	m := testMap(t, withAutoChunk)
	m.SetTile(Tile{Point: geom.P(0, 0), SpriteIndex: 5})

	ci := geom.ChunkIndex{}
	if err := m.SpawnChunk(ci); err != nil {
		t.Fatal(err)
	}
	if err := m.DespawnChunk(ci); err != nil {
		t.Fatal(err)
	}
	got, err := m.GetTile(geom.P(0, 0))
	if err != nil {
		t.Fatalf("GetTile after despawn = %v, want tile intact", err)
	}
	if got.Index != 5 {
		t.Errorf("GetTile.Index = %d, want 5", got.Index)
	}
}

func TestBuilderValidation(t *testing.T) {
	var cfg *ConfigurationError

	_, err := NewBuilder().TileDimensions(32, 32).Finish()
	if !errors.As(err, &cfg) {
		t.Errorf("Finish without atlas = %v, want ConfigurationError", err)
	}

	_, err = NewBuilder().TextureAtlas(testAtlas(t)).Finish()
	if !errors.As(err, &cfg) {
		t.Errorf("Finish without tile dimensions = %v, want ConfigurationError", err)
	}

	_, err = NewBuilder().
		TextureAtlas(testAtlas(t)).
		TileDimensions(32, 32).
		ZLayers(0).
		Finish()
	if !errors.As(err, &cfg) {
		t.Errorf("Finish with 0 z layers = %v, want ConfigurationError", err)
	}

	_, err = NewBuilder().
		TextureAtlas(testAtlas(t)).
		TileDimensions(32, 32).
		AddLayer(Dense, 7).
		Finish()
	if !errors.As(err, &cfg) {
		t.Errorf("Finish with out of range layer = %v, want ConfigurationError", err)
	}
}

func TestAutoConfigure(t *testing.T) {
	m, err := NewBuilder().
		TextureAtlas(testAtlas(t)).
		TileDimensions(32, 32).
		AutoConfigure().
		Finish()
	if err != nil {
		t.Fatal(err)
	}
	if got := m.ChunkDimensions(); got != geom.D(32, 32) {
		t.Errorf("ChunkDimensions() = %s, want 32x32", got)
	}

	_, err = NewBuilder().
		TextureAtlas(testAtlas(t)).
		TileDimensions(24, 24).
		AutoConfigure().
		Finish()
	var cfg *ConfigurationError
	if !errors.As(err, &cfg) {
		t.Errorf("AutoConfigure with indivisible tiles = %v, want ConfigurationError", err)
	}

	m, err = NewBuilder().
		TextureAtlas(testAtlas(t)).
		TileDimensions(24, 24).
		AutoConfigure().
		TextureBudget(768, 768).
		Finish()
	if err != nil {
		t.Fatal(err)
	}
	if got := m.ChunkDimensions(); got != geom.D(32, 32) {
		t.Errorf("ChunkDimensions() with 768 budget = %s, want 32x32", got)
	}
}

func TestFiniteMapSize(t *testing.T) {
	m := testMap(t, withBounds2x2)
	if m.Width() != 32 || m.Height() != 32 {
		t.Errorf("Width, Height = %d, %d, want 32, 32", m.Width(), m.Height())
	}
	if c := m.Center(); c != geom.P(0, 0) {
		t.Errorf("Center() = %s, want (0, 0)", c)
	}
}
