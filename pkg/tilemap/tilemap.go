package tilemap

import (
	"go.uber.org/zap"

	"github.com/Faultbox/chunktile/pkg/atlas"
	"github.com/Faultbox/chunktile/pkg/geom"
)

// Tilemap is the aggregate: a mapping from chunk index to chunk plus the
// shared configuration every chunk meshes against. It is not safe for
// concurrent use; the host drives it from a single goroutine and calls
// Update once per tick.
type Tilemap struct {
	atlas     atlas.Atlas
	chunkDims geom.Dimension2
	tileDims  geom.Dimension2
	mapDims   geom.Dimension2
	topology  Topology
	layers    []*Layer
	autoChunk bool
	autoSpawn bool
	chunks    map[geom.ChunkIndex]*Chunk

	// spawnBaseline records each chunk's spawn state as of the first
	// toggle since the last Update. Update reports only the chunks
	// whose current state differs from the baseline, so a despawn and
	// spawn inside one tick cancel instead of reaching the host as a
	// contradictory pair.
	spawnBaseline map[geom.ChunkIndex]bool

	log *zap.Logger
}

// noteSpawnState captures the pre-toggle spawn state the first time a
// chunk's state changes within a tick.
func (m *Tilemap) noteSpawnState(ci geom.ChunkIndex, spawned bool) {
	if _, ok := m.spawnBaseline[ci]; !ok {
		m.spawnBaseline[ci] = spawned
	}
}

// TextureAtlas returns the atlas sprite indices resolve against.
func (m *Tilemap) TextureAtlas() atlas.Atlas { return m.atlas }

// ChunkDimensions returns the chunk extent in tiles.
func (m *Tilemap) ChunkDimensions() geom.Dimension2 { return m.chunkDims }

// TileDimensions returns the tile extent in pixels.
func (m *Tilemap) TileDimensions() geom.Dimension2 { return m.tileDims }

// Dimensions returns the map extent in chunks, or the zero value for an
// unbounded map.
func (m *Tilemap) Dimensions() geom.Dimension2 { return m.mapDims }

// Topology returns the tiling scheme.
func (m *Tilemap) Topology() Topology { return m.topology }

// ZLayers returns the number of sprite orders.
func (m *Tilemap) ZLayers() int { return len(m.layers) }

// ChunkCount returns the number of existing chunks.
func (m *Tilemap) ChunkCount() int { return len(m.chunks) }

// Width returns the map width in tiles. Zero for unbounded maps.
func (m *Tilemap) Width() uint32 { return m.mapDims.Width * m.chunkDims.Width }

// Height returns the map height in tiles. Zero for unbounded maps.
func (m *Tilemap) Height() uint32 { return m.mapDims.Height * m.chunkDims.Height }

// Center returns the tile at the middle of a finite map. For unbounded
// maps it is the origin.
func (m *Tilemap) Center() geom.Point {
	minX := -(int32(m.mapDims.Width) / 2) * int32(m.chunkDims.Width)
	minY := -(int32(m.mapDims.Height) / 2) * int32(m.chunkDims.Height)
	return geom.P(minX+int32(m.Width())/2, minY+int32(m.Height())/2)
}

// checkBounds rejects chunk indices outside a finite map. A map of
// width W chunks covers chunk indices [-(W/2), W-W/2) on that axis so
// chunk (0, 0) always exists. Unbounded maps accept everything.
func (m *Tilemap) checkBounds(ci geom.ChunkIndex) error {
	if m.mapDims.Width != 0 {
		half := int32(m.mapDims.Width) / 2
		if ci.X < -half || ci.X >= int32(m.mapDims.Width)-half {
			return &BoundsError{Index: ci}
		}
	}
	if m.mapDims.Height != 0 {
		half := int32(m.mapDims.Height) / 2
		if ci.Y < -half || ci.Y >= int32(m.mapDims.Height)-half {
			return &BoundsError{Index: ci}
		}
	}
	return nil
}

// chunkIndex returns the index of the chunk containing p.
func (m *Tilemap) chunkIndex(p geom.Point) geom.ChunkIndex {
	return geom.PointToChunkIndex(p, m.chunkDims)
}

func (m *Tilemap) newChunkAt(ci geom.ChunkIndex) *Chunk {
	c := newChunk(ci, m.chunkDims, len(m.layers))
	for order, cfg := range m.layers {
		if cfg != nil {
			c.insertLayer(cfg.Kind, order)
		}
	}
	m.chunks[ci] = c
	m.log.Debug("created chunk",
		zap.Int32("x", ci.X), zap.Int32("y", ci.Y))
	return c
}

// InsertChunk creates an empty chunk at ci with the configured layers.
func (m *Tilemap) InsertChunk(ci geom.ChunkIndex) error {
	if err := m.checkBounds(ci); err != nil {
		return err
	}
	if _, ok := m.chunks[ci]; ok {
		return &ChunkExistsError{Index: ci}
	}
	m.newChunkAt(ci)
	return nil
}

// ContainsChunk reports whether a chunk exists at ci.
func (m *Tilemap) ContainsChunk(ci geom.ChunkIndex) bool {
	_, ok := m.chunks[ci]
	return ok
}

// Chunk returns the chunk at ci, or nil.
func (m *Tilemap) Chunk(ci geom.ChunkIndex) *Chunk {
	return m.chunks[ci]
}

// RemoveChunk destroys the chunk at ci along with its tiles. If the
// chunk was spawned its index appears in the next Update's Despawned
// delta so the host can drop its buffers.
func (m *Tilemap) RemoveChunk(ci geom.ChunkIndex) error {
	c, ok := m.chunks[ci]
	if !ok {
		return &UnknownChunkError{Index: ci}
	}
	if c.spawned {
		m.noteSpawnState(ci, true)
	}
	delete(m.chunks, ci)
	return nil
}

// SpawnChunk marks the chunk at ci for rendering. The chunk's index and
// mesh appear in the next Update.
func (m *Tilemap) SpawnChunk(ci geom.ChunkIndex) error {
	c, ok := m.chunks[ci]
	if !ok {
		return &UnknownChunkError{Index: ci}
	}
	if !c.spawned {
		m.noteSpawnState(ci, false)
		c.spawned = true
	}
	return nil
}

// SpawnChunkContainingPoint spawns the chunk that holds p, creating it
// first when auto chunking is on.
func (m *Tilemap) SpawnChunkContainingPoint(p geom.Point) error {
	ci := m.chunkIndex(p)
	if err := m.checkBounds(ci); err != nil {
		return err
	}
	if _, ok := m.chunks[ci]; !ok {
		if !m.autoChunk {
			return &UnknownChunkError{Index: ci}
		}
		m.newChunkAt(ci)
	}
	return m.SpawnChunk(ci)
}

// DespawnChunk withdraws the chunk at ci from rendering. The chunk and
// its tiles stay intact.
func (m *Tilemap) DespawnChunk(ci geom.ChunkIndex) error {
	c, ok := m.chunks[ci]
	if !ok {
		return &UnknownChunkError{Index: ci}
	}
	if c.spawned {
		m.noteSpawnState(ci, true)
		c.spawned = false
	}
	return nil
}

// InsertLayer configures the storage kind for a sprite order and adds
// the layer to every existing chunk.
func (m *Tilemap) InsertLayer(kind LayerKind, order int) error {
	if order < 0 || order >= len(m.layers) {
		return &MissingLayerError{Order: order}
	}
	if m.layers[order] != nil {
		return &DuplicateLayerError{Order: order}
	}
	m.layers[order] = &Layer{Kind: kind}
	for _, c := range m.chunks {
		c.insertLayer(kind, order)
	}
	return nil
}

// RemoveLayer drops the sprite order's layer, with its tiles, from the
// configuration and every chunk.
func (m *Tilemap) RemoveLayer(order int) error {
	if order < 0 || order >= len(m.layers) || m.layers[order] == nil {
		return &MissingLayerError{Order: order}
	}
	m.layers[order] = nil
	for _, c := range m.chunks {
		c.removeLayer(order)
	}
	return nil
}

// MoveLayer relocates a layer to an empty sprite order, carrying its
// tiles along in every chunk.
func (m *Tilemap) MoveLayer(from, to int) error {
	if from < 0 || from >= len(m.layers) || m.layers[from] == nil {
		return &MissingLayerError{Order: from}
	}
	if to < 0 || to >= len(m.layers) {
		return &MissingLayerError{Order: to}
	}
	if m.layers[to] != nil {
		return &DuplicateLayerError{Order: to}
	}
	m.layers[to] = m.layers[from]
	m.layers[from] = nil
	for _, c := range m.chunks {
		if err := c.moveLayer(from, to); err != nil {
			return err
		}
	}
	return nil
}

// ensureLayer makes sure the sprite order can accept tiles, auto
// creating a dense layer when the order is in range but unconfigured.
func (m *Tilemap) ensureLayer(order int) error {
	if order < 0 || order >= len(m.layers) {
		return &MissingLayerError{Order: order}
	}
	if m.layers[order] == nil {
		if err := m.InsertLayer(Dense, order); err != nil {
			return err
		}
	}
	return nil
}

// SetTile places one tile. The chunk is derived from the tile's point;
// a missing chunk is created when auto chunking is on and is an
// UnknownChunkError otherwise. A zero tint stores as opaque white.
func (m *Tilemap) SetTile(t Tile) error {
	return m.SetTiles([]Tile{t})
}

// SetTiles places tiles in bulk, grouping them per chunk first so each
// touched chunk is dirtied once. On error no further tiles are applied;
// tiles already applied stay.
func (m *Tilemap) SetTiles(tiles []Tile) error {
	grouped := make(map[geom.ChunkIndex][]Tile)
	order := make([]geom.ChunkIndex, 0)
	for _, t := range tiles {
		ci := m.chunkIndex(t.Point)
		if err := m.checkBounds(ci); err != nil {
			return err
		}
		if _, ok := grouped[ci]; !ok {
			order = append(order, ci)
		}
		grouped[ci] = append(grouped[ci], t)
	}

	for _, ci := range order {
		c, ok := m.chunks[ci]
		if !ok {
			if !m.autoChunk {
				return &UnknownChunkError{Index: ci}
			}
			c = m.newChunkAt(ci)
		}
		for _, t := range grouped[ci] {
			z := int(t.Point.Z)
			if err := m.ensureLayer(z); err != nil {
				return err
			}
			idx := geom.PointToLocalIndex(t.Point, ci, m.chunkDims)
			data := TileData{Index: t.SpriteIndex, Tint: t.Tint.orWhite()}
			if err := c.setTile(idx, z, data); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetTile returns a copy of the tile data at p, or MissingTileError for
// an empty slot.
func (m *Tilemap) GetTile(p geom.Point) (TileData, error) {
	ref, err := m.GetTileRef(p)
	if err != nil {
		return TileData{}, err
	}
	return *ref, nil
}

// GetTileRef returns a pointer into the tile storage at p. The pointer
// stays valid until the layer or chunk is removed; writes through it do
// not mark the chunk dirty, prefer SetTile.
func (m *Tilemap) GetTileRef(p geom.Point) (*TileData, error) {
	ci := m.chunkIndex(p)
	if err := m.checkBounds(ci); err != nil {
		return nil, err
	}
	c, ok := m.chunks[ci]
	if !ok {
		return nil, &UnknownChunkError{Index: ci}
	}
	idx := geom.PointToLocalIndex(p, ci, m.chunkDims)
	data, err := c.getTile(idx, int(p.Z))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, &MissingTileError{Point: p}
	}
	return data, nil
}

// ClearTile empties the slot at p. Clearing an already empty slot is
// not an error.
func (m *Tilemap) ClearTile(p geom.Point) error {
	return m.ClearTiles([]geom.Point{p})
}

// ClearTiles empties slots in bulk. Points in missing chunks are an
// UnknownChunkError; bounds and layer checks apply per point.
func (m *Tilemap) ClearTiles(points []geom.Point) error {
	for _, p := range points {
		ci := m.chunkIndex(p)
		if err := m.checkBounds(ci); err != nil {
			return err
		}
		c, ok := m.chunks[ci]
		if !ok {
			return &UnknownChunkError{Index: ci}
		}
		idx := geom.PointToLocalIndex(p, ci, m.chunkDims)
		if err := c.removeTile(idx, int(p.Z)); err != nil {
			return err
		}
	}
	return nil
}

// TileCount returns the number of occupied tiles across all chunks.
func (m *Tilemap) TileCount() int {
	n := 0
	for _, c := range m.chunks {
		n += c.TileCount()
	}
	return n
}
