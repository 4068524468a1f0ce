package tilemap

import (
	"github.com/Faultbox/chunktile/pkg/geom"
)

// Chunk is one fixed-size cell of the map: a z-ordered stack of layers
// over the same local grid, meshed as a unit. Chunks track two
// independent pieces of state: dirty (content changed since the last
// mesh build) and spawned (the host is currently rendering it).
type Chunk struct {
	index   geom.ChunkIndex
	dims    geom.Dimension2
	layers  []*layer
	mesh    *ChunkMesh
	dirty   bool
	spawned bool
}

func newChunk(index geom.ChunkIndex, dims geom.Dimension2, zLayers int) *Chunk {
	return &Chunk{
		index:  index,
		dims:   dims,
		layers: make([]*layer, zLayers),
	}
}

// Index returns the chunk's position in chunk coordinates.
func (c *Chunk) Index() geom.ChunkIndex { return c.index }

// Dimensions returns the chunk's extent in tiles.
func (c *Chunk) Dimensions() geom.Dimension2 { return c.dims }

// Dirty reports whether the chunk's content changed since the last
// mesh build.
func (c *Chunk) Dirty() bool { return c.dirty }

// Spawned reports whether the chunk is currently handed to the host
// for rendering.
func (c *Chunk) Spawned() bool { return c.spawned }

// TileCount returns the number of occupied tiles across all layers.
func (c *Chunk) TileCount() int {
	n := 0
	for _, l := range c.layers {
		if l != nil {
			n += l.size()
		}
	}
	return n
}

func (c *Chunk) insertLayer(kind LayerKind, order int) error {
	if order < 0 || order >= len(c.layers) {
		return &MissingLayerError{Order: order}
	}
	if c.layers[order] != nil {
		return &DuplicateLayerError{Order: order}
	}
	c.layers[order] = newLayer(kind, c.dims.Area())
	c.dirty = true
	return nil
}

func (c *Chunk) removeLayer(order int) {
	if order < 0 || order >= len(c.layers) || c.layers[order] == nil {
		return
	}
	c.layers[order] = nil
	c.dirty = true
}

func (c *Chunk) moveLayer(from, to int) error {
	if from < 0 || from >= len(c.layers) || c.layers[from] == nil {
		return &MissingLayerError{Order: from}
	}
	if to < 0 || to >= len(c.layers) {
		return &MissingLayerError{Order: to}
	}
	if c.layers[to] != nil {
		return &DuplicateLayerError{Order: to}
	}
	c.layers[to] = c.layers[from]
	c.layers[from] = nil
	c.dirty = true
	return nil
}

func (c *Chunk) hasLayer(order int) bool {
	return order >= 0 && order < len(c.layers) && c.layers[order] != nil
}

func (c *Chunk) setTile(index uint32, order int, data TileData) error {
	if !c.hasLayer(order) {
		return &MissingLayerError{Order: order}
	}
	c.layers[order].set(index, data)
	c.dirty = true
	return nil
}

func (c *Chunk) getTile(index uint32, order int) (*TileData, error) {
	if !c.hasLayer(order) {
		return nil, &MissingLayerError{Order: order}
	}
	return c.layers[order].get(index), nil
}

func (c *Chunk) removeTile(index uint32, order int) error {
	if !c.hasLayer(order) {
		return &MissingLayerError{Order: order}
	}
	if _, removed := c.layers[order].remove(index); removed {
		c.dirty = true
	}
	return nil
}

// Mesh returns the chunk's attribute buffers, rebuilding them only if
// the chunk is dirty. Two calls with no writes in between return the
// same buffers.
func (c *Chunk) Mesh(topology Topology, tile geom.Dimension2) *ChunkMesh {
	if c.mesh != nil && !c.dirty {
		return c.mesh
	}
	c.mesh = buildChunkMesh(c.layers, topology, c.dims, tile)
	c.dirty = false
	return c.mesh
}
