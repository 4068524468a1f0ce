package tilemap

import (
	"math"

	"github.com/Faultbox/chunktile/pkg/atlas"
	"github.com/Faultbox/chunktile/pkg/geom"
)

// ChunkMesh holds the vertex attribute buffers for one chunk, ready to
// upload. Per occupied tile: 4 vertices and 6 indices forming two
// triangles. Positions are chunk-local pixels; the chunk transform
// places them in world space.
type ChunkMesh struct {
	// Positions holds 3 floats per vertex: x, y in chunk-local pixels
	// and z as the layer's z order.
	Positions []float32
	// TileIndices holds 1 float per vertex: the sprite index used to
	// look up the atlas rect in the shader's rect table.
	TileIndices []float32
	// Colors holds 4 floats per vertex: RGBA tint.
	Colors []float32
	// Indices holds 6 entries per tile with 0,2,1 / 0,3,2 winding.
	Indices []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m *ChunkMesh) VertexCount() int { return len(m.Positions) / 3 }

// Empty reports whether the mesh contains no geometry.
func (m *ChunkMesh) Empty() bool { return len(m.Indices) == 0 }

// buildChunkMesh walks the layer stack bottom to top and emits one quad
// per occupied tile. Layers iterate occupied slots in ascending local
// index so repeated builds of unchanged content produce identical
// buffers.
func buildChunkMesh(layers []*layer, topology Topology, chunkDims, tile geom.Dimension2) *ChunkMesh {
	total := 0
	for _, l := range layers {
		if l != nil {
			total += l.size()
		}
	}

	m := &ChunkMesh{
		Positions:   make([]float32, 0, total*4*3),
		TileIndices: make([]float32, 0, total*4),
		Colors:      make([]float32, 0, total*4*4),
		Indices:     make([]uint32, 0, total*6),
	}

	tw := float32(tile.Width)
	th := float32(tile.Height)

	for z, l := range layers {
		if l == nil {
			continue
		}
		depth := float32(z)
		for _, idx := range l.occupied() {
			data := l.get(idx)
			if data == nil {
				continue
			}
			lx, ly := geom.LocalXY(idx, chunkDims)
			x0, y0 := topology.tilePosition(int32(lx), int32(ly), tile)
			x1 := x0 + tw
			y1 := y0 + th

			base := uint32(len(m.TileIndices))
			m.Positions = append(m.Positions,
				x0, y0, depth,
				x0, y1, depth,
				x1, y1, depth,
				x1, y0, depth,
			)
			sprite := float32(data.Index)
			tint := data.Tint
			for i := 0; i < 4; i++ {
				m.TileIndices = append(m.TileIndices, sprite)
				m.Colors = append(m.Colors, tint.R, tint.G, tint.B, tint.A)
			}
			m.Indices = append(m.Indices,
				base, base+2, base+1,
				base, base+3, base+2,
			)
		}
	}
	return m
}

// BuildAtlasTable flattens an atlas into the shader's rect table: 4
// floats per sprite (min u, min v, max u, max v), normalized to [0,1].
// Pixel edges are floored to whole texels before normalizing so a rect
// never samples into its neighbor.
func BuildAtlasTable(a atlas.Atlas) []float32 {
	size := a.Size()
	invW := 1.0 / float64(size.Width)
	invH := 1.0 / float64(size.Height)
	count := a.Count()

	table := make([]float32, 0, count*4)
	for sprite := uint32(0); sprite < count; sprite++ {
		r, err := a.Lookup(sprite)
		if err != nil {
			continue
		}
		table = append(table,
			float32(math.Floor(float64(r.MinX))*invW),
			float32(math.Floor(float64(r.MinY))*invH),
			float32(math.Floor(float64(r.MaxX))*invW),
			float32(math.Floor(float64(r.MaxY))*invH),
		)
	}
	return table
}
