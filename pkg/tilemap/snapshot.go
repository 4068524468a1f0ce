package tilemap

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/chunktile/pkg/atlas"
	"github.com/Faultbox/chunktile/pkg/geom"
)

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// SnapshotLayer records one configured sprite layer.
type SnapshotLayer struct {
	Order int       `yaml:"order"`
	Kind  LayerKind `yaml:"kind"`
}

// MarshalYAML encodes the layer kind by name.
func (k LayerKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML decodes a layer kind name.
func (k *LayerKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch s {
	case "dense":
		*k = Dense
	case "sparse":
		*k = Sparse
	default:
		return fmt.Errorf("unknown layer kind %q", s)
	}
	return nil
}

// Snapshot is a serializable image of a tilemap's configuration and
// tiles. Spawn state and cached meshes are render concerns and are not
// captured; a restored map starts with every chunk unspawned.
type Snapshot struct {
	Version         int               `yaml:"version"`
	ChunkDimensions geom.Dimension2   `yaml:"chunk_dimensions"`
	TileDimensions  geom.Dimension2   `yaml:"tile_dimensions"`
	Dimensions      geom.Dimension2   `yaml:"dimensions,omitempty"`
	Topology        Topology          `yaml:"topology"`
	ZLayers         int               `yaml:"z_layers"`
	Layers          []SnapshotLayer   `yaml:"layers"`
	AutoChunk       bool              `yaml:"auto_chunk,omitempty"`
	AutoSpawn       bool              `yaml:"auto_spawn,omitempty"`
	Chunks          []geom.ChunkIndex `yaml:"chunks"`
	Tiles           []Tile            `yaml:"tiles"`
}

// Snapshot captures the map's configuration, chunks and tiles. Output
// ordering is deterministic, so equal maps produce equal snapshots.
func (m *Tilemap) Snapshot() *Snapshot {
	s := &Snapshot{
		Version:         SnapshotVersion,
		ChunkDimensions: m.chunkDims,
		TileDimensions:  m.tileDims,
		Dimensions:      m.mapDims,
		Topology:        m.topology,
		ZLayers:         len(m.layers),
		AutoChunk:       m.autoChunk,
		AutoSpawn:       m.autoSpawn,
	}
	for order, cfg := range m.layers {
		if cfg != nil {
			s.Layers = append(s.Layers, SnapshotLayer{Order: order, Kind: cfg.Kind})
		}
	}

	indices := make([]geom.ChunkIndex, 0, len(m.chunks))
	for ci := range m.chunks {
		indices = append(indices, ci)
	}
	sortIndices(indices)
	s.Chunks = indices

	for _, ci := range indices {
		c := m.chunks[ci]
		for order, l := range c.layers {
			if l == nil {
				continue
			}
			for _, idx := range l.occupied() {
				data := l.get(idx)
				p := geom.LocalIndexToPoint(idx, ci, m.chunkDims, int32(order))
				s.Tiles = append(s.Tiles, Tile{
					Point:       p,
					SpriteIndex: data.Index,
					Tint:        data.Tint,
				})
			}
		}
	}
	return s
}

// Encode writes the snapshot as YAML.
func (s *Snapshot) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(s)
}

// DecodeSnapshot reads a YAML snapshot.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return &s, nil
}

// Restore rebuilds a tilemap from a snapshot against the given atlas.
// The round trip Snapshot then Restore loses nothing but render state.
func Restore(s *Snapshot, a atlas.Atlas) (*Tilemap, error) {
	b := NewBuilder().
		TextureAtlas(a).
		ChunkDimensions(s.ChunkDimensions.Width, s.ChunkDimensions.Height).
		TileDimensions(s.TileDimensions.Width, s.TileDimensions.Height).
		Topology(s.Topology).
		ZLayers(s.ZLayers)
	if s.Dimensions.Width != 0 || s.Dimensions.Height != 0 {
		b.Dimensions(s.Dimensions.Width, s.Dimensions.Height)
	}
	if s.AutoChunk {
		b.AutoChunk()
	}
	if s.AutoSpawn {
		b.AutoSpawn()
	}
	for _, l := range s.Layers {
		b.AddLayer(l.Kind, l.Order)
	}
	m, err := b.Finish()
	if err != nil {
		return nil, err
	}
	for _, ci := range s.Chunks {
		if err := m.InsertChunk(ci); err != nil {
			return nil, err
		}
	}
	// sorted tile order restores chunks deterministically
	sort.SliceStable(s.Tiles, func(a, b int) bool {
		pa, pb := s.Tiles[a].Point, s.Tiles[b].Point
		if pa.Z != pb.Z {
			return pa.Z < pb.Z
		}
		if pa.Y != pb.Y {
			return pa.Y < pb.Y
		}
		return pa.X < pb.X
	})
	if err := m.SetTiles(s.Tiles); err != nil {
		return nil, err
	}
	return m, nil
}
