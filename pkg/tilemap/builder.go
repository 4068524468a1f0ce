package tilemap

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/chunktile/pkg/atlas"
	"github.com/Faultbox/chunktile/pkg/geom"
)

// Defaults applied by the builder when an option is not given.
const (
	DefaultZLayers     = 5
	DefaultChunkWidth  = 32
	DefaultChunkHeight = 32
	// DefaultTextureBudget is the per-axis pixel budget AutoConfigure
	// divides by the tile size to derive chunk dimensions.
	DefaultTextureBudget = 1024
)

// Builder assembles a Tilemap. Options may be chained in any order;
// Finish validates the combination and constructs the map.
type Builder struct {
	atlas         atlas.Atlas
	chunkDims     geom.Dimension2
	tileDims      geom.Dimension2
	mapDims       geom.Dimension2
	budget        geom.Dimension2
	topology      Topology
	zLayers       int
	layers        map[int]LayerKind
	autoChunk     bool
	autoSpawn     bool
	autoConfigure bool
	log           *zap.Logger
}

// NewBuilder returns a builder with defaults: 32x32 chunks, 5 z layers,
// square topology, one dense layer at order 0.
func NewBuilder() *Builder {
	return &Builder{
		zLayers: DefaultZLayers,
		layers:  make(map[int]LayerKind),
	}
}

// TextureAtlas sets the atlas the map's sprite indices resolve against.
// Required.
func (b *Builder) TextureAtlas(a atlas.Atlas) *Builder {
	b.atlas = a
	return b
}

// ChunkDimensions sets the chunk extent in tiles.
func (b *Builder) ChunkDimensions(width, height uint32) *Builder {
	b.chunkDims = geom.D(width, height)
	return b
}

// TileDimensions sets the tile extent in pixels. Required.
func (b *Builder) TileDimensions(width, height uint32) *Builder {
	b.tileDims = geom.D(width, height)
	return b
}

// Dimensions bounds the map to width by height chunks, centered on
// chunk (0, 0). Without it the map is unbounded.
func (b *Builder) Dimensions(width, height uint32) *Builder {
	b.mapDims = geom.D(width, height)
	return b
}

// ZLayers sets how many sprite orders the map holds. Default 5.
func (b *Builder) ZLayers(n int) *Builder {
	b.zLayers = n
	return b
}

// AddLayer configures the storage kind for a sprite order. Orders
// without a configured layer reject tile writes until InsertLayer or,
// for dense auto-creation, the first SetTile.
func (b *Builder) AddLayer(kind LayerKind, order int) *Builder {
	b.layers[order] = kind
	return b
}

// Topology sets the tiling scheme. Default Square.
func (b *Builder) Topology(t Topology) *Builder {
	b.topology = t
	return b
}

// AutoChunk makes tile writes create missing chunks instead of failing
// with UnknownChunkError.
func (b *Builder) AutoChunk() *Builder {
	b.autoChunk = true
	return b
}

// AutoSpawn makes Update spawn every chunk inside the visible region
// and despawn every spawned chunk outside it.
func (b *Builder) AutoSpawn() *Builder {
	b.autoSpawn = true
	return b
}

// AutoConfigure derives the chunk dimensions from a per-chunk texture
// budget divided by the tile dimensions. The default budget is
// 1024x1024 pixels; override it with TextureBudget.
func (b *Builder) AutoConfigure() *Builder {
	b.autoConfigure = true
	return b
}

// TextureBudget overrides the AutoConfigure pixel budget.
func (b *Builder) TextureBudget(width, height uint32) *Builder {
	b.budget = geom.D(width, height)
	return b
}

// Logger attaches a logger. Without one the map is silent.
func (b *Builder) Logger(log *zap.Logger) *Builder {
	b.log = log
	return b
}

// Finish validates the configuration and constructs the tilemap. All
// validation failures are ConfigurationError and happen before any
// chunk exists.
func (b *Builder) Finish() (*Tilemap, error) {
	if b.atlas == nil {
		return nil, &ConfigurationError{Reason: "a texture atlas is required"}
	}
	if b.tileDims.Width == 0 || b.tileDims.Height == 0 {
		return nil, &ConfigurationError{Reason: "tile dimensions are required"}
	}
	if b.zLayers < 1 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("z layers must be at least 1, got %d", b.zLayers)}
	}

	chunkDims := b.chunkDims
	if b.autoConfigure {
		budget := b.budget
		if budget.Width == 0 || budget.Height == 0 {
			budget = geom.D(DefaultTextureBudget, DefaultTextureBudget)
		}
		if budget.Width%b.tileDims.Width != 0 || budget.Height%b.tileDims.Height != 0 {
			return nil, &ConfigurationError{Reason: fmt.Sprintf(
				"tile dimensions %s do not evenly divide the texture budget %s",
				b.tileDims, budget)}
		}
		chunkDims = geom.D(budget.Width/b.tileDims.Width, budget.Height/b.tileDims.Height)
	}
	if chunkDims.Width == 0 || chunkDims.Height == 0 {
		chunkDims = geom.D(DefaultChunkWidth, DefaultChunkHeight)
	}

	layers := make([]*Layer, b.zLayers)
	for order, kind := range b.layers {
		if order < 0 || order >= b.zLayers {
			return nil, &ConfigurationError{Reason: fmt.Sprintf(
				"layer order %d is outside the configured %d z layers", order, b.zLayers)}
		}
		layers[order] = &Layer{Kind: kind}
	}
	if len(b.layers) == 0 {
		layers[0] = &Layer{Kind: Dense}
	}

	log := b.log
	if log == nil {
		log = zap.NewNop()
	}

	return &Tilemap{
		atlas:         b.atlas,
		chunkDims:     chunkDims,
		tileDims:      b.tileDims,
		mapDims:       b.mapDims,
		topology:      b.topology,
		layers:        layers,
		autoChunk:     b.autoChunk,
		autoSpawn:     b.autoSpawn,
		chunks:        make(map[geom.ChunkIndex]*Chunk),
		spawnBaseline: make(map[geom.ChunkIndex]bool),
		log:           log,
	}, nil
}
