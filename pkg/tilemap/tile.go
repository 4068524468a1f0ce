// Package tilemap implements a chunk-based tilemap: sparse or dense tile
// layers grouped into fixed-size chunks that are independently meshed
// into vertex attribute buffers and spawned or despawned by visibility.
package tilemap

import "github.com/Faultbox/chunktile/pkg/geom"

// Color is a normalized RGBA tint.
type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

// White is the neutral tint: the sprite renders unchanged.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// RGBA constructs a color from its components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// orWhite maps the zero value to the default opaque white tint so that
// Tile literals without an explicit tint render normally.
func (c Color) orWhite() Color {
	if c == (Color{}) {
		return White
	}
	return c
}

// Tile is a single sprite placement. Point.Z selects the sprite layer
// within the chunk. A zero Tint renders as opaque white.
type Tile struct {
	Point       geom.Point `yaml:"point"`
	SpriteIndex uint32     `yaml:"sprite"`
	Tint        Color      `yaml:"tint"`
}

// TileData is the stored portion of a tile: the sprite index and tint.
// The position is implied by the slot the data occupies.
type TileData struct {
	Index uint32 `yaml:"index"`
	Tint  Color  `yaml:"tint"`
}
