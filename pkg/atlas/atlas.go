// Package atlas defines the texture atlas contract consumed by the mesh
// builder and renderer, plus a uniform-grid sprite sheet implementation.
//
// The atlas texture itself (pixel data, GPU upload) is the host
// application's concern; this package only answers "where does sprite N
// live inside the texture".
package atlas

import (
	"fmt"

	"github.com/Faultbox/chunktile/pkg/geom"
)

// Rect is an axis-aligned rectangle in atlas-pixel space, begin
// inclusive, end exclusive.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// Width returns the rectangle's horizontal extent in pixels.
func (r Rect) Width() float32 {
	return r.MaxX - r.MinX
}

// Height returns the rectangle's vertical extent in pixels.
func (r Rect) Height() float32 {
	return r.MaxY - r.MinY
}

// Atlas resolves sprite indices to pixel rectangles in a texture atlas.
type Atlas interface {
	// Lookup returns the pixel rectangle for a sprite index. It fails
	// if the index is outside the atlas.
	Lookup(sprite uint32) (Rect, error)

	// Size returns the total atlas size in pixels.
	Size() geom.Dimension2

	// Count returns the number of sprites in the atlas.
	Count() uint32
}

// OutOfRangeError reports a sprite index outside the atlas.
type OutOfRangeError struct {
	Sprite uint32
	Count  uint32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("sprite %d is out of range, the atlas holds %d sprites", e.Sprite, e.Count)
}

// SpriteSheet is a uniform-grid Atlas: equally sized sprites laid out
// row-major, left to right, top to bottom in a single texture.
type SpriteSheet struct {
	size   geom.Dimension2
	sprite geom.Dimension2
	cols   uint32
	rows   uint32
}

// NewSpriteSheet constructs a sprite sheet from the texture size and the
// per-sprite cell size, both in pixels. The cell size must evenly divide
// the texture size.
func NewSpriteSheet(size, sprite geom.Dimension2) (*SpriteSheet, error) {
	if sprite.Width == 0 || sprite.Height == 0 {
		return nil, fmt.Errorf("sprite dimensions %s must be non-zero", sprite)
	}
	if size.Width%sprite.Width != 0 || size.Height%sprite.Height != 0 {
		return nil, fmt.Errorf("sprite dimensions %s do not evenly divide the sheet %s", sprite, size)
	}
	return &SpriteSheet{
		size:   size,
		sprite: sprite,
		cols:   size.Width / sprite.Width,
		rows:   size.Height / sprite.Height,
	}, nil
}

// Lookup returns the cell rectangle for a sprite index.
func (s *SpriteSheet) Lookup(sprite uint32) (Rect, error) {
	count := s.Count()
	if sprite >= count {
		return Rect{}, &OutOfRangeError{Sprite: sprite, Count: count}
	}
	col := sprite % s.cols
	row := sprite / s.cols
	minX := float32(col * s.sprite.Width)
	minY := float32(row * s.sprite.Height)
	return Rect{
		MinX: minX,
		MinY: minY,
		MaxX: minX + float32(s.sprite.Width),
		MaxY: minY + float32(s.sprite.Height),
	}, nil
}

// Size returns the sheet texture size in pixels.
func (s *SpriteSheet) Size() geom.Dimension2 {
	return s.size
}

// SpriteSize returns the size of a single sprite cell in pixels.
func (s *SpriteSheet) SpriteSize() geom.Dimension2 {
	return s.sprite
}

// Count returns the number of cells in the sheet.
func (s *SpriteSheet) Count() uint32 {
	return s.cols * s.rows
}
