package tilemap

import (
	"fmt"

	"github.com/Faultbox/chunktile/pkg/geom"
)

// BoundsError reports a chunk index outside a finite tilemap's
// configured dimensions. Unbounded maps never produce it.
type BoundsError struct {
	Index geom.ChunkIndex
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("chunk index %s is out of bounds", e.Index)
}

// UnknownChunkError reports a chunk that does not exist where one was
// required.
type UnknownChunkError struct {
	Index geom.ChunkIndex
}

func (e *UnknownChunkError) Error() string {
	return fmt.Sprintf("the chunk %s does not exist, try InsertChunk first", e.Index)
}

// ChunkExistsError reports a chunk already present where an insert
// demanded absence.
type ChunkExistsError struct {
	Index geom.ChunkIndex
}

func (e *ChunkExistsError) Error() string {
	return fmt.Sprintf("the chunk %s already exists, if this was intentional run RemoveChunk first", e.Index)
}

// MissingLayerError reports a sprite order with no configured layer.
type MissingLayerError struct {
	Order int
}

func (e *MissingLayerError) Error() string {
	return fmt.Sprintf("layer %d does not exist, try InsertLayer first", e.Order)
}

// DuplicateLayerError reports a sprite order that already holds a layer.
type DuplicateLayerError struct {
	Order int
}

func (e *DuplicateLayerError) Error() string {
	return fmt.Sprintf("layer %d already exists, try RemoveLayer or MoveLayer first", e.Order)
}

// MissingTileError reports a read of an empty slot where presence was
// required.
type MissingTileError struct {
	Point geom.Point
}

func (e *MissingTileError) Error() string {
	return fmt.Sprintf("no tile at %s", e.Point)
}

// ConfigurationError reports inconsistent dimensions or missing required
// options detected at construction time. It is fatal to the tilemap
// being built and is always raised before any chunk exists.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid tilemap configuration: " + e.Reason
}
