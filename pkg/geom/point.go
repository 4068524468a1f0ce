// Package geom provides the integer grid math used by the tilemap:
// points, dimensions, chunk indexing and local index encoding.
package geom

import "fmt"

// Point is an integer tile coordinate. Z selects the sprite layer within
// a chunk and affects draw order only, never spatial position.
type Point struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
	Z int32 `yaml:"z,omitempty"`
}

// P is shorthand for a point on layer 0.
func P(x, y int32) Point {
	return Point{X: x, Y: y}
}

// P3 is shorthand for a point on an explicit layer.
func P3(x, y, z int32) Point {
	return Point{X: x, Y: y, Z: z}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// ChunkIndex identifies a chunk's position in the tilemap's chunk grid.
type ChunkIndex struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}

func (c ChunkIndex) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}
