package geom

import "fmt"

// Dimension2 is a width and height pair. Depending on context it is
// measured in tiles (chunk dimensions), pixels (tile dimensions) or
// chunks (map dimensions).
type Dimension2 struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// D is shorthand for a Dimension2.
func D(width, height uint32) Dimension2 {
	return Dimension2{Width: width, Height: height}
}

// Area returns width times height.
func (d Dimension2) Area() uint32 {
	return d.Width * d.Height
}

func (d Dimension2) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}
