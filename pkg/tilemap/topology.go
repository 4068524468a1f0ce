package tilemap

import (
	"fmt"
	"math"

	"github.com/Faultbox/chunktile/pkg/geom"
)

// Topology selects the visual tiling scheme. Chunks are always stored as
// rectangular grids; topology only affects the positional offsets the
// mesh builder and chunk transform apply.
type Topology uint8

const (
	// Square is a plain rectangular grid.
	Square Topology = iota
	// HexOddRows offsets odd rows, hexes with pointy tops.
	HexOddRows
	// HexEvenRows offsets even rows, hexes with pointy tops.
	HexEvenRows
	// HexOddCols offsets odd columns, hexes with flat tops.
	HexOddCols
	// HexEvenCols offsets even columns, hexes with flat tops.
	HexEvenCols
	// HexAxialX skews rows along x cumulatively, hexes with flat tops.
	HexAxialX
	// HexAxialY skews columns along y cumulatively, hexes with pointy tops.
	HexAxialY
)

var topologyNames = map[Topology]string{
	Square:      "square",
	HexOddRows:  "hex-odd-rows",
	HexEvenRows: "hex-even-rows",
	HexOddCols:  "hex-odd-cols",
	HexEvenCols: "hex-even-cols",
	HexAxialX:   "hex-axial-x",
	HexAxialY:   "hex-axial-y",
}

func (t Topology) String() string {
	if name, ok := topologyNames[t]; ok {
		return name
	}
	return fmt.Sprintf("topology(%d)", uint8(t))
}

// ParseTopology returns the topology named by s.
func ParseTopology(s string) (Topology, error) {
	for t, name := range topologyNames {
		if name == s {
			return t, nil
		}
	}
	return Square, fmt.Errorf("unknown topology %q", s)
}

// MarshalYAML encodes the topology by name.
func (t Topology) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes a topology name.
func (t *Topology) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseTopology(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// parityEps biases the parity floor so float error at a row or column
// boundary cannot flip which way the hex offset goes.
const parityEps = 1e-4

// parityOdd reports whether n is odd, computed the same way the offset
// math does: floored float with an epsilon bias.
func parityOdd(n int32) bool {
	m := math.Mod(float64(n), 2)
	if m < 0 {
		m += 2
	}
	return math.Floor(m+parityEps) >= 1
}

// hexShift is the per-parity horizontal (or vertical, for column
// layouts) displacement: a quarter tile, floored to whole pixels, so
// adjacent offset rows land exactly half a tile apart.
func hexShift(extent uint32) float32 {
	return float32(math.Floor(float64(extent) * 0.25))
}

// compact is the compacted row (or column) advance for hex layouts:
// three quarters of a tile, floored to whole pixels per step.
func compact(step int32, extent uint32) float32 {
	return float32(math.Floor(float64(step) * 0.75 * float64(extent)))
}

// tilePosition returns the chunk-local pixel position of the tile quad's
// minimum corner for local grid coordinates x, y. The same offset is
// applied to all four corners so the quad stays rectangular.
func (t Topology) tilePosition(x, y int32, tile geom.Dimension2) (float32, float32) {
	w := float32(tile.Width)
	h := float32(tile.Height)
	switch t {
	case HexOddRows, HexEvenRows:
		px := float32(x) * w
		if parityOdd(y) == (t == HexOddRows) {
			px += hexShift(tile.Width)
		} else {
			px -= hexShift(tile.Width)
		}
		return px, compact(y, tile.Height)
	case HexOddCols, HexEvenCols:
		py := float32(y) * h
		if parityOdd(x) == (t == HexOddCols) {
			py += hexShift(tile.Height)
		} else {
			py -= hexShift(tile.Height)
		}
		return compact(x, tile.Width), py
	case HexAxialY:
		px := float32(x)*w + float32(math.Floor(float64(y)*0.5*float64(tile.Width)))
		return px, compact(y, tile.Height)
	case HexAxialX:
		py := float32(y)*h + float32(math.Floor(float64(x)*0.5*float64(tile.Height)))
		return compact(x, tile.Width), py
	default:
		return float32(x) * w, float32(y) * h
	}
}

// ChunkTransform returns the world-pixel origin of a chunk under the
// topology, for placing the chunk's mesh in camera space. The hex
// variants compact and skew chunk origins the same way tilePosition
// compacts tiles, so chunk silhouettes tile seamlessly.
func ChunkTransform(t Topology, ci geom.ChunkIndex, chunk, tile geom.Dimension2) (float32, float32) {
	chunkW := float32(int32(chunk.Width) * ci.X)
	chunkH := float32(int32(chunk.Height) * ci.Y)

	var x float32
	switch t {
	case HexAxialX, HexOddCols, HexEvenCols:
		x = compact(ci.X, tile.Width) * float32(chunk.Width)
	case HexAxialY:
		x = chunkW*float32(tile.Width) +
			float32(ci.Y)*float32(chunk.Height)*0.5*float32(tile.Width)
	default:
		x = chunkW * float32(tile.Width)
	}

	var y float32
	switch t {
	case HexAxialY, HexOddRows, HexEvenRows:
		y = compact(ci.Y, tile.Height) * float32(chunk.Height)
	case HexAxialX:
		y = chunkH*float32(tile.Height) +
			float32(ci.X)*float32(chunk.Width)*0.5*float32(tile.Height)
	default:
		y = chunkH * float32(tile.Height)
	}

	return x, y
}
