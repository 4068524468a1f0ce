package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/chunktile/pkg/atlas"
	"github.com/Faultbox/chunktile/pkg/geom"
)

// terrain cell colors, RGBA
var spriteColors = [4][4]byte{
	spriteWater: {41, 98, 189, 255},
	spriteSand:  {214, 196, 128, 255},
	spriteGrass: {88, 152, 72, 255},
	spriteStone: {128, 128, 134, 255},
}

// buildAtlas generates a 2x2 sprite sheet of flat colored terrain cells
// and uploads it as a GL texture. Returns the sheet and the texture id.
func buildAtlas(tile geom.Dimension2) (*atlas.SpriteSheet, uint32, error) {
	size := geom.D(tile.Width*2, tile.Height*2)
	sheet, err := atlas.NewSpriteSheet(size, tile)
	if err != nil {
		return nil, 0, err
	}

	pixels := make([]byte, size.Area()*4)
	for sprite := uint32(0); sprite < sheet.Count(); sprite++ {
		rect, err := sheet.Lookup(sprite)
		if err != nil {
			return nil, 0, err
		}
		color := spriteColors[sprite]
		for y := uint32(rect.MinY); y < uint32(rect.MaxY); y++ {
			for x := uint32(rect.MinX); x < uint32(rect.MaxX); x++ {
				// darken the cell border a touch so tiles read
				c := color
				if x == uint32(rect.MinX) || y == uint32(rect.MinY) {
					c[0] = c[0] - c[0]/8
					c[1] = c[1] - c[1]/8
					c[2] = c[2] - c[2]/8
				}
				off := (y*size.Width + x) * 4
				copy(pixels[off:off+4], c[:])
			}
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(size.Width), int32(size.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return sheet, tex, nil
}
