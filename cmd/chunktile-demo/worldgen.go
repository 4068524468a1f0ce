package main

import (
	"github.com/aquilax/go-perlin"

	"github.com/Faultbox/chunktile/internal/config"
	"github.com/Faultbox/chunktile/pkg/geom"
	"github.com/Faultbox/chunktile/pkg/tilemap"
)

// Sprite indices into the generated atlas.
const (
	spriteWater = 0
	spriteSand  = 1
	spriteGrass = 2
	spriteStone = 3
)

// worldGen fills chunks with perlin noise terrain as the camera
// discovers them.
type worldGen struct {
	noise     *perlin.Perlin
	frequency float64
	generated map[geom.ChunkIndex]bool
}

func newWorldGen(cfg config.WorldConfig) *worldGen {
	return &worldGen{
		noise:     perlin.NewPerlin(cfg.Alpha, cfg.Beta, int32(cfg.Octaves), cfg.Seed),
		frequency: cfg.Frequency,
		generated: make(map[geom.ChunkIndex]bool),
	}
}

// Fill generates tiles for every chunk in the region that has not been
// generated yet. Chunks the map already holds spawn with their tiles
// intact, so a revisited chunk is never regenerated.
func (g *worldGen) Fill(tm *tilemap.Tilemap, region tilemap.Region) error {
	chunkDims := tm.ChunkDimensions()
	for cy := region.Min.Y; cy <= region.Max.Y; cy++ {
		for cx := region.Min.X; cx <= region.Max.X; cx++ {
			ci := geom.ChunkIndex{X: cx, Y: cy}
			if g.generated[ci] {
				continue
			}
			if err := tm.SetTiles(g.chunkTiles(ci, chunkDims)); err != nil {
				return err
			}
			g.generated[ci] = true
		}
	}
	return nil
}

func (g *worldGen) chunkTiles(ci geom.ChunkIndex, chunkDims geom.Dimension2) []tilemap.Tile {
	origin := geom.ChunkOrigin(ci, chunkDims)
	tiles := make([]tilemap.Tile, 0, chunkDims.Area())
	for y := uint32(0); y < chunkDims.Height; y++ {
		for x := uint32(0); x < chunkDims.Width; x++ {
			wx := origin.X + int32(x)
			wy := origin.Y + int32(y)
			h := g.noise.Noise2D(float64(wx)*g.frequency, float64(wy)*g.frequency)
			tiles = append(tiles, tilemap.Tile{
				Point:       geom.P(wx, wy),
				SpriteIndex: spriteForHeight(h),
			})
		}
	}
	return tiles
}

// spriteForHeight maps a noise sample in [-1, 1] to a terrain sprite.
func spriteForHeight(h float64) uint32 {
	switch {
	case h < -0.1:
		return spriteWater
	case h < 0.0:
		return spriteSand
	case h < 0.35:
		return spriteGrass
	default:
		return spriteStone
	}
}
