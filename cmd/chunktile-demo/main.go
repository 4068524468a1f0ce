// chunktile-demo scrolls an endless perlin noise terrain rendered with
// the chunked tilemap: chunks spawn and despawn around the camera and
// are re-meshed only when their tiles change.
package main

import (
	"fmt"
	stdmath "math"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/chunktile/internal/config"
	"github.com/Faultbox/chunktile/internal/logger"
	"github.com/Faultbox/chunktile/internal/render"
	"github.com/Faultbox/chunktile/internal/window"
	"github.com/Faultbox/chunktile/pkg/geom"
	gmath "github.com/Faultbox/chunktile/pkg/math"
	"github.com/Faultbox/chunktile/pkg/tilemap"
)

const cameraSpeed = 400 // pixels per second

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("demo failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	topo, err := tilemap.ParseTopology(cfg.Map.Topology)
	if err != nil {
		return err
	}

	win, err := window.New(window.Config{
		Title:      "chunktile demo",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, log)
	if err != nil {
		return err
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	tileDims := geom.D(cfg.Map.TileWidth, cfg.Map.TileHeight)
	sheet, texture, err := buildAtlas(tileDims)
	if err != nil {
		return err
	}

	tm, err := tilemap.NewBuilder().
		TextureAtlas(sheet).
		TileDimensions(tileDims.Width, tileDims.Height).
		ChunkDimensions(cfg.Map.ChunkWidth, cfg.Map.ChunkHeight).
		Topology(topo).
		AutoChunk().
		AutoSpawn().
		Logger(log).
		Finish()
	if err != nil {
		return err
	}

	rend, err := render.New(tilemap.BuildAtlasTable(sheet), log)
	if err != nil {
		return err
	}
	defer rend.Close()
	rend.SetTexture(texture)

	gen := newWorldGen(cfg.World)

	chunkPxW := float64(cfg.Map.ChunkWidth * cfg.Map.TileWidth)
	chunkPxH := float64(cfg.Map.ChunkHeight * cfg.Map.TileHeight)

	var camX, camY float32
	last := sdl.GetTicks64()

	for {
		for event := win.PollEvent(); event != nil; event = win.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					return nil
				}
			}
		}

		now := sdl.GetTicks64()
		dt := float32(now-last) / 1000
		last = now

		if window.KeyDown(sdl.SCANCODE_LEFT) || window.KeyDown(sdl.SCANCODE_A) {
			camX -= cameraSpeed * dt
		}
		if window.KeyDown(sdl.SCANCODE_RIGHT) || window.KeyDown(sdl.SCANCODE_D) {
			camX += cameraSpeed * dt
		}
		if window.KeyDown(sdl.SCANCODE_DOWN) || window.KeyDown(sdl.SCANCODE_S) {
			camY -= cameraSpeed * dt
		}
		if window.KeyDown(sdl.SCANCODE_UP) || window.KeyDown(sdl.SCANCODE_W) {
			camY += cameraSpeed * dt
		}

		center := geom.ChunkIndex{
			X: int32(stdmath.Floor(float64(camX) / chunkPxW)),
			Y: int32(stdmath.Floor(float64(camY) / chunkPxH)),
		}
		region := tilemap.RegionAround(center, cfg.Map.SpawnRadius)

		if err := gen.Fill(tm, region); err != nil {
			return err
		}
		rend.Apply(tm.Update(region))

		w, h := win.GetSize()
		halfW, halfH := float32(w)/2, float32(h)/2
		viewProj := gmath.Ortho(camX-halfW, camX+halfW, camY-halfH, camY+halfH, -1, 1)

		gl.ClearColor(0.1, 0.1, 0.12, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		rend.Draw(viewProj)

		win.SwapBuffers()
	}
}
