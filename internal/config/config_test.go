package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Map.TileWidth != 32 || cfg.Map.TileHeight != 32 {
		t.Errorf("expected 32x32 tiles, got %dx%d", cfg.Map.TileWidth, cfg.Map.TileHeight)
	}
	if cfg.Map.Topology != "square" {
		t.Errorf("expected topology 'square', got %s", cfg.Map.Topology)
	}
	if cfg.Map.SpawnRadius != 3 {
		t.Errorf("expected spawn radius 3, got %d", cfg.Map.SpawnRadius)
	}

	if cfg.World.Seed != 1 {
		t.Errorf("expected seed 1, got %d", cfg.World.Seed)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "chunktile.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

map:
  tile_width: 16
  tile_height: 14
  topology: hex-odd-rows
  spawn_radius: 5

world:
  seed: 42
  frequency: 0.1

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatal(err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen true")
	}
	if cfg.Map.TileWidth != 16 || cfg.Map.TileHeight != 14 {
		t.Errorf("expected 16x14 tiles, got %dx%d", cfg.Map.TileWidth, cfg.Map.TileHeight)
	}
	if cfg.Map.Topology != "hex-odd-rows" {
		t.Errorf("expected topology hex-odd-rows, got %s", cfg.Map.Topology)
	}
	if cfg.World.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.World.Seed)
	}
	// value absent from the file keeps its default
	if cfg.Map.ChunkWidth != 16 {
		t.Errorf("expected chunk width 16, got %d", cfg.Map.ChunkWidth)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "chunktile.yaml")

	cfg := Default()
	cfg.World.Seed = 99
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatal(err)
	}
	if loaded.World.Seed != 99 {
		t.Errorf("expected seed 99 after round trip, got %d", loaded.World.Seed)
	}
}
