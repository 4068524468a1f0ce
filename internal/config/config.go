// Package config handles demo configuration loading and management.
package config

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Map      MapConfig      `yaml:"map"`
	World    WorldConfig    `yaml:"world"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// MapConfig holds tilemap settings.
type MapConfig struct {
	TileWidth   uint32 `yaml:"tile_width"`
	TileHeight  uint32 `yaml:"tile_height"`
	ChunkWidth  uint32 `yaml:"chunk_width"`
	ChunkHeight uint32 `yaml:"chunk_height"`
	Topology    string `yaml:"topology"`
	// SpawnRadius is the visible region half-extent in chunks.
	SpawnRadius int32 `yaml:"spawn_radius"`
}

// WorldConfig holds the noise generator settings.
type WorldConfig struct {
	Seed      int64   `yaml:"seed"`
	Frequency float64 `yaml:"frequency"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int     `yaml:"octaves"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Map: MapConfig{
			TileWidth:   32,
			TileHeight:  32,
			ChunkWidth:  16,
			ChunkHeight: 16,
			Topology:    "square",
			SpawnRadius: 3,
		},
		World: WorldConfig{
			Seed:      1,
			Frequency: 0.05,
			Alpha:     2,
			Beta:      2,
			Octaves:   3,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
