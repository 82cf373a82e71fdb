package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	World   WorldConfig   `toml:"world"`
	Metrics MetricsConfig `toml:"metrics"`
	Logging LoggingConfig `toml:"logging"`
}

type EngineConfig struct {
	Name       string        `toml:"name"`
	TickRate   time.Duration `toml:"tick_rate"`
	ScriptsDir string        `toml:"scripts_dir"`
	BlockList  string        `toml:"block_list"`
	StartTime  int64         // set at boot, not from config
}

type WorldConfig struct {
	ChunkSizeX int32 `toml:"chunk_size_x"`
	ChunkSizeY int32 `toml:"chunk_size_y"`
	ChunkSizeZ int32 `toml:"chunk_size_z"`

	// RenderDistance is in chunks (Chebyshev square side 2n+1).
	// MaxRenderDistance is in blocks (Euclidean visibility cutoff).
	RenderDistance    int32   `toml:"render_distance"`
	MaxRenderDistance float64 `toml:"max_render_distance"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	BindAddress string `toml:"bind_address"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.Engine.StartTime = time.Now().Unix()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.World.ChunkSizeX <= 0 || c.World.ChunkSizeY <= 0 || c.World.ChunkSizeZ <= 0 {
		return fmt.Errorf("config: chunk dimensions must be positive, got %dx%dx%d",
			c.World.ChunkSizeX, c.World.ChunkSizeY, c.World.ChunkSizeZ)
	}
	if c.World.RenderDistance <= 0 {
		return fmt.Errorf("config: render_distance must be positive, got %d", c.World.RenderDistance)
	}
	if c.World.MaxRenderDistance <= 0 {
		return fmt.Errorf("config: max_render_distance must be positive, got %g", c.World.MaxRenderDistance)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			Name:       "voxelgo",
			TickRate:   50 * time.Millisecond,
			ScriptsDir: "scripts",
			BlockList:  "data/yaml/block_list.yaml",
		},
		World: WorldConfig{
			ChunkSizeX:        16,
			ChunkSizeY:        256,
			ChunkSizeZ:        16,
			RenderDistance:    2,
			MaxRenderDistance: 160,
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			BindAddress: "0.0.0.0:9100",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
