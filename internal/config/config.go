// Package config loads the server configuration from YAML, applying defaults
// for anything the file leaves out.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"voxelfield.dev/internal/codec"
	"voxelfield.dev/internal/grid"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	// ChunkShapeLog2 is the per-axis log2 of the chunk shape, so chunks are
	// power-of-two by construction.
	ChunkShapeLog2 [3]int `yaml:"chunk_shape_log2"`
	NumLevels      int    `yaml:"num_levels"`

	// CacheCapacity is the live-chunk bound of the compressed backend, per
	// level. Zero selects the plain map backend.
	CacheCapacity int    `yaml:"cache_capacity"`
	Codec         string `yaml:"codec"`

	Terrain TerrainConfig `yaml:"terrain"`
}

type TerrainConfig struct {
	Seed      int64 `yaml:"seed"`
	Size      int   `yaml:"size"`
	MaxHeight int   `yaml:"max_height"`
	SeaLevel  int   `yaml:"sea_level"`
}

func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		ListenAddr:     ":8080",
		ChunkShapeLog2: [3]int{4, 4, 4},
		NumLevels:      4,
		CacheCapacity:  256,
		Codec:          "zstd",
		Terrain: TerrainConfig{
			Seed:      1,
			Size:      256,
			MaxHeight: 64,
			SeaLevel:  20,
		},
	}
}

func (c *Config) Normalize() {
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = ":8080"
	}
	c.Codec = strings.ToLower(strings.TrimSpace(c.Codec))
	if c.Codec == "" {
		c.Codec = "zstd"
	}
}

func (c Config) Validate() error {
	for i, l := range c.ChunkShapeLog2 {
		if l < 1 || l > 10 {
			return fmt.Errorf("chunk_shape_log2[%d] must be in [1, 10], got %d", i, l)
		}
	}
	if c.NumLevels < 1 {
		return fmt.Errorf("num_levels must be >= 1, got %d", c.NumLevels)
	}
	if c.CacheCapacity < 0 {
		return fmt.Errorf("cache_capacity must be >= 0, got %d", c.CacheCapacity)
	}
	if _, err := codec.ByName(c.Codec); err != nil {
		return err
	}
	if c.Terrain.Size <= 0 {
		return fmt.Errorf("terrain size must be > 0, got %d", c.Terrain.Size)
	}
	if c.Terrain.MaxHeight <= 0 {
		return fmt.Errorf("terrain max_height must be > 0, got %d", c.Terrain.MaxHeight)
	}
	if c.Terrain.SeaLevel < 0 || c.Terrain.SeaLevel > c.Terrain.MaxHeight {
		return fmt.Errorf("terrain sea_level must be in [0, max_height], got %d", c.Terrain.SeaLevel)
	}
	return nil
}

// ChunkShape expands chunk_shape_log2 into the voxel shape of one chunk.
func (c Config) ChunkShape() grid.Point3 {
	return grid.Pt3(
		int32(1)<<c.ChunkShapeLog2[0],
		int32(1)<<c.ChunkShapeLog2[1],
		int32(1)<<c.ChunkShapeLog2[2],
	)
}
