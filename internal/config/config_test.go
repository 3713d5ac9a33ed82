package config

import (
	"os"
	"path/filepath"
	"testing"

	"voxelfield.dev/internal/grid"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("listen_addr = %q", cfg.ListenAddr)
	}
	if cfg.ChunkShape() != grid.Splat3(16) {
		t.Fatalf("chunk shape = %v", cfg.ChunkShape())
	}
	if cfg.NumLevels != 4 || cfg.Codec != "zstd" {
		t.Fatalf("defaults: %+v", cfg)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	p := writeTempConfig(t, `
listen_addr: ":9000"
chunk_shape_log2: [5, 6, 5]
num_levels: 3
cache_capacity: 8
codec: " S2 "
terrain:
  seed: 42
  size: 128
  max_height: 48
  sea_level: 16
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChunkShape() != grid.Pt3(32, 64, 32) {
		t.Fatalf("chunk shape = %v", cfg.ChunkShape())
	}
	if cfg.Codec != "s2" {
		t.Fatalf("codec = %q", cfg.Codec)
	}
	if cfg.Terrain.Seed != 42 || cfg.Terrain.SeaLevel != 16 {
		t.Fatalf("terrain: %+v", cfg.Terrain)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		"chunk_shape_log2: [0, 4, 4]",
		"num_levels: 0",
		"cache_capacity: -1",
		`codec: "lz9"`,
		"terrain:\n  size: 0",
		"terrain:\n  sea_level: 99",
	}
	for _, body := range cases {
		p := writeTempConfig(t, body)
		if _, err := Load(p); err == nil {
			t.Fatalf("config %q must fail validation", body)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
