package terrain

import (
	"github.com/aquilax/go-perlin"

	"voxelfield.dev/internal/grid"
	"voxelfield.dev/internal/store"
)

// Generator writes heightmap terrain into a voxel store. Deterministic for
// a seed: the same region always generates the same voxels.
type Generator struct {
	noise *perlin.Perlin

	// Frequency of the base noise octave in voxels.
	Scale float64
	// Terrain height range [0, MaxHeight).
	MaxHeight int32
	// Columns below sea level are flooded down from the surface.
	SeaLevel int32
}

func NewGenerator(seed int64) *Generator {
	const (
		alpha   = 2.0
		beta    = 2.0
		octaves = 3
	)
	return &Generator{
		noise:     perlin.NewPerlin(alpha, beta, octaves, seed),
		Scale:     96,
		MaxHeight: 64,
		SeaLevel:  20,
	}
}

// HeightAt returns the surface height of a column, in [1, MaxHeight].
func (g *Generator) HeightAt(p grid.Point2) int32 {
	// Noise2D is in [-1, 1].
	n := g.noise.Noise2D(float64(p.X)/g.Scale, float64(p.Z)/g.Scale)
	h := int32((n + 1) / 2 * float64(g.MaxHeight))
	if h < 1 {
		h = 1
	}
	if h > g.MaxHeight {
		h = g.MaxHeight
	}
	return h
}

// Generate fills every column of region in the store: rock below the
// surface band, a surface material by height, water up to sea level. Air
// above the surface is never written, so all-air chunks stay ambient and
// unmaterialized.
func (g *Generator) Generate(s *store.Store[Material, struct{}], region grid.Extent2) {
	region.ForEach(func(col grid.Point2) {
		h := g.HeightAt(col)
		for y := int32(0); y < h; y++ {
			s.Set(col.WithY(y), g.materialAt(y, h))
		}
		for y := h; y <= g.SeaLevel; y++ {
			s.Set(col.WithY(y), Water)
		}
	})
}

func (g *Generator) materialAt(y, surface int32) Material {
	if y < surface-4 {
		return Rock
	}
	switch {
	case surface <= g.SeaLevel+2:
		return Sand
	case surface >= g.MaxHeight-8:
		return Snow
	default:
		return Grass
	}
}
