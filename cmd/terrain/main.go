// Command terrain runs the generate-and-downsample pipeline offline and
// prints per-level storage statistics. Useful for sizing cache capacity and
// comparing codecs without standing up the server.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"voxelfield.dev/internal/codec"
	"voxelfield.dev/internal/grid"
	"voxelfield.dev/internal/pyramid"
	"voxelfield.dev/internal/store"
	"voxelfield.dev/internal/terrain"
)

func main() {
	var (
		seed      = flag.Int64("seed", 1, "terrain seed")
		size      = flag.Int("size", 256, "side length of the generated square region, in voxels")
		numLevels = flag.Int("levels", 4, "number of pyramid levels")
		shapeLog2 = flag.Int("chunk_log2", 4, "log2 of the cubic chunk edge")
		capacity  = flag.Int("cache", 64, "live-chunk capacity per level (0 for plain map backend)")
		codecName = flag.String("codec", "zstd", "chunk codec: zstd or s2")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[terrain] ", log.LstdFlags|log.Lmicroseconds)

	b := store.Builder[terrain.Material, struct{}]{
		ChunkShape: grid.Splat3(int32(1) << *shapeLog2),
		Ambient:    terrain.Air,
	}

	// Keep direct references to the cache backends so we can report live
	// versus compressed counts after the run.
	var caches []*store.CacheBackend[terrain.Material, struct{}]
	var field *terrain.Field
	if *capacity > 0 {
		c, err := codec.ByName(*codecName)
		if err != nil {
			logger.Fatalf("codec: %v", err)
		}
		field = pyramid.New(b, *numLevels, func() store.Backend[terrain.Material, struct{}] {
			cb := store.NewCacheBackend[terrain.Material, struct{}](c, *capacity)
			caches = append(caches, cb)
			return cb
		})
	} else {
		field = pyramid.NewMap(b, *numLevels)
	}

	gen := terrain.NewGenerator(*seed)
	half := int32(*size) / 2
	region := grid.NewExtent2(grid.Pt2(-half, -half), grid.Splat2(int32(*size)))

	start := time.Now()
	gen.Generate(field.Level(0), region)
	genDur := time.Since(start)

	start = time.Now()
	field.DownsampleEntireMapAllLods(terrain.MajoritySampler{})
	downDur := time.Since(start)

	logger.Printf("seed=%d size=%d generate=%s downsample=%s", *seed, *size,
		genDur.Round(time.Millisecond), downDur.Round(time.Millisecond))

	for lod := 0; lod < field.NumLevels(); lod++ {
		level := field.Level(lod)
		ext := level.BoundingExtent()
		if lod < len(caches) {
			cb := caches[lod]
			logger.Printf("lod %d: chunks=%d live=%d compressed=%d bounds=min%v shape%v",
				lod, level.NumChunks(), cb.NumLive(), cb.NumCompressed(), ext.Min, ext.Shape)
			continue
		}
		logger.Printf("lod %d: chunks=%d bounds=min%v shape%v",
			lod, level.NumChunks(), ext.Min, ext.Shape)
	}
}
