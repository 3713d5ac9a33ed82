package pyramid

import (
	"math/bits"

	"voxelfield.dev/internal/grid"
)

// Destination identifies where a source chunk's samples land when
// downsampled across lodDelta levels: the destination chunk key, and the
// voxel offset of the reduced block inside that chunk.
type Destination struct {
	DstChunkKey grid.Point3
	DstOffset   grid.Point3
}

// ForSourceChunk computes the destination for srcChunkKey at lodDelta
// levels up. Chunk keys live in one shared key space across levels: a key
// at level L addresses voxels 2^L times larger, so the source key is
// quantized to the coarser grid and re-expressed in chunk-shape units.
//
// Valid only for power-of-two chunk shapes; the indexer enforces that at
// construction.
func ForSourceChunk(chunkShape, srcChunkKey grid.Point3, lodDelta int) Destination {
	chunkShapeLog2 := chunkShape.Map(func(c int32) int32 {
		return int32(bits.TrailingZeros32(uint32(c)))
	})
	levelUpLog2 := chunkShapeLog2.AddScalar(int32(lodDelta))
	levelUpShape := chunkShape.ShlScalar(lodDelta)

	// Euclidean mod keeps the offset inside [0, levelUpShape) for negative
	// keys; a truncating remainder would aim below the destination chunk.
	offset := srcChunkKey.Mod(levelUpShape)

	return Destination{
		DstChunkKey: srcChunkKey.Shr(levelUpLog2).Shl(chunkShapeLog2),
		DstOffset:   offset.ShrScalar(lodDelta),
	}
}
