package voxel

import (
	"fmt"
	"math/bits"

	"voxelfield.dev/internal/grid"
)

// Indexer maps world coordinates onto a chunk grid with a fixed chunk
// shape. Chunk keys are the minimum corners of chunks, expressed in voxel
// units, so every level of a pyramid shares one key space.
//
// Every chunk shape component must be a power of two: downsampling is pure
// shift arithmetic and is only exact on power-of-two grids.
type Indexer struct {
	shape     grid.Point3
	shapeLog2 grid.Point3
}

// NewIndexer panics when any chunk shape component is not a positive power
// of two. That is a caller logic error, not a runtime condition.
func NewIndexer(chunkShape grid.Point3) Indexer {
	check := func(c int32) {
		if c <= 0 || c&(c-1) != 0 {
			panic(fmt.Sprintf("voxel: chunk shape %v must have power-of-two components", chunkShape))
		}
	}
	check(chunkShape.X)
	check(chunkShape.Y)
	check(chunkShape.Z)

	return Indexer{
		shape: chunkShape,
		shapeLog2: chunkShape.Map(func(c int32) int32 {
			return int32(bits.TrailingZeros32(uint32(c)))
		}),
	}
}

func (ix Indexer) ChunkShape() grid.Point3 { return ix.shape }

func (ix Indexer) ChunkShapeLog2() grid.Point3 { return ix.shapeLog2 }

// ChunkKeyContainingPoint floors p onto the chunk grid. Arithmetic shifts
// round toward negative infinity, so negative coordinates land in the
// correct chunk.
func (ix Indexer) ChunkKeyContainingPoint(p grid.Point3) grid.Point3 {
	return p.Shr(ix.shapeLog2).Shl(ix.shapeLog2)
}

// ExtentForChunkKey is the world extent covered by the chunk at key.
func (ix Indexer) ExtentForChunkKey(key grid.Point3) grid.Extent3 {
	return grid.NewExtent3(key, ix.shape)
}

// ForEachChunkKey calls fn for every chunk key whose extent intersects e,
// in row-major order (x fastest). The enumeration is deterministic and can
// be restarted from the same extent.
func (ix Indexer) ForEachChunkKey(e grid.Extent3, fn func(grid.Point3)) {
	if e.IsEmpty() {
		return
	}
	first := ix.ChunkKeyContainingPoint(e.Min)
	last := ix.ChunkKeyContainingPoint(e.Max().AddScalar(-1))
	for z := first.Z; z <= last.Z; z += ix.shape.Z {
		for y := first.Y; y <= last.Y; y += ix.shape.Y {
			for x := first.X; x <= last.X; x += ix.shape.X {
				fn(grid.Pt3(x, y, z))
			}
		}
	}
}

// ChunkKeysForExtent materializes ForEachChunkKey into a slice.
func (ix Indexer) ChunkKeysForExtent(e grid.Extent3) []grid.Point3 {
	var keys []grid.Point3
	ix.ForEachChunkKey(e, func(k grid.Point3) { keys = append(keys, k) })
	return keys
}
