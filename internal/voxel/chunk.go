package voxel

import "voxelfield.dev/internal/grid"

// Chunk is the unit of storage: one dense array over a store's fixed chunk
// shape plus a caller-defined metadata record. A chunk is created the first
// time its key is written and mutated in place afterward.
type Chunk[T Value, M any] struct {
	Array *Array[T]
	Meta  M
}

func NewChunk[T Value, M any](extent grid.Extent3, fill T, meta M) *Chunk[T, M] {
	return &Chunk[T, M]{Array: NewArray(extent, fill), Meta: meta}
}
