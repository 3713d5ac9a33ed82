// Package voxel holds the storage unit of the engine: dense arrays of
// voxel values, the chunks that own them, and the indexer that maps world
// coordinates onto the chunk grid.
package voxel

import (
	"fmt"

	"voxelfield.dev/internal/grid"
)

// Value is the set of voxel element types a chunk can hold. Fixed-width
// scalars only, so the compressed store can treat chunk data as raw bytes.
type Value interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

// Array is dense row-major voxel storage over an extent. Points are
// addressed in world coordinates; x varies fastest, then y, then z.
type Array[T Value] struct {
	extent grid.Extent3
	data   []T
}

func NewArray[T Value](extent grid.Extent3, fill T) *Array[T] {
	data := make([]T, extent.NumPoints())
	if fill != *new(T) {
		for i := range data {
			data[i] = fill
		}
	}
	return &Array[T]{extent: extent, data: data}
}

// ArrayFromData adopts data as the backing slice. len(data) must equal
// extent.NumPoints().
func ArrayFromData[T Value](extent grid.Extent3, data []T) *Array[T] {
	if len(data) != extent.NumPoints() {
		panic(fmt.Sprintf("voxel: array data length %d does not match extent %+v (%d points)",
			len(data), extent, extent.NumPoints()))
	}
	return &Array[T]{extent: extent, data: data}
}

func (a *Array[T]) Extent() grid.Extent3 { return a.extent }

// Data exposes the backing slice in index order.
func (a *Array[T]) Data() []T { return a.data }

// Index returns the linear offset of a world point. The point must lie
// inside the extent.
func (a *Array[T]) Index(p grid.Point3) int {
	l := p.Sub(a.extent.Min)
	return int(l.X) + int(a.extent.Shape.X)*(int(l.Y)+int(a.extent.Shape.Y)*int(l.Z))
}

func (a *Array[T]) Get(p grid.Point3) T { return a.data[a.Index(p)] }

func (a *Array[T]) Set(p grid.Point3, v T) { a.data[a.Index(p)] = v }

func (a *Array[T]) Fill(v T) {
	for i := range a.data {
		a.data[i] = v
	}
}

// FillExtent writes v over the part of e that lies inside the array.
func (a *Array[T]) FillExtent(e grid.Extent3, v T) {
	sub := a.extent.Intersection(e)
	if sub.IsEmpty() {
		return
	}
	max := sub.Max()
	for z := sub.Min.Z; z < max.Z; z++ {
		for y := sub.Min.Y; y < max.Y; y++ {
			row := a.Index(grid.Pt3(sub.Min.X, y, z))
			for i := 0; i < int(sub.Shape.X); i++ {
				a.data[row+i] = v
			}
		}
	}
}
