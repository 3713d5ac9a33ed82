package pyramid

import (
	"voxelfield.dev/internal/grid"
	"voxelfield.dev/internal/voxel"
)

// PointSampler keeps the minimum-corner voxel of each source block.
// Cheapest possible reduction; fine for categorical data where any
// representative will do.
type PointSampler[T voxel.Value] struct{}

func (PointSampler[T]) Downsample(src, dst *voxel.Array[T], dstOffset grid.Point3, lodDelta int) {
	srcExtent := src.Extent()
	dstShape := srcExtent.Shape.ShrScalar(lodDelta)
	dstMin := dst.Extent().Min.Add(dstOffset)

	grid.NewExtent3(grid.Point3{}, dstShape).ForEach(func(local grid.Point3) {
		srcP := srcExtent.Min.Add(local.ShlScalar(lodDelta))
		dst.Set(dstMin.Add(local), src.Get(srcP))
	})
}
