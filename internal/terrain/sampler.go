package terrain

import (
	"voxelfield.dev/internal/grid"
	"voxelfield.dev/internal/voxel"
)

// MajoritySampler reduces each 2^lodDelta block of materials to its most
// frequent member. Ties break toward the smaller material id, which keeps
// the reduction deterministic.
type MajoritySampler struct{}

func (MajoritySampler) Downsample(src, dst *voxel.Array[Material], dstOffset grid.Point3, lodDelta int) {
	srcExtent := src.Extent()
	dstShape := srcExtent.Shape.ShrScalar(lodDelta)
	dstMin := dst.Extent().Min.Add(dstOffset)
	blockShape := grid.Splat3(1).ShlScalar(lodDelta)

	counts := map[Material]int{}

	grid.NewExtent3(grid.Point3{}, dstShape).ForEach(func(local grid.Point3) {
		blockMin := srcExtent.Min.Add(local.ShlScalar(lodDelta))
		clear(counts)
		grid.NewExtent3(blockMin, blockShape).ForEach(func(p grid.Point3) {
			counts[src.Get(p)]++
		})

		best := Material(0)
		bestN := -1
		for m, n := range counts {
			if n > bestN || (n == bestN && m < best) {
				best, bestN = m, n
			}
		}
		dst.Set(dstMin.Add(local), best)
	})
}
