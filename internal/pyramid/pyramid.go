// Package pyramid stacks one chunk store per level of detail and
// propagates data from finer to coarser levels through a caller-supplied
// downsampler. Voxel size doubles every level; all levels share one chunk
// shape and one key space.
//
// Downsampling is always caller-triggered, per chunk, per region or for the
// whole map. Nothing here runs in the background, and nothing locks: the
// caller holds exclusive access for mutation, shared access for reads.
package pyramid

import (
	"fmt"

	"voxelfield.dev/internal/codec"
	"voxelfield.dev/internal/grid"
	"voxelfield.dev/internal/store"
	"voxelfield.dev/internal/voxel"
)

// Downsampler reduces a 2^lodDelta-sized block of source voxels into each
// destination voxel, writing the reduced block at dstOffset. The reduction
// policy (point sample, majority, mean...) belongs to the sampler.
type Downsampler[T voxel.Value] interface {
	Downsample(src, dst *voxel.Array[T], dstOffset grid.Point3, lodDelta int)
}

// Pyramid is a fixed, ordered list of chunk stores indexed by LOD. Level 0
// is full resolution. Levels are created at construction and never added or
// removed; each level's chunks have an independent lifecycle.
type Pyramid[T voxel.Value, M any] struct {
	levels []*store.Store[T, M]
}

// New builds numLevels stores from the builder, one backend per level.
func New[T voxel.Value, M any](b store.Builder[T, M], numLevels int, backend func() store.Backend[T, M]) *Pyramid[T, M] {
	if numLevels < 1 {
		panic(fmt.Sprintf("pyramid: need at least one level, got %d", numLevels))
	}
	levels := make([]*store.Store[T, M], numLevels)
	for i := range levels {
		levels[i] = b.Build(backend())
	}
	return &Pyramid[T, M]{levels: levels}
}

// NewMap builds a pyramid over plain map backends.
func NewMap[T voxel.Value, M any](b store.Builder[T, M], numLevels int) *Pyramid[T, M] {
	return New(b, numLevels, func() store.Backend[T, M] {
		return store.NewMapBackend[T, M]()
	})
}

// NewCompressed builds a pyramid over compressed cache backends sharing one
// codec, each level bounded to maxLive resident chunks.
func NewCompressed[T voxel.Value, M any](b store.Builder[T, M], numLevels int, c codec.Codec, maxLive int) *Pyramid[T, M] {
	return New(b, numLevels, func() store.Backend[T, M] {
		return store.NewCacheBackend[T, M](c, maxLive)
	})
}

func (p *Pyramid[T, M]) NumLevels() int { return len(p.levels) }

// Level returns the store for one LOD. Panics when lod is out of range.
func (p *Pyramid[T, M]) Level(lod int) *store.Store[T, M] {
	return p.levels[lod]
}

// TwoLevels returns stores a and b, a < b, for operations that touch two
// levels at once. The level slice is split at b into disjoint sub-ranges
// and each side indexed separately, so the two references can never alias.
// a >= b or an out-of-range index is a caller logic error and panics.
func (p *Pyramid[T, M]) TwoLevels(a, b int) (*store.Store[T, M], *store.Store[T, M]) {
	if a >= b || a < 0 || b >= len(p.levels) {
		panic(fmt.Sprintf("pyramid: bad level pair (%d, %d) of %d levels", a, b, len(p.levels)))
	}
	head, tail := p.levels[:b], p.levels[b:]
	return head[a], tail[0]
}

// DownsampleChunk reduces the source chunk at srcKey in srcLod into its
// destination within dstLod. A missing source chunk fills the destination
// sub-extent with the source level's ambient value instead of invoking the
// sampler: absence propagates as ambient, never as an inferred value.
// Requires dstLod > srcLod.
func (p *Pyramid[T, M]) DownsampleChunk(sampler Downsampler[T], srcKey grid.Point3, srcLod, dstLod int) {
	if dstLod <= srcLod {
		panic(fmt.Sprintf("pyramid: dst lod %d must be above src lod %d", dstLod, srcLod))
	}
	src, dst := p.TwoLevels(srcLod, dstLod)
	lodDelta := dstLod - srcLod
	chunkShape := src.Indexer().ChunkShape()

	d := ForSourceChunk(chunkShape, srcKey, lodDelta)
	dstChunk := dst.ChunkOrInsertAmbient(d.DstChunkKey)

	if srcChunk := src.Chunk(srcKey); srcChunk != nil {
		sampler.Downsample(srcChunk.Array, dstChunk.Array, d.DstOffset, lodDelta)
		return
	}
	sub := grid.NewExtent3(
		dstChunk.Array.Extent().Min.Add(d.DstOffset),
		chunkShape.ShrScalar(lodDelta),
	)
	dstChunk.Array.FillExtent(sub, src.Ambient())
}

// DownsampleChunkAllLods walks the source chunk at level 0 up through every
// level, one step at a time. The source key advances by a single right
// shift per level: key resolution halves exactly once per LOD. That
// assumption is shared with ForSourceChunk's shared-key-space quantization
// and must not change independently.
func (p *Pyramid[T, M]) DownsampleChunkAllLods(sampler Downsampler[T], lod0Key grid.Point3) {
	srcKey := lod0Key
	for dstLod := 1; dstLod < len(p.levels); dstLod++ {
		p.DownsampleChunk(sampler, srcKey, dstLod-1, dstLod)
		srcKey = srcKey.ShrScalar(1)
	}
}

// DownsampleChunksForExtentAllLods runs the whole-pyramid downsample for
// every level-0 chunk key intersecting lod0Extent. Shared destination
// chunks may be recomputed; step order does not matter because each write
// is an idempotent overwrite.
func (p *Pyramid[T, M]) DownsampleChunksForExtentAllLods(sampler Downsampler[T], lod0Extent grid.Extent3) {
	p.levels[0].Indexer().ForEachChunkKey(lod0Extent, func(key grid.Point3) {
		p.DownsampleChunkAllLods(sampler, key)
	})
}

// DownsampleEntireMapAllLods downsamples everything level 0 currently
// holds.
func (p *Pyramid[T, M]) DownsampleEntireMapAllLods(sampler Downsampler[T]) {
	p.DownsampleChunksForExtentAllLods(sampler, p.levels[0].BoundingExtent())
}
