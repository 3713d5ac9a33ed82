package store

import (
	"container/list"
	"fmt"

	"voxelfield.dev/internal/codec"
	"voxelfield.dev/internal/grid"
	"voxelfield.dev/internal/voxel"
)

// CacheBackend bounds resident memory while keeping every written chunk
// accessible. Entries are either live (decompressed, tracked by recency) or
// cold (a compressed byte buffer plus the retained metadata). When an
// insertion or a decompression pushes the live count past maxLive, the
// least-recently-used live chunk is compressed inline, never deferred.
type CacheBackend[T voxel.Value, M any] struct {
	codec   codec.Codec
	maxLive int

	entries map[grid.Point3]*cacheEntry[T, M]
	// Recency over live entries only; front is most recent. Values are keys.
	recency *list.List
	numLive int
}

type cacheEntry[T voxel.Value, M any] struct {
	// live and elem are both set, or both nil.
	live *voxel.Chunk[T, M]
	elem *list.Element

	// Cold state. Metadata and extent stay uncompressed so a cold chunk can
	// be rebuilt without guessing.
	compressed []byte
	extent     grid.Extent3
	meta       M
}

func NewCacheBackend[T voxel.Value, M any](c codec.Codec, maxLive int) *CacheBackend[T, M] {
	if maxLive < 1 {
		panic(fmt.Sprintf("store: cache capacity %d must be at least 1", maxLive))
	}
	return &CacheBackend[T, M]{
		codec:   c,
		maxLive: maxLive,
		entries: map[grid.Point3]*cacheEntry[T, M]{},
		recency: list.New(),
	}
}

func (c *CacheBackend[T, M]) Chunk(key grid.Point3) *voxel.Chunk[T, M] {
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if e.live == nil {
		c.thaw(key, e)
		c.evict()
	} else {
		c.recency.MoveToFront(e.elem)
	}
	return e.live
}

func (c *CacheBackend[T, M]) ChunkOrInsert(key grid.Point3, create func() *voxel.Chunk[T, M]) *voxel.Chunk[T, M] {
	if _, ok := c.entries[key]; ok {
		return c.Chunk(key)
	}
	ch := create()
	e := &cacheEntry[T, M]{live: ch}
	e.elem = c.recency.PushFront(key)
	c.entries[key] = e
	c.numLive++
	c.evict()
	return ch
}

func (c *CacheBackend[T, M]) Remove(key grid.Point3) *voxel.Chunk[T, M] {
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if e.live == nil {
		// Hand back a decompressed chunk without touching residency.
		c.thawCold(key, e)
	} else {
		c.recency.Remove(e.elem)
		c.numLive--
	}
	delete(c.entries, key)
	return e.live
}

func (c *CacheBackend[T, M]) ForEachKey(fn func(grid.Point3)) {
	for k := range c.entries {
		fn(k)
	}
}

func (c *CacheBackend[T, M]) Len() int { return len(c.entries) }

// NumLive counts resident decompressed chunks; never exceeds the capacity
// after any operation returns.
func (c *CacheBackend[T, M]) NumLive() int { return c.numLive }

// NumCompressed counts cold entries.
func (c *CacheBackend[T, M]) NumCompressed() int { return len(c.entries) - c.numLive }

// thaw decompresses a cold entry back to live and marks it most recent.
func (c *CacheBackend[T, M]) thaw(key grid.Point3, e *cacheEntry[T, M]) {
	c.thawCold(key, e)
	e.elem = c.recency.PushFront(key)
	c.numLive++
}

// thawCold rebuilds e.live from the compressed buffer. A buffer that fails
// to decompress, or decompresses to the wrong size, is a defect in the
// engine or a corrupted heap; masking it as an ambient chunk would be
// silent data loss, so it panics.
func (c *CacheBackend[T, M]) thawCold(key grid.Point3, e *cacheEntry[T, M]) {
	raw, err := c.codec.Decompress(e.compressed)
	if err != nil {
		panic(fmt.Sprintf("store: chunk %v: decompress: %v", key, err))
	}
	data, ok := voxelsFromBytes[T](raw)
	if !ok || len(data) != e.extent.NumPoints() {
		panic(fmt.Sprintf("store: chunk %v: decompressed %d bytes, want %d voxels",
			key, len(raw), e.extent.NumPoints()))
	}
	e.live = &voxel.Chunk[T, M]{Array: voxel.ArrayFromData(e.extent, data), Meta: e.meta}
	e.compressed = nil
}

// evict compresses LRU live chunks until the live count is within bounds.
func (c *CacheBackend[T, M]) evict() {
	for c.numLive > c.maxLive {
		back := c.recency.Back()
		key := back.Value.(grid.Point3)
		e := c.entries[key]

		e.compressed = c.codec.Compress(voxelsToBytes(e.live.Array.Data()))
		e.extent = e.live.Array.Extent()
		e.meta = e.live.Meta
		e.live = nil
		e.elem = nil

		c.recency.Remove(back)
		c.numLive--
	}
}
