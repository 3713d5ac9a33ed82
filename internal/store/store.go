// Package store maps chunk keys to chunks through interchangeable backends:
// a plain in-memory map, and a compressed cache that bounds the number of
// resident decompressed chunks.
package store

import (
	"voxelfield.dev/internal/grid"
	"voxelfield.dev/internal/voxel"
)

// Backend is the capability set a chunk storage backend provides. A nil
// chunk means the key is absent; absence is never an error.
type Backend[T voxel.Value, M any] interface {
	// Chunk returns the chunk at key, or nil. Backends may mutate internal
	// state (recency, residency) even on this read path.
	Chunk(key grid.Point3) *voxel.Chunk[T, M]
	// ChunkOrInsert returns the chunk at key, calling create to make one
	// when the key is absent.
	ChunkOrInsert(key grid.Point3, create func() *voxel.Chunk[T, M]) *voxel.Chunk[T, M]
	// Remove deletes the key and returns the owned chunk, or nil.
	Remove(key grid.Point3) *voxel.Chunk[T, M]
	// ForEachKey visits every occupied key in unspecified order.
	ForEachKey(fn func(grid.Point3))
	// Len counts occupied keys.
	Len() int
}

// Builder carries the per-store configuration: the fixed chunk shape, the
// ambient value returned for never-written voxels, and an optional factory
// for chunk metadata.
type Builder[T voxel.Value, M any] struct {
	ChunkShape grid.Point3
	Ambient    T
	// NewMeta seeds the metadata of freshly created chunks. Nil means the
	// zero value of M.
	NewMeta func() M
}

// Build validates the chunk shape (power-of-two components, panics
// otherwise) and wraps the backend into a Store.
func (b Builder[T, M]) Build(backend Backend[T, M]) *Store[T, M] {
	return &Store[T, M]{
		indexer: voxel.NewIndexer(b.ChunkShape),
		ambient: b.Ambient,
		newMeta: b.NewMeta,
		backend: backend,
	}
}

// Store is one level of voxel storage: an indexer, an ambient value, and a
// backend. It holds no locks; the caller serializes access (single writer,
// shared readers).
type Store[T voxel.Value, M any] struct {
	indexer voxel.Indexer
	ambient T
	newMeta func() M
	backend Backend[T, M]
}

func (s *Store[T, M]) Indexer() voxel.Indexer { return s.indexer }

// Ambient is the implicit value of every voxel in chunks that were never
// materialized.
func (s *Store[T, M]) Ambient() T { return s.ambient }

// Chunk returns the chunk at key, or nil when the key is absent.
func (s *Store[T, M]) Chunk(key grid.Point3) *voxel.Chunk[T, M] {
	return s.backend.Chunk(key)
}

// ChunkOrInsertAmbient returns the chunk at key, creating an ambient-filled
// chunk there first when the key is absent. key must be chunk-aligned.
func (s *Store[T, M]) ChunkOrInsertAmbient(key grid.Point3) *voxel.Chunk[T, M] {
	return s.backend.ChunkOrInsert(key, func() *voxel.Chunk[T, M] {
		var meta M
		if s.newMeta != nil {
			meta = s.newMeta()
		}
		return voxel.NewChunk(s.indexer.ExtentForChunkKey(key), s.ambient, meta)
	})
}

// RemoveChunk deletes key and returns the owned chunk, or nil.
func (s *Store[T, M]) RemoveChunk(key grid.Point3) *voxel.Chunk[T, M] {
	return s.backend.Remove(key)
}

func (s *Store[T, M]) ForEachChunkKey(fn func(grid.Point3)) {
	s.backend.ForEachKey(fn)
}

func (s *Store[T, M]) NumChunks() int { return s.backend.Len() }

// BoundingExtent is the smallest extent covering every occupied chunk, or
// the empty extent when no chunk exists.
func (s *Store[T, M]) BoundingExtent() grid.Extent3 {
	first := true
	var min, max grid.Point3
	s.backend.ForEachKey(func(k grid.Point3) {
		if first {
			min, max = k, k
			first = false
			return
		}
		min = min.Min(k)
		max = max.Max(k)
	})
	if first {
		return grid.Extent3{}
	}
	return grid.Extent3FromMinMax(min, max.Add(s.indexer.ChunkShape()))
}

// Get reads one voxel, returning the ambient value when its chunk does not
// exist.
func (s *Store[T, M]) Get(p grid.Point3) T {
	ch := s.backend.Chunk(s.indexer.ChunkKeyContainingPoint(p))
	if ch == nil {
		return s.ambient
	}
	return ch.Array.Get(p)
}

// Set writes one voxel, materializing its chunk if needed.
func (s *Store[T, M]) Set(p grid.Point3, v T) {
	key := s.indexer.ChunkKeyContainingPoint(p)
	s.ChunkOrInsertAmbient(key).Array.Set(p, v)
}
