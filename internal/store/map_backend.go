package store

import (
	"voxelfield.dev/internal/grid"
	"voxelfield.dev/internal/voxel"
)

// MapBackend keeps every chunk decompressed in a plain map. Fast, no
// capacity bound; memory grows with the occupied chunk count.
type MapBackend[T voxel.Value, M any] struct {
	chunks map[grid.Point3]*voxel.Chunk[T, M]
}

func NewMapBackend[T voxel.Value, M any]() *MapBackend[T, M] {
	return &MapBackend[T, M]{chunks: map[grid.Point3]*voxel.Chunk[T, M]{}}
}

func (m *MapBackend[T, M]) Chunk(key grid.Point3) *voxel.Chunk[T, M] {
	return m.chunks[key]
}

func (m *MapBackend[T, M]) ChunkOrInsert(key grid.Point3, create func() *voxel.Chunk[T, M]) *voxel.Chunk[T, M] {
	if ch, ok := m.chunks[key]; ok {
		return ch
	}
	ch := create()
	m.chunks[key] = ch
	return ch
}

func (m *MapBackend[T, M]) Remove(key grid.Point3) *voxel.Chunk[T, M] {
	ch, ok := m.chunks[key]
	if !ok {
		return nil
	}
	delete(m.chunks, key)
	return ch
}

func (m *MapBackend[T, M]) ForEachKey(fn func(grid.Point3)) {
	for k := range m.chunks {
		fn(k)
	}
}

func (m *MapBackend[T, M]) Len() int { return len(m.chunks) }
