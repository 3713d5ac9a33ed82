package store

import (
	"testing"

	"voxelfield.dev/internal/codec"
	"voxelfield.dev/internal/grid"
)

func cacheStore(t *testing.T, c codec.Codec, maxLive int) (*Store[uint16, testMeta], *CacheBackend[uint16, testMeta]) {
	t.Helper()
	backend := NewCacheBackend[uint16, testMeta](c, maxLive)
	return testBuilder().Build(backend), backend
}

func TestCache_LiveBoundInvariant(t *testing.T) {
	s, backend := cacheStore(t, codec.NewZstd(), 3)

	// Insert far more chunks than the bound and mutate as we go.
	for i := int32(0); i < 20; i++ {
		key := grid.Pt3(i*16, 0, 0)
		ch := s.ChunkOrInsertAmbient(key)
		ch.Array.Set(key, uint16(i))
		if backend.NumLive() > 3 {
			t.Fatalf("live count %d exceeds bound after insert %d", backend.NumLive(), i)
		}
	}
	if backend.Len() != 20 {
		t.Fatalf("all chunks must stay accessible, have %d", backend.Len())
	}
	if backend.NumCompressed() != 17 {
		t.Fatalf("expected 17 cold chunks, got %d", backend.NumCompressed())
	}
}

func TestCache_EvictionRoundTripsData(t *testing.T) {
	s, backend := cacheStore(t, codec.NewZstd(), 1)

	// Write a recognizable pattern, then force the chunk cold by touching
	// other keys.
	first := grid.Pt3(0, 0, 0)
	ch := s.ChunkOrInsertAmbient(first)
	for i := range ch.Array.Data() {
		ch.Array.Data()[i] = uint16(i)
	}
	ch.Meta.Tag = "pattern"

	s.ChunkOrInsertAmbient(grid.Pt3(16, 0, 0))
	s.ChunkOrInsertAmbient(grid.Pt3(32, 0, 0))

	if backend.NumCompressed() != 2 {
		t.Fatalf("expected 2 cold chunks, got %d", backend.NumCompressed())
	}

	back := s.Chunk(first)
	if back == nil {
		t.Fatalf("cold chunk must be readable")
	}
	for i, v := range back.Array.Data() {
		if v != uint16(i) {
			t.Fatalf("voxel %d corrupted after thaw: got %d", i, v)
		}
	}
	if back.Meta.Tag != "pattern" {
		t.Fatalf("metadata lost across eviction: %+v", back.Meta)
	}
	if backend.NumLive() != 1 {
		t.Fatalf("thaw must not break the bound, live=%d", backend.NumLive())
	}
}

func TestCache_LRUOrderOnEviction(t *testing.T) {
	s, backend := cacheStore(t, codec.S2{}, 2)

	a := grid.Pt3(0, 0, 0)
	b := grid.Pt3(16, 0, 0)
	s.ChunkOrInsertAmbient(a)
	s.ChunkOrInsertAmbient(b)

	// Touch a so b becomes least recent, then insert a third chunk.
	s.Chunk(a)
	s.ChunkOrInsertAmbient(grid.Pt3(32, 0, 0))

	if !backend.isLive(a) {
		t.Fatalf("recently used chunk was evicted")
	}
	if backend.isLive(b) {
		t.Fatalf("least recently used chunk should have been compressed")
	}
}

func TestCache_ReadAbsentDoesNotCreate(t *testing.T) {
	s, backend := cacheStore(t, codec.S2{}, 2)
	if s.Chunk(grid.Pt3(0, 0, 0)) != nil {
		t.Fatalf("absent key must read as nil")
	}
	if backend.Len() != 0 {
		t.Fatalf("read must not create entries")
	}
}

func TestCache_RemoveColdChunkDecompresses(t *testing.T) {
	s, backend := cacheStore(t, codec.NewZstd(), 1)

	key := grid.Pt3(0, 0, 0)
	s.Set(key, 321)
	s.ChunkOrInsertAmbient(grid.Pt3(16, 0, 0)) // push key cold

	if backend.isLive(key) {
		t.Fatalf("setup: chunk should be cold")
	}
	owned := s.RemoveChunk(key)
	if owned == nil || owned.Array.Get(key) != 321 {
		t.Fatalf("remove must return the decompressed owned chunk")
	}
	if backend.Len() != 1 {
		t.Fatalf("entry must be gone, have %d", backend.Len())
	}
	if backend.NumLive() != 1 {
		t.Fatalf("removing a cold chunk must not disturb residency, live=%d", backend.NumLive())
	}
}

func TestCache_CorruptBufferPanics(t *testing.T) {
	s, backend := cacheStore(t, codec.NewZstd(), 1)

	key := grid.Pt3(0, 0, 0)
	s.ChunkOrInsertAmbient(key)
	s.ChunkOrInsertAmbient(grid.Pt3(16, 0, 0))

	// Corrupt the cold buffer behind the store's back.
	e := backend.entries[key]
	if e.live != nil {
		t.Fatalf("setup: chunk should be cold")
	}
	e.compressed = []byte("garbage")

	defer func() {
		if recover() == nil {
			t.Fatalf("corrupt chunk must panic, not read as ambient")
		}
	}()
	s.Chunk(key)
}

func TestCache_CapacityBelowOnePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("capacity 0 must panic")
		}
	}()
	NewCacheBackend[uint16, testMeta](codec.S2{}, 0)
}

// isLive reports whether key is resident decompressed. Test helper.
func (c *CacheBackend[T, M]) isLive(key grid.Point3) bool {
	e, ok := c.entries[key]
	return ok && e.live != nil
}
