package pyramid

import (
	"testing"

	"voxelfield.dev/internal/grid"
)

func TestForSourceChunk_OneLevelUp(t *testing.T) {
	chunkShape := grid.Splat3(16)

	d := ForSourceChunk(chunkShape, chunkShape, 1)
	want := Destination{
		DstChunkKey: grid.Splat3(0),
		DstOffset:   grid.Splat3(8), // chunkShape / 2
	}
	if d != want {
		t.Fatalf("src=shape: got %+v want %+v", d, want)
	}

	d = ForSourceChunk(chunkShape, chunkShape.MulScalar(2), 1)
	want = Destination{
		DstChunkKey: chunkShape,
		DstOffset:   grid.Splat3(0),
	}
	if d != want {
		t.Fatalf("src=2*shape: got %+v want %+v", d, want)
	}
}

func TestForSourceChunk_TwoLevelsUp(t *testing.T) {
	chunkShape := grid.Splat3(16)

	d := ForSourceChunk(chunkShape, chunkShape.MulScalar(3), 2)
	want := Destination{
		DstChunkKey: grid.Splat3(0),
		DstOffset:   grid.Splat3(12), // 3 * chunkShape / 4
	}
	if d != want {
		t.Fatalf("src=3*shape: got %+v want %+v", d, want)
	}

	d = ForSourceChunk(chunkShape, chunkShape.MulScalar(4), 2)
	want = Destination{
		DstChunkKey: chunkShape,
		DstOffset:   grid.Splat3(0),
	}
	if d != want {
		t.Fatalf("src=4*shape: got %+v want %+v", d, want)
	}
}

func TestForSourceChunk_NegativeKeys(t *testing.T) {
	chunkShape := grid.Splat3(16)

	// Chunk [-16, 0) maps into destination chunk [-16, 0) at half
	// resolution, upper half of the block.
	d := ForSourceChunk(chunkShape, grid.Splat3(-16), 1)
	want := Destination{
		DstChunkKey: grid.Splat3(-16),
		DstOffset:   grid.Splat3(8),
	}
	if d != want {
		t.Fatalf("src=-shape: got %+v want %+v", d, want)
	}

	d = ForSourceChunk(chunkShape, grid.Splat3(-32), 1)
	want = Destination{
		DstChunkKey: grid.Splat3(-16),
		DstOffset:   grid.Splat3(0),
	}
	if d != want {
		t.Fatalf("src=-2*shape: got %+v want %+v", d, want)
	}
}

func TestForSourceChunk_AnisotropicShape(t *testing.T) {
	chunkShape := grid.Pt3(16, 64, 16)
	src := grid.Pt3(16, 64, 32)

	d := ForSourceChunk(chunkShape, src, 1)
	want := Destination{
		DstChunkKey: grid.Pt3(0, 0, 16),
		DstOffset:   grid.Pt3(8, 32, 0),
	}
	if d != want {
		t.Fatalf("got %+v want %+v", d, want)
	}
}
