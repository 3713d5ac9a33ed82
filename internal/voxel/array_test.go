package voxel

import (
	"testing"

	"voxelfield.dev/internal/grid"
)

func TestArray_GetSetRowMajor(t *testing.T) {
	ext := grid.NewExtent3(grid.Pt3(-4, 0, 4), grid.Splat3(4))
	a := NewArray[uint16](ext, 0)

	if got := a.Index(ext.Min); got != 0 {
		t.Fatalf("min corner index: got %d", got)
	}
	if got := a.Index(grid.Pt3(-3, 0, 4)); got != 1 {
		t.Fatalf("x must vary fastest: got %d", got)
	}
	if got := a.Index(grid.Pt3(-4, 1, 4)); got != 4 {
		t.Fatalf("y stride: got %d", got)
	}
	if got := a.Index(grid.Pt3(-4, 0, 5)); got != 16 {
		t.Fatalf("z stride: got %d", got)
	}

	p := grid.Pt3(-2, 3, 6)
	a.Set(p, 42)
	if got := a.Get(p); got != 42 {
		t.Fatalf("Get after Set: got %d", got)
	}
}

func TestArray_NewWithFill(t *testing.T) {
	ext := grid.NewExtent3(grid.Pt3(0, 0, 0), grid.Splat3(2))
	a := NewArray[uint16](ext, 7)
	for _, v := range a.Data() {
		if v != 7 {
			t.Fatalf("fill value missing: got %d", v)
		}
	}
}

func TestArray_FillExtentClipsToArray(t *testing.T) {
	ext := grid.NewExtent3(grid.Pt3(0, 0, 0), grid.Splat3(4))
	a := NewArray[uint16](ext, 0)

	// Half in, half out.
	a.FillExtent(grid.NewExtent3(grid.Pt3(2, 2, 2), grid.Splat3(4)), 9)

	want9 := 0
	ext.ForEach(func(p grid.Point3) {
		in := p.X >= 2 && p.Y >= 2 && p.Z >= 2
		got := a.Get(p)
		if in && got != 9 {
			t.Fatalf("point %v should be filled", p)
		}
		if !in && got != 0 {
			t.Fatalf("point %v should be untouched", p)
		}
		if got == 9 {
			want9++
		}
	})
	if want9 != 8 {
		t.Fatalf("filled %d points, want 8", want9)
	}

	// Fully outside: no-op.
	a.FillExtent(grid.NewExtent3(grid.Pt3(100, 0, 0), grid.Splat3(2)), 3)
	for _, v := range a.Data() {
		if v == 3 {
			t.Fatalf("out-of-bounds fill leaked into the array")
		}
	}
}

func TestArrayFromData_LengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on bad data length")
		}
	}()
	ArrayFromData[uint16](grid.NewExtent3(grid.Pt3(0, 0, 0), grid.Splat3(2)), make([]uint16, 7))
}
