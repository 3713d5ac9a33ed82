package store

import (
	"unsafe"

	"voxelfield.dev/internal/voxel"
)

// The compressed tier is in-memory only, so voxel slices are reinterpreted
// as raw bytes in native byte order instead of going through an encoder.

func voxelsToBytes[T voxel.Value](v []T) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*int(unsafe.Sizeof(v[0])))
}

// voxelsFromBytes copies b into a fresh voxel slice. Returns false when the
// byte count is not a whole number of voxels.
func voxelsFromBytes[T voxel.Value](b []byte) ([]T, bool) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(b)%size != 0 {
		return nil, false
	}
	out := make([]T, len(b)/size)
	copy(voxelsToBytes(out), b)
	return out, true
}
