// Package terrain is a demo producer for the storage engine: it fills the
// finest pyramid level with perlin-noise heightmap terrain and supplies the
// material-aware downsampler used to build the coarser levels.
package terrain

import (
	"voxelfield.dev/internal/pyramid"
)

// Material is the voxel type of the demo field.
type Material = uint16

// Material palette. Zero is the ambient value of every store.
const (
	Air Material = iota
	Water
	Sand
	Grass
	Rock
	Snow
)

// Field is the concrete pyramid type the demo binaries and the transport
// share.
type Field = pyramid.Pyramid[Material, struct{}]
