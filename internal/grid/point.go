// Package grid holds the integer geometry used by the chunked voxel stores:
// fixed-width points and half-open axis-aligned extents.
package grid

// Point3 is a 3-component int32 vector. All arithmetic is component-wise.
// Overflow wraps like int32; keeping coordinates in range is a caller
// precondition, none of these operations check it.
type Point3 struct {
	X, Y, Z int32
}

func Pt3(x, y, z int32) Point3 { return Point3{X: x, Y: y, Z: z} }

// Splat3 returns a point with every component set to v.
func Splat3(v int32) Point3 { return Point3{X: v, Y: v, Z: v} }

func (p Point3) Add(q Point3) Point3 { return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }
func (p Point3) Sub(q Point3) Point3 { return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }
func (p Point3) Mul(q Point3) Point3 { return Point3{p.X * q.X, p.Y * q.Y, p.Z * q.Z} }
func (p Point3) Div(q Point3) Point3 { return Point3{p.X / q.X, p.Y / q.Y, p.Z / q.Z} }

func (p Point3) AddScalar(v int32) Point3 { return p.Add(Splat3(v)) }
func (p Point3) MulScalar(v int32) Point3 { return p.Mul(Splat3(v)) }

// Mod is the component-wise Euclidean remainder: the result is in [0, q)
// for q > 0 even when p is negative. Chunk-key arithmetic on negative
// coordinates depends on this, so it is not the truncating Go % operator.
func (p Point3) Mod(q Point3) Point3 {
	return Point3{modInt32(p.X, q.X), modInt32(p.Y, q.Y), modInt32(p.Z, q.Z)}
}

// Shl shifts each component left by the matching component of q.
func (p Point3) Shl(q Point3) Point3 {
	return Point3{p.X << uint(q.X), p.Y << uint(q.Y), p.Z << uint(q.Z)}
}

// Shr shifts each component right by the matching component of q.
// The shift is arithmetic: negative components round toward negative
// infinity, matching two's-complement division by a power of two.
func (p Point3) Shr(q Point3) Point3 {
	return Point3{p.X >> uint(q.X), p.Y >> uint(q.Y), p.Z >> uint(q.Z)}
}

func (p Point3) ShlScalar(n int) Point3 { return p.Shl(Splat3(int32(n))) }
func (p Point3) ShrScalar(n int) Point3 { return p.Shr(Splat3(int32(n))) }

func (p Point3) Min(q Point3) Point3 {
	return Point3{minInt32(p.X, q.X), minInt32(p.Y, q.Y), minInt32(p.Z, q.Z)}
}

func (p Point3) Max(q Point3) Point3 {
	return Point3{maxInt32(p.X, q.X), maxInt32(p.Y, q.Y), maxInt32(p.Z, q.Z)}
}

// Map applies f to every component.
func (p Point3) Map(f func(int32) int32) Point3 {
	return Point3{f(p.X), f(p.Y), f(p.Z)}
}

// XZ projects onto the horizontal plane.
func (p Point3) XZ() Point2 { return Point2{X: p.X, Z: p.Z} }

// Point2 is the 2-component counterpart of Point3, addressed as X, Z to
// match the horizontal plane of a 3D field.
type Point2 struct {
	X, Z int32
}

func Pt2(x, z int32) Point2 { return Point2{X: x, Z: z} }

func Splat2(v int32) Point2 { return Point2{X: v, Z: v} }

func (p Point2) Add(q Point2) Point2 { return Point2{p.X + q.X, p.Z + q.Z} }
func (p Point2) Sub(q Point2) Point2 { return Point2{p.X - q.X, p.Z - q.Z} }
func (p Point2) Mul(q Point2) Point2 { return Point2{p.X * q.X, p.Z * q.Z} }
func (p Point2) Div(q Point2) Point2 { return Point2{p.X / q.X, p.Z / q.Z} }

func (p Point2) Mod(q Point2) Point2 {
	return Point2{modInt32(p.X, q.X), modInt32(p.Z, q.Z)}
}

func (p Point2) Shl(q Point2) Point2 { return Point2{p.X << uint(q.X), p.Z << uint(q.Z)} }
func (p Point2) Shr(q Point2) Point2 { return Point2{p.X >> uint(q.X), p.Z >> uint(q.Z)} }

func (p Point2) ShlScalar(n int) Point2 { return p.Shl(Splat2(int32(n))) }
func (p Point2) ShrScalar(n int) Point2 { return p.Shr(Splat2(int32(n))) }

func (p Point2) Min(q Point2) Point2 {
	return Point2{minInt32(p.X, q.X), minInt32(p.Z, q.Z)}
}

func (p Point2) Max(q Point2) Point2 {
	return Point2{maxInt32(p.X, q.X), maxInt32(p.Z, q.Z)}
}

func (p Point2) Map(f func(int32) int32) Point2 { return Point2{f(p.X), f(p.Z)} }

// WithY lifts the point into 3D at the given height.
func (p Point2) WithY(y int32) Point3 { return Point3{X: p.X, Y: y, Z: p.Z} }

func modInt32(a, b int32) int32 {
	// b > 0
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
