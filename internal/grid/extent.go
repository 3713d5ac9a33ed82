package grid

// Extent3 is the half-open box [Min, Min+Shape). Shape components are
// never negative; constructors clamp rather than panic.
type Extent3 struct {
	Min   Point3
	Shape Point3
}

func NewExtent3(min, shape Point3) Extent3 {
	return Extent3{Min: min, Shape: shape.Max(Point3{})}
}

// Extent3FromMinMax builds the extent covering [min, max). A max at or
// below min on any axis yields an empty extent.
func Extent3FromMinMax(min, max Point3) Extent3 {
	return NewExtent3(min, max.Sub(min))
}

// Max returns the exclusive upper corner.
func (e Extent3) Max() Point3 { return e.Min.Add(e.Shape) }

func (e Extent3) IsEmpty() bool {
	return e.Shape.X == 0 || e.Shape.Y == 0 || e.Shape.Z == 0
}

func (e Extent3) NumPoints() int {
	return int(e.Shape.X) * int(e.Shape.Y) * int(e.Shape.Z)
}

func (e Extent3) Contains(p Point3) bool {
	max := e.Max()
	return p.X >= e.Min.X && p.X < max.X &&
		p.Y >= e.Min.Y && p.Y < max.Y &&
		p.Z >= e.Min.Z && p.Z < max.Z
}

func (e Extent3) ContainsExtent(o Extent3) bool {
	if o.IsEmpty() {
		return true
	}
	return e.Contains(o.Min) && e.Contains(o.Max().AddScalar(-1))
}

func (e Extent3) Intersection(o Extent3) Extent3 {
	min := e.Min.Max(o.Min)
	max := e.Max().Min(o.Max())
	return Extent3FromMinMax(min, max)
}

func (e Extent3) Intersects(o Extent3) bool {
	return !e.Intersection(o).IsEmpty()
}

// ForEach visits every point, x fastest, then y, then z.
func (e Extent3) ForEach(fn func(Point3)) {
	max := e.Max()
	for z := e.Min.Z; z < max.Z; z++ {
		for y := e.Min.Y; y < max.Y; y++ {
			for x := e.Min.X; x < max.X; x++ {
				fn(Point3{X: x, Y: y, Z: z})
			}
		}
	}
}

// Extent2 is the 2D counterpart of Extent3 on the X/Z plane.
type Extent2 struct {
	Min   Point2
	Shape Point2
}

func NewExtent2(min, shape Point2) Extent2 {
	return Extent2{Min: min, Shape: shape.Max(Point2{})}
}

func Extent2FromMinMax(min, max Point2) Extent2 {
	return NewExtent2(min, max.Sub(min))
}

func (e Extent2) Max() Point2 { return e.Min.Add(e.Shape) }

func (e Extent2) IsEmpty() bool { return e.Shape.X == 0 || e.Shape.Z == 0 }

func (e Extent2) NumPoints() int { return int(e.Shape.X) * int(e.Shape.Z) }

func (e Extent2) Contains(p Point2) bool {
	max := e.Max()
	return p.X >= e.Min.X && p.X < max.X && p.Z >= e.Min.Z && p.Z < max.Z
}

func (e Extent2) Intersection(o Extent2) Extent2 {
	return Extent2FromMinMax(e.Min.Max(o.Min), e.Max().Min(o.Max()))
}

// ForEach visits every point, x fastest, then z.
func (e Extent2) ForEach(fn func(Point2)) {
	max := e.Max()
	for z := e.Min.Z; z < max.Z; z++ {
		for x := e.Min.X; x < max.X; x++ {
			fn(Point2{X: x, Z: z})
		}
	}
}

// WithY lifts the extent into 3D as a slab of the given height range
// [y, y+height).
func (e Extent2) WithY(y, height int32) Extent3 {
	return NewExtent3(e.Min.WithY(y), Point3{X: e.Shape.X, Y: height, Z: e.Shape.Z})
}
