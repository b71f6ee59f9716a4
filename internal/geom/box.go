package geom

// BoundingBox is an axis-aligned region described by its center and half
// extents. Subdivisions keep the aspect ratio of the root, so a square
// viewport yields square nodes.
type BoundingBox struct {
	Center   Vector2
	HalfSize Vector2
}

func NewBoundingBox(center, halfSize Vector2) BoundingBox {
	return BoundingBox{Center: center, HalfSize: halfSize}
}

// BoxFromExtent returns the box covering [0, extent.X] x [0, extent.Y].
func BoxFromExtent(extent Vector2) BoundingBox {
	half := extent.Scale(0.5)
	return BoundingBox{Center: half, HalfSize: half}
}

func (b BoundingBox) Min() Vector2 { return b.Center.Sub(b.HalfSize) }
func (b BoundingBox) Max() Vector2 { return b.Center.Add(b.HalfSize) }

// Width is the side length along X.
func (b BoundingBox) Width() float64 { return 2 * b.HalfSize.X }

// Contains reports whether p lies inside b. Points on an edge are contained.
func (b BoundingBox) Contains(p Vector2) bool {
	return p.X >= b.Center.X-b.HalfSize.X && p.X <= b.Center.X+b.HalfSize.X &&
		p.Y >= b.Center.Y-b.HalfSize.Y && p.Y <= b.Center.Y+b.HalfSize.Y
}

// Intersects reports whether the interiors of b and o overlap. Boxes that only
// share an edge do not intersect.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Center.X-b.HalfSize.X < o.Center.X+o.HalfSize.X &&
		b.Center.X+b.HalfSize.X > o.Center.X-o.HalfSize.X &&
		b.Center.Y-b.HalfSize.Y < o.Center.Y+o.HalfSize.Y &&
		b.Center.Y+b.HalfSize.Y > o.Center.Y-o.HalfSize.Y
}

// Quadrants splits b into four boxes of half the size, ordered top-left,
// top-right, bottom-left, bottom-right. Top is the smaller Y (screen space).
func (b BoundingBox) Quadrants() [4]BoundingBox {
	h := b.HalfSize.Scale(0.5)
	c := b.Center
	return [4]BoundingBox{
		{Center: Vector2{c.X - h.X, c.Y - h.Y}, HalfSize: h},
		{Center: Vector2{c.X + h.X, c.Y - h.Y}, HalfSize: h},
		{Center: Vector2{c.X - h.X, c.Y + h.Y}, HalfSize: h},
		{Center: Vector2{c.X + h.X, c.Y + h.Y}, HalfSize: h},
	}
}
