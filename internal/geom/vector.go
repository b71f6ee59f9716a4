package geom

import (
	"fmt"
	"math"
)

type Vector2 struct {
	X, Y float64
}

var (
	Zero  = Vector2{0, 0}
	One   = Vector2{1, 1}
	Up    = Vector2{0, 1}
	Down  = Vector2{0, -1}
	Left  = Vector2{-1, 0}
	Right = Vector2{1, 0}
)

func Vec(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}
func (v Vector2) Neg() Vector2              { return Vector2{-v.X, -v.Y} }
func (v Vector2) Dot(o Vector2) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vector2) MagnitudeSquared() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSquared())
}

// Div divides both components by s.
func (v Vector2) Div(s float64) (Vector2, error) {
	if s == 0 {
		return Vector2{}, ErrDivideByZero
	}
	return Vector2{v.X / s, v.Y / s}, nil
}

// Normalize returns the unit vector in the direction of v.
// The zero vector has no direction and yields ErrZeroVector.
func (v Vector2) Normalize() (Vector2, error) {
	m := v.Magnitude()
	if m == 0 {
		return Vector2{}, ErrZeroVector
	}
	return Vector2{v.X / m, v.Y / m}, nil
}

// MustNormalize is Normalize for callers that have already excluded the zero
// vector. It panics on a zero-length input.
func (v Vector2) MustNormalize() Vector2 {
	n, err := v.Normalize()
	if err != nil {
		panic(err)
	}
	return n
}

func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
