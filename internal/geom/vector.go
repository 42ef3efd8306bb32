package geom

import "math"

// Vector2 is a 2D vector in world units. It is a value type: assigning it
// copies, so two owners never share one position.
type Vector2 struct {
	X float64
	Y float64
}

func Vec(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

func (v Vector2) Add(o Vector2) Vector2   { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2   { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Scale(f float64) Vector2 { return Vector2{v.X * f, v.Y * f} }
func (v Vector2) Length() float64         { return math.Hypot(v.X, v.Y) }
func (v Vector2) IsZero() bool            { return v.X == 0 && v.Y == 0 }
func (v Vector2) Equal(o Vector2) bool    { return v.X == o.X && v.Y == o.Y }

// Normalize returns the unit vector in the direction of v, or the zero vector
// when v has no length.
func (v Vector2) Normalize() Vector2 {
	l := v.Length()
	if l == 0 {
		return Vector2{}
	}
	return Vector2{v.X / l, v.Y / l}
}
