package geom

import "math"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
// Y grows downwards, as on screen.
type Rect struct {
	X, Y float64
	W, H float64
}

// RectCentered returns a w×h rectangle whose center is c.
func RectCentered(c Vector2, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) TopLeft() Vector2     { return Vector2{r.X, r.Y} }
func (r Rect) BottomRight() Vector2 { return Vector2{r.X + r.W, r.Y + r.H} }
func (r Rect) Center() Vector2      { return Vector2{r.X + r.W/2, r.Y + r.H/2} }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Move returns r translated by d.
func (r Rect) Move(d Vector2) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	left := math.Min(r.Left(), o.Left())
	top := math.Min(r.Top(), o.Top())
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// Sweep returns the area covered while moving r by d: the union of r and
// r moved by d.
func (r Rect) Sweep(d Vector2) Rect {
	return r.Union(r.Move(d))
}

// Intersects reports strict overlap. Rectangles that only share an edge do
// not intersect, and empty rectangles never intersect anything.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether p lies inside r (right and bottom edges excluded).
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}
