package common

import "github.com/jakecoffman/cp"

// Vec is a point or offset in world units.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Rect is an axis-aligned rectangle in world units. X/Y is the top-left
// corner and Y grows downward, as on screen.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

func (r Rect) Min() Vec {
	return Vec{X: r.X, Y: r.Y}
}

func (r Rect) Center() Vec {
	return Vec{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether r has no area. NaN sizes count as empty.
func (r Rect) Empty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// Finite reports whether every coordinate of r is a finite number.
func (r Rect) Finite() bool {
	return Finite(r.X) && Finite(r.Y) && Finite(r.Width) && Finite(r.Height)
}

// BB returns r as a chipmunk bounding box. B holds the top edge since world
// space is y-down.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}

// Intersects reports whether r and other overlap. Rectangles whose edges
// only touch also intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.BB().Intersects(other.BB())
}

// Contains reports whether p lies inside r or on its edge.
func (r Rect) Contains(p Vec) bool {
	return r.BB().ContainsVect(cp.Vector{X: p.X, Y: p.Y})
}

// Translate returns r moved by -offset, turning world coordinates into
// camera-relative ones.
func (r Rect) Translate(offset Vec) Rect {
	return Rect{X: r.X - offset.X, Y: r.Y - offset.Y, Width: r.Width, Height: r.Height}
}
