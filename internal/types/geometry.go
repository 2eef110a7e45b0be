package types

import "fmt"

// Point is a 2D coordinate in canvas pixels
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p translated by o
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the vector from o to p
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Size is a width/height pair in pixels
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Rect represents pixel bounds on the canvas
type Rect struct {
	X      float64 `json:"x"`      // Left edge
	Y      float64 `json:"y"`      // Top edge
	Width  float64 `json:"width"`  // Width in pixels
	Height float64 `json:"height"` // Height in pixels
}

// NewRect builds a Rect from an origin and a size
func NewRect(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the top-left corner
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rect dimensions
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Center returns the center point of a Rect
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if a point is inside the rect (edges inclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Overlap returns the area of intersection between two Rects
func (r Rect) Overlap(other Rect) float64 {
	left := max(r.X, other.X)
	right := min(r.X+r.Width, other.X+other.Width)
	top := max(r.Y, other.Y)
	bottom := min(r.Y+r.Height, other.Y+other.Height)

	if left >= right || top >= bottom {
		return 0
	}
	return (right - left) * (bottom - top)
}

// Intersects reports whether two rects share at least one point.
// Touching edges count as an intersection.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width && other.X <= r.X+r.Width &&
		r.Y <= other.Y+other.Height && other.Y <= r.Y+r.Height
}

// Translate returns the rect moved by d
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("%g,%g %gx%g", r.X, r.Y, r.Width, r.Height)
}

// Intersects is the geometry test used for drop-target hit testing
func Intersects(a, b Rect) bool {
	return a.Intersects(b)
}

// RedrawResult reports what was repainted when an element moved
type RedrawResult struct {
	Element     string   `json:"element"`
	Connections []string `json:"connections"` // ids of connections attached to the element
	Moved       []string `json:"moved"`       // element ids repositioned (the element plus any nested members)
}

// ConnectionEnd selects connections by which end an element is attached to
type ConnectionEnd int

const (
	ConnectionSource ConnectionEnd = iota // element is the connection's source
	ConnectionTarget                      // element is the connection's target
)

// String returns the string representation of a ConnectionEnd
func (c ConnectionEnd) String() string {
	if c == ConnectionTarget {
		return "target"
	}
	return "source"
}
