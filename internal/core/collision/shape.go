// Package collision implements discrete per-tick overlap testing with
// persistent per-pair state: a pair of colliders fires an entry event on the
// first intersecting tick, update events while the overlap continues, and an
// exit event on the first tick without contact.
package collision

import "github.com/aethersim/aether/internal/core/geom"

type ShapeKind uint8

const (
	ShapeRectangle ShapeKind = iota
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Shape is a closed 2D shape union. Position is the min corner for
// rectangles and the center for circles. The offset aligns the shape to an
// owner transform: owners place a shape at world + Offset().
type Shape struct {
	Kind     ShapeKind
	Position geom.Vector2
	Origin   geom.Vector2
	Width    float64
	Height   float64
	Radius   float64

	offset geom.Vector2
}

// NewRectangle builds a rectangle shape. Origin is a fractional anchor:
// (0,0) anchors the owner at the min corner, (0.5,0.5) at the center.
func NewRectangle(pos, origin geom.Vector2, width, height float64) *Shape {
	return &Shape{
		Kind:     ShapeRectangle,
		Position: pos,
		Origin:   origin,
		Width:    width,
		Height:   height,
		offset:   geom.Vector2{X: -origin.X * width, Y: -origin.Y * height},
	}
}

// NewCircle builds a circle shape. Origin (0.5,0.5) centers the circle on
// the owner.
func NewCircle(pos, origin geom.Vector2, radius float64) *Shape {
	d := radius * 2
	return &Shape{
		Kind:     ShapeCircle,
		Position: pos,
		Origin:   origin,
		Radius:   radius,
		offset:   geom.Vector2{X: (0.5 - origin.X) * d, Y: (0.5 - origin.Y) * d},
	}
}

func (s *Shape) Offset() geom.Vector2 {
	return s.offset
}

// bounds returns the axis-aligned extent normalized for negative width or
// height.
func (s *Shape) bounds() (left, top, right, bottom float64) {
	left, right = s.Position.X, s.Position.X+s.Width
	if right < left {
		left, right = right, left
	}
	top, bottom = s.Position.Y, s.Position.Y+s.Height
	if bottom < top {
		top, bottom = bottom, top
	}
	return left, top, right, bottom
}

func (s *Shape) contains(x, y float64) bool {
	left, top, right, bottom := s.bounds()
	return x >= left && x <= right && y >= top && y <= bottom
}

// Intersects tests s against other, dispatching over the closed kind pair.
//
// Known limitation, kept on purpose: the rectangle/rectangle case only tests
// the other rectangle's corners against this one. When the other rectangle
// fully contains this one, none of its corners lie inside and no
// intersection is reported. Callers that care must test in the opposite
// order. See the regression test before changing this.
func (s *Shape) Intersects(other *Shape) bool {
	switch {
	case s.Kind == ShapeRectangle && other.Kind == ShapeRectangle:
		return s.intersectsRect(other)
	case s.Kind == ShapeCircle && other.Kind == ShapeCircle:
		return s.intersectsCircle(other)
	case s.Kind == ShapeRectangle && other.Kind == ShapeCircle:
		return rectCircle(s, other)
	case s.Kind == ShapeCircle && other.Kind == ShapeRectangle:
		return rectCircle(other, s)
	default:
		return false
	}
}

func (s *Shape) intersectsRect(other *Shape) bool {
	left, top, right, bottom := other.bounds()
	return s.contains(left, top) ||
		s.contains(right, top) ||
		s.contains(left, bottom) ||
		s.contains(right, bottom)
}

func (s *Shape) intersectsCircle(other *Shape) bool {
	return geom.Distance2(s.Position, other.Position) < s.Radius+other.Radius
}

// rectCircle clamps the circle center to the rectangle bounds and compares
// the clamped distance to the radius.
func rectCircle(rect, circle *Shape) bool {
	left, top, right, bottom := rect.bounds()
	cx := clamp(circle.Position.X, left, right)
	cy := clamp(circle.Position.Y, top, bottom)
	return geom.Distance2(circle.Position, geom.Vector2{X: cx, Y: cy}) < circle.Radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
