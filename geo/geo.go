package geo

import (
	"fmt"
	"math"
)

// Eps is the default tolerance for fuzzy coordinate comparison.
const Eps = 0.001

// GeometryError reports input geometry that violates an internal
// consistency check, such as two endpoints of one line producing
// different intercepts. It is not recoverable; the reduction that
// produced it must be abandoned.
type GeometryError struct {
	Msg string
}

func (e *GeometryError) Error() string { return "geometry: " + e.Msg }

// NewGeometryError builds a GeometryError from a format string.
func NewGeometryError(format string, args ...interface{}) *GeometryError {
	return &GeometryError{Msg: fmt.Sprintf(format, args...)}
}

// Point is a position on the drawing plane.
type Point struct {
	X, Y float64
}

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Segment is a straight line between two points. The endpoint order is
// the drawing order and carries no geometric meaning; Bounds normalizes
// it away.
type Segment struct {
	Start, End Point
}

// Seg is shorthand for building a segment from raw coordinates.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{Point{x1, y1}, Point{x2, y2}}
}

func (s Segment) Length() float64 { return s.Start.Distance(s.End) }

func (s Segment) Bounds() Rect {
	return Rect{
		MinX: math.Min(s.Start.X, s.End.X),
		MaxX: math.Max(s.Start.X, s.End.X),
		MinY: math.Min(s.Start.Y, s.End.Y),
		MaxY: math.Max(s.Start.Y, s.End.Y),
	}
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MaxX, MinY, MaxY float64
}

// ContainsRect reports whether r fully contains o in both dimensions,
// with eps slack on every comparison.
func (r Rect) ContainsRect(o Rect, eps float64) bool {
	return r.MinX <= o.MinX+eps && r.MaxX+eps >= o.MaxX &&
		r.MinY <= o.MinY+eps && r.MaxY+eps >= o.MaxY
}

// PartiallyOverlaps reports whether a corner of o's span lies inside r's
// span in exactly one dimension. Inclusion in both dimensions at once
// means the spans merely touch end-to-end (the fully-contained cases are
// assumed to have been ruled out already), so that case is deliberately
// not treated as an overlap.
func (r Rect) PartiallyOverlaps(o Rect, eps float64) bool {
	return (r.MinX <= o.MinX+eps && o.MinX <= r.MaxX+eps && r.MinY+eps < o.MinY && o.MinY+eps < r.MaxY) ||
		(r.MinX+eps < o.MinX && o.MinX+eps < r.MaxX && r.MinY <= o.MinY+eps && o.MinY <= r.MaxY+eps) ||
		(r.MinX <= o.MaxX+eps && o.MaxX <= r.MaxX+eps && r.MinY+eps < o.MaxY && o.MaxY+eps < r.MaxY) ||
		(r.MinX+eps < o.MaxX && o.MaxX+eps < r.MaxX && r.MinY <= o.MaxY+eps && o.MaxY <= r.MaxY+eps)
}
