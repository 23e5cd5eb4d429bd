// Package pathdata models SVG path-data strings as ordered sequences of
// typed drawing primitives with absolute coordinates.
package pathdata

import (
	"fmt"
	"math"
	"strings"

	"github.com/svgkit/svgkit/geo"
)

// curveSteps is the polyline resolution used for curve length estimates.
const curveSteps = 32

// Primitive is one drawing command of a path. Every primitive knows the
// pen position it ends at and the length of ink it draws (zero for
// Move).
type Primitive interface {
	Length() float64
	EndPoint() geo.Point
	writeTo(sb *strings.Builder)
}

// Move repositions the pen without drawing.
type Move struct {
	To geo.Point
}

func (m Move) Length() float64     { return 0 }
func (m Move) EndPoint() geo.Point { return m.To }
func (m Move) writeTo(sb *strings.Builder) {
	fmt.Fprintf(sb, "M %g,%g", m.To.X, m.To.Y)
}

// Line draws a straight segment.
type Line struct {
	Start, End geo.Point
}

func (l Line) Length() float64     { return l.Start.Distance(l.End) }
func (l Line) EndPoint() geo.Point { return l.End }
func (l Line) writeTo(sb *strings.Builder) {
	fmt.Fprintf(sb, "L %g,%g", l.End.X, l.End.Y)
}

// Segment returns the straight segment drawn by l.
func (l Line) Segment() geo.Segment { return geo.Segment{Start: l.Start, End: l.End} }

// Close draws the implicit straight edge back to the subpath start.
// Start and End are recorded explicitly at parse time so the edge stays
// well-defined even after neighboring primitives are removed.
type Close struct {
	Start, End geo.Point
}

func (c Close) Length() float64     { return c.Start.Distance(c.End) }
func (c Close) EndPoint() geo.Point { return c.End }
func (c Close) writeTo(sb *strings.Builder) {
	sb.WriteString("Z")
}

// Segment returns the straight closing edge.
func (c Close) Segment() geo.Segment { return geo.Segment{Start: c.Start, End: c.End} }

// Cubic draws a cubic Bézier curve.
type Cubic struct {
	Start, C1, C2, End geo.Point
}

func (c Cubic) EndPoint() geo.Point { return c.End }
func (c Cubic) writeTo(sb *strings.Builder) {
	fmt.Fprintf(sb, "C %g,%g %g,%g %g,%g", c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.End.X, c.End.Y)
}

func (c Cubic) at(t float64) geo.Point {
	u := 1 - t
	return geo.Point{
		X: u*u*u*c.Start.X + 3*u*u*t*c.C1.X + 3*u*t*t*c.C2.X + t*t*t*c.End.X,
		Y: u*u*u*c.Start.Y + 3*u*u*t*c.C1.Y + 3*u*t*t*c.C2.Y + t*t*t*c.End.Y,
	}
}

func (c Cubic) Length() float64 { return polylineLength(c.at) }

// Quad draws a quadratic Bézier curve.
type Quad struct {
	Start, C, End geo.Point
}

func (q Quad) EndPoint() geo.Point { return q.End }
func (q Quad) writeTo(sb *strings.Builder) {
	fmt.Fprintf(sb, "Q %g,%g %g,%g", q.C.X, q.C.Y, q.End.X, q.End.Y)
}

func (q Quad) at(t float64) geo.Point {
	u := 1 - t
	return geo.Point{
		X: u*u*q.Start.X + 2*u*t*q.C.X + t*t*q.End.X,
		Y: u*u*q.Start.Y + 2*u*t*q.C.Y + t*t*q.End.Y,
	}
}

func (q Quad) Length() float64 { return polylineLength(q.at) }

// Arc draws an elliptical arc in SVG endpoint parameterization.
// Rotation is in degrees.
type Arc struct {
	Start    geo.Point
	Rx, Ry   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
	End      geo.Point
}

func (a Arc) EndPoint() geo.Point { return a.End }
func (a Arc) writeTo(sb *strings.Builder) {
	fmt.Fprintf(sb, "A %g,%g %g %s %s %g,%g",
		a.Rx, a.Ry, a.Rotation, flag(a.LargeArc), flag(a.Sweep), a.End.X, a.End.Y)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (a Arc) Length() float64 {
	at, degenerate := a.parameterize()
	if degenerate {
		// Zero radius collapses the arc to a straight segment per the
		// SVG out-of-range rules.
		return a.Start.Distance(a.End)
	}
	return polylineLength(at)
}

// parameterize converts the endpoint form to a point-at-parameter
// function using the center parameterization (SVG spec appendix
// B.2.4). degenerate is true when the radii vanish or the endpoints
// coincide.
func (a Arc) parameterize() (func(t float64) geo.Point, bool) {
	rx, ry := math.Abs(a.Rx), math.Abs(a.Ry)
	if rx == 0 || ry == 0 || a.Start == a.End {
		return nil, true
	}
	phi := a.Rotation * math.Pi / 180
	sin, cos := math.Sin(phi), math.Cos(phi)

	dx := (a.Start.X - a.End.X) / 2
	dy := (a.Start.Y - a.End.Y) / 2
	x1p := cos*dx + sin*dy
	y1p := -sin*dx + cos*dy

	// Scale radii up when too small to span the endpoints.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := math.Sqrt(math.Max(0, num/den))
	if a.LargeArc == a.Sweep {
		co = -co
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx
	cx := cos*cxp - sin*cyp + (a.Start.X+a.End.X)/2
	cy := sin*cxp + cos*cyp + (a.Start.Y+a.End.Y)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	dTheta := theta2 - theta1
	if a.Sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	} else if !a.Sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	}

	return func(t float64) geo.Point {
		theta := theta1 + t*dTheta
		x := rx * math.Cos(theta)
		y := ry * math.Sin(theta)
		return geo.Point{
			X: cos*x - sin*y + cx,
			Y: sin*x + cos*y + cy,
		}
	}, false
}

func polylineLength(at func(t float64) geo.Point) float64 {
	var sum float64
	prev := at(0)
	for i := 1; i <= curveSteps; i++ {
		p := at(float64(i) / curveSteps)
		sum += prev.Distance(p)
		prev = p
	}
	return sum
}

// Path is an ordered primitive sequence parsed from one path-data
// string.
type Path []Primitive

// Length sums the drawn length of all primitives.
func (p Path) Length() float64 {
	var sum float64
	for _, prim := range p {
		sum += prim.Length()
	}
	return sum
}

// String serializes the path back to path data using absolute
// commands. When a primitive does not start at the current pen
// position (its predecessor was removed), an explicit Move is
// inserted, and a Z whose edge no longer matches the current subpath
// start is written as an explicit line instead.
func (p Path) String() string {
	var sb strings.Builder
	var pen, subpathStart geo.Point
	penSet := false

	emit := func(prim Primitive) {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		prim.writeTo(&sb)
		pen = prim.EndPoint()
		penSet = true
	}

	for _, prim := range p {
		if mv, ok := prim.(Move); ok {
			emit(mv)
			subpathStart = mv.To
			continue
		}
		start, end := primSpan(prim)
		if !penSet || pen != start {
			emit(Move{To: start})
			subpathStart = start
		}
		if cl, ok := prim.(Close); ok && subpathStart != cl.End {
			emit(Line{Start: start, End: end})
			continue
		}
		emit(prim)
		if _, ok := prim.(Close); ok {
			subpathStart = end
		}
	}
	return sb.String()
}

func primSpan(p Primitive) (start, end geo.Point) {
	switch t := p.(type) {
	case Line:
		return t.Start, t.End
	case Close:
		return t.Start, t.End
	case Cubic:
		return t.Start, t.End
	case Quad:
		return t.Start, t.End
	case Arc:
		return t.Start, t.End
	case Move:
		return t.To, t.To
	}
	return geo.Point{}, geo.Point{}
}
