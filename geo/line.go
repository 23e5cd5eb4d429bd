package geo

import "math"

// Line is the slope/intercept form of the infinite line through a
// segment. A vertical line has no slope; Intercept then holds the
// x-coordinate instead of the y-intercept.
type Line struct {
	Vertical  bool
	Slope     float64
	Intercept float64
}

// LineThrough derives the slope/intercept form from two points. The two
// x-coordinates differing by less than eps makes the line vertical.
// Both endpoints must produce the same intercept within eps; a mismatch
// means the caller's points are inconsistent and yields a
// *GeometryError.
func LineThrough(p1, p2 Point, eps float64) (Line, error) {
	if math.Abs(p1.X-p2.X) < eps {
		return Line{Vertical: true, Intercept: p1.X}, nil
	}
	m := (p2.Y - p1.Y) / (p2.X - p1.X)
	b1 := p1.Y - m*p1.X
	b2 := p2.Y - m*p2.X
	if math.Abs(b1-b2) >= eps {
		return Line{}, NewGeometryError("inconsistent intercepts %v and %v through (%v,%v)-(%v,%v)",
			b1, b2, p1.X, p1.Y, p2.X, p2.Y)
	}
	return Line{Slope: m, Intercept: b1}, nil
}

// Equal reports whether two lines coincide within eps.
func (l Line) Equal(o Line, eps float64) bool {
	sameSlope := (l.Vertical && o.Vertical) ||
		(!l.Vertical && !o.Vertical && math.Abs(l.Slope-o.Slope) < eps)
	return sameSlope && math.Abs(l.Intercept-o.Intercept) < eps
}

// Collinear reports whether both segments lie on the same infinite
// line within eps.
func Collinear(a, b Segment, eps float64) (bool, error) {
	la, err := LineThrough(a.Start, a.End, eps)
	if err != nil {
		return false, err
	}
	lb, err := LineThrough(b.Start, b.End, eps)
	if err != nil {
		return false, err
	}
	return la.Equal(lb, eps), nil
}

// Key is a comparable equivalence-class key for collinearity
// candidates, with slope and intercept rounded to absorb float noise.
// Nearly-collinear segments can still land in neighboring keys when a
// rounded value sits on a boundary; the pairwise check re-verifies
// collinearity, so a missed grouping costs an elimination opportunity
// but never correctness.
type Key struct {
	Vertical  bool
	Slope     float64
	Intercept float64
}

// Key rounds the line to the given number of decimal digits.
func (l Line) Key(digits int) Key {
	k := Key{Vertical: l.Vertical, Intercept: roundTo(l.Intercept, digits)}
	if !l.Vertical {
		k.Slope = roundTo(l.Slope, digits)
	}
	return k
}

func roundTo(v float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	r := math.Round(v*pow) / pow
	if r == 0 {
		return 0 // avoid -0 keys splitting a bucket
	}
	return r
}
