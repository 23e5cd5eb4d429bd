package geo

import (
	"errors"
	"math"
	"testing"
)

func TestLineThrough(t *testing.T) {
	tests := []struct {
		name      string
		p1, p2    Point
		vertical  bool
		slope     float64
		intercept float64
	}{
		{"horizontal", Point{0, 2}, Point{10, 2}, false, 0, 2},
		{"diagonal", Point{0, 1}, Point{2, 5}, false, 2, 1},
		{"vertical", Point{3, 0}, Point{3, 7}, true, 0, 3},
		{"near vertical within eps", Point{3, 0}, Point{3.0005, 7}, true, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := LineThrough(tt.p1, tt.p2, Eps)
			if err != nil {
				t.Fatalf("LineThrough failed: %v", err)
			}
			if l.Vertical != tt.vertical {
				t.Fatalf("Vertical = %v, want %v", l.Vertical, tt.vertical)
			}
			if !l.Vertical && math.Abs(l.Slope-tt.slope) > 1e-9 {
				t.Errorf("Slope = %v, want %v", l.Slope, tt.slope)
			}
			if math.Abs(l.Intercept-tt.intercept) > 1e-9 {
				t.Errorf("Intercept = %v, want %v", l.Intercept, tt.intercept)
			}
		})
	}
}

func TestCollinear(t *testing.T) {
	tests := []struct {
		name string
		a, b Segment
		want bool
	}{
		{"same line overlapping", Seg(0, 0, 10, 0), Seg(3, 0, 12, 0), true},
		{"parallel different intercept", Seg(0, 0, 10, 0), Seg(0, 5, 10, 5), false},
		{"both vertical same x", Seg(2, 0, 2, 5), Seg(2, 3, 2, 9), true},
		{"both vertical different x", Seg(2, 0, 2, 5), Seg(4, 0, 4, 5), false},
		{"different slope", Seg(0, 0, 10, 0), Seg(0, 0, 10, 1), false},
		{"vertical vs sloped", Seg(2, 0, 2, 5), Seg(0, 0, 10, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Collinear(tt.a, tt.b, Eps)
			if err != nil {
				t.Fatalf("Collinear failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Collinear = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineKeyRounding(t *testing.T) {
	l1, err := LineThrough(Point{0, 0}, Point{10, 10.0001}, Eps)
	if err != nil {
		t.Fatalf("LineThrough failed: %v", err)
	}
	l2, err := LineThrough(Point{0, 0}, Point{10, 10}, Eps)
	if err != nil {
		t.Fatalf("LineThrough failed: %v", err)
	}
	if l1.Key(3) != l2.Key(3) {
		t.Errorf("noisy slope should round into the same key: %v vs %v", l1.Key(3), l2.Key(3))
	}

	// -0.0000x intercepts must not split a bucket from +0.0000x ones.
	neg, err := LineThrough(Point{0, -0.0001}, Point{10, -0.0001}, Eps)
	if err != nil {
		t.Fatalf("LineThrough failed: %v", err)
	}
	pos, err := LineThrough(Point{0, 0.0001}, Point{10, 0.0001}, Eps)
	if err != nil {
		t.Fatalf("LineThrough failed: %v", err)
	}
	if neg.Key(3) != pos.Key(3) {
		t.Errorf("keys around zero differ: %v vs %v", neg.Key(3), pos.Key(3))
	}
}

func TestContainsRect(t *testing.T) {
	a := Seg(0, 0, 10, 0).Bounds()
	b := Seg(2, 0, 8, 0).Bounds()
	if !a.ContainsRect(b, Eps) {
		t.Errorf("outer span should contain inner span")
	}
	if b.ContainsRect(a, Eps) {
		t.Errorf("inner span must not contain outer span")
	}
	// Identical spans contain each other (within eps).
	if !a.ContainsRect(a, Eps) {
		t.Errorf("span should contain itself")
	}
}

func TestPartiallyOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Segment
		want bool
	}{
		{"horizontal partial", Seg(0, 0, 5, 0), Seg(3, 0, 10, 0), true},
		{"vertical partial", Seg(0, 0, 0, 5), Seg(0, 3, 0, 10), true},
		{"end to end", Seg(0, 0, 5, 0), Seg(5, 0, 10, 0), false},
		{"disjoint", Seg(0, 0, 2, 0), Seg(5, 0, 10, 0), false},
		{"diagonal partial", Seg(0, 0, 5, 5), Seg(3, 3, 8, 8), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Bounds().PartiallyOverlaps(tt.b.Bounds(), Eps)
			if got != tt.want {
				t.Errorf("PartiallyOverlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeometryError(t *testing.T) {
	err := NewGeometryError("bad %s", "input")
	var ge *GeometryError
	if !errors.As(err, &ge) {
		t.Fatalf("errors.As should match *GeometryError")
	}
	if ge.Error() != "geometry: bad input" {
		t.Errorf("unexpected message %q", ge.Error())
	}
}

func TestMatrix(t *testing.T) {
	m := Translate(3, 4).Multiply(Scale(2, 2))
	p := m.Transform(Point{1, 1})
	if p.X != 8 || p.Y != 10 {
		t.Errorf("Transform = %v, want (8,10)", p)
	}
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	q := inv.Transform(p)
	if math.Abs(q.X-1) > 1e-9 || math.Abs(q.Y-1) > 1e-9 {
		t.Errorf("round trip = %v, want (1,1)", q)
	}
	if _, err := Scale(0, 0).Inverse(); err == nil {
		t.Errorf("singular matrix should not invert")
	}
}
