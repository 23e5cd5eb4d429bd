package pathdata

import "github.com/svgkit/svgkit/geo"

// Flatten converts the path to polylines in drawing order. Each Move
// starts a new polyline; straight primitives contribute their endpoint
// and curved primitives are sampled with steps points. A primitive
// that does not begin where its predecessor ended starts a new
// polyline. Closes are approximated by the explicit closing point, so
// no closed-flag is carried.
func (p Path) Flatten(steps int) [][]geo.Point {
	if steps < 1 {
		steps = 1
	}
	var lines [][]geo.Point
	var cur []geo.Point

	flush := func() {
		if len(cur) > 1 {
			lines = append(lines, cur)
		}
		cur = nil
	}
	ensureStart := func(start geo.Point) {
		if len(cur) > 0 && cur[len(cur)-1] != start {
			flush()
		}
		if len(cur) == 0 {
			cur = append(cur, start)
		}
	}

	for _, prim := range p {
		switch t := prim.(type) {
		case Move:
			flush()
			cur = append(cur, t.To)
		case Line:
			ensureStart(t.Start)
			cur = append(cur, t.End)
		case Close:
			ensureStart(t.Start)
			cur = append(cur, t.End)
			flush()
		case Cubic:
			ensureStart(t.Start)
			for i := 1; i <= steps; i++ {
				cur = append(cur, t.at(float64(i)/float64(steps)))
			}
		case Quad:
			ensureStart(t.Start)
			for i := 1; i <= steps; i++ {
				cur = append(cur, t.at(float64(i)/float64(steps)))
			}
		case Arc:
			ensureStart(t.Start)
			at, degenerate := t.parameterize()
			if degenerate {
				cur = append(cur, t.End)
				break
			}
			for i := 1; i <= steps; i++ {
				cur = append(cur, at(float64(i)/float64(steps)))
			}
		}
	}
	flush()
	return lines
}
