package reduce

import (
	"fmt"

	"github.com/svgkit/svgkit/geo"
	"github.com/svgkit/svgkit/observability"
)

func segString(s geo.Segment) string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}

// scanBucket is one O(n²) pass over a bucket. Fully-contained segments
// are marked removed and the scan continues; a partial overlap merges
// the pair, which invalidates the pass: the merged segment may newly
// overlap members already scanned, so scanBucket returns true and the
// caller restarts it.
func (r *run) scanBucket(recs []record) (bool, error) {
	eps := r.cfg.Eps
	for i := 0; i < len(recs); i++ {
		if _, gone := r.removed[recs[i].overall]; gone {
			continue
		}
		for j := i + 1; j < len(recs); j++ {
			if _, gone := r.removed[recs[j].overall]; gone {
				continue
			}
			s1 := r.arena[recs[i].overall]
			s2 := r.arena[recs[j].overall]

			// Same bucket implies collinearity, but merges move
			// endpoints, so re-verify.
			collinear, err := geo.Collinear(s1, s2, eps)
			if err != nil {
				return false, err
			}
			if !collinear {
				continue
			}

			b1 := s1.Bounds()
			b2 := s2.Bounds()
			switch {
			case b1.ContainsRect(b2, eps):
				if s1.Length()+eps < s2.Length() {
					return false, geo.NewGeometryError(
						"segment %v contains %v but is shorter", s1, s2)
				}
				r.markRemoved(recs[j], s2)
			case b2.ContainsRect(b1, eps):
				if s2.Length()+eps < s1.Length() {
					return false, geo.NewGeometryError(
						"segment %v contains %v but is shorter", s2, s1)
				}
				r.markRemoved(recs[i], s1)
			case b1.PartiallyOverlaps(b2, eps):
				r.merge(recs[i], recs[j], s1, s2)
				return true, nil
			}
		}
	}
	return false, nil
}

// merge resolves a partial overlap: the first segment is removed and
// the second is extended in place to the minimal segment covering both,
// found as the farthest-apart pair among the four endpoints. Sorting
// the points instead would misorder endpoints whose coordinates differ
// by a float-noise amount, hence the exhaustive pair search.
func (r *run) merge(ri, rj record, s1, s2 geo.Segment) {
	r.cfg.Logger.Debug("partial overlap",
		observability.String("a", segString(s1)),
		observability.String("b", segString(s2)))

	points := [4]geo.Point{s1.Start, s1.End, s2.Start, s2.End}
	longest := s1
	for x := 0; x < len(points); x++ {
		for y := x + 1; y < len(points); y++ {
			cand := geo.Segment{Start: points[x], End: points[y]}
			if cand.Length() > longest.Length() {
				longest = cand
			}
		}
	}

	r.markRemoved(ri, s1)
	r.arena[rj.overall] = longest
	r.markUpdated(rj, longest)

	r.cfg.Logger.Debug("merged into a single segment",
		observability.String("merged", segString(longest)))
}

// markRemoved records a removal, dropping any stale update entry so an
// index never sits in both sets.
func (r *run) markRemoved(rec record, seg geo.Segment) {
	delete(r.updated, rec.overall)
	r.removed[rec.overall] = entry{path: rec.path, line: rec.line, seg: seg}
}

func (r *run) markUpdated(rec record, seg geo.Segment) {
	delete(r.removed, rec.overall)
	r.updated[rec.overall] = entry{path: rec.path, line: rec.line, seg: seg}
}
