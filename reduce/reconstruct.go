package reduce

import (
	"fmt"
	"sort"

	"github.com/svgkit/svgkit/geo"
	"github.com/svgkit/svgkit/observability"
	"github.com/svgkit/svgkit/pathdata"
)

// reconstruct re-walks every path with the same overall-index counter
// used during bucketing, dropping removed segments, substituting merged
// ones and rewriting closes as explicit straight segments.
func (r *run) reconstruct(paths []pathdata.Path) (*Result, error) {
	res := &Result{Paths: make([]pathdata.Path, 0, len(paths))}
	overall := 0
	for pathIndex, path := range paths {
		out := make(pathdata.Path, 0, len(path))
		for lineIndex, prim := range path {
			if e, ok := r.removed[overall]; ok {
				if e.path != pathIndex || e.line != lineIndex {
					return nil, fmt.Errorf("removal for index %d recorded at path %d line %d, found at path %d line %d",
						overall, e.path, e.line, pathIndex, lineIndex)
				}
				res.Stats.Removed++
				res.Stats.RemovedLength += prim.Length()
			} else if e, ok := r.updated[overall]; ok {
				if e.path != pathIndex || e.line != lineIndex {
					return nil, fmt.Errorf("update for index %d recorded at path %d line %d, found at path %d line %d",
						overall, e.path, e.line, pathIndex, lineIndex)
				}
				merged := pathdata.Line{Start: e.seg.Start, End: e.seg.End}
				out = append(out, merged)
				res.Stats.Kept++
				res.Stats.KeptLength += merged.Length()
			} else if cl, ok := prim.(pathdata.Close); ok {
				// A close draws relative to whatever preceded it; once
				// neighbors may have been removed or merged it must
				// become an explicit segment.
				line := pathdata.Line{Start: cl.Start, End: cl.End}
				out = append(out, line)
				res.Stats.Kept++
				res.Stats.KeptLength += line.Length()
			} else {
				out = append(out, prim)
				res.Stats.Kept++
				res.Stats.KeptLength += prim.Length()
			}
			overall++
		}
		res.Paths = append(res.Paths, out)
	}

	res.Removed = collectSegments(r.removed)
	res.Merged = collectSegments(r.updated)

	r.cfg.Logger.Info("reduced paths",
		observability.Int("removed", res.Stats.Removed),
		observability.Float64("removed_length", res.Stats.RemovedLength),
		observability.Int("kept", res.Stats.Kept),
		observability.Float64("kept_length", res.Stats.KeptLength))
	return res, nil
}

// collectSegments orders a removal/update set by overall index so
// identical input always yields identical output.
func collectSegments(set map[int]entry) []geo.Segment {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	segs := make([]geo.Segment, 0, len(keys))
	for _, k := range keys {
		segs = append(segs, set[k].seg)
	}
	return segs
}
