// Package reduce collapses collinear overlapping straight segments in a
// set of drawing paths into a minimal equivalent set, so that a cutting
// device never retraces the same physical line.
package reduce

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/svgkit/svgkit/geo"
	"github.com/svgkit/svgkit/observability"
	"github.com/svgkit/svgkit/pathdata"
)

// ErrMaxPasses reports a bucket that failed to reach a fixed point
// within Config.MaxPasses pairwise scans. Valid input always converges
// well before the cap, so hitting it means a cyclic-update defect and
// no results are applied.
var ErrMaxPasses = errors.New("exceeded max pairwise overlap passes")

type Config struct {
	// Eps is the tolerance for fuzzy coordinate comparison.
	// Defaults to geo.Eps.
	Eps float64
	// KeyDigits is the decimal precision of the slope/intercept
	// bucketing key. Defaults to 3.
	KeyDigits int
	// MaxPasses caps the pairwise scans per bucket. Defaults to 20.
	MaxPasses int
	// Logger receives overlap/merge trace events. Defaults to nop.
	Logger observability.Logger
}

type Reducer struct {
	cfg Config
}

func New(cfg Config) *Reducer {
	if cfg.Eps == 0 {
		cfg.Eps = geo.Eps
	}
	if cfg.KeyDigits == 0 {
		cfg.KeyDigits = 3
	}
	if cfg.MaxPasses == 0 {
		cfg.MaxPasses = 20
	}
	if cfg.Logger == nil {
		cfg.Logger = observability.NopLogger{}
	}
	return &Reducer{cfg: cfg}
}

// Stats summarizes one reduction.
type Stats struct {
	Removed       int
	Kept          int
	RemovedLength float64
	KeptLength    float64
}

// Result is the outcome of one reduction. Paths holds the reconstructed
// primitive sequences in original order; Removed and Merged list the
// eliminated and extended segments for downstream visualization, both
// ordered by their position in the input.
type Result struct {
	Paths   []pathdata.Path
	Removed []geo.Segment
	Merged  []geo.Segment
	Stats   Stats
}

// Reduce deduplicates collinear overlapping straight segments across
// the given paths. Moves, closes and curved primitives pass through
// untouched, except that every Close is rewritten as an explicit
// straight segment so the closing edge survives removal of its
// neighbors. Reduce is a pure function of its input; the input paths
// are not modified.
func (r *Reducer) Reduce(ctx context.Context, paths []pathdata.Path) (*Result, error) {
	st := &run{
		cfg:     r.cfg,
		arena:   make(map[int]geo.Segment),
		buckets: make(map[geo.Key][]record),
		removed: make(map[int]entry),
		updated: make(map[int]entry),
	}
	if err := st.bucket(paths); err != nil {
		return nil, err
	}
	if err := st.converge(); err != nil {
		return nil, err
	}
	return st.reconstruct(paths)
}

// record locates one bucketed segment; the segment itself lives in the
// arena under its overall index.
type record struct {
	overall int
	path    int
	line    int
}

// entry is a removal- or update-set value: the original path/line
// position plus the segment as of the time of the decision.
type entry struct {
	path int
	line int
	seg  geo.Segment
}

// run is the mutable state of a single reduction.
type run struct {
	cfg     Config
	arena   map[int]geo.Segment
	buckets map[geo.Key][]record
	keys    []geo.Key
	removed map[int]entry
	updated map[int]entry
}

// bucket scans every path in order, assigning one overall index per
// primitive (moves and curves included, so reconstruction can re-walk
// with the same counter) and grouping straight segments by their
// rounded slope/intercept key.
func (r *run) bucket(paths []pathdata.Path) error {
	overall := 0
	for pathIndex, path := range paths {
		for lineIndex, prim := range path {
			line, ok := prim.(pathdata.Line)
			if !ok {
				// Moves don't draw but set the target for closes;
				// closes and curves are not collapsible. All keep
				// their index.
				overall++
				continue
			}
			seg := line.Segment()
			sl, err := geo.LineThrough(seg.Start, seg.End, r.cfg.Eps)
			if err != nil {
				return err
			}
			key := sl.Key(r.cfg.KeyDigits)
			if _, seen := r.buckets[key]; !seen {
				r.keys = append(r.keys, key)
			}
			r.arena[overall] = seg
			r.buckets[key] = append(r.buckets[key], record{
				overall: overall,
				path:    pathIndex,
				line:    lineIndex,
			})
			overall++
		}
	}
	return nil
}

// converge runs the pairwise overlap scan on every bucket until it
// reaches a fixed point. Buckets are independent; they are processed in
// key order purely to keep trace output deterministic.
func (r *run) converge() error {
	keys := append([]geo.Key{}, r.keys...)
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Vertical != b.Vertical {
			return !a.Vertical
		}
		if a.Slope != b.Slope {
			return a.Slope < b.Slope
		}
		return a.Intercept < b.Intercept
	})

	for _, key := range keys {
		converged := false
		for pass := 0; pass < r.cfg.MaxPasses; pass++ {
			changed, err := r.scanBucket(r.buckets[key])
			if err != nil {
				return err
			}
			if !changed {
				converged = true
				break
			}
			r.cfg.Logger.Debug("re-running pairwise overlap check after merge",
				observability.Int("pass", pass+1))
		}
		if !converged {
			return fmt.Errorf("bucket (slope %v, intercept %v): %w", key.Slope, key.Intercept, ErrMaxPasses)
		}
	}
	return nil
}
