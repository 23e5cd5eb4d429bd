package document

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/svgkit/svgkit/geo"
	"github.com/svgkit/svgkit/pathdata"
	"github.com/svgkit/svgkit/reduce"
)

// ReduceLines removes redundant collinear overlapping segments from
// every path element, rewriting each element's d attribute with the
// reduced primitive sequence. Close primitives are normalized into
// explicit straight segments first, so a closing edge that retraces a
// neighboring outline is collapsible like any other segment. The
// returned result carries the removed and merged segments for
// highlighting plus the reduction statistics.
func (d *Document) ReduceLines(ctx context.Context, cfg reduce.Config) (*reduce.Result, error) {
	nodes := d.Root.FindAll("path")
	paths := make([]pathdata.Path, 0, len(nodes))
	for _, n := range nodes {
		raw, _ := n.GetAttr("d")
		p, err := pathdata.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse path data %q: %w", raw, err)
		}
		for i, prim := range p {
			if cl, ok := prim.(pathdata.Close); ok {
				p[i] = pathdata.Line{Start: cl.Start, End: cl.End}
			}
		}
		paths = append(paths, p)
	}

	res, err := reduce.New(cfg).Reduce(ctx, paths)
	if err != nil {
		return nil, err
	}

	for i, n := range nodes {
		n.SetAttr("d", res.Paths[i].String())
	}
	return res, nil
}

// AddHighlightLines appends each segment as its own near-transparent
// colored stroke, for visual inspection of what a reduction removed or
// merged.
func (d *Document) AddHighlightLines(segs []geo.Segment, color string) {
	for _, s := range segs {
		p := pathdata.Path{
			pathdata.Move{To: s.Start},
			pathdata.Line{Start: s.Start, End: s.End},
		}
		n := &Node{Name: xml.Name{Local: "path"}}
		n.SetAttr("d", p.String())
		n.SetAttr("fill", "none")
		n.SetAttr("stroke", color)
		n.SetAttr("stroke-width", "1")
		n.SetAttr("stroke-opacity", ".45")
		d.Root.Children = append(d.Root.Children, n)
	}
}
