package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ViewBox is the visible region of an SVG document.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

// Union returns the smallest viewbox enclosing both v and o.
func (v ViewBox) Union(o ViewBox) ViewBox {
	minX := math.Min(v.MinX, o.MinX)
	minY := math.Min(v.MinY, o.MinY)
	maxX := math.Max(v.MinX+v.Width, o.MinX+o.Width)
	maxY := math.Max(v.MinY+v.Height, o.MinY+o.Height)
	return ViewBox{MinX: minX, MinY: minY, Width: maxX - minX, Height: maxY - minY}
}

// ViewBox parses the root viewBox attribute.
func (d *Document) ViewBox() (ViewBox, error) {
	raw, ok := d.Root.GetAttr("viewBox")
	if !ok {
		return ViewBox{}, fmt.Errorf("document has no viewBox attribute")
	}
	fields := strings.Fields(strings.ReplaceAll(raw, ",", " "))
	if len(fields) != 4 {
		return ViewBox{}, fmt.Errorf("malformed viewBox %q", raw)
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, fmt.Errorf("malformed viewBox %q: %w", raw, err)
		}
		vals[i] = v
	}
	return ViewBox{MinX: vals[0], MinY: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// SetViewBox replaces the root viewBox attribute.
func (d *Document) SetViewBox(vb ViewBox) {
	d.Root.SetAttr("viewBox", fmt.Sprintf("%.0f %.0f %.0f %.0f",
		vb.MinX, vb.MinY, vb.Width, vb.Height))
}

// SetDimensions replaces the root width and height attributes; values
// carry their unit, e.g. "100mm".
func (d *Document) SetDimensions(width, height string) {
	d.Root.SetAttr("width", width)
	d.Root.SetAttr("height", height)
}

// MergeViewBox grows the document's viewbox to enclose vb and returns
// the merged result.
func (d *Document) MergeViewBox(vb ViewBox) (ViewBox, error) {
	own, err := d.ViewBox()
	if err != nil {
		return ViewBox{}, err
	}
	merged := own.Union(vb)
	d.SetViewBox(merged)
	return merged, nil
}

// ImportPaths copies every path element of src into d and merges the
// viewboxes, updating the millimeter dimensions to match.
func (d *Document) ImportPaths(src *Document) error {
	for _, p := range src.Root.FindAll("path") {
		d.Root.Children = append(d.Root.Children, p.Copy())
	}
	srcVB, err := src.ViewBox()
	if err != nil {
		return err
	}
	merged, err := d.MergeViewBox(srcVB)
	if err != nil {
		return err
	}
	d.SetDimensions(
		fmt.Sprintf("%.0fmm", merged.Width),
		fmt.Sprintf("%.0fmm", merged.Height))
	return nil
}
