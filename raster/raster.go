// Package raster renders SVG documents to images for on-screen preview
// of manufacturing output.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"golang.org/x/image/vector"

	"github.com/svgkit/svgkit/document"
	"github.com/svgkit/svgkit/geo"
	"github.com/svgkit/svgkit/pathdata"
)

// Options controls a preview rendering.
type Options struct {
	// Scale is the number of device pixels per user unit. Defaults
	// to 4.
	Scale float64
	// StrokeWidth is the fallback stroke width in user units for paths
	// without a stroke-width attribute. Defaults to 0.2.
	StrokeWidth float64
	// CurveSteps is the flattening resolution per curved primitive.
	// Defaults to 16.
	CurveSteps int
	// Background fills the canvas first. Defaults to white.
	Background color.Color
}

func (o *Options) defaults() {
	if o.Scale == 0 {
		o.Scale = 4
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = 0.2
	}
	if o.CurveSteps == 0 {
		o.CurveSteps = 16
	}
	if o.Background == nil {
		o.Background = color.White
	}
}

// Render rasterizes every path element of doc onto an RGBA canvas
// sized from the document viewbox. Fill and stroke colors come from
// each path's presentation attributes; paths with neither are drawn
// with a black stroke.
func Render(doc *document.Document, opts Options) (*image.RGBA, error) {
	opts.defaults()

	vb, err := doc.ViewBox()
	if err != nil {
		return nil, err
	}
	width := int(math.Ceil(vb.Width * opts.Scale))
	height := int(math.Ceil(vb.Height * opts.Scale))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("degenerate viewbox %+v", vb)
	}

	// User space to device space.
	ctm := geo.Translate(-vb.MinX, -vb.MinY).Multiply(geo.Scale(opts.Scale, opts.Scale))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	for _, node := range doc.Root.FindAll("path") {
		raw, _ := node.GetAttr("d")
		path, err := pathdata.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse path data %q: %w", raw, err)
		}
		polylines := path.Flatten(opts.CurveSteps)
		if len(polylines) == 0 {
			continue
		}
		for i, line := range polylines {
			for j, p := range line {
				polylines[i][j] = ctm.Transform(p)
			}
		}

		if fill, ok := parseColor(attrOr(node, "fill", "")); ok {
			fillPolylines(img, polylines, fill)
		}
		stroke, ok := parseColor(attrOr(node, "stroke", "#000000"))
		if !ok {
			continue
		}
		sw := opts.StrokeWidth
		if v, err := strconv.ParseFloat(attrOr(node, "stroke-width", ""), 64); err == nil && v > 0 {
			sw = v
		}
		strokePolylines(img, polylines, stroke, sw*opts.Scale)
	}
	return img, nil
}

// EncodePNG renders doc and writes it as PNG.
func EncodePNG(w io.Writer, doc *document.Document, opts Options) error {
	img, err := Render(doc, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func attrOr(n *document.Node, name, fallback string) string {
	if v, ok := n.GetAttr(name); ok {
		return v
	}
	return fallback
}

func fillPolylines(dst *image.RGBA, polylines [][]geo.Point, c color.Color) {
	ras := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	for _, line := range polylines {
		ras.MoveTo(float32(line[0].X), float32(line[0].Y))
		for _, p := range line[1:] {
			ras.LineTo(float32(p.X), float32(p.Y))
		}
		ras.ClosePath()
	}
	ras.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// strokePolylines draws each segment as a filled quad of the given
// device-space width, with butt caps and no joins.
func strokePolylines(dst *image.RGBA, polylines [][]geo.Point, c color.Color, width float64) {
	half := width / 2
	if half <= 0 {
		half = 0.5
	}
	ras := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	for _, line := range polylines {
		for i := 1; i < len(line); i++ {
			a, b := line[i-1], line[i]
			dx, dy := b.X-a.X, b.Y-a.Y
			l := math.Hypot(dx, dy)
			if l == 0 {
				// Zero-length segments (degenerate closes) leave a dot.
				dx, dy, l = 1, 0, 1
			}
			// Unit normal.
			nx, ny := -dy/l*half, dx/l*half
			ras.MoveTo(float32(a.X+nx), float32(a.Y+ny))
			ras.LineTo(float32(b.X+nx), float32(b.Y+ny))
			ras.LineTo(float32(b.X-nx), float32(b.Y-ny))
			ras.LineTo(float32(a.X-nx), float32(a.Y-ny))
			ras.ClosePath()
		}
	}
	ras.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// parseColor understands the subset of SVG color syntax this toolchain
// emits: #rgb, #rrggbb and "none". ok is false when nothing should be
// painted.
func parseColor(s string) (color.Color, bool) {
	switch s {
	case "", "none":
		return nil, false
	case "black":
		return color.Black, true
	case "white":
		return color.White, true
	}
	if s[0] != '#' {
		return nil, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, true
}
