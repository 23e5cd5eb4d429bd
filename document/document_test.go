package document

import (
	"context"
	"strings"
	"testing"

	"github.com/svgkit/svgkit/reduce"
)

const sample = `<svg xmlns="http://www.w3.org/2000/svg" width="50mm" height="40mm" viewBox="0 0 50 40"><path d="M0 0L10 0"/><path d="M0 0L10 0"/></svg>`

func parseSample(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestParseAndWriteRoundTrip(t *testing.T) {
	doc := parseSample(t, sample)
	var sb strings.Builder
	if err := doc.WriteTo(&sb); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, `xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("namespace declaration lost: %s", out)
	}
	if strings.Count(out, "<path") != 2 {
		t.Errorf("path elements lost: %s", out)
	}
	// The output must itself parse.
	if _, err := Parse(strings.NewReader(out)); err != nil {
		t.Errorf("output does not reparse: %v", err)
	}
}

func TestParseRejectsNonSVG(t *testing.T) {
	if _, err := Parse(strings.NewReader(`<html></html>`)); err == nil {
		t.Errorf("non-svg root should be rejected")
	}
	if _, err := Parse(strings.NewReader(``)); err == nil {
		t.Errorf("empty input should be rejected")
	}
}

func TestViewBox(t *testing.T) {
	doc := parseSample(t, sample)
	vb, err := doc.ViewBox()
	if err != nil {
		t.Fatalf("ViewBox failed: %v", err)
	}
	if vb != (ViewBox{0, 0, 50, 40}) {
		t.Errorf("ViewBox = %+v", vb)
	}

	merged, err := doc.MergeViewBox(ViewBox{MinX: -10, MinY: 5, Width: 30, Height: 60})
	if err != nil {
		t.Fatalf("MergeViewBox failed: %v", err)
	}
	want := ViewBox{MinX: -10, MinY: 0, Width: 60, Height: 65}
	if merged != want {
		t.Errorf("merged = %+v, want %+v", merged, want)
	}
	if raw, _ := doc.Root.GetAttr("viewBox"); raw != "-10 0 60 65" {
		t.Errorf("viewBox attribute = %q", raw)
	}
}

func TestViewBoxCommaSeparated(t *testing.T) {
	doc := parseSample(t, `<svg viewBox="0,0,100,50"></svg>`)
	vb, err := doc.ViewBox()
	if err != nil {
		t.Fatalf("ViewBox failed: %v", err)
	}
	if vb != (ViewBox{0, 0, 100, 50}) {
		t.Errorf("ViewBox = %+v", vb)
	}
}

func TestApplyStyles(t *testing.T) {
	doc := parseSample(t, sample)
	doc.ApplyCutStyle()
	for _, p := range doc.Root.FindAll("path") {
		if v, _ := p.GetAttr("stroke"); v != "#0000ff" {
			t.Errorf("cut stroke = %q", v)
		}
		if v, _ := p.GetAttr("fill"); v != "none" {
			t.Errorf("cut fill = %q", v)
		}
	}

	// Styles overwrite each other; last application wins.
	doc.ApplyEtchStyle()
	for _, p := range doc.Root.FindAll("path") {
		if v, _ := p.GetAttr("fill"); v != "#000000" {
			t.Errorf("etch fill = %q", v)
		}
		if v, _ := p.GetAttr("stroke"); v != "none" {
			t.Errorf("etch stroke = %q", v)
		}
	}

	doc.ApplyRasterStyle()
	for _, p := range doc.Root.FindAll("path") {
		if v, _ := p.GetAttr("stroke-width"); v != "0.2" {
			t.Errorf("raster stroke-width = %q", v)
		}
	}
}

func TestImportPaths(t *testing.T) {
	dst := parseSample(t, sample)
	src := parseSample(t, `<svg viewBox="0 0 80 20"><path d="M0 10L20 10"/></svg>`)
	if err := dst.ImportPaths(src); err != nil {
		t.Fatalf("ImportPaths failed: %v", err)
	}
	if got := len(dst.Root.FindAll("path")); got != 3 {
		t.Fatalf("path count = %d, want 3", got)
	}
	if raw, _ := dst.Root.GetAttr("viewBox"); raw != "0 0 80 40" {
		t.Errorf("merged viewBox = %q", raw)
	}
	if w, _ := dst.Root.GetAttr("width"); w != "80mm" {
		t.Errorf("width = %q", w)
	}
	if h, _ := dst.Root.GetAttr("height"); h != "40mm" {
		t.Errorf("height = %q", h)
	}

	// Import copies, not aliases.
	src.Root.FindAll("path")[0].SetAttr("d", "M0 0L1 1")
	if d, _ := dst.Root.FindAll("path")[2].GetAttr("d"); d != "M0 10L20 10" {
		t.Errorf("imported path aliases the source: %q", d)
	}
}

func TestReduceLines(t *testing.T) {
	doc := parseSample(t, sample)
	res, err := doc.ReduceLines(context.Background(), reduce.Config{})
	if err != nil {
		t.Fatalf("ReduceLines failed: %v", err)
	}
	if res.Stats.Removed != 1 {
		t.Fatalf("Removed = %d, want 1", res.Stats.Removed)
	}
	paths := doc.Root.FindAll("path")
	if d, _ := paths[0].GetAttr("d"); d != "M 0,0 L 10,0" {
		t.Errorf("first path d = %q", d)
	}
	if d, _ := paths[1].GetAttr("d"); d != "M 0,0" {
		t.Errorf("second path d = %q, want bare move", d)
	}
}

func TestReduceLinesSharedClosingEdge(t *testing.T) {
	// Two adjacent squares: the second square's closing edge retraces
	// the first square's right edge. Closes are normalized to explicit
	// segments, so the duplicate edge is removed.
	doc := parseSample(t, `<svg viewBox="0 0 20 10"><path d="M0 0L10 0L10 10L0 10Z"/><path d="M10 0L20 0L20 10L10 10Z"/></svg>`)
	res, err := doc.ReduceLines(context.Background(), reduce.Config{})
	if err != nil {
		t.Fatalf("ReduceLines failed: %v", err)
	}
	if res.Stats.Removed != 1 {
		t.Fatalf("Removed = %d, want 1", res.Stats.Removed)
	}
	if res.Stats.RemovedLength != 10 {
		t.Errorf("RemovedLength = %v, want 10", res.Stats.RemovedLength)
	}
	paths := doc.Root.FindAll("path")
	if d, _ := paths[0].GetAttr("d"); d != "M 0,0 L 10,0 L 10,10 L 0,10 L 0,0" {
		t.Errorf("first path d = %q", d)
	}
	if d, _ := paths[1].GetAttr("d"); d != "M 10,0 L 20,0 L 20,10 L 10,10" {
		t.Errorf("second path d = %q", d)
	}
}

func TestReduceLinesBadPathData(t *testing.T) {
	doc := parseSample(t, `<svg viewBox="0 0 10 10"><path d="bogus"/></svg>`)
	if _, err := doc.ReduceLines(context.Background(), reduce.Config{}); err == nil {
		t.Errorf("malformed path data should fail")
	}
}

func TestAddHighlightLines(t *testing.T) {
	doc := parseSample(t, sample)
	res, err := doc.ReduceLines(context.Background(), reduce.Config{})
	if err != nil {
		t.Fatalf("ReduceLines failed: %v", err)
	}
	doc.AddHighlightLines(res.Removed, "#ff0000")

	paths := doc.Root.FindAll("path")
	if len(paths) != 3 {
		t.Fatalf("path count = %d, want 3", len(paths))
	}
	hl := paths[2]
	if v, _ := hl.GetAttr("stroke"); v != "#ff0000" {
		t.Errorf("highlight stroke = %q", v)
	}
	if v, _ := hl.GetAttr("stroke-opacity"); v != ".45" {
		t.Errorf("highlight opacity = %q", v)
	}
	if v, _ := hl.GetAttr("d"); v != "M 0,0 L 10,0" {
		t.Errorf("highlight d = %q", v)
	}
}
