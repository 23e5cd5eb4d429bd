package document

import "sort"

// Presentation attribute sets for the three output purposes. Each is an
// independent, order-insensitive overwrite of fill/stroke attributes on
// every path element.

// ApplyCutStyle styles every path for a laser cutting pass: hairline
// blue strokes, no fill.
func (d *Document) ApplyCutStyle() {
	d.applyToPaths(map[string]string{
		"fill":         "none",
		"stroke":       "#0000ff",
		"stroke-width": "0.1",
	})
}

// ApplyEtchStyle styles every path for a laser etching pass: solid
// black fill, no stroke.
func (d *Document) ApplyEtchStyle() {
	d.applyToPaths(map[string]string{
		"fill":   "#000000",
		"stroke": "none",
	})
}

// ApplyRasterStyle styles every path for rasterized preview rendering.
func (d *Document) ApplyRasterStyle() {
	d.applyToPaths(map[string]string{
		"fill":         "none",
		"stroke":       "#000000",
		"stroke-width": "0.2",
	})
}

func (d *Document) applyToPaths(attrs map[string]string) {
	for _, p := range d.Root.FindAll("path") {
		for _, k := range sortedKeys(attrs) {
			p.SetAttr(k, attrs[k])
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
