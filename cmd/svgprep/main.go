// Command svgprep prepares CAD-exported SVG files for laser cutting,
// etching or preview rendering: it merges input documents, removes
// redundant collinear lines and applies the presentation style for the
// chosen output purpose.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/svgkit/svgkit/document"
	"github.com/svgkit/svgkit/observability"
	"github.com/svgkit/svgkit/raster"
	"github.com/svgkit/svgkit/reduce"
)

type options struct {
	inputs       []string
	output       string
	style        string
	reduce       bool
	highlight    bool
	preview      string
	previewScale float64
	verbose      bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "svgprep: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "svgprep: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: svgprep [flags] <input.svg> [more.svg ...]\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.output, "o", "", "Output SVG file (required)")
	flag.StringVar(&opts.style, "style", "none", "Presentation style to apply: cut, etch, raster or none")
	flag.BoolVar(&opts.reduce, "reduce", true, "Remove redundant collinear lines")
	flag.BoolVar(&opts.highlight, "highlight", false, "Overlay removed (red) and merged (magenta) lines")
	flag.StringVar(&opts.preview, "preview", "", "Also write a PNG preview to this file")
	flag.Float64Var(&opts.previewScale, "preview-scale", 4, "Preview pixels per SVG unit")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.Parse()

	if opts.output == "" {
		return opts, fmt.Errorf("missing required -o flag")
	}
	switch opts.style {
	case "cut", "etch", "raster", "none":
	default:
		return opts, fmt.Errorf("unknown style %q", opts.style)
	}
	opts.inputs = flag.Args()
	if len(opts.inputs) == 0 {
		return opts, fmt.Errorf("no input files")
	}
	return opts, nil
}

func run(opts options) error {
	level := observability.LevelInfo
	if opts.verbose {
		level = observability.LevelDebug
	}
	logger := observability.NewTextLogger(os.Stderr, level)

	doc, err := document.ParseFile(opts.inputs[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.inputs[0], err)
	}
	for _, name := range opts.inputs[1:] {
		extra, err := document.ParseFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := doc.ImportPaths(extra); err != nil {
			return fmt.Errorf("failed to merge %s: %w", name, err)
		}
		logger.Info("merged document", observability.String("file", name))
	}

	var res *reduce.Result
	if opts.reduce {
		res, err = doc.ReduceLines(context.Background(), reduce.Config{Logger: logger})
		if err != nil {
			return fmt.Errorf("failed to reduce lines: %w", err)
		}
	}

	switch opts.style {
	case "cut":
		doc.ApplyCutStyle()
	case "etch":
		doc.ApplyEtchStyle()
	case "raster":
		doc.ApplyRasterStyle()
	}

	if opts.highlight && res != nil {
		doc.AddHighlightLines(res.Removed, "#ff0000")
		doc.AddHighlightLines(res.Merged, "#ff00ff")
	}

	if err := doc.WriteFile(opts.output); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	logger.Info("wrote output", observability.String("file", opts.output))

	if opts.preview != "" {
		f, err := os.Create(opts.preview)
		if err != nil {
			return err
		}
		if err := raster.EncodePNG(f, doc, raster.Options{Scale: opts.previewScale}); err != nil {
			f.Close()
			return fmt.Errorf("failed to render preview: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("wrote preview", observability.String("file", opts.preview))
	}
	return nil
}
