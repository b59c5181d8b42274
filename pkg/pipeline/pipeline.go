// Package pipeline runs the index → layer → render path shared by the CLI,
// the API server and the interactive viewer.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: validate the graph into a [dag.Index] and assign columns with
//     [transform.Layer]. Layerings are memoised by graph content hash.
//  2. Render: paint the layering in one of the [ValidFormats].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Layout(ctx, g)
//	if err != nil {
//	    // errors carry INVALID_GRAPH or CYCLE_DETECTED codes
//	}
//	svg, err := runner.Render(ctx, graphID, res, pipeline.FormatColumns)
//
// [transform.Layer]: github.com/matzehuels/columnview/pkg/dag/transform#Layer
package pipeline

import (
	"fmt"
	"slices"
	"time"

	"github.com/matzehuels/columnview/pkg/dag"
)

// Output formats.
const (
	FormatColumns  = "columns"  // column grid as SVG
	FormatGraphviz = "graphviz" // Graphviz node-link diagram as SVG
	FormatDOT      = "dot"      // Graphviz source
	FormatPNG      = "png"      // column grid as PNG (needs rsvg-convert)
	FormatPDF      = "pdf"      // column grid as PDF (needs rsvg-convert)
	FormatJSON     = "json"     // graph.View
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatColumns:  true,
	FormatGraphviz: true,
	FormatDOT:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatColumns:  "image/svg+xml",
	FormatGraphviz: "image/svg+xml",
	FormatDOT:      "text/vnd.graphviz",
	FormatPNG:      "image/png",
	FormatPDF:      "application/pdf",
	FormatJSON:     "application/json",
}

// Result contains the outputs of a layout run.
type Result struct {
	// Index is the validated graph.
	Index *dag.Index

	// Layering is the column assignment.
	Layering dag.Layering

	// GraphHash is the content hash of the canonical graph JSON.
	GraphHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the layering came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Columns    int
	Crossings  int
	IndexTime  time.Duration
	LayerTime  time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, formatList())
	}
	return nil
}

func formatList() string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return fmt.Sprint(names)
}
