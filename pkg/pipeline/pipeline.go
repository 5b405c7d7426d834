// Package pipeline provides the core inspection pipeline for jsonscope.
//
// This package implements the parse → transform → diagram → render chain and
// the two-document comparison that the CLI and the HTTP API both use. By
// centralizing this logic, every entry point reports the same errors and
// shares the same cache keys.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Decode JSON text into an order-preserving value
//  2. Transform: Build the GraphNode tree
//  3. Diagram: Generate Mermaid or DOT source from the tree
//  4. Render: Lay out DOT source with Graphviz into SVG or PNG
//
// Diagram and Render results are cached by a hash of the compact document,
// so two files that differ only in whitespace share entries.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	src, err := runner.Diagram(ctx, data, pipeline.DiagramOptions{Format: "mermaid"})
//
//	res, err := runner.Compare(ctx, left, right)
//	var side *pipeline.SideError
//	if errors.As(err, &side) {
//	    fmt.Println(side.Side, "document is broken")
//	}
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/jsonscope/pkg/cache"
	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
	"github.com/matzehuels/jsonscope/pkg/tree"
)

// Format and theme defaults shared by the CLI and API.
const (
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatPNG     = "png"

	DefaultDiagramFormat = FormatMermaid
	DefaultRenderFormat  = FormatSVG
	DefaultTheme         = "light"
)

// Compare panel names.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// MissingInputMessage is reported when either compare input is blank.
const MissingInputMessage = "Please provide JSON in both panels"

// SideError reports which compare input failed to parse.
type SideError struct {
	Side string // SideLeft or SideRight
	Err  error
}

func (e *SideError) Error() string {
	return fmt.Sprintf("Invalid JSON in %s panel: %v", e.Side, e.Err)
}

func (e *SideError) Unwrap() error { return e.Err }

// DiagramOptions selects the diagram language and color theme.
type DiagramOptions struct {
	Format  string `json:"format,omitempty"`
	Theme   string `json:"theme,omitempty"`
	Refresh bool   `json:"refresh,omitempty"` // bypass cache reads
}

func (o *DiagramOptions) setDefaults() {
	if o.Format == "" {
		o.Format = DefaultDiagramFormat
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
}

func (o DiagramOptions) keyOpts() cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{Format: o.Format, Theme: o.Theme}
}

// RenderOptions selects the image format and color theme.
type RenderOptions struct {
	Format  string `json:"format,omitempty"`
	Theme   string `json:"theme,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

func (o *RenderOptions) setDefaults() {
	if o.Format == "" {
		o.Format = DefaultRenderFormat
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
}

func (o RenderOptions) keyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: o.Format, Theme: o.Theme}
}

// Inspection is a parsed and transformed document.
type Inspection struct {
	Value jsonvalue.Value
	Root  *tree.Node
	Hash  string // content hash of the compact document
	Stats Stats
}

// Stats contains inspection statistics.
type Stats struct {
	Nodes         int
	Depth         int
	ParseTime     time.Duration
	TransformTime time.Duration
}
