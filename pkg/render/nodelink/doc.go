// Package nodelink renders figures as Graphviz node-link diagrams.
//
// # Overview
//
// This package has two roles. It draws a [figure.Figure] with Graphviz, and
// it exposes Graphviz's force-directed engines (neato, fdp, sfdp, circo) as a
// layout.Layout through [ForceLayout], so their positions can feed any
// backend.
//
// # Usage
//
// Convert a figure to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(fig, nodelink.Options{Engine: "spring"})
//	svg, err := nodelink.RenderSVG(dot, "neato")
//
// Or let [Render] pick the engine:
//
//	svg, err := nodelink.Render(fig, nodelink.Options{})
//	pdf, err := nodelink.RenderPDF(fig, nodelink.Options{})
//	png, err := nodelink.RenderPNG(fig, nodelink.Options{}, 1.0)
//
// # Engines
//
// With the "spring" engine every node is pinned at its figure position
// (pos="x,y!") and neato only draws. Any other engine recomputes the layout
// from scratch, seeded with [Options.Seed].
//
// # DOT Format
//
// The generated graph is undirected. Edge penwidth is the figure's edge
// width in points (weight times weight scale), node markers are fixed-size
// circles with the figure's node area, and unweighted nodes are unlabeled
// squares.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process layout and
// SVG rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [figure.Figure]: github.com/matzehuels/forcegraph/pkg/figure
package nodelink
