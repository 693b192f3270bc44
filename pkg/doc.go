// Package pkg provides the libraries behind forcegraph, a tool that draws
// weighted graphs as force-directed node-link figures.
//
// # Overview
//
// The packages split into three areas:
//
//  1. Model: [graph] (input records and layout documents), [network]
//     (the weighted undirected graph), [errors] (coded errors)
//  2. Drawing: [layout] (spring simulation), [figure] (positions plus
//     drawing options), [render] and its backends (plot, nodelink,
//     interactive, display)
//  3. Orchestration: [pipeline] (build → layout → render), [cache],
//     [config], [observability], [buildinfo]
//
// # Data Flow
//
//	nodes/links record (JSON or TOML)
//	         ↓
//	    [graph] package (validate, drop unlinked nodes)
//	         ↓
//	    [network] package (weighted undirected graph)
//	         ↓
//	    [layout] package or Graphviz engine (positions)
//	         ↓
//	    [figure] package (sizes, widths, colors)
//	         ↓
//	    PNG/SVG/PDF/HTML/JSON output
//
// # Quick Start
//
//	d, _ := graph.ReadDataFile("links.json")
//	fig, _ := pipeline.Visualize(ctx, d, pipeline.Options{WeightScale: 5})
//	artifacts, _ := pipeline.Render(fig, pipeline.Options{Formats: []string{"svg"}})
//	os.WriteFile("links.svg", artifacts["svg"], 0o644)
//
// The forcegraph command (cmd/forcegraph) and its HTTP API wrap the same
// pipeline with caching.
package pkg
