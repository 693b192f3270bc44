// Package render provides the output backends for figures.
//
// # Overview
//
// Every backend reads a [figure.Figure] and produces bytes:
//
//   - [plot]: raster and vector canvas drawn with go-chart (default)
//   - [nodelink]: Graphviz node-link diagrams, plus Graphviz force layouts
//   - [interactive]: standalone ECharts HTML page
//   - [display]: opens rendered bytes in the platform viewer
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The Graphviz and plot
// backends use them for PDF output.
//
//	svg, err := nodelink.RenderSVG(dot, "neato")
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [figure.Figure]: github.com/matzehuels/forcegraph/pkg/figure
// [plot]: github.com/matzehuels/forcegraph/pkg/render/plot
// [nodelink]: github.com/matzehuels/forcegraph/pkg/render/nodelink
// [interactive]: github.com/matzehuels/forcegraph/pkg/render/interactive
// [display]: github.com/matzehuels/forcegraph/pkg/render/display
package render
