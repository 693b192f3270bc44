// Package plot draws figures on a go-chart canvas.
//
// This is the default backend. It produces PNG and SVG directly, without
// Graphviz or any external tool, and PDF through rsvg-convert:
//
//	png, err := plot.RenderPNG(fig)
//	svg, err := plot.RenderSVG(fig)
//
// Drawing follows a fixed layer order: white background, optional title,
// edges, node markers, node labels, and edge labels when
// figure.Options.EdgeLabelFontSize is positive. Edge width in pixels is the
// figure's edge width in points converted at the figure's DPI.
package plot
