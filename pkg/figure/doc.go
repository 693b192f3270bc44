// Package figure holds a laid-out graph together with its drawing options.
//
// A [Figure] is the handle returned by pipeline.Visualize when the caller
// does not ask for immediate display. It can be rendered by any backend
// (go-chart raster/vector, Graphviz, ECharts HTML), exported to a
// [graph.Layout] for caching, or inspected directly:
//
//	fig := figure.New(g, pos, unweighted, figure.Options{WeightScale: 10})
//	widths := fig.EdgeWidths() // weight * 10 for each edge
//
// # Geometry
//
// Sizes are given in inches and converted to pixels with [Options.DPI].
// Node markers are sized by area in pt², edges by width in points, so a
// weight of 1 with the default scale draws a 10pt line.
//
// Unweighted nodes (nodes that only appear in links without a weight) are
// kept as square markers at their layout positions but have no label and
// take part in no edge.
package figure
