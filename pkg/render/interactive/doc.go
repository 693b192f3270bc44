// Package interactive renders figures as standalone ECharts HTML pages.
//
// The page embeds the figure's positions, node sizes, and edge widths, and
// can be panned, zoomed, and dragged in the browser:
//
//	html, err := interactive.Render(fig, interactive.Options{})
//
// With [Options.Force] the browser keeps simulating forces starting from
// the computed layout; otherwise nodes stay where the layout put them.
// Unweighted nodes are placed in a separate, unlabeled series of squares.
package interactive
