package interactive

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matzehuels/forcegraph/pkg/figure"
)

// Series layouts understood by ECharts.
const (
	layoutNone  = "none"
	layoutForce = "force"
)

// Options configures the HTML page.
type Options struct {
	// Force lets ECharts keep simulating forces in the browser, starting
	// from the figure's positions. When false, nodes stay where the figure
	// put them.
	Force bool
	// PageTitle is the HTML document title. Defaults to the figure title.
	PageTitle string
}

// Render draws the figure as a standalone ECharts HTML page.
func Render(fig *figure.Figure, o Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Chart(fig, o).Render(&buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// Chart builds the ECharts graph for fig without rendering it, so callers
// can add it to a larger page.
func Chart(fig *figure.Figure, o Options) *charts.Graph {
	fo := fig.Options()
	w, h := fig.PixelSize()

	pageTitle := o.PageTitle
	if pageTitle == "" {
		pageTitle = fo.Title
	}
	if pageTitle == "" {
		pageTitle = "forcegraph"
	}

	g := charts.NewGraph()
	g.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       pageTitle,
			Width:           fmt.Sprintf("%dpx", w),
			Height:          fmt.Sprintf("%dpx", h),
			BackgroundColor: "#ffffff",
		}),
		charts.WithTitleOpts(opts.Title{Title: fo.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	mode := layoutNone
	if o.Force {
		mode = layoutForce
	}
	chartOpts := opts.GraphChart{
		Layout:    mode,
		Roam:      opts.Bool(true),
		Draggable: opts.Bool(true),
	}
	if o.Force {
		chartOpts.Force = &opts.GraphForce{Repulsion: float32(8 * fig.NodeRadius()), Gravity: 0.1}
	}

	g.AddSeries("graph", nodes(fig), links(fig),
		charts.WithGraphChartOpts(chartOpts),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    fo.FontColor,
			FontSize: float32(fo.FontSize),
		}),
	)

	if len(fig.Unweighted()) > 0 {
		g.AddSeries("unweighted", unweighted(fig), nil,
			charts.WithGraphChartOpts(opts.GraphChart{Layout: layoutNone, Roam: opts.Bool(true)}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)
	}
	return g
}

// ECharts identifies graph nodes by name, so nodes are named by ID.
func nodes(fig *figure.Figure) []opts.GraphNode {
	fo := fig.Options()
	size := 2 * fig.NodeRadius()
	ids := fig.Graph().Nodes()
	out := make([]opts.GraphNode, 0, len(ids))
	for _, id := range ids {
		x, y := fig.Project(fig.Positions()[id])
		out = append(out, opts.GraphNode{
			Name:       id,
			X:          float32(x),
			Y:          float32(y),
			Value:      float32(fig.Graph().Degree(id)),
			SymbolSize: size,
			ItemStyle:  &opts.ItemStyle{Color: fo.NodeColor},
		})
	}
	return out
}

func unweighted(fig *figure.Figure) []opts.GraphNode {
	fo := fig.Options()
	// Squares of equal area to the circles.
	size := 2 * fig.NodeRadius() * math.Sqrt(math.Pi) / 2
	out := make([]opts.GraphNode, 0, len(fig.Unweighted()))
	for _, id := range fig.Unweighted() {
		x, y := fig.Project(fig.Positions()[id])
		out = append(out, opts.GraphNode{
			Name:       id,
			X:          float32(x),
			Y:          float32(y),
			Fixed:      opts.Bool(true),
			Symbol:     "rect",
			SymbolSize: size,
			ItemStyle:  &opts.ItemStyle{Color: fo.UnweightedColor},
		})
	}
	return out
}

func links(fig *figure.Figure) []opts.GraphLink {
	fo := fig.Options()
	edges := fig.Graph().Edges()
	widths := fig.EdgeWidths()
	labels := fig.EdgeLabels()
	out := make([]opts.GraphLink, 0, len(edges))
	for i, e := range edges {
		link := opts.GraphLink{
			Source: e.U,
			Target: e.V,
			Value:  float32(e.Weight),
			LineStyle: &opts.LineStyle{
				Color:   fo.EdgeColor,
				Width:   float32(fo.PointsToPixels(math.Abs(widths[i]))),
				Opacity: opts.Float(float32(fo.EdgeAlpha)),
			},
		}
		if fo.EdgeLabelFontSize > 0 {
			link.Label = &opts.EdgeLabel{
				Show:      opts.Bool(true),
				Formatter: labels[i],
				FontSize:  float32(fo.EdgeLabelFontSize),
			}
		}
		out = append(out, link)
	}
	return out
}
