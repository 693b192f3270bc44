package figure

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
	"github.com/matzehuels/forcegraph/pkg/network"
)

// Figure is a laid-out graph ready for drawing.
//
// It holds the weighted graph, a position for every node (including
// unweighted ones), and the drawing options. Renderers only read from a
// Figure; it is safe to render the same Figure concurrently.
type Figure struct {
	// Engine names the layout engine the positions came from.
	Engine string
	// Seed is the layout seed, if the engine used one.
	Seed uint64
	// Labels overrides node display labels. Nodes without an entry use their ID.
	Labels map[string]string

	graph      *network.Graph
	pos        layout.Positions
	unweighted []string
	opts       Options
}

// New creates a figure from a graph and its layout.
//
// Nodes listed in unweighted are removed from the drawn graph and kept as
// plain markers at their computed positions. g itself is not modified.
func New(g *network.Graph, pos layout.Positions, unweighted []string, opts Options) *Figure {
	drawn := g.Clone()
	drawn.RemoveNodes(unweighted...)
	return &Figure{
		graph:      drawn,
		pos:        pos,
		unweighted: slices.Clone(unweighted),
		opts:       opts.WithDefaults(),
	}
}

// Graph returns the drawn graph (unweighted nodes excluded).
func (f *Figure) Graph() *network.Graph { return f.graph }

// Positions returns the layout positions of all nodes.
func (f *Figure) Positions() layout.Positions { return f.pos }

// Unweighted returns the nodes drawn as plain markers.
func (f *Figure) Unweighted() []string { return f.unweighted }

// Options returns the drawing options with defaults applied.
func (f *Figure) Options() Options { return f.opts }

// Label returns the display label for id.
func (f *Figure) Label(id string) string {
	if l, ok := f.Labels[id]; ok && l != "" {
		return l
	}
	return id
}

// Empty reports whether there is nothing to draw.
func (f *Figure) Empty() bool {
	return f.graph.NodeCount() == 0 && len(f.unweighted) == 0
}

// EdgeWidths returns the width of each edge of Graph().Edges(), in points:
// the edge weight multiplied by WeightScale.
func (f *Figure) EdgeWidths() []float64 {
	edges := f.graph.Edges()
	widths := make([]float64, len(edges))
	for i, e := range edges {
		widths[i] = e.Weight * f.opts.WeightScale
	}
	return widths
}

// EdgeLabels returns the label of each edge of Graph().Edges():
// the weight rounded to one decimal.
func (f *Figure) EdgeLabels() []string {
	edges := f.graph.Edges()
	labels := make([]string, len(edges))
	for i, e := range edges {
		labels[i] = FormatWeight(e.Weight)
	}
	return labels
}

// FormatWeight rounds w to one decimal, e.g. 2 -> "2.0", 0.25 -> "0.3".
func FormatWeight(w float64) string {
	return strconv.FormatFloat(math.Round(w*10)/10, 'f', 1, 64)
}

// PixelSize returns the canvas size in pixels.
func (f *Figure) PixelSize() (width, height int) {
	return int(math.Round(f.opts.Size[0] * f.opts.DPI)), int(math.Round(f.opts.Size[1] * f.opts.DPI))
}

// NodeRadius returns the marker radius in pixels.
func (f *Figure) NodeRadius() float64 {
	return f.opts.PointsToPixels(math.Sqrt(f.opts.NodeSize / math.Pi))
}

// Margin returns the padding between the canvas border and the outermost node centers.
func (f *Figure) Margin() float64 {
	w, h := f.PixelSize()
	return math.Max(2*f.NodeRadius(), 0.05*float64(min(w, h)))
}

// Project maps a layout position to canvas pixels, with the y axis
// pointing down. Each axis is stretched independently to fill the canvas
// inside the margin; an axis with no extent is centered.
func (f *Figure) Project(p layout.Position) (x, y float64) {
	w, h := f.PixelSize()
	m := f.Margin()
	minX, minY, maxX, maxY := f.pos.Bounds()

	x = project(p.X, minX, maxX, m, float64(w)-m)
	y = float64(h) - project(p.Y, minY, maxY, m, float64(h)-m)
	return x, y
}

func project(v, lo, hi, outLo, outHi float64) float64 {
	if hi-lo == 0 {
		return (outLo + outHi) / 2
	}
	return outLo + (v-lo)/(hi-lo)*(outHi-outLo)
}

// =============================================================================
// Layout Conversion
// =============================================================================

// Export converts the figure to its serializable layout.
func (f *Figure) Export() graph.Layout {
	l := graph.Layout{
		Engine:      f.Engine,
		Width:       f.opts.Size[0],
		Height:      f.opts.Size[1],
		DPI:         f.opts.DPI,
		WeightScale: f.opts.WeightScale,
		Seed:        f.Seed,
		Title:       f.opts.Title,
		Nodes:       make([]graph.LayoutNode, 0, f.graph.NodeCount()+len(f.unweighted)),
		Edges:       make([]graph.LayoutEdge, 0, f.graph.EdgeCount()),
	}
	node := func(id string, unweighted bool) graph.LayoutNode {
		p := f.pos[id]
		n := graph.LayoutNode{ID: id, X: p.X, Y: p.Y, Unweighted: unweighted}
		if label := f.Label(id); label != id {
			n.Label = label
		}
		return n
	}
	for _, id := range f.graph.Nodes() {
		l.Nodes = append(l.Nodes, node(id, false))
	}
	for _, id := range f.unweighted {
		l.Nodes = append(l.Nodes, node(id, true))
	}
	for _, e := range f.graph.Edges() {
		l.Edges = append(l.Edges, graph.LayoutEdge{Source: e.U, Target: e.V, Weight: e.Weight})
	}
	return l
}

// FromLayout rebuilds a figure from a serialized layout. Dimensions stored
// in the layout take precedence over opts.
func FromLayout(l graph.Layout, opts Options) (*Figure, error) {
	if l.Width > 0 && l.Height > 0 {
		opts.Size = [2]float64{l.Width, l.Height}
	}
	if l.DPI > 0 {
		opts.DPI = l.DPI
	}
	if l.WeightScale != 0 {
		opts.WeightScale = l.WeightScale
	}
	if l.Title != "" {
		opts.Title = l.Title
	}

	g := network.New()
	pos := make(layout.Positions, len(l.Nodes))
	labels := make(map[string]string)
	var unweighted []string
	for _, n := range l.Nodes {
		if err := g.AddNode(n.ID); err != nil {
			return nil, fmt.Errorf("layout node: %w", err)
		}
		pos[n.ID] = layout.Position{X: n.X, Y: n.Y}
		if n.Label != "" {
			labels[n.ID] = n.Label
		}
		if n.Unweighted {
			unweighted = append(unweighted, n.ID)
		}
	}
	for _, e := range l.Edges {
		if err := g.AddEdge(e.Source, e.Target, e.Weight); err != nil {
			return nil, fmt.Errorf("layout edge %s-%s: %w", e.Source, e.Target, err)
		}
	}

	f := New(g, pos, unweighted, opts)
	f.Engine = l.Engine
	f.Seed = l.Seed
	f.Labels = labels
	return f, nil
}
