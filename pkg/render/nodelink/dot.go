package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Engine selects the Graphviz layout engine. With graph.EngineSpring (or
	// empty) nodes are pinned at the figure's positions and neato only draws
	// them; any other engine recomputes positions.
	Engine string
	// Seed makes recomputed layouts reproducible.
	Seed uint64
}

func (o Options) pinned() bool {
	return o.Engine == "" || o.Engine == graph.EngineSpring
}

// renderEngine returns the Graphviz engine that lays out ToDOT output.
func (o Options) renderEngine() string {
	if o.pinned() {
		return graph.EngineNeato
	}
	return o.Engine
}

// ToDOT converts a figure to an undirected Graphviz DOT graph.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Edge pen widths equal the figure's edge widths in points. Unweighted nodes
// are drawn as unlabeled squares.
func ToDOT(fig *figure.Figure, opts Options) string {
	o := fig.Options()
	radius := math.Sqrt(o.NodeSize/math.Pi) / 72 // inches
	diameter := fmtFloat(2 * radius)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	fmt.Fprintf(&buf, "  size=\"%s,%s!\";\n", fmtFloat(o.Size[0]), fmtFloat(o.Size[1]))
	fmt.Fprintf(&buf, "  dpi=%s;\n", fmtFloat(o.DPI))
	if o.Title != "" {
		fmt.Fprintf(&buf, "  label=%s;\n  labelloc=\"t\";\n", dotString(o.Title))
	}
	if opts.pinned() {
		buf.WriteString("  splines=false;\n")
	} else {
		fmt.Fprintf(&buf, "  start=%d;\n", opts.Seed)
		buf.WriteString("  overlap=false;\n")
	}
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=%s, height=%s, fillcolor=%q, color=%q, fontsize=%s, fontcolor=%q];\n",
		diameter, diameter, o.NodeColor, o.NodeColor, fmtFloat(o.FontSize), o.FontColor)
	fmt.Fprintf(&buf, "  edge [color=%q];\n", withAlpha(o.EdgeColor, o.EdgeAlpha))
	buf.WriteString("\n")

	ids := append(fig.Graph().Nodes(), fig.Unweighted()...)
	names := dotNames(ids)
	for _, id := range fig.Graph().Nodes() {
		attrs := []string{"label=" + dotString(fig.Label(id)), "tooltip=" + dotString(id)}
		attrs = append(attrs, posAttr(fig, id, opts)...)
		fmt.Fprintf(&buf, "  %s [%s];\n", names[id], strings.Join(attrs, ", "))
	}
	for _, id := range fig.Unweighted() {
		attrs := []string{"label=\"\"", "tooltip=" + dotString(id), "shape=square", fmt.Sprintf("fillcolor=%q", o.UnweightedColor), fmt.Sprintf("color=%q", o.UnweightedColor)}
		attrs = append(attrs, posAttr(fig, id, opts)...)
		fmt.Fprintf(&buf, "  %s [%s];\n", names[id], strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	widths := fig.EdgeWidths()
	labels := fig.EdgeLabels()
	for i, e := range fig.Graph().Edges() {
		attrs := []string{fmt.Sprintf("penwidth=%s", fmtFloat(math.Abs(widths[i])))}
		if w := math.Abs(e.Weight); !opts.pinned() && w > 0 {
			attrs = append(attrs, fmt.Sprintf("weight=%s", fmtFloat(w)))
		}
		if o.EdgeLabelFontSize > 0 {
			attrs = append(attrs, "label="+dotString(labels[i]), fmt.Sprintf("fontsize=%s", fmtFloat(o.EdgeLabelFontSize)))
		}
		fmt.Fprintf(&buf, "  %s -- %s [%s];\n", names[e.U], names[e.V], strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// posAttr pins a node at its projected canvas position, in inches with the
// y axis pointing up.
func posAttr(fig *figure.Figure, id string, opts Options) []string {
	if !opts.pinned() {
		return nil
	}
	p, ok := fig.Positions()[id]
	if !ok {
		return nil
	}
	_, h := fig.PixelSize()
	dpi := fig.Options().DPI
	x, y := fig.Project(p)
	return []string{fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(x/dpi), fmtFloat((float64(h)-y)/dpi))}
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// withAlpha appends an alpha channel to a #rrggbb color.
func withAlpha(color string, alpha float64) string {
	if len(color) != 7 || color[0] != '#' || alpha >= 1 {
		return color
	}
	return fmt.Sprintf("%s%02x", color, int(math.Round(alpha*255)))
}

// RenderSVG renders a DOT graph to SVG using the given Graphviz engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot, engine string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(engine))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// Render draws a figure to SVG with Graphviz.
func Render(fig *figure.Figure, opts Options) ([]byte, error) {
	return RenderSVG(ToDOT(fig, opts), opts.renderEngine())
}

// RenderPDF renders a figure as PDF via SVG conversion.
// This is a convenience wrapper around [Render] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(fig *figure.Figure, opts Options) ([]byte, error) {
	svg, err := Render(fig, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a figure as PNG via SVG conversion.
// This is a convenience wrapper around [Render] and [render.ToPNG].
//
// The SVG is produced at the figure's DPI, so a scale of 1.0 yields the
// figure's pixel size.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(fig *figure.Figure, opts Options, scale float64) ([]byte, error) {
	svg, err := Render(fig, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
