package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/render"
)

// RenderPNG draws the figure onto a raster canvas of the figure's pixel size.
func RenderPNG(fig *figure.Figure) ([]byte, error) {
	return renderWith(chart.PNG, fig)
}

// RenderSVG draws the figure as SVG.
func RenderSVG(fig *figure.Figure) ([]byte, error) {
	return renderWith(chart.SVG, fig)
}

// RenderPDF draws the figure as SVG and converts it with [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(fig *figure.Figure) ([]byte, error) {
	svg, err := RenderSVG(fig)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

func renderWith(rp chart.RendererProvider, fig *figure.Figure) ([]byte, error) {
	w, h := fig.PixelSize()
	r, err := rp(w, h)
	if err != nil {
		return nil, fmt.Errorf("create canvas: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	r.SetDPI(fig.Options().DPI)
	r.SetFont(font)

	c := canvas{r: r, fig: fig, opts: fig.Options()}
	c.background(w, h)
	c.title(w)
	c.edges()
	c.nodes()
	c.labels()

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// canvas draws one figure in layers: edges below nodes below labels.
type canvas struct {
	r    chart.Renderer
	fig  *figure.Figure
	opts figure.Options
}

func (c canvas) point(id string) (int, int, bool) {
	p, ok := c.fig.Positions()[id]
	if !ok {
		return 0, 0, false
	}
	x, y := c.fig.Project(p)
	return int(math.Round(x)), int(math.Round(y)), true
}

func (c canvas) background(w, h int) {
	c.r.SetFillColor(drawing.ColorWhite)
	c.r.MoveTo(0, 0)
	c.r.LineTo(w, 0)
	c.r.LineTo(w, h)
	c.r.LineTo(0, h)
	c.r.Close()
	c.r.Fill()
	c.r.ResetStyle()
}

func (c canvas) title(w int) {
	if c.opts.Title == "" {
		return
	}
	c.r.SetFontColor(color(c.opts.FontColor, 1))
	c.r.SetFontSize(c.opts.FontSize * 1.5)
	box := c.r.MeasureText(c.opts.Title)
	c.r.Text(c.opts.Title, (w-box.Width())/2, int(c.fig.Margin()/2)+box.Height()/2)
	c.r.ResetStyle()
}

// edges draws straight segments. Self-loops have no extent and are skipped.
func (c canvas) edges() {
	stroke := color(c.opts.EdgeColor, c.opts.EdgeAlpha)
	widths := c.fig.EdgeWidths()
	for i, e := range c.fig.Graph().Edges() {
		width := c.opts.PointsToPixels(math.Abs(widths[i]))
		if e.IsSelfLoop() || width == 0 {
			continue
		}
		x1, y1, ok1 := c.point(e.U)
		x2, y2, ok2 := c.point(e.V)
		if !ok1 || !ok2 {
			continue
		}
		c.r.SetStrokeColor(stroke)
		c.r.SetStrokeWidth(width)
		c.r.MoveTo(x1, y1)
		c.r.LineTo(x2, y2)
		c.r.Stroke()
	}
	c.r.ResetStyle()
}

func (c canvas) nodes() {
	radius := c.fig.NodeRadius()

	fill := color(c.opts.NodeColor, 1)
	for _, id := range c.fig.Graph().Nodes() {
		x, y, ok := c.point(id)
		if !ok {
			continue
		}
		c.r.SetFillColor(fill)
		c.r.SetStrokeColor(fill)
		c.r.SetStrokeWidth(1)
		c.r.Circle(radius, x, y)
		c.r.FillStroke()
	}

	// Squares of equal area to the circles.
	half := int(math.Round(radius * math.Sqrt(math.Pi) / 2))
	square := color(c.opts.UnweightedColor, 1)
	for _, id := range c.fig.Unweighted() {
		x, y, ok := c.point(id)
		if !ok {
			continue
		}
		c.r.SetFillColor(square)
		c.r.SetStrokeColor(square)
		c.r.SetStrokeWidth(1)
		c.r.MoveTo(x-half, y-half)
		c.r.LineTo(x+half, y-half)
		c.r.LineTo(x+half, y+half)
		c.r.LineTo(x-half, y+half)
		c.r.Close()
		c.r.FillStroke()
	}
	c.r.ResetStyle()
}

func (c canvas) labels() {
	c.r.SetFontColor(color(c.opts.FontColor, 1))
	c.r.SetFontSize(c.opts.FontSize)
	for _, id := range c.fig.Graph().Nodes() {
		if x, y, ok := c.point(id); ok {
			c.centered(c.fig.Label(id), x, y)
		}
	}

	if c.opts.EdgeLabelFontSize <= 0 {
		c.r.ResetStyle()
		return
	}
	c.r.SetFontSize(c.opts.EdgeLabelFontSize)
	labels := c.fig.EdgeLabels()
	for i, e := range c.fig.Graph().Edges() {
		x1, y1, ok1 := c.point(e.U)
		x2, y2, ok2 := c.point(e.V)
		if ok1 && ok2 {
			c.centered(labels[i], (x1+x2)/2, (y1+y2)/2)
		}
	}
	c.r.ResetStyle()
}

func (c canvas) centered(text string, x, y int) {
	box := c.r.MeasureText(text)
	c.r.Text(text, x-box.Width()/2, y+box.Height()/2)
}

// color parses a #rrggbb color and applies alpha in [0, 1].
func color(hex string, alpha float64) drawing.Color {
	col := drawing.ColorFromHex(hex)
	if alpha < 1 {
		col = col.WithAlpha(uint8(math.Round(math.Max(alpha, 0) * 255)))
	}
	return col
}
