package plot

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/layout"
	"github.com/matzehuels/forcegraph/pkg/network"
)

func testFigure(opts figure.Options) *figure.Figure {
	g := network.New()
	_ = g.AddEdge("a", "b", 1)
	_ = g.AddEdge("b", "c", 0.5)
	_ = g.AddEdge("c", "c", 2)
	_ = g.AddNode("u")
	pos := layout.Positions{
		"a": {X: -1, Y: -1},
		"b": {X: 1, Y: -1},
		"c": {X: 0, Y: 1},
		"u": {X: 0, Y: 0},
	}
	return figure.New(g, pos, []string{"u"}, opts)
}

func TestRenderPNG(t *testing.T) {
	fig := testFigure(figure.Options{Size: [2]float64{4, 3}, DPI: 50})
	data, err := RenderPNG(fig)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("size = %dx%d, want 200x150", b.Dx(), b.Dy())
	}
	r, g, b, a := img.At(2, 2).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("corner = %v, want opaque white background", img.At(2, 2))
	}
}

func TestRenderSVG(t *testing.T) {
	data, err := RenderSVG(testFigure(figure.Options{Size: [2]float64{4, 4}, Title: "Weights"}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	svg := string(data)
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an SVG document: %.100s", svg)
	}
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("circles = %d, want 3 (unweighted nodes are squares)", got)
	}
	for _, label := range []string{">a<", ">b<", ">c<", ">Weights<"} {
		if !strings.Contains(svg, label) {
			t.Errorf("missing text %q", label)
		}
	}
	if strings.Contains(svg, ">u<") {
		t.Error("unweighted nodes should not be labeled")
	}
}

func TestRenderSVGEdgeLabels(t *testing.T) {
	hidden, err := RenderSVG(testFigure(figure.Options{Size: [2]float64{4, 4}}))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(hidden), ">0.5<") {
		t.Error("edge labels should be hidden by default")
	}

	shown, err := RenderSVG(testFigure(figure.Options{Size: [2]float64{4, 4}, EdgeLabelFontSize: 8}))
	if err != nil {
		t.Fatal(err)
	}
	for _, label := range []string{">1.0<", ">0.5<"} {
		if !strings.Contains(string(shown), label) {
			t.Errorf("missing edge label %q", label)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	fig := figure.New(network.New(), layout.Positions{}, nil, figure.Options{Size: [2]float64{1, 1}})
	if _, err := RenderPNG(fig); err != nil {
		t.Errorf("RenderPNG(empty) error = %v", err)
	}
	if _, err := RenderSVG(fig); err != nil {
		t.Errorf("RenderSVG(empty) error = %v", err)
	}
}

func TestColor(t *testing.T) {
	c := color("#1f78b4", 0.9)
	if c.R != 0x1f || c.G != 0x78 || c.B != 0xb4 || c.A != 230 {
		t.Errorf("color = %+v", c)
	}
	if color("#000000", 1).A != 255 {
		t.Error("opaque color should keep full alpha")
	}
}
