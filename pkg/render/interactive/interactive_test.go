package interactive

import (
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/layout"
	"github.com/matzehuels/forcegraph/pkg/network"
)

func testFigure(opts figure.Options) *figure.Figure {
	g := network.New()
	_ = g.AddEdge("api", "db", 1.5)
	_ = g.AddNode("orphan")
	pos := layout.Positions{
		"api":    {X: -1, Y: 0},
		"db":     {X: 1, Y: 0},
		"orphan": {X: 0, Y: 1},
	}
	return figure.New(g, pos, []string{"orphan"}, opts)
}

func TestRender(t *testing.T) {
	html, err := Render(testFigure(figure.Options{Size: [2]float64{5, 4}, DPI: 100, Title: "Service map"}), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := string(html)
	for _, want := range []string{
		"<title>Service map</title>",
		`"layout":"none"`,
		`"name":"api"`,
		`"name":"orphan"`,
		`"symbol":"rect"`,
		"500px",
		"400px",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderForce(t *testing.T) {
	html, err := Render(testFigure(figure.Options{}), Options{Force: true, PageTitle: "live"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := string(html)
	if !strings.Contains(page, `"layout":"force"`) {
		t.Error("force layout not enabled")
	}
	if !strings.Contains(page, "<title>live</title>") {
		t.Error("page title not applied")
	}
}

func TestLinks(t *testing.T) {
	fig := testFigure(figure.Options{WeightScale: 2, DPI: 72, EdgeLabelFontSize: 9})
	got := links(fig)
	if len(got) != 1 {
		t.Fatalf("links = %d, want 1", len(got))
	}
	l := got[0]
	if l.Source != "api" || l.Target != "db" {
		t.Errorf("endpoints = %v-%v", l.Source, l.Target)
	}
	if l.LineStyle.Width != 3 {
		t.Errorf("width = %v, want 3 (1.5 * 2 at 72 dpi)", l.LineStyle.Width)
	}
	if l.Label == nil || l.Label.Formatter != "1.5" {
		t.Errorf("label = %+v, want 1.5", l.Label)
	}
}

func TestNodesExcludeUnweighted(t *testing.T) {
	fig := testFigure(figure.Options{})
	if got := nodes(fig); len(got) != 2 {
		t.Errorf("nodes = %d, want 2", len(got))
	}
	sq := unweighted(fig)
	if len(sq) != 1 || sq[0].Name != "orphan" || sq[0].Symbol != "rect" {
		t.Errorf("unweighted = %+v", sq)
	}
}
