package nodelink

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/layout"
	"github.com/matzehuels/forcegraph/pkg/network"
)

func testFigure(opts figure.Options) *figure.Figure {
	g := network.New()
	_ = g.AddEdge("a", "b", 1.5)
	_ = g.AddEdge("b", "c", -0.5)
	_ = g.AddNode("u")
	pos := layout.Positions{
		"a": {X: -1, Y: -1},
		"b": {X: 0, Y: 1},
		"c": {X: 1, Y: 0},
		"u": {X: 0, Y: 0},
	}
	return figure.New(g, pos, []string{"u"}, opts)
}

func TestToDOTPinned(t *testing.T) {
	dot := ToDOT(testFigure(figure.Options{Size: [2]float64{4, 3}}), Options{Engine: "spring"})

	for _, want := range []string{
		"graph G {",
		`size="4,3!"`,
		`n0 -- n1 [penwidth=15]`,
		`n1 -- n2 [penwidth=5]`,
		`shape=square`,
		`fillcolor="#add8e6"`,
		`color="#000000e6"`,
		"!\"]",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("graph must be undirected")
	}
	if strings.Contains(dot, "start=") {
		t.Error("pinned layout should not seed a recomputation")
	}
}

func TestToDOTFreeEngine(t *testing.T) {
	dot := ToDOT(testFigure(figure.Options{}), Options{Engine: "fdp", Seed: 3})
	if !strings.Contains(dot, "start=3;") {
		t.Errorf("missing seed:\n%s", dot)
	}
	if strings.Contains(dot, "pos=") {
		t.Error("free engine should not pin positions")
	}
	if !strings.Contains(dot, `[penwidth=15, weight=1.5]`) {
		t.Errorf("missing edge weight:\n%s", dot)
	}
}

func TestToDOTEdgeLabels(t *testing.T) {
	hidden := ToDOT(testFigure(figure.Options{}), Options{})
	if strings.Contains(hidden, `label="1.5"`) {
		t.Error("edge labels should be hidden by default")
	}
	shown := ToDOT(testFigure(figure.Options{EdgeLabelFontSize: 8}), Options{})
	if !strings.Contains(shown, `label="1.5", fontsize=8`) || !strings.Contains(shown, `label="-0.5"`) {
		t.Errorf("edge labels missing:\n%s", shown)
	}
}

func TestToDOTLabels(t *testing.T) {
	fig := testFigure(figure.Options{Title: "weights"})
	fig.Labels = map[string]string{"a": "Alpha"}
	dot := ToDOT(fig, Options{})
	if !strings.Contains(dot, `n0 [label="Alpha", tooltip="a"`) {
		t.Errorf("custom label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `label="weights";`) {
		t.Errorf("title missing:\n%s", dot)
	}
}

func TestToDOTEscapedIDs(t *testing.T) {
	g := network.New()
	_ = g.AddEdge(`a\b`, `say "hi"`, 2)
	pos := layout.Positions{`a\b`: {X: -1, Y: 0}, `say "hi"`: {X: 1, Y: 0}}
	fig := figure.New(g, pos, nil, figure.Options{Size: [2]float64{3, 3}})

	dot := ToDOT(fig, Options{})
	for _, want := range []string{
		`n0 [label="a\\b", tooltip="a\\b"`,
		`n1 [label="say \"hi\"", tooltip="say \"hi\""`,
		`n0 -- n1 [penwidth=20]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	svg, err := Render(fig, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(svg, []byte(`a\b`)) {
		t.Errorf("label text lost: %.400s", svg)
	}
}

func TestDotString(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", `"plain"`},
		{`a\b`, `"a\\b"`},
		{`"q"`, `"\"q\""`},
		{"two\nlines", `"two\nlines"`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := dotString(tt.in); got != tt.want {
			t.Errorf("dotString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWithAlpha(t *testing.T) {
	tests := []struct {
		color string
		alpha float64
		want  string
	}{
		{"#000000", 0.9, "#000000e6"},
		{"#ff0000", 1, "#ff0000"},
		{"black", 0.5, "black"},
		{"#123456", 0, "#12345600"},
	}
	for _, tt := range tests {
		if got := withAlpha(tt.color, tt.alpha); got != tt.want {
			t.Errorf("withAlpha(%q, %v) = %q, want %q", tt.color, tt.alpha, got, tt.want)
		}
	}
}

func TestParsePos(t *testing.T) {
	tests := []struct {
		in      string
		want    layout.Position
		wantErr bool
	}{
		{"27,18", layout.Position{X: 27, Y: 18}, false},
		{" 1.5,-2! ", layout.Position{X: 1.5, Y: -2}, false},
		{"", layout.Position{}, true},
		{"a,b", layout.Position{}, true},
	}
	for _, tt := range tests {
		got, err := parsePos(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePos(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePos(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	if !bytes.Contains(out, []byte(`viewBox="0 0 100.00 50.00" width="100" height="50"`)) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if plain := []byte("<svg><g/></svg>"); !bytes.Equal(normalizeViewBox(plain), plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := Render(testFigure(figure.Options{Size: [2]float64{3, 3}}), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output is not SVG: %.200s", svg)
	}
}

func TestForceLayout(t *testing.T) {
	g := network.New()
	_ = g.AddEdge("a", "b", 1)
	_ = g.AddEdge("b", "c", 2)
	_ = g.AddEdge("c", "a", 1)

	pos, err := ForceLayout{Engine: "neato", Seed: 1}.Compute(g)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(pos) != 3 {
		t.Fatalf("positions = %v", pos)
	}
	var lim float64
	for _, p := range pos {
		lim = math.Max(lim, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if math.Abs(lim-1) > 1e-6 {
		t.Errorf("max |coord| = %v, want 1", lim)
	}
}

func TestForceLayoutEscapedIDs(t *testing.T) {
	ids := []string{`a\b`, "c", `d"e`, "f g"}
	g := network.New()
	_ = g.AddEdge(ids[0], ids[1], 1)
	_ = g.AddEdge(ids[1], ids[2], 1)
	_ = g.AddEdge(ids[2], ids[3], 2)

	for _, engine := range Engines {
		t.Run(engine, func(t *testing.T) {
			pos, err := ForceLayout{Engine: engine, Seed: 42}.Compute(g)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			for _, id := range ids {
				if _, ok := pos[id]; !ok {
					t.Errorf("no position for %q in %v", id, pos)
				}
			}
		})
	}
}

func TestForceLayoutUnknownEngine(t *testing.T) {
	if _, err := (ForceLayout{Engine: "dot"}).Compute(network.New()); err == nil {
		t.Error("expected error for non-force engine")
	}
}
