package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/network"
)

const eps = 1e-9

func pathGraph(t *testing.T, weights ...float64) *network.Graph {
	t.Helper()
	g := network.New()
	ids := []string{"a", "b", "c", "d", "e", "f"}
	for i, w := range weights {
		if err := g.AddEdge(ids[i], ids[i+1], w); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func dist(a, b Position) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

func TestSpringEmptyAndSingle(t *testing.T) {
	pos, err := Spring{}.Compute(network.New())
	if err != nil || len(pos) != 0 {
		t.Errorf("empty graph: pos = %v, err = %v", pos, err)
	}

	g := network.New()
	_ = g.AddNode("only")
	center := Position{X: 3, Y: -2}
	pos, err = Spring{Center: center}.Compute(g)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if pos["only"] != center {
		t.Errorf("single node = %v, want %v", pos["only"], center)
	}
}

func TestSpringDeterministic(t *testing.T) {
	g := pathGraph(t, 1, 2, 0.5, 3)

	a, err := Spring{Seed: 7}.Compute(g)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Spring{Seed: 7}.Compute(g.Clone())
	if err != nil {
		t.Fatal(err)
	}
	for id, p := range a {
		if b[id] != p {
			t.Errorf("%s: %v != %v", id, p, b[id])
		}
	}

	c, _ := Spring{Seed: 8}.Compute(g)
	same := true
	for id, p := range a {
		if c[id] != p {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical layouts")
	}
}

func TestSpringScaledToUnitBox(t *testing.T) {
	g := pathGraph(t, 1, 1, 1, 1, 1)
	_ = g.AddNode("isolated")

	pos, err := Spring{Seed: DefaultSeed}.Compute(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(pos) != g.NodeCount() {
		t.Fatalf("positions = %d, want %d", len(pos), g.NodeCount())
	}

	var lim float64
	for id, p := range pos {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("%s has NaN position", id)
		}
		lim = math.Max(lim, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if math.Abs(lim-1) > 1e-6 {
		t.Errorf("max |coord| = %v, want 1", lim)
	}
}

func TestSpringHeavyEdgesAreShorter(t *testing.T) {
	// A triangle with one heavy edge: its endpoints should sit closer
	// together than the endpoints of the light edges.
	g := network.New()
	_ = g.AddEdge("a", "b", 10)
	_ = g.AddEdge("b", "c", 0.1)
	_ = g.AddEdge("a", "c", 0.1)

	pos, err := Spring{Seed: 1, Iterations: 200}.Compute(g)
	if err != nil {
		t.Fatal(err)
	}
	heavy := dist(pos["a"], pos["b"])
	if heavy >= dist(pos["b"], pos["c"]) || heavy >= dist(pos["a"], pos["c"]) {
		t.Errorf("heavy edge length %v not shorter than light edges (%v, %v)",
			heavy, dist(pos["b"], pos["c"]), dist(pos["a"], pos["c"]))
	}
}

func TestSpringInitialPositions(t *testing.T) {
	g := pathGraph(t, 1)
	pos, err := Spring{
		Iterations: 1,
		Initial:    Positions{"a": {X: 0, Y: 0}, "b": {X: 1, Y: 0}},
	}.Compute(g)
	if err != nil {
		t.Fatal(err)
	}
	// Two nodes pushed symmetrically along the x axis stay on it.
	if math.Abs(pos["a"].Y) > eps || math.Abs(pos["b"].Y) > eps {
		t.Errorf("nodes left the x axis: %v", pos)
	}
	if pos["a"].X >= pos["b"].X {
		t.Errorf("node order flipped: %v", pos)
	}
}

func TestSpringInvalidK(t *testing.T) {
	if _, err := (Spring{K: -1}).Compute(pathGraph(t, 1)); err == nil {
		t.Error("expected error for negative K")
	}
}

func TestRescale(t *testing.T) {
	tests := []struct {
		name   string
		in     Positions
		scale  float64
		center Position
		want   Positions
	}{
		{
			name:  "Empty",
			in:    Positions{},
			scale: 1,
			want:  Positions{},
		},
		{
			name:  "Symmetric",
			in:    Positions{"a": {X: 0, Y: 0}, "b": {X: 4, Y: 2}},
			scale: 1,
			want:  Positions{"a": {X: -1, Y: -0.5}, "b": {X: 1, Y: 0.5}},
		},
		{
			name:   "ScaleAndCenter",
			in:     Positions{"a": {X: -1, Y: 0}, "b": {X: 1, Y: 0}},
			scale:  5,
			center: Position{X: 10, Y: 10},
			want:   Positions{"a": {X: 5, Y: 10}, "b": {X: 15, Y: 10}},
		},
		{
			name:   "Coincident",
			in:     Positions{"a": {X: 2, Y: 2}, "b": {X: 2, Y: 2}},
			scale:  1,
			center: Position{X: 1, Y: 1},
			want:   Positions{"a": {X: 1, Y: 1}, "b": {X: 1, Y: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rescale(tt.in, tt.scale, tt.center)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for id, w := range tt.want {
				if dist(got[id], w) > eps {
					t.Errorf("%s = %v, want %v", id, got[id], w)
				}
			}
		})
	}
}

func TestBounds(t *testing.T) {
	pos := Positions{"a": {X: -1, Y: 2}, "b": {X: 3, Y: -4}}
	minX, minY, maxX, maxY := pos.Bounds()
	if minX != -1 || minY != -4 || maxX != 3 || maxY != 2 {
		t.Errorf("Bounds() = %v %v %v %v", minX, minY, maxX, maxY)
	}
}
