package graph

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	fgerrors "github.com/matzehuels/forcegraph/pkg/errors"
)

func ptr(f float64) *float64 { return &f }

func TestReadDataJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes []string
		wantLinks int
		wantErr   bool
	}{
		{
			name:      "ObjectNodes",
			input:     `{"nodes":[{"id":"a"},{"id":"b","label":"B"}],"links":[{"source":"a","target":"b","weight":2}]}`,
			wantNodes: []string{"a", "b"},
			wantLinks: 1,
		},
		{
			name:      "BareNodes",
			input:     `{"nodes":["a","b"],"links":[]}`,
			wantNodes: []string{"a", "b"},
		},
		{
			name:      "NumericIDs",
			input:     `{"nodes":[1,{"id":2}],"links":[{"source":1,"target":2,"value":0.5}]}`,
			wantNodes: []string{"1", "2"},
			wantLinks: 1,
		},
		{
			name:    "InvalidJSON",
			input:   `{"nodes":`,
			wantErr: true,
		},
		{
			name:    "BadEndpoint",
			input:   `{"links":[{"source":true,"target":"b"}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ReadData(strings.NewReader(tt.input), FormatJSON)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadData() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !fgerrors.Is(err, fgerrors.ErrCodeInvalidInput) {
					t.Errorf("error code = %v, want INVALID_INPUT", fgerrors.GetCode(err))
				}
				return
			}
			var ids []string
			for _, n := range d.Nodes {
				ids = append(ids, n.ID)
			}
			if !slices.Equal(ids, tt.wantNodes) {
				t.Errorf("nodes = %v, want %v", ids, tt.wantNodes)
			}
			if len(d.Links) != tt.wantLinks {
				t.Errorf("links = %d, want %d", len(d.Links), tt.wantLinks)
			}
		})
	}
}

func TestReadDataTOML(t *testing.T) {
	input := `
nodes = ["a", "b", 3]

[[links]]
source = "a"
target = "b"
weight = 2

[[links]]
source = "b"
target = 3
value = 0.25
`
	d, err := ReadData(strings.NewReader(input), FormatTOML)
	if err != nil {
		t.Fatalf("ReadData: %v", err)
	}
	if len(d.Nodes) != 3 || d.Nodes[2].ID != "3" {
		t.Fatalf("nodes = %+v", d.Nodes)
	}
	if len(d.Links) != 2 {
		t.Fatalf("links = %d, want 2", len(d.Links))
	}
	if w, ok := d.Links[0].Strength(); !ok || w != 2 {
		t.Errorf("link 0 strength = %v, %v", w, ok)
	}
	if d.Links[1].Target != "3" || d.Links[1].Value == nil || *d.Links[1].Value != 0.25 {
		t.Errorf("link 1 = %+v", d.Links[1])
	}
}

func TestReadDataUnknownFormat(t *testing.T) {
	_, err := ReadData(strings.NewReader("{}"), "yaml")
	if !fgerrors.Is(err, fgerrors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadDataFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "g.json")
	tomlPath := filepath.Join(dir, "g.toml")
	if err := os.WriteFile(jsonPath, []byte(`{"nodes":["x"],"links":[{"source":"x","target":"y","weight":1}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tomlPath, []byte("nodes = [\"x\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := ReadDataFile(jsonPath)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(d.Links) != 1 {
		t.Errorf("json links = %d", len(d.Links))
	}

	d, err = ReadDataFile(tomlPath)
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	if len(d.Nodes) != 1 || d.Nodes[0].ID != "x" {
		t.Errorf("toml nodes = %+v", d.Nodes)
	}

	_, err = ReadDataFile(filepath.Join(dir, "missing.json"))
	if !fgerrors.Is(err, fgerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestStrength(t *testing.T) {
	tests := []struct {
		name   string
		link   Link
		want   float64
		wantOK bool
	}{
		{"None", Link{}, 0, false},
		{"Weight", Link{Weight: ptr(2)}, 2, true},
		{"Value", Link{Value: ptr(3)}, 3, true},
		{"ValueWins", Link{Weight: ptr(2), Value: ptr(3)}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.link.Strength()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Strength() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	d := Data{
		Nodes: []Node{{ID: "c"}, {ID: "a"}, {ID: "lonely"}, {ID: "b"}},
		Links: []Link{
			{Source: "a", Target: "b", Weight: ptr(1)},
			{Source: "c", Target: "a"},
		},
	}
	f := Filter(d)

	var ids []string
	for _, n := range f.Nodes {
		ids = append(ids, n.ID)
	}
	if want := []string{"c", "a", "b"}; !slices.Equal(ids, want) {
		t.Errorf("Filter nodes = %v, want %v", ids, want)
	}
	if len(f.Links) != 2 {
		t.Errorf("Filter links = %d, want 2", len(f.Links))
	}
	if len(d.Nodes) != 4 {
		t.Error("Filter modified its input")
	}
}

func TestBuildDropsIsolatedNodes(t *testing.T) {
	d := Data{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Links: []Link{
			{Source: "a", Target: "b", Weight: ptr(1)},
			{Source: "b", Target: "a", Weight: ptr(2)},
		},
	}

	g, res, err := Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := g.Nodes(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("nodes = %v, want [a b]", got)
	}
	if g.HasNode("c") {
		t.Error("isolated node c should be dropped")
	}
	if !slices.Equal(res.Dropped, []string{"c"}) {
		t.Errorf("Dropped = %v, want [c]", res.Dropped)
	}
	if len(res.Unweighted) != 0 {
		t.Errorf("Unweighted = %v, want none", res.Unweighted)
	}
	e, _ := g.Edge("a", "b")
	if e.Weight != 2 {
		t.Errorf("weight = %v, want 2 (last write wins)", e.Weight)
	}
}

func TestBuildWeightSemantics(t *testing.T) {
	tests := []struct {
		name       string
		link       Link
		wantEdge   bool
		wantWeight float64
	}{
		{"WeightOnly", Link{Source: "a", Target: "b", Weight: ptr(1.5)}, true, 1.5},
		{"ValueOnly", Link{Source: "a", Target: "b", Value: ptr(4)}, true, 4},
		{"ValueOverridesWeight", Link{Source: "a", Target: "b", Weight: ptr(1), Value: ptr(7)}, true, 7},
		{"NoStrength", Link{Source: "a", Target: "b"}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, res, err := Build(Data{Nodes: []Node{{ID: "a"}, {ID: "b"}}, Links: []Link{tt.link}})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			e, ok := g.Edge("a", "b")
			if ok != tt.wantEdge {
				t.Fatalf("edge present = %v, want %v", ok, tt.wantEdge)
			}
			if ok && e.Weight != tt.wantWeight {
				t.Errorf("weight = %v, want %v", e.Weight, tt.wantWeight)
			}
			if !tt.wantEdge && !slices.Equal(res.Unweighted, []string{"a", "b"}) {
				t.Errorf("Unweighted = %v, want [a b]", res.Unweighted)
			}
		})
	}
}

func TestBuildAddsUnlistedEndpoints(t *testing.T) {
	d := Data{
		Nodes: []Node{{ID: "a"}},
		Links: []Link{{Source: "a", Target: "ghost", Weight: ptr(1)}},
	}
	g, _, err := Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !g.HasNode("ghost") {
		t.Error("endpoint missing from nodes should be added")
	}
}

func TestBuildEmpty(t *testing.T) {
	g, res, err := Build(Data{Nodes: []Node{{ID: "a"}}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("graph = %d nodes, %d edges, want empty", g.NodeCount(), g.EdgeCount())
	}
	if !slices.Equal(res.Dropped, []string{"a"}) {
		t.Errorf("Dropped = %v", res.Dropped)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    Data
		wantErr bool
	}{
		{"Valid", Data{Nodes: []Node{{ID: "a"}}, Links: []Link{{Source: "a", Target: "b", Weight: ptr(1)}}}, false},
		{"Empty", Data{}, false},
		{"EmptyNodeID", Data{Nodes: []Node{{ID: ""}}}, true},
		{"DuplicateNode", Data{Nodes: []Node{{ID: "a"}, {ID: "a"}}}, true},
		{"ControlChar", Data{Nodes: []Node{{ID: "a\x00b"}}}, true},
		{"EmptySource", Data{Links: []Link{{Source: "", Target: "b"}}}, true},
		{"EmptyTarget", Data{Links: []Link{{Source: "a", Target: ""}}}, true},
		{"NaNWeight", Data{Links: []Link{{Source: "a", Target: "b", Weight: ptr(math.NaN())}}}, true},
		{"InfValue", Data{Links: []Link{{Source: "a", Target: "b", Value: ptr(math.Inf(-1))}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !fgerrors.Is(err, fgerrors.ErrCodeInvalidGraph) {
				t.Errorf("error code = %v, want INVALID_GRAPH", fgerrors.GetCode(err))
			}
		})
	}
}

func TestLabels(t *testing.T) {
	d := Data{Nodes: []Node{{ID: "a", Label: "Alpha"}, {ID: "b"}}}
	labels := Labels(d)
	if len(labels) != 1 || labels["a"] != "Alpha" {
		t.Errorf("Labels() = %v", labels)
	}
	if d.Nodes[1].DisplayLabel() != "b" {
		t.Errorf("DisplayLabel() = %q, want b", d.Nodes[1].DisplayLabel())
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := Layout{
		Engine:      EngineSpring,
		Width:       30,
		Height:      30,
		WeightScale: 10,
		Nodes: []LayoutNode{
			{ID: "a", X: -1, Y: 0.5},
			{ID: "b", X: 1, Y: -0.5},
			{ID: "z", Unweighted: true},
		},
		Edges: []LayoutEdge{{Source: "a", Target: "b", Weight: 2}},
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if len(got.Nodes) != 3 || !got.Nodes[2].Unweighted {
		t.Errorf("nodes = %+v", got.Nodes)
	}
	if len(got.Edges) != 1 || got.Edges[0].Weight != 2 {
		t.Errorf("edges = %+v", got.Edges)
	}
}

func TestUnmarshalLayout(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"DefaultsEngine", `{"nodes":[{"id":"a"}],"edges":[]}`, false},
		{"UnknownEdgeNode", `{"nodes":[{"id":"a"}],"edges":[{"source":"a","target":"b","weight":1}]}`, true},
		{"EmptyNodeID", `{"nodes":[{"id":""}]}`, true},
		{"Malformed", `[`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := UnmarshalLayout([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalLayout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && l.Engine != EngineSpring {
				t.Errorf("Engine = %q, want %q", l.Engine, EngineSpring)
			}
		})
	}
}
