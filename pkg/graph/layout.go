package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Positioned Graph Format
// =============================================================================

// Layout is the serialization format for a laid-out figure.
//
// It carries everything a renderer needs to redraw the figure without
// recomputing the layout: node positions in layout coordinates, weighted
// edges, the nodes that ended up without a weighted edge, and the figure
// dimensions. Layouts are what the pipeline caches and what the
// `forcegraph layout` command writes.
type Layout struct {
	Engine      string  `json:"engine"`
	Width       float64 `json:"width"`  // inches
	Height      float64 `json:"height"` // inches
	DPI         float64 `json:"dpi,omitempty"`
	WeightScale float64 `json:"weight_scale"`
	Seed        uint64  `json:"seed,omitempty"`
	Title       string  `json:"title,omitempty"`

	Nodes []LayoutNode `json:"nodes"`
	Edges []LayoutEdge `json:"edges"`
}

// LayoutNode is a node with its computed position.
type LayoutNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`

	// Unweighted nodes were positioned but are drawn as plain markers
	// and are not part of the edge set.
	Unweighted bool `json:"unweighted,omitempty"`
}

// LayoutEdge is an undirected weighted edge between two laid-out nodes.
type LayoutEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Edges must reference nodes present in the layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.Engine == "" {
		l.Engine = EngineSpring
	}

	known := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.ID == "" {
			return Layout{}, fmt.Errorf("layout node with empty id")
		}
		known[n.ID] = true
	}
	for _, e := range l.Edges {
		if !known[e.Source] || !known[e.Target] {
			return Layout{}, fmt.Errorf("layout edge %s-%s references unknown node", e.Source, e.Target)
		}
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
