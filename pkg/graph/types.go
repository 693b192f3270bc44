package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Input formats understood by [ReadData].
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Layout engines. EngineSpring is computed in-process by the layout package;
// the rest are delegated to Graphviz.
const (
	EngineSpring = "spring"
	EngineNeato  = "neato"
	EngineFDP    = "fdp"
	EngineSFDP   = "sfdp"
	EngineCirco  = "circo"
)

// =============================================================================
// Data - Node/Link Record
// =============================================================================

// Data is the canonical input record: a list of nodes and a list of links.
//
// Nodes may be given as objects ({"id": "a"}) or bare identifiers ("a").
// Links carry an optional numeric strength under either "weight" or "value".
type Data struct {
	Nodes []Node `json:"nodes" toml:"nodes"`
	Links []Link `json:"links" toml:"links"`
}

// =============================================================================
// Node
// =============================================================================

// Node is a single entry of the node list.
type Node struct {
	ID    string         `json:"id" toml:"id"`
	Label string         `json:"label,omitempty" toml:"label,omitempty"` // Display label (defaults to ID)
	Meta  map[string]any `json:"meta,omitempty" toml:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// UnmarshalJSON accepts either a node object or a bare string/number id.
func (n *Node) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] != '{' {
		id, err := decodeID(b)
		if err != nil {
			return fmt.Errorf("node: %w", err)
		}
		*n = Node{ID: id}
		return nil
	}

	var raw struct {
		ID    json.RawMessage `json:"id"`
		Label string          `json:"label"`
		Meta  map[string]any  `json:"meta"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return fmt.Errorf("node id: %w", err)
	}
	*n = Node{ID: id, Label: raw.Label, Meta: raw.Meta}
	return nil
}

// UnmarshalTOML accepts either a node table or a bare string/integer id.
func (n *Node) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case map[string]any:
		id, err := tomlID(t["id"])
		if err != nil {
			return fmt.Errorf("node id: %w", err)
		}
		*n = Node{ID: id}
		if label, ok := t["label"].(string); ok {
			n.Label = label
		}
		if meta, ok := t["meta"].(map[string]any); ok {
			n.Meta = meta
		}
		return nil
	default:
		id, err := tomlID(v)
		if err != nil {
			return fmt.Errorf("node: %w", err)
		}
		*n = Node{ID: id}
		return nil
	}
}

// =============================================================================
// Link
// =============================================================================

// Link connects two node ids. Weight and Value are both optional; when both
// are present Value wins, and when neither is present the link only marks
// its endpoints as connected.
type Link struct {
	Source string   `json:"source" toml:"source"`
	Target string   `json:"target" toml:"target"`
	Weight *float64 `json:"weight,omitempty" toml:"weight,omitempty"`
	Value  *float64 `json:"value,omitempty" toml:"value,omitempty"`
}

// Strength returns the effective edge weight and whether the link has one.
func (l Link) Strength() (float64, bool) {
	if l.Value != nil {
		return *l.Value, true
	}
	if l.Weight != nil {
		return *l.Weight, true
	}
	return 0, false
}

// UnmarshalJSON accepts string or numeric endpoints.
func (l *Link) UnmarshalJSON(b []byte) error {
	var raw struct {
		Source json.RawMessage `json:"source"`
		Target json.RawMessage `json:"target"`
		Weight *float64        `json:"weight"`
		Value  *float64        `json:"value"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	src, err := decodeID(raw.Source)
	if err != nil {
		return fmt.Errorf("link source: %w", err)
	}
	dst, err := decodeID(raw.Target)
	if err != nil {
		return fmt.Errorf("link target: %w", err)
	}
	*l = Link{Source: src, Target: dst, Weight: raw.Weight, Value: raw.Value}
	return nil
}

// UnmarshalTOML accepts string or integer endpoints and numeric strengths.
func (l *Link) UnmarshalTOML(v any) error {
	t, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("link must be a table, got %T", v)
	}
	src, err := tomlID(t["source"])
	if err != nil {
		return fmt.Errorf("link source: %w", err)
	}
	dst, err := tomlID(t["target"])
	if err != nil {
		return fmt.Errorf("link target: %w", err)
	}
	*l = Link{Source: src, Target: dst}
	if l.Weight, err = tomlNumber(t, "weight"); err != nil {
		return err
	}
	if l.Value, err = tomlNumber(t, "value"); err != nil {
		return err
	}
	return nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

// decodeID turns a JSON string or number into an identifier.
// A missing value decodes to the empty string so validation can report it.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String(), nil
	}
	return "", fmt.Errorf("must be a string or number, got %s", raw)
}

func tomlID(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("must be a string or number, got %T", v)
	}
}

func tomlNumber(t map[string]any, key string) (*float64, error) {
	v, ok := t[key]
	if !ok {
		return nil, nil
	}
	var f float64
	switch n := v.(type) {
	case int64:
		f = float64(n)
	case float64:
		f = n
	default:
		return nil, fmt.Errorf("link %s must be numeric, got %T", key, v)
	}
	return &f, nil
}
