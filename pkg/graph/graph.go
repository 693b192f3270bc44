package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	fgerrors "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/network"
)

// =============================================================================
// Data Serialization API
// =============================================================================

// ReadData decodes a record from r in the given format (FormatJSON or FormatTOML).
func ReadData(r io.Reader, format string) (Data, error) {
	var d Data
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return Data{}, fgerrors.Wrap(fgerrors.ErrCodeInvalidInput, err, "decode json")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
			return Data{}, fgerrors.Wrap(fgerrors.ErrCodeInvalidInput, err, "decode toml")
		}
	default:
		return Data{}, fgerrors.New(fgerrors.ErrCodeInvalidFormat, "unknown input format: %s", format)
	}
	return d, nil
}

// ReadDataFile reads a record from path. Files ending in .toml are decoded as
// TOML; everything else is treated as JSON.
func ReadDataFile(path string) (Data, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Data{}, fgerrors.Wrap(fgerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Data{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadData(f, FormatFromPath(path))
}

// FormatFromPath infers the input format from a file extension.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// WriteData writes d as indented JSON.
func WriteData(d Data, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalData converts d to JSON bytes. The output is stable for equal input,
// which makes it usable as a cache key source.
func MarshalData(d Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteData(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Filtering and Graph Construction
// =============================================================================

// BuildResult reports what [Build] left out of, or isolated in, the graph.
type BuildResult struct {
	// Dropped lists node ids that no link references. They never enter the graph.
	Dropped []string
	// Unweighted lists nodes that are referenced by links, but none of those
	// links carried a weight or value, so they have no edge in the graph.
	Unweighted []string
}

// ConnectedIDs returns the set of ids used as a link source or target.
func ConnectedIDs(d Data) map[string]bool {
	ids := make(map[string]bool, 2*len(d.Links))
	for _, l := range d.Links {
		ids[l.Source] = true
		ids[l.Target] = true
	}
	return ids
}

// Filter returns a copy of d whose node list keeps only nodes referenced by
// at least one link. Node order is preserved and links are untouched.
func Filter(d Data) Data {
	connected := ConnectedIDs(d)
	out := Data{
		Nodes: make([]Node, 0, len(d.Nodes)),
		Links: append([]Link(nil), d.Links...),
	}
	for _, n := range d.Nodes {
		if connected[n.ID] {
			out.Nodes = append(out.Nodes, n)
		}
	}
	return out
}

// Build filters d and converts it to an undirected weighted graph.
//
// Remaining nodes are added first, in input order. Each link then adds an
// edge with its weight and, if present, again with its value, so the value
// overrides the weight. Links without either still mark their endpoints as
// connected but add no edge; those endpoints are reported in
// BuildResult.Unweighted when they end up without any edge.
//
// Endpoints missing from the node list are added when their edge is.
func Build(d Data) (*network.Graph, BuildResult, error) {
	var res BuildResult

	connected := ConnectedIDs(d)
	g := network.New()
	for _, n := range d.Nodes {
		if !connected[n.ID] {
			res.Dropped = append(res.Dropped, n.ID)
			continue
		}
		if err := g.AddNode(n.ID); err != nil {
			return nil, res, fgerrors.Wrap(fgerrors.ErrCodeInvalidNodeID, err, "node %q", n.ID)
		}
	}

	for _, l := range d.Links {
		if l.Weight != nil {
			if err := g.AddEdge(l.Source, l.Target, *l.Weight); err != nil {
				return nil, res, fgerrors.Wrap(fgerrors.ErrCodeInvalidGraph, err, "link %s-%s", l.Source, l.Target)
			}
		}
		if l.Value != nil {
			if err := g.AddEdge(l.Source, l.Target, *l.Value); err != nil {
				return nil, res, fgerrors.Wrap(fgerrors.ErrCodeInvalidGraph, err, "link %s-%s", l.Source, l.Target)
			}
		}
	}

	res.Unweighted = g.Isolates()
	return g, res, nil
}

// Labels maps node ids to display labels for nodes that set one.
func Labels(d Data) map[string]string {
	labels := make(map[string]string)
	for _, n := range d.Nodes {
		if n.Label != "" {
			labels[n.ID] = n.Label
		}
	}
	return labels
}

// Validate checks d for problems that would make the graph ambiguous or
// impossible to render: empty or malformed ids, duplicate nodes, links with
// missing endpoints, and non-finite strengths.
func Validate(d Data) error {
	seen := make(map[string]bool, len(d.Nodes))
	for i, n := range d.Nodes {
		if err := fgerrors.ValidateNodeID(n.ID); err != nil {
			return fgerrors.Wrap(fgerrors.ErrCodeInvalidGraph, err, "node %d", i)
		}
		if seen[n.ID] {
			return fgerrors.New(fgerrors.ErrCodeInvalidGraph, "duplicate node id: %s", n.ID)
		}
		seen[n.ID] = true
	}

	for i, l := range d.Links {
		if err := fgerrors.ValidateNodeID(l.Source); err != nil {
			return fgerrors.Wrap(fgerrors.ErrCodeInvalidGraph, err, "link %d source", i)
		}
		if err := fgerrors.ValidateNodeID(l.Target); err != nil {
			return fgerrors.Wrap(fgerrors.ErrCodeInvalidGraph, err, "link %d target", i)
		}
		if l.Weight != nil {
			if err := fgerrors.ValidateFinite("weight", *l.Weight); err != nil {
				return fgerrors.Wrap(fgerrors.ErrCodeInvalidGraph, err, "link %s-%s", l.Source, l.Target)
			}
		}
		if l.Value != nil {
			if err := fgerrors.ValidateFinite("value", *l.Value); err != nil {
				return fgerrors.Wrap(fgerrors.ErrCodeInvalidGraph, err, "link %s-%s", l.Source, l.Target)
			}
		}
	}
	return nil
}
