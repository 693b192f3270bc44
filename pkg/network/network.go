package network

import (
	"errors"
	"math"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] and [Graph.AddEdge] when
	// a node ID is empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrInvalidWeight is returned by [Graph.AddEdge] when the weight is NaN
	// or infinite. Such weights cannot be drawn or laid out.
	ErrInvalidWeight = errors.New("edge weight must be finite")
)

// Edge is an undirected weighted connection between two nodes.
// U and V keep the orientation of the first insertion; lookups ignore it.
type Edge struct {
	U      string
	V      string
	Weight float64
}

// IsSelfLoop reports whether both endpoints are the same node.
func (e Edge) IsSelfLoop() bool { return e.U == e.V }

// Other returns the endpoint opposite to id.
func (e Edge) Other(id string) string {
	if e.U == id {
		return e.V
	}
	return e.U
}

type pair struct{ a, b string }

func key(u, v string) pair {
	if u > v {
		u, v = v, u
	}
	return pair{u, v}
}

// Graph is an undirected graph with at most one weighted edge per node pair.
// Nodes and edges are reported in insertion order so layouts and renderings
// are reproducible for the same input.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	order []string
	nodes map[string]struct{}
	edges map[pair]int // pair -> index into list
	list  []Edge
	adj   map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		edges: make(map[pair]int),
		adj:   make(map[string][]string),
	}
}

// AddNode adds a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, ok := g.nodes[id]; ok {
		return nil
	}
	g.nodes[id] = struct{}{}
	g.order = append(g.order, id)
	return nil
}

// AddEdge connects u and v with the given weight, adding missing endpoints.
// If the pair is already connected (in either orientation) the weight is
// overwritten and the original insertion position is kept.
func (g *Graph) AddEdge(u, v string, weight float64) error {
	if u == "" || v == "" {
		return ErrInvalidNodeID
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return ErrInvalidWeight
	}
	_ = g.AddNode(u)
	_ = g.AddNode(v)

	k := key(u, v)
	if i, ok := g.edges[k]; ok {
		g.list[i].Weight = weight
		return nil
	}
	g.edges[k] = len(g.list)
	g.list = append(g.list, Edge{U: u, V: v, Weight: weight})
	g.adj[u] = append(g.adj[u], v)
	if u != v {
		g.adj[v] = append(g.adj[v], u)
	}
	return nil
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Edge returns the edge between u and v regardless of orientation.
func (g *Graph) Edge(u, v string) (Edge, bool) {
	i, ok := g.edges[key(u, v)]
	if !ok {
		return Edge{}, false
	}
	return g.list[i], true
}

// Nodes returns node IDs in insertion order.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.list) }

// Neighbors returns the nodes adjacent to id.
func (g *Graph) Neighbors(id string) []string { return slices.Clone(g.adj[id]) }

// Degree returns the number of edge endpoints at id. A self-loop counts twice.
func (g *Graph) Degree(id string) int {
	d := len(g.adj[id])
	if _, ok := g.edges[key(id, id)]; ok {
		d++
	}
	return d
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.list) }

// Isolates returns the nodes with degree zero, in insertion order.
func (g *Graph) Isolates() []string {
	var out []string
	for _, id := range g.order {
		if len(g.adj[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// RemoveNodes deletes the given nodes and every edge touching them.
// Unknown IDs are ignored.
func (g *Graph) RemoveNodes(ids ...string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if g.HasNode(id) {
			drop[id] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	g.order = slices.DeleteFunc(g.order, func(id string) bool { return drop[id] })
	for id := range drop {
		delete(g.nodes, id)
		delete(g.adj, id)
	}
	for id, nbrs := range g.adj {
		g.adj[id] = slices.DeleteFunc(nbrs, func(n string) bool { return drop[n] })
	}

	kept := g.list[:0]
	for _, e := range g.list {
		if !drop[e.U] && !drop[e.V] {
			kept = append(kept, e)
		}
	}
	g.list = kept
	g.edges = make(map[pair]int, len(g.list))
	for i, e := range g.list {
		g.edges[key(e.U, e.V)] = i
	}
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, id := range g.order {
		_ = c.AddNode(id)
	}
	for _, e := range g.list {
		_ = c.AddEdge(e.U, e.V, e.Weight)
	}
	return c
}

// TotalWeight returns the sum of all edge weights.
func (g *Graph) TotalWeight() float64 {
	var sum float64
	for _, e := range g.list {
		sum += e.Weight
	}
	return sum
}
