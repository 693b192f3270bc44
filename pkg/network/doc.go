// Package network provides an undirected weighted graph for force-directed
// visualization.
//
// # Overview
//
// A [Graph] holds string-identified nodes and at most one weighted edge per
// unordered node pair. It is the in-memory structure that layouts and
// renderers operate on; the wire format lives in the graph package.
//
//	g := network.New()
//	_ = g.AddEdge("api", "db", 0.8)
//	_ = g.AddEdge("api", "cache", 0.3)
//	g.Degree("api") // 2
//
// # Semantics
//
// Adding an edge creates missing endpoints. Re-adding an existing pair, in
// either orientation, overwrites its weight. Nodes without any edge are
// reported by [Graph.Isolates] and can be dropped with [Graph.RemoveNodes].
//
// Iteration order is insertion order, which keeps seeded layouts stable
// across runs.
package network
