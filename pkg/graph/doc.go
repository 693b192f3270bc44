// Package graph provides the wire format for weighted graphs and layouts.
//
// This package defines forcegraph's canonical input record and the
// serialized layout, used for JSON/TOML files, API requests, caching, and
// interoperability with other tools.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Data], [Layout]: Serialization types (this package)
//   - pkg/network.Graph: In-memory undirected weighted graph
//   - pkg/figure.Figure: Laid-out graph ready for drawing
//
// Use [Build] to turn a record into a graph, and figure.Export /
// figure.FromLayout to convert between figures and layouts.
//
// # Input Format
//
// Records use the node-link format:
//
//	{
//	  "nodes": [{"id": "api"}, {"id": "db"}, "cache"],
//	  "links": [
//	    {"source": "api", "target": "db", "weight": 0.8},
//	    {"source": "api", "target": "cache", "value": 0.3}
//	  ]
//	}
//
// The same shape is accepted as TOML:
//
//	nodes = ["api", "db"]
//
//	[[links]]
//	source = "api"
//	target = "db"
//	weight = 0.8
//
// Node and endpoint ids may be strings or numbers; numbers are converted to
// their decimal text.
//
// # Filtering
//
// Only nodes referenced by at least one link are drawn. [Filter] applies this
// rule to a record and [Build] applies it while constructing the graph:
//
//	g, res, _ := graph.Build(d)
//	res.Dropped    // listed, but referenced by no link
//	res.Unweighted // referenced, but no link carried a weight
//
// When a link has both "weight" and "value", the value wins.
//
// # Layout Serialization
//
//	data, _ := graph.MarshalLayout(l)
//	l, _ = graph.UnmarshalLayout(data)
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
