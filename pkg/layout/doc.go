// Package layout computes node positions for undirected weighted graphs.
//
// # Spring Layout
//
// [Spring] implements the Fruchterman-Reingold model: nodes repel each other
// like charged particles while edges pull their endpoints together with a
// force proportional to the edge weight. Heavier edges therefore end up
// shorter.
//
//	pos, err := layout.Spring{Seed: 42}.Compute(g)
//
// The result is centered and scaled so the largest coordinate is
// [Spring.Scale] (1 by default), giving positions in [-1, 1]².
//
// # Determinism
//
// Initial positions come from a PCG generator seeded with [Spring.Seed], and
// nodes are processed in graph insertion order, so the same graph and seed
// always produce the same layout. This is what makes layouts cacheable.
package layout
