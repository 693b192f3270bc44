package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	fgerrors "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
	"github.com/matzehuels/forcegraph/pkg/network"
)

// Engines lists the Graphviz force engines usable with [ForceLayout].
var Engines = []string{graph.EngineNeato, graph.EngineFDP, graph.EngineSFDP, graph.EngineCirco}

// IsEngine reports whether name is a Graphviz engine supported by [ForceLayout].
func IsEngine(name string) bool {
	for _, e := range Engines {
		if e == name {
			return true
		}
	}
	return false
}

// ForceLayout computes positions with a Graphviz force engine.
// It implements layout.Layout, so Graphviz layouts can be drawn by any backend.
type ForceLayout struct {
	Engine string
	Seed   uint64
	// Scale and Center are applied to the result as with layout.Spring.
	Scale  float64
	Center layout.Position
}

// Compute lays out g with the configured engine and rescales the result.
func (l ForceLayout) Compute(g *network.Graph) (layout.Positions, error) {
	if !IsEngine(l.Engine) {
		return nil, fgerrors.New(fgerrors.ErrCodeInvalidEngine, "unknown graphviz engine: %s", l.Engine)
	}
	scale := l.Scale
	if scale == 0 {
		scale = layout.DefaultScale
	}

	ids := g.Nodes()
	switch len(ids) {
	case 0:
		return layout.Positions{}, nil
	case 1:
		return layout.Positions{ids[0]: l.Center}, nil
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(l.Engine))

	in, err := graphviz.ParseBytes([]byte(layoutDOT(g, l.Seed)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer in.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, in, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("layout %s: %w", l.Engine, err)
	}

	out, err := graphviz.ParseBytes(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("parse %s output: %w", l.Engine, err)
	}
	defer out.Close()

	names := dotNames(ids)
	byName := make(map[string]string, len(ids))
	for _, id := range ids {
		byName[names[id]] = id
	}

	raw := make(layout.Positions, len(ids))
	n, err := out.FirstNode()
	for ; err == nil && n != nil; n, err = out.NextNode(n) {
		name, nerr := n.Name()
		if nerr != nil {
			return nil, fmt.Errorf("read node name: %w", nerr)
		}
		id, ok := byName[name]
		if !ok {
			continue
		}
		p, perr := parsePos(n.GetStr("pos"))
		if perr != nil {
			return nil, fmt.Errorf("node %s: %w", id, perr)
		}
		raw[id] = p
	}
	if err != nil {
		return nil, fmt.Errorf("walk %s output: %w", l.Engine, err)
	}
	for _, id := range ids {
		if _, ok := raw[id]; !ok {
			return nil, fmt.Errorf("%s returned no position for %s", l.Engine, id)
		}
	}

	return layout.Rescale(raw, scale, l.Center), nil
}

// layoutDOT describes g for layout only: point-shaped nodes and edge
// weights as attraction strengths.
func layoutDOT(g *network.Graph, seed uint64) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  start=%d;\n", seed)
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=point];\n")
	ids := g.Nodes()
	names := dotNames(ids)
	for _, id := range ids {
		fmt.Fprintf(&buf, "  %s;\n", names[id])
	}
	for _, e := range g.Edges() {
		if w := math.Abs(e.Weight); w > 0 {
			fmt.Fprintf(&buf, "  %s -- %s [weight=%s];\n", names[e.U], names[e.V], fmtFloat(w))
		} else {
			fmt.Fprintf(&buf, "  %s -- %s;\n", names[e.U], names[e.V])
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

// dotNames assigns each id a DOT-safe node name by position. Node ids are
// free text, so they never appear as DOT identifiers.
func dotNames(ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	for i, id := range ids {
		names[id] = "n" + strconv.Itoa(i)
	}
	return names
}

// dotString quotes s as a DOT escString, so that labels render s verbatim.
func dotString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "")
	return `"` + r.Replace(s) + `"`
}

// parsePos parses a Graphviz "x,y" position, ignoring a trailing pin marker.
func parsePos(s string) (layout.Position, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "!")
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return layout.Position{}, fmt.Errorf("malformed pos %q", s)
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return layout.Position{}, fmt.Errorf("malformed pos %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return layout.Position{}, fmt.Errorf("malformed pos %q: %w", s, err)
	}
	return layout.Position{X: x, Y: y}, nil
}
