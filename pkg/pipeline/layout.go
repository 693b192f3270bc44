package pipeline

import (
	"context"
	"time"

	fgerrors "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/network"
	"github.com/matzehuels/forcegraph/pkg/observability"
)

// =============================================================================
// Build
// =============================================================================

// BuildGraph validates d and converts it to a weighted graph. Nodes that no
// link references are dropped and reported in the BuildResult.
func BuildGraph(ctx context.Context, d graph.Data) (*network.Graph, graph.BuildResult, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(d.Nodes), len(d.Links))
	start := time.Now()

	g, res, err := buildGraph(d)
	nodes := 0
	if g != nil {
		nodes = g.NodeCount()
	}
	hooks.OnBuildComplete(ctx, nodes, len(res.Dropped), time.Since(start), err)
	return g, res, err
}

func buildGraph(d graph.Data) (*network.Graph, graph.BuildResult, error) {
	if err := graph.Validate(d); err != nil {
		return nil, graph.BuildResult{}, err
	}
	return graph.Build(d)
}

// =============================================================================
// Layout
// =============================================================================

// ComputeFigure builds d, lays out the graph, and returns the figure.
// opts must have defaults applied.
//
// Every node that survives filtering is laid out, including nodes whose
// links carried no weight; those are drawn as plain markers.
func ComputeFigure(ctx context.Context, d graph.Data, opts Options) (*figure.Figure, graph.BuildResult, error) {
	g, res, err := BuildGraph(ctx, d)
	if err != nil {
		return nil, res, err
	}
	opts.Logger.Debug("built graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"dropped", len(res.Dropped),
		"unweighted", len(res.Unweighted))

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Engine, g.NodeCount())
	start := time.Now()
	pos, err := opts.Layouter().Compute(g)
	hooks.OnLayoutComplete(ctx, opts.Engine, time.Since(start), err)
	if err != nil {
		if fgerrors.GetCode(err) != "" {
			return nil, res, err
		}
		return nil, res, fgerrors.Wrap(fgerrors.ErrCodeInternal, err, "layout %s", opts.Engine)
	}

	fig := figure.New(g, pos, res.Unweighted, opts.FigureOptions())
	fig.Engine = opts.Engine
	fig.Seed = opts.Seed
	fig.Labels = graph.Labels(d)
	return fig, res, nil
}

// FigureFromLayout rebuilds a figure from a serialized layout, applying the
// render-time options (edge labels) that layouts do not store.
func FigureFromLayout(l graph.Layout, opts Options) (*figure.Figure, error) {
	fig, err := figure.FromLayout(l, opts.FigureOptions())
	if err != nil {
		return nil, fgerrors.Wrap(fgerrors.ErrCodeInvalidInput, err, "invalid layout")
	}
	return fig, nil
}
