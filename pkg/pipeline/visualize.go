package pipeline

import (
	"context"

	fgerrors "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/render/display"
)

// Visualize builds, lays out, and draws d.
//
// With opts.Render unset it returns the figure for further composition:
// render it with [Render], export it, or hand it to a backend directly.
// With opts.Render set it renders the first requested format, opens it in
// the platform viewer, and returns a nil figure.
func Visualize(ctx context.Context, d graph.Data, opts Options) (*figure.Figure, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	fig, res, err := ComputeFigure(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("computed layout",
		"engine", opts.Engine,
		"nodes", fig.Graph().NodeCount()+len(fig.Unweighted()),
		"dropped", len(res.Dropped))

	if !opts.Render {
		return fig, nil
	}
	return nil, show(ctx, fig, opts)
}

// show renders the first format of opts and opens it.
func show(ctx context.Context, fig *figure.Figure, opts Options) error {
	format := opts.Formats[0]
	opts.Formats = []string{format}
	artifacts, err := renderWithHooks(ctx, fig, opts)
	if err != nil {
		return err
	}

	viewer := display.Viewer{}
	if opts.Viewer != nil {
		viewer = *opts.Viewer
	}
	path, err := viewer.Show(ctx, artifacts[format], format)
	if err != nil {
		return fgerrors.Wrap(fgerrors.ErrCodeInternal, err, "display figure")
	}
	opts.Logger.Info("opened figure", "path", path)
	return nil
}
