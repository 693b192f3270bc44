package pipeline

import (
	"context"
	"fmt"
	"time"

	fgerrors "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/observability"
	"github.com/matzehuels/forcegraph/pkg/render/interactive"
	"github.com/matzehuels/forcegraph/pkg/render/nodelink"
	"github.com/matzehuels/forcegraph/pkg/render/plot"
)

// Render generates output artifacts in the requested formats.
// Formats the backend cannot produce are reported as UNSUPPORTED errors.
func Render(fig *figure.Figure, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	if err := ValidateBackend(opts.Backend); err != nil {
		return nil, err
	}
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ValidateCombination(opts.Backend, format); err != nil {
			return nil, err
		}
		data, err := renderFormat(fig, format, opts)
		if err != nil {
			return nil, fgerrors.Wrap(fgerrors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderWithHooks is Render with observability events.
func renderWithHooks(ctx context.Context, fig *figure.Figure, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := Render(fig, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormat(fig *figure.Figure, format string, opts Options) ([]byte, error) {
	if format == FormatJSON {
		return graph.MarshalLayout(fig.Export())
	}

	switch opts.Backend {
	case BackendPlot:
		switch format {
		case FormatPNG:
			return plot.RenderPNG(fig)
		case FormatSVG:
			return plot.RenderSVG(fig)
		case FormatPDF:
			return plot.RenderPDF(fig)
		}
	case BackendGraphviz:
		// Positions always come from the figure so every format agrees
		// with the exported layout.
		gv := nodelink.Options{Seed: fig.Seed}
		switch format {
		case FormatSVG:
			return nodelink.Render(fig, gv)
		case FormatPNG:
			return nodelink.RenderPNG(fig, gv, DefaultPNGScale)
		case FormatPDF:
			return nodelink.RenderPDF(fig, gv)
		}
	case BackendECharts:
		if format == FormatHTML {
			return interactive.Render(fig, interactive.Options{Force: opts.Physics, PageTitle: opts.Title})
		}
	}
	return nil, fmt.Errorf("backend %s cannot produce %s", opts.Backend, format)
}
