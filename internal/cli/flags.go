package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// optionFlags holds the pipeline flags shared by render, layout and show.
// Only flags the user actually set override the configured values.
type optionFlags struct {
	width       float64
	height      float64
	dpi         float64
	weightScale float64
	edgeLabels  float64
	title       string

	engine     string
	seed       uint64
	iterations int
	k          float64

	backend string
	formats string
	physics bool
	refresh bool
}

// registerLayout adds the flags that change node positions.
func (f *optionFlags) registerLayout(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", figure.DefaultWidth, "figure width in inches")
	cmd.Flags().Float64Var(&f.height, "height", figure.DefaultHeight, "figure height in inches")
	cmd.Flags().Float64Var(&f.dpi, "dpi", figure.DefaultDPI, "raster resolution")
	cmd.Flags().Float64Var(&f.weightScale, "weight-scale", figure.DefaultWeightScale, "edge width per unit of weight (0 selects the default)")
	cmd.Flags().StringVar(&f.title, "title", "", "figure title")
	cmd.Flags().StringVarP(&f.engine, "engine", "e", pipeline.DefaultEngine, "layout engine: spring, neato, fdp, sfdp, circo")
	cmd.Flags().Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed for the initial positions")
	cmd.Flags().IntVar(&f.iterations, "iterations", pipeline.DefaultIterations, "spring iterations")
	cmd.Flags().Float64Var(&f.k, "k", 0, "spring optimal distance (default 1/sqrt(n))")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// registerRender adds the flags that only affect drawing.
func (f *optionFlags) registerRender(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): png, svg, pdf, html, json (comma-separated)")
	cmd.Flags().StringVarP(&f.backend, "backend", "b", pipeline.DefaultBackend, "renderer: plot, graphviz, echarts")
	cmd.Flags().Float64Var(&f.edgeLabels, "edge-labels", 0, "edge label font size in points, 0 hides labels")
	cmd.Flags().BoolVar(&f.physics, "physics", false, "keep the force simulation running in HTML output")
}

// apply copies the flags set on cmd into opts.
func (f *optionFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("width") {
		opts.Size[0] = f.width
	}
	if fs.Changed("height") {
		opts.Size[1] = f.height
	}
	if fs.Changed("dpi") {
		opts.DPI = f.dpi
	}
	if fs.Changed("weight-scale") {
		opts.WeightScale = f.weightScale
	}
	if fs.Changed("edge-labels") {
		opts.EdgeLabels = f.edgeLabels
	}
	if fs.Changed("title") {
		opts.Title = f.title
	}
	if fs.Changed("engine") {
		opts.Engine = f.engine
	}
	if fs.Changed("seed") {
		opts.Seed = f.seed
	}
	if fs.Changed("iterations") {
		opts.Iterations = f.iterations
	}
	if fs.Changed("k") {
		opts.K = f.k
	}
	if fs.Changed("backend") {
		opts.Backend = f.backend
		// Formats configured for another backend may not apply.
		if !fs.Changed("format") {
			opts.Formats = nil
		}
	}
	if fs.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if fs.Changed("physics") {
		opts.Physics = f.physics
	}
	opts.Refresh = f.refresh
}

// pipelineOptions merges the configuration with the flags set on cmd and
// validates the result.
func (c *CLI) pipelineOptions(cmd *cobra.Command, f *optionFlags) (pipeline.Options, error) {
	opts := c.Config.PipelineOptions()
	f.apply(cmd, &opts)
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// parseFormats splits a comma-separated format list. An empty string yields
// nil, which selects the backend's default format.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
