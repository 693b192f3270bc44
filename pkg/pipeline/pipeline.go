// Package pipeline provides the visualization pipeline for forcegraph.
//
// This package implements the complete build → layout → render pipeline
// shared by the CLI and the API server, so both entry points produce the
// same figures for the same input and options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: validate the nodes/links record, drop nodes no link references,
//     and convert the rest to a weighted undirected graph
//  2. Layout: compute node positions with the spring model or a Graphviz engine
//  3. Render: draw the figure in one or more formats (PNG, SVG, PDF, HTML, JSON)
//
// # Usage
//
// For one-off use, [Visualize] returns the figure or displays it:
//
//	fig, err := pipeline.Visualize(ctx, data, pipeline.Options{WeightScale: 5})
//	artifacts, err := pipeline.Render(fig, pipeline.Options{Formats: []string{"svg"}})
//
// A [Runner] adds caching of layouts and artifacts:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{Formats: []string{"png"}})
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/cache"
	fgerrors "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
	"github.com/matzehuels/forcegraph/pkg/render/display"
	"github.com/matzehuels/forcegraph/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = layout.DefaultSeed

	// DefaultIterations is the default number of spring model steps.
	DefaultIterations = layout.DefaultIterations

	// DefaultEngine is the default layout engine.
	DefaultEngine = graph.EngineSpring

	// DefaultBackend is the default renderer.
	DefaultBackend = BackendPlot

	// DefaultPNGScale is the rsvg-convert scale for Graphviz PNG output.
	DefaultPNGScale = 1.0
)

// Backends draw a figure.
const (
	BackendPlot     = "plot"     // go-chart canvas
	BackendGraphviz = "graphviz" // Graphviz with pinned positions
	BackendECharts  = "echarts"  // interactive HTML
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatHTML: true,
	FormatJSON: true,
}

// ValidBackends is the set of supported backends.
var ValidBackends = map[string]bool{
	BackendPlot:     true,
	BackendGraphviz: true,
	BackendECharts:  true,
}

// backendFormats lists what each backend can produce. JSON is the layout
// export and works with every backend.
var backendFormats = map[string][]string{
	BackendPlot:     {FormatPNG, FormatSVG, FormatPDF, FormatJSON},
	BackendGraphviz: {FormatPNG, FormatSVG, FormatPDF, FormatJSON},
	BackendECharts:  {FormatHTML, FormatJSON},
}

// contentTypes maps formats to MIME types for the API.
var contentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatSVG:  "image/svg+xml",
	FormatPDF:  "application/pdf",
	FormatHTML: "text/html; charset=utf-8",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Render displays the figure immediately instead of returning it.
	Render bool `json:"-"`

	// Figure options
	Size        [2]float64 `json:"size,omitempty"` // inches
	DPI         float64    `json:"dpi,omitempty"`
	WeightScale float64    `json:"weight_scale,omitempty"` // edge width per unit weight, 0 selects figure.DefaultWeightScale
	EdgeLabels  float64    `json:"edge_labels,omitempty"` // edge label font size, 0 hides them
	Title       string     `json:"title,omitempty"`

	// Layout options
	Engine     string  `json:"engine,omitempty"`
	Seed       uint64  `json:"seed,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
	K          float64 `json:"k,omitempty"` // spring optimal distance, 0 = 1/sqrt(n)

	// Render options
	Backend string   `json:"backend,omitempty"`
	Formats []string `json:"formats,omitempty"`
	Physics bool     `json:"physics,omitempty"` // keep simulating forces in HTML output

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger     `json:"-"`
	Viewer *display.Viewer `json:"-"`

	// validated tracks whether SetDefaults and Validate succeeded.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Figure is the laid-out figure.
	Figure *figure.Figure

	// DataHash is the content hash of the input record.
	DataHash string

	// Layout is the serialized figure, as cached and as written for "json".
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int // nodes drawn, including unweighted ones
	EdgeCount  int
	Dropped    int // nodes no link referenced
	Unweighted int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fgerrors.New(fgerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, svg, pdf, html, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBackend checks that a backend is valid.
func ValidateBackend(backend string) error {
	if !ValidBackends[backend] {
		return fgerrors.New(fgerrors.ErrCodeInvalidBackend,
			"invalid backend: %q (must be one of: plot, graphviz, echarts)", backend)
	}
	return nil
}

// ValidateEngine checks that a layout engine is valid.
func ValidateEngine(engine string) error {
	if engine != graph.EngineSpring && !nodelink.IsEngine(engine) {
		return fgerrors.New(fgerrors.ErrCodeInvalidEngine,
			"invalid engine: %q (must be one of: spring, %s)", engine, strings.Join(nodelink.Engines, ", "))
	}
	return nil
}

// ValidateCombination checks that backend can produce format.
func ValidateCombination(backend, format string) error {
	if !slices.Contains(backendFormats[backend], format) {
		return fgerrors.New(fgerrors.ErrCodeUnsupported,
			"backend %s cannot produce %s (supported: %s)", backend, format, strings.Join(backendFormats[backend], ", "))
	}
	return nil
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero fields with defaults. Formats default to html for
// the echarts backend and png otherwise.
func (o *Options) SetDefaults() {
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Backend == "" {
		o.Backend = DefaultBackend
	}
	if len(o.Formats) == 0 {
		if o.Backend == BackendECharts {
			o.Formats = []string{FormatHTML}
		} else {
			o.Formats = []string{FormatPNG}
		}
	}
	fo := o.FigureOptions()
	o.Size, o.DPI, o.WeightScale = fo.Size, fo.DPI, fo.WeightScale
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks every option.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Clone returns a copy that can be modified and validated again.
func (o Options) Clone() Options {
	o.Formats = slices.Clone(o.Formats)
	o.validated = false
	return o
}

// Validate checks the options. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if err := ValidateBackend(o.Backend); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if err := ValidateCombination(o.Backend, f); err != nil {
			return err
		}
	}
	if o.Iterations < 0 {
		return fgerrors.New(fgerrors.ErrCodeInvalidOption, "iterations must not be negative")
	}
	if o.K < 0 {
		return fgerrors.New(fgerrors.ErrCodeInvalidOption, "k must not be negative")
	}
	return o.FigureOptions().Validate()
}

// FigureOptions returns the drawing options.
func (o *Options) FigureOptions() figure.Options {
	return figure.Options{
		Size:              o.Size,
		DPI:               o.DPI,
		WeightScale:       o.WeightScale,
		EdgeLabelFontSize: o.EdgeLabels,
		Title:             o.Title,
	}.WithDefaults()
}

// Layouter returns the layout algorithm for the configured engine.
func (o *Options) Layouter() layout.Layout {
	if o.Engine == graph.EngineSpring || o.Engine == "" {
		return layout.Spring{K: o.K, Iterations: o.Iterations, Seed: o.Seed}
	}
	return nodelink.ForceLayout{Engine: o.Engine, Seed: o.Seed}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Engine:      o.Engine,
		Seed:        o.Seed,
		Iterations:  o.Iterations,
		K:           o.K,
		Size:        o.Size,
		DPI:         o.DPI,
		WeightScale: o.WeightScale,
		Title:       o.Title,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Backend:    o.Backend,
		EdgeLabels: o.EdgeLabels,
		Physics:    o.Physics && o.Backend == BackendECharts,
	}
}
