package figure

import (
	fgerrors "github.com/matzehuels/forcegraph/pkg/errors"
)

// Default figure settings. Sizes are in inches and font sizes and node
// areas in points, so a figure looks the same regardless of backend.
const (
	DefaultWidth       = 30.0
	DefaultHeight      = 30.0
	DefaultDPI         = 72.0
	DefaultWeightScale = 10.0
	DefaultNodeSize    = 500.0 // marker area in pt²
	DefaultFontSize    = 10.0
	DefaultEdgeAlpha   = 0.9

	DefaultNodeColor       = "#1f78b4"
	DefaultUnweightedColor = "#add8e6"
	DefaultEdgeColor       = "#000000"
	DefaultFontColor       = "#000000"
)

// Options controls how a figure is drawn.
type Options struct {
	// Size is the canvas size in inches (width, height).
	Size [2]float64
	// DPI converts inches to pixels for raster output.
	DPI float64
	// WeightScale multiplies edge weights to obtain edge widths in points.
	// Zero selects DefaultWeightScale and negative values are invalid, so
	// every drawn edge has a visible width.
	WeightScale float64
	// NodeSize is the marker area in pt².
	NodeSize float64
	// FontSize is the node label size in points.
	FontSize float64
	// EdgeAlpha is the edge opacity in [0, 1].
	EdgeAlpha float64
	// EdgeLabelFontSize is the edge label size in points. Zero hides edge labels.
	EdgeLabelFontSize float64

	NodeColor       string
	UnweightedColor string
	EdgeColor       string
	FontColor       string
	Title           string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{}.WithDefaults()
}

// WithDefaults fills zero fields with defaults. EdgeLabelFontSize stays zero.
func (o Options) WithDefaults() Options {
	if o.Size[0] <= 0 {
		o.Size[0] = DefaultWidth
	}
	if o.Size[1] <= 0 {
		o.Size[1] = DefaultHeight
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.WeightScale == 0 {
		o.WeightScale = DefaultWeightScale
	}
	if o.NodeSize <= 0 {
		o.NodeSize = DefaultNodeSize
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.EdgeAlpha <= 0 {
		o.EdgeAlpha = DefaultEdgeAlpha
	}
	if o.NodeColor == "" {
		o.NodeColor = DefaultNodeColor
	}
	if o.UnweightedColor == "" {
		o.UnweightedColor = DefaultUnweightedColor
	}
	if o.EdgeColor == "" {
		o.EdgeColor = DefaultEdgeColor
	}
	if o.FontColor == "" {
		o.FontColor = DefaultFontColor
	}
	return o
}

// Validate reports options that cannot be drawn.
func (o Options) Validate() error {
	if err := fgerrors.ValidatePositive("width", o.Size[0]); err != nil {
		return err
	}
	if err := fgerrors.ValidatePositive("height", o.Size[1]); err != nil {
		return err
	}
	if err := fgerrors.ValidatePositive("weight scale", o.WeightScale); err != nil {
		return err
	}
	if o.EdgeAlpha > 1 {
		return fgerrors.New(fgerrors.ErrCodeInvalidOption, "edge alpha must be in [0, 1], got %v", o.EdgeAlpha)
	}
	if o.EdgeLabelFontSize < 0 {
		return fgerrors.New(fgerrors.ErrCodeInvalidOption, "edge label font size must not be negative")
	}
	return nil
}

// PointsToPixels converts a length in points to canvas pixels.
func (o Options) PointsToPixels(pt float64) float64 {
	return pt * o.DPI / 72
}
