package cache

import (
	"context"
	"time"
)

// Default TTLs for cached pipeline stages.
const (
	// TTLLayout is how long computed layouts are kept. Layouts are
	// deterministic for a given input and seed, so they rarely go stale.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered outputs (SVG, PNG, PDF, HTML) are kept.
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte payloads under string keys.
//
// Implementations must be safe for concurrent use. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// =============================================================================
// Keys
// =============================================================================

// LayoutKeyOpts are the inputs that change a computed layout.
type LayoutKeyOpts struct {
	Engine      string     `json:"engine"`
	Seed        uint64     `json:"seed"`
	Iterations  int        `json:"iterations"`
	K           float64    `json:"k,omitempty"`
	Size        [2]float64 `json:"size"`
	DPI         float64    `json:"dpi"`
	WeightScale float64    `json:"weight_scale"`
	Title       string     `json:"title,omitempty"`
}

// ArtifactKeyOpts are the render-only inputs of an artifact. Everything
// stored in the layout is already covered by the layout hash.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Backend    string  `json:"backend"`
	EdgeLabels float64 `json:"edge_labels,omitempty"`
	Physics    bool    `json:"physics,omitempty"`
}

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey keys a layout by the hash of its input data.
	LayoutKey(dataHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys an artifact by the hash of its serialized layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(dataHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", dataHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
