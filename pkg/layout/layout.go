package layout

import (
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/forcegraph/pkg/network"
)

// Position is a point in layout coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps node IDs to their layout coordinates.
type Positions map[string]Position

// Layout computes node positions for a graph.
type Layout interface {
	Compute(g *network.Graph) (Positions, error)
}

// Bounds returns the bounding box of pos. An empty map yields all zeros.
func (pos Positions) Bounds() (minX, minY, maxX, maxY float64) {
	first := true
	for _, p := range pos {
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			continue
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}

// Rescale shifts pos to its mean, scales it so the largest absolute
// coordinate equals scale, and moves it to center. Coincident points are
// only moved to center.
func Rescale(pos Positions, scale float64, center Position) Positions {
	out := make(Positions, len(pos))
	if len(pos) == 0 {
		return out
	}

	// Sum in key order so results are bit-for-bit reproducible.
	ids := slices.Sorted(maps.Keys(pos))
	var mean Position
	for _, id := range ids {
		p := pos[id]
		mean.X += p.X
		mean.Y += p.Y
	}
	mean.X /= float64(len(pos))
	mean.Y /= float64(len(pos))

	var lim float64
	for _, p := range pos {
		lim = math.Max(lim, math.Abs(p.X-mean.X))
		lim = math.Max(lim, math.Abs(p.Y-mean.Y))
	}

	for id, p := range pos {
		x, y := p.X-mean.X, p.Y-mean.Y
		if lim > 0 {
			x, y = x*scale/lim, y*scale/lim
		}
		out[id] = Position{X: x + center.X, Y: y + center.Y}
	}
	return out
}
