package layout

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/forcegraph/pkg/network"
)

const (
	DefaultIterations = 50
	DefaultThreshold  = 1e-4
	DefaultScale      = 1.0
	DefaultSeed       = 42

	minDistance = 0.01
)

// Spring is a Fruchterman-Reingold force-directed layout.
//
// Every pair of nodes repels with k²/d and every edge attracts with w·d/k,
// where d is the distance between the endpoints and w the edge weight.
// Node displacement per step is capped by a temperature that cools linearly
// from a tenth of the initial extent to zero.
//
// The zero value is ready to use and applies the defaults above.
type Spring struct {
	// K is the optimal distance between nodes. Zero means 1/sqrt(n).
	K float64
	// Iterations is the maximum number of steps.
	Iterations int
	// Threshold stops iterating once the mean displacement drops below it.
	Threshold float64
	// Seed drives the initial random placement.
	Seed uint64
	// Scale is the half-extent of the rescaled result.
	Scale float64
	// Center is where the rescaled result is centered.
	Center Position
	// Initial positions, if set, replace random placement for listed nodes.
	Initial Positions
}

func (s Spring) withDefaults() Spring {
	if s.Iterations <= 0 {
		s.Iterations = DefaultIterations
	}
	if s.Threshold <= 0 {
		s.Threshold = DefaultThreshold
	}
	if s.Scale == 0 {
		s.Scale = DefaultScale
	}
	return s
}

// Compute lays out g. The result holds a position for every node of g,
// including isolated ones. Identical graphs and seeds yield identical
// positions.
func (s Spring) Compute(g *network.Graph) (Positions, error) {
	s = s.withDefaults()
	if s.K < 0 || math.IsNaN(s.K) {
		return nil, fmt.Errorf("spring: invalid optimal distance %v", s.K)
	}

	ids := g.Nodes()
	n := len(ids)
	switch n {
	case 0:
		return Positions{}, nil
	case 1:
		return Positions{ids[0]: s.Center}, nil
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}
	adj := make([][]float64, n)
	for i := range adj {
		adj[i] = make([]float64, n)
	}
	for _, e := range g.Edges() {
		u, v := index[e.U], index[e.V]
		adj[u][v] = e.Weight
		adj[v][u] = e.Weight
	}

	xs, ys := s.initial(ids)
	s.run(xs, ys, adj)

	raw := make(Positions, n)
	for i, id := range ids {
		raw[id] = Position{X: xs[i], Y: ys[i]}
	}
	return Rescale(raw, s.Scale, s.Center), nil
}

func (s Spring) initial(ids []string) (xs, ys []float64) {
	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0xdeadbeef))
	xs = make([]float64, len(ids))
	ys = make([]float64, len(ids))
	for i, id := range ids {
		// Always draw so that seeded placement of the other nodes
		// does not depend on which ones have initial positions.
		x, y := rng.Float64(), rng.Float64()
		if p, ok := s.Initial[id]; ok {
			x, y = p.X, p.Y
		}
		xs[i], ys[i] = x, y
	}
	return xs, ys
}

func (s Spring) run(xs, ys []float64, adj [][]float64) {
	n := len(xs)
	k := s.K
	if k == 0 {
		k = math.Sqrt(1.0 / float64(n))
	}

	minX, maxX := extent(xs)
	minY, maxY := extent(ys)
	t := math.Max(maxX-minX, maxY-minY) * 0.1
	dt := t / float64(s.Iterations+1)

	dx := make([]float64, n)
	dy := make([]float64, n)
	for range s.Iterations {
		for i := range n {
			var fx, fy float64
			for j := range n {
				if i == j {
					continue
				}
				ddx, ddy := xs[i]-xs[j], ys[i]-ys[j]
				d := math.Max(math.Hypot(ddx, ddy), minDistance)
				f := k*k/(d*d) - adj[i][j]*d/k
				fx += ddx * f
				fy += ddy * f
			}
			length := math.Hypot(fx, fy)
			if length < minDistance {
				length = 0.1
			}
			dx[i], dy[i] = fx*t/length, fy*t/length
		}

		var moved float64
		for i := range n {
			xs[i] += dx[i]
			ys[i] += dy[i]
			moved += dx[i]*dx[i] + dy[i]*dy[i]
		}
		t -= dt
		if math.Sqrt(moved)/float64(n) < s.Threshold {
			break
		}
	}
}

func extent(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi
}
