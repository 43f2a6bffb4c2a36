package visualization

import (
	"math"
	"math/rand"
)

// DefaultSpread tightens the ideal edge length so adjacent rooms cluster.
const DefaultSpread = 0.6

// ForceDirectedLayout implements force-directed graph layout
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 80
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	if config.Spread == 0 {
		config.Spread = DefaultSpread
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using force-directed algorithm. The same
// seed and graph always give the same positions.
func (fdl *ForceDirectedLayout) ComputeLayout(g *GraphView) (map[string]Position, error) {
	ids := g.IDs()
	if len(ids) == 0 {
		return make(map[string]Position), nil
	}

	// Single node - center it
	if len(ids) == 1 {
		return map[string]Position{
			ids[0]: {X: fdl.config.Width / 2, Y: fdl.config.Height / 2},
		}, nil
	}

	rng := rand.New(rand.NewSource(fdl.config.Seed))
	innerW := fdl.config.Width - 2*fdl.config.Padding
	innerH := fdl.config.Height - 2*fdl.config.Padding

	// ids are sorted, so the random draws are assigned in a stable order
	positions := make(map[string]Position, len(ids))
	for _, id := range ids {
		positions[id] = Position{
			X: rng.Float64()*innerW + fdl.config.Padding,
			Y: rng.Float64()*innerH + fdl.config.Padding,
		}
	}

	k := fdl.config.Spread * math.Sqrt((fdl.config.Width*fdl.config.Height)/float64(len(ids)))
	temperature := fdl.config.Width / 10.0

	forces := make(map[string]Position, len(ids))
	for iter := 0; iter < fdl.config.Iterations; iter++ {
		for _, id := range ids {
			forces[id] = Position{}
		}

		// Repulsion between all nodes
		for i, a := range ids {
			for _, b := range ids[i+1:] {
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Max(math.Hypot(dx, dy), 0.01)

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[a] = Position{X: forces[a].X + fx, Y: forces[a].Y + fy}
				forces[b] = Position{X: forces[b].X - fx, Y: forces[b].Y - fy}
			}
		}

		// Attraction along edges, both kinds alike
		for _, a := range ids {
			for _, b := range g.neighbors[a] {
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Hypot(dx, dy)
				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				forces[a] = Position{
					X: forces[a].X - (dx/dist)*force,
					Y: forces[a].Y - (dy/dist)*force,
				}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, id := range ids {
			f := forces[id]
			mag := math.Hypot(f.X, f.Y)
			if mag == 0 {
				continue
			}
			step := math.Min(mag, temperature) * cool
			positions[id] = Position{
				X: positions[id].X + (f.X/mag)*step,
				Y: positions[id].Y + (f.Y/mag)*step,
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding), nil
}
