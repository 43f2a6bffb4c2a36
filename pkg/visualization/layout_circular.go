package visualization

import (
	"math"
)

// CircularLayout arranges nodes in a circle, structural nodes first.
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout arranges nodes in a circle
func (cl *CircularLayout) ComputeLayout(g *GraphView) (map[string]Position, error) {
	positions := make(map[string]Position)

	ids := g.IDs()
	if len(ids) == 0 {
		return positions, nil
	}

	ordered := make([]string, 0, len(ids))
	for _, id := range ids {
		if !isSpace(g.nodes[id]) {
			ordered = append(ordered, id)
		}
	}
	for _, id := range ids {
		if isSpace(g.nodes[id]) {
			ordered = append(ordered, id)
		}
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Max(math.Min(centerX, centerY)-cl.config.Padding, 0)

	angleStep := 2 * math.Pi / float64(len(ordered))

	for i, id := range ordered {
		angle := float64(i) * angleStep
		positions[id] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}
