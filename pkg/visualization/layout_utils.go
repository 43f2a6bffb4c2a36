package visualization

import (
	"fmt"
	"math"
)

// Layout algorithm names accepted by NewLayout.
const (
	AlgorithmSpring       = "spring"
	AlgorithmHierarchical = "hierarchical"
	AlgorithmCircular     = "circular"
)

// NewLayout returns the layout registered under name.
func NewLayout(name string, config *LayoutConfig) (Layout, error) {
	switch name {
	case AlgorithmSpring, "":
		return NewForceDirectedLayout(config), nil
	case AlgorithmHierarchical:
		return NewHierarchicalLayout(config), nil
	case AlgorithmCircular:
		return NewCircularLayout(config), nil
	default:
		return nil, fmt.Errorf("unknown layout algorithm %q", name)
	}
}

// normalizePositions scales positions to fit within bounds
func normalizePositions(positions map[string]Position, width, height, padding float64) map[string]Position {
	if len(positions) == 0 {
		return positions
	}

	// Find bounds
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(map[string]Position, len(positions))
	for id, pos := range positions {
		// a degenerate axis collapses to the centre line
		x, y := width/2, height/2
		if rangeX >= 0.01 {
			x = padding + ((pos.X-minX)/rangeX)*targetWidth
		}
		if rangeY >= 0.01 {
			y = padding + ((pos.Y-minY)/rangeY)*targetHeight
		}
		normalized[id] = Position{X: x, Y: y}
	}

	return normalized
}
