package visualization

import (
	"sort"

	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

// structuralRank orders the spatial decomposition from the top down. Types
// not listed sit just above spaces.
var structuralRank = map[string]int{
	"IfcProject":        0,
	"IfcSite":           1,
	"IfcBuilding":       2,
	"IfcBuildingStorey": 3,
}

const (
	otherStructuralRank = 4
	spaceRank           = 5
)

// HierarchicalLayout arranges nodes in rows: project, site, building,
// storey, then spaces grouped under their parents.
type HierarchicalLayout struct {
	config *LayoutConfig
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config *LayoutConfig) *HierarchicalLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &HierarchicalLayout{config: config}
}

func rank(n topology.NodeRecord) int {
	if isSpace(n) {
		return spaceRank
	}
	if r, ok := structuralRank[n.IFCType]; ok {
		return r
	}
	return otherStructuralRank
}

// ComputeLayout arranges nodes hierarchically
func (hl *HierarchicalLayout) ComputeLayout(g *GraphView) (map[string]Position, error) {
	positions := make(map[string]Position)

	ids := g.IDs()
	if len(ids) == 0 {
		return positions, nil
	}

	byRank := make(map[int][]string)
	for _, id := range ids {
		r := rank(g.nodes[id])
		byRank[r] = append(byRank[r], id)
	}

	ranks := make([]int, 0, len(byRank))
	for r := range byRank {
		ranks = append(ranks, r)
	}
	sort.Ints(ranks)

	levels := make([][]string, 0, len(ranks))
	for _, r := range ranks {
		level := byRank[r]
		if r == spaceRank {
			// siblings sit together, orphans go last
			sort.SliceStable(level, func(i, j int) bool {
				return parentKey(g, level[i]) < parentKey(g, level[j])
			})
		}
		levels = append(levels, level)
	}

	levelHeight := (hl.config.Height - 2*hl.config.Padding) / float64(len(levels))
	levelWidth := hl.config.Width - 2*hl.config.Padding

	for levelIdx, level := range levels {
		y := hl.config.Padding + float64(levelIdx)*levelHeight + levelHeight/2
		spacing := levelWidth / float64(len(level)+1)

		for nodeIdx, id := range level {
			x := hl.config.Padding + spacing*float64(nodeIdx+1)
			positions[id] = Position{X: x, Y: y}
		}
	}

	return positions, nil
}

func parentKey(g *GraphView, id string) string {
	if ps := g.parents[id]; len(ps) > 0 {
		return ps[0]
	}
	return "\uffff"
}
