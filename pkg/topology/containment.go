package topology

import (
	"github.com/rominabarouti/FacilityGraph/pkg/ifc"
	"github.com/rominabarouti/FacilityGraph/pkg/logging"
)

// ContainmentStats summarises the containment stage.
type ContainmentStats struct {
	Parents       int // distinct building and storey nodes
	ContainsEdges int
	Ignored       int // aggregations under any other parent type
}

// LinkContainment adds building and storey nodes for every aggregation they
// own and links them to their aggregated spaces.
func LinkContainment(src ifc.Source, g *Graph, logger logging.Logger) ContainmentStats {
	var stats ContainmentStats
	parents := make(map[string]struct{})
	before := g.CountEdges(EdgeContains)

	for _, rel := range src.ByType(ifc.TypeRelAggregates) {
		parent, ok := rel.Ref("RelatingObject")
		if !ok {
			continue
		}
		if !parent.Is(ifc.TypeBuilding) && !parent.Is(ifc.TypeBuildingStorey) {
			stats.Ignored++
			continue
		}

		pid := parent.GlobalID()
		if pid == "" {
			logger.Debug("structural parent without GlobalId skipped", logging.Uint64("entity", parent.ID))
			continue
		}
		label, _ := parent.String("Name")
		if label == "" {
			label = pid
		}
		g.PutNode(Node{
			ID:      pid,
			Kind:    KindStructural,
			IFCType: parent.Type(),
			Name:    label,
		})
		parents[pid] = struct{}{}

		for _, child := range rel.Refs("RelatedObjects") {
			if !child.Is(ifc.TypeSpace) {
				continue
			}
			sid := child.GlobalID()
			if sid == "" || !g.HasNode(sid) {
				continue
			}
			g.AddContains(pid, sid)
		}
	}

	stats.Parents = len(parents)
	stats.ContainsEdges = g.CountEdges(EdgeContains) - before
	return stats
}
