package health

import (
	"fmt"

	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

// maxListed caps the IDs listed in check details.
const maxListed = 10

// SpacesCheck fails when the model yielded no spaces at all.
func SpacesCheck(stats topology.ExtractStats) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "spaces",
			Details: map[string]any{
				"spaces":            stats.Spaces,
				"missing_global_id": stats.MissingGlobal,
				"corridor_spaces":   stats.CorridorSpaces,
			},
		}
		switch {
		case stats.Spaces == 0:
			check.Status = StatusUnhealthy
			check.Message = "model has no spaces"
		case stats.MissingGlobal > 0:
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("%d spaces without a GlobalId", stats.MissingGlobal)
		default:
			check.Status = StatusHealthy
		}
		return check
	}
}

// QuantityCheck reports spaces without area or volume. A model where no
// space has an area is unhealthy.
func QuantityCheck(stats topology.ExtractStats) CheckFunc {
	return func() Check {
		check := Check{
			Name: "quantities",
			Details: map[string]any{
				"missing_area":   stats.MissingArea,
				"missing_volume": stats.MissingVolume,
				"pset_fallbacks": stats.PsetFallbacks,
			},
		}
		switch {
		case stats.Spaces > 0 && stats.MissingArea == stats.Spaces:
			check.Status = StatusUnhealthy
			check.Message = "no space has an area"
		case stats.MissingArea > 0 || stats.MissingVolume > 0:
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("%d spaces missing area, %d missing volume", stats.MissingArea, stats.MissingVolume)
		default:
			check.Status = StatusHealthy
		}
		return check
	}
}

// BoundaryCheck reports boundary relationships that named no space.
func BoundaryCheck(stats topology.BoundaryStats) CheckFunc {
	return func() Check {
		check := Check{
			Name: "boundaries",
			Details: map[string]any{
				"relationships": stats.Relationships,
				"skipped":       stats.Skipped,
				"virtual":       stats.Virtual,
			},
			Status: StatusHealthy,
		}
		if stats.Skipped > 0 {
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("%d of %d boundaries have no space", stats.Skipped, stats.Relationships)
		}
		return check
	}
}

// ContainmentCheck reports spaces that no storey or building contains.
func ContainmentCheck(snap topology.Snapshot) CheckFunc {
	return func() Check {
		orphans := spacesWithout(snap, string(topology.EdgeContains))
		return listCheck("containment", orphans, "spaces outside any storey or building")
	}
}

// AdjacencyCheck reports spaces that share no boundary element with any
// other space.
func AdjacencyCheck(snap topology.Snapshot) CheckFunc {
	return func() Check {
		isolated := spacesWithout(snap, string(topology.EdgeAdjacent))
		return listCheck("adjacency", isolated, "spaces with no neighbour")
	}
}

// ModelChecks registers every check for one build.
func ModelChecks(rep topology.Report, snap topology.Snapshot) *Checker {
	c := NewChecker()
	c.RegisterCheck("spaces", SpacesCheck(rep.Extract))
	c.RegisterCheck("quantities", QuantityCheck(rep.Extract))
	c.RegisterCheck("boundaries", BoundaryCheck(rep.Boundaries))
	c.RegisterCheck("containment", ContainmentCheck(snap))
	c.RegisterCheck("adjacency", AdjacencyCheck(snap))
	return c
}

// spacesWithout returns the sorted IDs of spaces touching no edge of the
// given type.
func spacesWithout(snap topology.Snapshot, edgeType string) []string {
	linked := make(map[string]bool)
	for _, e := range snap.Edges {
		if e.Type == edgeType {
			linked[e.Source] = true
			linked[e.Target] = true
		}
	}
	var ids []string
	for _, n := range snap.Nodes {
		if n.IFCType == "IfcSpace" && !linked[n.ID] {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func listCheck(name string, ids []string, what string) Check {
	check := Check{Name: name, Status: StatusHealthy, Details: map[string]any{"count": len(ids)}}
	if len(ids) == 0 {
		return check
	}
	listed := ids
	if len(listed) > maxListed {
		listed = listed[:maxListed]
	}
	check.Status = StatusDegraded
	check.Message = fmt.Sprintf("%d %s", len(ids), what)
	check.Details["ids"] = listed
	return check
}
