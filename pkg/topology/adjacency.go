package topology

// AdjacencyStats summarises the adjacency stage.
type AdjacencyStats struct {
	Edges          int // adjacency edges created
	PairGroups     int // groups bounding exactly two spaces
	ClosureGroups  int // groups bounding three or more spaces
	CorridorGroups int // groups with at least one corridor-like member
}

// ResolveAdjacency turns each boundary group into adjacency edges. A group
// of two spaces yields one edge; larger groups yield an edge for every pair
// of members. Existing edges gain the element key as an extra via.
//
// Groups and their members are visited in sorted order, so the result is
// independent of how the groups were collected. Corridor-like members are
// counted but do not change the outcome.
func ResolveAdjacency(g *Graph, groups BoundaryGroups, c *Classifier) AdjacencyStats {
	var stats AdjacencyStats

	for _, key := range groups.Keys() {
		members := groups.Members(key)
		if len(members) < 2 {
			continue
		}

		for _, id := range members {
			if n, ok := g.Node(id); ok && c.IsCorridor(n.Name) {
				stats.CorridorGroups++
				break
			}
		}

		if len(members) == 2 {
			stats.PairGroups++
		} else {
			stats.ClosureGroups++
		}

		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				if g.AddAdjacency(members[i], members[j], key) {
					stats.Edges++
				}
			}
		}
	}
	return stats
}
