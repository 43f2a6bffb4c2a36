package visualization

import (
	"sort"

	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Spread     float64 // Scales the ideal edge length of the force layout
	Seed       int64   // Seeds initial positions so runs are repeatable
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(g *GraphView) (map[string]Position, error)
}

// GraphView is a read-only adjacency view of a snapshot.
type GraphView struct {
	snap      topology.Snapshot
	ids       []string
	nodes     map[string]topology.NodeRecord
	neighbors map[string][]string // sorted, no duplicates
	parents   map[string][]string // space -> containing structural nodes
}

// NewGraphView indexes a snapshot for layout. Edges whose endpoints are not
// nodes of the snapshot are ignored.
func NewGraphView(snap topology.Snapshot) *GraphView {
	v := &GraphView{
		snap:      snap,
		ids:       make([]string, 0, len(snap.Nodes)),
		nodes:     make(map[string]topology.NodeRecord, len(snap.Nodes)),
		neighbors: make(map[string][]string, len(snap.Nodes)),
		parents:   make(map[string][]string),
	}
	for _, n := range snap.Nodes {
		if _, dup := v.nodes[n.ID]; dup {
			continue
		}
		v.ids = append(v.ids, n.ID)
		v.nodes[n.ID] = n
	}
	sort.Strings(v.ids)

	seen := make(map[[2]string]bool, 2*len(snap.Edges))
	link := func(a, b string) {
		if !seen[[2]string{a, b}] {
			seen[[2]string{a, b}] = true
			v.neighbors[a] = append(v.neighbors[a], b)
		}
	}
	for _, e := range snap.Edges {
		if _, ok := v.nodes[e.Source]; !ok {
			continue
		}
		if _, ok := v.nodes[e.Target]; !ok {
			continue
		}
		link(e.Source, e.Target)
		link(e.Target, e.Source)

		if e.Type == string(topology.EdgeContains) {
			parent, child := e.Source, e.Target
			if isSpace(v.nodes[parent]) {
				parent, child = child, parent
			}
			v.parents[child] = append(v.parents[child], parent)
		}
	}
	for _, ns := range v.neighbors {
		sort.Strings(ns)
	}
	for _, ps := range v.parents {
		sort.Strings(ps)
	}
	return v
}

// IDs returns node IDs in sorted order.
func (v *GraphView) IDs() []string { return v.ids }

// Node returns the record for id.
func (v *GraphView) Node(id string) (topology.NodeRecord, bool) {
	n, ok := v.nodes[id]
	return n, ok
}

func isSpace(n topology.NodeRecord) bool {
	return n.IFCType == "IfcSpace"
}

// Visualization represents a graph visualization with layout
type Visualization struct {
	Snapshot  topology.Snapshot
	Positions map[string]Position
}
