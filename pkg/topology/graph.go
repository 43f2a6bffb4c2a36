package topology

import (
	"sort"
	"strings"
)

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[pair]*Edge),
	}
}

// PutNode inserts a node or refreshes the attributes of an existing node
// with the same ID.
func (g *Graph) PutNode(n Node) {
	if existing, ok := g.nodes[n.ID]; ok {
		*existing = n
		return
	}
	node := n
	g.nodes[n.ID] = &node
	g.order = append(g.order, n.ID)
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// HasNode reports whether a node exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// AddContains links a structural parent to a space. Adding the same pair
// twice leaves a single edge.
func (g *Graph) AddContains(parent, space string) {
	key := makePair(parent, space)
	if _, ok := g.edges[key]; ok {
		return
	}
	g.edges[key] = &Edge{A: key.a, B: key.b, Kind: EdgeContains}
}

// AddAdjacency creates the adjacency edge between two spaces or, when it
// already exists, appends via to its evidence list unless already present.
// It reports whether a new edge was created. Self-pairs are ignored.
func (g *Graph) AddAdjacency(x, y, via string) bool {
	if x == y {
		return false
	}
	key := makePair(x, y)
	e, ok := g.edges[key]
	if !ok {
		g.edges[key] = &Edge{A: key.a, B: key.b, Kind: EdgeAdjacent, Vias: []string{via}}
		return true
	}
	for _, v := range e.Vias {
		if v == via {
			return false
		}
	}
	e.Vias = append(e.Vias, via)
	return false
}

// Edge returns the edge between two nodes, in either order.
func (g *Graph) Edge(x, y string) (Edge, bool) {
	e, ok := g.edges[makePair(x, y)]
	if !ok {
		return Edge{}, false
	}
	out := *e
	out.Vias = append([]string(nil), e.Vias...)
	return out, true
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.nodes[id])
	}
	return out
}

// Edges returns all edges sorted by endpoint pair.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		c := *e
		c.Vias = append([]string(nil), e.Vias...)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// CountEdges returns the number of edges of one kind.
func (g *Graph) CountEdges(kind EdgeKind) int {
	n := 0
	for _, e := range g.edges {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Export flattens the graph to text attributes. Nodes are sorted by ID and
// edges by endpoint pair so that repeated runs produce identical output.
func (g *Graph) Export() Snapshot {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	snap := Snapshot{
		Nodes: make([]NodeRecord, 0, len(ids)),
		Edges: make([]EdgeRecord, 0, len(g.edges)),
	}
	for _, id := range ids {
		n := g.nodes[id]
		snap.Nodes = append(snap.Nodes, NodeRecord{
			ID:       n.ID,
			IFCType:  n.IFCType,
			Name:     n.Name,
			RoomName: n.RoomName,
			GUID:     n.ID,
			ISO:      n.ISO,
			Area:     n.Area,
			Volume:   n.Volume,
		})
	}
	for _, e := range g.Edges() {
		snap.Edges = append(snap.Edges, EdgeRecord{
			Source: e.A,
			Target: e.B,
			Type:   string(e.Kind),
			Vias:   strings.Join(e.Vias, ViaSeparator),
		})
	}
	return snap
}
