package topology

// NodeKind distinguishes spaces from the structural parents that contain them.
type NodeKind uint8

const (
	KindSpace NodeKind = iota
	KindStructural
)

// String returns the node kind's name
func (k NodeKind) String() string {
	switch k {
	case KindSpace:
		return "space"
	case KindStructural:
		return "structural"
	default:
		return "unknown"
	}
}

// EdgeKind is the edge type tag written to the "type" attribute.
type EdgeKind string

const (
	EdgeContains EdgeKind = "contains"
	EdgeAdjacent EdgeKind = "adjacent"
)

// ViaSeparator joins an adjacency edge's vias when flattened to text.
const ViaSeparator = ";"

// Node is a space or a structural parent. Every attribute is already text.
type Node struct {
	ID       string
	Kind     NodeKind
	IFCType  string
	Name     string
	RoomName string
	ISO      string
	Area     string
	Volume   string
}

// Edge is an undirected link between two nodes. A and B are stored in
// lexical order.
type Edge struct {
	A, B string
	Kind EdgeKind
	Vias []string // adjacency evidence in discovery order, no duplicates
}

// pair is the unordered key of an edge.
type pair struct {
	a, b string
}

func makePair(x, y string) pair {
	if y < x {
		x, y = y, x
	}
	return pair{a: x, b: y}
}

// Graph is the in-memory topology under construction. It is owned by a
// single build and is not safe for concurrent use.
type Graph struct {
	nodes map[string]*Node
	edges map[pair]*Edge
	order []string // node insertion order
}

// Snapshot is the finalized, text-only view of a graph handed to exporters.
type Snapshot struct {
	Nodes []NodeRecord `json:"nodes"`
	Edges []EdgeRecord `json:"links"`
}

// NodeRecord carries the seven node attributes.
type NodeRecord struct {
	ID       string `json:"id"`
	IFCType  string `json:"ifc_type"`
	Name     string `json:"name"`
	RoomName string `json:"room_name"`
	GUID     string `json:"GUID"`
	ISO      string `json:"iso"`
	Area     string `json:"area"`
	Volume   string `json:"volume"`
}

// EdgeRecord carries the two edge attributes.
type EdgeRecord struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
	Vias   string `json:"vias"`
}

// Attributes returns the node attributes keyed by their exported names, in
// declaration order.
func (r NodeRecord) Attributes() [][2]string {
	return [][2]string{
		{"ifc_type", r.IFCType},
		{"name", r.Name},
		{"room_name", r.RoomName},
		{"GUID", r.GUID},
		{"iso", r.ISO},
		{"area", r.Area},
		{"volume", r.Volume},
	}
}

// Attributes returns the edge attributes keyed by their exported names.
func (r EdgeRecord) Attributes() [][2]string {
	return [][2]string{
		{"type", r.Type},
		{"vias", r.Vias},
	}
}

// NodeAttributeKeys and EdgeAttributeKeys list the exported attribute names.
var (
	NodeAttributeKeys = []string{"ifc_type", "name", "room_name", "GUID", "iso", "area", "volume"}
	EdgeAttributeKeys = []string{"type", "vias"}
)
