package visualization

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

// Node groups used by renderers to colour nodes.
const (
	GroupSpace      = "space"
	GroupStructural = "structural"
)

// NodeViz is a positioned node.
type NodeViz struct {
	ID     string            `json:"id"`
	Label  string            `json:"label"`
	Group  string            `json:"group"`
	Attrs  map[string]string `json:"attributes"`
	X      float64           `json:"x"`
	Y      float64           `json:"y"`
	Parent string            `json:"parent,omitempty"`
}

// EdgeViz is an edge tagged with its kind so renderers can style it.
type EdgeViz struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   string   `json:"type"`
	Vias   []string `json:"vias,omitempty"`
}

// VizData is the exported layout document.
type VizData struct {
	Algorithm string    `json:"algorithm"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Nodes     []NodeViz `json:"nodes"`
	Edges     []EdgeViz `json:"edges"`
}

// Compute lays out a snapshot with the named algorithm.
func Compute(snap topology.Snapshot, algorithm string, config *LayoutConfig) (*Visualization, error) {
	layout, err := NewLayout(algorithm, config)
	if err != nil {
		return nil, err
	}
	positions, err := layout.ComputeLayout(NewGraphView(snap))
	if err != nil {
		return nil, fmt.Errorf("compute %s layout: %w", algorithm, err)
	}
	return &Visualization{Snapshot: snap, Positions: positions}, nil
}

// Document converts the visualization into its exported form.
func (v *Visualization) Document(algorithm string, width, height float64) VizData {
	view := NewGraphView(v.Snapshot)
	data := VizData{
		Algorithm: algorithm,
		Width:     width,
		Height:    height,
		Nodes:     make([]NodeViz, 0, len(view.ids)),
		Edges:     make([]EdgeViz, 0, len(v.Snapshot.Edges)),
	}

	for _, id := range view.ids {
		node := view.nodes[id]
		pos := v.Positions[id]

		attrs := make(map[string]string, len(topology.NodeAttributeKeys))
		for _, kv := range node.Attributes() {
			attrs[kv[0]] = kv[1]
		}

		nv := NodeViz{
			ID:    id,
			Label: node.Name,
			Group: GroupStructural,
			Attrs: attrs,
			X:     pos.X,
			Y:     pos.Y,
		}
		if isSpace(node) {
			nv.Group = GroupSpace
		}
		if nv.Label == "" {
			nv.Label = id
		}
		if ps := view.parents[id]; len(ps) > 0 {
			nv.Parent = ps[0]
		}
		data.Nodes = append(data.Nodes, nv)
	}

	for _, e := range v.Snapshot.Edges {
		ev := EdgeViz{Source: e.Source, Target: e.Target, Type: e.Type}
		if e.Vias != "" {
			ev.Vias = strings.Split(e.Vias, topology.ViaSeparator)
		}
		data.Edges = append(data.Edges, ev)
	}
	return data
}

// ExportJSON exports the visualization to JSON
func (v *Visualization) ExportJSON(algorithm string, width, height float64) ([]byte, error) {
	return json.Marshal(v.Document(algorithm, width, height))
}
