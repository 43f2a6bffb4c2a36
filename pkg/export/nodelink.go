package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

// nodeLinkDoc is the node-link layout understood by common graph tooling
// (d3, networkx node_link_graph).
type nodeLinkDoc struct {
	Directed   bool                  `json:"directed"`
	Multigraph bool                  `json:"multigraph"`
	Graph      map[string]string     `json:"graph"`
	Nodes      []topology.NodeRecord `json:"nodes"`
	Links      []topology.EdgeRecord `json:"links"`
}

// WriteNodeLink encodes a snapshot as node-link JSON.
func WriteNodeLink(w io.Writer, snap topology.Snapshot, graphAttrs map[string]string) error {
	if graphAttrs == nil {
		graphAttrs = map[string]string{}
	}
	doc := nodeLinkDoc{
		Graph: graphAttrs,
		Nodes: snap.Nodes,
		Links: snap.Edges,
	}
	if doc.Nodes == nil {
		doc.Nodes = []topology.NodeRecord{}
	}
	if doc.Links == nil {
		doc.Links = []topology.EdgeRecord{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode node-link json: %w", err)
	}
	return nil
}

// ReadNodeLink decodes node-link JSON written by WriteNodeLink.
func ReadNodeLink(r io.Reader) (topology.Snapshot, map[string]string, error) {
	var doc nodeLinkDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return topology.Snapshot{}, nil, fmt.Errorf("decode node-link json: %w", err)
	}
	return topology.Snapshot{Nodes: doc.Nodes, Edges: doc.Links}, doc.Graph, nil
}
