package export

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

const (
	graphMLNamespace = "http://graphml.graphdrawing.org/xmlns"
	xsiNamespace     = "http://www.w3.org/2001/XMLSchema-instance"
	graphMLSchema    = "http://graphml.graphdrawing.org/xmlns http://graphml.graphdrawing.org/xmlns/1.0/graphml.xsd"
)

type graphMLDoc struct {
	XMLName        xml.Name     `xml:"graphml"`
	Xmlns          string       `xml:"xmlns,attr"`
	XmlnsXSI       string       `xml:"xmlns:xsi,attr"`
	SchemaLocation string       `xml:"xsi:schemaLocation,attr"`
	Keys           []graphMLKey `xml:"key"`
	Graph          graphMLGraph `xml:"graph"`
}

type graphMLKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphMLGraph struct {
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphMLNode `xml:"node"`
	Edges       []graphMLEdge `xml:"edge"`
}

type graphMLNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphMLData `xml:"data"`
}

type graphMLEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphMLData `xml:"data"`
}

type graphMLData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// WriteGraphML encodes a snapshot as an undirected GraphML document with
// string-typed keys for every node and edge attribute.
func WriteGraphML(w io.Writer, snap topology.Snapshot) error {
	doc := graphMLDoc{
		Xmlns:          graphMLNamespace,
		XmlnsXSI:       xsiNamespace,
		SchemaLocation: graphMLSchema,
		Graph:          graphMLGraph{EdgeDefault: "undirected"},
	}

	nodeKeys := make(map[string]string, len(topology.NodeAttributeKeys))
	for i, name := range topology.NodeAttributeKeys {
		id := fmt.Sprintf("d%d", i)
		nodeKeys[name] = id
		doc.Keys = append(doc.Keys, graphMLKey{ID: id, For: "node", AttrName: name, AttrType: "string"})
	}
	edgeKeys := make(map[string]string, len(topology.EdgeAttributeKeys))
	for i, name := range topology.EdgeAttributeKeys {
		id := fmt.Sprintf("d%d", len(topology.NodeAttributeKeys)+i)
		edgeKeys[name] = id
		doc.Keys = append(doc.Keys, graphMLKey{ID: id, For: "edge", AttrName: name, AttrType: "string"})
	}

	for _, n := range snap.Nodes {
		node := graphMLNode{ID: n.ID}
		for _, kv := range n.Attributes() {
			node.Data = append(node.Data, graphMLData{Key: nodeKeys[kv[0]], Value: kv[1]})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, node)
	}
	for _, e := range snap.Edges {
		edge := graphMLEdge{Source: e.Source, Target: e.Target}
		for _, kv := range e.Attributes() {
			edge.Data = append(edge.Data, graphMLData{Key: edgeKeys[kv[0]], Value: kv[1]})
		}
		doc.Graph.Edges = append(doc.Graph.Edges, edge)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graphml: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return nil
}

// ReadGraphML decodes a GraphML document written by WriteGraphML, or any
// GraphML file using the same attribute names, back into a snapshot.
func ReadGraphML(r io.Reader) (topology.Snapshot, error) {
	var doc graphMLDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return topology.Snapshot{}, fmt.Errorf("decode graphml: %w", err)
	}

	names := make(map[string]string, len(doc.Keys))
	for _, k := range doc.Keys {
		names[k.ID] = k.AttrName
	}

	snap := topology.Snapshot{
		Nodes: make([]topology.NodeRecord, 0, len(doc.Graph.Nodes)),
		Edges: make([]topology.EdgeRecord, 0, len(doc.Graph.Edges)),
	}
	for _, n := range doc.Graph.Nodes {
		rec := topology.NodeRecord{ID: n.ID}
		for _, d := range n.Data {
			switch names[d.Key] {
			case "ifc_type":
				rec.IFCType = d.Value
			case "name":
				rec.Name = d.Value
			case "room_name":
				rec.RoomName = d.Value
			case "GUID":
				rec.GUID = d.Value
			case "iso":
				rec.ISO = d.Value
			case "area":
				rec.Area = d.Value
			case "volume":
				rec.Volume = d.Value
			}
		}
		snap.Nodes = append(snap.Nodes, rec)
	}
	for _, e := range doc.Graph.Edges {
		rec := topology.EdgeRecord{Source: e.Source, Target: e.Target}
		for _, d := range e.Data {
			switch names[d.Key] {
			case "type":
				rec.Type = d.Value
			case "vias":
				rec.Vias = d.Value
			}
		}
		snap.Edges = append(snap.Edges, rec)
	}
	return snap, nil
}
