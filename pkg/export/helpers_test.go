package export

import (
	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

// sampleSnapshot is a storey holding two spaces that share a wall and a slab.
func sampleSnapshot() topology.Snapshot {
	g := topology.NewGraph()
	g.PutNode(topology.Node{
		ID: "storey-1", Kind: topology.KindStructural, IFCType: "IfcBuildingStorey",
		Name: "Level 1", ISO: "0",
	})
	g.PutNode(topology.Node{
		ID: "space-a", Kind: topology.KindSpace, IFCType: "IfcSpace",
		Name: "Office 101", RoomName: "Office 101 - ISO 7", ISO: "7", Area: "22.75", Volume: "68.25",
	})
	g.PutNode(topology.Node{
		ID: "space-b", Kind: topology.KindSpace, IFCType: "IfcSpace",
		Name: "Lab & Store", RoomName: "Lab & Store", ISO: "5", Area: "", Volume: "",
	})
	g.AddContains("storey-1", "space-a")
	g.AddContains("storey-1", "space-b")
	g.AddAdjacency("space-a", "space-b", "wall-1")
	g.AddAdjacency("space-b", "space-a", "slab-1")
	return g.Export()
}
