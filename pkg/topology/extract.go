package topology

import (
	"github.com/rominabarouti/FacilityGraph/pkg/ifc"
	"github.com/rominabarouti/FacilityGraph/pkg/logging"
)

const spaceType = ifc.TypeSpace

// ExtractStats summarises the space extraction stage.
type ExtractStats struct {
	Spaces         int
	MissingArea    int
	MissingVolume  int
	PsetFallbacks  int // spaces whose property sets came from the explicit traversal
	MissingGlobal  int // spaces skipped for lack of a GlobalId
	CorridorSpaces int
}

// ExtractSpaces adds one space node per IfcSpace in the source.
func ExtractSpaces(src ifc.Source, g *Graph, c *Classifier, policy QuantityPolicy, logger logging.Logger) ExtractStats {
	var stats ExtractStats
	for _, e := range src.ByType(ifc.TypeSpace) {
		id := e.GlobalID()
		if id == "" {
			stats.MissingGlobal++
			logger.Debug("space without GlobalId skipped", logging.Uint64("entity", e.ID))
			continue
		}

		raw := RawSpaceName(e)
		name := StripISO(raw)

		psets, usedFallback := ifc.LoadPropertySets(src, e)
		if usedFallback {
			stats.PsetFallbacks++
			logger.Debug("property sets loaded by explicit traversal", logging.Space(id))
		}
		area, volume := ExtractQuantities(psets, policy)

		g.PutNode(Node{
			ID:       id,
			Kind:     KindSpace,
			IFCType:  spaceType,
			Name:     name,
			RoomName: name,
			ISO:      c.ISO(raw),
			Area:     area.String(),
			Volume:   volume.String(),
		})

		stats.Spaces++
		if !area.Valid {
			stats.MissingArea++
		}
		if !volume.Valid {
			stats.MissingVolume++
		}
		if c.IsCorridor(name) {
			stats.CorridorSpaces++
		}
	}
	return stats
}
