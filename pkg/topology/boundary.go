package topology

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rominabarouti/FacilityGraph/pkg/ifc"
	"github.com/rominabarouti/FacilityGraph/pkg/logging"
)

// VirtualPrefix marks boundary keys synthesized for boundaries without a
// physical element.
const VirtualPrefix = "VIRTUAL-"

// BoundaryGroups maps a bounding element key to the distinct spaces it
// bounds.
type BoundaryGroups map[string]map[string]struct{}

// Add records that element bounds space.
func (bg BoundaryGroups) Add(element, space string) {
	set, ok := bg[element]
	if !ok {
		set = make(map[string]struct{})
		bg[element] = set
	}
	set[space] = struct{}{}
}

// Keys returns the element keys in sorted order.
func (bg BoundaryGroups) Keys() []string {
	keys := make([]string, 0, len(bg))
	for k := range bg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Members returns the spaces bounded by element in sorted order.
func (bg BoundaryGroups) Members(element string) []string {
	set := bg[element]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsVirtual reports whether an element key was synthesized.
func IsVirtual(key string) bool {
	return strings.HasPrefix(key, VirtualPrefix)
}

// BoundaryStats summarises the boundary aggregation stage.
type BoundaryStats struct {
	Relationships int // boundary relationships seen, all levels
	Skipped       int // relationships without a resolvable space
	Virtual       int // relationships keyed by a synthesized element
	Groups        int
}

// AggregateBoundaries groups every space boundary relationship, at any
// level, by its bounding element.
func AggregateBoundaries(src ifc.Source, logger logging.Logger) (BoundaryGroups, BoundaryStats) {
	groups := make(BoundaryGroups)
	var stats BoundaryStats

	for _, typeName := range ifc.BoundaryTypes {
		for _, rel := range src.ByType(typeName) {
			stats.Relationships++

			space, ok := rel.Ref("RelatingSpace")
			if !ok || !space.Is(ifc.TypeSpace) || space.GlobalID() == "" {
				stats.Skipped++
				logger.Debug("boundary without resolvable space skipped",
					logging.Uint64("entity", rel.ID))
				continue
			}

			key := elementKey(rel)
			if IsVirtual(key) {
				stats.Virtual++
				logger.Debug("boundary without element keyed as virtual",
					logging.Element(key), logging.Space(space.GlobalID()))
			}
			groups.Add(key, space.GlobalID())
		}
	}

	stats.Groups = len(groups)
	return groups, stats
}

// elementKey returns the bounding element's GlobalId, or a virtual key
// derived from the relationship when there is none. Relationships without
// a GlobalId are keyed by their instance id, so no two virtual keys collide.
func elementKey(rel *ifc.Entity) string {
	if elem, ok := rel.Ref("RelatedBuildingElement"); ok {
		if id := elem.GlobalID(); id != "" {
			return id
		}
	}
	if id := rel.GlobalID(); id != "" {
		return VirtualPrefix + id
	}
	return VirtualPrefix + "#" + strconv.FormatUint(rel.ID, 10)
}
