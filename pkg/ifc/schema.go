package ifc

import "strings"

// attrTable maps an attribute or role name to its position in the STEP
// parameter list.
type attrTable map[string]int

// entityKind is the dispatch entry selected by an entity's type tag.
type entityKind struct {
	name  string
	attrs attrTable
}

// Attribute positions follow the IFC4 / IFC2x3 schemas, which agree on every
// index listed here.
var (
	rootAttrs = attrTable{
		"GlobalId":     0,
		"OwnerHistory": 1,
		"Name":         2,
		"Description":  3,
	}

	spatialAttrs = extend(rootAttrs, attrTable{
		"ObjectType":      4,
		"ObjectPlacement": 5,
		"Representation":  6,
		"LongName":        7,
		"CompositionType": 8,
	})

	aggregatesAttrs = extend(rootAttrs, attrTable{
		"RelatingObject": 4,
		"RelatedObjects": 5,
	})

	boundaryAttrs = extend(rootAttrs, attrTable{
		"RelatingSpace":              4,
		"RelatedBuildingElement":     5,
		"ConnectionGeometry":         6,
		"PhysicalOrVirtualBoundary":  7,
		"InternalOrExternalBoundary": 8,
	})

	boundary1stAttrs = extend(boundaryAttrs, attrTable{
		"ParentBoundary": 9,
	})

	boundary2ndAttrs = extend(boundary1stAttrs, attrTable{
		"CorrespondingBoundary": 10,
	})

	definesByPropertiesAttrs = extend(rootAttrs, attrTable{
		"RelatedObjects":             4,
		"RelatingPropertyDefinition": 5,
	})

	definesByTypeAttrs = extend(rootAttrs, attrTable{
		"RelatedObjects": 4,
		"RelatingType":   5,
	})

	propertySetAttrs = extend(rootAttrs, attrTable{
		"HasProperties": 4,
	})

	elementQuantityAttrs = extend(rootAttrs, attrTable{
		"MethodOfMeasurement": 4,
		"Quantities":          5,
	})

	typeObjectAttrs = extend(rootAttrs, attrTable{
		"ApplicableOccurrence": 4,
		"HasPropertySets":      5,
	})

	singleValueAttrs = attrTable{
		"Name":         0,
		"Description":  1,
		"NominalValue": 2,
		"Unit":         3,
	}

	enumeratedValueAttrs = attrTable{
		"Name":                 0,
		"Description":          1,
		"EnumerationValues":    2,
		"EnumerationReference": 3,
	}
)

func quantityAttrs(valueField string) attrTable {
	return attrTable{
		"Name":        0,
		"Description": 1,
		"Unit":        2,
		valueField:    3,
	}
}

func extend(base, more attrTable) attrTable {
	out := make(attrTable, len(base)+len(more))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range more {
		out[k] = v
	}
	return out
}

// kinds is keyed by the upper-case type tag as it appears in STEP files.
var kinds = map[string]entityKind{}

func register(name string, attrs attrTable) {
	kinds[strings.ToUpper(name)] = entityKind{name: name, attrs: attrs}
}

func init() {
	register(TypeSpace, spatialAttrs)
	register(TypeBuilding, spatialAttrs)
	register(TypeBuildingStorey, spatialAttrs)
	register("IfcSite", spatialAttrs)
	register(TypeRelAggregates, aggregatesAttrs)
	register(TypeRelSpaceBoundary, boundaryAttrs)
	register(TypeRelSpaceBoundary1stLevel, boundary1stAttrs)
	register(TypeRelSpaceBoundary2ndLevel, boundary2ndAttrs)
	register(TypeRelDefinesByProperties, definesByPropertiesAttrs)
	register(TypeRelDefinesByType, definesByTypeAttrs)
	register(TypePropertySet, propertySetAttrs)
	register(TypeElementQuantity, elementQuantityAttrs)
	register(TypeSpaceType, typeObjectAttrs)
	register(TypePropertySingleValue, singleValueAttrs)
	register(TypePropertyEnumeratedValue, enumeratedValueAttrs)
	register(TypeQuantityArea, quantityAttrs("AreaValue"))
	register(TypeQuantityVolume, quantityAttrs("VolumeValue"))
	register(TypeQuantityLength, quantityAttrs("LengthValue"))
	register(TypeQuantityCount, quantityAttrs("CountValue"))
	register(TypeQuantityWeight, quantityAttrs("WeightValue"))
	register(TypeQuantityTime, quantityAttrs("TimeValue"))
}

// lookup resolves a field name for a type tag. Types outside the table are
// still rooted objects in practice (walls, slabs, doors...), so GlobalId falls
// back to position 0.
func lookup(tag, field string) (int, bool) {
	if k, ok := kinds[tag]; ok {
		idx, found := k.attrs[field]
		return idx, found
	}
	if field == "GlobalId" {
		return 0, true
	}
	return 0, false
}

// canonicalName returns the schema spelling of a type tag, or the tag itself
// when the type is not in the table.
func canonicalName(tag string) string {
	if k, ok := kinds[tag]; ok {
		return k.name
	}
	return tag
}
