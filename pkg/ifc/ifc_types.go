package ifc

// Kind identifies the shape of a STEP attribute value.
type Kind int

const (
	// KindNull is an unset attribute ($)
	KindNull Kind = iota
	// KindDerived is an attribute redeclared as derived in a subtype (*)
	KindDerived
	// KindString is a quoted string with escapes already decoded
	KindString
	// KindNumber is an integer or real, kept as its source text
	KindNumber
	// KindEnum is an enumeration or boolean literal such as .T. or .INTERNAL.
	KindEnum
	// KindBinary is a "..." hex-encoded binary literal
	KindBinary
	// KindRef is an instance reference (#123)
	KindRef
	// KindList is an aggregate ( ... )
	KindList
	// KindTyped is a typed parameter such as IFCAREAMEASURE(12.5)
	KindTyped
)

// Value is one positional attribute of a STEP entity instance.
type Value struct {
	Kind Kind
	Text string  // string, number, enum and binary payload; type name for KindTyped
	Ref  uint64  // target instance for KindRef
	List []Value // members for KindList, the single wrapped value for KindTyped
}

// IsNull reports whether the value carries no data.
func (v Value) IsNull() bool {
	return v.Kind == KindNull || v.Kind == KindDerived
}

// Unwrap strips typed-parameter wrappers, returning the innermost value.
func (v Value) Unwrap() Value {
	for v.Kind == KindTyped && len(v.List) == 1 {
		v = v.List[0]
	}
	return v
}

// PropertySets maps a property or quantity set name to its property values,
// all rendered as text.
type PropertySets map[string]map[string]string

// Source is the model capability the topology builder consumes.
type Source interface {
	// ByType enumerates entities whose type name matches, case-insensitively.
	ByType(typeName string) []*Entity
	// PropertySets returns every property and quantity set attached to an entity.
	PropertySets(e *Entity) (PropertySets, error)
}

// IFC entity type names used across the repo.
const (
	TypeSpace                    = "IfcSpace"
	TypeBuilding                 = "IfcBuilding"
	TypeBuildingStorey           = "IfcBuildingStorey"
	TypeRelAggregates            = "IfcRelAggregates"
	TypeRelSpaceBoundary         = "IfcRelSpaceBoundary"
	TypeRelSpaceBoundary1stLevel = "IfcRelSpaceBoundary1stLevel"
	TypeRelSpaceBoundary2ndLevel = "IfcRelSpaceBoundary2ndLevel"
	TypeRelDefinesByProperties   = "IfcRelDefinesByProperties"
	TypeRelDefinesByType         = "IfcRelDefinesByType"
	TypePropertySet              = "IfcPropertySet"
	TypeElementQuantity          = "IfcElementQuantity"
	TypePropertySingleValue      = "IfcPropertySingleValue"
	TypePropertyEnumeratedValue  = "IfcPropertyEnumeratedValue"
	TypeQuantityArea             = "IfcQuantityArea"
	TypeQuantityVolume           = "IfcQuantityVolume"
	TypeQuantityLength           = "IfcQuantityLength"
	TypeQuantityCount            = "IfcQuantityCount"
	TypeQuantityWeight           = "IfcQuantityWeight"
	TypeQuantityTime             = "IfcQuantityTime"
	TypeSpaceType                = "IfcSpaceType"
)

// BoundaryTypes lists the space-boundary relationship variants, which are
// treated uniformly.
var BoundaryTypes = []string{
	TypeRelSpaceBoundary,
	TypeRelSpaceBoundary1stLevel,
	TypeRelSpaceBoundary2ndLevel,
}
