package ifc

import (
	"sort"
	"strings"
)

const (
	unnamedPset = "UnnamedPset"
	unnamedQto  = "UnnamedQto"
)

// quantityFields are the value fields read from element quantities, in the
// order they are tried.
var quantityFields = []string{"AreaValue", "VolumeValue", "LengthValue", "CountValue", "WeightValue"}

// PropertySets returns the property and quantity sets of an entity using the
// inverse indexes built by Index. Sets inherited from a type object are
// included, with occurrence values taking precedence.
func (m *Model) PropertySets(e *Entity) (PropertySets, error) {
	if e == nil {
		return nil, ErrNilEntity
	}
	if !m.indexed {
		return nil, ErrNoPropertyIndex
	}

	out := make(PropertySets)
	for _, rel := range m.definedByType[e.ID] {
		typeObj, ok := rel.Ref("RelatingType")
		if !ok {
			continue
		}
		for _, def := range typeObj.Refs("HasPropertySets") {
			readDefinition(out, def, true)
		}
	}
	for _, rel := range m.definedBy[e.ID] {
		for _, def := range rel.Refs("RelatingPropertyDefinition") {
			readDefinition(out, def, true)
		}
	}
	return out, nil
}

// ExplicitPropertySets walks every IfcRelDefinesByProperties in the source
// and collects the sets attached to e. It only understands single-valued
// properties and the common quantity kinds.
func ExplicitPropertySets(src Source, e *Entity) (PropertySets, error) {
	if e == nil {
		return nil, ErrNilEntity
	}

	out := make(PropertySets)
	for _, rel := range src.ByType(TypeRelDefinesByProperties) {
		if !relates(rel, e) {
			continue
		}
		for _, def := range rel.Refs("RelatingPropertyDefinition") {
			readDefinition(out, def, false)
		}
	}
	return out, nil
}

// LoadPropertySets tries the source's own accessor first and falls back to
// ExplicitPropertySets when it fails. A failing fallback yields an empty
// mapping. The second result reports whether the fallback was used.
func LoadPropertySets(src Source, e *Entity) (PropertySets, bool) {
	if psets, err := src.PropertySets(e); err == nil {
		return psets, false
	}
	psets, err := ExplicitPropertySets(src, e)
	if err != nil {
		return PropertySets{}, true
	}
	return psets, true
}

// Flatten returns every (set, property, value) triple, ordered by set name
// then property name.
func (ps PropertySets) Flatten() []PropertyValue {
	var out []PropertyValue
	for set, props := range ps {
		for name, value := range props {
			out = append(out, PropertyValue{Set: set, Name: name, Value: value})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Set != out[j].Set {
			return out[i].Set < out[j].Set
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// PropertyValue is one flattened property entry.
type PropertyValue struct {
	Set   string
	Name  string
	Value string
}

func relates(rel, e *Entity) bool {
	for _, obj := range rel.Refs("RelatedObjects") {
		if obj.ID == e.ID {
			return true
		}
	}
	return false
}

// readDefinition merges one property set or element quantity into out. The
// full reader also understands enumerated values and time quantities.
func readDefinition(out PropertySets, def *Entity, full bool) {
	switch {
	case def.Is(TypePropertySet):
		props := setFor(out, def, unnamedPset)
		for _, prop := range def.Refs("HasProperties") {
			name, _ := prop.String("Name")
			switch {
			case prop.Is(TypePropertySingleValue):
				props[name] = nominalText(prop)
			case full && prop.Is(TypePropertyEnumeratedValue):
				props[name] = enumeratedText(prop)
			}
		}
	case def.Is(TypeElementQuantity):
		props := setFor(out, def, unnamedQto)
		fields := quantityFields
		if full {
			fields = append(fields[:len(fields):len(fields)], "TimeValue")
		}
		for _, q := range def.Refs("Quantities") {
			name, _ := q.String("Name")
			for _, field := range fields {
				if v, ok := q.Attr(field); ok {
					text, _ := ValueText(v)
					props[name] = text
					break
				}
			}
		}
	}
}

func setFor(out PropertySets, def *Entity, fallback string) map[string]string {
	name, _ := def.String("Name")
	if name == "" {
		name = fallback
	}
	props, ok := out[name]
	if !ok {
		props = make(map[string]string)
		out[name] = props
	}
	return props
}

func nominalText(prop *Entity) string {
	v, ok := prop.Attr("NominalValue")
	if !ok {
		return ""
	}
	text, _ := ValueText(v)
	return text
}

func enumeratedText(prop *Entity) string {
	v, ok := prop.Attr("EnumerationValues")
	if !ok || v.Kind != KindList {
		return ""
	}
	parts := make([]string, 0, len(v.List))
	for _, item := range v.List {
		if text, ok := ValueText(item); ok {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, ", ")
}
