package ifc

import "strings"

// Entity is one instance from the DATA section of a STEP file. Attribute
// access goes through the type tag's attribute table, so callers ask for
// fields by their schema name rather than by position.
type Entity struct {
	ID    uint64
	tag   string // upper-case type keyword as written in the file
	attrs []Value
	model *Model
}

// Type returns the schema name of the entity type (IfcSpace, IfcWall...).
func (e *Entity) Type() string {
	return canonicalName(e.tag)
}

// Is reports whether the entity is exactly of the given type name.
func (e *Entity) Is(typeName string) bool {
	return e != nil && e.tag == strings.ToUpper(typeName)
}

// GlobalID returns the entity's GlobalId, or "" for non-rooted entities.
func (e *Entity) GlobalID() string {
	s, _ := e.String("GlobalId")
	return s
}

// Attr returns the raw attribute stored under a field name.
func (e *Entity) Attr(field string) (Value, bool) {
	if e == nil {
		return Value{}, false
	}
	idx, ok := lookup(e.tag, field)
	if !ok || idx >= len(e.attrs) {
		return Value{}, false
	}
	return e.attrs[idx], true
}

// String returns a field as text. Typed wrappers are unwrapped; numbers and
// enumerations are returned in their source spelling. The boolean is false
// when the field is unknown, unset, or not scalar.
func (e *Entity) String(field string) (string, bool) {
	v, ok := e.Attr(field)
	if !ok {
		return "", false
	}
	return ValueText(v)
}

// Ref follows a single-valued reference role.
func (e *Entity) Ref(role string) (*Entity, bool) {
	v, ok := e.Attr(role)
	if !ok || v.Kind != KindRef {
		return nil, false
	}
	return e.model.Entity(v.Ref)
}

// Refs follows a reference role that may be a list or a single reference.
// Dangling references are dropped.
func (e *Entity) Refs(role string) []*Entity {
	v, ok := e.Attr(role)
	if !ok {
		return nil
	}
	switch v.Kind {
	case KindRef:
		if target, ok := e.model.Entity(v.Ref); ok {
			return []*Entity{target}
		}
		return nil
	case KindList:
		out := make([]*Entity, 0, len(v.List))
		for _, item := range v.List {
			if item.Kind != KindRef {
				continue
			}
			if target, ok := e.model.Entity(item.Ref); ok {
				out = append(out, target)
			}
		}
		return out
	default:
		return nil
	}
}

// ValueText renders a scalar value as text.
func ValueText(v Value) (string, bool) {
	v = v.Unwrap()
	switch v.Kind {
	case KindString, KindNumber, KindEnum, KindBinary:
		return v.Text, true
	default:
		return "", false
	}
}
