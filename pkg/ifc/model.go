package ifc

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Model is an in-memory snapshot of an IFC file.
type Model struct {
	entities map[uint64]*Entity
	byType   map[string][]*Entity // upper-case tag -> instances in file order

	// Inverse IsDefinedBy indexes, built by Index.
	definedBy     map[uint64][]*Entity // object ID -> IfcRelDefinesByProperties
	definedByType map[uint64][]*Entity // object ID -> IfcRelDefinesByType
	indexed       bool
}

// NewModel creates an empty, unindexed model.
func NewModel() *Model {
	return &Model{
		entities: make(map[uint64]*Entity),
		byType:   make(map[string][]*Entity),
	}
}

// Open reads and indexes an IFC STEP file from disk.
func Open(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// Parse reads and indexes an IFC STEP stream.
func Parse(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m := NewModel()
	if err := newParser(data, m).parse(); err != nil {
		return nil, err
	}
	m.Index()
	return m, nil
}

// Add inserts an entity instance. A later instance with the same ID replaces
// the earlier one in both ID and type lookups. A replacement of the same type
// keeps the earlier position.
func (m *Model) Add(id uint64, typeName string, attrs []Value) *Entity {
	tag := strings.ToUpper(typeName)
	e := &Entity{ID: id, tag: tag, attrs: attrs, model: m}
	m.indexed = false

	if old, ok := m.entities[id]; ok {
		m.entities[id] = e
		list := m.byType[old.tag]
		i := slices.Index(list, old)
		if old.tag == tag {
			list[i] = e
			return e
		}
		m.byType[old.tag] = slices.Delete(list, i, i+1)
	}
	m.entities[id] = e
	m.byType[tag] = append(m.byType[tag], e)
	return e
}

// Entity looks an instance up by its #ID.
func (m *Model) Entity(id uint64) (*Entity, bool) {
	if m == nil {
		return nil, false
	}
	e, ok := m.entities[id]
	return e, ok
}

// ByType returns every instance of exactly the given type, in file order.
func (m *Model) ByType(typeName string) []*Entity {
	return m.byType[strings.ToUpper(typeName)]
}

// Len returns the number of instances in the model.
func (m *Model) Len() int {
	return len(m.entities)
}

// Index builds the inverse relationship indexes used by PropertySets.
func (m *Model) Index() {
	m.definedBy = make(map[uint64][]*Entity)
	m.definedByType = make(map[uint64][]*Entity)

	for _, rel := range m.ByType(TypeRelDefinesByProperties) {
		for _, obj := range rel.Refs("RelatedObjects") {
			m.definedBy[obj.ID] = append(m.definedBy[obj.ID], rel)
		}
	}
	for _, rel := range m.ByType(TypeRelDefinesByType) {
		for _, obj := range rel.Refs("RelatedObjects") {
			m.definedByType[obj.ID] = append(m.definedByType[obj.ID], rel)
		}
	}
	m.indexed = true
}
