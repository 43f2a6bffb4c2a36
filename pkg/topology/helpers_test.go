package topology

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rominabarouti/FacilityGraph/pkg/ifc"
)

// modelBuilder assembles small in-memory IFC models for tests.
type modelBuilder struct {
	m    *ifc.Model
	next uint64
}

func newModelBuilder() *modelBuilder {
	return &modelBuilder{m: ifc.NewModel(), next: 1}
}

func str(s string) ifc.Value { return ifc.Value{Kind: ifc.KindString, Text: s} }

func num(s string) ifc.Value { return ifc.Value{Kind: ifc.KindNumber, Text: s} }

func ref(id uint64) ifc.Value { return ifc.Value{Kind: ifc.KindRef, Ref: id} }

func refs(ids ...uint64) ifc.Value {
	v := ifc.Value{Kind: ifc.KindList}
	for _, id := range ids {
		v.List = append(v.List, ref(id))
	}
	return v
}

var null = ifc.Value{Kind: ifc.KindNull}

func (b *modelBuilder) add(typeName string, attrs ...ifc.Value) uint64 {
	id := b.next
	b.next++
	b.m.Add(id, typeName, attrs)
	return id
}

// space adds an IfcSpace. Empty names are written as $.
func (b *modelBuilder) space(gid, name, longName string) uint64 {
	opt := func(s string) ifc.Value {
		if s == "" {
			return null
		}
		return str(s)
	}
	return b.add(ifc.TypeSpace, str(gid), null, opt(name), null, null, null, null, opt(longName))
}

func (b *modelBuilder) element(gid string) uint64 {
	return b.add("IfcWall", str(gid), null, null, null)
}

// boundary adds a boundary relationship; zero ids and an empty GlobalId are
// written as $.
func (b *modelBuilder) boundary(typeName, gid string, space, element uint64) uint64 {
	opt := func(id uint64) ifc.Value {
		if id == 0 {
			return null
		}
		return ref(id)
	}
	g := null
	if gid != "" {
		g = str(gid)
	}
	return b.add(typeName, g, null, null, null, opt(space), opt(element))
}

func (b *modelBuilder) aggregate(gid string, parent uint64, children ...uint64) uint64 {
	return b.add(ifc.TypeRelAggregates, str(gid), null, null, null, ref(parent), refs(children...))
}

func (b *modelBuilder) quantities(gid string, target uint64, quantities map[string]string) {
	var ids []uint64
	for name, value := range quantities {
		ids = append(ids, b.add(ifc.TypeQuantityArea, str(name), null, null, num(value)))
	}
	qto := b.add(ifc.TypeElementQuantity, str(gid), null, str("Qto"), null, null, refs(ids...))
	b.add(ifc.TypeRelDefinesByProperties, str(gid+"-rel"), null, null, null, refs(target), ref(qto))
}

// indexed returns the model with its property index built.
func (b *modelBuilder) indexed() *ifc.Model {
	b.m.Index()
	return b.m
}

func openSample(t *testing.T) *ifc.Model {
	t.Helper()
	m, err := ifc.Open("testdata/sample.ifc")
	require.NoError(t, err)
	return m
}
