package ifc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, data string) *Model {
	t.Helper()
	m, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	return m
}

func TestOpenSample(t *testing.T) {
	m, err := Open("testdata/sample.ifc")
	require.NoError(t, err)

	assert.Len(t, m.ByType(TypeSpace), 4)
	assert.Len(t, m.ByType("ifcspace"), 4, "type lookup is case-insensitive")
	assert.Len(t, m.ByType(TypeRelAggregates), 2)
	assert.Len(t, m.ByType(TypeRelSpaceBoundary), 4)
	assert.Len(t, m.ByType(TypeRelSpaceBoundary1stLevel), 3)
	assert.Len(t, m.ByType(TypeRelSpaceBoundary2ndLevel), 1)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("testdata/does-not-exist.ifc")
	require.Error(t, err)
}

func TestEntityAccess(t *testing.T) {
	m, err := Open("testdata/sample.ifc")
	require.NoError(t, err)

	space, ok := m.Entity(10)
	require.True(t, ok)
	assert.Equal(t, TypeSpace, space.Type())
	assert.Equal(t, "0Spc0000000000000000001", space.GlobalID())

	long, ok := space.String("LongName")
	require.True(t, ok)
	assert.Equal(t, "Office 101 - ISO 7", long)

	_, ok = space.String("NoSuchField")
	assert.False(t, ok)

	nameless, _ := m.Entity(13)
	_, ok = nameless.String("Name")
	assert.False(t, ok, "$ is not a value")
	assert.Equal(t, "2O2Fr$t4X7Zf8NOew3FNr2", nameless.GlobalID())

	agg, _ := m.Entity(4)
	parent, ok := agg.Ref("RelatingObject")
	require.True(t, ok)
	assert.Equal(t, TypeBuildingStorey, parent.Type())
	assert.Len(t, agg.Refs("RelatedObjects"), 4)

	bnd, _ := m.Entity(36)
	_, ok = bnd.Ref("RelatedBuildingElement")
	assert.False(t, ok)

	wall, _ := m.Entity(20)
	assert.Equal(t, "IFCWALL", wall.Type(), "types outside the table keep their tag")
	assert.Equal(t, "4Wall000000000000000001", wall.GlobalID())
}

func TestParseValues(t *testing.T) {
	m := parseString(t, `ISO-10303-21;
HEADER;
FILE_NAME('a;b','x',(''),(''),'','','');
ENDSEC;
DATA;
#1=IFCPROPERTYSINGLEVALUE('It''s',$,IFCREAL(-1.5E2),*);
#2=IFCPROPERTYENUMERATEDVALUE('Finish',$,(IFCLABEL('Matte'),IFCLABEL('Gloss')),$);
#3 = IFCPROPERTYSINGLEVALUE ( 'Flag' , $ , IFCBOOLEAN(.T.) , $ ) ;
#4=IFCPROPERTYSINGLEVALUE('Bin',$,"0F",$);
ENDSEC;
END-ISO-10303-21;
`)

	p1, ok := m.Entity(1)
	require.True(t, ok)
	name, _ := p1.String("Name")
	assert.Equal(t, "It's", name)

	nominal, ok := p1.Attr("NominalValue")
	require.True(t, ok)
	assert.Equal(t, KindTyped, nominal.Kind)
	assert.Equal(t, "IFCREAL", nominal.Text)
	text, ok := ValueText(nominal)
	require.True(t, ok)
	assert.Equal(t, "-1.5E2", text)

	unit, _ := p1.Attr("Unit")
	assert.Equal(t, KindDerived, unit.Kind)
	assert.True(t, unit.IsNull())

	p2, _ := m.Entity(2)
	enum, _ := p2.Attr("EnumerationValues")
	require.Equal(t, KindList, enum.Kind)
	assert.Len(t, enum.List, 2)

	p3, _ := m.Entity(3)
	flag, _ := p3.String("NominalValue")
	assert.Equal(t, "T", flag)

	p4, _ := m.Entity(4)
	bin, _ := p4.Attr("NominalValue")
	assert.Equal(t, KindBinary, bin.Kind)
	assert.Equal(t, "0F", bin.Text)
}

func TestParseSkipsComplexInstances(t *testing.T) {
	m := parseString(t, `DATA;
#1=(IFCA('x')IFCB(#2));
#2=IFCSPACE('g',$,'n',$,$,$,$,$,$,$,$);
ENDSEC;`)

	_, ok := m.Entity(1)
	assert.False(t, ok)
	assert.Len(t, m.ByType(TypeSpace), 1)
}

func TestDuplicateInstanceReplacesEarlier(t *testing.T) {
	m := parseString(t, `DATA;
#1=IFCSPACE('first',$,'a',$,$,$,$,$,$,$,$);
#2=IFCSPACE('other',$,'b',$,$,$,$,$,$,$,$);
#1=IFCSPACE('second',$,'a',$,$,$,$,$,$,$,$);
#2=IFCWALL('wall',$,$,$);
ENDSEC;`)

	spaces := m.ByType(TypeSpace)
	require.Len(t, spaces, 1)
	assert.Equal(t, "second", spaces[0].GlobalID())
	e, _ := m.Entity(1)
	assert.Same(t, spaces[0], e)

	walls := m.ByType("IfcWall")
	require.Len(t, walls, 1)
	assert.Equal(t, "wall", walls[0].GlobalID())
	assert.Equal(t, 2, m.Len())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"no data section", "ISO-10303-21;\nHEADER;\nENDSEC;\n", ErrNoDataSection},
		{"unterminated string", "DATA;\n#1=IFCSPACE('abc);\n", ErrSyntax},
		{"missing equals", "DATA;\n#1 IFCSPACE('a');\n", ErrSyntax},
		{"bad list separator", "DATA;\n#1=IFCSPACE('a' 'b');\n", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseErrorCarriesLine(t *testing.T) {
	_, err := Parse(strings.NewReader("DATA;\n#1=IFCSPACE('a');\n#2=IFCSPACE('a' 'b');\n"))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, uint64(2), perr.Entity)
}

func TestDecodeString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`plain`, "plain"},
		{`back\\slash`, `back\slash`},
		{`Stra\X2\00DF\X0\e`, "Straße"},
		{`caf\X\E9`, "café"},
		{`\X4\0001F600\X0\`, "\U0001F600"},
		{`\PA\text`, "text"},
		{`dangling\X2\00DF`, `dangling\X2\00DF`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeString(tt.in))
		})
	}
}
