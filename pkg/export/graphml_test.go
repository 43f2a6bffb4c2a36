package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

func TestWriteGraphML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGraphML(&buf, sampleSnapshot()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `edgedefault="undirected"`)
	assert.Contains(t, out, `<key id="d2" for="node" attr.name="room_name" attr.type="string"></key>`)
	assert.Contains(t, out, `<key id="d8" for="edge" attr.name="vias" attr.type="string"></key>`)
	assert.Contains(t, out, `<data key="d7">adjacent</data>`)
	assert.Contains(t, out, `<data key="d8">wall-1;slab-1</data>`)
	assert.Contains(t, out, "Lab &amp; Store", "text must be escaped")
	assert.Equal(t, 9, strings.Count(out, "<key "))
}

func TestGraphMLRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	var buf bytes.Buffer
	require.NoError(t, WriteGraphML(&buf, snap))

	got, err := ReadGraphML(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestGraphMLEmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGraphML(&buf, topology.Snapshot{}))

	got, err := ReadGraphML(&buf)
	require.NoError(t, err)
	assert.Empty(t, got.Nodes)
	assert.Empty(t, got.Edges)
}

func TestReadGraphMLForeignKeyIDs(t *testing.T) {
	doc := `<?xml version="1.0"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <key id="k_type" for="node" attr.name="ifc_type" attr.type="string"/>
  <key id="k_iso" for="node" attr.name="iso" attr.type="string"/>
  <key id="k_edge" for="edge" attr.name="type" attr.type="string"/>
  <graph edgedefault="undirected">
    <node id="a"><data key="k_type">IfcSpace</data><data key="k_iso">8</data></node>
    <node id="b"><data key="k_type">IfcSpace</data></node>
    <edge source="a" target="b"><data key="k_edge">adjacent</data></edge>
  </graph>
</graphml>`

	got, err := ReadGraphML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, got.Nodes, 2)
	assert.Equal(t, "IfcSpace", got.Nodes[0].IFCType)
	assert.Equal(t, "8", got.Nodes[0].ISO)
	require.Len(t, got.Edges, 1)
	assert.Equal(t, "adjacent", got.Edges[0].Type)
	assert.Empty(t, got.Edges[0].Vias)
}

func TestReadGraphMLInvalid(t *testing.T) {
	_, err := ReadGraphML(strings.NewReader("<graphml><graph>"))
	assert.Error(t, err)
}
