package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

type recordingWriter struct {
	stmts  []Statement
	err    error
	closed bool
}

func (w *recordingWriter) Write(_ context.Context, stmts []Statement) error {
	if w.err != nil {
		return w.err
	}
	w.stmts = append(w.stmts, stmts...)
	return nil
}

func (w *recordingWriter) Close(context.Context) error {
	w.closed = true
	return nil
}

func rows(t *testing.T, st Statement) []any {
	t.Helper()
	r, ok := st.Params["rows"].([]any)
	require.True(t, ok, "rows param missing")
	return r
}

func TestNeo4jStatements(t *testing.T) {
	stmts := Neo4jStatements(sampleSnapshot(), 0)
	require.Len(t, stmts, 4)

	// nodes come sorted by ID, so the space label is seen first
	assert.Contains(t, stmts[0].Cypher, "MERGE (n:FacilityNode {id: row.id}) SET n:Space")
	assert.Len(t, rows(t, stmts[0]), 2)
	assert.Contains(t, stmts[1].Cypher, "SET n:BuildingStorey")
	assert.Len(t, rows(t, stmts[1]), 1)

	assert.Contains(t, stmts[2].Cypher, "[r:ADJACENT_TO]")
	adj := rows(t, stmts[2])[0].(map[string]any)
	assert.Equal(t, "space-a", adj["source"])
	assert.Equal(t, "space-b", adj["target"])
	assert.Equal(t, []any{"wall-1", "slab-1"}, adj["vias"])

	assert.Contains(t, stmts[3].Cypher, "[r:CONTAINS]")
	for _, r := range rows(t, stmts[3]) {
		row := r.(map[string]any)
		assert.Equal(t, "storey-1", row["source"], "containment starts at the parent")
		assert.Equal(t, []any{}, row["vias"])
	}
}

func TestNeo4jStatementsNodeProps(t *testing.T) {
	stmts := Neo4jStatements(sampleSnapshot(), 0)
	row := rows(t, stmts[0])[0].(map[string]any)
	assert.Equal(t, "space-a", row["id"])

	props := row["props"].(map[string]any)
	assert.Len(t, props, 7)
	assert.Equal(t, "Office 101", props["name"])
	assert.Equal(t, "7", props["iso"])
	assert.Equal(t, "22.75", props["area"])
	assert.Equal(t, "space-a", props["GUID"])
}

func TestNeo4jStatementsBatching(t *testing.T) {
	snap := topology.Snapshot{}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		snap.Nodes = append(snap.Nodes, topology.NodeRecord{ID: id, IFCType: "IfcSpace"})
	}

	stmts := Neo4jStatements(snap, 2)
	require.Len(t, stmts, 3)
	assert.Len(t, rows(t, stmts[0]), 2)
	assert.Len(t, rows(t, stmts[1]), 2)
	assert.Len(t, rows(t, stmts[2]), 1)
}

func TestNodeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"IfcSpace", "Space"},
		{"IfcBuildingStorey", "BuildingStorey"},
		{"Ifc", "Unknown"},
		{"", "Unknown"},
		{"Ifc Odd-Type", "OddType"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nodeLabel(tt.in), tt.in)
	}
}

func TestRelType(t *testing.T) {
	assert.Equal(t, "CONTAINS", relType("contains"))
	assert.Equal(t, "ADJACENT_TO", relType("adjacent"))
	assert.Equal(t, "BOUNDS", relType("bounds"))
	assert.Equal(t, "RELATED_TO", relType("--"))
}

func TestNeo4jExporter(t *testing.T) {
	w := &recordingWriter{}
	exp := newNeo4jExporter(w, 1)

	n, err := exp.Export(context.Background(), sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Len(t, w.stmts, 6)
	for _, st := range w.stmts {
		assert.True(t, strings.HasPrefix(st.Cypher, "UNWIND $rows AS row"))
	}

	require.NoError(t, exp.Close(context.Background()))
	assert.True(t, w.closed)
}

func TestNeo4jExporterWriteError(t *testing.T) {
	cause := errors.New("connection reset")
	exp := newNeo4jExporter(&recordingWriter{err: cause}, 0)

	n, err := exp.Export(context.Background(), sampleSnapshot())
	assert.Zero(t, n)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "neo4j write")
	assert.Equal(t, DefaultBatchSize, exp.batchSize)
}
