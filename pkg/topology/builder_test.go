package topology

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rominabarouti/FacilityGraph/pkg/ifc"
	"github.com/rominabarouti/FacilityGraph/pkg/logging"
)

const (
	office  = "0Spc0000000000000000001"
	hall    = "0Spc0000000000000000002"
	storage = "0Spc0000000000000000003"
	unnamed = "2O2Fr$t4X7Zf8NOew3FNr2"
	wall    = "4Wall000000000000000001"
	slab    = "4Slab000000000000000001"
	storey  = "2Stor000000000000000001"
	bldg    = "1Bldg000000000000000001"
)

type recordingObserver struct {
	stages []string
}

func (r *recordingObserver) ObserveStage(stage string, d time.Duration) {
	r.stages = append(r.stages, stage)
}

func TestBuildSample(t *testing.T) {
	obs := &recordingObserver{}
	g, report := NewBuilder(Options{Observer: obs}).Build(openSample(t))

	t.Run("spaces", func(t *testing.T) {
		tests := []struct {
			id, name, iso, area, volume string
		}{
			{office, "Office 101", "7", "22.75", "68.25"},
			{hall, "Main Corridor", "0", "1234.50", ""},
			{storage, "Storage", "0", "", ""},
			{unnamed, "Space-2O2Fr$", "0", "", ""},
		}
		for _, tt := range tests {
			n, ok := g.Node(tt.id)
			require.True(t, ok, tt.id)
			assert.Equal(t, KindSpace, n.Kind)
			assert.Equal(t, "IfcSpace", n.IFCType)
			assert.Equal(t, tt.name, n.Name)
			assert.Equal(t, tt.name, n.RoomName)
			assert.Equal(t, tt.iso, n.ISO)
			assert.Equal(t, tt.area, n.Area)
			assert.Equal(t, tt.volume, n.Volume)
		}
	})

	t.Run("structure", func(t *testing.T) {
		b, ok := g.Node(bldg)
		require.True(t, ok)
		assert.Equal(t, "IfcBuilding", b.IFCType)
		assert.Equal(t, "Main Building", b.Name)
		assert.Equal(t, "", b.ISO)

		s, ok := g.Node(storey)
		require.True(t, ok)
		assert.Equal(t, "IfcBuildingStorey", s.IFCType)

		for _, id := range []string{office, hall, storage, unnamed} {
			e, ok := g.Edge(storey, id)
			require.True(t, ok, id)
			assert.Equal(t, EdgeContains, e.Kind)
		}
		_, ok = g.Edge(bldg, storey)
		assert.False(t, ok, "only spaces are linked by containment")
	})

	t.Run("adjacency", func(t *testing.T) {
		e, ok := g.Edge(office, hall)
		require.True(t, ok)
		assert.Equal(t, []string{slab, wall}, e.Vias)

		for _, p := range [][2]string{{office, storage}, {hall, storage}} {
			e, ok := g.Edge(p[0], p[1])
			require.True(t, ok)
			assert.Equal(t, []string{slab}, e.Vias)
		}
		assert.Equal(t, 3, g.CountEdges(EdgeAdjacent))
	})

	t.Run("report", func(t *testing.T) {
		assert.Equal(t, ExtractStats{Spaces: 4, MissingArea: 2, MissingVolume: 3, CorridorSpaces: 1}, report.Extract)
		assert.Equal(t, ContainmentStats{Parents: 2, ContainsEdges: 4}, report.Containment)
		assert.Equal(t, BoundaryStats{Relationships: 8, Skipped: 1, Virtual: 1, Groups: 3}, report.Boundaries)
		assert.Equal(t, AdjacencyStats{Edges: 3, PairGroups: 1, ClosureGroups: 1, CorridorGroups: 2}, report.Adjacency)
		assert.Equal(t, 6, report.Nodes)
		assert.Equal(t, 7, report.Edges)
		assert.Equal(t, []string{StageExtract, StageContainment, StageBoundaries, StageAdjacency}, obs.stages)
	})
}

func TestBuildQuantityPolicy(t *testing.T) {
	g, _ := NewBuilder(Options{Policy: PolicyMin}).Build(openSample(t))
	n, _ := g.Node(office)
	assert.Equal(t, "20.50", n.Area)
}

func TestBuildUsesFallbackWithoutIndex(t *testing.T) {
	b := newModelBuilder()
	s := b.space("S1", "Room", "")
	b.quantities("Q1", s, map[string]string{"GrossFloorArea": "12"})
	// the model is deliberately left unindexed

	g, report := NewBuilder(Options{}).Build(b.m)

	n, ok := g.Node("S1")
	require.True(t, ok)
	assert.Equal(t, "12.00", n.Area)
	assert.Equal(t, 1, report.Extract.PsetFallbacks)
}

func TestBuildLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, logging.DebugLevel)

	NewBuilder(Options{Logger: logger}).Build(openSample(t))

	var sawSkip, sawSummary bool
	stages := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry logging.LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		switch entry.Message {
		case "boundary without resolvable space skipped":
			sawSkip = true
		case "topology built":
			sawSummary = true
			assert.Equal(t, float64(7), entry.Fields["edges"])
		case "stage complete":
			stages[entry.Fields["stage"].(string)] = true
		}
	}
	assert.True(t, sawSkip)
	assert.True(t, sawSummary)
	assert.Len(t, stages, 4)
}

func TestBuildSkipsSpacesWithoutGlobalID(t *testing.T) {
	b := newModelBuilder()
	b.add(ifc.TypeSpace, null, null, str("Ghost"))
	b.space("S1", "Room", "")

	g, report := NewBuilder(Options{}).Build(b.indexed())

	assert.Equal(t, 1, report.Extract.Spaces)
	assert.Equal(t, 1, report.Extract.MissingGlobal)
	assert.Equal(t, 1, g.NodeCount())
}

func TestBuildIgnoresOtherAggregations(t *testing.T) {
	b := newModelBuilder()
	s := b.space("S1", "Room", "")
	assembly := b.add("IfcElementAssembly", str("A1"), null, str("Truss"))
	b.aggregate("R1", assembly, s)
	site := b.add("IfcSite", str("Site1"), null, str("Site"))
	b.aggregate("R2", site, s)

	g, report := NewBuilder(Options{}).Build(b.indexed())

	assert.Equal(t, 2, report.Containment.Ignored)
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestBuildStructuralLabelFallsBackToID(t *testing.T) {
	b := newModelBuilder()
	s := b.space("S1", "Room", "")
	st := b.add(ifc.TypeBuildingStorey, str("ST1"), null, null)
	b.aggregate("R1", st, s)
	b.aggregate("R2", st, s)

	g, report := NewBuilder(Options{}).Build(b.indexed())

	n, ok := g.Node("ST1")
	require.True(t, ok)
	assert.Equal(t, "ST1", n.Name)
	assert.Equal(t, 1, report.Containment.Parents)
	assert.Equal(t, 1, report.Containment.ContainsEdges)
}
