package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rominabarouti/FacilityGraph/pkg/config"
	"github.com/rominabarouti/FacilityGraph/pkg/health"
	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	rep := topology.Report{
		Extract:     topology.ExtractStats{Spaces: 12, MissingArea: 1, CorridorSpaces: 2},
		Containment: topology.ContainmentStats{ContainsEdges: 12},
		Boundaries:  topology.BoundaryStats{Groups: 9, Virtual: 2},
		Adjacency:   topology.AdjacencyStats{Edges: 15},
		Nodes:       14,
		Edges:       27,
		Duration:    1234567 * time.Microsecond,
	}
	outputs := []outcome{{kind: "graphml", dest: "site.graphml", bytes: 2048}, {kind: "neo4j", dest: "neo4j://db"}}

	quality := health.Response{
		Status: health.StatusDegraded,
		Checks: map[string]health.Check{
			"spaces":     {Status: health.StatusHealthy},
			"quantities": {Status: health.StatusDegraded},
			"adjacency":  {Status: health.StatusDegraded},
		},
	}

	require.NoError(t, renderSummary(&buf, "site.ifc", rep, quality, outputs))
	out := buf.String()

	for _, want := range []string{
		"FacilityGraph", "site.ifc", "12 (2 corridor)", "27 (12 contains, 15 adjacent)",
		"9 groups, 2 virtual, 0 skipped", "1.235s", "site.graphml (2048 bytes)", "neo4j://db",
		"degraded (adjacency, quantities)",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[", "no colour when not a terminal")
	assert.True(t, strings.HasPrefix(out, "╭"), "summary is boxed")
}

func TestFlagsApplyOnlyExplicit(t *testing.T) {
	var stderr bytes.Buffer
	f, err := parseFlags([]string{"--json", "out.json", "--report", "quality.json", "--compress", "model.ifc"}, &stderr)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Output.GraphML = "from-file.graphml"
	cfg.Quantities.Policy = "first"
	f.apply(cfg)

	assert.Equal(t, "model.ifc", cfg.Input)
	assert.Equal(t, "out.json", cfg.Output.JSON)
	assert.Equal(t, "quality.json", cfg.Output.Report)
	assert.True(t, cfg.Output.Compress)
	assert.Equal(t, "from-file.graphml", cfg.Output.GraphML, "unset flags keep file values")
	assert.Equal(t, "first", cfg.Quantities.Policy)
}
