package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

func gaugeValue(t *testing.T, vec *prometheus.GaugeVec, label string) float64 {
	t.Helper()
	g, err := vec.GetMetricWithLabelValues(label)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.BuildsTotal == nil {
		t.Error("BuildsTotal not initialized")
	}
	if r.BuildStageDuration == nil {
		t.Error("BuildStageDuration not initialized")
	}
	if r.ExportsTotal == nil {
		t.Error("ExportsTotal not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}

	var metric dto.Metric
	if err := r.RunStartTimestamp.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() <= 0 {
		t.Error("RunStartTimestamp should be set on creation")
	}
}

func TestRecordBuild(t *testing.T) {
	r := NewRegistry()

	r.RecordBuild(topology.Report{
		Extract:     topology.ExtractStats{Spaces: 4, MissingArea: 2, MissingVolume: 3, PsetFallbacks: 1, CorridorSpaces: 1},
		Containment: topology.ContainmentStats{Parents: 2, ContainsEdges: 4},
		Boundaries:  topology.BoundaryStats{Relationships: 8, Skipped: 1, Virtual: 1, Groups: 3},
		Adjacency:   topology.AdjacencyStats{Edges: 3, PairGroups: 1, ClosureGroups: 1, CorridorGroups: 2},
	})

	tests := []struct {
		name  string
		vec   *prometheus.GaugeVec
		label string
		want  float64
	}{
		{"space nodes", r.GraphNodesTotal, "space", 4},
		{"structural nodes", r.GraphNodesTotal, "structural", 2},
		{"contains edges", r.GraphEdgesTotal, "contains", 4},
		{"adjacent edges", r.GraphEdgesTotal, "adjacent", 3},
		{"grouped boundaries", r.BoundaryRelationsTotal, "grouped", 6},
		{"virtual boundaries", r.BoundaryRelationsTotal, "virtual", 1},
		{"skipped boundaries", r.BoundaryRelationsTotal, "skipped", 1},
		{"missing area", r.SpacesMissingQuantity, "area", 2},
		{"missing volume", r.SpacesMissingQuantity, "volume", 3},
		{"closure groups", r.AdjacencyGroupsTotal, "closure", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gaugeValue(t, tt.vec, tt.label); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	var corridors dto.Metric
	if err := r.CorridorSpaces.Write(&corridors); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if corridors.Gauge.GetValue() != 1 {
		t.Errorf("corridor spaces = %v, want 1", corridors.Gauge.GetValue())
	}

	counter, err := r.BuildsTotal.GetMetricWithLabelValues("success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("builds success = %v, want 1", metric.Counter.GetValue())
	}
}

func TestObserveStage(t *testing.T) {
	r := NewRegistry()
	var _ topology.StageObserver = r

	r.ObserveStage(topology.StageAdjacency, 5*time.Millisecond)
	r.ObserveStage(topology.StageAdjacency, 7*time.Millisecond)

	h, err := r.BuildStageDuration.GetMetricWithLabelValues(topology.StageAdjacency)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := h.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("sample count = %v, want 2", metric.Histogram.GetSampleCount())
	}
}

func TestRecordExport(t *testing.T) {
	r := NewRegistry()

	r.RecordExport("graphml", 1024, 10*time.Millisecond, nil)
	r.RecordExport("graphml", 0, time.Millisecond, errors.New("disk full"))

	for status, want := range map[string]float64{"success": 1, "error": 1} {
		c, err := r.ExportsTotal.GetMetricWithLabelValues("graphml", status)
		if err != nil {
			t.Fatalf("Failed to get metric: %v", err)
		}
		var metric dto.Metric
		if err := c.Write(&metric); err != nil {
			t.Fatalf("Failed to write metric: %v", err)
		}
		if metric.Counter.GetValue() != want {
			t.Errorf("exports %s = %v, want %v", status, metric.Counter.GetValue(), want)
		}
	}

	c, _ := r.ExportBytesTotal.GetMetricWithLabelValues("graphml")
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1024 {
		t.Errorf("export bytes = %v, want 1024", metric.Counter.GetValue())
	}
}

func TestUpdateRuntimeMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateRuntimeMetrics()

	var metric dto.Metric
	if err := r.GoRoutines.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() < 1 {
		t.Errorf("goroutines = %v, want >= 1", metric.Gauge.GetValue())
	}
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordModelLoad(120, 30*time.Millisecond)
	r.RecordBuildFailure()

	path := filepath.Join(t.TempDir(), "facilitygraph.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics file: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"facilitygraph_model_entities_total 120",
		`facilitygraph_builds_total{status="error"} 1`,
		"facilitygraph_model_parse_duration_seconds_count 1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics file missing %q", want)
		}
	}

	if err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")); err == nil {
		t.Error("expected error for unwritable path")
	}
}
