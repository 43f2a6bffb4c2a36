package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initModelMetrics()
	r.initBuildMetrics()
	r.initExportMetrics()
	r.initSystemMetrics()

	r.RunStartTimestamp.SetToCurrentTime()
	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordModelLoad records the size of a loaded model and how long it took
func (r *Registry) RecordModelLoad(entities int, duration time.Duration) {
	r.ModelEntitiesTotal.Set(float64(entities))
	r.ModelParseDuration.Observe(duration.Seconds())
}

// ObserveStage records the duration of one build stage. It satisfies
// topology.StageObserver.
func (r *Registry) ObserveStage(stage string, d time.Duration) {
	r.BuildStageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordBuild publishes the statistics of a finished build
func (r *Registry) RecordBuild(rep topology.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.BuildsTotal.WithLabelValues("success").Inc()

	r.GraphNodesTotal.WithLabelValues(topology.KindSpace.String()).Set(float64(rep.Extract.Spaces))
	r.GraphNodesTotal.WithLabelValues(topology.KindStructural.String()).Set(float64(rep.Containment.Parents))
	r.GraphEdgesTotal.WithLabelValues(string(topology.EdgeContains)).Set(float64(rep.Containment.ContainsEdges))
	r.GraphEdgesTotal.WithLabelValues(string(topology.EdgeAdjacent)).Set(float64(rep.Adjacency.Edges))

	b := rep.Boundaries
	r.BoundaryRelationsTotal.WithLabelValues("grouped").Set(float64(b.Relationships - b.Skipped - b.Virtual))
	r.BoundaryRelationsTotal.WithLabelValues("virtual").Set(float64(b.Virtual))
	r.BoundaryRelationsTotal.WithLabelValues("skipped").Set(float64(b.Skipped))

	r.SpacesMissingQuantity.WithLabelValues("area").Set(float64(rep.Extract.MissingArea))
	r.SpacesMissingQuantity.WithLabelValues("volume").Set(float64(rep.Extract.MissingVolume))
	r.PropertySetFallbacks.Set(float64(rep.Extract.PsetFallbacks))
	r.CorridorSpaces.Set(float64(rep.Extract.CorridorSpaces))

	r.AdjacencyGroupsTotal.WithLabelValues("pair").Set(float64(rep.Adjacency.PairGroups))
	r.AdjacencyGroupsTotal.WithLabelValues("closure").Set(float64(rep.Adjacency.ClosureGroups))
	r.AdjacencyGroupsTotal.WithLabelValues("corridor").Set(float64(rep.Adjacency.CorridorGroups))
}

// RecordBuildFailure counts a build that did not complete
func (r *Registry) RecordBuildFailure() {
	r.BuildsTotal.WithLabelValues("error").Inc()
}

// RecordExport records one export with its size and duration
func (r *Registry) RecordExport(format string, bytes int64, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.ExportsTotal.WithLabelValues(format, status).Inc()
	r.ExportDuration.WithLabelValues(format).Observe(duration.Seconds())
	if bytes > 0 {
		r.ExportBytesTotal.WithLabelValues(format).Add(float64(bytes))
	}
}

// UpdateRuntimeMetrics samples goroutine and memory usage
func (r *Registry) UpdateRuntimeMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// WriteTextfile writes every metric in the Prometheus text format, suitable
// for the node_exporter textfile collector
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
