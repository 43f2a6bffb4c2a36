package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for one facilitygraph process
type Registry struct {
	// Model loading
	ModelEntitiesTotal prometheus.Gauge
	ModelParseDuration prometheus.Histogram

	// Topology build
	BuildsTotal            *prometheus.CounterVec
	BuildStageDuration     *prometheus.HistogramVec
	GraphNodesTotal        *prometheus.GaugeVec
	GraphEdgesTotal        *prometheus.GaugeVec
	BoundaryRelationsTotal *prometheus.GaugeVec
	SpacesMissingQuantity  *prometheus.GaugeVec
	PropertySetFallbacks   prometheus.Gauge
	CorridorSpaces         prometheus.Gauge
	AdjacencyGroupsTotal   *prometheus.GaugeVec

	// Outputs
	ExportsTotal     *prometheus.CounterVec
	ExportDuration   *prometheus.HistogramVec
	ExportBytesTotal *prometheus.CounterVec

	// System Metrics
	RunStartTimestamp prometheus.Gauge
	GoRoutines        prometheus.Gauge
	MemoryAllocBytes  prometheus.Gauge
	MemorySysBytes    prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.Mutex
}
