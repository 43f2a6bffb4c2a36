package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initModelMetrics() {
	r.ModelEntitiesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "facilitygraph_model_entities_total",
			Help: "Number of entity instances read from the IFC model",
		},
	)

	r.ModelParseDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "facilitygraph_model_parse_duration_seconds",
			Help:    "Time spent reading and indexing the IFC model",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)
}

func (r *Registry) initBuildMetrics() {
	r.BuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilitygraph_builds_total",
			Help: "Total number of topology builds",
		},
		[]string{"status"},
	)

	r.BuildStageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "facilitygraph_build_stage_duration_seconds",
			Help:    "Duration of each topology build stage in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
		},
		[]string{"stage"},
	)

	r.GraphNodesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "facilitygraph_graph_nodes_total",
			Help: "Nodes in the built graph by kind",
		},
		[]string{"kind"},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "facilitygraph_graph_edges_total",
			Help: "Edges in the built graph by type",
		},
		[]string{"type"},
	)

	r.BoundaryRelationsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "facilitygraph_boundary_relations_total",
			Help: "Space boundary relationships by outcome",
		},
		[]string{"outcome"},
	)

	r.SpacesMissingQuantity = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "facilitygraph_spaces_missing_quantity",
			Help: "Spaces without a usable quantity value",
		},
		[]string{"quantity"},
	)

	r.PropertySetFallbacks = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "facilitygraph_property_set_fallbacks",
			Help: "Spaces whose property sets were read by explicit traversal",
		},
	)

	r.CorridorSpaces = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "facilitygraph_corridor_spaces",
			Help: "Spaces whose name matches a corridor keyword",
		},
	)

	r.AdjacencyGroupsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "facilitygraph_adjacency_groups_total",
			Help: "Boundary groups that produced adjacency, by shape",
		},
		[]string{"shape"},
	)
}

func (r *Registry) initExportMetrics() {
	r.ExportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilitygraph_exports_total",
			Help: "Total number of graph exports",
		},
		[]string{"format", "status"},
	)

	r.ExportDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "facilitygraph_export_duration_seconds",
			Help:    "Export duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"format"},
	)

	r.ExportBytesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilitygraph_export_bytes_total",
			Help: "Bytes written per export format",
		},
		[]string{"format"},
	)
}
