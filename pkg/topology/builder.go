package topology

import (
	"time"

	"github.com/rominabarouti/FacilityGraph/pkg/ifc"
	"github.com/rominabarouti/FacilityGraph/pkg/logging"
)

// Stage names, as used in logs and metrics.
const (
	StageExtract     = "extract_spaces"
	StageContainment = "link_containment"
	StageBoundaries  = "aggregate_boundaries"
	StageAdjacency   = "resolve_adjacency"
)

// StageObserver receives the duration of each completed stage.
type StageObserver interface {
	ObserveStage(stage string, d time.Duration)
}

// Options configures a Builder.
type Options struct {
	Classifier *Classifier
	Policy     QuantityPolicy
	Logger     logging.Logger
	Observer   StageObserver
}

// Builder runs the four construction stages over a model.
type Builder struct {
	classifier *Classifier
	policy     QuantityPolicy
	logger     logging.Logger
	observer   StageObserver
}

// Report collects the statistics of every stage of one build.
type Report struct {
	Extract     ExtractStats
	Containment ContainmentStats
	Boundaries  BoundaryStats
	Adjacency   AdjacencyStats
	Nodes       int
	Edges       int
	Duration    time.Duration
}

// NewBuilder creates a builder, filling unset options with defaults.
func NewBuilder(opts Options) *Builder {
	b := &Builder{
		classifier: opts.Classifier,
		policy:     opts.Policy,
		logger:     opts.Logger,
		observer:   opts.Observer,
	}
	if b.classifier == nil {
		b.classifier = DefaultClassifier()
	}
	if b.policy == "" {
		b.policy = PolicyMax
	}
	if b.logger == nil {
		b.logger = logging.NewNopLogger()
	}
	return b
}

// Build extracts spaces, links containment, aggregates boundaries and
// resolves adjacency, in that order. The returned graph is complete and owned
// by the caller.
func (b *Builder) Build(src ifc.Source) (*Graph, Report) {
	start := time.Now()
	g := NewGraph()
	var r Report

	b.stage(StageExtract, func() {
		r.Extract = ExtractSpaces(src, g, b.classifier, b.policy, b.logger)
	})

	b.stage(StageContainment, func() {
		r.Containment = LinkContainment(src, g, b.logger)
	})

	var groups BoundaryGroups
	b.stage(StageBoundaries, func() {
		groups, r.Boundaries = AggregateBoundaries(src, b.logger)
	})

	b.stage(StageAdjacency, func() {
		r.Adjacency = ResolveAdjacency(g, groups, b.classifier)
	})

	r.Nodes = g.NodeCount()
	r.Edges = g.EdgeCount()
	r.Duration = time.Since(start)

	b.logger.Info("topology built",
		logging.Int("nodes", r.Nodes),
		logging.Int("edges", r.Edges),
		logging.Int("spaces", r.Extract.Spaces),
		logging.Int("missing_area", r.Extract.MissingArea),
		logging.Int("missing_volume", r.Extract.MissingVolume),
		logging.Int("skipped_boundaries", r.Boundaries.Skipped),
		logging.Latency(r.Duration),
	)
	return g, r
}

func (b *Builder) stage(name string, fn func()) {
	timer := logging.StartTimer(b.logger, "stage complete", logging.Stage(name))
	fn()
	elapsed := timer.EndWithLevel(logging.DebugLevel, "stage complete")
	if b.observer != nil {
		b.observer.ObserveStage(name, elapsed)
	}
}
