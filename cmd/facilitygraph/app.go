package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/rominabarouti/FacilityGraph/pkg/artifact"
	"github.com/rominabarouti/FacilityGraph/pkg/config"
	"github.com/rominabarouti/FacilityGraph/pkg/export"
	"github.com/rominabarouti/FacilityGraph/pkg/health"
	"github.com/rominabarouti/FacilityGraph/pkg/ifc"
	"github.com/rominabarouti/FacilityGraph/pkg/logging"
	"github.com/rominabarouti/FacilityGraph/pkg/metrics"
	"github.com/rominabarouti/FacilityGraph/pkg/topology"
	"github.com/rominabarouti/FacilityGraph/pkg/visualization"
)

// Exit codes.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// graphSink receives the finished snapshot, e.g. a Neo4j database.
type graphSink interface {
	Export(ctx context.Context, snap topology.Snapshot) (int, error)
	Close(ctx context.Context) error
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	newUploader  func(ctx context.Context, cfg artifact.S3Config) (artifact.Uploader, error)
	newGraphSink func(ctx context.Context, cfg export.Neo4jConfig) (graphSink, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		getenv: os.Getenv,
		newUploader: func(ctx context.Context, cfg artifact.S3Config) (artifact.Uploader, error) {
			return artifact.NewS3Uploader(ctx, cfg)
		},
		newGraphSink: func(ctx context.Context, cfg export.Neo4jConfig) (graphSink, error) {
			return export.NewNeo4jExporter(ctx, cfg)
		},
	}
}

// outcome is one written output, for the summary.
type outcome struct {
	kind  string
	dest  string
	bytes int64
}

// run is the whole command; it returns the process exit code.
func (a *app) run(ctx context.Context, args []string) int {
	flags, err := parseFlags(args, a.stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(a.stderr, err)
		return exitUsage
	}

	cfg, err := a.loadConfig(flags)
	if err != nil {
		fmt.Fprintf(a.stderr, "invalid configuration: %v\n", err)
		return exitUsage
	}

	if _, err := os.Stat(cfg.Input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(a.stderr, "IFC file not found: %s\n", cfg.Input)
		} else {
			fmt.Fprintf(a.stderr, "cannot read IFC file %s: %v\n", cfg.Input, err)
		}
		return exitFatal
	}

	runID := uuid.NewString()
	logger := cfg.Logger(a.stderr).With(logging.RunID(runID))
	reg := metrics.NewRegistry()

	code := a.execute(ctx, cfg, runID, logger, reg)

	if cfg.Output.Metrics != "" {
		reg.UpdateRuntimeMetrics()
		if err := reg.WriteTextfile(cfg.Output.Metrics); err != nil {
			logger.Error("failed to write metrics", logging.Path(cfg.Output.Metrics), logging.Error(err))
			if code == exitOK {
				code = exitFatal
			}
		}
	}
	return code
}

func (a *app) loadConfig(flags *cliFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configFile != "" {
		loaded, err := config.LoadFile(flags.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	flags.apply(cfg)
	cfg.ApplyEnv(a.getenv)
	if cfg.Neo4j.Password == "" {
		cfg.Neo4j.Password = a.getenv("NEO4J_PASSWORD")
	}
	cfg.FillDefaultOutput()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *app) execute(ctx context.Context, cfg *config.Config, runID string, logger logging.Logger, reg *metrics.Registry) int {
	policy, err := cfg.Policy()
	if err != nil {
		logger.Error("invalid quantity policy", logging.Error(err))
		return exitUsage
	}

	timer := logging.StartTimer(logger, "load model", logging.Path(cfg.Input))
	model, err := ifc.Open(cfg.Input)
	if err != nil {
		timer.EndError(err)
		reg.RecordBuildFailure()
		return exitFatal
	}
	reg.RecordModelLoad(model.Len(), timer.End())

	graph, report := topology.NewBuilder(topology.Options{
		Classifier: cfg.Classifier(),
		Policy:     policy,
		Logger:     logger,
		Observer:   reg,
	}).Build(model)
	reg.RecordBuild(report)
	snap := graph.Export()

	checker := health.ModelChecks(report, snap)
	quality := checker.Run()
	for _, p := range checker.Problems(quality) {
		logger.Warn("model check not healthy",
			logging.String("check", p.Name),
			logging.String("status", string(p.Status)),
			logging.String("detail", p.Message))
	}

	outputs, err := a.writeOutputs(ctx, cfg, runID, snap, quality, logger, reg)
	if err != nil {
		logger.Error("export failed", logging.Error(err))
		return exitFatal
	}

	if err := renderSummary(a.stdout, cfg.Input, report, quality, outputs); err != nil {
		logger.Warn("failed to print summary", logging.Error(err))
	}
	return exitOK
}

func (a *app) writeOutputs(ctx context.Context, cfg *config.Config, runID string, snap topology.Snapshot, quality health.Response, logger logging.Logger, reg *metrics.Registry) ([]outcome, error) {
	var uploader artifact.Uploader
	if cfg.NeedsS3() {
		up, err := a.newUploader(ctx, artifact.S3Config{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		uploader = up
	}

	files := []struct {
		kind        string
		dest        string
		contentType string
		write       func(io.Writer) error
	}{
		{"graphml", cfg.Output.GraphML, "application/graphml+xml", func(w io.Writer) error {
			return export.WriteGraphML(w, snap)
		}},
		{"json", cfg.Output.JSON, "application/json", func(w io.Writer) error {
			return export.WriteNodeLink(w, snap, map[string]string{
				"source": cfg.Input,
				"run_id": runID,
				"policy": cfg.Quantities.Policy,
			})
		}},
		{"layout", cfg.Output.Layout, "application/json", func(w io.Writer) error {
			return writeLayout(w, snap, cfg.Layout)
		}},
		{"report", cfg.Output.Report, "application/json", func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(quality)
		}},
	}

	var outcomes []outcome
	for _, f := range files {
		if f.dest == "" {
			continue
		}
		opts := artifact.Options{Compress: cfg.Output.Compress, ContentType: f.contentType, Uploader: uploader}
		start := time.Now()
		n, err := writeArtifact(ctx, f.dest, opts, f.write)
		reg.RecordExport(f.kind, n, time.Since(start), err)
		if err != nil {
			return outcomes, fmt.Errorf("%s output: %w", f.kind, err)
		}
		logger.Info("output written", logging.Output(f.kind), logging.Path(f.dest), logging.Int("bytes", int(n)))
		outcomes = append(outcomes, outcome{kind: f.kind, dest: f.dest, bytes: n})
	}

	if cfg.Neo4j.URI != "" {
		start := time.Now()
		n, err := a.exportNeo4j(ctx, cfg.Neo4j, snap)
		reg.RecordExport("neo4j", 0, time.Since(start), err)
		if err != nil {
			return outcomes, err
		}
		logger.Info("output written", logging.Output("neo4j"), logging.Count(n), logging.Latency(time.Since(start)))
		outcomes = append(outcomes, outcome{kind: "neo4j", dest: cfg.Neo4j.URI})
	}
	return outcomes, nil
}

func (a *app) exportNeo4j(ctx context.Context, cfg config.Neo4j, snap topology.Snapshot) (int, error) {
	sink, err := a.newGraphSink(ctx, export.Neo4jConfig{
		URI:       cfg.URI,
		User:      cfg.User,
		Password:  cfg.Password,
		Database:  cfg.Database,
		BatchSize: cfg.BatchSize,
	})
	if err != nil {
		return 0, err
	}
	defer sink.Close(ctx)
	return sink.Export(ctx, snap)
}

// writeArtifact streams one output and returns the uncompressed size. A
// failed write never leaves a partial artifact behind.
func writeArtifact(ctx context.Context, dest string, opts artifact.Options, write func(io.Writer) error) (int64, error) {
	w, err := artifact.Create(ctx, dest, opts)
	if err != nil {
		return 0, err
	}
	if err := write(w); err != nil {
		w.Abort()
		return w.Written(), err
	}
	if err := w.Close(); err != nil {
		return w.Written(), err
	}
	return w.Written(), nil
}

func writeLayout(w io.Writer, snap topology.Snapshot, cfg config.Layout) error {
	lc := &visualization.LayoutConfig{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Iterations: cfg.Iterations,
		Seed:       cfg.Seed,
	}
	viz, err := visualization.Compute(snap, cfg.Algorithm, lc)
	if err != nil {
		return err
	}
	data, err := viz.ExportJSON(cfg.Algorithm, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
