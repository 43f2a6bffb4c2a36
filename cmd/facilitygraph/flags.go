package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rominabarouti/FacilityGraph/pkg/config"
)

const usageText = `Usage: facilitygraph [flags] <model.ifc>

Builds the space topology of an IFC model: spaces, their building and storey
parents, and space-to-space adjacency through shared boundary elements.
Outputs may be local paths or s3://bucket/key.

Flags:
`

// errUsage marks command line problems that exit with status 2.
var errUsage = errors.New("usage")

type cliFlags struct {
	configFile      string
	graphml         string
	json            string
	layout          string
	layoutAlgorithm string
	report          string
	metrics         string
	compress        bool
	isoPolicy       string
	neo4jURI        string
	neo4jUser       string
	neo4jPass       string
	neo4jDB         string
	logLevel        string
	logFormat       string
	input           string
	set             map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}

	fs := flag.NewFlagSet("facilitygraph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	fs.StringVar(&f.configFile, "config", "", "YAML configuration file")
	fs.StringVar(&f.graphml, "graphml", "", "GraphML output (default <input>.graphml when no output is given)")
	fs.StringVar(&f.json, "json", "", "Node-link JSON output")
	fs.StringVar(&f.layout, "layout", "", "Positioned layout JSON output")
	fs.StringVar(&f.layoutAlgorithm, "layout-algorithm", "", "Layout algorithm: spring, hierarchical or circular")
	fs.StringVar(&f.report, "report", "", "Model quality report JSON output")
	fs.StringVar(&f.metrics, "metrics", "", "Prometheus textfile output")
	fs.BoolVar(&f.compress, "compress", false, "Snappy-compress file outputs")
	fs.StringVar(&f.isoPolicy, "iso-policy", "", "Quantity selection policy: max, min or first")
	fs.StringVar(&f.neo4jURI, "neo4j-uri", "", "Neo4j URI, e.g. neo4j://localhost:7687")
	fs.StringVar(&f.neo4jUser, "neo4j-user", "", "Neo4j user")
	fs.StringVar(&f.neo4jPass, "neo4j-pass", "", "Neo4j password (default $NEO4J_PASSWORD)")
	fs.StringVar(&f.neo4jDB, "neo4j-db", "", "Neo4j database")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format: json or text")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	switch fs.NArg() {
	case 0:
	case 1:
		f.input = fs.Arg(0)
	default:
		fs.Usage()
		return nil, fmt.Errorf("%w: expected one model, got %d arguments", errUsage, fs.NArg())
	}

	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply overrides configuration values with the flags given explicitly.
func (f *cliFlags) apply(cfg *config.Config) {
	if f.input != "" {
		cfg.Input = f.input
	}
	overrides := map[string]func(){
		"graphml":          func() { cfg.Output.GraphML = f.graphml },
		"json":             func() { cfg.Output.JSON = f.json },
		"layout":           func() { cfg.Output.Layout = f.layout },
		"layout-algorithm": func() { cfg.Layout.Algorithm = f.layoutAlgorithm },
		"report":           func() { cfg.Output.Report = f.report },
		"metrics":          func() { cfg.Output.Metrics = f.metrics },
		"compress":         func() { cfg.Output.Compress = f.compress },
		"iso-policy":       func() { cfg.Quantities.Policy = f.isoPolicy },
		"neo4j-uri":        func() { cfg.Neo4j.URI = f.neo4jURI },
		"neo4j-user":       func() { cfg.Neo4j.User = f.neo4jUser },
		"neo4j-pass":       func() { cfg.Neo4j.Password = f.neo4jPass },
		"neo4j-db":         func() { cfg.Neo4j.Database = f.neo4jDB },
		"log-level":        func() { cfg.Log.Level = f.logLevel },
		"log-format":       func() { cfg.Log.Format = f.logFormat },
	}
	for name, set := range overrides {
		if f.set[name] {
			set()
		}
	}
}
