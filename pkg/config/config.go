// Package config loads facilitygraph run settings from YAML and the
// command line.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rominabarouti/FacilityGraph/pkg/logging"
	"github.com/rominabarouti/FacilityGraph/pkg/topology"
	"github.com/rominabarouti/FacilityGraph/pkg/validation"
)

// Layout algorithms understood by the layout output.
const (
	LayoutSpring       = "spring"
	LayoutHierarchical = "hierarchical"
	LayoutCircular     = "circular"
)

// Config is the complete run configuration.
type Config struct {
	Input          string         `yaml:"input"`
	Output         Output         `yaml:"output"`
	Classification Classification `yaml:"classification"`
	Quantities     Quantities     `yaml:"quantities"`
	Layout         Layout         `yaml:"layout"`
	Neo4j          Neo4j          `yaml:"neo4j"`
	S3             S3             `yaml:"s3"`
	Log            Log            `yaml:"log"`
}

// Output lists the artifacts to produce. Each may be a local path or an
// s3://bucket/key location.
type Output struct {
	GraphML  string `yaml:"graphml" validate:"omitempty,artifact"`
	JSON     string `yaml:"json" validate:"omitempty,artifact"`
	Layout   string `yaml:"layout" validate:"omitempty,artifact"`
	Report   string `yaml:"report" validate:"omitempty,artifact"`
	Metrics  string `yaml:"metrics" validate:"omitempty,artifact,startsnotwith=s3://"`
	Compress bool   `yaml:"compress"`
}

// files returns the destinations written through the artifact layer.
func (o Output) files() []string {
	return []string{o.GraphML, o.JSON, o.Layout, o.Report}
}

// Classification configures ISO code extraction and corridor detection.
type Classification struct {
	AllowedISO       []string `yaml:"allowed_iso" validate:"omitempty,dive,isocode"`
	DefaultISO       string   `yaml:"default_iso" validate:"omitempty,isocode"`
	CorridorKeywords []string `yaml:"corridor_keywords"`
}

// Quantities selects among competing area and volume candidates.
type Quantities struct {
	Policy string `yaml:"policy" validate:"omitempty,oneof=max min first"`
}

// Layout configures the positioned graph output.
type Layout struct {
	Algorithm  string  `yaml:"algorithm" validate:"omitempty,oneof=spring hierarchical circular"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Iterations int     `yaml:"iterations" validate:"omitempty,min=1,max=10000"`
	Seed       int64   `yaml:"seed"`
}

// Neo4j configures the optional graph database sink.
type Neo4j struct {
	URI       string `yaml:"uri" validate:"omitempty,url"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Database  string `yaml:"database" validate:"omitempty,dbident"`
	BatchSize int    `yaml:"batch_size"`
}

// S3 configures the object store client used for s3:// outputs.
type S3 struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
}

// maxBatchSize bounds the rows sent in one Neo4j statement.
const maxBatchSize = 10000

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Classification: Classification{
			AllowedISO:       slices.Clone(topology.DefaultAllowedISO),
			DefaultISO:       topology.DefaultISO,
			CorridorKeywords: slices.Clone(topology.DefaultCorridorKeywords),
		},
		Quantities: Quantities{Policy: string(topology.PolicyMax)},
		Layout: Layout{
			Algorithm:  LayoutSpring,
			Width:      1200,
			Height:     900,
			Iterations: 80,
			Seed:       1,
		},
		Neo4j: Neo4j{BatchSize: 500},
		Log:   Log{Level: "info", Format: string(logging.FormatJSON)},
	}
}

// LoadFile reads a YAML file over the defaults. Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv lets LOG_LEVEL and LOG_FORMAT override the log section.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
}

// Validate checks field formats first, then the rules that span fields.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	cv := validation.NewConfigValidator("config")
	cv.Required("input", c.Input)
	cv.Distinct("classification.allowed_iso", c.Classification.AllowedISO)
	cv.When(len(c.Classification.AllowedISO) > 0 && c.Classification.DefaultISO != "", func(cv *validation.ConfigValidator) {
		cv.OneOf("classification.default_iso", c.Classification.DefaultISO, c.Classification.AllowedISO)
	})
	cv.When(c.Output.Layout != "", func(cv *validation.ConfigValidator) {
		cv.PositiveFloat("layout.width", c.Layout.Width).
			PositiveFloat("layout.height", c.Layout.Height).
			Positive("layout.iterations", c.Layout.Iterations)
	})
	cv.When(c.Neo4j.URI != "", func(cv *validation.ConfigValidator) {
		cv.Required("neo4j.user", c.Neo4j.User).
			RangeInt("neo4j.batch_size", c.Neo4j.BatchSize, 1, maxBatchSize)
	})
	cv.When(c.Output.Compress, func(cv *validation.ConfigValidator) {
		cv.Custom("output.compress", func() error {
			for _, dest := range c.Output.files() {
				if dest != "" {
					return nil
				}
			}
			return errors.New("compression requested without a file output")
		})
	})
	return cv.Validate()
}

// Policy returns the parsed quantity policy.
func (c *Config) Policy() (topology.QuantityPolicy, error) {
	return topology.ParseQuantityPolicy(c.Quantities.Policy)
}

// Classifier builds the space classifier from the classification section.
func (c *Config) Classifier() *topology.Classifier {
	return topology.NewClassifier(c.Classification.AllowedISO, c.Classification.DefaultISO, c.Classification.CorridorKeywords)
}

// Logger builds a logger writing to w.
func (c *Config) Logger(w io.Writer) logging.Logger {
	return logging.New(w, logging.ParseLevel(c.Log.Level), logging.ParseFormat(c.Log.Format))
}

// NeedsS3 reports whether any output is an object store location.
func (c *Config) NeedsS3() bool {
	for _, dest := range c.Output.files() {
		if strings.HasPrefix(dest, "s3://") {
			return true
		}
	}
	return false
}

// FillDefaultOutput sets the GraphML output to "<input>.graphml" when no
// graph output of any kind was requested. A quality report alone does not
// count.
func (c *Config) FillDefaultOutput() {
	if c.Output.GraphML != "" || c.Output.JSON != "" || c.Output.Layout != "" || c.Neo4j.URI != "" {
		return
	}
	base := c.Input
	if ext := strings.LastIndexByte(base, '.'); ext > strings.LastIndexAny(base, `/\`) {
		base = base[:ext]
	}
	c.Output.GraphML = base + ".graphml"
	if c.Output.Compress {
		c.Output.GraphML += ".sz"
	}
}
