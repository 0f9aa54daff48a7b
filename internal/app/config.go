package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/specialistvlad/topicgraph/internal/cycles"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/sink"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatTopicMap = "topicmap"
)

// Output file names inside Config.OutputDir.
const (
	TopicMapFile   = "topic_map.json"
	CSVReportFile  = "ambiguity_report.csv"
	JSONReportFile = "anomalies.json"
)

// Formats lists every output format in the order the files are written.
var Formats = []string{FormatTopicMap, FormatCSV, FormatJSON}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath string   `yaml:"input"` // hcl file/dir, topic map json, or document
	OutputDir string   `yaml:"output_dir"`
	Formats   []string `yaml:"formats"`

	LogFormat       string `yaml:"log_format"`
	LogLevel        string `yaml:"log_level"`
	HealthcheckPort int    `yaml:"healthcheck_port"`

	Cycles     cycles.Limits `yaml:"cycles"`
	Concurrent bool          `yaml:"concurrent"`
	Resolve    bool          `yaml:"resolve"`
	// FailOn makes the run fail when an anomaly of at least this severity is
	// found. Empty disables the check.
	FailOn string `yaml:"fail_on"`

	Publish sink.PublisherConfig `yaml:"publish"`
	MCP     bool                 `yaml:"mcp"`
}

// DefaultConfig returns the configuration used when neither a config file nor
// flags override a value.
func DefaultConfig() Config {
	return Config{
		OutputDir:  "output",
		Formats:    slices.Clone(Formats),
		LogFormat:  LogFormatText,
		LogLevel:   "info",
		Cycles:     cycles.DefaultLimits,
		Concurrent: true,
		Resolve:    true,
	}
}

// LoadFile reads a YAML config file on top of DefaultConfig. Unknown keys are
// rejected.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" && !cfg.MCP {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OutputDir cannot be empty")
	}
	for _, f := range cfg.Formats {
		if !slices.Contains(Formats, f) {
			return nil, fmt.Errorf("unknown output format %q: must be one of %s", f, strings.Join(Formats, ", "))
		}
	}
	if err := validateLogFormat(cfg.LogFormat); err != nil {
		return nil, err
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.Cycles.MaxLength < 0 || cfg.Cycles.MaxCycles < 0 {
		return nil, errors.New("cycle limits cannot be negative")
	}
	if cfg.FailOn != "" {
		if _, err := model.ParseSeverity(cfg.FailOn); err != nil {
			return nil, fmt.Errorf("invalid fail-on: %w", err)
		}
	}
	if cfg.Publish.Timeout < 0 {
		return nil, errors.New("publish timeout cannot be negative")
	}

	cfg.Formats = slices.Clone(cfg.Formats)
	return &cfg, nil
}

// wants reports whether format is enabled.
func (c *Config) wants(format string) bool {
	return slices.Contains(c.Formats, format)
}
