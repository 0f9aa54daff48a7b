package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/topicgraph/internal/app"
	"github.com/specialistvlad/topicgraph/internal/cycles"
	"github.com/specialistvlad/topicgraph/internal/sink"
)

// Exit codes.
const (
	ExitRuntime   = 1
	ExitUsage     = 2
	ExitThreshold = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// FromRunError maps an error returned by app.Run to an ExitError.
func FromRunError(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if errors.Is(err, app.ErrSeverityThreshold) {
		return &ExitError{Code: ExitThreshold, Message: err.Error()}
	}
	return &ExitError{Code: ExitRuntime, Message: err.Error()}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Values from --config are defaults; flags given on the command line win.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("topicgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
topicgraph - Topic relationship graph and structural anomaly detection.

Usage:
  topicgraph [options] INPUT
  topicgraph --mcp [options]

Arguments:
  INPUT
    A .hcl file or a directory of .hcl topic files, a saved topic_map.json,
    or a .pdf, .docx, .txt or .md document.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := app.DefaultConfig()
	configFlag := flagSet.String("config", "", "Path to a YAML config file. Flags override its values.")
	inputFlag := flagSet.String("input", "", "Path to the input file or directory.")
	iFlag := flagSet.String("i", "", "Path to the input file or directory (shorthand).")
	outputFlag := flagSet.String("output", defaults.OutputDir, "Directory for the generated reports.")
	formatFlag := flagSet.String("format", strings.Join(defaults.Formats, ","), "Comma-separated report formats: topicmap, csv, json.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	maxCyclesFlag := flagSet.Int("max-cycles", defaults.Cycles.MaxCycles, fmt.Sprintf("Stop cycle enumeration after this many reported cycles. 0 is unlimited only while --max-cycle-length is set; with both at 0 the default of %d applies.", cycles.DefaultMaxCycles))
	maxCycleLenFlag := flagSet.Int("max-cycle-length", defaults.Cycles.MaxLength, "Longest cycle, in topics, that is reported. 0 is unlimited.")
	concurrentFlag := flagSet.Bool("concurrent", defaults.Concurrent, "Run the anomaly detectors concurrently.")
	noResolveFlag := flagSet.Bool("no-resolve", false, "Do not attach resolution strategies to high and critical anomalies.")
	failOnFlag := flagSet.String("fail-on", "", "Exit with code 3 when an anomaly of at least this severity is found.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io server URL to publish the report to.")
	publishNSFlag := flagSet.String("publish-namespace", "/", "socket.io namespace.")
	publishEventFlag := flagSet.String("publish-event", sink.DefaultEvent, "Event the report is emitted on.")
	publishAckFlag := flagSet.String("publish-ack-event", "", "Event to wait for after publishing. Empty does not wait.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", sink.DefaultPublishTimeout, "Timeout for publishing the report.")
	publishInsecureFlag := flagSet.Bool("publish-insecure", false, "Skip TLS certificate verification when publishing.")
	mcpFlag := flagSet.Bool("mcp", false, "Serve the analysis tools over MCP on stdio instead of analysing INPUT.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg := defaults
	if *configFlag != "" {
		loaded, err := app.LoadFile(*configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		cfg = loaded
	}

	var formatErr error
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.OutputDir = *outputFlag
		case "format":
			cfg.Formats, formatErr = splitFormats(*formatFlag)
		case "healthcheck-port":
			cfg.HealthcheckPort = *healthPortFlag
		case "log-format":
			cfg.LogFormat = strings.ToLower(*logFormatFlag)
		case "log-level":
			cfg.LogLevel = strings.ToLower(*logLevelFlag)
		case "max-cycles":
			cfg.Cycles.MaxCycles = *maxCyclesFlag
		case "max-cycle-length":
			cfg.Cycles.MaxLength = *maxCycleLenFlag
		case "concurrent":
			cfg.Concurrent = *concurrentFlag
		case "no-resolve":
			cfg.Resolve = !*noResolveFlag
		case "fail-on":
			cfg.FailOn = strings.ToLower(*failOnFlag)
		case "publish-url":
			cfg.Publish.URL = *publishURLFlag
		case "publish-namespace":
			cfg.Publish.Namespace = *publishNSFlag
		case "publish-event":
			cfg.Publish.Event = *publishEventFlag
		case "publish-ack-event":
			cfg.Publish.AckEvent = *publishAckFlag
		case "publish-timeout":
			cfg.Publish.Timeout = *publishTimeoutFlag
		case "publish-insecure":
			cfg.Publish.InsecureSkipVerify = *publishInsecureFlag
		case "mcp":
			cfg.MCP = *mcpFlag
		}
	})
	if formatErr != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: formatErr.Error()}
	}

	switch {
	case *inputFlag != "":
		cfg.InputPath = *inputFlag
	case *iFlag != "":
		cfg.InputPath = *iFlag
	case flagSet.NArg() > 0:
		cfg.InputPath = flagSet.Arg(0)
	}
	slog.Debug("Input path determined.", "path", cfg.InputPath)

	if cfg.InputPath == "" && !cfg.MCP {
		slog.Debug("No input path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func splitFormats(raw string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(raw, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("invalid format %q: at least one format is required", raw)
	}
	return out, nil
}
