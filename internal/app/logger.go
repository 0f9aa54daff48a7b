package app

import (
	"fmt"
	"io"
	"log/slog"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// logLevels are the accepted Config.LogLevel names.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func parseLogLevel(name string) (slog.Level, error) {
	level, ok := logLevels[name]
	if !ok {
		return 0, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", name)
	}
	return level, nil
}

func validateLogFormat(format string) error {
	switch format {
	case LogFormatText, LogFormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log-format %q: must be '%s' or '%s'", format, LogFormatText, LogFormatJSON)
	}
}

// newLogger builds the run's logger from cfg. It does not set the global
// logger. An unknown level falls back to info, an unknown format to text.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
