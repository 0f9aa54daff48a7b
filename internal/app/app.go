package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/topicgraph/internal/config"
	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/metrics"
	"github.com/specialistvlad/topicgraph/internal/resolve"
	"github.com/specialistvlad/topicgraph/internal/sink"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	ctx      context.Context
	config   *Config
	registry *prometheus.Registry
	metrics  *metrics.Recorder

	loader    config.Loader
	resolver  resolve.Resolver
	publisher sink.Sink

	httpServer *http.Server
}

// Option customizes an App.
type Option func(*App)

// WithLoader overrides the loader selected from the input path.
func WithLoader(l config.Loader) Option {
	return func(a *App) { a.loader = l }
}

// WithResolver overrides the resolution playbook.
func WithResolver(r resolve.Resolver) Option {
	return func(a *App) { a.resolver = r }
}

// WithPublisher overrides the socket.io publisher built from Config.Publish.
func WithPublisher(s sink.Sink) Option {
	return func(a *App) { a.publisher = s }
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and metrics
// registry.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg, outW)
	logger.Debug("Logger configured successfully.")

	reg := prometheus.NewRegistry()
	app := &App{
		outW:     outW,
		ctx:      ctxlog.WithLogger(context.Background(), logger),
		config:   cfg,
		registry: reg,
		metrics:  metrics.New(reg),
	}
	if cfg.Resolve {
		app.resolver = resolve.Playbook{}
	}
	if cfg.Publish.URL != "" {
		app.publisher = sink.NewPublisher(cfg.Publish)
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Logger returns the application's logger.
func (app *App) Logger() *slog.Logger {
	return ctxlog.FromContext(app.ctx)
}

// Registry returns the application's metrics registry. This is primarily for testing.
func (app *App) Registry() *prometheus.Registry {
	return app.registry
}
