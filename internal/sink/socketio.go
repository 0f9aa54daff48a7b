package sink

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultPublishTimeout applies when PublisherConfig.Timeout is zero.
const DefaultPublishTimeout = 10 * time.Second

// DefaultEvent is the event name used when PublisherConfig.Event is empty.
const DefaultEvent = "topicgraph:report"

// PublisherConfig configures the socket.io publisher.
type PublisherConfig struct {
	URL       string `yaml:"url"`
	Namespace string `yaml:"namespace"`
	Event     string `yaml:"event"`
	// AckEvent, when set, makes Write wait until the server emits it.
	AckEvent           string        `yaml:"ack_event"`
	Timeout            time.Duration `yaml:"timeout"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
}

// Publisher emits the report to a socket.io server.
type Publisher struct {
	cfg PublisherConfig
}

// NewPublisher creates a publisher. Missing event, namespace and timeout
// values get their defaults.
func NewPublisher(cfg PublisherConfig) *Publisher {
	if cfg.Event == "" {
		cfg.Event = DefaultEvent
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPublishTimeout
	}
	return &Publisher{cfg: cfg}
}

// Name implements Sink.
func (p *Publisher) Name() string { return "socketio" }

// Write connects, emits the payload on the configured event and, when an ack
// event is configured, waits for it. The whole exchange is bounded by the
// configured timeout.
func (p *Publisher) Write(ctx context.Context, payload *Payload) error {
	cfg := p.cfg
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", cfg.URL, "event", cfg.Event)
	logger.Debug("Publisher started")
	defer logger.Debug("Publisher finished")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("failed to parse URL: %q has no scheme or host", cfg.URL)
	}
	data, err := payload.asMap()
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	var isConnected atomic.Bool
	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}
	opCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Connected, publishing report.", "namespace", cfg.Namespace, "sid", io.Id(), "anomalies", len(payload.Anomalies))
		io.Emit(cfg.Event, data)
		if cfg.AckEvent == "" {
			finish(nil)
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		finish(err)
	})

	if cfg.AckEvent != "" {
		io.On(types.EventName(cfg.AckEvent), func(...any) {
			logger.Debug("Report acknowledged", "ack_event", cfg.AckEvent)
			finish(nil)
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return fmt.Errorf("timed out after connecting while waiting for event '%s'", cfg.AckEvent)
		}
		return errors.New("timed out while waiting for initial connection")
	case err := <-done:
		return err
	}
}
