package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/carelift/dispatch/api/rides"
	"github.com/carelift/dispatch/config"
	"github.com/carelift/dispatch/core/matching"
	"github.com/carelift/dispatch/core/matching/logging"
	coremetrics "github.com/carelift/dispatch/core/metrics"
	coremqtt "github.com/carelift/dispatch/core/mqtt"
	"github.com/carelift/dispatch/infra/logger"
	"github.com/carelift/dispatch/infra/metrics"
	"github.com/carelift/dispatch/infra/mqtt"
	"github.com/carelift/dispatch/internal/eventbus"
)

// Service wires the match manager, the rides API and the observability
// sinks together.
type Service struct {
	Manager *matching.MatchManager

	srv         *http.Server
	log         logger.Logger
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var publisher coremqtt.OfferClient
	if cfg.Offers.Enabled {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		publisher = client
	}

	bus := eventbus.New()
	ackTimeout := time.Duration(cfg.Offers.AckTimeoutSeconds) * time.Second
	manager, err := matching.NewMatchManager(matching.NewScorer(), sink, bus, publisher, ackTimeout, logg)
	if err != nil {
		return nil, fmt.Errorf("match manager: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/rides/match", rides.NewMatchHandler(manager))
	if cfg.MatchLog.Enabled {
		store, err := newLogStore(cfg.MatchLog)
		if err != nil {
			return nil, fmt.Errorf("match log store: %w", err)
		}
		manager.SetLogStore(store)
		mux.Handle("/api/rides/matchlog", rides.NewLogHandler(store, cfg.HTTP.LogToken))
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &Service{
		Manager:     manager,
		srv:         &http.Server{Addr: cfg.HTTP.Addr, Handler: mux},
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

func newLogStore(cfg config.MatchLogConfig) (logging.LogStore, error) {
	if cfg.Backend == "rotating" {
		return logging.NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	}
	return logging.NewJSONLStore(cfg.Path)
}

// Run starts the HTTP servers and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("rides API listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error { return s.Manager.Close() }
