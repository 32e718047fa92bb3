// Package http provides the observability HTTP server: health endpoints and
// prometheus metrics for message processing.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"songlinkbot/internal/core"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	config  *core.ServerConfig
	logger  *zap.Logger
	server  *http.Server
	metrics *Metrics
}

// Metrics holds the prometheus collectors for message processing. Server
// implements core.MetricsRecorder on top of them.
type Metrics struct {
	MessagesTotal  *prometheus.CounterVec
	LookupsTotal   *prometheus.CounterVec
	RepliesTotal   *prometheus.CounterVec
	DeletesTotal   *prometheus.CounterVec
	LookupDuration prometheus.Histogram
	CacheSize      prometheus.Gauge
}

func newMetrics(registry *prometheus.Registry) *Metrics {
	metrics := &Metrics{
		MessagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "songlinkbot_messages_total",
				Help: "Total number of messages processed by outcome",
			},
			[]string{"status"},
		),
		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "songlinkbot_lookups_total",
				Help: "Total number of aggregation API lookups",
			},
			[]string{"platform", "status"},
		),
		RepliesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "songlinkbot_replies_total",
				Help: "Total number of replies sent",
			},
			[]string{"chat_kind"},
		),
		DeletesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "songlinkbot_deletes_total",
				Help: "Total number of original-message delete attempts",
			},
			[]string{"status"},
		),
		LookupDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "songlinkbot_lookup_duration_seconds",
				Help:    "Time spent on aggregation API lookups",
				Buckets: prometheus.DefBuckets,
			},
		),
		CacheSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "songlinkbot_cache_size",
				Help: "Current number of cached lookup results",
			},
		),
	}

	registry.MustRegister(
		metrics.MessagesTotal,
		metrics.LookupsTotal,
		metrics.RepliesTotal,
		metrics.DeletesTotal,
		metrics.LookupDuration,
		metrics.CacheSize,
	)

	return metrics
}

func setupRoutes(registry *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"songlinkbot"}`))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready","service":"songlinkbot"}`))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>SongLink Bot</title></head>
<body>
    <h1>🎵 SongLink Bot</h1>
    <p>Cross-platform music link bot for Telegram.</p>
    <ul>
        <li><a href="/metrics">Metrics</a> - Prometheus metrics</li>
        <li><a href="/healthz">Health</a> - Health check</li>
        <li><a href="/readyz">Ready</a> - Readiness check</li>
    </ul>
</body>
</html>`))
	})

	return mux
}

func createHTTPServer(config *core.ServerConfig, mux *http.ServeMux) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      mux,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
}

// NewServer creates the observability server with its own metrics registry.
func NewServer(config *core.ServerConfig, logger *zap.Logger) *Server {
	registry := prometheus.NewRegistry()
	metrics := newMetrics(registry)

	return &Server{
		config:  config,
		logger:  logger,
		server:  createHTTPServer(config, setupRoutes(registry)),
		metrics: metrics,
	}
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server",
		zap.String("addr", s.server.Addr))

	go func() {
		<-ctx.Done()
		s.logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Failed to shutdown HTTP server gracefully", zap.Error(err))
		}
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

func (s *Server) GetMetrics() *Metrics {
	return s.metrics
}

// RecordMessage implements core.MetricsRecorder.
func (s *Server) RecordMessage(status string) {
	s.metrics.MessagesTotal.WithLabelValues(status).Inc()
}

// RecordLookup implements core.MetricsRecorder.
func (s *Server) RecordLookup(platformID, status string, duration time.Duration) {
	s.metrics.LookupsTotal.WithLabelValues(platformID, status).Inc()
	s.metrics.LookupDuration.Observe(duration.Seconds())
}

// RecordReply implements core.MetricsRecorder.
func (s *Server) RecordReply(chatKind string) {
	s.metrics.RepliesTotal.WithLabelValues(chatKind).Inc()
}

// RecordDelete implements core.MetricsRecorder.
func (s *Server) RecordDelete(status string) {
	s.metrics.DeletesTotal.WithLabelValues(status).Inc()
}

// SetCacheSize updates the lookup cache size gauge.
func (s *Server) SetCacheSize(size int) {
	s.metrics.CacheSize.Set(float64(size))
}
