package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/slipbox"
	httpAdapter "github.com/aretw0/slipbox/pkg/adapters/http"
	"github.com/aretw0/slipbox/pkg/config"
	"github.com/aretw0/slipbox/pkg/domain"
	"github.com/aretw0/slipbox/pkg/observability"
)

// ShutdownTimeout bounds the graceful stop of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// NewServeHandler builds the box and its HTTP handler. When cfg enables
// metrics, a fresh registry is mounted at /metrics.
func NewServeHandler(ctx context.Context, cfg config.Config, logger *slog.Logger) (http.Handler, *slipbox.Box, error) {
	var (
		metrics *observability.Metrics
		reg     *prometheus.Registry
		opts    = []httpAdapter.Option{httpAdapter.WithLogger(logger)}
	)
	if cfg.HTTP.Metrics {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = observability.NewMetrics(reg)
		opts = append(opts, httpAdapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	var hooks []domain.LifecycleHooks
	if metrics != nil {
		hooks = append(hooks, metrics.Hooks())
	}
	box, err := NewBox(cfg, logger, hooks...)
	if err != nil {
		return nil, nil, err
	}

	if metrics != nil {
		go watchMetrics(ctx, box, metrics)
	}

	handler, err := httpAdapter.NewHandler(box, opts...)
	if err != nil {
		box.Close()
		return nil, nil, err
	}
	return handler, box, nil
}

// watchMetrics keeps the gauges in line with every published snapshot,
// restarts included.
func watchMetrics(ctx context.Context, box *slipbox.Box, m *observability.Metrics) {
	updates, cancel := box.Subscribe(1)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			m.Observe(snap)
		}
	}
}

// Serve runs the HTTP renderer bridge until ctx is cancelled.
func Serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	handler, box, err := NewServeHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer box.Close()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Requests inherit ctx so open SSE streams end with it.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("slipbox server listening", "addr", srv.Addr, "metrics", cfg.HTTP.Metrics)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutdown started")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("slipbox server stopped gracefully")
		return nil
	}
}
