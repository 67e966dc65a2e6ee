package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Options configures the listeners
type Options struct {
	Address         string
	MetricsAddress  string // пусто, если метрики отключены
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Server runs the API listener and, optionally, the metrics listener
type Server struct {
	logger  *slog.Logger
	api     *http.Server
	metrics *http.Server
	timeout time.Duration
}

// New creates a server for handler. gatherer is exposed on /metrics when
// opts.MetricsAddress is set.
func New(logger *slog.Logger, handler http.Handler, gatherer prometheus.Gatherer, opts Options) *Server {
	s := &Server{
		logger: logger,
		api: &http.Server{
			Addr:              opts.Address,
			Handler:           handler,
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
		timeout: opts.ShutdownTimeout,
	}

	if opts.MetricsAddress != "" && gatherer != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
		s.metrics = &http.Server{
			Addr:              opts.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return s
}

// Run serves until ctx is cancelled or a listener fails, then shuts both
// listeners down within the shutdown timeout
func (s *Server) Run(ctx context.Context) error {
	apiLn, err := net.Listen("tcp", s.api.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.api.Addr, err)
	}

	var metricsLn net.Listener
	if s.metrics != nil {
		metricsLn, err = net.Listen("tcp", s.metrics.Addr)
		if err != nil {
			_ = apiLn.Close()
			return fmt.Errorf("failed to listen on %s: %w", s.metrics.Addr, err)
		}
	}

	return s.serve(ctx, apiLn, metricsLn)
}

func (s *Server) serve(ctx context.Context, apiLn, metricsLn net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("API server listening", slog.String("address", apiLn.Addr().String()))
		if err := s.api.Serve(apiLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})

	if metricsLn != nil {
		g.Go(func() error {
			s.logger.Info("metrics server listening", slog.String("address", metricsLn.Addr().String()))
			if err := s.metrics.Serve(metricsLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		err := s.api.Shutdown(shutdownCtx)
		if s.metrics != nil {
			err = errors.Join(err, s.metrics.Shutdown(shutdownCtx))
		}
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
