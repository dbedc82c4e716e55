// Package server wires the HMM gRPC service, its health checks and the
// Prometheus side server together and runs them until shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/SyedDaiam9101/hmm-service/internal/cache"
	"github.com/SyedDaiam9101/hmm-service/internal/config"
	"github.com/SyedDaiam9101/hmm-service/internal/handler"
	"github.com/SyedDaiam9101/hmm-service/internal/inference"
	"github.com/SyedDaiam9101/hmm-service/internal/metrics"
	"github.com/SyedDaiam9101/hmm-service/internal/middleware"
	"github.com/SyedDaiam9101/hmm-service/internal/rpc"
)

// ServiceName is reported by the health service and the tracer resource.
const ServiceName = "hmm-service"

// shutdownTimeout bounds the HTTP side server shutdown.
const shutdownTimeout = 10 * time.Second

// Server owns the gRPC server and the HTTP metrics/health server.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
}

// New builds a Server around engine. cacheClient may be nil.
func New(cfg *config.Config, logger *slog.Logger, engine inference.Engine, cacheClient *cache.Cache) *Server {
	healthServer := health.NewServer()

	// Build interceptor chain
	interceptors := []grpc.UnaryServerInterceptor{
		middleware.UnaryRequestIDInterceptor(),
		middleware.UnaryLoggingInterceptor(logger),
		middleware.UnaryMetricsInterceptor(),
	}

	// Add OpenTelemetry interceptor if enabled
	if cfg.OTELEnabled {
		interceptors = append(interceptors, otelgrpc.UnaryServerInterceptor())
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptors...),
	)

	h := handler.New(engine, cacheClient,
		handler.WithLogger(logger),
		handler.WithCacheTTL(cfg.CacheTTL),
	)
	rpc.RegisterHMMServer(grpcServer, h)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Enable server reflection for debugging
	reflection.Register(grpcServer)

	return &Server{
		cfg:        cfg,
		logger:     logger,
		grpcServer: grpcServer,
		health:     healthServer,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
			Handler:           NewHTTPHandler(healthServer),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run listens on the configured ports and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	go func() {
		s.logger.Info("HTTP server listening (metrics, health)", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	return s.Serve(ctx, lis)
}

// Serve serves gRPC on lis until ctx is cancelled, then drains: health
// flips to NOT_SERVING, the server waits ShutdownGrace for load balancers
// to notice, and in-flight calls finish before Serve returns.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.setServing(true)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
		errCh <- s.grpcServer.Serve(lis)
	}()

	select {
	case err := <-errCh:
		s.setServing(false)
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down gracefully")
	s.setServing(false)

	if s.cfg.ShutdownGrace > 0 {
		time.Sleep(s.cfg.ShutdownGrace)
	}

	s.grpcServer.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP server shutdown", "error", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}

func (s *Server) setServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
	s.health.SetServingStatus("", status) // Overall health
	if serving {
		metrics.SetHealthy()
	} else {
		metrics.SetUnhealthy()
	}
}

// NewHTTPHandler serves /metrics, /healthz and /readyz.
func NewHTTPHandler(healthServer *health.Server) http.Handler {
	mux := http.NewServeMux()

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", healthCheck(healthServer, "OK", "Service Unavailable"))

	// Readiness check (same as healthz for now)
	mux.HandleFunc("/readyz", healthCheck(healthServer, "Ready", "Not Ready"))

	return mux
}

func healthCheck(healthServer *health.Server, okBody, failBody string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := healthServer.Check(r.Context(), &healthpb.HealthCheckRequest{})
		if err != nil || resp.Status != healthpb.HealthCheckResponse_SERVING {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(failBody))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(okBody))
	}
}
