package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SyedDaiam9101/hmm-service/internal/cache"
	"github.com/SyedDaiam9101/hmm-service/internal/config"
	"github.com/SyedDaiam9101/hmm-service/internal/handler"
	"github.com/SyedDaiam9101/hmm-service/internal/inference"
	"github.com/SyedDaiam9101/hmm-service/internal/logging"
	"github.com/SyedDaiam9101/hmm-service/internal/server"
)

const defaultShutdownWait = 5 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve decoding and likelihood over gRPC",
		Long: "Start the hmm.v1.HMM gRPC service with health checks, Prometheus metrics\n" +
			"and an optional Redis cache of decoded paths.\n\n" +
			"Flags override HMM_SERVICE_* environment variables, which override the config file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			opts.Logger().Debug("configuration loaded", "config_file", configFile, "log_level", cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "path to config file (optional)")
	cmd.Flags().Int("port", 50051, "gRPC server port")
	cmd.Flags().Int("metrics-port", 9100, "Prometheus metrics and health port")
	cmd.Flags().String("redis", "", "Redis address for the decode cache (disabled when empty)")
	cmd.Flags().Duration("cache-ttl", handler.DefaultCacheTTL, "lifetime of cached decodings")
	cmd.Flags().Bool("otel", false, "enable OpenTelemetry tracing")
	cmd.Flags().Bool("mock", false, "use the mock inference engine (for testing)")
	cmd.Flags().Duration("shutdown-wait", defaultShutdownWait, "time to report NOT_SERVING before draining")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(level)

	logger.Info("starting "+server.ServiceName,
		"port", cfg.Port,
		"metrics_port", cfg.MetricsPort,
		"redis", cfg.Redis,
		"otel", cfg.OTELEnabled,
	)

	// Initialize OpenTelemetry tracer
	if cfg.OTELEnabled {
		shutdown, err := server.InitTracer(logger, os.Stdout, cfg.OTELEndpoint)
		if err != nil {
			logger.Warn("failed to initialize tracer", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("tracer shutdown", "error", err)
				}
			}()
			logger.Info("OpenTelemetry tracing enabled", "endpoint", cfg.OTELEndpoint)
		}
	}

	var engine inference.Engine
	if cfg.UseMockInference {
		logger.Info("using mock inference engine")
		engine = inference.NewMock()
	} else {
		engine, err = inference.NewWeather()
		if err != nil {
			return fmt.Errorf("failed to build weather model: %w", err)
		}
	}
	defer engine.Close()

	// Redis is optional; a failed connection degrades to no caching.
	var cacheClient *cache.Cache
	if cfg.Redis != "" {
		cacheClient, err = cache.New(cfg.Redis)
		if err != nil {
			logger.Warn("failed to connect to Redis, continuing without cache", "addr", cfg.Redis, "error", err)
			cacheClient = nil
		} else {
			defer cacheClient.Close()
			logger.Info("Redis connected", "addr", cfg.Redis)
		}
	}

	return server.New(cfg, logger, engine, cacheClient).Run(ctx)
}
