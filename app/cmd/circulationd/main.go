// Command circulationd serves the library circulation HTTP API.
//
// On start it applies the schema migrations, connects with the adapter selected by ADAPTER_TYPE
// and, when OTEL_EXPORTER_OTLP_ENDPOINT is set, exports traces and metrics over OTLP gRPC.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell/config"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell/httpapi"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell/observable"
	"github.com/bibliotecago/library-circulation-go/circulation/oteladapters"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine/migrations"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("circulationd stopped", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, logger *slog.Logger) error {
	if err := migrations.Up(cfg.DatabaseURL); err != nil {
		return err
	}
	logger.Info("schema migrations applied")

	storeOptions := []postgresengine.Option{postgresengine.WithLogger(logger)}
	wrapperOptions := []observable.Option{observable.WithLogging(logger)}

	if cfg.OTLPEndpoint != "" {
		providers, err := config.NewObservabilityProviders(ctx, cfg.OTLPEndpoint, version)
		if err != nil {
			return err
		}
		defer func() {
			if err := providers.Shutdown(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("telemetry shutdown failed", "error", err.Error())
			}
		}()

		metrics := oteladapters.NewMetricsCollector(otel.Meter(config.ServiceName))
		tracing := oteladapters.NewTracingCollector(otel.Tracer(config.ServiceName))
		contextual := oteladapters.NewSlogBridgeLogger(config.ServiceName)

		storeOptions = append(storeOptions,
			postgresengine.WithMetrics(metrics),
			postgresengine.WithTracing(tracing),
			postgresengine.WithContextualLogger(contextual),
		)
		wrapperOptions = append(wrapperOptions,
			observable.WithMetrics(metrics),
			observable.WithTracing(tracing),
			observable.WithContextualLogging(contextual),
		)

		logger.Info("telemetry export enabled", "endpoint", cfg.OTLPEndpoint)
	}

	store, closeStore, err := openStore(ctx, cfg, storeOptions)
	if err != nil {
		return err
	}
	defer closeStore()

	retryOptions := []shell.RetryOption{
		shell.WithMaxAttempts(cfg.RetryMaxAttempts),
		shell.WithBaseDelay(cfg.RetryBaseDelay),
	}

	handlers, err := buildHandlers(store, retryOptions, wrapperOptions)
	if err != nil {
		return err
	}

	serverOptions := []httpapi.Option{httpapi.WithLogger(logger)}

	if cfg.DatabaseReplicaURL != "" {
		serverOptions = append(serverOptions, httpapi.WithReplicaReads())
	}

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = redisClient.Close() }()

		limiter := httpapi.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, logger)
		serverOptions = append(serverOptions, httpapi.WithRateLimiter(limiter))

		logger.Info("write rate limit enabled", "redis", cfg.RedisAddr, "per_minute", cfg.RateLimitPerMinute)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewServer(handlers, store, serverOptions...).Router(),
		ReadHeaderTimeout: cfg.ShutdownTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "adapter", cfg.AdapterType)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
