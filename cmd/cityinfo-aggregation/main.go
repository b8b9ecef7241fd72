package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpapi "github.com/i474232898/cityinfo-aggregation/internal/api/http"
	"github.com/i474232898/cityinfo-aggregation/internal/cityinfo"
	"github.com/i474232898/cityinfo-aggregation/internal/cityinfo/providers"
	"github.com/i474232898/cityinfo-aggregation/internal/config"
	"github.com/i474232898/cityinfo-aggregation/internal/logger"
	"github.com/i474232898/cityinfo-aggregation/internal/scheduler"
	"github.com/i474232898/cityinfo-aggregation/internal/store"
)

const serviceName = "cityinfo-aggregation"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	log.Logger = logger.New(serviceName, cfg.LogLevel)

	// Upstream city/weather API with retries and circuit breakers.
	provider := providers.NewUpstreamProvider(providers.UpstreamConfig{
		BaseURL:     cfg.APIBaseURL,
		APIKey:      cfg.APIKey,
		CityPath:    cfg.CityPath,
		WeatherPath: cfg.WeatherPath,
		HealthPath:  cfg.HealthPath,
		Timeout:     cfg.HTTPTimeout,
		Backoff: providers.BackoffConfig{
			MaxRetries:      cfg.MaxRetries,
			InitialInterval: cfg.RetryInitial,
			MaxInterval:     cfg.RetryMax,
		},
	})

	// Recipes live in memory for the lifetime of the process.
	recipes := store.NewMemoryStore()

	service := cityinfo.NewService(recipes, provider)

	sched := scheduler.New(cfg.ProbeInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, httpapi.Options{
		CORSOrigins:  cfg.CORSOrigins,
		WriteTimeout: cfg.HTTPTimeout * 3,
		Upstream:     sched,
	})

	addr := cfg.ListenAddr()
	go func() {
		log.Info().Str("addr", addr).Str("upstream", cfg.APIBaseURL).Msg("server listening")
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("fiber server stopped")
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("shutdown complete")
}
