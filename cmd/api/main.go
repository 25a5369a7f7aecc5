package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roombook/internal/api"
	"roombook/internal/config"
	"roombook/internal/domain"
	"roombook/internal/events"
	"roombook/internal/logging"
	"roombook/internal/metrics"
	"roombook/internal/repository"
	"roombook/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	st, err := initStore(cfg, logger)
	if err != nil {
		return err
	}

	roomCache := initRoomCache(cfg, logger)

	bus := events.NewEventBus()
	subscribeAuditLog(bus, logger)

	server := api.NewServer(cfg, st, roomCache, bus, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, logger)

	if cfg.Backup.Enabled {
		backup := store.NewBackupService(cfg.Storage.Dir, cfg.Backup, logger)
		go backup.Start(ctx)
	}

	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("port", cfg.Server.Port).Msg("API server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = server.Shutdown(shutdownCtx)

	logger.Info().Msg("API server stopped")
	return nil
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, &logger, closer, nil
}

func initStore(cfg *config.Config, logger *zerolog.Logger) (*store.Store, error) {
	st, err := store.New(cfg.Storage.Dir, logger)
	if err != nil {
		logger.Error().Err(err).Str("dir", cfg.Storage.Dir).Msg("init store")
		return nil, err
	}

	if cfg.Storage.RoomsSeed != "" {
		if err := st.SeedRooms(context.Background(), cfg.Storage.RoomsSeed); err != nil {
			logger.Error().Err(err).Str("path", cfg.Storage.RoomsSeed).Msg("seed rooms")
			return nil, err
		}
	}

	return st, nil
}

// initRoomCache wires the rooms read cache: Redis primary with in-memory
// failover when Redis is configured, plain in-memory otherwise. Returns nil
// when caching is disabled.
func initRoomCache(cfg *config.Config, logger *zerolog.Logger) domain.RoomCache {
	if !cfg.Cache.Enabled {
		return nil
	}

	memory := repository.NewMemoryRoomCache(cfg.Cache.TTL())
	if cfg.Redis.Address == "" {
		return memory
	}

	client := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(context.Background(), client); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, using in-memory room cache")
		return memory
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	primary := repository.NewRedisRoomCache(client, cfg.Cache.TTL())
	return repository.NewFailoverRoomCache(primary, memory, logger)
}

// subscribeAuditLog logs every booking lifecycle event.
func subscribeAuditLog(bus *events.EventBus, logger *zerolog.Logger) {
	audit := func(event *events.Event) error {
		logger.Info().
			Str("event", event.Type).
			RawJSON("payload", event.Payload).
			Msg("domain event")
		return nil
	}
	for _, eventType := range []string{
		events.EventUserRegistered,
		events.EventBookingCreated,
		events.EventBookingContactLinked,
		events.EventBookingCancelled,
	} {
		bus.Subscribe(eventType, audit)
	}
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
