package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"phonecheck/internal/allowlist"
	"phonecheck/internal/audit"
	"phonecheck/internal/evidence/carrier"
	"phonecheck/internal/evidence/websearch"
	"phonecheck/internal/history"
	"phonecheck/internal/pipeline"
	"phonecheck/internal/pipeline/metrics"
	"phonecheck/internal/platform/config"
	"phonecheck/internal/platform/httpserver"
	"phonecheck/internal/platform/logger"
	platformredis "phonecheck/internal/platform/redis"
	"phonecheck/internal/ratelimit"
	httptransport "phonecheck/internal/transport/http"
)

const version = "1.0.0"

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(slog.LevelInfo)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	allowStore := allowlist.New(cfg.AllowlistPath, log)
	log.Info("allowlist loaded", "path", cfg.AllowlistPath, "entries", allowStore.Len())

	historyStore, closeHistory, historyHealth, err := openHistory(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeHistory()

	checks := map[string]httptransport.HealthCheck{"history": historyHealth}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	var limiter ratelimit.Limiter = ratelimit.NewInMemoryStore()
	if redisClient != nil {
		defer redisClient.Close()
		limiter = ratelimit.NewRedisStore(redisClient.Client)
		checks["redis"] = redisClient.Health
		log.Info("rate limiting backed by redis")
	}

	sinks := []audit.Sink{audit.NewMemoryStore()}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
		log.Info("audit events streaming to kafka", "topic", cfg.Kafka.Topic)
	}

	carrierAdapter := carrier.NewAdapter(carrier.NewHTTPClient(cfg.Carrier), cfg.Carrier.Timeout, log)
	searchAdapter := websearch.NewAdapter(websearch.NewHTTPClient(cfg.Search), cfg.Search.Timeout, log)

	svc, err := pipeline.New(pipeline.Params{
		Allowlist:     allowStore,
		Carrier:       carrierAdapter,
		Search:        searchAdapter,
		Limiter:       limiter,
		History:       historyStore,
		Audit:         audit.NewPublisher(sinks...),
		Metrics:       metrics.New(),
		Logger:        log,
		UserLimit:     cfg.RateLimit.UserLimit,
		Window:        cfg.RateLimit.Window,
		DefaultRegion: cfg.DefaultRegion,
	})
	if err != nil {
		return err
	}

	handler := httptransport.NewHandler(svc, log, version, checks)
	router := httptransport.NewRouter(handler, log, httptransport.RouterConfig{
		APIKey:   cfg.APIKey,
		Limiter:  limiter,
		IPLimit:  cfg.RateLimit.IPLimit,
		IPWindow: cfg.RateLimit.Window,
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting phonecheck", "addr", cfg.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openHistory selects the durable history backing: Postgres when a DSN is
// configured, otherwise the embedded SQLite store under the data directory.
func openHistory(ctx context.Context, cfg config.Config, log *slog.Logger) (history.Store, func(), httptransport.HealthCheck, error) {
	if cfg.History.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.History.PostgresDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		store := history.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		log.Info("history backed by postgres")
		return store, func() { db.Close() }, db.PingContext, nil
	}

	store, err := history.OpenSQLite(cfg.DataDir)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info("history backed by sqlite", "dir", cfg.DataDir)
	return store, func() { store.Close() }, store.Health, nil
}
