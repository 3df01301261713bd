// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Cinetrend HTTP server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL and run migrations when DATABASE_URL is set.
//  4. Connect to Redis when REDIS_URL is set.
//  5. Start the selection event publisher.
//  6. Build the audio backend, playback policy and sequencer.
//  7. Wire the movie catalogue to the chart and load the dataset.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/cinetrend/internal/api"
	"github.com/taibuivan/cinetrend/internal/audio"
	"github.com/taibuivan/cinetrend/internal/audio/ebitenaudio"
	"github.com/taibuivan/cinetrend/internal/core/chart"
	"github.com/taibuivan/cinetrend/internal/core/movie"
	"github.com/taibuivan/cinetrend/internal/platform/config"
	"github.com/taibuivan/cinetrend/internal/platform/constants"
	"github.com/taibuivan/cinetrend/internal/platform/eventbus"
	"github.com/taibuivan/cinetrend/internal/platform/migration"
	pgstore "github.com/taibuivan/cinetrend/internal/platform/postgres"
	redisstore "github.com/taibuivan/cinetrend/internal/platform/redis"
	"github.com/taibuivan/cinetrend/internal/playback"
	"github.com/taibuivan/cinetrend/internal/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "cinetrend"))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "cinetrend"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("dataset", cfg.MoviesCSVURL),
		slog.String("playback_mode", cfg.PlaybackMode),
		slog.String("audio_backend", cfg.AudioBackend),
	)

	// Root context for startup. A 30s deadline surfaces misconfiguration quickly.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lifetime context for background workers.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	health := api.HealthDependencies{}

	// ── 3. PostgreSQL (optional) ──────────────────────────────────────────
	var repository movie.Repository = movie.NewMemoryRepository()
	if cfg.UsesDatabase() {
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		repository = movie.NewPostgresRepository(pool)
		health.CheckDatabase = func() error {
			return pgstore.Ping(context.Background(), pool)
		}
	} else {
		log.Info("movie_store_in_memory")
	}

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	fetcher := movie.NewSchemeFetcher()
	if cfg.UsesCache() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		fetcher.Remote = movie.NewCachedFetcher(fetcher.Remote, rdb, cfg.CSVCacheTTL, log)
		health.CheckCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}

	// ── 5. Selection Events ───────────────────────────────────────────────
	publisher, err := eventbus.NewPublisher(eventbus.Config{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaSelectionTopic,
	}, log)
	must(log, err, "create event publisher")
	publisher.Start(appCtx)

	// ── 6. Playback ───────────────────────────────────────────────────────
	assets := audio.NewAssets(cfg.AudioAssetDir)
	var backend playback.Backend
	switch cfg.AudioBackend {
	case "ebiten":
		backend = ebitenaudio.NewBackend(assets, cfg.AudioSampleRate)
	default:
		backend = audio.NewSilentBackend(assets)
	}

	policyConfig := playback.DefaultPolicyConfig()
	if cfg.PlaybackPolicyPath != "" {
		policyConfig, err = playback.LoadPolicyConfig(cfg.PlaybackPolicyPath)
		must(log, err, "load playback policy")
	}
	policy, err := playback.NewPolicy(playback.Mode(cfg.PlaybackMode), policyConfig)
	must(log, err, "build playback policy")

	sequencer := playback.NewSequencer(backend, policy, playback.ClockScheduler{}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	metrics, err := chart.ParseMetrics(cfg.ChartMetrics)
	must(log, err, "parse chart metrics")

	movies := movie.NewService(movie.NewSource(fetcher, log), repository, cfg.MoviesCSVURL, log)
	charts := chart.NewService(chart.Options{Metrics: metrics, Mode: cfg.ChartMode}, sequencer, publisher, log)
	movies.AddListener(charts.Render)

	if _, err := movies.Refresh(startupCtx); err != nil {
		// The server still starts; the chart stays empty until a refresh succeeds.
		log.Warn("initial_refresh_failed", slog.Any("error", err))
	}

	health.CheckDataset = func() error {
		if len(movies.Records()) == 0 {
			return movie.ErrEmptyRefresh
		}
		return nil
	}

	if path := movie.LocalPath(cfg.MoviesCSVURL); path != "" && cfg.WatchCSV {
		watcher, err := movie.NewWatcher(path, movies, constants.WatchDebounce, log)
		if err != nil {
			log.Warn("movie_watch_unavailable", slog.Any("error", err))
		} else {
			defer func() { _ = watcher.Close() }()
			go watcher.Run(appCtx)
		}
	}

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Page:      web.Page(),
		Movies:    movie.NewHandler(movies),
		Chart:     chart.NewHandler(charts),
		Playback:  playback.NewHandler(sequencer),
	}

	server := api.NewServer(appCtx, cfg, log, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	exitCode := 0
	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		exitCode = 1
	}

	if err := sequencer.Close(); err != nil {
		log.Error("playback close error", slog.Any("error", err))
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()
	if err := publisher.Stop(stopCtx); err != nil {
		log.Error("event publisher stop error", slog.Any("error", err))
	}

	appCancel()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
