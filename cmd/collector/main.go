package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/briduffy3/si201-final-sports-analysts/internal/cache"
	"github.com/briduffy3/si201-final-sports-analysts/internal/client"
	"github.com/briduffy3/si201-final-sports-analysts/internal/config"
	"github.com/briduffy3/si201-final-sports-analysts/internal/ingest"
	"github.com/briduffy3/si201-final-sports-analysts/internal/repository"
	"github.com/briduffy3/si201-final-sports-analysts/internal/runner"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting sunset stats collector")

	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("database", cfg.DatabasePath).
		Int("total_runs", cfg.TotalRuns).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	db, err := repository.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()
	log.Info().Str("path", cfg.DatabasePath).Msg("Database opened")

	var redisCache *cache.RedisCache
	if cfg.RedisEnabled() {
		redisCache, err = cache.NewRedisCache(cache.Config{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
			redisCache = nil
		} else {
			defer redisCache.Close()
			log.Info().Msg("Redis cache connected")
		}
	}

	if cfg.EnableMetrics {
		go startMetricsServer(cfg.MetricsPort)
	}

	statsClient := client.NewStatsClient(cfg.StatsBaseURL, cfg.StatsAPIKey, cfg.StatsTimeout)
	sunClient := client.NewSunClient(cfg.SunBaseURL, cfg.SunCallDelay, cfg.SunTimeout)

	run := runner.New(
		db,
		ingest.NewStatsIngestor(statsClient, db, cfg.PlayerIDs, cfg.Seasons, cfg.PageSize, cfg.StatCap),
		ingest.NewGameBackfiller(statsClient, db, redisCache, cfg.BackfillCap),
		ingest.NewSunIngestor(sunClient, db, redisCache, cfg.SunBatchSize, cfg.SunCap),
		cfg.ArenaSeedPath,
		cfg.TotalRuns,
		cfg.RunInterval,
	)

	if cfg.Daemon {
		runDaemon(ctx, cfg, run)
		return
	}

	summary, err := run.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Collection aborted")
	}
	log.Info().
		Int("stats_inserted", summary.StatsInserted).
		Int("games_backfilled", summary.GamesBackfilled).
		Int("duplicates_skipped", summary.DuplicatesSkipped).
		Int("errors", len(summary.Errors)).
		Msg("Collector finished")
}

// runDaemon schedules full collection cycles on a cron expression and blocks
// until the context is cancelled.
func runDaemon(ctx context.Context, cfg *config.Config, run *runner.Runner) {
	c := cron.New()
	_, err := c.AddFunc(cfg.CollectionCron, func() {
		summary, err := run.Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Scheduled collection failed")
			return
		}
		log.Info().Str("summary", summary.Summary()).Msg("Scheduled collection finished")
	})
	if err != nil {
		log.Fatal().Err(err).Str("cron", cfg.CollectionCron).Msg("Invalid collection schedule")
	}

	c.Start()
	log.Info().Str("cron", cfg.CollectionCron).Msg("Collector running in daemon mode")

	<-ctx.Done()

	log.Info().Msg("Stopping scheduler...")
	<-c.Stop().Done()
	log.Info().Msg("Collector shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
