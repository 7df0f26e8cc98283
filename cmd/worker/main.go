package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"nflprops/analyzer/internal/analysis"
	"nflprops/analyzer/internal/cache"
	"nflprops/analyzer/internal/client"
	"nflprops/analyzer/internal/config"
	"nflprops/analyzer/internal/metrics"
	"nflprops/analyzer/internal/models"
	"nflprops/analyzer/internal/repository"
	"nflprops/analyzer/internal/roster"
	"nflprops/analyzer/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logger
	setupLogger()

	log.Info().Msg("Starting NFL Prop Analysis Worker")

	// Load configuration
	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Str("sport", cfg.Sport).
		Msg("Configuration loaded")

	// Create context that listens for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	// Initialize API clients
	oddsClient := client.NewOddsClient(
		cfg.OddsAPIBaseURL,
		cfg.OddsAPIKey,
		cfg.Sport,
		cfg.Bookmakers,
		cfg.OddsAPITimeout,
	)
	log.Info().Msg("Odds API client initialized")

	statsClient := client.NewStatsClient(
		cfg.StatsAPIBaseURL,
		cfg.StatsAPIKey,
		cfg.StatsAPITimeout,
	)
	log.Info().Msg("Stats API client initialized")

	// Initialize database connection
	dbConfig := repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	}

	db, err := repository.NewDatabase(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connection established")

	// Initialize Redis client
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(cache.Config{
		Host:     cfg.RedisHost,
		Port:     strconv.Itoa(cfg.RedisPort),
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

	// Read-through cache over the stats provider
	statsTTL := time.Duration(cfg.CacheTTLStats) * time.Second
	cachedStats := cache.NewCachedStats(statsClient, redisCache, statsTTL)

	// Load roster reference data
	rosterData := roster.Default()
	if cfg.RosterPath != "" {
		loaded, err := roster.LoadFile(cfg.RosterPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.RosterPath).Msg("Failed to load roster file")
		}
		rosterData = loaded
		log.Info().Str("path", cfg.RosterPath).Msg("Roster data loaded from file")
	}
	rosterRef := roster.NewStatic(rosterData)

	// Start metrics HTTP server
	if cfg.EnableMetrics {
		go startMetricsServer(strconv.Itoa(cfg.MetricsPort), db)
	}

	// Update system uptime metric
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.SystemUptime.Set(time.Since(startTime).Seconds())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Create scanner and scheduler
	scanner := scheduler.NewScanner(cfg, oddsClient, cachedStats, statsClient, rosterRef, db)

	// Seed defense rankings; a failure degrades adjustments to neutral
	if err := scanner.RefreshRankings(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial rankings refresh failed, adjustments will be neutral")
	}

	sched := scheduler.NewScheduler(cfg, scanner)

	if cfg.EnableScheduler {
		log.Info().Msg("Starting scheduler...")
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	// Run initial scan if enabled
	if cfg.InitialScanEnabled {
		log.Info().Msg("Running initial bet scan...")
		bets, err := scanner.RunScan(ctx, "initial")
		if err != nil {
			log.Error().Err(err).Msg("Initial scan failed, continuing anyway...")
		} else {
			log.Info().Int("bets", len(bets)).Msg("Initial scan completed successfully")

			if len(bets) > 0 {
				risk := models.RiskLevel(cfg.RiskLevel)
				parlay, err := scanner.BuildParlay(ctx, bets, cfg.ParlayLegs, risk)
				if err != nil {
					var insufficient *analysis.InsufficientLegsError
					if errors.As(err, &insufficient) {
						log.Warn().
							Int("found", insufficient.Found).
							Int("needed", insufficient.Needed).
							Str("suggestion", insufficient.Suggestion).
							Msg("Not enough qualifying legs for parlay")
					} else {
						log.Error().Err(err).Msg("Initial parlay build failed")
					}
				} else {
					log.Info().
						Int("combined_odds", parlay.CombinedOdds).
						Float64("true_edge", parlay.TrueEdge).
						Str("recommendation", parlay.Recommendation).
						Msg("Initial parlay built")
				}
			}
		}
	}

	// Keep running until context is cancelled
	<-ctx.Done()

	// Graceful shutdown
	log.Info().Msg("Shutting down scheduler...")
	sched.Stop()

	log.Info().Msg("Worker shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	// Pretty console logging in development
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	// Set log level
	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port string, db *repository.Database) {
	http.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"degraded"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
