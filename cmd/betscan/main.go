// Command betscan runs a single bet scan and prints the qualifying bets and
// an optimal parlay. Results are saved to the database when one is reachable.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"nflprops/analyzer/internal/analysis"
	"nflprops/analyzer/internal/cache"
	"nflprops/analyzer/internal/client"
	"nflprops/analyzer/internal/config"
	"nflprops/analyzer/internal/models"
	"nflprops/analyzer/internal/repository"
	"nflprops/analyzer/internal/roster"
	"nflprops/analyzer/internal/scheduler"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx := context.Background()
	cfg := config.MustLoad()

	oddsClient := client.NewOddsClient(
		cfg.OddsAPIBaseURL,
		cfg.OddsAPIKey,
		cfg.Sport,
		cfg.Bookmakers,
		cfg.OddsAPITimeout,
	)
	statsClient := client.NewStatsClient(
		cfg.StatsAPIBaseURL,
		cfg.StatsAPIKey,
		cfg.StatsAPITimeout,
	)

	// Database is optional for a one-shot scan
	var db *repository.Database
	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Database unavailable, results will not be saved")
		db = nil
	} else {
		defer db.Close()
	}

	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(cache.Config{
		Host:     cfg.RedisHost,
		Port:     strconv.Itoa(cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	cachedStats := cache.NewCachedStats(statsClient, redisCache, time.Duration(cfg.CacheTTLStats)*time.Second)

	rosterData := roster.Default()
	if cfg.RosterPath != "" {
		loaded, err := roster.LoadFile(cfg.RosterPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.RosterPath).Msg("Failed to load roster file")
		}
		rosterData = loaded
	}
	rosterRef := roster.NewStatic(rosterData)

	scanner := scheduler.NewScanner(cfg, oddsClient, cachedStats, statsClient, rosterRef, db)

	if err := scanner.RefreshRankings(ctx); err != nil {
		log.Warn().Err(err).Msg("Rankings refresh failed, adjustments will be neutral")
	}

	bets, err := scanner.RunScan(ctx, "manual")
	if err != nil {
		log.Fatal().Err(err).Msg("Scan failed")
	}

	if len(bets) == 0 {
		fmt.Println("No qualifying bets found.")
		return
	}

	printBets(bets)

	risk := models.RiskLevel(cfg.RiskLevel)
	parlay, err := scanner.BuildParlay(ctx, bets, cfg.ParlayLegs, risk)
	if err != nil {
		var insufficient *analysis.InsufficientLegsError
		if errors.As(err, &insufficient) {
			fmt.Printf("\nNo %s parlay: found %d qualifying legs, need %d. %s.\n",
				insufficient.Risk, insufficient.Found, insufficient.Needed, insufficient.Suggestion)
			return
		}
		log.Fatal().Err(err).Msg("Parlay build failed")
	}

	printParlay(parlay)
}

func printBets(bets []models.Bet) {
	fmt.Printf("Found %d qualifying bets:\n\n", len(bets))
	fmt.Printf("%-4s %-22s %-26s %-6s %8s %7s %8s %7s %-10s\n",
		"#", "PLAYER", "PROP", "SIDE", "LINE", "ODDS", "EDGE%", "REL", "RATING")

	for i, bet := range bets {
		var relScore float64
		var relRating string
		if bet.Reliability != nil {
			relScore = bet.Reliability.Score
			relRating = bet.Reliability.Rating
		}
		fmt.Printf("%-4d %-22s %-26s %-6s %8.1f %+7d %7.1f%% %7.1f %-10s\n",
			i+1, bet.Player, bet.PropType, bet.Side,
			bet.Line, bet.Odds, bet.Projection.EdgePercent, relScore, relRating)
	}
}

func printParlay(parlay *models.Parlay) {
	fmt.Printf("\n%d-leg parlay (%s risk", parlay.NumLegs, parlay.RequestedRisk)
	if parlay.ActualRisk != parlay.RequestedRisk {
		fmt.Printf(", plays like %s", parlay.ActualRisk)
	}
	fmt.Println("):")

	for i, leg := range parlay.Legs {
		fmt.Printf("  %d. %s %s %s %.1f (%+d) true edge %.1f%%\n",
			i+1, leg.Player, leg.PropType, leg.Side, leg.Line, leg.Odds, leg.TrueEdge)
	}

	fmt.Printf("\nCombined odds:  %+d (%.2fx)\n", parlay.CombinedOdds, parlay.CombinedDecimal)
	fmt.Printf("Win probability: %.1f%%\n", parlay.CombinedProbability)
	fmt.Printf("True edge:       %.1f%%\n", parlay.TrueEdge)
	fmt.Printf("$100 pays:       $%.0f (profit $%.0f)\n", parlay.Payout, parlay.Profit)
	fmt.Printf("Verdict:         %s (%s)\n", parlay.Recommendation, parlay.Reason)

	for _, warning := range parlay.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
}
