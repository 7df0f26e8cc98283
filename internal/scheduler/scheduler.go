package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"nflprops/analyzer/internal/analysis"
	"nflprops/analyzer/internal/client"
	"nflprops/analyzer/internal/config"
	"nflprops/analyzer/internal/metrics"
	"nflprops/analyzer/internal/models"
	"nflprops/analyzer/internal/repository"
)

// scanMarkets is the full set of prop markets requested per event
var scanMarkets = []string{
	"player_pass_yds",
	"player_pass_tds",
	"player_pass_completions",
	"player_rush_yds",
	"player_rush_attempts",
	"player_reception_yds",
	"player_receptions",
}

// DefenseProvider supplies season defensive totals for ranking.
type DefenseProvider interface {
	TeamDefenses(ctx context.Context) ([]analysis.TeamDefense, error)
}

// Scanner runs one full bet scan: fetch events, index prop markets, select
// qualifying bets, persist. The database is optional; a nil database makes
// persistence a no-op.
type Scanner struct {
	cfg     *config.Config
	odds    *client.OddsClient
	stats   analysis.StatsProvider
	defense DefenseProvider
	roster  analysis.Roster
	db      *repository.Database

	mu       sync.RWMutex
	rankings analysis.DefenseRankings
}

// NewScanner creates a scanner instance
func NewScanner(cfg *config.Config, odds *client.OddsClient, stats analysis.StatsProvider, defense DefenseProvider, r analysis.Roster, db *repository.Database) *Scanner {
	return &Scanner{
		cfg:     cfg,
		odds:    odds,
		stats:   stats,
		defense: defense,
		roster:  r,
		db:      db,
	}
}

// RefreshRankings rebuilds the defense rankings from current season totals
func (s *Scanner) RefreshRankings(ctx context.Context) error {
	defenses, err := s.defense.TeamDefenses(ctx)
	if err != nil {
		metrics.RecordError("scanner", "rankings_refresh_failed")
		return fmt.Errorf("failed to fetch team defenses: %w", err)
	}

	rankings := analysis.RankDefenses(defenses)

	s.mu.Lock()
	s.rankings = rankings
	s.mu.Unlock()

	log.Info().Int("teams", rankings.Teams()).Msg("Defense rankings refreshed")
	return nil
}

// Rankings returns the current defense rankings
func (s *Scanner) Rankings() analysis.DefenseRankings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rankings
}

// RunScan fetches prop markets for upcoming events and selects qualifying
// bets. trigger labels the scan source in metrics ("ticker", "initial",
// "manual").
func (s *Scanner) RunScan(ctx context.Context, trigger string) ([]models.Bet, error) {
	start := time.Now()

	events, err := s.odds.FetchEvents(ctx)
	if err != nil {
		metrics.RecordScan(trigger, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	if len(events) == 0 {
		log.Info().Msg("No upcoming events, nothing to scan")
		metrics.RecordScan(trigger, "success", time.Since(start).Seconds())
		return nil, nil
	}

	if len(events) > s.cfg.MaxEventsScan {
		events = events[:s.cfg.MaxEventsScan]
	}

	// Fetch event odds in parallel
	markets := strings.Join(scanMarkets, ",")
	eventOdds := make([]*client.EventOdds, len(events))
	var wg sync.WaitGroup
	for i, event := range events {
		wg.Add(1)
		go func(i int, eventID string) {
			defer wg.Done()
			odds, err := s.odds.FetchEventOdds(ctx, eventID, markets)
			if err != nil {
				log.Error().Err(err).Str("event_id", eventID).Msg("Failed to fetch event odds")
				metrics.RecordError("scanner", "event_odds_failed")
				return
			}
			eventOdds[i] = odds
		}(i, event.ID)
	}
	wg.Wait()

	var fetched []client.EventOdds
	for _, odds := range eventOdds {
		if odds != nil {
			fetched = append(fetched, *odds)
		}
	}

	if len(fetched) == 0 {
		metrics.RecordScan(trigger, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("no event odds could be fetched for %d events", len(events))
	}

	book := client.NewMarketBook(fetched)

	if s.Rankings().Teams() == 0 {
		log.Debug().Msg("No defense rankings loaded, matchup adjustments are neutral")
		metrics.RecordNeutralAdjustment("defense_rankings")
	}

	var candidates []analysis.Candidate
	for _, player := range book.Players() {
		candidates = append(candidates, analysis.Candidate{
			Name:  player,
			Props: book.Props(player),
		})
	}

	log.Info().
		Int("events", len(fetched)).
		Int("candidates", len(candidates)).
		Msg("Prop markets indexed, selecting bets")

	selector := analysis.NewSelector(s.stats, book, s.roster, s.cfg.StatsNumGames)
	bets, err := selector.SelectBets(ctx, candidates, s.cfg.MinEdge)
	if err != nil {
		metrics.RecordScan(trigger, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("bet selection failed: %w", err)
	}

	metrics.UpdateBetsFound(len(bets))

	// Persistence is best effort; a failed save never fails the scan
	if s.db != nil && len(bets) > 0 {
		if _, err := s.db.Bets.SaveScan(ctx, bets); err != nil {
			log.Error().Err(err).Msg("Failed to persist scan results")
			metrics.RecordError("scanner", "persist_failed")
		}
	}

	metrics.RecordScan(trigger, "success", time.Since(start).Seconds())
	log.Info().
		Int("bets", len(bets)).
		Dur("duration", time.Since(start)).
		Msg("Scan complete")

	return bets, nil
}

// BuildParlay builds a parlay from scan results and records the outcome.
// Persistence is best effort, matching RunScan.
func (s *Scanner) BuildParlay(ctx context.Context, bets []models.Bet, numLegs int, risk models.RiskLevel) (*models.Parlay, error) {
	parlay, err := analysis.BuildParlay(bets, numLegs, risk, s.roster)
	if err != nil {
		metrics.RecordParlay(string(risk), "error")
		return nil, err
	}
	metrics.RecordParlay(string(risk), "success")

	if s.db != nil {
		if _, err := s.db.Parlays.CreateParlay(ctx, parlay); err != nil {
			log.Error().Err(err).Msg("Failed to persist parlay")
			metrics.RecordError("scanner", "persist_failed")
		}
	}

	return parlay, nil
}

// Scheduler manages background tasks: a nightly defense-rankings refresh
// and ticker-driven bet scans.
type Scheduler struct {
	cfg      *config.Config
	scanner  *Scanner
	cron     *cron.Cron
	ticker   *time.Ticker
	stopChan chan struct{}
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, scanner *Scanner) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		scanner:  scanner,
		cron:     cron.New(),
		stopChan: make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	// Setup nightly rankings refresh cron job
	if _, err := s.cron.AddFunc(s.cfg.RankingsRefreshCron, func() {
		log.Info().Msg("Running nightly rankings refresh...")
		if err := s.scanner.RefreshRankings(ctx); err != nil {
			log.Error().Err(err).Msg("Nightly rankings refresh failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule rankings refresh: %w", err)
	}

	// Start cron scheduler
	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.RankingsRefreshCron).
		Msg("Rankings refresh scheduled")

	// Start periodic scan ticker
	s.ticker = time.NewTicker(s.cfg.ScanInterval)
	log.Info().
		Dur("interval", s.cfg.ScanInterval).
		Msg("Periodic bet scanning started")

	// Start scanning goroutine
	go s.pollScans(ctx)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		s.cron.Stop()
	}

	if s.ticker != nil {
		s.ticker.Stop()
	}

	close(s.stopChan)
	log.Info().Msg("Scheduler stopped")
}

// pollScans runs a bet scan on every tick until stopped
func (s *Scheduler) pollScans(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Context cancelled, stopping bet scanning")
			return
		case <-s.stopChan:
			log.Info().Msg("Stop signal received, stopping bet scanning")
			return
		case <-s.ticker.C:
			if _, err := s.scanner.RunScan(ctx, "ticker"); err != nil {
				log.Error().Err(err).Msg("Scheduled scan failed")
			}
		}
	}
}
