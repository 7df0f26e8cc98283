package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"nflprops/analyzer/internal/models"
)

// BetRepository handles qualifying-bet database operations
type BetRepository struct {
	db *Database
}

// CreateBet inserts a qualifying bet found by a scan
func (r *BetRepository) CreateBet(ctx context.Context, bet *models.Bet, scanID int64) error {
	if bet == nil {
		return fmt.Errorf("bet cannot be nil")
	}

	if err := validateBetData(bet); err != nil {
		return fmt.Errorf("bet validation failed: %w", err)
	}

	var reliabilityScore float64
	var reliabilityRating string
	if bet.Reliability != nil {
		reliabilityScore = bet.Reliability.Score
		reliabilityRating = bet.Reliability.Rating
	}

	query := `
		INSERT INTO best_bets (
			scan_id, player, prop_type, side, line, odds, bookmaker, position,
			weighted_avg, hit_rate, edge, edge_percent, confidence,
			reliability_score, reliability_rating,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15,
			$16
		)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		scanID, bet.Player, bet.PropType, string(bet.Side), bet.Line, bet.Odds, bet.Bookmaker, bet.Position,
		bet.Projection.WeightedAvg, bet.Projection.HitRate, bet.Projection.Edge, bet.Projection.EdgePercent, string(bet.Projection.Confidence),
		reliabilityScore, reliabilityRating,
		time.Now().UTC(),
	)
	if err != nil {
		log.Error().Err(err).Str("player", bet.Player).Str("prop_type", bet.PropType).Msg("Failed to insert bet")
		return fmt.Errorf("failed to create bet: %w", err)
	}

	log.Debug().
		Str("player", bet.Player).
		Str("prop_type", bet.PropType).
		Str("side", string(bet.Side)).
		Msg("Bet saved")
	return nil
}

// SaveScan records a scan run and its qualifying bets in one transaction
func (r *BetRepository) SaveScan(ctx context.Context, bets []models.Bet) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var scanID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO scans (bets_found, created_at) VALUES ($1, $2) RETURNING id`,
		len(bets), time.Now().UTC(),
	).Scan(&scanID)
	if err != nil {
		return 0, fmt.Errorf("failed to create scan record: %w", err)
	}

	for i := range bets {
		bet := &bets[i]
		var reliabilityScore float64
		var reliabilityRating string
		if bet.Reliability != nil {
			reliabilityScore = bet.Reliability.Score
			reliabilityRating = bet.Reliability.Rating
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO best_bets (
				scan_id, player, prop_type, side, line, odds, bookmaker, position,
				weighted_avg, hit_rate, edge, edge_percent, confidence,
				reliability_score, reliability_rating,
				created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8,
				$9, $10, $11, $12, $13,
				$14, $15,
				$16
			)`,
			scanID, bet.Player, bet.PropType, string(bet.Side), bet.Line, bet.Odds, bet.Bookmaker, bet.Position,
			bet.Projection.WeightedAvg, bet.Projection.HitRate, bet.Projection.Edge, bet.Projection.EdgePercent, string(bet.Projection.Confidence),
			reliabilityScore, reliabilityRating,
			time.Now().UTC(),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to save bet for %s: %w", bet.Player, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit scan: %w", err)
	}

	log.Info().Int64("scan_id", scanID).Int("bets", len(bets)).Msg("Scan saved")
	return scanID, nil
}

// GetLatestBets retrieves the qualifying bets from the most recent scan,
// ordered by absolute edge percent descending
func (r *BetRepository) GetLatestBets(ctx context.Context, limit int) ([]models.Bet, error) {
	query := `
		SELECT player, prop_type, side, line, odds, bookmaker, position,
			   weighted_avg, hit_rate, edge, edge_percent, confidence,
			   reliability_score, reliability_rating
		FROM best_bets
		WHERE scan_id = (SELECT MAX(id) FROM scans)
		ORDER BY ABS(edge_percent) DESC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest bets: %w", err)
	}
	defer rows.Close()

	var bets []models.Bet
	for rows.Next() {
		var bet models.Bet
		var side, confidence string
		var reliabilityScore float64
		var reliabilityRating string

		err := rows.Scan(
			&bet.Player, &bet.PropType, &side, &bet.Line, &bet.Odds, &bet.Bookmaker, &bet.Position,
			&bet.Projection.WeightedAvg, &bet.Projection.HitRate, &bet.Projection.Edge, &bet.Projection.EdgePercent, &confidence,
			&reliabilityScore, &reliabilityRating,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet row: %w", err)
		}

		bet.Side = models.Side(side)
		bet.Projection.Recommendation = models.Side(side)
		bet.Projection.Confidence = models.Confidence(confidence)
		bet.Reliability = &models.Reliability{
			Score:  reliabilityScore,
			Rating: reliabilityRating,
		}
		bets = append(bets, bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bet rows: %w", err)
	}

	return bets, nil
}

// GetBetsByPlayer retrieves a player's bet history across scans
func (r *BetRepository) GetBetsByPlayer(ctx context.Context, player string, limit int) ([]models.Bet, error) {
	query := `
		SELECT player, prop_type, side, line, odds, bookmaker, position,
			   weighted_avg, hit_rate, edge, edge_percent, confidence
		FROM best_bets
		WHERE LOWER(player) = LOWER($1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, player, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query player bets: %w", err)
	}
	defer rows.Close()

	var bets []models.Bet
	for rows.Next() {
		var bet models.Bet
		var side, confidence string

		err := rows.Scan(
			&bet.Player, &bet.PropType, &side, &bet.Line, &bet.Odds, &bet.Bookmaker, &bet.Position,
			&bet.Projection.WeightedAvg, &bet.Projection.HitRate, &bet.Projection.Edge, &bet.Projection.EdgePercent, &confidence,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet row: %w", err)
		}

		bet.Side = models.Side(side)
		bet.Projection.Recommendation = models.Side(side)
		bet.Projection.Confidence = models.Confidence(confidence)
		bets = append(bets, bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bet rows: %w", err)
	}

	return bets, nil
}

// DeleteScansBefore removes scans and their bets older than the cutoff
func (r *BetRepository) DeleteScansBefore(ctx context.Context, cutoff time.Time) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM best_bets WHERE scan_id IN (SELECT id FROM scans WHERE created_at < $1)`, cutoff,
	); err != nil {
		return fmt.Errorf("failed to delete old bets: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM scans WHERE created_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete old scans: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cleanup: %w", err)
	}

	log.Info().Int64("scans_deleted", result.RowsAffected()).Time("cutoff", cutoff).Msg("Old scans pruned")
	return nil
}

// validateBetData ensures bet data is valid before insertion
func validateBetData(bet *models.Bet) error {
	if bet.Player == "" {
		return fmt.Errorf("player is required")
	}
	if bet.PropType == "" {
		return fmt.Errorf("prop_type is required")
	}
	if bet.Side != models.SideOver && bet.Side != models.SideUnder {
		return fmt.Errorf("side must be OVER or UNDER, got %q", bet.Side)
	}
	if bet.Odds == 0 {
		return fmt.Errorf("odds cannot be zero")
	}
	return nil
}
