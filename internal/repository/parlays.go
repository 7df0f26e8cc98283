package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"nflprops/analyzer/internal/models"
)

// ParlayRepository handles parlay-related database operations
type ParlayRepository struct {
	db *Database
}

// CreateParlay inserts a built parlay. Legs are stored as JSONB so the full
// breakdown survives without a join table.
func (r *ParlayRepository) CreateParlay(ctx context.Context, parlay *models.Parlay) (int64, error) {
	if parlay == nil {
		return 0, fmt.Errorf("parlay cannot be nil")
	}
	if len(parlay.Legs) == 0 {
		return 0, fmt.Errorf("parlay must have at least one leg")
	}

	legsJSON, err := json.Marshal(parlay.Legs)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal parlay legs: %w", err)
	}

	query := `
		INSERT INTO parlays (
			legs, num_legs, combined_odds, combined_probability,
			true_edge, avg_true_edge, avg_hit_rate, payout, profit,
			requested_risk, actual_risk, recommendation, reason,
			created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9,
			$10, $11, $12, $13,
			$14
		)
		RETURNING id
	`

	var id int64
	err = r.db.Pool.QueryRow(ctx, query,
		legsJSON, parlay.NumLegs, parlay.CombinedOdds, parlay.CombinedProbability,
		parlay.TrueEdge, parlay.AvgTrueEdge, parlay.AvgHitRate, parlay.Payout, parlay.Profit,
		string(parlay.RequestedRisk), string(parlay.ActualRisk), parlay.Recommendation, parlay.Reason,
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		log.Error().Err(err).Str("risk", string(parlay.RequestedRisk)).Msg("Failed to insert parlay")
		return 0, fmt.Errorf("failed to create parlay: %w", err)
	}

	log.Info().
		Int64("id", id).
		Int("legs", parlay.NumLegs).
		Int("combined_odds", parlay.CombinedOdds).
		Str("recommendation", parlay.Recommendation).
		Msg("Parlay saved")
	return id, nil
}

// GetLatestParlay retrieves the most recently built parlay for a risk level
func (r *ParlayRepository) GetLatestParlay(ctx context.Context, risk models.RiskLevel) (*models.Parlay, error) {
	query := `
		SELECT legs, num_legs, combined_odds, combined_probability,
			   true_edge, avg_true_edge, avg_hit_rate, payout, profit,
			   requested_risk, actual_risk, recommendation, reason
		FROM parlays
		WHERE requested_risk = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	parlay := &models.Parlay{}
	var legsJSON []byte
	var requestedRisk, actualRisk string

	err := r.db.Pool.QueryRow(ctx, query, string(risk)).Scan(
		&legsJSON, &parlay.NumLegs, &parlay.CombinedOdds, &parlay.CombinedProbability,
		&parlay.TrueEdge, &parlay.AvgTrueEdge, &parlay.AvgHitRate, &parlay.Payout, &parlay.Profit,
		&requestedRisk, &actualRisk, &parlay.Recommendation, &parlay.Reason,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parlay: %w", err)
	}

	if err := json.Unmarshal(legsJSON, &parlay.Legs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parlay legs: %w", err)
	}
	parlay.RequestedRisk = models.RiskLevel(requestedRisk)
	parlay.ActualRisk = models.RiskLevel(actualRisk)

	return parlay, nil
}

// DeleteParlaysBefore removes parlays older than the cutoff
func (r *ParlayRepository) DeleteParlaysBefore(ctx context.Context, cutoff time.Time) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM parlays WHERE created_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete old parlays: %w", err)
	}

	log.Info().Int64("rows_affected", result.RowsAffected()).Time("cutoff", cutoff).Msg("Old parlays pruned")
	return nil
}
