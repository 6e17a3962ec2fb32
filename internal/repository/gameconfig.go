package repository

import (
	"context"
	"errors"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/jackc/pgx/v5"
)

type gameConfigRepository struct{}

// NewGameConfigRepository creates a GameConfigRepository backed by Postgres.
// The table holds at most one row, keyed by a constant singleton ID.
func NewGameConfigRepository() GameConfigRepository {
	return &gameConfigRepository{}
}

func (r *gameConfigRepository) Get(ctx context.Context, db DBTX) (*domain.GameConfig, error) {
	var c domain.GameConfig
	err := db.QueryRow(ctx, `
		SELECT current_round, round_status, round_start_time, round_end_time,
			cash_weight, property_weight, token_weight, credit_weight
		FROM game_config WHERE id = 1`,
	).Scan(
		&c.CurrentRound, &c.RoundStatus, &c.RoundStartTime, &c.RoundEndTime,
		&c.CashWeight, &c.PropertyWeight, &c.TokenWeight, &c.CreditWeight,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gameConfigRepository) Replace(ctx context.Context, db DBTX, cfg domain.GameConfig) error {
	_, err := db.Exec(ctx, `
		INSERT INTO game_config (id, current_round, round_status, round_start_time,
			round_end_time, cash_weight, property_weight, token_weight, credit_weight)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			current_round = EXCLUDED.current_round,
			round_status = EXCLUDED.round_status,
			round_start_time = EXCLUDED.round_start_time,
			round_end_time = EXCLUDED.round_end_time,
			cash_weight = EXCLUDED.cash_weight,
			property_weight = EXCLUDED.property_weight,
			token_weight = EXCLUDED.token_weight,
			credit_weight = EXCLUDED.credit_weight`,
		cfg.CurrentRound, cfg.RoundStatus, cfg.RoundStartTime, cfg.RoundEndTime,
		cfg.CashWeight, cfg.PropertyWeight, cfg.TokenWeight, cfg.CreditWeight)
	return err
}
