package service

import (
	"context"
	"log/slog"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/infra"
	"github.com/campusopoly/platform/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GameConfigService manages the game configuration singleton.
type GameConfigService struct {
	pool   *pgxpool.Pool
	config repository.GameConfigRepository
	outbox repository.OutboxRepository
	logger *slog.Logger
}

// NewGameConfigService creates a GameConfigService.
func NewGameConfigService(pool *pgxpool.Pool, config repository.GameConfigRepository, outbox repository.OutboxRepository, logger *slog.Logger) *GameConfigService {
	return &GameConfigService{pool: pool, config: config, outbox: outbox, logger: logger}
}

// Get returns the current configuration, falling back to the defaults when
// no administrative update has ever been written.
func (s *GameConfigService) Get(ctx context.Context) (domain.GameConfig, error) {
	cfg, err := s.config.Get(ctx, s.pool)
	if err != nil {
		return domain.GameConfig{}, err
	}
	if cfg == nil {
		return domain.DefaultGameConfig(), nil
	}
	return *cfg, nil
}

// Replace validates and overwrites the configuration wholesale.
func (s *GameConfigService) Replace(ctx context.Context, cfg domain.GameConfig) (domain.GameConfig, error) {
	if err := cfg.Validate(); err != nil {
		return domain.GameConfig{}, err
	}

	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.config.Replace(ctx, tx, cfg); err != nil {
			return err
		}
		return s.outbox.Insert(ctx, tx, domain.NewGameConfigUpdatedEvent(cfg))
	})
	if err != nil {
		return domain.GameConfig{}, err
	}

	s.logger.Info("game config replaced",
		"round", cfg.CurrentRound, "status", cfg.RoundStatus)
	return cfg, nil
}
