// Package service owns transaction boundaries: each method runs one ledger
// command (or query) inside the atomic mutation primitive and translates the
// result for the transport layer.
package service

import (
	"context"
	"log/slog"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/infra"
	"github.com/campusopoly/platform/internal/ledger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BankService exposes the admin-facing bank operations: credits, debits,
// super-admin overrides, pass-Go salary and team defaults.
type BankService struct {
	pool   *pgxpool.Pool
	engine *ledger.Engine
	logger *slog.Logger
}

// NewBankService creates a BankService.
func NewBankService(pool *pgxpool.Pool, engine *ledger.Engine, logger *slog.Logger) *BankService {
	return &BankService{pool: pool, engine: engine, logger: logger}
}

// Credit grants funds to a team.
func (s *BankService) Credit(ctx context.Context, p domain.CreditDebitParams) (*domain.LedgerResult, error) {
	var res *domain.LedgerResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.Credit(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("credit posted", "team_id", p.TeamID, "amount", p.Amount)
	return res, nil
}

// Debit withdraws funds from a team.
func (s *BankService) Debit(ctx context.Context, p domain.CreditDebitParams) (*domain.LedgerResult, error) {
	var res *domain.LedgerResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.Debit(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("debit posted", "team_id", p.TeamID, "amount", p.Amount)
	return res, nil
}

// AdjustBalance applies a super-admin balance override.
func (s *BankService) AdjustBalance(ctx context.Context, p domain.AdjustBalanceParams) (*domain.LedgerResult, error) {
	var res *domain.LedgerResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.AdjustBalance(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("balance override posted",
		"team_id", p.TeamID, "amount", p.Amount, "direction", p.Direction, "admin_id", p.AdminID)
	return res, nil
}

// AdjustCreditScore applies a super-admin credit-score override.
func (s *BankService) AdjustCreditScore(ctx context.Context, p domain.AdjustCreditScoreParams) (*domain.LedgerResult, error) {
	var res *domain.LedgerResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.AdjustCreditScore(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("credit score override posted", "team_id", p.TeamID, "delta", p.Amount)
	return res, nil
}

// CreateTeam provisions a team with the event's opening balance.
func (s *BankService) CreateTeam(ctx context.Context, p domain.CreateTeamParams) (*domain.LedgerResult, error) {
	var res *domain.LedgerResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.CreateTeam(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("team created", "team_id", res.Team.ID, "name", p.Name)
	return res, nil
}

// PassGo credits the fixed lap salary.
func (s *BankService) PassGo(ctx context.Context, p domain.PassGoParams) (*domain.LedgerResult, error) {
	var res *domain.LedgerResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.ExecutePassGo(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// TeamDefault processes a bankruptcy in a single commit.
func (s *BankService) TeamDefault(ctx context.Context, p domain.TeamDefaultParams) (*domain.TeamDefaultResult, error) {
	var res *domain.TeamDefaultResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.ExecuteTeamDefault(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("team default processed",
		"team_id", p.TeamID, "seized", res.SeizedCount, "tokens_minted", len(res.MintedTokenIDs))
	return res, nil
}
