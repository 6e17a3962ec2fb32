package service

import (
	"context"
	"log/slog"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/infra"
	"github.com/campusopoly/platform/internal/ledger"
	"github.com/campusopoly/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoanService exposes loan issuance and repayment.
type LoanService struct {
	pool   *pgxpool.Pool
	engine *ledger.Engine
	loans  repository.LoanRepository
	logger *slog.Logger
}

// NewLoanService creates a LoanService.
func NewLoanService(pool *pgxpool.Pool, engine *ledger.Engine, loans repository.LoanRepository, logger *slog.Logger) *LoanService {
	return &LoanService{pool: pool, engine: engine, loans: loans, logger: logger}
}

// Issue disburses a loan to a team.
func (s *LoanService) Issue(ctx context.Context, p domain.IssueLoanParams) (*domain.LedgerResult, *domain.Loan, error) {
	var (
		res  *domain.LedgerResult
		loan *domain.Loan
	)
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, loan, err = s.engine.IssueLoan(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("loan issued", "loan_id", loan.ID, "team_id", p.TeamID, "amount", p.Amount)
	return res, loan, nil
}

// Repay settles a loan voluntarily.
func (s *LoanService) Repay(ctx context.Context, p domain.RepayLoanParams) (*domain.LedgerResult, error) {
	var res *domain.LedgerResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.RepayLoan(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("loan repaid", "loan_id", p.LoanID, "team_id", p.TeamID)
	return res, nil
}

// ForceRepay closes a loan administratively without touching the balance.
func (s *LoanService) ForceRepay(ctx context.Context, p domain.ForceRepayLoanParams) (*domain.LedgerResult, error) {
	var res *domain.LedgerResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.ForceRepayLoan(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("loan force closed", "loan_id", p.LoanID, "team_id", p.TeamID, "admin_id", p.AdminID)
	return res, nil
}

// ListByTeam returns a team's loan history.
func (s *LoanService) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Loan, error) {
	return s.loans.ListByTeam(ctx, s.pool, teamID)
}
