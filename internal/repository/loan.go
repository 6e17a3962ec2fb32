package repository

import (
	"context"
	"errors"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const loanColumns = `id, event_id, team_id, admin_id, amount, issue_time, status`

type loanRepository struct{}

// NewLoanRepository creates a LoanRepository backed by Postgres.
func NewLoanRepository() LoanRepository {
	return &loanRepository{}
}

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var l domain.Loan
	err := row.Scan(&l.ID, &l.EventID, &l.TeamID, &l.AdminID, &l.Amount, &l.IssueTime, &l.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loanRepository) Insert(ctx context.Context, db DBTX, loan *domain.Loan) error {
	return db.QueryRow(ctx, `
		INSERT INTO loans (id, event_id, team_id, admin_id, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING issue_time`,
		loan.ID, loan.EventID, loan.TeamID, loan.AdminID, loan.Amount, loan.Status,
	).Scan(&loan.IssueTime)
}

func (r *loanRepository) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Loan, error) {
	row := db.QueryRow(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE id = $1`, id)
	return scanLoan(row)
}

func (r *loanRepository) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Loan, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE id = $1 FOR UPDATE`, id)
	return scanLoan(row)
}

func (r *loanRepository) MarkRepaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE loans SET status = $2 WHERE id = $1`, id, domain.LoanRepaid)
	return err
}

func (r *loanRepository) ListByTeam(ctx context.Context, db DBTX, teamID uuid.UUID) ([]domain.Loan, error) {
	rows, err := db.Query(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE team_id = $1 ORDER BY issue_time DESC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.EventID, &l.TeamID, &l.AdminID, &l.Amount, &l.IssueTime, &l.Status); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
