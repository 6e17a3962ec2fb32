package repository

import (
	"context"
	"errors"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const teamColumns = `id, event_id, name, balance, credit_score, status,
	has_active_loan, active_loan_id, cohort_id, is_eliminated, created_at, updated_at`

type teamRepository struct{}

// NewTeamRepository creates a TeamRepository backed by Postgres.
func NewTeamRepository() TeamRepository {
	return &teamRepository{}
}

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var t domain.Team
	err := row.Scan(
		&t.ID, &t.EventID, &t.Name, &t.Balance, &t.CreditScore, &t.Status,
		&t.HasActiveLoan, &t.ActiveLoanID, &t.CohortID, &t.IsEliminated,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Team, error) {
	row := db.QueryRow(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	return scanTeam(row)
}

func (r *teamRepository) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Team, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = $1 FOR UPDATE`, id)
	return scanTeam(row)
}

func (r *teamRepository) Create(ctx context.Context, db DBTX, team *domain.Team) error {
	return db.QueryRow(ctx, `
		INSERT INTO teams (id, event_id, name, balance, credit_score, status,
			has_active_loan, active_loan_id, cohort_id, is_eliminated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		team.ID, team.EventID, team.Name, team.Balance, team.CreditScore, team.Status,
		team.HasActiveLoan, team.ActiveLoanID, team.CohortID, team.IsEliminated,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
}

func (r *teamRepository) UpdateBalances(ctx context.Context, tx pgx.Tx, teamID uuid.UUID, balanceDelta, scoreDelta int64) (*domain.Team, error) {
	row := tx.QueryRow(ctx, `
		UPDATE teams
		SET balance = balance + $2,
		    credit_score = credit_score + $3,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+teamColumns,
		teamID, balanceDelta, scoreDelta)
	return scanTeam(row)
}

func (r *teamRepository) SetLoanState(ctx context.Context, tx pgx.Tx, teamID uuid.UUID, hasActiveLoan bool, activeLoanID *uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		UPDATE teams
		SET has_active_loan = $2, active_loan_id = $3, updated_at = now()
		WHERE id = $1`,
		teamID, hasActiveLoan, activeLoanID)
	return err
}

func (r *teamRepository) SetCohort(ctx context.Context, tx pgx.Tx, teamID uuid.UUID, cohortID *string) error {
	_, err := tx.Exec(ctx, `
		UPDATE teams
		SET cohort_id = $2, updated_at = now()
		WHERE id = $1`,
		teamID, cohortID)
	return err
}

func (r *teamRepository) MarkDefaulted(ctx context.Context, tx pgx.Tx, teamID uuid.UUID) (*domain.Team, error) {
	row := tx.QueryRow(ctx, `
		UPDATE teams
		SET status = $2, is_eliminated = TRUE, balance = 0, updated_at = now()
		WHERE id = $1
		RETURNING `+teamColumns,
		teamID, domain.TeamSuspended)
	return scanTeam(row)
}

func (r *teamRepository) ListByEvent(ctx context.Context, db DBTX, eventID uuid.UUID) ([]domain.Team, error) {
	rows, err := db.Query(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE event_id = $1 ORDER BY created_at`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(
			&t.ID, &t.EventID, &t.Name, &t.Balance, &t.CreditScore, &t.Status,
			&t.HasActiveLoan, &t.ActiveLoanID, &t.CohortID, &t.IsEliminated,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
