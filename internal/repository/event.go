package repository

import (
	"context"
	"errors"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type eventRepository struct{}

// NewEventRepository creates an EventRepository backed by Postgres.
func NewEventRepository() EventRepository {
	return &eventRepository{}
}

func (r *eventRepository) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Event, error) {
	var e domain.Event
	err := db.QueryRow(ctx, `
		SELECT id, name, start_date, end_date, initial_team_balance, loan_limit
		FROM events WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.StartDate, &e.EndDate, &e.InitialTeamBalance, &e.LoanLimit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) Create(ctx context.Context, db DBTX, event *domain.Event) error {
	_, err := db.Exec(ctx, `
		INSERT INTO events (id, name, start_date, end_date, initial_team_balance, loan_limit)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.Name, event.StartDate, event.EndDate,
		event.InitialTeamBalance, event.LoanLimit)
	return err
}
