package repository

import (
	"context"
	"errors"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type cohortRepository struct{}

// NewCohortRepository creates a CohortRepository backed by Postgres. Cohort
// membership lives in a UUID array column; the team back-reference is kept in
// sync in the same statement batch by the setup service.
func NewCohortRepository() CohortRepository {
	return &cohortRepository{}
}

func (r *cohortRepository) FindByID(ctx context.Context, db DBTX, id string) (*domain.Cohort, error) {
	var c domain.Cohort
	err := db.QueryRow(ctx, `
		SELECT id, event_id, name, team_ids, moderator_id, status
		FROM cohorts WHERE id = $1`, id,
	).Scan(&c.ID, &c.EventID, &c.Name, &c.TeamIDs, &c.ModeratorID, &c.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cohortRepository) ListByEvent(ctx context.Context, db DBTX, eventID uuid.UUID) ([]domain.Cohort, error) {
	rows, err := db.Query(ctx, `
		SELECT id, event_id, name, team_ids, moderator_id, status
		FROM cohorts WHERE event_id = $1 ORDER BY id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cohorts []domain.Cohort
	for rows.Next() {
		var c domain.Cohort
		if err := rows.Scan(&c.ID, &c.EventID, &c.Name, &c.TeamIDs, &c.ModeratorID, &c.Status); err != nil {
			return nil, err
		}
		cohorts = append(cohorts, c)
	}
	return cohorts, rows.Err()
}

func (r *cohortRepository) AddTeam(ctx context.Context, db DBTX, cohortID string, teamID uuid.UUID) error {
	_, err := db.Exec(ctx, `
		UPDATE cohorts
		SET team_ids = array_append(team_ids, $2)
		WHERE id = $1 AND NOT ($2 = ANY(team_ids))`,
		cohortID, teamID)
	return err
}

func (r *cohortRepository) RemoveTeam(ctx context.Context, db DBTX, cohortID string, teamID uuid.UUID) error {
	_, err := db.Exec(ctx, `
		UPDATE cohorts
		SET team_ids = array_remove(team_ids, $2)
		WHERE id = $1`,
		cohortID, teamID)
	return err
}
