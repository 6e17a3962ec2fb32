package repository

import (
	"context"
	"errors"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const propertyColumns = `id, event_id, cohort_id, name, base_value, rent_value,
	owner_team_id, owner_team_name, status`

type propertyRepository struct{}

// NewPropertyRepository creates a PropertyRepository backed by Postgres.
func NewPropertyRepository() PropertyRepository {
	return &propertyRepository{}
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID, &p.EventID, &p.CohortID, &p.Name, &p.BaseValue, &p.RentValue,
		&p.OwnerTeamID, &p.OwnerTeamName, &p.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Property, error) {
	row := db.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
	return scanProperty(row)
}

func (r *propertyRepository) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Property, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1 FOR UPDATE`, id)
	return scanProperty(row)
}

func (r *propertyRepository) SetOwner(ctx context.Context, tx pgx.Tx, id uuid.UUID, ownerID *uuid.UUID, ownerName *string, status domain.PropertyStatus) error {
	_, err := tx.Exec(ctx, `
		UPDATE properties
		SET owner_team_id = $2, owner_team_name = $3, status = $4
		WHERE id = $1`,
		id, ownerID, ownerName, status)
	return err
}

func (r *propertyRepository) LockOwnedByTeam(ctx context.Context, tx pgx.Tx, teamID uuid.UUID) ([]domain.Property, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		WHERE owner_team_id = $1
		ORDER BY id
		FOR UPDATE`, teamID)
	if err != nil {
		return nil, err
	}
	return scanProperties(rows)
}

func (r *propertyRepository) InsertToken(ctx context.Context, db DBTX, token *domain.AuctionToken) error {
	_, err := db.Exec(ctx, `
		INSERT INTO auction_tokens (id, event_id, cohort_id, name, description,
			type, original_property_id, is_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		token.ID, token.EventID, token.CohortID, token.Name, token.Description,
		token.Type, token.OriginalPropertyID, token.IsUsed)
	return err
}

func (r *propertyRepository) ListByEvent(ctx context.Context, db DBTX, eventID uuid.UUID) ([]domain.Property, error) {
	rows, err := db.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE event_id = $1 ORDER BY cohort_id, name`, eventID)
	if err != nil {
		return nil, err
	}
	return scanProperties(rows)
}

func (r *propertyRepository) ListByCohort(ctx context.Context, db DBTX, cohortID string) ([]domain.Property, error) {
	rows, err := db.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE cohort_id = $1 ORDER BY name`, cohortID)
	if err != nil {
		return nil, err
	}
	return scanProperties(rows)
}

func scanProperties(rows pgx.Rows) ([]domain.Property, error) {
	defer rows.Close()

	var props []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.CohortID, &p.Name, &p.BaseValue, &p.RentValue,
			&p.OwnerTeamID, &p.OwnerTeamName, &p.Status,
		); err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, rows.Err()
}
