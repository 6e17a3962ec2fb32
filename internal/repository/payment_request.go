package repository

import (
	"context"
	"errors"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const paymentRequestColumns = `id, event_id, from_team_id, from_team_name,
	to_team_id, to_team_name, amount, reason, status, created_at`

type paymentRequestRepository struct{}

// NewPaymentRequestRepository creates a PaymentRequestRepository backed by Postgres.
func NewPaymentRequestRepository() PaymentRequestRepository {
	return &paymentRequestRepository{}
}

func scanPaymentRequest(row pgx.Row) (*domain.PaymentRequest, error) {
	var p domain.PaymentRequest
	err := row.Scan(
		&p.ID, &p.EventID, &p.FromTeamID, &p.FromTeamName,
		&p.ToTeamID, &p.ToTeamName, &p.Amount, &p.Reason, &p.Status, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRequestRepository) Create(ctx context.Context, db DBTX, req *domain.PaymentRequest) error {
	return db.QueryRow(ctx, `
		INSERT INTO payment_requests (id, event_id, from_team_id, from_team_name,
			to_team_id, to_team_name, amount, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		req.ID, req.EventID, req.FromTeamID, req.FromTeamName,
		req.ToTeamID, req.ToTeamName, req.Amount, req.Reason, req.Status,
	).Scan(&req.CreatedAt)
}

func (r *paymentRequestRepository) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.PaymentRequest, error) {
	row := db.QueryRow(ctx,
		`SELECT `+paymentRequestColumns+` FROM payment_requests WHERE id = $1`, id)
	return scanPaymentRequest(row)
}

func (r *paymentRequestRepository) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.PaymentRequest, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+paymentRequestColumns+` FROM payment_requests WHERE id = $1 FOR UPDATE`, id)
	return scanPaymentRequest(row)
}

func (r *paymentRequestRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.PaymentRequestStatus) error {
	_, err := tx.Exec(ctx,
		`UPDATE payment_requests SET status = $2 WHERE id = $1`, id, status)
	return err
}

func (r *paymentRequestRepository) ListByEvent(ctx context.Context, db DBTX, eventID uuid.UUID, status *domain.PaymentRequestStatus) ([]domain.PaymentRequest, error) {
	query := `SELECT ` + paymentRequestColumns + ` FROM payment_requests WHERE event_id = $1`
	args := []interface{}{eventID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.PaymentRequest
	for rows.Next() {
		var p domain.PaymentRequest
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.FromTeamID, &p.FromTeamName,
			&p.ToTeamID, &p.ToTeamName, &p.Amount, &p.Reason, &p.Status, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, p)
	}
	return reqs, rows.Err()
}
