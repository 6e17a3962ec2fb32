package repository

import (
	"context"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, event_id, team_id, from_team_id, from_team_name,
	to_team_id, to_team_name, admin_id, type, amount, reason, balance_after, created_at`

type transactionRepository struct{}

// NewTransactionRepository creates a TransactionRepository backed by Postgres.
// The transactions table is append-only: no update or delete methods exist.
func NewTransactionRepository() TransactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Insert(ctx context.Context, db DBTX, t *domain.Transaction) (*domain.Transaction, error) {
	err := db.QueryRow(ctx, `
		INSERT INTO transactions (id, event_id, team_id, from_team_id, from_team_name,
			to_team_id, to_team_name, admin_id, type, amount, reason, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`,
		t.ID, t.EventID, t.TeamID, t.FromTeamID, t.FromTeamName,
		t.ToTeamID, t.ToTeamName, t.AdminID, t.Type, t.Amount, t.Reason, t.BalanceAfter,
	).Scan(&t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *transactionRepository) ListByTeam(ctx context.Context, db DBTX, teamID uuid.UUID, limit int) ([]domain.Transaction, error) {
	rows, err := db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE team_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, teamID, limit)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func (r *transactionRepository) ListByEvent(ctx context.Context, db DBTX, eventID uuid.UUID, limit int) ([]domain.Transaction, error) {
	rows, err := db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE event_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, eventID, limit)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID, &t.EventID, &t.TeamID, &t.FromTeamID, &t.FromTeamName,
			&t.ToTeamID, &t.ToTeamName, &t.AdminID, &t.Type, &t.Amount,
			&t.Reason, &t.BalanceAfter, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
