// Package importer loads a document-database export from the previous
// generation of the platform into Postgres. Document IDs are mapped to
// deterministic UUIDs so re-running an import is safe.
package importer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DeterministicUUID derives a stable UUID from a legacy document ID. The same
// namespace:id pair always maps to the same UUID across runs and machines.
func DeterministicUUID(namespace, legacyID string) uuid.UUID {
	h := sha256.New()
	h.Write([]byte(namespace))
	h.Write([]byte(":"))
	h.Write([]byte(legacyID))
	digest := h.Sum(nil)

	var id uuid.UUID
	copy(id[:], digest[:16])
	id[6] = (id[6] & 0x0f) | 0x50
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

// LegacyTeam is one team document from the export.
type LegacyTeam struct {
	ID          string `json:"id"`
	Name        string `json:"teamName"`
	Balance     int64  `json:"balance"`
	CreditScore int64  `json:"creditScore"`
	Eliminated  bool   `json:"isEliminated"`
}

// LegacyTransaction is one transaction log document from the export.
type LegacyTransaction struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"teamId"`
	FromName     string    `json:"from"`
	ToName       string    `json:"to"`
	Type         string    `json:"type"`
	Amount       int64     `json:"amount"`
	Reason       string    `json:"reason"`
	BalanceAfter int64     `json:"balanceAfter"`
	Timestamp    time.Time `json:"timestamp"`
}

// Export is the top-level shape of a legacy data dump.
type Export struct {
	EventID      uuid.UUID           `json:"event_id"`
	Teams        []LegacyTeam        `json:"teams"`
	Transactions []LegacyTransaction `json:"transactions"`
}

// Importer writes a legacy export into Postgres.
type Importer struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New creates an Importer.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Importer {
	return &Importer{pool: pool, logger: logger}
}

// Run imports the export in one transaction. Existing rows (by deterministic
// UUID) are skipped, so a partially imported dump can be re-run.
func (im *Importer) Run(ctx context.Context, export Export) error {
	tx, err := im.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, t := range export.Teams {
		status := domain.TeamActive
		if t.Eliminated {
			status = domain.TeamSuspended
		}
		batch.Queue(`
			INSERT INTO teams (id, event_id, name, balance, credit_score, status, is_eliminated)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING`,
			DeterministicUUID("team", t.ID), export.EventID, t.Name,
			t.Balance, t.CreditScore, status, t.Eliminated)
	}

	for _, lt := range export.Transactions {
		batch.Queue(`
			INSERT INTO transactions (id, event_id, team_id, from_team_name, to_team_name,
				type, amount, reason, balance_after, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING`,
			DeterministicUUID("transaction", lt.ID), export.EventID,
			DeterministicUUID("team", lt.TeamID), lt.FromName, lt.ToName,
			lt.Type, lt.Amount, lt.Reason, lt.BalanceAfter, lt.Timestamp)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("import batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	im.logger.Info("legacy export imported",
		"event_id", export.EventID, "teams", len(export.Teams), "transactions", len(export.Transactions))
	return nil
}

// BalanceMismatch reports a team whose imported balance disagrees with its
// replayed ledger.
type BalanceMismatch struct {
	TeamID       uuid.UUID `json:"team_id"`
	Name         string    `json:"name"`
	Balance      int64     `json:"balance"`
	LedgerNewest int64     `json:"ledger_newest"`
}

// Verify cross-checks each imported team's balance against the newest
// balance_after in its imported ledger.
func (im *Importer) Verify(ctx context.Context, eventID uuid.UUID) ([]BalanceMismatch, error) {
	rows, err := im.pool.Query(ctx, `
		SELECT t.id, t.name, t.balance, COALESCE(latest.balance_after, t.balance)
		FROM teams t
		LEFT JOIN LATERAL (
			SELECT balance_after FROM transactions
			WHERE team_id = t.id
			ORDER BY created_at DESC
			LIMIT 1
		) latest ON true
		WHERE t.event_id = $1`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mismatches []BalanceMismatch
	for rows.Next() {
		var m BalanceMismatch
		if err := rows.Scan(&m.TeamID, &m.Name, &m.Balance, &m.LedgerNewest); err != nil {
			return nil, err
		}
		if m.Balance != m.LedgerNewest {
			mismatches = append(mismatches, m)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	im.logger.Info("import verified", "event_id", eventID, "mismatches", len(mismatches))
	return mismatches, nil
}
