// Package ledger implements the transaction engine: every mutation of team
// balances, loans, properties and payment requests runs through an Engine
// command inside a single database transaction, producing exactly one
// append-only ledger entry per balance change plus an outbox event.
package ledger

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Engine executes ledger commands. All command methods take the caller's
// pgx.Tx: the service layer owns transaction boundaries (and retry), the
// engine owns invariants.
type Engine struct {
	teams         repository.TeamRepository
	events        repository.EventRepository
	transactions  repository.TransactionRepository
	loans         repository.LoanRepository
	payments      repository.PaymentRequestRepository
	properties    repository.PropertyRepository
	notifications repository.NotificationRepository
	outbox        repository.OutboxRepository
	logger        *slog.Logger
}

// NewEngine creates a ledger engine.
func NewEngine(
	teams repository.TeamRepository,
	events repository.EventRepository,
	transactions repository.TransactionRepository,
	loans repository.LoanRepository,
	payments repository.PaymentRequestRepository,
	properties repository.PropertyRepository,
	notifications repository.NotificationRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		teams:         teams,
		events:        events,
		transactions:  transactions,
		loans:         loans,
		payments:      payments,
		properties:    properties,
		notifications: notifications,
		outbox:        outbox,
		logger:        logger,
	}
}

// lockTeam acquires the row lock on a team, mapping a missing row to NOT_FOUND.
func (e *Engine) lockTeam(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Team, error) {
	team, err := e.teams.LockForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound("team", id.String())
	}
	return team, nil
}

// lockTeamPair locks two teams in a deterministic order so concurrent
// settlements between the same pair cannot deadlock.
func (e *Engine) lockTeamPair(ctx context.Context, tx pgx.Tx, a, b uuid.UUID) (*domain.Team, *domain.Team, error) {
	first, second := a, b
	swapped := false
	if bytes.Compare(a[:], b[:]) > 0 {
		first, second = b, a
		swapped = true
	}

	t1, err := e.lockTeam(ctx, tx, first)
	if err != nil {
		return nil, nil, err
	}
	t2, err := e.lockTeam(ctx, tx, second)
	if err != nil {
		return nil, nil, err
	}

	if swapped {
		return t2, t1, nil
	}
	return t1, t2, nil
}

// postEntry is the atomic posting primitive: apply the balance and score
// deltas, append the ledger entry carrying the resulting balance, and write
// the corresponding outbox event. The caller has already locked the team row.
func (e *Engine) postEntry(ctx context.Context, tx pgx.Tx, p domain.PostLedgerEntryParams) (*domain.LedgerResult, error) {
	team, err := e.teams.UpdateBalances(ctx, tx, p.TeamID, p.BalanceDelta, p.ScoreDelta)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound("team", p.TeamID.String())
	}

	entry := &domain.Transaction{
		ID:           uuid.New(),
		EventID:      p.EventID,
		TeamID:       p.TeamID,
		FromTeamID:   p.FromTeamID,
		FromTeamName: p.FromTeamName,
		ToTeamID:     p.ToTeamID,
		ToTeamName:   p.ToTeamName,
		AdminID:      p.AdminID,
		Type:         p.Type,
		Amount:       p.Amount,
		Reason:       p.Reason,
		BalanceAfter: team.Balance,
	}
	entry, err = e.transactions.Insert(ctx, tx, entry)
	if err != nil {
		return nil, err
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewTransactionPostedEvent(entry)); err != nil {
		return nil, err
	}

	e.logger.Debug("ledger entry posted",
		"team_id", p.TeamID, "type", p.Type, "amount", p.Amount, "balance_after", team.Balance)

	return &domain.LedgerResult{Transaction: entry, Team: team}, nil
}

// notify writes a notification row in the same transaction as the state
// change it announces.
func (e *Engine) notify(ctx context.Context, tx pgx.Tx, eventID, teamID uuid.UUID, title, message, kind string) error {
	return e.notifications.Insert(ctx, tx, &domain.Notification{
		ID:      uuid.New(),
		EventID: eventID,
		TeamID:  teamID,
		Title:   title,
		Message: message,
		Type:    kind,
	})
}
