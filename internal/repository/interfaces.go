package repository

import (
	"context"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TeamRepository provides access to teams.
type TeamRepository interface {
	// FindByID returns a team by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Team, error)

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE) and returns the team.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Team, error)

	// Create inserts a new team.
	Create(ctx context.Context, db DBTX, team *domain.Team) error

	// UpdateBalances applies balance and credit-score deltas with server-side
	// arithmetic and returns the updated row.
	UpdateBalances(ctx context.Context, tx pgx.Tx, teamID uuid.UUID, balanceDelta, scoreDelta int64) (*domain.Team, error)

	// SetLoanState updates the denormalized active-loan flags.
	SetLoanState(ctx context.Context, tx pgx.Tx, teamID uuid.UUID, hasActiveLoan bool, activeLoanID *uuid.UUID) error

	// SetCohort updates the denormalized cohort back-reference. A nil cohortID
	// clears the assignment.
	SetCohort(ctx context.Context, tx pgx.Tx, teamID uuid.UUID, cohortID *string) error

	// MarkDefaulted suspends the team, flags elimination and zeroes the balance.
	MarkDefaulted(ctx context.Context, tx pgx.Tx, teamID uuid.UUID) (*domain.Team, error)

	// ListByEvent returns all teams for an event ordered by creation time.
	ListByEvent(ctx context.Context, db DBTX, eventID uuid.UUID) ([]domain.Team, error)
}

// EventRepository provides access to events.
type EventRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Event, error)
	Create(ctx context.Context, db DBTX, event *domain.Event) error
}

// TransactionRepository provides access to the append-only transactions ledger.
type TransactionRepository interface {
	// Insert creates a new ledger entry. Entries are immutable once written.
	Insert(ctx context.Context, db DBTX, tx *domain.Transaction) (*domain.Transaction, error)

	// ListByTeam returns a team's ledger history, newest first.
	ListByTeam(ctx context.Context, db DBTX, teamID uuid.UUID, limit int) ([]domain.Transaction, error)

	// ListByEvent returns the event-wide ledger, newest first.
	ListByEvent(ctx context.Context, db DBTX, eventID uuid.UUID, limit int) ([]domain.Transaction, error)
}

// LoanRepository provides access to loans.
type LoanRepository interface {
	Insert(ctx context.Context, db DBTX, loan *domain.Loan) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Loan, error)
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Loan, error)
	MarkRepaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	ListByTeam(ctx context.Context, db DBTX, teamID uuid.UUID) ([]domain.Loan, error)
}

// PaymentRequestRepository provides access to payment_requests.
type PaymentRequestRepository interface {
	Create(ctx context.Context, db DBTX, req *domain.PaymentRequest) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.PaymentRequest, error)
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.PaymentRequest, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.PaymentRequestStatus) error
	ListByEvent(ctx context.Context, db DBTX, eventID uuid.UUID, status *domain.PaymentRequestStatus) ([]domain.PaymentRequest, error)
}

// PropertyRepository provides access to properties and auction tokens.
type PropertyRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Property, error)
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Property, error)

	// SetOwner updates ownership and status together, as a unit.
	SetOwner(ctx context.Context, tx pgx.Tx, id uuid.UUID, ownerID *uuid.UUID, ownerName *string, status domain.PropertyStatus) error

	// LockOwnedByTeam locks and returns every property owned by the team.
	LockOwnedByTeam(ctx context.Context, tx pgx.Tx, teamID uuid.UUID) ([]domain.Property, error)

	InsertToken(ctx context.Context, db DBTX, token *domain.AuctionToken) error
	ListByEvent(ctx context.Context, db DBTX, eventID uuid.UUID) ([]domain.Property, error)
	ListByCohort(ctx context.Context, db DBTX, cohortID string) ([]domain.Property, error)
}

// CohortRepository provides access to cohorts.
type CohortRepository interface {
	FindByID(ctx context.Context, db DBTX, id string) (*domain.Cohort, error)
	ListByEvent(ctx context.Context, db DBTX, eventID uuid.UUID) ([]domain.Cohort, error)
	AddTeam(ctx context.Context, db DBTX, cohortID string, teamID uuid.UUID) error
	RemoveTeam(ctx context.Context, db DBTX, cohortID string, teamID uuid.UUID) error
}

// NotificationRepository provides access to notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, db DBTX, n *domain.Notification) error
	ListByTeam(ctx context.Context, db DBTX, teamID uuid.UUID, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, db DBTX, teamID uuid.UUID, ids []uuid.UUID) error
}

// GameConfigRepository provides access to the game_config singleton.
type GameConfigRepository interface {
	// Get returns the current config, or nil if never written.
	Get(ctx context.Context, db DBTX) (*domain.GameConfig, error)

	// Replace overwrites the singleton wholesale.
	Replace(ctx context.Context, db DBTX, cfg domain.GameConfig) error
}

// OutboxRow is one fetched outbox record with its sequence ID.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the state change).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events for the outbox poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}
