package domain

import (
	"time"

	"github.com/google/uuid"
)

// TeamStatus is the lifecycle status of a team.
type TeamStatus string

const (
	TeamActive    TeamStatus = "ACTIVE"
	TeamSuspended TeamStatus = "SUSPENDED"
)

// DefaultCreditScore is assigned to every newly created team.
const DefaultCreditScore = 100

// Team represents a teams row. Balance and credit score are mutated
// exclusively through ledger engine commands.
type Team struct {
	ID            uuid.UUID  `json:"id"`
	EventID       uuid.UUID  `json:"event_id"`
	Name          string     `json:"name"`
	Balance       int64      `json:"balance"`
	CreditScore   int64      `json:"credit_score"`
	Status        TeamStatus `json:"status"`
	HasActiveLoan bool       `json:"has_active_loan"`
	ActiveLoanID  *uuid.UUID `json:"active_loan_id,omitempty"`
	CohortID      *string    `json:"cohort_id,omitempty"`
	IsEliminated  bool       `json:"is_eliminated"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Event represents an events row. Teams, loans, transactions and payment
// requests are all scoped to an event.
type Event struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	InitialTeamBalance int64     `json:"initial_team_balance"`
	LoanLimit          int64     `json:"loan_limit"`
}

// Admin represents an event administrator. Identity arrives through the auth
// layer; the ledger trusts the admin ID passed into each operation.
type Admin struct {
	ID      uuid.UUID `json:"id"`
	EventID uuid.UUID `json:"event_id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Role    string    `json:"role"` // admin, superadmin
}
