package domain

import (
	"time"

	"github.com/google/uuid"
)

// LoanStatus is the lifecycle status of a loan.
type LoanStatus string

const (
	LoanActive LoanStatus = "ACTIVE"
	LoanRepaid LoanStatus = "REPAID"
)

// Loan represents a loans row. A team holds at most one ACTIVE loan at a
// time; the constraint is enforced at issuance. Loans are never deleted.
type Loan struct {
	ID        uuid.UUID  `json:"id"`
	EventID   uuid.UUID  `json:"event_id"`
	TeamID    uuid.UUID  `json:"team_id"`
	AdminID   uuid.UUID  `json:"admin_id"`
	Amount    int64      `json:"amount"`
	IssueTime time.Time  `json:"issue_time"`
	Status    LoanStatus `json:"status"`
}
