package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRequestStatus is the three-state approval pipeline of a peer-to-peer
// transfer. APPROVED and REJECTED are terminal.
type PaymentRequestStatus string

const (
	PaymentPending  PaymentRequestStatus = "PENDING"
	PaymentApproved PaymentRequestStatus = "APPROVED"
	PaymentRejected PaymentRequestStatus = "REJECTED"
)

// PaymentRequest represents a payment_requests row.
type PaymentRequest struct {
	ID           uuid.UUID            `json:"id"`
	EventID      uuid.UUID            `json:"event_id"`
	FromTeamID   uuid.UUID            `json:"from_team_id"`
	FromTeamName string               `json:"from_team_name"`
	ToTeamID     uuid.UUID            `json:"to_team_id"`
	ToTeamName   string               `json:"to_team_name"`
	Amount       int64                `json:"amount"`
	Reason       string               `json:"reason"`
	Status       PaymentRequestStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
}
