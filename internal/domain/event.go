package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types.
type EventType string

const (
	EventTransactionPosted      EventType = "ledger.transaction.posted"
	EventTeamCreated            EventType = "team.created"
	EventTeamDefaulted          EventType = "team.defaulted"
	EventLoanIssued             EventType = "loan.issued"
	EventLoanRepaid             EventType = "loan.repaid"
	EventPaymentRequestCreated  EventType = "payment_request.created"
	EventPaymentRequestResolved EventType = "payment_request.resolved"
	EventPropertyOwnerChanged   EventType = "property.owner.changed"
	EventGameConfigUpdated      EventType = "game_config.updated"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateTeam           AggregateType = "team"
	AggregateLoan           AggregateType = "loan"
	AggregateProperty       AggregateType = "property"
	AggregatePaymentRequest AggregateType = "payment_request"
	AggregateGameConfig     AggregateType = "game_config"
)

// OutboxDraft is the payload written to the event_outbox table, in the same
// transaction as the state change it describes.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Headers       json.RawMessage `json:"headers"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
