package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

func newDraft(aggType AggregateType, aggID string, evtType EventType, payload any) OutboxDraft {
	body, _ := json.Marshal(payload)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: aggType,
		AggregateID:   aggID,
		EventType:     evtType,
		PartitionKey:  aggID,
		Headers:       json.RawMessage(`{}`),
		Payload:       body,
		OccurredAt:    time.Now(),
	}
}

// NewTransactionPostedEvent creates the standard ledger event for an entry.
// Partitioned by team so one team's history stays ordered.
func NewTransactionPostedEvent(tx *Transaction) OutboxDraft {
	return newDraft(AggregateTeam, tx.TeamID.String(), EventTransactionPosted, tx)
}

// NewTeamCreatedEvent creates a team lifecycle event.
func NewTeamCreatedEvent(team *Team) OutboxDraft {
	return newDraft(AggregateTeam, team.ID.String(), EventTeamCreated, team)
}

// NewTeamDefaultedEvent records a bankruptcy with the number of seized
// properties.
func NewTeamDefaultedEvent(teamID uuid.UUID, seized int) OutboxDraft {
	return newDraft(AggregateTeam, teamID.String(), EventTeamDefaulted, map[string]any{
		"team_id":           teamID.String(),
		"seized_properties": seized,
	})
}

// NewLoanEvent records a loan issuance or repayment.
func NewLoanEvent(loan *Loan, evtType EventType) OutboxDraft {
	return newDraft(AggregateLoan, loan.ID.String(), evtType, loan)
}

// NewPaymentRequestEvent records a payment request creation or resolution.
func NewPaymentRequestEvent(req *PaymentRequest, evtType EventType) OutboxDraft {
	return newDraft(AggregatePaymentRequest, req.ID.String(), evtType, req)
}

// NewPropertyOwnerChangedEvent records an ownership transition.
func NewPropertyOwnerChangedEvent(p *Property) OutboxDraft {
	return newDraft(AggregateProperty, p.ID.String(), EventPropertyOwnerChanged, p)
}

// NewGameConfigUpdatedEvent records a wholesale configuration replacement.
func NewGameConfigUpdatedEvent(cfg GameConfig) OutboxDraft {
	return newDraft(AggregateGameConfig, "current_event", EventGameConfigUpdated, cfg)
}
