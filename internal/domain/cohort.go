package domain

import "github.com/google/uuid"

// CohortStatus tracks where a cohort is in the round lifecycle.
type CohortStatus string

const (
	CohortWaiting         CohortStatus = "WAITING"
	CohortRound2Active    CohortStatus = "ROUND_2_ACTIVE"
	CohortRound2Completed CohortStatus = "ROUND_2_COMPLETED"
	CohortRound3Auction   CohortStatus = "ROUND_3_AUCTION"
	CohortFinalized       CohortStatus = "FINALIZED"
)

// Cohort represents a cohorts row. TeamIDs is the authoritative membership
// list; Team.CohortID is a denormalized back-reference maintained only by the
// cohort mutation operations.
type Cohort struct {
	ID          string       `json:"id"`
	EventID     uuid.UUID    `json:"event_id"`
	Name        string       `json:"name"`
	TeamIDs     []uuid.UUID  `json:"team_ids"`
	ModeratorID string       `json:"moderator_id"`
	Status      CohortStatus `json:"status"`
}
