package domain

import "github.com/google/uuid"

// PropertyStatus is the ownership lifecycle of a property. Status and owner
// always change together: OWNED iff the owner team is set.
type PropertyStatus string

const (
	PropertyUnowned PropertyStatus = "UNOWNED"
	PropertyOwned   PropertyStatus = "OWNED"
	PropertySeized  PropertyStatus = "SEIZED"
	PropertyAuction PropertyStatus = "AUCTION"
)

// Property represents a properties row, scoped to one cohort of an event.
type Property struct {
	ID            uuid.UUID      `json:"id"`
	EventID       uuid.UUID      `json:"event_id"`
	CohortID      string         `json:"cohort_id"`
	Name          string         `json:"name"`
	BaseValue     int64          `json:"base_value"`
	RentValue     int64          `json:"rent_value"`
	OwnerTeamID   *uuid.UUID     `json:"owner_team_id,omitempty"`
	OwnerTeamName *string        `json:"owner_team_name,omitempty"`
	Status        PropertyStatus `json:"status"`
}

// AuctionTokenType classifies auction tokens.
type AuctionTokenType string

const (
	TokenAcademicBoost AuctionTokenType = "ACADEMIC_BOOST"
	TokenPrimeSabotage AuctionTokenType = "PRIME_SABOTAGE"
	TokenFinanceBoost  AuctionTokenType = "FINANCE_BOOST"
	TokenShield        AuctionTokenType = "SHIELD"
)

// AuctionToken represents a tokens row. Tokens are minted from properties
// seized during a team default; auction resolution itself is external.
type AuctionToken struct {
	ID                 uuid.UUID        `json:"id"`
	EventID            uuid.UUID        `json:"event_id"`
	CohortID           string           `json:"cohort_id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Type               AuctionTokenType `json:"type"`
	OriginalPropertyID *uuid.UUID       `json:"original_property_id,omitempty"`
	IsUsed             bool             `json:"is_used"`
}
