package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification represents a notifications row. Notifications are written as a
// side effect of ledger operations; the ledger never reads them back.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	TeamID    uuid.UUID `json:"team_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
