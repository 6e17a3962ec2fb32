package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/campusopoly/platform/internal/auth"
	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/infra"
	"github.com/google/uuid"
)

// StreamHandler serves the team dashboard's live feed over server-sent
// events, backed by the subscription hub the outbox poller fans out to.
type StreamHandler struct {
	hub    *infra.WSHub
	logger *slog.Logger
}

// NewStreamHandler creates a StreamHandler.
func NewStreamHandler(hub *infra.WSHub, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{hub: hub, logger: logger}
}

// TeamEvents streams committed ledger events for the authenticated team until
// the client disconnects.
func (h *StreamHandler) TeamEvents(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, domain.ErrUnauthorized("missing claims"))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, h.logger, domain.ErrInternal("streaming unsupported", nil))
		return
	}

	teamID := claims.Subject
	room := "team:" + teamID
	conn := &infra.WSConn{
		ID:     uuid.NewString(),
		TeamID: teamID,
		Send:   make(chan []byte, 32),
	}
	h.hub.Join(room, conn)
	defer h.hub.Leave(room, conn.ID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Debug("stream opened", "team_id", teamID, "conn_id", conn.ID)

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-conn.Send:
			if !open {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
