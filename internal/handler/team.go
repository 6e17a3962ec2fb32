package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/campusopoly/platform/internal/auth"
	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TeamHandler serves the team dashboard: own snapshot, ledger history,
// notifications, payment requests and property actions.
type TeamHandler struct {
	query      *service.QueryService
	payments   *service.PaymentService
	properties *service.PropertyService
	loans      *service.LoanService
	logger     *slog.Logger
}

// NewTeamHandler creates a TeamHandler.
func NewTeamHandler(
	query *service.QueryService,
	payments *service.PaymentService,
	properties *service.PropertyService,
	loans *service.LoanService,
	logger *slog.Logger,
) *TeamHandler {
	return &TeamHandler{query: query, payments: payments, properties: properties, loans: loans, logger: logger}
}

// identity extracts the team and event IDs from the verified claims.
func (h *TeamHandler) identity(r *http.Request) (teamID, eventID uuid.UUID, err error) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return uuid.Nil, uuid.Nil, domain.ErrUnauthorized("missing claims")
	}
	teamID, err = claims.SubjectID()
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrUnauthorized("invalid subject")
	}
	eventID, err = uuid.Parse(claims.EventID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrUnauthorized("invalid event")
	}
	return teamID, eventID, nil
}

// Me returns the team's own snapshot.
func (h *TeamHandler) Me(w http.ResponseWriter, r *http.Request) {
	teamID, _, err := h.identity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	team, err := h.query.GetTeam(r.Context(), teamID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// Transactions returns the team's ledger history.
func (h *TeamHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	teamID, _, err := h.identity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	txs, err := h.query.TeamHistory(r.Context(), teamID, queryInt(r, "limit"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

// Loans returns the team's loan history.
func (h *TeamHandler) Loans(w http.ResponseWriter, r *http.Request) {
	teamID, _, err := h.identity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	loans, err := h.loans.ListByTeam(r.Context(), teamID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"loans": loans})
}

// Notifications returns the team's notifications.
func (h *TeamHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	teamID, _, err := h.identity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"
	ns, err := h.query.Notifications(r.Context(), teamID, unreadOnly)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": ns})
}

// MarkNotificationsRead marks the given notifications as read.
func (h *TeamHandler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	teamID, _, err := h.identity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var body struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.query.MarkNotificationsRead(r.Context(), teamID, body.IDs); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreatePaymentRequest files a transfer request to another team.
func (h *TeamHandler) CreatePaymentRequest(w http.ResponseWriter, r *http.Request) {
	teamID, eventID, err := h.identity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var body struct {
		ToTeamID uuid.UUID `json:"to_team_id"`
		Amount   int64     `json:"amount"`
		Reason   string    `json:"reason"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	req, err := h.payments.Create(r.Context(), domain.CreatePaymentRequestParams{
		EventID:    eventID,
		FromTeamID: teamID,
		ToTeamID:   body.ToTeamID,
		Amount:     body.Amount,
		Reason:     body.Reason,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// LandOnProperty reports the consequence of landing on a property, charging
// rent when due.
func (h *TeamHandler) LandOnProperty(w http.ResponseWriter, r *http.Request) {
	teamID, eventID, err := h.identity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		writeError(w, h.logger, domain.ErrValidation("invalid property id"))
		return
	}

	res, err := h.properties.LandOnProperty(r.Context(), domain.PropertyActionParams{
		EventID:    eventID,
		TeamID:     teamID,
		PropertyID: propertyID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PurchaseProperty buys an unowned property.
func (h *TeamHandler) PurchaseProperty(w http.ResponseWriter, r *http.Request) {
	teamID, eventID, err := h.identity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		writeError(w, h.logger, domain.ErrValidation("invalid property id"))
		return
	}

	res, err := h.properties.Purchase(r.Context(), domain.PropertyActionParams{
		EventID:    eventID,
		TeamID:     teamID,
		PropertyID: propertyID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}
