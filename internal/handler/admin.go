package handler

import (
	"log/slog"
	"net/http"

	"github.com/campusopoly/platform/internal/auth"
	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AdminHandler serves the bank desk: team provisioning, credits and debits,
// loans, payment request resolution, property administration and defaults.
type AdminHandler struct {
	bank       *service.BankService
	loans      *service.LoanService
	payments   *service.PaymentService
	properties *service.PropertyService
	setup      *service.SetupService
	query      *service.QueryService
	issuer     *auth.TokenIssuer
	logger     *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(
	bank *service.BankService,
	loans *service.LoanService,
	payments *service.PaymentService,
	properties *service.PropertyService,
	setup *service.SetupService,
	query *service.QueryService,
	issuer *auth.TokenIssuer,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		bank:       bank,
		loans:      loans,
		payments:   payments,
		properties: properties,
		setup:      setup,
		query:      query,
		issuer:     issuer,
		logger:     logger,
	}
}

// adminIdentity extracts the admin and event IDs from the verified claims.
func adminIdentity(r *http.Request) (adminID, eventID uuid.UUID, err error) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return uuid.Nil, uuid.Nil, domain.ErrUnauthorized("missing claims")
	}
	adminID, err = claims.SubjectID()
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrUnauthorized("invalid subject")
	}
	eventID, err = uuid.Parse(claims.EventID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrUnauthorized("invalid event")
	}
	return adminID, eventID, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.ErrValidation("invalid " + name)
	}
	return id, nil
}

// CreateTeam provisions a team with the event's opening balance.
func (h *AdminHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	adminID, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.bank.CreateTeam(r.Context(), domain.CreateTeamParams{
		EventID: eventID,
		AdminID: adminID,
		Name:    body.Name,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ListTeams returns every team in the admin's event.
func (h *AdminHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	_, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	teams, err := h.query.ListTeams(r.Context(), eventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

// GetTeam returns one team.
func (h *AdminHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathUUID(r, "teamID")
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

// TeamTransactions returns one team's ledger history.
func (h *AdminHandler) TeamTransactions(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathUUID(r, "teamID")
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

// EventTransactions returns the event-wide ledger.
func (h *AdminHandler) EventTransactions(w http.ResponseWriter, r *http.Request) {
	_, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	txs, err := h.query.EventHistory(r.Context(), eventID, queryInt(r, "limit"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

type amountReasonBody struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// Credit grants funds to a team.
func (h *AdminHandler) Credit(w http.ResponseWriter, r *http.Request) {
	h.creditOrDebit(w, r, true)
}

// Debit withdraws funds from a team.
func (h *AdminHandler) Debit(w http.ResponseWriter, r *http.Request) {
	h.creditOrDebit(w, r, false)
}

func (h *AdminHandler) creditOrDebit(w http.ResponseWriter, r *http.Request, credit bool) {
	adminID, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	teamID, err := pathUUID(r, "teamID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var body amountReasonBody
	if err := decode(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	params := domain.CreditDebitParams{
		EventID: eventID,
		TeamID:  teamID,
		AdminID: adminID,
		Amount:  body.Amount,
		Reason:  body.Reason,
	}
	var res *domain.LedgerResult
	if credit {
		res, err = h.bank.Credit(r.Context(), params)
	} else {
		res, err = h.bank.Debit(r.Context(), params)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// IssueLoan disburses a loan.
func (h *AdminHandler) IssueLoan(w http.ResponseWriter, r *http.Request) {
	adminID, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	teamID, err := pathUUID(r, "teamID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var body amountReasonBody
	if err := decode(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, loan, err := h.loans.Issue(r.Context(), domain.IssueLoanParams{
		EventID: eventID,
		TeamID:  teamID,
		AdminID: adminID,
		Amount:  body.Amount,
		Reason:  body.Reason,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ledger": res, "loan": loan})
}

// RepayLoan settles a loan voluntarily.
func (h *AdminHandler) RepayLoan(w http.ResponseWriter, r *http.Request) {
	adminID, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	teamID, err := pathUUID(r, "teamID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	loanID, err := pathUUID(r, "loanID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.loans.Repay(r.Context(), domain.RepayLoanParams{
		EventID: eventID,
		TeamID:  teamID,
		LoanID:  loanID,
		AdminID: adminID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ForceRepayLoan closes a loan administratively.
func (h *AdminHandler) ForceRepayLoan(w http.ResponseWriter, r *http.Request) {
	adminID, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	teamID, err := pathUUID(r, "teamID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	loanID, err := pathUUID(r, "loanID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.loans.ForceRepay(r.Context(), domain.ForceRepayLoanParams{
		EventID: eventID,
		TeamID:  teamID,
		LoanID:  loanID,
		AdminID: adminID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PassGo credits the lap salary.
func (h *AdminHandler) PassGo(w http.ResponseWriter, r *http.Request) {
	adminID, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	teamID, err := pathUUID(r, "teamID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.bank.PassGo(r.Context(), domain.PassGoParams{
		EventID: eventID,
		TeamID:  teamID,
		AdminID: adminID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// TeamDefault processes a bankruptcy.
func (h *AdminHandler) TeamDefault(w http.ResponseWriter, r *http.Request) {
	adminID, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	teamID, err := pathUUID(r, "teamID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if body.Reason == "" {
		body.Reason = "Team defaulted"
	}

	res, err := h.bank.TeamDefault(r.Context(), domain.TeamDefaultParams{
		EventID: eventID,
		TeamID:  teamID,
		AdminID: adminID,
		Reason:  body.Reason,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ListPaymentRequests returns the event's payment requests, optionally
// filtered by ?status=.
func (h *AdminHandler) ListPaymentRequests(w http.ResponseWriter, r *http.Request) {
	_, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var status *domain.PaymentRequestStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.PaymentRequestStatus(s)
		status = &st
	}
	reqs, err := h.payments.ListByEvent(r.Context(), eventID, status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payment_requests": reqs})
}

// ApprovePaymentRequest settles a pending transfer.
func (h *AdminHandler) ApprovePaymentRequest(w http.ResponseWriter, r *http.Request) {
	adminID, _, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	requestID, err := pathUUID(r, "requestID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.payments.Approve(r.Context(), requestID, adminID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RejectPaymentRequest declines a pending transfer.
func (h *AdminHandler) RejectPaymentRequest(w http.ResponseWriter, r *http.Request) {
	adminID, _, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	requestID, err := pathUUID(r, "requestID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	req, err := h.payments.Reject(r.Context(), requestID, adminID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// ListProperties returns the event's properties (or one cohort's with ?cohort=).
func (h *AdminHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	_, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if cohortID := r.URL.Query().Get("cohort"); cohortID != "" {
		props, err := h.properties.ListByCohort(r.Context(), cohortID)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"properties": props})
		return
	}
	props, err := h.properties.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"properties": props})
}

// AssignPropertyOwner transfers property ownership administratively. A null
// owner releases the property.
func (h *AdminHandler) AssignPropertyOwner(w http.ResponseWriter, r *http.Request) {
	adminID, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	propertyID, err := pathUUID(r, "propertyID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var body struct {
		OwnerTeamID *uuid.UUID `json:"owner_team_id"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	prop, err := h.properties.AssignOwner(r.Context(), domain.AssignPropertyOwnerParams{
		EventID:        eventID,
		PropertyID:     propertyID,
		NewOwnerTeamID: body.OwnerTeamID,
		AdminID:        adminID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, prop)
}

// ChargeRent charges a team rent for a property on the admin's behalf.
func (h *AdminHandler) ChargeRent(w http.ResponseWriter, r *http.Request) {
	adminID, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	propertyID, err := pathUUID(r, "propertyID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var body struct {
		TeamID uuid.UUID `json:"team_id"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.properties.PayRent(r.Context(), domain.PropertyActionParams{
		EventID:    eventID,
		TeamID:     body.TeamID,
		PropertyID: propertyID,
		AdminID:    adminID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ListCohorts returns the event's cohorts.
func (h *AdminHandler) ListCohorts(w http.ResponseWriter, r *http.Request) {
	_, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	cohorts, err := h.setup.ListCohorts(r.Context(), eventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cohorts": cohorts})
}

// MoveTeamToCohort assigns a team to a cohort, detaching it from its previous
// one.
func (h *AdminHandler) MoveTeamToCohort(w http.ResponseWriter, r *http.Request) {
	_, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	cohortID := chi.URLParam(r, "cohortID")
	teamID, err := pathUUID(r, "teamID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	cohort, err := h.setup.MoveTeamToCohort(r.Context(), eventID, cohortID, teamID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cohort)
}

// RemoveTeamFromCohort detaches a team from its cohort.
func (h *AdminHandler) RemoveTeamFromCohort(w http.ResponseWriter, r *http.Request) {
	_, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	teamID, err := pathUUID(r, "teamID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.setup.RemoveTeamFromCohort(r.Context(), eventID, teamID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": true})
}

// IssueTeamToken mints a dashboard token for a team.
func (h *AdminHandler) IssueTeamToken(w http.ResponseWriter, r *http.Request) {
	_, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	teamID, err := pathUUID(r, "teamID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	team, err := h.query.GetTeam(r.Context(), teamID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.issuer.IssueTeamToken(team.ID, eventID, team.Name)
	if err != nil {
		writeError(w, h.logger, domain.ErrInternal("issue token", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
