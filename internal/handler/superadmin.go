package handler

import (
	"log/slog"
	"net/http"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/service"
)

// SuperAdminHandler serves the override surface: raw balance and credit-score
// adjustments, game configuration and the between-rounds setup steps.
type SuperAdminHandler struct {
	bank   *service.BankService
	setup  *service.SetupService
	config *service.GameConfigService
	logger *slog.Logger
}

// NewSuperAdminHandler creates a SuperAdminHandler.
func NewSuperAdminHandler(bank *service.BankService, setup *service.SetupService, config *service.GameConfigService, logger *slog.Logger) *SuperAdminHandler {
	return &SuperAdminHandler{bank: bank, setup: setup, config: config, logger: logger}
}

// AdjustBalance applies a raw balance override.
func (h *SuperAdminHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
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
		Amount    int64  `json:"amount"`
		Reason    string `json:"reason"`
		Direction string `json:"direction"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.bank.AdjustBalance(r.Context(), domain.AdjustBalanceParams{
		EventID:   eventID,
		TeamID:    teamID,
		AdminID:   adminID,
		Amount:    body.Amount,
		Reason:    body.Reason,
		Direction: domain.AdjustDirection(body.Direction),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AdjustCreditScore applies a signed credit-score override.
func (h *SuperAdminHandler) AdjustCreditScore(w http.ResponseWriter, r *http.Request) {
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
		Amount int64  `json:"amount"`
		Reason string `json:"reason"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.bank.AdjustCreditScore(r.Context(), domain.AdjustCreditScoreParams{
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
	writeJSON(w, http.StatusOK, res)
}

// GetGameConfig returns the current configuration (or the defaults).
func (h *SuperAdminHandler) GetGameConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.config.Get(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// ReplaceGameConfig overwrites the configuration wholesale.
func (h *SuperAdminHandler) ReplaceGameConfig(w http.ResponseWriter, r *http.Request) {
	var cfg domain.GameConfig
	if err := decode(r, &cfg); err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.config.Replace(r.Context(), cfg)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// CreateCohorts partitions the event's teams into cohorts.
func (h *SuperAdminHandler) CreateCohorts(w http.ResponseWriter, r *http.Request) {
	_, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var body struct {
		NumCohorts int `json:"num_cohorts"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	cohorts, err := h.setup.CreateCohorts(r.Context(), eventID, body.NumCohorts)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"cohorts": cohorts})
}

// InitializeProperties seeds the property board for every cohort.
func (h *SuperAdminHandler) InitializeProperties(w http.ResponseWriter, r *http.Request) {
	_, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	seeded, err := h.setup.InitializeCohortProperties(r.Context(), eventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"properties_seeded": seeded})
}

// ResetRound2 clears cohorts, boards and tokens so round 2 can be re-staged.
func (h *SuperAdminHandler) ResetRound2(w http.ResponseWriter, r *http.Request) {
	_, eventID, err := adminIdentity(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.setup.ResetRound2Data(r.Context(), eventID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
