package handler

import (
	"log/slog"
	"net/http"

	"github.com/campusopoly/platform/internal/auth"
	"github.com/campusopoly/platform/internal/guard"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps bundles everything the router needs.
type Deps struct {
	Health      *HealthHandler
	Team        *TeamHandler
	Admin       *AdminHandler
	SuperAdmin  *SuperAdminHandler
	Stream      *StreamHandler
	Issuer      *auth.TokenIssuer
	RateLimiter *guard.RateLimiter
	Idempotency *guard.IdempotencyGuard
	Logger      *slog.Logger
}

// NewRouter builds the chi router with the three authorization tiers.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", d.Health.Live)
	r.Get("/readyz", d.Health.Ready)

	r.Route("/api", func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(RateLimit(d.RateLimiter))
		}
		if d.Idempotency != nil {
			r.Use(Idempotency(d.Idempotency))
		}

		r.Route("/team", func(r chi.Router) {
			r.Use(auth.Middleware(d.Issuer, auth.RoleTeam))

			r.Get("/me", d.Team.Me)
			r.Get("/transactions", d.Team.Transactions)
			r.Get("/loans", d.Team.Loans)
			r.Get("/notifications", d.Team.Notifications)
			r.Post("/notifications/read", d.Team.MarkNotificationsRead)
			r.Post("/payment-requests", d.Team.CreatePaymentRequest)
			r.Post("/properties/{propertyID}/land", d.Team.LandOnProperty)
			r.Post("/properties/{propertyID}/purchase", d.Team.PurchaseProperty)
			r.Get("/events/stream", d.Stream.TeamEvents)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.Middleware(d.Issuer, auth.RoleAdmin))

			r.Post("/teams", d.Admin.CreateTeam)
			r.Get("/teams", d.Admin.ListTeams)
			r.Get("/teams/{teamID}", d.Admin.GetTeam)
			r.Get("/teams/{teamID}/transactions", d.Admin.TeamTransactions)
			r.Post("/teams/{teamID}/credit", d.Admin.Credit)
			r.Post("/teams/{teamID}/debit", d.Admin.Debit)
			r.Post("/teams/{teamID}/loans", d.Admin.IssueLoan)
			r.Post("/teams/{teamID}/loans/{loanID}/repay", d.Admin.RepayLoan)
			r.Post("/teams/{teamID}/loans/{loanID}/force-repay", d.Admin.ForceRepayLoan)
			r.Post("/teams/{teamID}/pass-go", d.Admin.PassGo)
			r.Post("/teams/{teamID}/default", d.Admin.TeamDefault)
			r.Post("/teams/{teamID}/token", d.Admin.IssueTeamToken)
			r.Get("/transactions", d.Admin.EventTransactions)
			r.Get("/payment-requests", d.Admin.ListPaymentRequests)
			r.Post("/payment-requests/{requestID}/approve", d.Admin.ApprovePaymentRequest)
			r.Post("/payment-requests/{requestID}/reject", d.Admin.RejectPaymentRequest)
			r.Get("/properties", d.Admin.ListProperties)
			r.Post("/properties/{propertyID}/assign-owner", d.Admin.AssignPropertyOwner)
			r.Post("/properties/{propertyID}/charge-rent", d.Admin.ChargeRent)
			r.Get("/cohorts", d.Admin.ListCohorts)
			r.Put("/cohorts/{cohortID}/teams/{teamID}", d.Admin.MoveTeamToCohort)
			r.Delete("/teams/{teamID}/cohort", d.Admin.RemoveTeamFromCohort)
		})

		r.Route("/superadmin", func(r chi.Router) {
			r.Use(auth.Middleware(d.Issuer, auth.RoleSuperAdmin))

			r.Post("/teams/{teamID}/adjust-balance", d.SuperAdmin.AdjustBalance)
			r.Post("/teams/{teamID}/adjust-credit-score", d.SuperAdmin.AdjustCreditScore)
			r.Get("/game-config", d.SuperAdmin.GetGameConfig)
			r.Put("/game-config", d.SuperAdmin.ReplaceGameConfig)
			r.Post("/setup/cohorts", d.SuperAdmin.CreateCohorts)
			r.Post("/setup/properties", d.SuperAdmin.InitializeProperties)
			r.Post("/setup/reset-round2", d.SuperAdmin.ResetRound2)
		})
	})

	return r
}
