package service

import (
	"context"
	"log/slog"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/infra"
	"github.com/campusopoly/platform/internal/ledger"
	"github.com/campusopoly/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LandingOutcome classifies what happens when a team lands on a property.
type LandingOutcome string

const (
	LandingCanPurchase LandingOutcome = "CAN_PURCHASE"
	LandingRentDue     LandingOutcome = "RENT_DUE"
	LandingOwnProperty LandingOutcome = "OWN_PROPERTY"
	LandingUnavailable LandingOutcome = "UNAVAILABLE"
)

// LandingResult is returned by LandOnProperty.
type LandingResult struct {
	Outcome  LandingOutcome       `json:"outcome"`
	Property *domain.Property     `json:"property"`
	Ledger   *domain.LedgerResult `json:"ledger,omitempty"`
}

// PropertyService exposes property ownership, purchases and rent.
type PropertyService struct {
	pool       *pgxpool.Pool
	engine     *ledger.Engine
	properties repository.PropertyRepository
	logger     *slog.Logger
}

// NewPropertyService creates a PropertyService.
func NewPropertyService(pool *pgxpool.Pool, engine *ledger.Engine, properties repository.PropertyRepository, logger *slog.Logger) *PropertyService {
	return &PropertyService{pool: pool, engine: engine, properties: properties, logger: logger}
}

// AssignOwner transfers ownership administratively.
func (s *PropertyService) AssignOwner(ctx context.Context, p domain.AssignPropertyOwnerParams) (*domain.Property, error) {
	var prop *domain.Property
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		prop, err = s.engine.AssignPropertyOwner(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("property owner assigned", "property_id", p.PropertyID, "owner", prop.OwnerTeamName)
	return prop, nil
}

// Purchase buys an unowned property for its base value.
func (s *PropertyService) Purchase(ctx context.Context, p domain.PropertyActionParams) (*domain.LedgerResult, error) {
	var res *domain.LedgerResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.ExecutePropertyPurchase(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("property purchased", "property_id", p.PropertyID, "team_id", p.TeamID)
	return res, nil
}

// PayRent settles rent between the landing team and the owner.
func (s *PropertyService) PayRent(ctx context.Context, p domain.PropertyActionParams) (*domain.LedgerResult, error) {
	var res *domain.LedgerResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.ExecuteRentPayment(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// LandOnProperty classifies a landing and executes its consequence: rent is
// charged immediately when due, a purchase is left to the team's decision.
func (s *PropertyService) LandOnProperty(ctx context.Context, p domain.PropertyActionParams) (*LandingResult, error) {
	prop, err := s.properties.FindByID(ctx, s.pool, p.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, domain.ErrNotFound("property", p.PropertyID.String())
	}

	switch {
	case prop.Status == domain.PropertyUnowned:
		return &LandingResult{Outcome: LandingCanPurchase, Property: prop}, nil
	case prop.OwnerTeamID != nil && *prop.OwnerTeamID == p.TeamID:
		return &LandingResult{Outcome: LandingOwnProperty, Property: prop}, nil
	case prop.Status == domain.PropertyOwned:
		res, err := s.PayRent(ctx, p)
		if err != nil {
			return nil, err
		}
		return &LandingResult{Outcome: LandingRentDue, Property: prop, Ledger: res}, nil
	default:
		// SEIZED or AUCTION: nothing to do until the auction resolves.
		return &LandingResult{Outcome: LandingUnavailable, Property: prop}, nil
	}
}

// ListByEvent returns every property in an event.
func (s *PropertyService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Property, error) {
	return s.properties.ListByEvent(ctx, s.pool, eventID)
}

// ListByCohort returns a cohort's property board.
func (s *PropertyService) ListByCohort(ctx context.Context, cohortID string) ([]domain.Property, error) {
	return s.properties.ListByCohort(ctx, s.pool, cohortID)
}
