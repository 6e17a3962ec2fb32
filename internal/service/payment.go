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

// PaymentService exposes the peer-to-peer transfer pipeline: teams file
// requests, admins resolve them.
type PaymentService struct {
	pool     *pgxpool.Pool
	engine   *ledger.Engine
	payments repository.PaymentRequestRepository
	teams    repository.TeamRepository
	outbox   repository.OutboxRepository
	logger   *slog.Logger
}

// NewPaymentService creates a PaymentService.
func NewPaymentService(
	pool *pgxpool.Pool,
	engine *ledger.Engine,
	payments repository.PaymentRequestRepository,
	teams repository.TeamRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		pool:     pool,
		engine:   engine,
		payments: payments,
		teams:    teams,
		outbox:   outbox,
		logger:   logger,
	}
}

// Create files a PENDING payment request. No balances change until an admin
// approves it; the payer's funds are checked at approval time, not here.
func (s *PaymentService) Create(ctx context.Context, p domain.CreatePaymentRequestParams) (*domain.PaymentRequest, error) {
	if err := domain.ValidatePositiveAmount(p.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateReason(p.Reason); err != nil {
		return nil, err
	}
	if p.FromTeamID == p.ToTeamID {
		return nil, domain.ErrValidation("a team cannot pay itself")
	}

	var req *domain.PaymentRequest
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		from, err := s.teams.FindByID(ctx, tx, p.FromTeamID)
		if err != nil {
			return err
		}
		if from == nil {
			return domain.ErrNotFound("team", p.FromTeamID.String())
		}
		to, err := s.teams.FindByID(ctx, tx, p.ToTeamID)
		if err != nil {
			return err
		}
		if to == nil {
			return domain.ErrNotFound("team", p.ToTeamID.String())
		}

		req = &domain.PaymentRequest{
			ID:           uuid.New(),
			EventID:      p.EventID,
			FromTeamID:   from.ID,
			FromTeamName: from.Name,
			ToTeamID:     to.ID,
			ToTeamName:   to.Name,
			Amount:       p.Amount,
			Reason:       p.Reason,
			Status:       domain.PaymentPending,
		}
		if err := s.payments.Create(ctx, tx, req); err != nil {
			return err
		}
		return s.outbox.Insert(ctx, tx, domain.NewPaymentRequestEvent(req, domain.EventPaymentRequestCreated))
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("payment request created",
		"request_id", req.ID, "from", req.FromTeamName, "to", req.ToTeamName, "amount", req.Amount)
	return req, nil
}

// Approve settles a pending request.
func (s *PaymentService) Approve(ctx context.Context, requestID, adminID uuid.UUID) (*ledger.SettlementResult, error) {
	var res *ledger.SettlementResult
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		res, err = s.engine.ApprovePaymentRequest(ctx, tx, requestID, adminID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("payment request approved", "request_id", requestID, "admin_id", adminID)
	return res, nil
}

// Reject declines a pending request.
func (s *PaymentService) Reject(ctx context.Context, requestID, adminID uuid.UUID) (*domain.PaymentRequest, error) {
	var req *domain.PaymentRequest
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		req, err = s.engine.RejectPaymentRequest(ctx, tx, requestID, adminID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("payment request rejected", "request_id", requestID, "admin_id", adminID)
	return req, nil
}

// ListByEvent returns an event's payment requests, optionally filtered by status.
func (s *PaymentService) ListByEvent(ctx context.Context, eventID uuid.UUID, status *domain.PaymentRequestStatus) ([]domain.PaymentRequest, error) {
	return s.payments.ListByEvent(ctx, s.pool, eventID, status)
}
