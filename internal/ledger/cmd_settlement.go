package ledger

import (
	"context"
	"fmt"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SettlementResult carries the two ledger entries of an approved transfer.
type SettlementResult struct {
	Request     *domain.PaymentRequest
	DebitEntry  *domain.Transaction
	CreditEntry *domain.Transaction
}

// ApprovePaymentRequest settles a pending peer-to-peer transfer: the payer is
// debited, the payee credited, and both sides receive a SETTLEMENT entry with
// their own resulting balance. The request moves to its terminal APPROVED
// state in the same commit.
func (e *Engine) ApprovePaymentRequest(ctx context.Context, tx pgx.Tx, requestID uuid.UUID, adminID uuid.UUID) (*SettlementResult, error) {
	req, err := e.payments.LockForUpdate(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound("payment request", requestID.String())
	}
	if err := req.CheckApproval(); err != nil {
		return nil, err
	}

	from, to, err := e.lockTeamPair(ctx, tx, req.FromTeamID, req.ToTeamID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckDebit(from, req.Amount); err != nil {
		return nil, err
	}

	debit, err := e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
		EventID:      req.EventID,
		TeamID:       from.ID,
		Type:         domain.TxSettlement,
		Amount:       req.Amount,
		BalanceDelta: -req.Amount,
		FromTeamID:   &from.ID,
		FromTeamName: from.Name,
		ToTeamID:     &to.ID,
		ToTeamName:   to.Name,
		AdminID:      &adminID,
		Reason:       req.Reason,
	})
	if err != nil {
		return nil, err
	}

	credit, err := e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
		EventID:      req.EventID,
		TeamID:       to.ID,
		Type:         domain.TxSettlement,
		Amount:       req.Amount,
		BalanceDelta: req.Amount,
		FromTeamID:   &from.ID,
		FromTeamName: from.Name,
		ToTeamID:     &to.ID,
		ToTeamName:   to.Name,
		AdminID:      &adminID,
		Reason:       req.Reason,
	})
	if err != nil {
		return nil, err
	}

	if err := e.payments.UpdateStatus(ctx, tx, req.ID, domain.PaymentApproved); err != nil {
		return nil, err
	}
	req.Status = domain.PaymentApproved
	if err := e.outbox.Insert(ctx, tx, domain.NewPaymentRequestEvent(req, domain.EventPaymentRequestResolved)); err != nil {
		return nil, err
	}

	err = e.notify(ctx, tx, req.EventID, from.ID, "Payment sent",
		fmt.Sprintf("Your payment of %d to %s was approved", req.Amount, to.Name), "settlement")
	if err != nil {
		return nil, err
	}
	err = e.notify(ctx, tx, req.EventID, to.ID, "Payment received",
		fmt.Sprintf("You received %d from %s: %s", req.Amount, from.Name, req.Reason), "settlement")
	if err != nil {
		return nil, err
	}

	return &SettlementResult{
		Request:     req,
		DebitEntry:  debit.Transaction,
		CreditEntry: credit.Transaction,
	}, nil
}

// RejectPaymentRequest moves a pending request to its terminal REJECTED state.
// No balances change.
func (e *Engine) RejectPaymentRequest(ctx context.Context, tx pgx.Tx, requestID uuid.UUID, adminID uuid.UUID) (*domain.PaymentRequest, error) {
	req, err := e.payments.LockForUpdate(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound("payment request", requestID.String())
	}
	if err := req.CheckApproval(); err != nil {
		return nil, err
	}

	if err := e.payments.UpdateStatus(ctx, tx, req.ID, domain.PaymentRejected); err != nil {
		return nil, err
	}
	req.Status = domain.PaymentRejected
	if err := e.outbox.Insert(ctx, tx, domain.NewPaymentRequestEvent(req, domain.EventPaymentRequestResolved)); err != nil {
		return nil, err
	}

	err = e.notify(ctx, tx, req.EventID, req.FromTeamID, "Payment rejected",
		fmt.Sprintf("Your payment request of %d to %s was rejected", req.Amount, req.ToTeamName), "settlement")
	if err != nil {
		return nil, err
	}
	return req, nil
}
