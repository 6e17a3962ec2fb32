package ledger

import (
	"context"
	"fmt"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Credit grants funds from the bank and rewards the team's credit score.
func (e *Engine) Credit(ctx context.Context, tx pgx.Tx, p domain.CreditDebitParams) (*domain.LedgerResult, error) {
	if err := domain.ValidatePositiveAmount(p.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateReason(p.Reason); err != nil {
		return nil, err
	}

	team, err := e.lockTeam(ctx, tx, p.TeamID)
	if err != nil {
		return nil, err
	}

	res, err := e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
		EventID:      p.EventID,
		TeamID:       team.ID,
		Type:         domain.TxReward,
		Amount:       p.Amount,
		BalanceDelta: p.Amount,
		ScoreDelta:   domain.CreditScoreRewardDelta,
		FromTeamName: domain.CounterpartyBank,
		ToTeamID:     &team.ID,
		ToTeamName:   team.Name,
		AdminID:      &p.AdminID,
		Reason:       p.Reason,
	})
	if err != nil {
		return nil, err
	}

	err = e.notify(ctx, tx, p.EventID, team.ID, "Funds received",
		fmt.Sprintf("You received %d: %s", p.Amount, p.Reason), "credit")
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Debit withdraws funds to the bank and penalizes the team's credit score.
// Fails if the balance cannot cover the amount.
func (e *Engine) Debit(ctx context.Context, tx pgx.Tx, p domain.CreditDebitParams) (*domain.LedgerResult, error) {
	if err := domain.ValidatePositiveAmount(p.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateReason(p.Reason); err != nil {
		return nil, err
	}

	team, err := e.lockTeam(ctx, tx, p.TeamID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckDebit(team, p.Amount); err != nil {
		return nil, err
	}

	res, err := e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
		EventID:      p.EventID,
		TeamID:       team.ID,
		Type:         domain.TxPenalty,
		Amount:       p.Amount,
		BalanceDelta: -p.Amount,
		ScoreDelta:   -domain.CreditScorePenaltyDelta,
		FromTeamID:   &team.ID,
		FromTeamName: team.Name,
		ToTeamName:   domain.CounterpartyBank,
		AdminID:      &p.AdminID,
		Reason:       p.Reason,
	})
	if err != nil {
		return nil, err
	}

	err = e.notify(ctx, tx, p.EventID, team.ID, "Funds deducted",
		fmt.Sprintf("You were charged %d: %s", p.Amount, p.Reason), "debit")
	if err != nil {
		return nil, err
	}
	return res, nil
}
