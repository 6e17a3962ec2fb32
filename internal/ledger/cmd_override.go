package ledger

import (
	"context"
	"fmt"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/jackc/pgx/v5"
)

// AdjustBalance applies a super-admin balance override in either direction.
// The resulting balance may not go negative. No notification is written:
// overrides are corrections, not gameplay.
func (e *Engine) AdjustBalance(ctx context.Context, tx pgx.Tx, p domain.AdjustBalanceParams) (*domain.LedgerResult, error) {
	if err := domain.ValidatePositiveAmount(p.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateReason(p.Reason); err != nil {
		return nil, err
	}
	if p.Direction != domain.AdjustCredit && p.Direction != domain.AdjustDebit {
		return nil, domain.ErrValidation("direction must be credit or debit")
	}

	team, err := e.lockTeam(ctx, tx, p.TeamID)
	if err != nil {
		return nil, err
	}

	delta := p.Amount
	if p.Direction == domain.AdjustDebit {
		delta = -p.Amount
	}
	if err := domain.CheckAdjustedBalance(team, delta); err != nil {
		return nil, err
	}

	params := domain.PostLedgerEntryParams{
		EventID:      p.EventID,
		TeamID:       team.ID,
		Type:         domain.TxSuperAdminOverride,
		Amount:       p.Amount,
		BalanceDelta: delta,
		AdminID:      &p.AdminID,
		Reason:       p.Reason,
	}
	if delta > 0 {
		params.FromTeamName = domain.CounterpartySuperAdmin
		params.ToTeamID = &team.ID
		params.ToTeamName = team.Name
	} else {
		params.FromTeamID = &team.ID
		params.FromTeamName = team.Name
		params.ToTeamName = domain.CounterpartySuperAdmin
	}
	return e.postEntry(ctx, tx, params)
}

// AdjustCreditScore applies a signed credit-score delta. The balance is
// untouched; the entry's balance_after carries the unchanged balance.
func (e *Engine) AdjustCreditScore(ctx context.Context, tx pgx.Tx, p domain.AdjustCreditScoreParams) (*domain.LedgerResult, error) {
	if p.Amount == 0 {
		return nil, domain.ErrValidation("score delta must be non-zero")
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
		Type:         domain.TxCreditScoreAdjustment,
		Amount:       p.Amount,
		ScoreDelta:   p.Amount,
		FromTeamName: domain.CounterpartySuperAdmin,
		ToTeamID:     &team.ID,
		ToTeamName:   team.Name,
		AdminID:      &p.AdminID,
		Reason:       p.Reason,
	})
	if err != nil {
		return nil, err
	}

	verb := "increased"
	if p.Amount < 0 {
		verb = "decreased"
	}
	err = e.notify(ctx, tx, p.EventID, team.ID, "Credit score adjusted",
		fmt.Sprintf("Your credit score was %s by %d: %s", verb, abs(p.Amount), p.Reason), "credit_score")
	if err != nil {
		return nil, err
	}
	return res, nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
