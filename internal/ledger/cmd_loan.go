package ledger

import (
	"context"
	"fmt"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IssueLoan disburses a bank loan: credits the team's balance, dents the
// credit score and marks the single active loan slot.
func (e *Engine) IssueLoan(ctx context.Context, tx pgx.Tx, p domain.IssueLoanParams) (*domain.LedgerResult, *domain.Loan, error) {
	if err := domain.ValidatePositiveAmount(p.Amount); err != nil {
		return nil, nil, err
	}

	team, err := e.lockTeam(ctx, tx, p.TeamID)
	if err != nil {
		return nil, nil, err
	}
	event, err := e.events.FindByID(ctx, tx, p.EventID)
	if err != nil {
		return nil, nil, err
	}
	if event == nil {
		return nil, nil, domain.ErrNotFound("event", p.EventID.String())
	}
	if err := domain.CheckLoanIssue(team, event, p.Amount); err != nil {
		return nil, nil, err
	}

	loan := &domain.Loan{
		ID:      uuid.New(),
		EventID: p.EventID,
		TeamID:  team.ID,
		AdminID: p.AdminID,
		Amount:  p.Amount,
		Status:  domain.LoanActive,
	}
	if err := e.loans.Insert(ctx, tx, loan); err != nil {
		return nil, nil, err
	}
	if err := e.teams.SetLoanState(ctx, tx, team.ID, true, &loan.ID); err != nil {
		return nil, nil, err
	}

	res, err := e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
		EventID:      p.EventID,
		TeamID:       team.ID,
		Type:         domain.TxLoanIssued,
		Amount:       p.Amount,
		BalanceDelta: p.Amount,
		ScoreDelta:   -domain.CreditScoreLoanDelta,
		FromTeamName: domain.CounterpartyBank,
		ToTeamID:     &team.ID,
		ToTeamName:   team.Name,
		AdminID:      &p.AdminID,
		Reason:       p.Reason,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewLoanEvent(loan, domain.EventLoanIssued)); err != nil {
		return nil, nil, err
	}
	err = e.notify(ctx, tx, p.EventID, team.ID, "Loan approved",
		fmt.Sprintf("A loan of %d has been disbursed to your account", p.Amount), "loan")
	if err != nil {
		return nil, nil, err
	}
	return res, loan, nil
}

// RepayLoan settles an active loan voluntarily. Repayment is always for the
// full stored loan amount: the balance is debited and the credit score
// restored.
func (e *Engine) RepayLoan(ctx context.Context, tx pgx.Tx, p domain.RepayLoanParams) (*domain.LedgerResult, error) {
	team, err := e.lockTeam(ctx, tx, p.TeamID)
	if err != nil {
		return nil, err
	}
	loan, err := e.loans.LockForUpdate(ctx, tx, p.LoanID)
	if err != nil {
		return nil, err
	}
	if loan == nil || loan.TeamID != team.ID {
		return nil, domain.ErrNotFound("loan", p.LoanID.String())
	}
	if err := domain.CheckLoanRepay(team, loan); err != nil {
		return nil, err
	}

	if err := e.loans.MarkRepaid(ctx, tx, loan.ID); err != nil {
		return nil, err
	}
	if err := e.teams.SetLoanState(ctx, tx, team.ID, false, nil); err != nil {
		return nil, err
	}

	res, err := e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
		EventID:      p.EventID,
		TeamID:       team.ID,
		Type:         domain.TxLoanRepaid,
		Amount:       loan.Amount,
		BalanceDelta: -loan.Amount,
		ScoreDelta:   domain.CreditScoreLoanDelta,
		FromTeamID:   &team.ID,
		FromTeamName: team.Name,
		ToTeamName:   domain.CounterpartyBank,
		AdminID:      &p.AdminID,
		Reason:       "Loan repayment",
	})
	if err != nil {
		return nil, err
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewLoanEvent(loan, domain.EventLoanRepaid)); err != nil {
		return nil, err
	}
	err = e.notify(ctx, tx, p.EventID, team.ID, "Loan repaid",
		"Your loan has been settled, your credit score has recovered", "loan")
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ForceRepayLoan closes an active loan administratively. The team's balance
// is untouched; the entry records the closure for the audit trail.
func (e *Engine) ForceRepayLoan(ctx context.Context, tx pgx.Tx, p domain.ForceRepayLoanParams) (*domain.LedgerResult, error) {
	team, err := e.lockTeam(ctx, tx, p.TeamID)
	if err != nil {
		return nil, err
	}
	loan, err := e.loans.LockForUpdate(ctx, tx, p.LoanID)
	if err != nil {
		return nil, err
	}
	if loan == nil || loan.TeamID != team.ID {
		return nil, domain.ErrNotFound("loan", p.LoanID.String())
	}
	if loan.Status != domain.LoanActive {
		return nil, domain.ErrInvalidState("this loan is not active")
	}

	if err := e.loans.MarkRepaid(ctx, tx, loan.ID); err != nil {
		return nil, err
	}
	if err := e.teams.SetLoanState(ctx, tx, team.ID, false, nil); err != nil {
		return nil, err
	}

	res, err := e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
		EventID:      p.EventID,
		TeamID:       team.ID,
		Type:         domain.TxLoanRepaid,
		Amount:       loan.Amount,
		BalanceDelta: 0,
		ScoreDelta:   0,
		FromTeamID:   &team.ID,
		FromTeamName: team.Name,
		ToTeamName:   domain.CounterpartyBank,
		AdminID:      &p.AdminID,
		Reason:       "Loan closed by admin",
	})
	if err != nil {
		return nil, err
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewLoanEvent(loan, domain.EventLoanRepaid)); err != nil {
		return nil, err
	}
	err = e.notify(ctx, tx, p.EventID, team.ID, "Loan closed",
		"Your loan was closed by an administrator", "loan")
	if err != nil {
		return nil, err
	}
	return res, nil
}
