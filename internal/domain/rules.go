package domain

import "fmt"

// Credit score deltas applied by ledger operations. From the game rules: small
// nudges for rewards and penalties, larger swings for loan events.
const (
	CreditScoreRewardDelta  = 2
	CreditScorePenaltyDelta = 2
	CreditScoreLoanDelta    = 5
)

// PassGoSalary is the fixed amount credited when a team passes Go.
const PassGoSalary = 2000

// CheckDebit validates that a balance can absorb a debit of amount without
// going negative. Used by Debit, RepayLoan, property purchase and rent.
func CheckDebit(team *Team, amount int64) error {
	if team.Balance < amount {
		return ErrInsufficientFunds(team.Name)
	}
	return nil
}

// CheckLoanIssue validates the single-active-loan and event-cap invariants.
func CheckLoanIssue(team *Team, event *Event, amount int64) error {
	if team.HasActiveLoan {
		return ErrInvalidState(fmt.Sprintf("%s already has an active loan", team.Name))
	}
	if amount > event.LoanLimit {
		return ErrLimitExceeded(fmt.Sprintf("loan amount exceeds the event limit of %d", event.LoanLimit))
	}
	return nil
}

// CheckLoanRepay validates a voluntary repayment. Loans are settled in full:
// the loan must still be ACTIVE and the team must cover the full loan amount.
func CheckLoanRepay(team *Team, loan *Loan) error {
	if loan.Status != LoanActive {
		return ErrInvalidState("this loan is not active")
	}
	if team.Balance < loan.Amount {
		return ErrInsufficientFunds(team.Name)
	}
	return nil
}

// CheckAdjustedBalance validates a super-admin override; the resulting
// balance may not go negative.
func CheckAdjustedBalance(team *Team, delta int64) error {
	if team.Balance+delta < 0 {
		return ErrValidation("this adjustment would result in a negative balance")
	}
	return nil
}

// CheckApproval validates that a payment request can transition to a terminal
// state. Terminal states are immutable.
func (r *PaymentRequest) CheckApproval() error {
	if r.Status != PaymentPending {
		return ErrInvalidState(fmt.Sprintf("payment request is %s, only PENDING requests can be resolved", r.Status))
	}
	return nil
}

// CheckPurchase validates a self-service property purchase.
func CheckPurchase(team *Team, property *Property) error {
	if property.Status != PropertyUnowned {
		return ErrInvalidState(fmt.Sprintf("property %q is already owned", property.Name))
	}
	return CheckDebit(team, property.BaseValue)
}

// CheckRent validates a rent payment from payer to the property's owner.
func CheckRent(payer *Team, property *Property) error {
	if property.OwnerTeamID == nil {
		return ErrInvalidState(fmt.Sprintf("property %q has no owner", property.Name))
	}
	if *property.OwnerTeamID == payer.ID {
		return ErrInvalidState("team owns this property, no rent due")
	}
	return CheckDebit(payer, property.RentValue)
}

// CheckDefault validates that a team can be defaulted.
func CheckDefault(team *Team) error {
	if team.Status != TeamActive {
		return ErrInvalidState(fmt.Sprintf("team %q is not active", team.Name))
	}
	return nil
}
