package domain

import "github.com/google/uuid"

// PostLedgerEntryParams is the input to the atomic PostLedgerEntry primitive:
// one balance delta plus one append-only ledger entry for a single team.
type PostLedgerEntryParams struct {
	EventID      uuid.UUID
	TeamID       uuid.UUID
	Type         TransactionType
	Amount       int64
	BalanceDelta int64
	ScoreDelta   int64
	FromTeamID   *uuid.UUID
	FromTeamName string
	ToTeamID     *uuid.UUID
	ToTeamName   string
	AdminID      *uuid.UUID
	Reason       string
}

// LedgerResult is returned by every engine command.
type LedgerResult struct {
	Transaction *Transaction
	Team        *Team
}

// CreditDebitParams is the input for Credit and Debit.
type CreditDebitParams struct {
	EventID uuid.UUID
	TeamID  uuid.UUID
	AdminID uuid.UUID
	Amount  int64
	Reason  string
}

// IssueLoanParams is the input for IssueLoan.
type IssueLoanParams struct {
	EventID uuid.UUID
	TeamID  uuid.UUID
	AdminID uuid.UUID
	Amount  int64
	Reason  string
}

// RepayLoanParams is the input for RepayLoan.
type RepayLoanParams struct {
	EventID uuid.UUID
	TeamID  uuid.UUID
	LoanID  uuid.UUID
	AdminID uuid.UUID
}

// ForceRepayLoanParams is the input for ForceRepayLoan. The team's balance is
// untouched; the entry records an administrative close.
type ForceRepayLoanParams struct {
	EventID uuid.UUID
	TeamID  uuid.UUID
	LoanID  uuid.UUID
	AdminID uuid.UUID
}

// AdjustDirection picks the sign of a super-admin balance override.
type AdjustDirection string

const (
	AdjustCredit AdjustDirection = "credit"
	AdjustDebit  AdjustDirection = "debit"
)

// AdjustBalanceParams is the input for AdjustBalance.
type AdjustBalanceParams struct {
	EventID   uuid.UUID
	TeamID    uuid.UUID
	AdminID   uuid.UUID
	Amount    int64
	Reason    string
	Direction AdjustDirection
}

// AdjustCreditScoreParams is the input for AdjustCreditScore. Amount is
// signed.
type AdjustCreditScoreParams struct {
	EventID uuid.UUID
	TeamID  uuid.UUID
	AdminID uuid.UUID
	Amount  int64
	Reason  string
}

// CreateTeamParams is the input for CreateTeam. The opening balance comes
// from the event's initial team balance.
type CreateTeamParams struct {
	EventID uuid.UUID
	AdminID uuid.UUID
	Name    string
}

// CreatePaymentRequestParams is the input for CreatePaymentRequest.
type CreatePaymentRequestParams struct {
	EventID    uuid.UUID
	FromTeamID uuid.UUID
	ToTeamID   uuid.UUID
	Amount     int64
	Reason     string
}

// AssignPropertyOwnerParams is the input for AssignPropertyOwner. Assigning
// charges the new owner the property's base value; a nil NewOwnerTeamID
// unassigns the property without any balance effect.
type AssignPropertyOwnerParams struct {
	EventID        uuid.UUID
	PropertyID     uuid.UUID
	NewOwnerTeamID *uuid.UUID
	AdminID        uuid.UUID
}

// PropertyActionParams is the input for ExecutePropertyPurchase and
// ExecuteRentPayment.
type PropertyActionParams struct {
	EventID    uuid.UUID
	TeamID     uuid.UUID
	PropertyID uuid.UUID
	AdminID    uuid.UUID
}

// PassGoParams is the input for ExecutePassGo.
type PassGoParams struct {
	EventID uuid.UUID
	TeamID  uuid.UUID
	AdminID uuid.UUID
}

// TeamDefaultParams is the input for ExecuteTeamDefault.
type TeamDefaultParams struct {
	EventID uuid.UUID
	TeamID  uuid.UUID
	AdminID uuid.UUID
	Reason  string
}

// TeamDefaultResult reports the outcome of a team default.
type TeamDefaultResult struct {
	Team           *Team
	SeizedCount    int
	MintedTokenIDs []uuid.UUID
}
