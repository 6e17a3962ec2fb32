package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType enumerates all ledger transaction types.
type TransactionType string

const (
	TxSystemCredit          TransactionType = "SYSTEM_CREDIT"
	TxReward                TransactionType = "REWARD"
	TxPenalty               TransactionType = "PENALTY"
	TxRent                  TransactionType = "RENT"
	TxSettlement            TransactionType = "SETTLEMENT"
	TxLoanIssued            TransactionType = "LOAN_ISSUED"
	TxLoanRepaid            TransactionType = "LOAN_REPAID"
	TxSuperAdminOverride    TransactionType = "SUPER_ADMIN_OVERRIDE"
	TxPropertyPurchase      TransactionType = "PROPERTY_PURCHASE"
	TxTokenAction           TransactionType = "TOKEN_ACTION"
	TxCreditScoreAdjustment TransactionType = "CREDIT_SCORE_ADJUSTMENT"
)

// Counterparty names used when one side of a ledger entry is not a team.
const (
	CounterpartyBank       = "Bank"
	CounterpartySystem     = "System"
	CounterpartySuperAdmin = "Super Admin"
	CounterpartySeller     = "Property Seller"
)

// Transaction represents a transactions row: one append-only, immutable
// ledger entry. TeamID is the team whose history the entry belongs to;
// from/to describe the transfer direction (nil side means the bank/system).
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	EventID      uuid.UUID       `json:"event_id"`
	TeamID       uuid.UUID       `json:"team_id"`
	FromTeamID   *uuid.UUID      `json:"from_team_id,omitempty"`
	FromTeamName string          `json:"from_team_name"`
	ToTeamID     *uuid.UUID      `json:"to_team_id,omitempty"`
	ToTeamName   string          `json:"to_team_name"`
	AdminID      *uuid.UUID      `json:"admin_id,omitempty"`
	Type         TransactionType `json:"type"`
	Amount       int64           `json:"amount"`
	Reason       string          `json:"reason"`
	BalanceAfter int64           `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}
