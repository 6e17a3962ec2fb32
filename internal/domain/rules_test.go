package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeTeam(balance int64) *Team {
	return &Team{
		ID:          uuid.New(),
		Name:        "Testers",
		Balance:     balance,
		CreditScore: DefaultCreditScore,
		Status:      TeamActive,
	}
}

func TestCheckDebitBoundary(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		amount  int64
		wantErr bool
	}{
		{"exact balance passes", 500, 500, false},
		{"one under fails", 499, 500, true},
		{"plenty passes", 10000, 500, false},
		{"zero balance fails any debit", 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDebit(activeTeam(tt.balance), tt.amount)
			if tt.wantErr {
				var appErr *AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "INSUFFICIENT_FUNDS", appErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckLoanIssue(t *testing.T) {
	event := &Event{LoanLimit: 3000}

	t.Run("within limit and no active loan", func(t *testing.T) {
		assert.NoError(t, CheckLoanIssue(activeTeam(0), event, 3000))
	})

	t.Run("second active loan rejected", func(t *testing.T) {
		team := activeTeam(0)
		team.HasActiveLoan = true
		err := CheckLoanIssue(team, event, 100)
		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_STATE", appErr.Code)
	})

	t.Run("over the event cap rejected", func(t *testing.T) {
		err := CheckLoanIssue(activeTeam(0), event, 3001)
		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "LIMIT_EXCEEDED", appErr.Code)
	})
}

func TestCheckLoanRepay(t *testing.T) {
	loan := &Loan{ID: uuid.New(), Amount: 1000, Status: LoanActive}

	assert.NoError(t, CheckLoanRepay(activeTeam(1000), loan))

	t.Run("full loan amount must be covered", func(t *testing.T) {
		err := CheckLoanRepay(activeTeam(999), loan)
		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INSUFFICIENT_FUNDS", appErr.Code, "a token balance cannot settle the loan")
	})

	t.Run("settled loan cannot be repaid again", func(t *testing.T) {
		repaid := &Loan{ID: uuid.New(), Amount: 1000, Status: LoanRepaid}
		err := CheckLoanRepay(activeTeam(5000), repaid)
		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_STATE", appErr.Code)
	})
}

func TestCheckAdjustedBalance(t *testing.T) {
	assert.NoError(t, CheckAdjustedBalance(activeTeam(100), -100), "adjusting to exactly zero is allowed")
	assert.Error(t, CheckAdjustedBalance(activeTeam(100), -101))
	assert.NoError(t, CheckAdjustedBalance(activeTeam(0), 500))
}

func TestPaymentRequestTerminalStates(t *testing.T) {
	pending := &PaymentRequest{Status: PaymentPending}
	assert.NoError(t, pending.CheckApproval())

	for _, status := range []PaymentRequestStatus{PaymentApproved, PaymentRejected} {
		req := &PaymentRequest{Status: status}
		err := req.CheckApproval()
		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_STATE", appErr.Code, "terminal state %s must be immutable", status)
	}
}

func TestCheckPurchase(t *testing.T) {
	prop := &Property{Name: "Main Gate", BaseValue: 1000, Status: PropertyUnowned}

	assert.NoError(t, CheckPurchase(activeTeam(1000), prop))
	assert.Error(t, CheckPurchase(activeTeam(999), prop), "cannot afford")

	ownerID := uuid.New()
	ownedProp := &Property{Name: "Library", BaseValue: 1000, Status: PropertyOwned, OwnerTeamID: &ownerID}
	err := CheckPurchase(activeTeam(5000), ownedProp)
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_STATE", appErr.Code)
}

func TestCheckRent(t *testing.T) {
	payer := activeTeam(500)
	ownerID := uuid.New()
	prop := &Property{Name: "Cafeteria", RentValue: 200, Status: PropertyOwned, OwnerTeamID: &ownerID}

	assert.NoError(t, CheckRent(payer, prop))

	t.Run("no rent on own property", func(t *testing.T) {
		own := &Property{Name: "Cafeteria", RentValue: 200, Status: PropertyOwned, OwnerTeamID: &payer.ID}
		assert.Error(t, CheckRent(payer, own))
	})

	t.Run("no rent on unowned property", func(t *testing.T) {
		unowned := &Property{Name: "Cafeteria", RentValue: 200, Status: PropertyUnowned}
		assert.Error(t, CheckRent(payer, unowned))
	})

	t.Run("payer must afford the rent", func(t *testing.T) {
		broke := activeTeam(199)
		assert.Error(t, CheckRent(broke, prop))
	})
}

func TestCheckDefault(t *testing.T) {
	assert.NoError(t, CheckDefault(activeTeam(100)))

	suspended := activeTeam(100)
	suspended.Status = TeamSuspended
	err := CheckDefault(suspended)
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_STATE", appErr.Code, "a defaulted team cannot default twice")
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidatePositiveAmount(1))
	assert.Error(t, ValidatePositiveAmount(0))
	assert.Error(t, ValidatePositiveAmount(-5))

	assert.NoError(t, ValidateName("Team Alpha"))
	assert.Error(t, ValidateName(""))

	assert.NoError(t, ValidateReason("rent"))
	assert.Error(t, ValidateReason(""))
}

func TestGameConfigValidate(t *testing.T) {
	valid := DefaultGameConfig()
	assert.NoError(t, valid.Validate())

	t.Run("weight out of range", func(t *testing.T) {
		cfg := DefaultGameConfig()
		cfg.CashWeight = 1.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown round status", func(t *testing.T) {
		cfg := DefaultGameConfig()
		cfg.RoundStatus = "ROUND_9"
		assert.Error(t, cfg.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		cfg := DefaultGameConfig()
		cfg.RoundStartTime = time.Now()
		cfg.RoundEndTime = cfg.RoundStartTime.Add(-time.Hour)
		assert.Error(t, cfg.Validate())
	})
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := assert.AnError
	err := ErrTxConflict(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "TX_CONFLICT")
}

func TestBasePropertiesCatalog(t *testing.T) {
	require.Len(t, BaseProperties, 20)
	seen := make(map[string]bool)
	for _, p := range BaseProperties {
		assert.Positive(t, p.BaseValue, "%s base value", p.Name)
		assert.Positive(t, p.RentValue, "%s rent value", p.Name)
		assert.False(t, seen[p.Name], "duplicate property %s", p.Name)
		seen[p.Name] = true
	}
}
