package domain

import "fmt"

// ValidatePositiveAmount checks that a ledger amount is positive.
func ValidatePositiveAmount(amount int64) error {
	if amount <= 0 {
		return ErrValidation(fmt.Sprintf("amount must be positive, got %d", amount))
	}
	return nil
}

// ValidateName checks a human-facing entity name (team, event, cohort).
func ValidateName(name string) error {
	if name == "" {
		return ErrValidation("name is required")
	}
	if len(name) > 120 {
		return ErrValidation("name must be at most 120 characters")
	}
	return nil
}

// ValidateReason checks the free-text reason attached to a ledger entry.
func ValidateReason(reason string) error {
	if reason == "" {
		return ErrValidation("reason is required")
	}
	return nil
}
