package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrInsufficientFunds(teamName string) *AppError {
	return &AppError{Code: "INSUFFICIENT_FUNDS", Message: fmt.Sprintf("team %q has insufficient funds", teamName), Status: 400}
}

// ErrInvalidState covers lifecycle violations: repaying a non-ACTIVE loan,
// approving a non-PENDING payment request, defaulting a non-ACTIVE team.
func ErrInvalidState(msg string) *AppError {
	return &AppError{Code: "INVALID_STATE", Message: msg, Status: 409}
}

func ErrLimitExceeded(msg string) *AppError {
	return &AppError{Code: "LIMIT_EXCEEDED", Message: msg, Status: 400}
}

// ErrTxConflict is returned when the atomic mutation primitive exhausts its
// retries against concurrent writers.
func ErrTxConflict(cause error) *AppError {
	return &AppError{Code: "TX_CONFLICT", Message: "operation conflicted with concurrent writes, please retry", Status: 409, Cause: cause}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: msg, Status: 403}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
