package domain

import "errors"

// Ledger-facing error taxonomy. Handlers map these to HTTP codes with
// errors.Is; services wrap them with context via fmt.Errorf("%w: ...").
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidState      = errors.New("operation not valid for current state")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
)
