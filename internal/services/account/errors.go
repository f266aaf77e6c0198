package account

import "errors"

// Service errors
var (
	ErrOwnerRequired   = errors.New("owner is required")
	ErrNegativeBalance = errors.New("balance amounts must not be negative")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter uppercase code")
)
