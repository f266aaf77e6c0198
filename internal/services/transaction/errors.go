package transaction

import "errors"

// Service errors
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidType       = errors.New("transaction type must be INBOUND or OUTBOUND")
	ErrInvalidCurrency   = errors.New("currency must be a 3-letter uppercase code")
	ErrInvalidAccountID  = errors.New("account id is required")
)
