package transaction

import "accountsvc/internal/models"

// Request describes one transaction to apply against an account's
// currency balance.
type Request struct {
	AccountID string  `json:"account"`
	Amount    float64 `json:"amount"`
	Type      string  `json:"transactionType"`
	Currency  string  `json:"currency"`
}

// Validate checks the request before any store or bus is touched, so a
// rejected request leaves no side effects.
func (r Request) Validate() error {
	if r.AccountID == "" {
		return ErrInvalidAccountID
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	if r.Type != models.TransactionTypeInbound && r.Type != models.TransactionTypeOutbound {
		return ErrInvalidType
	}
	if !validCurrency(r.Currency) {
		return ErrInvalidCurrency
	}
	return nil
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
