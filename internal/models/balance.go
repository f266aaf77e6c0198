package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// BalanceMap holds one amount per 3-letter currency code. Keying by
// currency makes a duplicate entry unrepresentable.
type BalanceMap map[string]float64

// Value implements the driver.Valuer interface
func (b BalanceMap) Value() (driver.Value, error) {
	if b == nil {
		return json.Marshal(BalanceMap{})
	}
	return json.Marshal(b)
}

// Scan implements the sql.Scanner interface
func (b *BalanceMap) Scan(value interface{}) error {
	if value == nil {
		*b = BalanceMap{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("unsupported balance column type")
		}
	}
	return json.Unmarshal(bytes, b)
}

// Clone returns an independent copy so callers can mutate a snapshot
// without touching the stored map.
func (b BalanceMap) Clone() BalanceMap {
	out := make(BalanceMap, len(b))
	for currency, amount := range b {
		out[currency] = amount
	}
	return out
}
