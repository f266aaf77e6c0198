package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction directions
const (
	TransactionTypeInbound  = "INBOUND"
	TransactionTypeOutbound = "OUTBOUND"
)

// Transaction is one immutable ledger entry. Balance is the account's
// balance for Currency immediately after this transaction was applied,
// a snapshot rather than a live reference. Rows are append-only.
type Transaction struct {
	ID              string    `gorm:"type:uuid;primarykey" json:"id"`
	AccountID       string    `gorm:"type:uuid;not null;index" json:"account"`
	Amount          float64   `gorm:"not null" json:"amount"`
	TransactionType string    `gorm:"not null" json:"transactionType"`
	Currency        string    `gorm:"type:varchar(3);not null" json:"currency"`
	Balance         float64   `gorm:"not null" json:"balance"`
	CreatedAt       time.Time `json:"timestamp"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
