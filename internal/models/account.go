package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is a holder of one or more currency balances. Balances are
// mutated only by the transaction service or replaced wholesale by the
// account update endpoint; accounts are never deleted.
type Account struct {
	ID        string     `gorm:"type:uuid;primarykey" json:"id"`
	Owner     string     `gorm:"not null" json:"owner"`
	Balances  BalanceMap `gorm:"type:jsonb;not null;default:'{}'" json:"balances"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Balances == nil {
		a.Balances = BalanceMap{}
	}
	return nil
}
