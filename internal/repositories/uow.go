package repositories

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork runs a function against the account and ledger stores
// inside a single database transaction, so a balance mutation and its
// ledger entry commit or roll back together. Account reads inside the
// unit of work take a row lock, serializing writers on the same
// account across service instances.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(accounts AccountRepository, ledger LedgerRepository) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(accounts AccountRepository, ledger LedgerRepository) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&accountRepository{db: tx, forUpdate: true}, &ledgerRepository{db: tx})
	})
}
