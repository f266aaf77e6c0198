package repositories

import (
	"context"
	"fmt"

	"accountsvc/internal/models"

	"gorm.io/gorm"
)

// LedgerRepository is the append-only store of Transaction records.
// There is deliberately no update or delete operation.
type LedgerRepository interface {
	// Append assigns identity and timestamp, persists the record and
	// returns the stored row.
	Append(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error)
	// ListByAccount returns the account's entries in insertion order.
	ListByAccount(ctx context.Context, accountID string) ([]models.Transaction, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}
	return transaction, nil
}

func (r *ledgerRepository) ListByAccount(ctx context.Context, accountID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
