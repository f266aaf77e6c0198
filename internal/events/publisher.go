// Package events delivers transaction-created notifications to the
// downstream event bus. Delivery is at-least-once best-effort: the
// transaction service logs a failed publish and still reports the
// request as successful.
package events

import (
	"context"

	"accountsvc/internal/models"
)

// Event envelope tags, matching what downstream consumers subscribe on.
const (
	Source                   = "accountService"
	DetailTransactionCreated = "transaction.created"
)

type Publisher interface {
	// Publish sends the transaction-created notification. Callers must
	// not assume the consumer observes it before or after the ledger
	// row is queryable.
	Publish(ctx context.Context, transaction *models.Transaction) error
}
