package events

import (
	"context"
	"log/slog"
	"sync"

	"accountsvc/internal/models"
)

// MemoryPublisher records published transactions in memory. It backs
// deployments without an event bus configured and doubles as the test
// publisher; FailWith forces every publish to return an error.
type MemoryPublisher struct {
	mu        sync.Mutex
	published []models.Transaction
	failWith  error
	logger    *slog.Logger
}

func NewMemoryPublisher(logger *slog.Logger) *MemoryPublisher {
	return &MemoryPublisher{
		logger: logger.With("publisher", "memory"),
	}
}

func (p *MemoryPublisher) Publish(ctx context.Context, transaction *models.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.published = append(p.published, *transaction)
	p.logger.Debug("event published", "transaction", transaction.ID)
	return nil
}

// FailWith makes every subsequent publish fail with err; pass nil to
// restore normal behavior.
func (p *MemoryPublisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failWith = err
}

// Published returns a copy of the recorded transactions.
func (p *MemoryPublisher) Published() []models.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Transaction, len(p.published))
	copy(out, p.published)
	return out
}
