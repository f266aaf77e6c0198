// Package transaction applies INBOUND and OUTBOUND transactions to an
// account's currency balances, records the resulting ledger entry and
// notifies the event bus.
package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"accountsvc/internal/events"
	"accountsvc/internal/models"
	"accountsvc/internal/repositories"
	"accountsvc/internal/repositories/cache"
)

type Service interface {
	// Process applies the transaction and returns the stored ledger
	// entry. The balance mutation and the ledger append commit
	// atomically; the event publish happens after commit and its
	// failure does not fail the request.
	Process(ctx context.Context, req Request) (*models.Transaction, error)
	// ListByAccount returns the account's ledger history in insertion
	// order.
	ListByAccount(ctx context.Context, accountID string) ([]models.Transaction, error)
}

type service struct {
	uow       repositories.UnitOfWork
	ledger    repositories.LedgerRepository
	publisher events.Publisher
	cache     cache.Service
	locks     *accountLocker
	logger    *slog.Logger
}

func NewService(
	uow repositories.UnitOfWork,
	ledger repositories.LedgerRepository,
	publisher events.Publisher,
	cacheSvc cache.Service,
	logger *slog.Logger,
) Service {
	if uow == nil {
		panic("unit of work is required")
	}
	if ledger == nil {
		panic("ledger repository is required")
	}
	if publisher == nil {
		panic("publisher is required")
	}
	return &service{
		uow:       uow,
		ledger:    ledger,
		publisher: publisher,
		cache:     cacheSvc,
		locks:     newAccountLocker(),
		logger:    logger.With("service", "transaction"),
	}
}

func (s *service) Process(ctx context.Context, req Request) (*models.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Serialize the read-modify-write per account; see accountLocker.
	unlock := s.locks.Lock(req.AccountID)
	defer unlock()

	var stored *models.Transaction
	err := s.uow.Do(ctx, func(accounts repositories.AccountRepository, ledger repositories.LedgerRepository) error {
		account, err := accounts.Get(ctx, req.AccountID)
		if err != nil {
			return err
		}

		balances := account.Balances.Clone()
		current, exists := balances[req.Currency]

		var resulting float64
		switch req.Type {
		case models.TransactionTypeInbound:
			resulting = current + req.Amount
			balances[req.Currency] = resulting
		case models.TransactionTypeOutbound:
			// An absent currency counts as a zero balance here but is
			// never materialized; only INBOUND creates entries.
			if !exists || current < req.Amount {
				return ErrInsufficientFunds
			}
			resulting = current - req.Amount
			balances[req.Currency] = resulting
		}

		account.Balances = balances
		if err := accounts.Update(ctx, account); err != nil {
			return fmt.Errorf("failed to persist balance: %w", err)
		}

		stored, err = ledger.Append(ctx, &models.Transaction{
			AccountID:       account.ID,
			Amount:          req.Amount,
			TransactionType: req.Type,
			Currency:        req.Currency,
			Balance:         resulting,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	// Best-effort notification, only after the entry is durable.
	if err := s.publisher.Publish(ctx, stored); err != nil {
		s.logger.Error("failed to publish transaction event",
			"transaction", stored.ID, "account", stored.AccountID, "error", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.AccountKey(req.AccountID)); err != nil {
			s.logger.Warn("failed to invalidate account cache", "account", req.AccountID, "error", err)
		}
	}

	s.logger.Info("transaction applied",
		"transaction", stored.ID,
		"account", stored.AccountID,
		"type", stored.TransactionType,
		"currency", stored.Currency,
		"balance", stored.Balance)
	return stored, nil
}

func (s *service) ListByAccount(ctx context.Context, accountID string) ([]models.Transaction, error) {
	if accountID == "" {
		return nil, ErrInvalidAccountID
	}
	return s.ledger.ListByAccount(ctx, accountID)
}
