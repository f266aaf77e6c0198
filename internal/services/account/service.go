// Package account implements account CRUD over the account store with
// a Redis read-through cache. Balance-affecting writes live in the
// transaction service, not here.
package account

import (
	"context"
	"log/slog"

	"accountsvc/internal/models"
	"accountsvc/internal/repositories"
	"accountsvc/internal/repositories/cache"
)

type Service interface {
	Get(ctx context.Context, id string) (*models.Account, error)
	Create(ctx context.Context, owner string, balances models.BalanceMap) (*models.Account, error)
	// Update replaces owner and balances wholesale.
	Update(ctx context.Context, id, owner string, balances models.BalanceMap) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
}

type service struct {
	repo   repositories.AccountRepository
	cache  cache.Service
	logger *slog.Logger
}

func NewService(repo repositories.AccountRepository, cacheSvc cache.Service, logger *slog.Logger) Service {
	if repo == nil {
		panic("account repository is required")
	}
	return &service{
		repo:   repo,
		cache:  cacheSvc,
		logger: logger.With("service", "account"),
	}
}

func (s *service) Get(ctx context.Context, id string) (*models.Account, error) {
	if s.cache != nil {
		var cached models.Account
		if found, err := s.cache.Get(ctx, cache.AccountKey(id), &cached); err == nil && found {
			return &cached, nil
		}
	}

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.AccountKey(id), account); err != nil {
			s.logger.Warn("failed to cache account", "account", id, "error", err)
		}
	}
	return account, nil
}

func (s *service) Create(ctx context.Context, owner string, balances models.BalanceMap) (*models.Account, error) {
	if err := validate(owner, balances); err != nil {
		return nil, err
	}
	if balances == nil {
		balances = models.BalanceMap{}
	}

	account := &models.Account{Owner: owner, Balances: balances}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account created", "account", account.ID, "owner", owner)
	return account, nil
}

func (s *service) Update(ctx context.Context, id, owner string, balances models.BalanceMap) (*models.Account, error) {
	if err := validate(owner, balances); err != nil {
		return nil, err
	}

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	account.Owner = owner
	account.Balances = balances
	if account.Balances == nil {
		account.Balances = models.BalanceMap{}
	}

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.AccountKey(id)); err != nil {
			s.logger.Warn("failed to invalidate account cache", "account", id, "error", err)
		}
	}
	return account, nil
}

func (s *service) List(ctx context.Context) ([]models.Account, error) {
	return s.repo.List(ctx)
}

func validate(owner string, balances models.BalanceMap) error {
	if owner == "" {
		return ErrOwnerRequired
	}
	for currency, amount := range balances {
		if !validCurrency(currency) {
			return ErrInvalidCurrency
		}
		if amount < 0 {
			return ErrNegativeBalance
		}
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
