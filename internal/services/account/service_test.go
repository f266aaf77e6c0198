package account

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"accountsvc/internal/models"
	"accountsvc/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: make(map[string]*models.Account)}
}

func (r *fakeRepo) Get(ctx context.Context, id string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	copied := *account
	copied.Balances = account.Balances.Clone()
	return &copied, nil
}

func (r *fakeRepo) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	copied := *account
	copied.Balances = account.Balances.Clone()
	r.accounts[account.ID] = &copied
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return repositories.ErrAccountNotFound
	}
	copied := *account
	copied.Balances = account.Balances.Clone()
	r.accounts[account.ID] = &copied
	return nil
}

func (r *fakeRepo) List(ctx context.Context) ([]models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, *account)
	}
	return out, nil
}

// fakeCache records sets and deletes so invalidation can be asserted.
type fakeCache struct {
	mu      sync.Mutex
	store   map[string]*models.Account
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]*models.Account)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if account, ok := value.(*models.Account); ok {
		copied := *account
		c.store[key] = &copied
	}
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	account, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if out, ok := dest.(*models.Account); ok {
		*out = *account
		return true, nil
	}
	return false, nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.store, key)
		c.deleted = append(c.deleted, key)
	}
	return nil
}

func (c *fakeCache) Close() error { return nil }

func newService(repo *fakeRepo, cacheSvc *fakeCache) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cacheSvc == nil {
		return NewService(repo, nil, logger)
	}
	return NewService(repo, cacheSvc, logger)
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		owner    string
		balances models.BalanceMap
		wantErr  error
	}{
		{name: "no balances", owner: "alice"},
		{name: "with balances", owner: "bob", balances: models.BalanceMap{"USD": 100, "EUR": 5}},
		{name: "missing owner", owner: "", wantErr: ErrOwnerRequired},
		{name: "negative amount", owner: "eve", balances: models.BalanceMap{"USD": -1}, wantErr: ErrNegativeBalance},
		{name: "bad currency", owner: "eve", balances: models.BalanceMap{"usd": 1}, wantErr: ErrInvalidCurrency},
		{name: "long currency", owner: "eve", balances: models.BalanceMap{"USDT": 1}, wantErr: ErrInvalidCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newService(newFakeRepo(), nil)
			created, err := s.Create(context.Background(), tt.owner, tt.balances)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.Equal(t, tt.owner, created.Owner)
			assert.NotNil(t, created.Balances)
		})
	}
}

func TestCreate_SharedOwnerAllowed(t *testing.T) {
	s := newService(newFakeRepo(), nil)

	first, err := s.Create(context.Background(), "alice", nil)
	require.NoError(t, err)
	second, err := s.Create(context.Background(), "alice", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestGet_CachesResult(t *testing.T) {
	repo := newFakeRepo()
	cacheSvc := newFakeCache()
	s := newService(repo, cacheSvc)

	created, err := s.Create(context.Background(), "alice", models.BalanceMap{"USD": 10})
	require.NoError(t, err)

	got, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Second read is served from cache even if the repo changes.
	repo.mu.Lock()
	repo.accounts[created.ID].Owner = "changed-behind-cache"
	repo.mu.Unlock()

	got, err = s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Owner)
}

func TestGet_NotFound(t *testing.T) {
	s := newService(newFakeRepo(), nil)
	_, err := s.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)
}

func TestUpdate_ReplacesAndInvalidates(t *testing.T) {
	repo := newFakeRepo()
	cacheSvc := newFakeCache()
	s := newService(repo, cacheSvc)

	created, err := s.Create(context.Background(), "alice", models.BalanceMap{"USD": 10, "EUR": 5})
	require.NoError(t, err)

	// Prime the cache.
	_, err = s.Get(context.Background(), created.ID)
	require.NoError(t, err)

	updated, err := s.Update(context.Background(), created.ID, "alice b.", models.BalanceMap{"GBP": 1})
	require.NoError(t, err)

	// Full replace, not a merge.
	assert.Equal(t, "alice b.", updated.Owner)
	assert.Equal(t, models.BalanceMap{"GBP": 1}, updated.Balances)
	assert.NotEmpty(t, cacheSvc.deleted)

	got, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BalanceMap{"GBP": 1}, got.Balances)
}

func TestUpdate_NotFound(t *testing.T) {
	s := newService(newFakeRepo(), nil)
	_, err := s.Update(context.Background(), uuid.NewString(), "alice", nil)
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)
}

func TestList(t *testing.T) {
	s := newService(newFakeRepo(), nil)

	for _, owner := range []string{"alice", "bob"} {
		_, err := s.Create(context.Background(), owner, nil)
		require.NoError(t, err)
	}

	accounts, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}
