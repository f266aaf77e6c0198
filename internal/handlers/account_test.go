package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"accountsvc/internal/models"
	"accountsvc/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccountService struct {
	account *models.Account
	list    []models.Account
	err     error
}

func (s *stubAccountService) Get(ctx context.Context, id string) (*models.Account, error) {
	return s.account, s.err
}

func (s *stubAccountService) Create(ctx context.Context, owner string, balances models.BalanceMap) (*models.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Account{ID: "acct-1", Owner: owner, Balances: balances}, nil
}

func (s *stubAccountService) Update(ctx context.Context, id, owner string, balances models.BalanceMap) (*models.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Account{ID: id, Owner: owner, Balances: balances}, nil
}

func (s *stubAccountService) List(ctx context.Context) ([]models.Account, error) {
	return s.list, s.err
}

func newAccountApp(svc *stubAccountService) *fiber.App {
	app := fiber.New()
	h := NewAccountHandler(svc)
	app.Get("/accounts", h.ListAccounts)
	app.Post("/accounts", h.CreateAccount)
	app.Get("/accounts/:id", h.GetAccount)
	app.Put("/accounts/:id", h.UpdateAccount)
	return app
}

func TestCreateAccount_OK(t *testing.T) {
	app := newAccountApp(&stubAccountService{})

	body, _ := json.Marshal(fiber.Map{
		"owner": "Alice",
		"balance": []fiber.Map{
			{"amount": 100, "currency": "USD"},
			{"amount": 50, "currency": "EUR"},
		},
	})
	req := httptest.NewRequest("POST", "/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got accountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "acct-1", got.ID)
	assert.Equal(t, "Alice", got.Owner)
	// Entries come back sorted by currency.
	require.Len(t, got.Balance, 2)
	assert.Equal(t, balanceEntry{Amount: 50, Currency: "EUR"}, got.Balance[0])
	assert.Equal(t, balanceEntry{Amount: 100, Currency: "USD"}, got.Balance[1])
}

func TestCreateAccount_Rejected(t *testing.T) {
	app := newAccountApp(&stubAccountService{})

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"missing owner", fiber.Map{"balance": []fiber.Map{{"amount": 1, "currency": "USD"}}}},
		{"negative balance", fiber.Map{"owner": "Alice", "balance": []fiber.Map{{"amount": -1, "currency": "USD"}}}},
		{"bad currency", fiber.Map{"owner": "Alice", "balance": []fiber.Map{{"amount": 1, "currency": "US"}}}},
		{"duplicate currency", fiber.Map{"owner": "Alice", "balance": []fiber.Map{{"amount": 1, "currency": "USD"}, {"amount": 2, "currency": "USD"}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.body)
			req := httptest.NewRequest("POST", "/accounts", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetAccount_NotFound(t *testing.T) {
	app := newAccountApp(&stubAccountService{err: repositories.ErrAccountNotFound})

	req := httptest.NewRequest("GET", "/accounts/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Account not found", payload["message"])
}

func TestListAccounts(t *testing.T) {
	app := newAccountApp(&stubAccountService{list: []models.Account{
		{ID: "acct-1", Owner: "Alice", Balances: models.BalanceMap{"USD": 100}},
		{ID: "acct-2", Owner: "Bob", Balances: models.BalanceMap{}},
	}})

	req := httptest.NewRequest("GET", "/accounts", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got []accountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].Owner)
	assert.Empty(t, got[1].Balance)
}

func TestUpdateAccount(t *testing.T) {
	app := newAccountApp(&stubAccountService{})

	body, _ := json.Marshal(fiber.Map{
		"owner":   "Alice B",
		"balance": []fiber.Map{{"amount": 25, "currency": "GBP"}},
	})
	req := httptest.NewRequest("PUT", "/accounts/acct-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got accountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "acct-1", got.ID)
	assert.Equal(t, "Alice B", got.Owner)
	assert.Equal(t, []balanceEntry{{Amount: 25, Currency: "GBP"}}, got.Balance)
}
