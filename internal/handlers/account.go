// Package handlers contains the fiber HTTP handlers. Handlers parse
// and validate request bodies, call the services and map service
// errors onto status codes; no business logic lives here.
package handlers

import (
	"errors"
	"sort"

	"accountsvc/internal/models"
	"accountsvc/internal/repositories"
	"accountsvc/internal/services/account"
	"accountsvc/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// balanceEntry is the wire shape of one currency balance. Accounts
// store balances as a keyed map; the API exposes them as a list of
// pairs.
type balanceEntry struct {
	Amount   float64 `json:"amount" validate:"gte=0"`
	Currency string  `json:"currency" validate:"required,len=3,alpha,uppercase"`
}

type accountRequest struct {
	Owner   string         `json:"owner" validate:"required"`
	Balance []balanceEntry `json:"balance" validate:"dive"`
}

type accountResponse struct {
	ID      string         `json:"id"`
	Owner   string         `json:"owner"`
	Balance []balanceEntry `json:"balance"`
}

type AccountHandler struct {
	service  account.Service
	validate *validator.Validate
}

func NewAccountHandler(service account.Service) *AccountHandler {
	return &AccountHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.service.List(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to list accounts")
	}

	out := make([]accountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccountResponse(&accounts[i]))
	}
	return c.JSON(out)
}

func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var input accountRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	balances, err := toBalanceMap(input.Balance)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	created, err := h.service.Create(c.Context(), input.Owner, balances)
	if err != nil {
		return mapAccountError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toAccountResponse(created))
}

func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	acct, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapAccountError(c, err)
	}
	return c.JSON(toAccountResponse(acct))
}

func (h *AccountHandler) UpdateAccount(c *fiber.Ctx) error {
	var input accountRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	balances, err := toBalanceMap(input.Balance)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	updated, err := h.service.Update(c.Context(), c.Params("id"), input.Owner, balances)
	if err != nil {
		return mapAccountError(c, err)
	}
	return c.JSON(toAccountResponse(updated))
}

func mapAccountError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrAccountNotFound):
		return utils.NotFound(c, "Account not found")
	case errors.Is(err, account.ErrOwnerRequired),
		errors.Is(err, account.ErrNegativeBalance),
		errors.Is(err, account.ErrInvalidCurrency):
		return utils.BadRequest(c, err.Error())
	default:
		return utils.InternalError(c, "Account operation failed")
	}
}

func toBalanceMap(entries []balanceEntry) (models.BalanceMap, error) {
	balances := make(models.BalanceMap, len(entries))
	for _, e := range entries {
		if _, ok := balances[e.Currency]; ok {
			return nil, errors.New("duplicate currency " + e.Currency)
		}
		balances[e.Currency] = e.Amount
	}
	return balances, nil
}

func toAccountResponse(a *models.Account) accountResponse {
	entries := make([]balanceEntry, 0, len(a.Balances))
	for currency, amount := range a.Balances {
		entries = append(entries, balanceEntry{Amount: amount, Currency: currency})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Currency < entries[j].Currency })
	return accountResponse{
		ID:      a.ID,
		Owner:   a.Owner,
		Balance: entries,
	}
}
