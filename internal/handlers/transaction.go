package handlers

import (
	"errors"

	"accountsvc/internal/repositories"
	"accountsvc/internal/services/transaction"
	"accountsvc/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type transactionRequest struct {
	Account         string  `json:"account" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	TransactionType string  `json:"transactionType" validate:"required,oneof=INBOUND OUTBOUND"`
	Currency        string  `json:"currency" validate:"required,len=3,alpha,uppercase"`
}

type TransactionHandler struct {
	service  transaction.Service
	validate *validator.Validate
}

func NewTransactionHandler(service transaction.Service) *TransactionHandler {
	return &TransactionHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var input transactionRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	stored, err := h.service.Process(c.Context(), transaction.Request{
		AccountID: input.Account,
		Amount:    input.Amount,
		Type:      input.TransactionType,
		Currency:  input.Currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAccountNotFound):
			return utils.NotFound(c, "Account not found")
		case errors.Is(err, transaction.ErrInsufficientFunds):
			return utils.BadRequest(c, "Insufficient funds")
		case errors.Is(err, transaction.ErrInvalidAmount),
			errors.Is(err, transaction.ErrInvalidType),
			errors.Is(err, transaction.ErrInvalidCurrency),
			errors.Is(err, transaction.ErrInvalidAccountID):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Transaction failed")
		}
	}

	return c.Status(fiber.StatusOK).JSON(stored)
}

func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.ListByAccount(c.Context(), c.Params("account"))
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidAccountID) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "Failed to list transactions")
	}
	return c.JSON(transactions)
}
