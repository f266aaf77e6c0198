// Package routes wires repositories, services and handlers onto the
// fiber app.
package routes

import (
	"log/slog"

	"accountsvc/internal/events"
	"accountsvc/internal/handlers"
	"accountsvc/internal/middleware"
	"accountsvc/internal/models"
	"accountsvc/internal/repositories"
	"accountsvc/internal/repositories/cache"
	"accountsvc/internal/services/account"
	"accountsvc/internal/services/auth"
	"accountsvc/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes, building each
// service with its repositories.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheSvc cache.Service, publisher events.Publisher, logger *slog.Logger) {
	accountRepo := repositories.NewAccountRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	userRepo := repositories.NewUserRepository(db)
	uow := repositories.NewUnitOfWork(db)

	authService := auth.NewService(userRepo, logger)
	accountService := account.NewService(accountRepo, cacheSvc, logger)
	transactionService := transaction.NewService(uow, ledgerRepo, publisher, cacheSvc, logger)

	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World!")
	})

	// Public endpoints
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)

	// Account CRUD, any authenticated role
	accounts := app.Group("/accounts", middleware.Authenticate, middleware.RequireRole(models.RoleUser))
	accounts.Get("/", accountHandler.ListAccounts)
	accounts.Post("/", accountHandler.CreateAccount)
	accounts.Get("/:id", accountHandler.GetAccount)
	accounts.Put("/:id", accountHandler.UpdateAccount)

	// Transactions, admin only
	app.Post("/transaction",
		middleware.Authenticate, middleware.RequireRole(models.RoleAdmin),
		transactionHandler.CreateTransaction)
	app.Get("/transactions/:account",
		middleware.Authenticate, middleware.RequireRole(models.RoleAdmin),
		transactionHandler.ListTransactions)
}
