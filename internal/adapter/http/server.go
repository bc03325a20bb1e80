// Package http is the REST transport of the finance tracker
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/usecase/auth"
	"github.com/simaogato/fintrack-backend/internal/usecase/dashboard"
	"github.com/simaogato/fintrack-backend/internal/usecase/investment"
	"github.com/simaogato/fintrack-backend/internal/usecase/transaction"
)

// Services are the use cases exposed over REST
type Services struct {
	Auth         *auth.AuthService
	Transactions *transaction.TransactionService
	Investments  *investment.InvestmentService
	Dashboard    *dashboard.DashboardService
	Categories   *domain.CategoryRegistry
}

// Options tune the Fiber app
type Options struct {
	CORSAllowOrigins string
	Logger           zerolog.Logger
}

// NewApp builds the Fiber app with middleware and routes.
// Every route except health, categories, register and login sits behind AccessGate.
func NewApp(svc Services, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(requestid.New())
	app.Use(RequestLogger(opts.Logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Auth-Token",
	}))

	authHandler := &AuthHandler{Service: svc.Auth}
	transactionHandler := &TransactionHandler{Service: svc.Transactions}
	investmentHandler := &InvestmentHandler{Service: svc.Investments}
	dashboardHandler := &DashboardHandler{Service: svc.Dashboard}
	categoryHandler := &CategoryHandler{Registry: svc.Categories}

	gate := AccessGate(svc.Auth)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public
	api.Get("/categories", categoryHandler.List)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Protected
	api.Get("/auth/me", gate, authHandler.Me)
	api.Put("/auth/password", gate, authHandler.ChangePassword)

	transactions := api.Group("/transactions", gate)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/stats", transactionHandler.Stats)
	transactions.Get("/:id", transactionHandler.Get)
	transactions.Patch("/:id", transactionHandler.Update)
	transactions.Put("/:id", transactionHandler.Update)
	transactions.Delete("/:id", transactionHandler.Delete)

	investments := api.Group("/investments", gate)
	investments.Post("/", investmentHandler.Create)
	investments.Get("/", investmentHandler.List)
	investments.Get("/stats", investmentHandler.Stats)
	investments.Get("/:id", investmentHandler.Get)
	investments.Patch("/:id", investmentHandler.Update)
	investments.Put("/:id", investmentHandler.Update)
	investments.Delete("/:id", investmentHandler.Delete)

	api.Get("/dashboard/stats", gate, dashboardHandler.Stats)

	return app
}
