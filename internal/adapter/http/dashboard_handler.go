package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/usecase/dashboard"
)

// DashboardHandler serves the dashboard summary
type DashboardHandler struct {
	Service *dashboard.DashboardService
}

// Stats API
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.Service.GetDashboardStats(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(newDashboardResponse(stats))
}

// CategoryHandler exposes the read-only category registry
type CategoryHandler struct {
	Registry *domain.CategoryRegistry
}

// List API
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(categoriesResponse{
		Income:     h.Registry.Categories(domain.TransactionTypeIncome),
		Expense:    h.Registry.Categories(domain.TransactionTypeExpense),
		Investment: h.Registry.Categories(domain.TransactionTypeInvestment),
	})
}
