package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/usecase/investment"
)

// InvestmentHandler serves the authenticated user's investments
type InvestmentHandler struct {
	Service *investment.InvestmentService
}

// Create API
func (h *InvestmentHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req investmentRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	input := investment.CreateInvestmentInput{
		Name:     valueOr(req.Name),
		Category: valueOr(req.Category),
		Notes:    valueOr(req.Notes),
	}
	if req.Amount != nil {
		input.Amount = req.Amount.Decimal
	}
	if req.Date != nil {
		input.Date = &req.Date.Time
	}

	inv, err := h.Service.Create(c.UserContext(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newInvestmentResponse(inv))
}

// List API
func (h *InvestmentHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	filter, err := listFilterQuery(c)
	if err != nil {
		return err
	}

	invs, err := h.Service.List(c.UserContext(), userID, filter)
	if err != nil {
		return err
	}

	return c.JSON(newInvestmentList(invs))
}

// Get API
func (h *InvestmentHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := recordID(c, domain.ErrInvestmentNotFound)
	if err != nil {
		return err
	}

	inv, err := h.Service.Get(c.UserContext(), userID, id)
	if err != nil {
		return err
	}

	return c.JSON(newInvestmentResponse(inv))
}

// Update API. Serves both PATCH and PUT.
func (h *InvestmentHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := recordID(c, domain.ErrInvestmentNotFound)
	if err != nil {
		return err
	}

	var req investmentRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	inv, err := h.Service.Update(c.UserContext(), userID, id, req.patch())
	if err != nil {
		return err
	}

	return c.JSON(newInvestmentResponse(inv))
}

// Delete API
func (h *InvestmentHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := recordID(c, domain.ErrInvestmentNotFound)
	if err != nil {
		return err
	}

	if err := h.Service.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}

	return c.JSON(messageResponse{Message: "Investment deleted"})
}

// Stats returns totals and counts grouped by category
func (h *InvestmentHandler) Stats(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	dateRange, err := dateRangeQuery(c)
	if err != nil {
		return err
	}

	totals, err := h.Service.Stats(c.UserContext(), userID, dateRange)
	if err != nil {
		return err
	}

	out := make([]categoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, categoryTotalResponse{Category: t.Key, Total: apiAmount{t.Total}, Count: t.Count})
	}
	return c.JSON(out)
}
