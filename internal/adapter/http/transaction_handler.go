package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/usecase/transaction"
)

// TransactionHandler serves the authenticated user's transactions
type TransactionHandler struct {
	Service *transaction.TransactionService
}

// Create API
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req transactionRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	input := transaction.CreateTransactionInput{
		Type:        domain.TransactionType(valueOr(req.Type)),
		Category:    valueOr(req.Category),
		Description: valueOr(req.Description),
	}
	if req.Amount != nil {
		input.Amount = req.Amount.Decimal
	}
	if req.Date != nil {
		input.Date = &req.Date.Time
	}

	tx, err := h.Service.Create(c.UserContext(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newTransactionResponse(tx))
}

// List API
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	filter, err := listFilterQuery(c)
	if err != nil {
		return err
	}

	txs, err := h.Service.List(c.UserContext(), userID, filter)
	if err != nil {
		return err
	}

	return c.JSON(newTransactionList(txs))
}

// Get API
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := recordID(c, domain.ErrTransactionNotFound)
	if err != nil {
		return err
	}

	tx, err := h.Service.Get(c.UserContext(), userID, id)
	if err != nil {
		return err
	}

	return c.JSON(newTransactionResponse(tx))
}

// Update API. Serves both PATCH and PUT; only the fields present are changed.
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := recordID(c, domain.ErrTransactionNotFound)
	if err != nil {
		return err
	}

	var req transactionRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	tx, err := h.Service.Update(c.UserContext(), userID, id, req.patch())
	if err != nil {
		return err
	}

	return c.JSON(newTransactionResponse(tx))
}

// Delete API
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := recordID(c, domain.ErrTransactionNotFound)
	if err != nil {
		return err
	}

	if err := h.Service.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}

	return c.JSON(messageResponse{Message: "Transaction deleted"})
}

// Stats returns totals and counts grouped by type
func (h *TransactionHandler) Stats(c *fiber.Ctx) error {
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

	out := make([]typeTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, typeTotalResponse{Type: t.Key, Total: apiAmount{t.Total}, Count: t.Count})
	}
	return c.JSON(out)
}
