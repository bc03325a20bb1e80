package http

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

// Request Models

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// transactionRequest serves both create and partial update.
// Absent fields stay nil.
type transactionRequest struct {
	Type        *string    `json:"type"`
	Amount      *apiAmount `json:"amount"`
	Category    *string    `json:"category"`
	Description *string    `json:"description"`
	Date        *apiDate   `json:"date"`
}

type investmentRequest struct {
	Name     *string    `json:"name"`
	Amount   *apiAmount `json:"amount"`
	Category *string    `json:"category"`
	Date     *apiDate   `json:"date"`
	Notes    *string    `json:"notes"`
}

// apiAmount reads a JSON number or a decimal string and writes an exact JSON number
type apiAmount struct {
	decimal.Decimal
}

func (a apiAmount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *apiAmount) UnmarshalJSON(b []byte) error {
	if err := a.Decimal.UnmarshalJSON(b); err != nil {
		return domain.NewValidationError("amount", "amount must be a number")
	}
	return nil
}

// apiDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date
type apiDate struct {
	time.Time
}

func (d *apiDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.NewValidationError("date", "date must be a string")
	}
	t, _, err := domain.ParseDate("date", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// decodeBody unmarshals a JSON request body. Malformed input is a validation error.
func decodeBody(c *fiber.Ctx, v interface{}) error {
	if err := json.Unmarshal(c.Body(), v); err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr
		}
		return domain.NewValidationError("body", "invalid request body")
	}
	return nil
}

func (r transactionRequest) patch() domain.TransactionPatch {
	var p domain.TransactionPatch
	if r.Type != nil {
		t := domain.TransactionType(strings.TrimSpace(*r.Type))
		p.Type = &t
	}
	if r.Amount != nil {
		p.Amount = &r.Amount.Decimal
	}
	p.Category = r.Category
	p.Description = r.Description
	if r.Date != nil {
		p.Date = &r.Date.Time
	}
	return p
}

func (r investmentRequest) patch() domain.InvestmentPatch {
	var p domain.InvestmentPatch
	p.Name = r.Name
	if r.Amount != nil {
		p.Amount = &r.Amount.Decimal
	}
	p.Category = r.Category
	if r.Date != nil {
		p.Date = &r.Date.Time
	}
	p.Notes = r.Notes
	return p
}

func valueOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Response Models

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type transactionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Amount      apiAmount `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type investmentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Amount    apiAmount `json:"amount"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type typeTotalResponse struct {
	Type  string    `json:"type"`
	Total apiAmount `json:"total"`
	Count int       `json:"count"`
}

type categoryTotalResponse struct {
	Category string    `json:"category"`
	Total    apiAmount `json:"total"`
	Count    int       `json:"count"`
}

type dashboardResponse struct {
	Transactions struct {
		Income  apiAmount             `json:"income"`
		Expense apiAmount             `json:"expense"`
		Recent  []transactionResponse `json:"recent"`
	} `json:"transactions"`
	Investments struct {
		Total      apiAmount               `json:"total"`
		ByCategory []labelledTotalResponse `json:"byCategory"`
	} `json:"investments"`
}

type labelledTotalResponse struct {
	Category string    `json:"category"`
	Name     string    `json:"name"`
	Total    apiAmount `json:"total"`
}

type categoriesResponse struct {
	Income     []domain.Category `json:"income"`
	Expense    []domain.Category `json:"expense"`
	Investment []domain.Category `json:"investment"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func newTransactionResponse(t *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Type:        string(t.Type),
		Amount:      apiAmount{t.Amount},
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func newTransactionList(txs []*domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, newTransactionResponse(t))
	}
	return out
}

func newInvestmentResponse(i *domain.Investment) investmentResponse {
	return investmentResponse{
		ID:        i.ID.String(),
		UserID:    i.UserID.String(),
		Name:      i.Name,
		Amount:    apiAmount{i.Amount},
		Category:  i.Category,
		Date:      i.Date,
		Notes:     i.Notes,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func newInvestmentList(invs []*domain.Investment) []investmentResponse {
	out := make([]investmentResponse, 0, len(invs))
	for _, i := range invs {
		out = append(out, newInvestmentResponse(i))
	}
	return out
}

func newDashboardResponse(stats *domain.DashboardStats) dashboardResponse {
	var resp dashboardResponse
	resp.Transactions.Income = apiAmount{stats.Transactions.Income}
	resp.Transactions.Expense = apiAmount{stats.Transactions.Expense}
	resp.Transactions.Recent = newTransactionList(stats.Transactions.Recent)
	resp.Investments.Total = apiAmount{stats.Investments.Total}
	resp.Investments.ByCategory = make([]labelledTotalResponse, 0, len(stats.Investments.ByCategory))
	for _, ct := range stats.Investments.ByCategory {
		resp.Investments.ByCategory = append(resp.Investments.ByCategory, labelledTotalResponse{
			Category: ct.Category,
			Name:     ct.Name,
			Total:    apiAmount{ct.Total},
		})
	}
	return resp
}
