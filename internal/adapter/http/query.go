package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

// dateRangeQuery reads startDate and endDate
func dateRangeQuery(c *fiber.Ctx) (domain.DateRange, error) {
	return domain.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
}

// listFilterQuery reads the list filters. A client supplied limit is ignored;
// the services always apply domain.MaxListResults.
func listFilterQuery(c *fiber.Ctx) (domain.ListFilter, error) {
	var f domain.ListFilter

	if v := strings.TrimSpace(c.Query("type")); v != "" {
		t := domain.TransactionType(v)
		f.Type = &t
	}
	f.Category = strings.TrimSpace(c.Query("category"))

	r, err := dateRangeQuery(c)
	if err != nil {
		return f, err
	}
	f.Range = r

	return f, nil
}

// recordID parses the :id path parameter. A malformed id cannot match any
// record, so it is reported as notFound.
func recordID(c *fiber.Ctx, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}
