package postgres

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/simaogato/fintrack-backend/internal/domain"
)

// whereBuilder accumulates AND-ed predicates with numbered placeholders
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

// ownedBy starts a predicate list with the owner restriction every query needs
func ownedBy(ownerID uuid.UUID) *whereBuilder {
	w := &whereBuilder{}
	w.add("user_id = $%d", ownerID)
	return w
}

// add appends a clause; %d in clause is replaced by the placeholder number of arg
func (w *whereBuilder) add(clause string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

func (w *whereBuilder) dateRange(r domain.DateRange) {
	if r.Start != nil {
		w.add("date >= $%d", *r.Start)
	}
	if r.End != nil {
		w.add("date <= $%d", *r.End)
	}
}

func (w *whereBuilder) String() string {
	return strings.Join(w.clauses, " AND ")
}

// limit appends a LIMIT argument and returns its placeholder
func (w *whereBuilder) limit(n int) string {
	w.args = append(w.args, n)
	return fmt.Sprintf("$%d", len(w.args))
}
