// Package memory provides an in-process implementation of the repositories,
// used for local runs and end-to-end tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/fintrack-backend/internal/domain"
)

// Store holds every record in memory. Records are stored by value and copied
// on the way in and out.
type Store struct {
	mu  sync.RWMutex
	seq uint64

	users        map[uuid.UUID]domain.User
	emails       map[string]uuid.UUID
	transactions map[uuid.UUID]storedTransaction
	investments  map[uuid.UUID]storedInvestment
}

type storedTransaction struct {
	seq uint64
	tx  domain.Transaction
}

type storedInvestment struct {
	seq uint64
	inv domain.Investment
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]domain.User),
		emails:       make(map[string]uuid.UUID),
		transactions: make(map[uuid.UUID]storedTransaction),
		investments:  make(map[uuid.UUID]storedInvestment),
	}
}

func (s *Store) next() uint64 {
	s.seq++
	return s.seq
}

// checkContext maps a finished context onto the store errors
func checkContext(ctx context.Context) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrStoreTimeout
	}
	return err
}

// sortTotals orders group totals by key so results are stable
func sortTotals(groups map[string]*domain.GroupTotal) []domain.GroupTotal {
	out := make([]domain.GroupTotal, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func addToGroup(groups map[string]*domain.GroupTotal, key string, amount decimal.Decimal) {
	g, ok := groups[key]
	if !ok {
		g = &domain.GroupTotal{Key: key, Total: decimal.Zero}
		groups[key] = g
	}
	g.Total = g.Total.Add(amount)
	g.Count++
}
