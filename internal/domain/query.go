package domain

import (
	"strings"
	"time"
)

const (
	// MaxListResults is the hard ceiling on records returned by a list query
	MaxListResults = 100

	// RecentTransactionsLimit is the size of the dashboard recent list
	RecentTransactionsLimit = 5
)

// DateRange bounds a query by record date. Both ends are inclusive and optional.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// ParseDate parses an RFC 3339 timestamp or a YYYY-MM-DD date (UTC midnight).
// dateOnly reports the second form.
func ParseDate(field, value string) (t time.Time, dateOnly bool, err error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, NewValidationError(field, field+" must be an RFC 3339 timestamp or YYYY-MM-DD")
}

// ParseDateRange builds a range from optional textual bounds.
// A date-only end covers the whole day.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange

	if strings.TrimSpace(start) != "" {
		t, _, err := ParseDate("startDate", start)
		if err != nil {
			return r, err
		}
		r.Start = &t
	}

	if strings.TrimSpace(end) != "" {
		t, dateOnly, err := ParseDate("endDate", end)
		if err != nil {
			return r, err
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		r.End = &t
	}

	return r, r.Validate()
}

// Validate rejects a range whose start is after its end
func (r DateRange) Validate() error {
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return NewValidationError("startDate", "startDate must not be after endDate")
	}
	return nil
}

// ListFilter narrows a list query. The owner predicate is always applied
// separately and cannot be expressed here.
type ListFilter struct {
	Type     *TransactionType // transactions only
	Category string
	Range    DateRange
	Limit    int
}

// EffectiveLimit returns the limit clamped to (0, MaxListResults]
func (f ListFilter) EffectiveLimit() int {
	if f.Limit <= 0 || f.Limit > MaxListResults {
		return MaxListResults
	}
	return f.Limit
}
