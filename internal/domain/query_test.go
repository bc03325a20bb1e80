package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateRange_Contains(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	r := DateRange{Start: &start, End: &end}

	assert.True(t, r.Contains(start), "start is inclusive")
	assert.True(t, r.Contains(end), "end is inclusive")
	assert.True(t, r.Contains(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(start.Add(-time.Second)))
	assert.False(t, r.Contains(end.Add(time.Second)))
	assert.True(t, DateRange{}.Contains(time.Now()), "open range matches everything")
}

func TestDateRange_Validate(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.AddDate(0, 1, 0)

	assert.NoError(t, DateRange{Start: &early, End: &late}.Validate())
	assert.NoError(t, DateRange{Start: &early, End: &early}.Validate())
	assert.True(t, errors.Is(DateRange{Start: &late, End: &early}.Validate(), ErrValidation))
}

func TestListFilter_EffectiveLimit(t *testing.T) {
	assert.Equal(t, MaxListResults, ListFilter{}.EffectiveLimit())
	assert.Equal(t, MaxListResults, ListFilter{Limit: 500}.EffectiveLimit())
	assert.Equal(t, 5, ListFilter{Limit: 5}.EffectiveLimit())
}

func TestErrors_NotFoundWrapping(t *testing.T) {
	assert.ErrorIs(t, ErrTransactionNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrInvestmentNotFound, ErrNotFound)
	assert.Equal(t, "transaction not found", ErrTransactionNotFound.Error())
	assert.ErrorIs(t, ErrEmailTaken, ErrValidation)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		want     time.Time
		dateOnly bool
		wantErr  bool
	}{
		{"date only", "2024-03-10", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), true, false},
		{"rfc3339 utc", "2024-03-10T12:30:00Z", time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC), false, false},
		{"rfc3339 offset normalized to utc", "2024-03-10T12:30:00+02:00", time.Date(2024, 3, 10, 10, 30, 0, 0, time.UTC), false, false},
		{"fractional seconds", " 2024-03-10T12:30:00.5Z ", time.Date(2024, 3, 10, 12, 30, 0, 500000000, time.UTC), false, false},
		{"day first", "10/03/2024", time.Time{}, false, true},
		{"empty", "", time.Time{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dateOnly, err := ParseDate("date", tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
			assert.Equal(t, tt.dateOnly, dateOnly)
		})
	}
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2024-01-01", "2024-01-31")
	assert.NoError(t, err)
	assert.True(t, r.Contains(time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC)), "date-only end covers the whole day")
	assert.False(t, r.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	r, err = ParseDateRange("", "2024-01-31T10:00:00Z")
	assert.NoError(t, err)
	assert.Nil(t, r.Start)
	assert.False(t, r.Contains(time.Date(2024, 1, 31, 10, 0, 1, 0, time.UTC)), "timestamp end is exact")

	r, err = ParseDateRange("", "")
	assert.NoError(t, err)
	assert.Equal(t, DateRange{}, r)

	_, err = ParseDateRange("2024-02-01", "2024-01-01")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseDateRange("soon", "")
	assert.ErrorIs(t, err, ErrValidation)
}
