package domain_test

import (
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestFinancialYear_Contains(t *testing.T) {
	fy := domain.FinancialYear{
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"first day", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), true},
		{"last day", time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC), true},
		{"mid year", time.Date(2026, 11, 14, 0, 0, 0, 0, time.UTC), true},
		{"day before start", time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), false},
		{"day after end", time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fy.Contains(tt.date))
		})
	}
}

func TestFinancialYear_Overlaps(t *testing.T) {
	fy := domain.FinancialYear{
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	next := domain.FinancialYear{
		StartDate: time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2028, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	straddling := domain.FinancialYear{
		StartDate: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.False(t, fy.Overlaps(next))
	assert.True(t, fy.Overlaps(straddling))
	assert.True(t, straddling.Overlaps(fy))
}
