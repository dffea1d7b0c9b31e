package domain

import "time"

// FinancialYear bounds the vouchers of a business in time. Exactly one year
// per business is current, and year date ranges never overlap.
type FinancialYear struct {
	FinancialYearID string    `json:"financialYearID"` // Primary Key (UUID)
	BusinessID      string    `json:"businessID"`
	Name            string    `json:"name"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	IsCurrent       bool      `json:"isCurrent"`
	IsLocked        bool      `json:"isLocked"` // Blocks new/edited vouchers dated inside it
	AuditFields
}

// Contains reports whether the date falls inside the year (inclusive bounds,
// compared at day granularity).
func (fy FinancialYear) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	start := fy.StartDate.Truncate(24 * time.Hour)
	end := fy.EndDate.Truncate(24 * time.Hour)
	return !d.Before(start) && !d.After(end)
}

// Overlaps reports whether the two year ranges share any day.
func (fy FinancialYear) Overlaps(other FinancialYear) bool {
	return !fy.StartDate.After(other.EndDate) && !other.StartDate.After(fy.EndDate)
}
