package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// CreateFinancialYearRequest defines the payload for creating a financial year.
type CreateFinancialYearRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// FinancialYearResponse defines the data returned for a financial year.
type FinancialYearResponse struct {
	FinancialYearID string    `json:"financialYearID"`
	Name            string    `json:"name"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	IsCurrent       bool      `json:"isCurrent"`
	IsLocked        bool      `json:"isLocked"`
}

// ToFinancialYearResponse converts a domain.FinancialYear to its response DTO.
func ToFinancialYearResponse(fy *domain.FinancialYear) FinancialYearResponse {
	return FinancialYearResponse{
		FinancialYearID: fy.FinancialYearID,
		Name:            fy.Name,
		StartDate:       fy.StartDate,
		EndDate:         fy.EndDate,
		IsCurrent:       fy.IsCurrent,
		IsLocked:        fy.IsLocked,
	}
}
