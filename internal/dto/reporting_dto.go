package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportPeriodParams are the query parameters common to period reports.
type ReportPeriodParams struct {
	FromDate time.Time `form:"fromDate" time_format:"2006-01-02" binding:"required"`
	ToDate   time.Time `form:"toDate" time_format:"2006-01-02" binding:"required"`
}

// AsOfParams are the query parameters for point-in-time reports.
type AsOfParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" binding:"required"`
}

// TrialBalanceResponse is the full trial balance with grand totals.
type TrialBalanceResponse struct {
	AsOf        time.Time                `json:"asOf"`
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
}

// ToTrialBalanceResponse wraps domain trial balance rows, summing grand totals.
func ToTrialBalanceResponse(asOf time.Time, rows []domain.TrialBalanceRow) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf:        asOf,
		Rows:        rows,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	if resp.Rows == nil {
		resp.Rows = []domain.TrialBalanceRow{}
	}
	for _, r := range rows {
		resp.TotalDebit = resp.TotalDebit.Add(r.Debit)
		resp.TotalCredit = resp.TotalCredit.Add(r.Credit)
	}
	return resp
}

// PAndLResponse is the profit and loss report for a period.
type PAndLResponse struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`
	domain.PAndLReport
}

// BalanceSheetResponse is the balance sheet as of a date.
type BalanceSheetResponse struct {
	AsOf time.Time `json:"asOf"`
	domain.BalanceSheetReport
}

// CostCenterPAndLResponse is a per-cost-center P&L summary for a period.
type CostCenterPAndLResponse struct {
	FromDate time.Time                   `json:"fromDate"`
	ToDate   time.Time                   `json:"toDate"`
	Rows     []domain.CostCenterPAndLRow `json:"rows"`
}
