package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow represents a single ledger account in a trial balance.
type TrialBalanceRow struct {
	LedgerAccountID string          `json:"ledgerAccountID"`
	AccountName     string          `json:"accountName"`
	AccountCode     *string         `json:"accountCode"`
	Nature          AccountNature   `json:"nature"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	LedgerAccountID string          `json:"ledgerAccountID"`
	Name            string          `json:"name"`
	NetAmount       decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report. Direct income/expense
// (affects_gross_profit groups) feed the gross profit line; the rest feed
// net profit.
type PAndLReport struct {
	DirectIncome    []AccountAmount `json:"directIncome"`
	DirectExpenses  []AccountAmount `json:"directExpenses"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	IndirectIncome  []AccountAmount `json:"indirectIncome"`
	IndirectExpense []AccountAmount `json:"indirectExpenses"`
	NetProfit       decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport represents a balance sheet report.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
}

// CostCenterPAndLRow aggregates income and expense per cost center.
type CostCenterPAndLRow struct {
	CostCenterID string          `json:"costCenterID"`
	Name         string          `json:"name"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}
