package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingBusinessAuthorizer sets the business authorizer for the reporting service.
func WithReportingBusinessAuthorizer(authorizer portssvc.BusinessAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.BusinessAuthorizer = authorizer
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func sumNetAmounts(rows []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.NetAmount)
	}
	return total
}

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, businessID string, asOf time.Time, userID string) ([]domain.TrialBalanceRow, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view trial balance report",
			slog.String("user_id", userID),
			slog.String("business_id", businessID))
		return nil, err
	}

	rows, err := s.reportingRepo.TrialBalance(ctx, businessID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("business_id", businessID),
			slog.String("as_of", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	s.LogInfo(ctx, "Trial balance report generated",
		slog.String("business_id", businessID),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// ProfitAndLoss generates a profit and loss report for a specific period.
// Accounts under gross-profit groups feed the gross profit line; the rest
// feed net profit.
func (s *reportingService) ProfitAndLoss(ctx context.Context, businessID string, from, to time.Time, userID string) (*domain.PAndLReport, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view profit and loss report",
			slog.String("user_id", userID),
			slog.String("business_id", businessID))
		return nil, err
	}

	direct := true
	indirect := false

	directIncome, err := s.reportingRepo.AccountNetAmounts(ctx, businessID, domain.NatureIncome, &direct, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve direct income: %w", err)
	}
	directExpenses, err := s.reportingRepo.AccountNetAmounts(ctx, businessID, domain.NatureExpense, &direct, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve direct expenses: %w", err)
	}
	indirectIncome, err := s.reportingRepo.AccountNetAmounts(ctx, businessID, domain.NatureIncome, &indirect, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve indirect income: %w", err)
	}
	indirectExpense, err := s.reportingRepo.AccountNetAmounts(ctx, businessID, domain.NatureExpense, &indirect, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve indirect expenses: %w", err)
	}

	grossProfit := sumNetAmounts(directIncome).Sub(sumNetAmounts(directExpenses))
	netProfit := grossProfit.Add(sumNetAmounts(indirectIncome)).Sub(sumNetAmounts(indirectExpense))

	report := &domain.PAndLReport{
		DirectIncome:    directIncome,
		DirectExpenses:  directExpenses,
		GrossProfit:     grossProfit,
		IndirectIncome:  indirectIncome,
		IndirectExpense: indirectExpense,
		NetProfit:       netProfit,
	}

	s.LogInfo(ctx, "Profit and loss report generated",
		slog.String("business_id", businessID),
		slog.String("gross_profit", grossProfit.String()),
		slog.String("net_profit", netProfit.String()))
	return report, nil
}

// BalanceSheet generates a balance sheet report as of a specific date.
// Retained earnings carry the lifetime net profit up to the date so the
// sheet always balances.
func (s *reportingService) BalanceSheet(ctx context.Context, businessID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view balance sheet report",
			slog.String("user_id", userID),
			slog.String("business_id", businessID))
		return nil, err
	}

	// Lifetime window up to the reporting date
	var epoch time.Time

	assets, err := s.reportingRepo.AccountNetAmounts(ctx, businessID, domain.NatureAssets, nil, epoch, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve assets: %w", err)
	}
	liabilities, err := s.reportingRepo.AccountNetAmounts(ctx, businessID, domain.NatureLiabilities, nil, epoch, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve liabilities: %w", err)
	}
	equity, err := s.reportingRepo.AccountNetAmounts(ctx, businessID, domain.NatureEquity, nil, epoch, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve equity: %w", err)
	}
	income, err := s.reportingRepo.AccountNetAmounts(ctx, businessID, domain.NatureIncome, nil, epoch, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve income: %w", err)
	}
	expenses, err := s.reportingRepo.AccountNetAmounts(ctx, businessID, domain.NatureExpense, nil, epoch, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve expenses: %w", err)
	}

	retainedEarnings := sumNetAmounts(income).Sub(sumNetAmounts(expenses))

	report := &domain.BalanceSheetReport{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      sumNetAmounts(assets),
		TotalLiabilities: sumNetAmounts(liabilities),
		TotalEquity:      sumNetAmounts(equity).Add(retainedEarnings),
		RetainedEarnings: retainedEarnings,
	}

	s.LogInfo(ctx, "Balance sheet report generated",
		slog.String("business_id", businessID),
		slog.String("total_assets", report.TotalAssets.String()),
		slog.String("retained_earnings", retainedEarnings.String()))
	return report, nil
}

// CostCenterProfitAndLoss generates per-cost-center income and expense totals
func (s *reportingService) CostCenterProfitAndLoss(ctx context.Context, businessID string, from, to time.Time, userID string) ([]domain.CostCenterPAndLRow, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view cost center report",
			slog.String("user_id", userID),
			slog.String("business_id", businessID))
		return nil, err
	}

	rows, err := s.reportingRepo.CostCenterTotals(ctx, businessID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve cost center totals",
			slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to retrieve cost center totals: %w", err)
	}

	for i := range rows {
		rows[i].NetProfit = rows[i].Income.Sub(rows[i].Expenses)
	}

	s.LogInfo(ctx, "Cost center profit and loss generated",
		slog.String("business_id", businessID),
		slog.Int("row_count", len(rows)))
	return rows, nil
}
