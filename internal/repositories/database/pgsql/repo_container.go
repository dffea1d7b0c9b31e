package pgsql

import (
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	businessRepo := newPgxBusinessRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	accountGroupRepo := newPgxAccountGroupRepository(dbPool)
	ledgerAccountRepo := newPgxLedgerAccountRepository(dbPool)
	partyRepo := newPgxPartyRepository(dbPool, ledgerAccountRepo)
	costCenterRepo := newPgxCostCenterRepository(dbPool)
	voucherTypeRepo := newPgxVoucherTypeRepository(dbPool)
	financialYearRepo := newPgxFinancialYearRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		BusinessRepo:       businessRepo,
		UserRepo:           userRepo,
		AccountGroupRepo:   accountGroupRepo,
		LedgerAccountRepo:  ledgerAccountRepo,
		PartyRepo:          partyRepo,
		CostCenterRepo:     costCenterRepo,
		VoucherTypeRepo:    voucherTypeRepo,
		FinancialYearRepo:  financialYearRepo,
		VoucherRepo:        voucherRepo,
		ReconciliationRepo: reconciliationRepo,
		ReportingRepo:      reportingRepo,
	}
}
