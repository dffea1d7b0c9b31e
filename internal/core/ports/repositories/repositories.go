package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	BusinessRepo       BusinessRepositoryFacade
	UserRepo           UserRepositoryFacade
	AccountGroupRepo   AccountGroupRepositoryFacade
	LedgerAccountRepo  LedgerAccountRepositoryFacade
	PartyRepo          PartyRepositoryFacade
	CostCenterRepo     CostCenterRepositoryFacade
	VoucherTypeRepo    VoucherTypeRepositoryFacade
	FinancialYearRepo  FinancialYearRepositoryFacade
	VoucherRepo        VoucherRepositoryWithTx
	ReconciliationRepo ReconciliationRepositoryFacade
	ReportingRepo      ReportingRepository
}
