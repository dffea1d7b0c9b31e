package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User           UserSvcFacade
	Token          TokenSvcFacade
	Business       BusinessSvcFacade
	AccountGroup   AccountGroupSvcFacade
	LedgerAccount  LedgerAccountSvcFacade
	Party          PartySvcFacade
	CostCenter     CostCenterSvcFacade
	VoucherType    VoucherTypeSvcFacade
	FinancialYear  FinancialYearSvcFacade
	Voucher        VoucherSvcFacade
	Reconciliation ReconciliationSvcFacade
	Reporting      ReportingService
}
