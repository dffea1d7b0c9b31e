package services

import (
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The business service authorizes every other service, so it comes first
	container.Business = NewBusinessService(repos.BusinessRepo)
	authorizer := container.Business.(portssvc.BusinessAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)

	container.AccountGroup = NewAccountGroupService(repos.AccountGroupRepo, repos.LedgerAccountRepo, authorizer)
	container.LedgerAccount = NewLedgerAccountService(repos.LedgerAccountRepo, repos.AccountGroupRepo, repos.ReconciliationRepo, authorizer)
	container.Party = NewPartyService(repos.PartyRepo, repos.AccountGroupRepo, repos.LedgerAccountRepo, authorizer)
	container.CostCenter = NewCostCenterService(repos.CostCenterRepo, authorizer)
	container.VoucherType = NewVoucherTypeService(repos.VoucherTypeRepo, repos.VoucherRepo, authorizer)
	container.FinancialYear = NewFinancialYearService(repos.FinancialYearRepo, authorizer)

	container.Voucher = NewVoucherService(
		repos.VoucherRepo,
		repos.VoucherTypeRepo,
		repos.FinancialYearRepo,
		repos.LedgerAccountRepo,
		repos.CostCenterRepo,
		repos.PartyRepo,
		repos.ReconciliationRepo,
		authorizer,
	)
	container.Reconciliation = NewReconciliationService(repos.ReconciliationRepo, repos.LedgerAccountRepo, authorizer)
	container.Reporting = NewReportingService(repos.ReportingRepo, WithReportingBusinessAuthorizer(authorizer))

	// New businesses get their default voucher types seeded on creation
	if bs, ok := container.Business.(*businessService); ok {
		bs.AddSeeders(container.VoucherType.SeedSystemVoucherTypes)
	}

	return container
}

// Compile-time interface checks for the service implementations
var (
	_ portssvc.BusinessSvcFacade       = (*businessService)(nil)
	_ portssvc.UserSvcFacade           = (*userService)(nil)
	_ portssvc.AccountGroupSvcFacade   = (*accountGroupService)(nil)
	_ portssvc.LedgerAccountSvcFacade  = (*ledgerAccountService)(nil)
	_ portssvc.PartySvcFacade          = (*partyService)(nil)
	_ portssvc.VoucherSvcFacade        = (*voucherService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)
)
