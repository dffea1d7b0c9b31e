package services

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// VoucherTypeReaderSvc defines read operations for voucher types
type VoucherTypeReaderSvc interface {
	// GetVoucherTypeByID retrieves a specific voucher type by its ID.
	GetVoucherTypeByID(ctx context.Context, businessID string, voucherTypeID string, requestingUserID string) (*domain.VoucherType, error)

	// ListVoucherTypes retrieves all voucher types in a business.
	ListVoucherTypes(ctx context.Context, businessID string, requestingUserID string) ([]domain.VoucherType, error)
}

// VoucherTypeWriterSvc defines write operations for voucher types
type VoucherTypeWriterSvc interface {
	// CreateVoucherType persists a new voucher type.
	CreateVoucherType(ctx context.Context, businessID string, req dto.CreateVoucherTypeRequest, creatorUserID string) (*domain.VoucherType, error)

	// UpdateVoucherType updates a voucher type. Nature and starting number
	// are immutable once vouchers exist under the type.
	UpdateVoucherType(ctx context.Context, businessID string, voucherTypeID string, req dto.UpdateVoucherTypeRequest, requestingUserID string) (*domain.VoucherType, error)

	// SeedSystemVoucherTypes creates the default voucher types for a new business.
	SeedSystemVoucherTypes(ctx context.Context, businessID string, creatorUserID string) error
}

// VoucherTypeSvcFacade combines all voucher type service interfaces
type VoucherTypeSvcFacade interface {
	VoucherTypeReaderSvc
	VoucherTypeWriterSvc
}

// FinancialYearReaderSvc defines read operations for financial years
type FinancialYearReaderSvc interface {
	// GetFinancialYearByID retrieves a specific financial year by its ID.
	GetFinancialYearByID(ctx context.Context, businessID string, financialYearID string, requestingUserID string) (*domain.FinancialYear, error)

	// ListFinancialYears retrieves all financial years in a business.
	ListFinancialYears(ctx context.Context, businessID string, requestingUserID string) ([]domain.FinancialYear, error)

	// FindFinancialYearForDate returns the financial year containing the date.
	FindFinancialYearForDate(ctx context.Context, businessID string, date time.Time) (*domain.FinancialYear, error)
}

// FinancialYearWriterSvc defines write operations for financial years
type FinancialYearWriterSvc interface {
	// CreateFinancialYear persists a new financial year. Years that overlap
	// an existing year are rejected.
	CreateFinancialYear(ctx context.Context, businessID string, req dto.CreateFinancialYearRequest, creatorUserID string) (*domain.FinancialYear, error)

	// SetCurrentFinancialYear marks the year as the business's current year.
	SetCurrentFinancialYear(ctx context.Context, businessID string, financialYearID string, requestingUserID string) error

	// LockFinancialYear locks a year against posting.
	LockFinancialYear(ctx context.Context, businessID string, financialYearID string, requestingUserID string) error

	// UnlockFinancialYear reopens a locked year for posting.
	UnlockFinancialYear(ctx context.Context, businessID string, financialYearID string, requestingUserID string) error
}

// FinancialYearSvcFacade combines all financial year service interfaces
type FinancialYearSvcFacade interface {
	FinancialYearReaderSvc
	FinancialYearWriterSvc
}

// VoucherReaderSvc defines read operations for voucher data
type VoucherReaderSvc interface {
	// GetVoucherByID retrieves a specific voucher with its items.
	GetVoucherByID(ctx context.Context, businessID string, voucherID string, requestingUserID string) (*domain.Voucher, error)

	// ListVouchers retrieves a paginated list of vouchers in a business.
	ListVouchers(ctx context.Context, businessID string, userID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
}

// VoucherWriterSvc defines write operations for voucher data
type VoucherWriterSvc interface {
	// CreateVoucher persists a new voucher with its items and posts the
	// mirrored journal entries atomically.
	CreateVoucher(ctx context.Context, businessID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error)

	// UpdateVoucher updates voucher details. When items are supplied they
	// replace the existing lines and the journal entries are reposted.
	UpdateVoucher(ctx context.Context, businessID string, voucherID string, req dto.UpdateVoucherRequest, requestingUserID string) (*domain.Voucher, error)

	// DeleteVoucher soft-deletes a voucher and removes its journal entries.
	DeleteVoucher(ctx context.Context, businessID string, voucherID string, requestingUserID string) error
}

// JournalEntryReaderSvc defines read operations for posted journal entries
type JournalEntryReaderSvc interface {
	// ListJournalEntriesByAccount retrieves an account's ledger view.
	ListJournalEntriesByAccount(ctx context.Context, businessID string, accountID string, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// VoucherSvcFacade combines all voucher-related service interfaces
// This is a facade for clients that need access to all operations
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
	JournalEntryReaderSvc
}
