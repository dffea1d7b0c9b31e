package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// VoucherTypeReader defines read operations for voucher type data.
type VoucherTypeReader interface {
	// FindVoucherTypeByID retrieves a voucher type by its unique identifier.
	FindVoucherTypeByID(ctx context.Context, voucherTypeID string) (*domain.VoucherType, error)

	// FindVoucherTypeByCode retrieves a voucher type by its per-business code.
	FindVoucherTypeByCode(ctx context.Context, businessID, code string) (*domain.VoucherType, error)

	// ListVoucherTypes retrieves all voucher types of a business.
	ListVoucherTypes(ctx context.Context, businessID string) ([]domain.VoucherType, error)
}

// VoucherTypeWriter defines write operations for voucher type data.
type VoucherTypeWriter interface {
	// SaveVoucherType persists a new voucher type.
	SaveVoucherType(ctx context.Context, vt domain.VoucherType) error

	// SaveVoucherTypes persists several voucher types at once (seeding).
	SaveVoucherTypes(ctx context.Context, vts []domain.VoucherType) error

	// UpdateVoucherType updates an existing voucher type.
	UpdateVoucherType(ctx context.Context, vt domain.VoucherType) error
}

// VoucherTypeRepositoryFacade combines all voucher-type repository interfaces.
type VoucherTypeRepositoryFacade interface {
	VoucherTypeReader
	VoucherTypeWriter
}

// FinancialYearReader defines read operations for financial year data.
type FinancialYearReader interface {
	// FindFinancialYearByID retrieves a financial year by its unique identifier.
	FindFinancialYearByID(ctx context.Context, financialYearID string) (*domain.FinancialYear, error)

	// FindFinancialYearForDate retrieves the year of a business containing the date.
	FindFinancialYearForDate(ctx context.Context, businessID string, date time.Time) (*domain.FinancialYear, error)

	// FindCurrentFinancialYear retrieves the business's current financial year.
	FindCurrentFinancialYear(ctx context.Context, businessID string) (*domain.FinancialYear, error)

	// ListFinancialYears retrieves all years of a business ordered by start date.
	ListFinancialYears(ctx context.Context, businessID string) ([]domain.FinancialYear, error)
}

// FinancialYearWriter defines write operations for financial year data.
type FinancialYearWriter interface {
	// SaveFinancialYear persists a new financial year.
	SaveFinancialYear(ctx context.Context, fy domain.FinancialYear) error

	// SetCurrentFinancialYear marks one year current and clears the flag on
	// every other year of the business, atomically.
	SetCurrentFinancialYear(ctx context.Context, businessID, financialYearID string, updatedBy string, now time.Time) error

	// SetFinancialYearLocked toggles the lock flag of a year.
	SetFinancialYearLocked(ctx context.Context, financialYearID string, locked bool, updatedBy string, now time.Time) error
}

// FinancialYearRepositoryFacade combines all financial-year repository interfaces.
type FinancialYearRepositoryFacade interface {
	FinancialYearReader
	FinancialYearWriter
}

// ListVouchersFilter narrows voucher listings.
type ListVouchersFilter struct {
	VoucherTypeID   *string
	FinancialYearID *string
	PartyID         *string
	FromDate        *time.Time
	ToDate          *time.Time
	IncludeDeleted  bool
}

// VoucherReader defines read operations for voucher data.
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher header by its unique identifier.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// FindVoucherItems retrieves the item lines of a voucher ordered by sequence.
	FindVoucherItems(ctx context.Context, voucherID string) ([]domain.VoucherItem, error)

	// ListVouchers retrieves a filtered, token-paginated voucher listing for a business.
	ListVouchers(ctx context.Context, businessID string, filter ListVouchersFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error)

	// ListJournalEntriesByAccount retrieves a token-paginated journal feed for
	// one ledger account, excluding entries of soft-deleted vouchers.
	ListJournalEntriesByAccount(ctx context.Context, businessID, accountID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindJournalEntriesByVoucherID retrieves the mirrored journal entries of a voucher.
	FindJournalEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.JournalEntry, error)
}

// VoucherWriter defines write operations for voucher data. All mutations are
// atomic: a voucher, its items and its mirrored journal entries commit or
// roll back as one unit.
type VoucherWriter interface {
	// SaveVoucher persists a voucher with its items and mirrored journal
	// entries in one transaction. When assignNumber is true the voucher number
	// is allocated inside the transaction by locking the voucher type row and
	// taking max(sequence)+1 for (business, type, financial year).
	SaveVoucher(ctx context.Context, voucher domain.Voucher, items []domain.VoucherItem, assignNumber bool) (*domain.Voucher, error)

	// ReplaceVoucherItems deletes every item and journal entry of the voucher
	// and inserts the new set, updating the header, all in one transaction.
	ReplaceVoucherItems(ctx context.Context, voucher domain.Voucher, items []domain.VoucherItem) error

	// SoftDeleteVoucher flags the voucher and its items deleted.
	SoftDeleteVoucher(ctx context.Context, voucherID string, userID string, now time.Time) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces.
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction capabilities.
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}
