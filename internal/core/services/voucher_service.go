package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrVoucherUnbalanced    = errors.New("voucher items do not balance: total debits must equal total credits")
	ErrVoucherMinItems      = errors.New("voucher must have at least two item lines")
	ErrVoucherMinAccounts   = errors.New("voucher must affect at least two different accounts")
	ErrVoucherItemTwoSided  = errors.New("each voucher item must carry exactly one of debit or credit")
	ErrVoucherNoYear        = errors.New("no financial year covers the voucher date")
	ErrVoucherYearLocked    = errors.New("the financial year of the voucher date is locked")
	ErrVoucherNumberManual  = errors.New("voucher number is required for manually numbered types")
	ErrVoucherNumberForbade = errors.New("voucher number cannot be supplied for auto-numbered types")
	ErrVoucherReconciled    = errors.New("voucher has entries in a completed reconciliation")
)

// voucherService implements the VoucherSvcFacade interface.
// Every mutation revalidates the double-entry invariant and the financial
// year lock before it reaches the repository.
type voucherService struct {
	BaseService
	voucherRepo portsrepo.VoucherRepositoryWithTx
	typeRepo    portsrepo.VoucherTypeReader
	fyRepo      portsrepo.FinancialYearReader
	accountRepo portsrepo.LedgerAccountReader
	ccRepo      portsrepo.CostCenterReader
	partyRepo   portsrepo.PartyReader
	reconRepo   portsrepo.ReconciliationReader
}

// NewVoucherService creates a new voucher service with the provided dependencies
func NewVoucherService(
	voucherRepo portsrepo.VoucherRepositoryWithTx,
	typeRepo portsrepo.VoucherTypeReader,
	fyRepo portsrepo.FinancialYearReader,
	accountRepo portsrepo.LedgerAccountReader,
	ccRepo portsrepo.CostCenterReader,
	partyRepo portsrepo.PartyReader,
	reconRepo portsrepo.ReconciliationReader,
	authorizer portssvc.BusinessAuthorizerSvc,
) portssvc.VoucherSvcFacade {
	return &voucherService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		voucherRepo: voucherRepo,
		typeRepo:    typeRepo,
		fyRepo:      fyRepo,
		accountRepo: accountRepo,
		ccRepo:      ccRepo,
		partyRepo:   partyRepo,
		reconRepo:   reconRepo,
	}
}

// Ensure voucherService implements the VoucherSvcFacade interface
var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// validateItems checks the shape of the item lines: at least two lines over at
// least two accounts, each line one-sided, and debits equal to credits.
func (s *voucherService) validateItems(items []dto.VoucherItemRequest) (total decimal.Decimal, err error) {
	if len(items) < 2 {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrVoucherMinItems)
	}

	accountSet := make(map[string]bool, len(items))
	debits, credits := decimal.Zero, decimal.Zero
	for i, item := range items {
		debitSet := item.DebitAmount.IsPositive() && item.CreditAmount.IsZero()
		creditSet := item.CreditAmount.IsPositive() && item.DebitAmount.IsZero()
		if !debitSet && !creditSet {
			return decimal.Zero, fmt.Errorf("%w: %s (line %d)", apperrors.ErrValidation, ErrVoucherItemTwoSided, i+1)
		}
		accountSet[item.LedgerAccountID] = true
		debits = debits.Add(item.DebitAmount)
		credits = credits.Add(item.CreditAmount)
	}

	if len(accountSet) < 2 {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrVoucherMinAccounts)
	}
	if !debits.Equal(credits) {
		return decimal.Zero, fmt.Errorf("%w: %s (debits %s, credits %s)",
			apperrors.ErrValidation, ErrVoucherUnbalanced, debits.String(), credits.String())
	}
	return debits, nil
}

// validateReferences checks that every referenced account, cost center and
// party exists, is active and belongs to the business.
func (s *voucherService) validateReferences(ctx context.Context, businessID string, items []dto.VoucherItemRequest, partyID *string) error {
	accountIDs := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if !seen[item.LedgerAccountID] {
			seen[item.LedgerAccountID] = true
			accountIDs = append(accountIDs, item.LedgerAccountID)
		}
	}

	accounts, err := s.accountRepo.FindLedgerAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok || account.BusinessID != businessID {
			return fmt.Errorf("%w: ledger account %s not found", apperrors.ErrValidation, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: ledger account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	for _, item := range items {
		if item.CostCenterID == nil {
			continue
		}
		cc, err := s.ccRepo.FindCostCenterByID(ctx, *item.CostCenterID)
		if err != nil || cc.BusinessID != businessID {
			return fmt.Errorf("%w: cost center %s not found", apperrors.ErrValidation, *item.CostCenterID)
		}
		if !cc.IsActive {
			return fmt.Errorf("%w: cost center %s is inactive", apperrors.ErrValidation, *item.CostCenterID)
		}
	}

	if partyID != nil {
		party, err := s.partyRepo.FindPartyByID(ctx, *partyID)
		if err != nil || party.BusinessID != businessID {
			return fmt.Errorf("%w: party %s not found", apperrors.ErrValidation, *partyID)
		}
	}
	return nil
}

// resolveFinancialYear finds the year covering the date and rejects locked years.
func (s *voucherService) resolveFinancialYear(ctx context.Context, businessID string, date time.Time) (*domain.FinancialYear, error) {
	fy, err := s.fyRepo.FindFinancialYearForDate(ctx, businessID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrVoucherNoYear)
		}
		return nil, err
	}
	if fy.IsLocked {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrVoucherYearLocked)
	}
	return fy, nil
}

// buildItems converts request lines into domain items for the voucher.
func buildItems(voucherID string, reqItems []dto.VoucherItemRequest, userID string, now time.Time) []domain.VoucherItem {
	items := make([]domain.VoucherItem, len(reqItems))
	for i, r := range reqItems {
		items[i] = domain.VoucherItem{
			VoucherItemID:   uuid.NewString(),
			VoucherID:       voucherID,
			LedgerAccountID: r.LedgerAccountID,
			CostCenterID:    r.CostCenterID,
			DebitAmount:     r.DebitAmount,
			CreditAmount:    r.CreditAmount,
			Narration:       r.Narration,
			Sequence:        i + 1,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return items
}

// CreateVoucher persists a new voucher with its items and posts the mirrored
// journal entries atomically. For auto-numbered types the voucher number is
// allocated inside the repository transaction.
func (s *voucherService) CreateVoucher(ctx context.Context, businessID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	vt, err := s.typeRepo.FindVoucherTypeByID(ctx, req.VoucherTypeID)
	if err != nil || vt.BusinessID != businessID {
		return nil, fmt.Errorf("%w: voucher type %s not found", apperrors.ErrValidation, req.VoucherTypeID)
	}

	if vt.AutoNumbering && req.VoucherNumber != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrVoucherNumberForbade)
	}
	if !vt.AutoNumbering && (req.VoucherNumber == nil || *req.VoucherNumber == "") {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrVoucherNumberManual)
	}

	total, err := s.validateItems(req.Items)
	if err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, businessID, req.Items, req.PartyID); err != nil {
		return nil, err
	}

	fy, err := s.resolveFinancialYear(ctx, businessID, req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	voucher := domain.Voucher{
		VoucherID:       uuid.NewString(),
		BusinessID:      businessID,
		VoucherTypeID:   vt.VoucherTypeID,
		FinancialYearID: fy.FinancialYearID,
		Date:            req.Date,
		PartyID:         req.PartyID,
		Narration:       req.Narration,
		TotalAmount:     total,
		IsPosted:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.VoucherNumber != nil {
		voucher.VoucherNumber = *req.VoucherNumber
	}

	items := buildItems(voucher.VoucherID, req.Items, creatorUserID, now)

	saved, err := s.voucherRepo.SaveVoucher(ctx, voucher, items, vt.AutoNumbering)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: voucher number %s already exists for this type and year", apperrors.ErrDuplicate, voucher.VoucherNumber)
		}
		s.LogError(ctx, err, "Failed to save voucher",
			slog.String("business_id", businessID),
			slog.String("voucher_type_id", vt.VoucherTypeID))
		return nil, err
	}
	saved.Items = items

	s.LogInfo(ctx, "Voucher created",
		slog.String("voucher_id", saved.VoucherID),
		slog.String("voucher_number", saved.VoucherNumber),
		slog.String("business_id", businessID),
		slog.String("total_amount", saved.TotalAmount.String()))
	return saved, nil
}

// findVoucherInBusiness loads a voucher header, hiding other businesses'
// vouchers and soft-deleted vouchers as not found.
func (s *voucherService) findVoucherInBusiness(ctx context.Context, businessID, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.BusinessID != businessID || voucher.IsDeleted {
		return nil, apperrors.ErrNotFound
	}
	return voucher, nil
}

// GetVoucherByID retrieves a voucher with its items
func (s *voucherService) GetVoucherByID(ctx context.Context, businessID string, voucherID string, requestingUserID string) (*domain.Voucher, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	voucher, err := s.findVoucherInBusiness(ctx, businessID, voucherID)
	if err != nil {
		return nil, err
	}

	items, err := s.voucherRepo.FindVoucherItems(ctx, voucherID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load voucher items",
			slog.String("voucher_id", voucherID))
		return nil, err
	}
	voucher.Items = items
	return voucher, nil
}

// ListVouchers retrieves a token-paginated voucher listing
func (s *voucherService) ListVouchers(ctx context.Context, businessID string, userID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := portsrepo.ListVouchersFilter{
		VoucherTypeID:   params.VoucherTypeID,
		FinancialYearID: params.FinancialYearID,
		PartyID:         params.PartyID,
		FromDate:        params.FromDate,
		ToDate:          params.ToDate,
	}

	vouchers, nextToken, err := s.voucherRepo.ListVouchers(ctx, businessID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vouchers",
			slog.String("business_id", businessID))
		return nil, err
	}

	resp := &dto.ListVouchersResponse{
		Vouchers:  make([]dto.VoucherResponse, len(vouchers)),
		NextToken: nextToken,
	}
	for i := range vouchers {
		resp.Vouchers[i] = dto.ToVoucherResponse(&vouchers[i])
	}
	return resp, nil
}

// UpdateVoucher updates voucher details. When items are supplied they replace
// the existing lines and the journal entries are reposted in one transaction.
func (s *voucherService) UpdateVoucher(ctx context.Context, businessID string, voucherID string, req dto.UpdateVoucherRequest, requestingUserID string) (*domain.Voucher, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	voucher, err := s.findVoucherInBusiness(ctx, businessID, voucherID)
	if err != nil {
		return nil, err
	}

	// Entries locked into a completed reconciliation freeze the voucher
	if err := s.ensureNotReconciled(ctx, voucherID); err != nil {
		return nil, err
	}

	// The year must be open, and a new date must stay inside it
	fy, err := s.resolveFinancialYear(ctx, businessID, voucher.Date)
	if err != nil {
		return nil, err
	}
	newDate := voucher.Date
	if req.Date != nil && !req.Date.Equal(voucher.Date) {
		if !fy.Contains(*req.Date) {
			return nil, fmt.Errorf("%w: voucher date cannot move to another financial year", apperrors.ErrConflict)
		}
		newDate = *req.Date
	}

	now := time.Now()
	voucher.Date = newDate
	if req.PartyID != nil {
		if err := s.validateReferences(ctx, businessID, nil, req.PartyID); err != nil {
			return nil, err
		}
		voucher.PartyID = req.PartyID
	}
	if req.Narration != nil {
		voucher.Narration = *req.Narration
	}
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = requestingUserID

	if len(req.Items) == 0 {
		// Header-only update reuses the existing lines
		items, err := s.voucherRepo.FindVoucherItems(ctx, voucherID)
		if err != nil {
			return nil, err
		}
		if err := s.voucherRepo.ReplaceVoucherItems(ctx, *voucher, items); err != nil {
			s.LogError(ctx, err, "Failed to update voucher",
				slog.String("voucher_id", voucherID))
			return nil, err
		}
		voucher.Items = items
		return voucher, nil
	}

	total, err := s.validateItems(req.Items)
	if err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, businessID, req.Items, nil); err != nil {
		return nil, err
	}

	voucher.TotalAmount = total
	items := buildItems(voucherID, req.Items, requestingUserID, now)

	if err := s.voucherRepo.ReplaceVoucherItems(ctx, *voucher, items); err != nil {
		s.LogError(ctx, err, "Failed to replace voucher items",
			slog.String("voucher_id", voucherID))
		return nil, err
	}
	voucher.Items = items

	s.LogInfo(ctx, "Voucher updated",
		slog.String("voucher_id", voucherID),
		slog.String("business_id", businessID))
	return voucher, nil
}

// DeleteVoucher soft-deletes a voucher and removes its journal entries
func (s *voucherService) DeleteVoucher(ctx context.Context, businessID string, voucherID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleMember); err != nil {
		return err
	}

	voucher, err := s.findVoucherInBusiness(ctx, businessID, voucherID)
	if err != nil {
		return err
	}

	if err := s.ensureNotReconciled(ctx, voucherID); err != nil {
		return err
	}
	if _, err := s.resolveFinancialYear(ctx, businessID, voucher.Date); err != nil {
		return err
	}

	if err := s.voucherRepo.SoftDeleteVoucher(ctx, voucherID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete voucher",
			slog.String("voucher_id", voucherID))
		return err
	}

	s.LogInfo(ctx, "Voucher deleted",
		slog.String("voucher_id", voucherID),
		slog.String("business_id", businessID))
	return nil
}

// ensureNotReconciled rejects mutation of vouchers whose journal entries sit
// in a completed reconciliation.
func (s *voucherService) ensureNotReconciled(ctx context.Context, voucherID string) error {
	entries, err := s.voucherRepo.FindJournalEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.JournalEntryID
	}
	locked, err := s.reconRepo.AnyEntryInCompletedReconciliation(ctx, ids)
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrVoucherReconciled)
	}
	return nil
}

// ListJournalEntriesByAccount retrieves an account's ledger view
func (s *voucherService) ListJournalEntriesByAccount(ctx context.Context, businessID string, accountID string, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindLedgerAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, nextToken, err := s.voucherRepo.ListJournalEntriesByAccount(ctx, businessID, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries",
			slog.String("ledger_account_id", accountID))
		return nil, err
	}

	return &dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
