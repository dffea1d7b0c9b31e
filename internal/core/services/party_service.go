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
)

// partyService implements the PartySvcFacade interface
type partyService struct {
	BaseService
	partyRepo   portsrepo.PartyRepositoryFacade
	groupRepo   portsrepo.AccountGroupReader
	accountRepo portsrepo.LedgerAccountRepositoryFacade
}

// NewPartyService creates a new party service
func NewPartyService(
	partyRepo portsrepo.PartyRepositoryFacade,
	groupRepo portsrepo.AccountGroupReader,
	accountRepo portsrepo.LedgerAccountRepositoryFacade,
	authorizer portssvc.BusinessAuthorizerSvc,
) portssvc.PartySvcFacade {
	return &partyService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		partyRepo:   partyRepo,
		groupRepo:   groupRepo,
		accountRepo: accountRepo,
	}
}

// Ensure partyService implements the PartySvcFacade interface
var _ portssvc.PartySvcFacade = (*partyService)(nil)

// findPartyInBusiness loads a party, hiding parties of other businesses as not found.
func (s *partyService) findPartyInBusiness(ctx context.Context, businessID, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	return party, nil
}

// GetPartyByID retrieves a specific party
func (s *partyService) GetPartyByID(ctx context.Context, businessID string, partyID string, requestingUserID string) (*domain.Party, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findPartyInBusiness(ctx, businessID, partyID)
}

// ListParties retrieves parties of a business, optionally filtered by type
func (s *partyService) ListParties(ctx context.Context, businessID string, partyType *domain.PartyType, requestingUserID string) ([]domain.Party, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	parties, err := s.partyRepo.ListParties(ctx, businessID, partyType, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list parties",
			slog.String("business_id", businessID))
		return nil, err
	}
	if parties == nil {
		return []domain.Party{}, nil
	}
	return parties, nil
}

// GetPartyBalance computes the party's outstanding balance
func (s *partyService) GetPartyBalance(ctx context.Context, businessID string, partyID string, requestingUserID string) (*dto.PartyBalanceResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	party, err := s.findPartyInBusiness(ctx, businessID, partyID)
	if err != nil {
		return nil, err
	}

	signed, err := s.partyRepo.OutstandingBalance(ctx, party.PartyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute party balance",
			slog.String("party_id", partyID))
		return nil, err
	}

	resp := &dto.PartyBalanceResponse{
		PartyID:     party.PartyID,
		Balance:     signed.Abs(),
		BalanceType: string(domain.BalanceDebit),
	}
	if signed.IsNegative() {
		resp.BalanceType = string(domain.BalanceCredit)
	}
	return resp, nil
}

// CreateParty persists a new party together with its control account. Both
// rows commit in one transaction so a party never exists without its account.
func (s *partyService) CreateParty(ctx context.Context, businessID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindAccountGroupByID(ctx, req.AccountGroupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account group %s not found", apperrors.ErrValidation, req.AccountGroupID)
		}
		return nil, err
	}
	if group.BusinessID != businessID {
		return nil, fmt.Errorf("%w: account group %s not found", apperrors.ErrValidation, req.AccountGroupID)
	}

	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrOpeningBalanceSign)
	}

	balanceType := req.OpeningBalanceType
	if balanceType == "" {
		if req.Type == domain.PartySupplier {
			balanceType = domain.BalanceCredit
		} else {
			balanceType = domain.BalanceDebit
		}
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	account := domain.LedgerAccount{
		LedgerAccountID:    uuid.NewString(),
		BusinessID:         businessID,
		AccountGroupID:     req.AccountGroupID,
		Name:               req.Name,
		OpeningBalance:     req.OpeningBalance,
		OpeningBalanceType: balanceType,
		IsActive:           true,
		AuditFields:        audit,
	}

	party := domain.Party{
		PartyID:         uuid.NewString(),
		BusinessID:      businessID,
		Name:            req.Name,
		Type:            req.Type,
		LedgerAccountID: account.LedgerAccountID,
		Phone:           req.Phone,
		Email:           req.Email,
		Address:         req.Address,
		TaxID:           req.TaxID,
		CreditLimit:     req.CreditLimit,
		CreditPeriod:    req.CreditPeriod,
		IsActive:        true,
		AuditFields:     audit,
	}

	if err := s.partyRepo.SavePartyWithAccount(ctx, party, account); err != nil {
		s.LogError(ctx, err, "Failed to save party with account",
			slog.String("business_id", businessID),
			slog.String("party_name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Party created",
		slog.String("party_id", party.PartyID),
		slog.String("ledger_account_id", account.LedgerAccountID),
		slog.String("business_id", businessID))
	return &party, nil
}

// UpdateParty updates an existing party. A name change is propagated to the
// party's control account.
func (s *partyService) UpdateParty(ctx context.Context, businessID string, partyID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Party, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	party, err := s.findPartyInBusiness(ctx, businessID, partyID)
	if err != nil {
		return nil, err
	}

	nameChanged := false
	if req.Name != nil && *req.Name != party.Name {
		party.Name = *req.Name
		nameChanged = true
	}
	if req.Type != nil {
		party.Type = *req.Type
	}
	if req.Phone != nil {
		party.Phone = req.Phone
	}
	if req.Email != nil {
		party.Email = req.Email
	}
	if req.Address != nil {
		party.Address = req.Address
	}
	if req.TaxID != nil {
		party.TaxID = req.TaxID
	}
	if req.CreditLimit != nil {
		party.CreditLimit = req.CreditLimit
	}
	if req.CreditPeriod != nil {
		party.CreditPeriod = req.CreditPeriod
	}

	party.LastUpdatedAt = time.Now()
	party.LastUpdatedBy = requestingUserID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		s.LogError(ctx, err, "Failed to update party",
			slog.String("party_id", partyID))
		return nil, err
	}

	if nameChanged {
		account, err := s.accountRepo.FindLedgerAccountByID(ctx, party.LedgerAccountID)
		if err == nil {
			account.Name = party.Name
			account.LastUpdatedAt = party.LastUpdatedAt
			account.LastUpdatedBy = requestingUserID
			if err := s.accountRepo.UpdateLedgerAccount(ctx, *account); err != nil {
				s.LogError(ctx, err, "Failed to propagate party name to control account",
					slog.String("party_id", partyID),
					slog.String("ledger_account_id", party.LedgerAccountID))
			}
		}
	}

	return party, nil
}

// DeactivateParty marks a party and its control account inactive
func (s *partyService) DeactivateParty(ctx context.Context, businessID string, partyID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.findPartyInBusiness(ctx, businessID, partyID); err != nil {
		return err
	}

	if err := s.partyRepo.DeactivateParty(ctx, partyID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate party",
			slog.String("party_id", partyID))
		return err
	}

	s.LogInfo(ctx, "Party deactivated",
		slog.String("party_id", partyID),
		slog.String("business_id", businessID))
	return nil
}
