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

// systemVoucherType describes one of the voucher types seeded into every new business.
type systemVoucherType struct {
	Code   string
	Name   string
	Nature domain.VoucherNature
	Prefix string
}

// systemVoucherTypes are created for every new business. Their codes are
// stable so the frontend can rely on them.
var systemVoucherTypes = []systemVoucherType{
	{Code: "RCPT", Name: "Receipt", Nature: domain.NatureReceipt, Prefix: "RC"},
	{Code: "PYMT", Name: "Payment", Nature: domain.NaturePayment, Prefix: "PY"},
	{Code: "CNTR", Name: "Contra", Nature: domain.NatureContra, Prefix: "CN"},
	{Code: "JRNL", Name: "Journal", Nature: domain.NatureJournal, Prefix: "JV"},
	{Code: "SALE", Name: "Sales", Nature: domain.NatureSales, Prefix: "SL"},
	{Code: "PURC", Name: "Purchase", Nature: domain.NaturePurchase, Prefix: "PU"},
	{Code: "DBNT", Name: "Debit Note", Nature: domain.NatureDebitNote, Prefix: "DN"},
	{Code: "CRNT", Name: "Credit Note", Nature: domain.NatureCreditNote, Prefix: "CR"},
}

// voucherTypeService implements the VoucherTypeSvcFacade interface
type voucherTypeService struct {
	BaseService
	typeRepo    portsrepo.VoucherTypeRepositoryFacade
	voucherRepo portsrepo.VoucherReader
}

// NewVoucherTypeService creates a new voucher type service
func NewVoucherTypeService(
	typeRepo portsrepo.VoucherTypeRepositoryFacade,
	voucherRepo portsrepo.VoucherReader,
	authorizer portssvc.BusinessAuthorizerSvc,
) portssvc.VoucherTypeSvcFacade {
	return &voucherTypeService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		typeRepo:    typeRepo,
		voucherRepo: voucherRepo,
	}
}

// Ensure voucherTypeService implements the VoucherTypeSvcFacade interface
var _ portssvc.VoucherTypeSvcFacade = (*voucherTypeService)(nil)

func (s *voucherTypeService) findTypeInBusiness(ctx context.Context, businessID, voucherTypeID string) (*domain.VoucherType, error) {
	vt, err := s.typeRepo.FindVoucherTypeByID(ctx, voucherTypeID)
	if err != nil {
		return nil, err
	}
	if vt.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	return vt, nil
}

// GetVoucherTypeByID retrieves a specific voucher type
func (s *voucherTypeService) GetVoucherTypeByID(ctx context.Context, businessID string, voucherTypeID string, requestingUserID string) (*domain.VoucherType, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findTypeInBusiness(ctx, businessID, voucherTypeID)
}

// ListVoucherTypes retrieves all voucher types of a business
func (s *voucherTypeService) ListVoucherTypes(ctx context.Context, businessID string, requestingUserID string) ([]domain.VoucherType, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	types, err := s.typeRepo.ListVoucherTypes(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list voucher types",
			slog.String("business_id", businessID))
		return nil, err
	}
	if types == nil {
		return []domain.VoucherType{}, nil
	}
	return types, nil
}

// CreateVoucherType persists a new custom voucher type
func (s *voucherTypeService) CreateVoucherType(ctx context.Context, businessID string, req dto.CreateVoucherTypeRequest, creatorUserID string) (*domain.VoucherType, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	startingNumber := req.StartingNumber
	if startingNumber == 0 {
		startingNumber = 1
	}

	now := time.Now()
	vt := domain.VoucherType{
		VoucherTypeID:  uuid.NewString(),
		BusinessID:     businessID,
		Code:           req.Code,
		Name:           req.Name,
		Nature:         req.Nature,
		Prefix:         req.Prefix,
		AutoNumbering:  req.AutoNumbering,
		StartingNumber: startingNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.typeRepo.SaveVoucherType(ctx, vt); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: voucher type code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		s.LogError(ctx, err, "Failed to save voucher type",
			slog.String("business_id", businessID),
			slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Voucher type created",
		slog.String("voucher_type_id", vt.VoucherTypeID),
		slog.String("business_id", businessID))
	return &vt, nil
}

// UpdateVoucherType updates a voucher type's mutable fields. Nature, code and
// starting number never change once the type exists.
func (s *voucherTypeService) UpdateVoucherType(ctx context.Context, businessID string, voucherTypeID string, req dto.UpdateVoucherTypeRequest, requestingUserID string) (*domain.VoucherType, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	vt, err := s.findTypeInBusiness(ctx, businessID, voucherTypeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		vt.Name = *req.Name
	}
	if req.Prefix != nil {
		vt.Prefix = *req.Prefix
	}
	if req.AutoNumbering != nil {
		vt.AutoNumbering = *req.AutoNumbering
	}

	vt.LastUpdatedAt = time.Now()
	vt.LastUpdatedBy = requestingUserID

	if err := s.typeRepo.UpdateVoucherType(ctx, *vt); err != nil {
		s.LogError(ctx, err, "Failed to update voucher type",
			slog.String("voucher_type_id", voucherTypeID))
		return nil, err
	}
	return vt, nil
}

// SeedSystemVoucherTypes creates the default voucher types for a new business
func (s *voucherTypeService) SeedSystemVoucherTypes(ctx context.Context, businessID string, creatorUserID string) error {
	now := time.Now()
	types := make([]domain.VoucherType, len(systemVoucherTypes))
	for i, t := range systemVoucherTypes {
		types[i] = domain.VoucherType{
			VoucherTypeID:  uuid.NewString(),
			BusinessID:     businessID,
			Code:           t.Code,
			Name:           t.Name,
			Nature:         t.Nature,
			Prefix:         t.Prefix,
			AutoNumbering:  true,
			StartingNumber: 1,
			IsSystem:       true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	if err := s.typeRepo.SaveVoucherTypes(ctx, types); err != nil {
		s.LogError(ctx, err, "Failed to seed system voucher types",
			slog.String("business_id", businessID))
		return err
	}

	s.LogInfo(ctx, "System voucher types seeded",
		slog.String("business_id", businessID),
		slog.Int("count", len(types)))
	return nil
}
