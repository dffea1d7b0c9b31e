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

// costCenterService implements the CostCenterSvcFacade interface
type costCenterService struct {
	BaseService
	ccRepo portsrepo.CostCenterRepositoryFacade
}

// NewCostCenterService creates a new cost center service
func NewCostCenterService(ccRepo portsrepo.CostCenterRepositoryFacade, authorizer portssvc.BusinessAuthorizerSvc) portssvc.CostCenterSvcFacade {
	return &costCenterService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		ccRepo:      ccRepo,
	}
}

// Ensure costCenterService implements the CostCenterSvcFacade interface
var _ portssvc.CostCenterSvcFacade = (*costCenterService)(nil)

func (s *costCenterService) findCostCenterInBusiness(ctx context.Context, businessID, costCenterID string) (*domain.CostCenter, error) {
	cc, err := s.ccRepo.FindCostCenterByID(ctx, costCenterID)
	if err != nil {
		return nil, err
	}
	if cc.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	return cc, nil
}

// GetCostCenterByID retrieves a specific cost center
func (s *costCenterService) GetCostCenterByID(ctx context.Context, businessID string, costCenterID string, requestingUserID string) (*domain.CostCenter, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findCostCenterInBusiness(ctx, businessID, costCenterID)
}

// ListCostCenters retrieves all cost centers of a business
func (s *costCenterService) ListCostCenters(ctx context.Context, businessID string, requestingUserID string) ([]domain.CostCenter, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	centers, err := s.ccRepo.ListCostCenters(ctx, businessID, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cost centers",
			slog.String("business_id", businessID))
		return nil, err
	}
	if centers == nil {
		return []domain.CostCenter{}, nil
	}
	return centers, nil
}

// CreateCostCenter persists a new cost center
func (s *costCenterService) CreateCostCenter(ctx context.Context, businessID string, req dto.CreateCostCenterRequest, creatorUserID string) (*domain.CostCenter, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.findCostCenterInBusiness(ctx, businessID, *req.ParentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent cost center %s not found", apperrors.ErrValidation, *req.ParentID)
			}
			return nil, err
		}
	}

	now := time.Now()
	cc := domain.CostCenter{
		CostCenterID: uuid.NewString(),
		BusinessID:   businessID,
		Name:         req.Name,
		Code:         req.Code,
		ParentID:     req.ParentID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ccRepo.SaveCostCenter(ctx, cc); err != nil {
		s.LogError(ctx, err, "Failed to save cost center",
			slog.String("business_id", businessID),
			slog.String("cost_center_name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Cost center created",
		slog.String("cost_center_id", cc.CostCenterID),
		slog.String("business_id", businessID))
	return &cc, nil
}

// UpdateCostCenter updates an existing cost center
func (s *costCenterService) UpdateCostCenter(ctx context.Context, businessID string, costCenterID string, req dto.UpdateCostCenterRequest, requestingUserID string) (*domain.CostCenter, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	cc, err := s.findCostCenterInBusiness(ctx, businessID, costCenterID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cc.Name = *req.Name
	}
	if req.Code != nil {
		cc.Code = req.Code
	}
	if req.ParentID != nil && (cc.ParentID == nil || *cc.ParentID != *req.ParentID) {
		newParent, err := s.findCostCenterInBusiness(ctx, businessID, *req.ParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent cost center %s not found", apperrors.ErrValidation, *req.ParentID)
			}
			return nil, err
		}
		if err := s.checkNoCostCenterCycle(ctx, businessID, costCenterID, newParent); err != nil {
			return nil, err
		}
		cc.ParentID = req.ParentID
	}

	cc.LastUpdatedAt = time.Now()
	cc.LastUpdatedBy = requestingUserID

	if err := s.ccRepo.UpdateCostCenter(ctx, *cc); err != nil {
		s.LogError(ctx, err, "Failed to update cost center",
			slog.String("cost_center_id", costCenterID))
		return nil, err
	}
	return cc, nil
}

// checkNoCostCenterCycle walks up from newParent and fails if it reaches
// the cost center being re-parented.
func (s *costCenterService) checkNoCostCenterCycle(ctx context.Context, businessID, costCenterID string, newParent *domain.CostCenter) error {
	current := newParent
	for {
		if current.CostCenterID == costCenterID {
			return fmt.Errorf("%w: re-parenting would create a cycle in the cost center tree", apperrors.ErrValidation)
		}
		if current.ParentID == nil {
			return nil
		}
		next, err := s.findCostCenterInBusiness(ctx, businessID, *current.ParentID)
		if err != nil {
			return err
		}
		current = next
	}
}

// DeactivateCostCenter marks a cost center inactive
func (s *costCenterService) DeactivateCostCenter(ctx context.Context, businessID string, costCenterID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.findCostCenterInBusiness(ctx, businessID, costCenterID); err != nil {
		return err
	}

	if err := s.ccRepo.DeactivateCostCenter(ctx, costCenterID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate cost center",
			slog.String("cost_center_id", costCenterID))
		return err
	}
	return nil
}
