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

var (
	ErrYearDatesInverted = errors.New("financial year end date must be after its start date")
	ErrYearOverlap       = errors.New("financial year overlaps an existing year")
)

// financialYearService implements the FinancialYearSvcFacade interface
type financialYearService struct {
	BaseService
	fyRepo portsrepo.FinancialYearRepositoryFacade
}

// NewFinancialYearService creates a new financial year service
func NewFinancialYearService(fyRepo portsrepo.FinancialYearRepositoryFacade, authorizer portssvc.BusinessAuthorizerSvc) portssvc.FinancialYearSvcFacade {
	return &financialYearService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		fyRepo:      fyRepo,
	}
}

// Ensure financialYearService implements the FinancialYearSvcFacade interface
var _ portssvc.FinancialYearSvcFacade = (*financialYearService)(nil)

func (s *financialYearService) findYearInBusiness(ctx context.Context, businessID, financialYearID string) (*domain.FinancialYear, error) {
	fy, err := s.fyRepo.FindFinancialYearByID(ctx, financialYearID)
	if err != nil {
		return nil, err
	}
	if fy.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	return fy, nil
}

// GetFinancialYearByID retrieves a specific financial year
func (s *financialYearService) GetFinancialYearByID(ctx context.Context, businessID string, financialYearID string, requestingUserID string) (*domain.FinancialYear, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findYearInBusiness(ctx, businessID, financialYearID)
}

// ListFinancialYears retrieves all financial years of a business
func (s *financialYearService) ListFinancialYears(ctx context.Context, businessID string, requestingUserID string) ([]domain.FinancialYear, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	years, err := s.fyRepo.ListFinancialYears(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list financial years",
			slog.String("business_id", businessID))
		return nil, err
	}
	if years == nil {
		return []domain.FinancialYear{}, nil
	}
	return years, nil
}

// FindFinancialYearForDate returns the year containing the date
func (s *financialYearService) FindFinancialYearForDate(ctx context.Context, businessID string, date time.Time) (*domain.FinancialYear, error) {
	return s.fyRepo.FindFinancialYearForDate(ctx, businessID, date)
}

// CreateFinancialYear persists a new financial year. Overlapping an existing
// year of the business is a hard error. The first year of a business becomes
// current automatically.
func (s *financialYearService) CreateFinancialYear(ctx context.Context, businessID string, req dto.CreateFinancialYearRequest, creatorUserID string) (*domain.FinancialYear, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearDatesInverted)
	}

	existing, err := s.fyRepo.ListFinancialYears(ctx, businessID)
	if err != nil {
		return nil, err
	}

	fy := domain.FinancialYear{
		FinancialYearID: uuid.NewString(),
		BusinessID:      businessID,
		Name:            req.Name,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IsCurrent:       len(existing) == 0,
	}
	for _, other := range existing {
		if fy.Overlaps(other) {
			return nil, fmt.Errorf("%w: %s (%s)", apperrors.ErrConflict, ErrYearOverlap, other.Name)
		}
	}

	now := time.Now()
	fy.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	if err := s.fyRepo.SaveFinancialYear(ctx, fy); err != nil {
		s.LogError(ctx, err, "Failed to save financial year",
			slog.String("business_id", businessID))
		return nil, err
	}

	s.LogInfo(ctx, "Financial year created",
		slog.String("financial_year_id", fy.FinancialYearID),
		slog.String("business_id", businessID),
		slog.Bool("is_current", fy.IsCurrent))
	return &fy, nil
}

// SetCurrentFinancialYear marks the year as current, clearing all others
func (s *financialYearService) SetCurrentFinancialYear(ctx context.Context, businessID string, financialYearID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.findYearInBusiness(ctx, businessID, financialYearID); err != nil {
		return err
	}

	if err := s.fyRepo.SetCurrentFinancialYear(ctx, businessID, financialYearID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to set current financial year",
			slog.String("financial_year_id", financialYearID))
		return err
	}

	s.LogInfo(ctx, "Current financial year changed",
		slog.String("financial_year_id", financialYearID),
		slog.String("business_id", businessID))
	return nil
}

// LockFinancialYear locks a year against posting
func (s *financialYearService) LockFinancialYear(ctx context.Context, businessID string, financialYearID string, requestingUserID string) error {
	return s.setLocked(ctx, businessID, financialYearID, true, requestingUserID)
}

// UnlockFinancialYear reopens a locked year for posting
func (s *financialYearService) UnlockFinancialYear(ctx context.Context, businessID string, financialYearID string, requestingUserID string) error {
	return s.setLocked(ctx, businessID, financialYearID, false, requestingUserID)
}

func (s *financialYearService) setLocked(ctx context.Context, businessID, financialYearID string, locked bool, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	fy, err := s.findYearInBusiness(ctx, businessID, financialYearID)
	if err != nil {
		return err
	}
	if fy.IsLocked == locked {
		return nil
	}

	if err := s.fyRepo.SetFinancialYearLocked(ctx, financialYearID, locked, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to change financial year lock",
			slog.String("financial_year_id", financialYearID),
			slog.Bool("locked", locked))
		return err
	}

	s.LogInfo(ctx, "Financial year lock changed",
		slog.String("financial_year_id", financialYearID),
		slog.Bool("locked", locked))
	return nil
}
