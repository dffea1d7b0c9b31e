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
	"github.com/google/uuid"
)

// businessService implements the BusinessSvcFacade interface
type businessService struct {
	BaseService
	businessRepo portsrepo.BusinessRepositoryFacade
	seeders      []BusinessSeeder
}

// BusinessSeeder creates default records for a newly created business.
type BusinessSeeder func(ctx context.Context, businessID string, creatorUserID string) error

// NewBusinessService creates a new business service with the provided dependencies
func NewBusinessService(businessRepo portsrepo.BusinessRepositoryFacade, seeders ...BusinessSeeder) portssvc.BusinessSvcFacade {
	return &businessService{
		businessRepo: businessRepo,
		seeders:      seeders,
	}
}

// Ensure businessService implements the BusinessSvcFacade interface
var _ portssvc.BusinessSvcFacade = (*businessService)(nil)

// AddSeeders registers seeders after construction. Used by the container to
// break the construction cycle between the business service and the services
// that seed new businesses.
func (s *businessService) AddSeeders(seeders ...BusinessSeeder) {
	s.seeders = append(s.seeders, seeders...)
}

// FindBusinessByID retrieves a business by its ID
func (s *businessService) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find business by ID",
				slog.String("business_id", businessID))
		}
		return nil, err
	}

	s.LogDebug(ctx, "Business retrieved successfully",
		slog.String("business_id", business.BusinessID))
	return business, nil
}

// ListUserBusinesses retrieves all businesses a user belongs to
func (s *businessService) ListUserBusinesses(ctx context.Context, userID string, includeDisabled bool) ([]domain.Business, error) {
	businesses, err := s.businessRepo.ListBusinessesByUserID(ctx, userID, includeDisabled)
	if err != nil {
		s.LogError(ctx, err, "Failed to list businesses for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if businesses == nil {
		return []domain.Business{}, nil
	}

	s.LogDebug(ctx, "Businesses listed successfully",
		slog.Int("count", len(businesses)),
		slog.String("user_id", userID))
	return businesses, nil
}

// ListBusinessUsers retrieves all users and their roles for a business
func (s *businessService) ListBusinessUsers(ctx context.Context, businessID string, requestingUserID string) ([]domain.UserBusiness, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	members, err := s.businessRepo.ListBusinessUsers(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list business users",
			slog.String("business_id", businessID))
		return nil, err
	}
	return members, nil
}

// CreateBusiness creates a new business and makes the creator its owner
func (s *businessService) CreateBusiness(ctx context.Context, name, description, currencyCode string, creatorUserID string) (*domain.Business, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: business name is required", apperrors.ErrValidation)
	}

	now := time.Now()
	businessID := uuid.NewString()

	business := domain.Business{
		BusinessID:   businessID,
		Name:         name,
		Description:  description,
		CurrencyCode: currencyCode,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.businessRepo.SaveBusiness(ctx, business); err != nil {
		s.LogError(ctx, err, "Failed to save business",
			slog.String("business_id", businessID))
		return nil, err
	}

	membership := domain.UserBusiness{
		UserID:     creatorUserID,
		BusinessID: businessID,
		Role:       domain.RoleOwner,
		JoinedAt:   now,
	}
	if err := s.businessRepo.SaveUserBusiness(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as owner of new business",
			slog.String("business_id", businessID),
			slog.String("user_id", creatorUserID))
		return nil, err
	}

	// Seed default chart of accounts and voucher types
	for _, seed := range s.seeders {
		if err := seed(ctx, businessID, creatorUserID); err != nil {
			s.LogError(ctx, err, "Failed to seed defaults for new business",
				slog.String("business_id", businessID))
			return nil, err
		}
	}

	s.LogInfo(ctx, "Business created successfully",
		slog.String("business_id", businessID),
		slog.String("creator_id", creatorUserID))
	return &business, nil
}

// UpdateBusiness updates business details
func (s *businessService) UpdateBusiness(ctx context.Context, businessID string, name, description *string, requestingUserID string) (*domain.Business, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		business.Name = *name
	}
	if description != nil {
		business.Description = *description
	}
	business.LastUpdatedAt = time.Now()
	business.LastUpdatedBy = requestingUserID

	if err := s.businessRepo.UpdateBusiness(ctx, *business); err != nil {
		s.LogError(ctx, err, "Failed to update business",
			slog.String("business_id", businessID))
		return nil, err
	}
	return business, nil
}

// DeactivateBusiness marks a business as inactive
func (s *businessService) DeactivateBusiness(ctx context.Context, businessID string, requestingUserID string) error {
	return s.setBusinessActive(ctx, businessID, false, requestingUserID)
}

// ActivateBusiness marks a business as active
func (s *businessService) ActivateBusiness(ctx context.Context, businessID string, requestingUserID string) error {
	return s.setBusinessActive(ctx, businessID, true, requestingUserID)
}

func (s *businessService) setBusinessActive(ctx context.Context, businessID string, active bool, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, businessID, domain.RoleOwner); err != nil {
		return err
	}

	if err := s.businessRepo.SetBusinessActive(ctx, businessID, active, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to change business active state",
			slog.String("business_id", businessID),
			slog.Bool("active", active))
		return err
	}

	s.LogInfo(ctx, "Business active state changed",
		slog.String("business_id", businessID),
		slog.Bool("active", active))
	return nil
}

// AddUserToBusiness adds a user to a business with a specific role
func (s *businessService) AddUserToBusiness(ctx context.Context, addingUserID, targetUserID, businessID string, role domain.UserBusinessRole) error {
	// Self-join during business creation skips the admin check
	if addingUserID != targetUserID {
		if err := s.AuthorizeUserAction(ctx, addingUserID, businessID, domain.RoleAdmin); err != nil {
			s.LogError(ctx, err, "User not authorized to add members to business",
				slog.String("adding_user_id", addingUserID),
				slog.String("business_id", businessID))
			return err
		}
	}

	if role == domain.RoleOwner {
		return fmt.Errorf("%w: ownership cannot be granted through membership", apperrors.ErrValidation)
	}

	membership := domain.UserBusiness{
		UserID:     targetUserID,
		BusinessID: businessID,
		Role:       role,
		JoinedAt:   time.Now(),
	}

	if err := s.businessRepo.SaveUserBusiness(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to business",
			slog.String("target_user_id", targetUserID),
			slog.String("business_id", businessID))
		return err
	}

	s.LogInfo(ctx, "User added to business successfully",
		slog.String("target_user_id", targetUserID),
		slog.String("business_id", businessID),
		slog.String("role", string(role)))
	return nil
}

// RemoveUserFromBusiness removes a user from a business
func (s *businessService) RemoveUserFromBusiness(ctx context.Context, requestingUserID, targetUserID, businessID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	membership, err := s.businessRepo.FindUserBusinessRole(ctx, targetUserID, businessID)
	if err != nil {
		return err
	}
	if membership.Role == domain.RoleOwner {
		return fmt.Errorf("%w: the business owner cannot be removed", apperrors.ErrConflict)
	}

	if err := s.businessRepo.UpdateUserBusinessRole(ctx, targetUserID, businessID, domain.RoleRemoved, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to remove user from business",
			slog.String("target_user_id", targetUserID),
			slog.String("business_id", businessID))
		return err
	}

	s.LogInfo(ctx, "User removed from business",
		slog.String("target_user_id", targetUserID),
		slog.String("business_id", businessID))
	return nil
}

// UpdateUserBusinessRole updates a user's role in a business
func (s *businessService) UpdateUserBusinessRole(ctx context.Context, requestingUserID, targetUserID, businessID string, newRole domain.UserBusinessRole) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	if newRole == domain.RoleOwner || newRole == domain.RoleRemoved {
		return fmt.Errorf("%w: role %s cannot be assigned directly", apperrors.ErrValidation, newRole)
	}

	membership, err := s.businessRepo.FindUserBusinessRole(ctx, targetUserID, businessID)
	if err != nil {
		return err
	}
	if membership.Role == domain.RoleOwner {
		return fmt.Errorf("%w: the owner role cannot be changed", apperrors.ErrConflict)
	}

	if err := s.businessRepo.UpdateUserBusinessRole(ctx, targetUserID, businessID, newRole, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to update user role in business",
			slog.String("target_user_id", targetUserID),
			slog.String("business_id", businessID),
			slog.String("new_role", string(newRole)))
		return err
	}
	return nil
}

// AuthorizeUserAction checks if a user has required permissions for a business
func (s *businessService) AuthorizeUserAction(ctx context.Context, userID, businessID string, requiredRole domain.UserBusinessRole) error {
	membership, err := s.businessRepo.FindUserBusinessRole(ctx, userID, businessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of business",
				slog.String("user_id", userID),
				slog.String("business_id", businessID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user business role",
			slog.String("user_id", userID),
			slog.String("business_id", businessID))
		return err
	}

	if !membership.Role.Satisfies(requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("business_id", businessID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}
