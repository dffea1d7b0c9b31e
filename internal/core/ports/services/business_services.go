package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// BusinessReaderSvc defines read operations for business data
type BusinessReaderSvc interface {
	// FindBusinessByID retrieves a specific business by its ID.
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	// ListUserBusinesses retrieves businesses a user belongs to.
	// If includeDisabled is true, it includes inactive businesses.
	ListUserBusinesses(ctx context.Context, userID string, includeDisabled bool) ([]domain.Business, error)

	// ListBusinessUsers retrieves all users and their roles for a specific business.
	// Only members of the business can access this data.
	ListBusinessUsers(ctx context.Context, businessID string, requestingUserID string) ([]domain.UserBusiness, error)
}

// BusinessWriterSvc defines write operations for business data
type BusinessWriterSvc interface {
	// CreateBusiness persists a new business and makes the creator its owner.
	// It also seeds the system account groups and voucher types.
	CreateBusiness(ctx context.Context, name, description, currencyCode string, creatorUserID string) (*domain.Business, error)

	// UpdateBusiness updates business details.
	UpdateBusiness(ctx context.Context, businessID string, name, description *string, requestingUserID string) (*domain.Business, error)

	// DeactivateBusiness marks a business as inactive.
	DeactivateBusiness(ctx context.Context, businessID string, requestingUserID string) error

	// ActivateBusiness marks a business as active.
	ActivateBusiness(ctx context.Context, businessID string, requestingUserID string) error
}

// BusinessMembershipSvc defines operations for managing business membership
type BusinessMembershipSvc interface {
	// AddUserToBusiness adds a user to a business with a specific role.
	AddUserToBusiness(ctx context.Context, addingUserID, targetUserID, businessID string, role domain.UserBusinessRole) error

	// RemoveUserFromBusiness removes a user from a business.
	// Only business admins can remove users.
	RemoveUserFromBusiness(ctx context.Context, requestingUserID, targetUserID, businessID string) error

	// UpdateUserBusinessRole updates a user's role in a business.
	// Only business admins can update user roles.
	UpdateUserBusinessRole(ctx context.Context, requestingUserID, targetUserID, businessID string, newRole domain.UserBusinessRole) error
}

// BusinessAuthorizerSvc defines operations for business authorization
type BusinessAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a business.
	AuthorizeUserAction(ctx context.Context, userID, businessID string, requiredRole domain.UserBusinessRole) error
}

// BusinessSvcFacade combines all business-related service interfaces
// This is a facade for clients that need access to all operations
type BusinessSvcFacade interface {
	BusinessReaderSvc
	BusinessWriterSvc
	BusinessMembershipSvc
	BusinessAuthorizerSvc
}
