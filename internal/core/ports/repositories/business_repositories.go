package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// BusinessReader defines read operations for business (tenant) data.
type BusinessReader interface {
	// FindBusinessByID retrieves a specific business by its unique identifier.
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	// ListBusinessesByUserID retrieves all businesses a user is a member of.
	ListBusinessesByUserID(ctx context.Context, userID string, includeInactive bool) ([]domain.Business, error)

	// FindUserBusinessRole retrieves the membership row for a user in a business.
	FindUserBusinessRole(ctx context.Context, userID, businessID string) (*domain.UserBusiness, error)

	// ListBusinessUsers retrieves all memberships of a business.
	ListBusinessUsers(ctx context.Context, businessID string) ([]domain.UserBusiness, error)
}

// BusinessWriter defines write operations for business data.
type BusinessWriter interface {
	// SaveBusiness persists a new business.
	SaveBusiness(ctx context.Context, business domain.Business) error

	// UpdateBusiness updates an existing business.
	UpdateBusiness(ctx context.Context, business domain.Business) error

	// SaveUserBusiness persists a membership row.
	SaveUserBusiness(ctx context.Context, membership domain.UserBusiness) error

	// UpdateUserBusinessRole changes a member's role.
	UpdateUserBusinessRole(ctx context.Context, userID, businessID string, role domain.UserBusinessRole, updatedBy string, updatedAt time.Time) error

	// SetBusinessActive toggles the active flag.
	SetBusinessActive(ctx context.Context, businessID string, active bool, updatedBy string, updatedAt time.Time) error
}

// BusinessRepositoryFacade combines all business-related repository interfaces.
type BusinessRepositoryFacade interface {
	BusinessReader
	BusinessWriter
}
