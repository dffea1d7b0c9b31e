package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// CreateBusinessRequest defines the payload for creating a business.
type CreateBusinessRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	CurrencyCode string `json:"currencyCode" binding:"omitempty,len=3"`
}

// UpdateBusinessRequest defines the payload for updating a business.
type UpdateBusinessRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddUserToBusinessRequest defines the payload for adding a member.
type AddUserToBusinessRequest struct {
	UserID string                  `json:"userID" binding:"required"`
	Role   domain.UserBusinessRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UpdateBusinessUserRoleRequest defines the payload for changing a member's role.
type UpdateBusinessUserRoleRequest struct {
	Role domain.UserBusinessRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// BusinessUserResponse defines a member of a business with their role.
type BusinessUserResponse struct {
	UserID   string                  `json:"userID"`
	UserName string                  `json:"userName"`
	Role     domain.UserBusinessRole `json:"role"`
	JoinedAt time.Time               `json:"joinedAt"`
}

// ToBusinessUserResponse converts a domain.UserBusiness to its response DTO.
func ToBusinessUserResponse(ub *domain.UserBusiness) BusinessUserResponse {
	return BusinessUserResponse{
		UserID:   ub.UserID,
		UserName: ub.UserName,
		Role:     ub.Role,
		JoinedAt: ub.JoinedAt,
	}
}

// BusinessResponse defines the data returned for a business.
type BusinessResponse struct {
	BusinessID   string    `json:"businessID"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CurrencyCode string    `json:"currencyCode"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToBusinessResponse converts a domain.Business to a BusinessResponse DTO.
func ToBusinessResponse(b *domain.Business) BusinessResponse {
	return BusinessResponse{
		BusinessID:   b.BusinessID,
		Name:         b.Name,
		Description:  b.Description,
		CurrencyCode: b.CurrencyCode,
		IsActive:     b.IsActive,
		CreatedAt:    b.CreatedAt,
	}
}
