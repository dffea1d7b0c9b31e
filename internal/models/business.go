package models

import "time"

// Business maps to the businesses table.
type Business struct {
	BusinessID   string `json:"businessID"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// UserBusinessRole mirrors domain.UserBusinessRole for storage.
type UserBusinessRole string

// UserBusiness maps to the user_businesses join table. UserName is joined in
// from the users table for listings.
type UserBusiness struct {
	UserID     string           `json:"userID"`
	UserName   string           `json:"userName"`
	BusinessID string           `json:"businessID"`
	Role       UserBusinessRole `json:"role"`
	JoinedAt   time.Time        `json:"joinedAt"`
}

// User maps to the users table.
type User struct {
	UserID                 string     `json:"userID"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	PasswordHash           string     `json:"-"`
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	DeletedAt              *time.Time `json:"-"`
	AuditFields
}
