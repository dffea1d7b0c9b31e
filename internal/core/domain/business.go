package domain

import "time"

// Business represents an isolated bookkeeping tenant. Every account group,
// ledger account, voucher and reconciliation belongs to exactly one business.
type Business struct {
	BusinessID   string `json:"businessID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Description  string `json:"description"`
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// UserBusinessRole defines the possible roles a user can have within a business.
type UserBusinessRole string

const (
	RoleOwner    UserBusinessRole = "OWNER"
	RoleAdmin    UserBusinessRole = "ADMIN"
	RoleMember   UserBusinessRole = "MEMBER"
	RoleReadOnly UserBusinessRole = "READONLY"
	RoleRemoved  UserBusinessRole = "REMOVED"
)

// rank orders roles by privilege for authorization checks.
var roleRank = map[UserBusinessRole]int{
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleAdmin:    3,
	RoleOwner:    4,
}

// Satisfies reports whether the role grants at least the privileges of required.
func (r UserBusinessRole) Satisfies(required UserBusinessRole) bool {
	return roleRank[r] >= roleRank[required]
}

// UserBusiness represents the membership of a User in a Business.
type UserBusiness struct {
	UserID     string           `json:"userID"`
	UserName   string           `json:"userName"`
	BusinessID string           `json:"businessID"`
	Role       UserBusinessRole `json:"role"`
	JoinedAt   time.Time        `json:"joinedAt"`
}
