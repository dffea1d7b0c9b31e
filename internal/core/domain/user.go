package domain

import "time"

// User represents an application user who may belong to several businesses.
type User struct {
	UserID                 string     `json:"userID"` // Primary Key (UUID)
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	PasswordHash           string     `json:"-"` // bcrypt hash, never serialized
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	DeletedAt              *time.Time `json:"-"` // Soft delete marker
	AuditFields
}
