package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

func ToModelBusiness(d domain.Business) models.Business {
	return models.Business{
		BusinessID:   d.BusinessID,
		Name:         d.Name,
		Description:  d.Description,
		CurrencyCode: d.CurrencyCode,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBusiness(m models.Business) domain.Business {
	return domain.Business{
		BusinessID:   m.BusinessID,
		Name:         m.Name,
		Description:  m.Description,
		CurrencyCode: m.CurrencyCode,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainBusinessSlice(ms []models.Business) []domain.Business {
	out := make([]domain.Business, len(ms))
	for i, m := range ms {
		out[i] = ToDomainBusiness(m)
	}
	return out
}

func ToDomainUserBusiness(m models.UserBusiness) domain.UserBusiness {
	return domain.UserBusiness{
		UserID:     m.UserID,
		UserName:   m.UserName,
		BusinessID: m.BusinessID,
		Role:       domain.UserBusinessRole(m.Role),
		JoinedAt:   m.JoinedAt,
	}
}

func ToDomainUserBusinessSlice(ms []models.UserBusiness) []domain.UserBusiness {
	out := make([]domain.UserBusiness, len(ms))
	for i, m := range ms {
		out[i] = ToDomainUserBusiness(m)
	}
	return out
}

func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                 d.UserID,
		Name:                   d.Name,
		Email:                  d.Email,
		PasswordHash:           d.PasswordHash,
		RefreshTokenHash:       d.RefreshTokenHash,
		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
		DeletedAt:              d.DeletedAt,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                 m.UserID,
		Name:                   m.Name,
		Email:                  m.Email,
		PasswordHash:           m.PasswordHash,
		RefreshTokenHash:       m.RefreshTokenHash,
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
		DeletedAt:              m.DeletedAt,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainUserSlice(ms []models.User) []domain.User {
	out := make([]domain.User, len(ms))
	for i, m := range ms {
		out[i] = ToDomainUser(m)
	}
	return out
}
