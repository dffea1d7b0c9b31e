package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:         d.PartyID,
		BusinessID:      d.BusinessID,
		LedgerAccountID: d.LedgerAccountID,
		Name:            d.Name,
		Type:            models.PartyType(d.Type),
		Phone:           d.Phone,
		Email:           d.Email,
		Address:         d.Address,
		TaxID:           d.TaxID,
		CreditLimit:     d.CreditLimit,
		CreditPeriod:    d.CreditPeriod,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:         m.PartyID,
		BusinessID:      m.BusinessID,
		LedgerAccountID: m.LedgerAccountID,
		Name:            m.Name,
		Type:            domain.PartyType(m.Type),
		Phone:           m.Phone,
		Email:           m.Email,
		Address:         m.Address,
		TaxID:           m.TaxID,
		CreditLimit:     m.CreditLimit,
		CreditPeriod:    m.CreditPeriod,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPartySlice(ms []models.Party) []domain.Party {
	out := make([]domain.Party, len(ms))
	for i, m := range ms {
		out[i] = ToDomainParty(m)
	}
	return out
}
