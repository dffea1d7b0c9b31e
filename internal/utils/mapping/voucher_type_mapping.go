package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

func ToModelVoucherType(d domain.VoucherType) models.VoucherType {
	return models.VoucherType{
		VoucherTypeID:  d.VoucherTypeID,
		BusinessID:     d.BusinessID,
		Code:           d.Code,
		Name:           d.Name,
		Nature:         models.VoucherNature(d.Nature),
		Prefix:         d.Prefix,
		AutoNumbering:  d.AutoNumbering,
		StartingNumber: d.StartingNumber,
		IsSystem:       d.IsSystem,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainVoucherType(m models.VoucherType) domain.VoucherType {
	return domain.VoucherType{
		VoucherTypeID:  m.VoucherTypeID,
		BusinessID:     m.BusinessID,
		Code:           m.Code,
		Name:           m.Name,
		Nature:         domain.VoucherNature(m.Nature),
		Prefix:         m.Prefix,
		AutoNumbering:  m.AutoNumbering,
		StartingNumber: m.StartingNumber,
		IsSystem:       m.IsSystem,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainVoucherTypeSlice(ms []models.VoucherType) []domain.VoucherType {
	out := make([]domain.VoucherType, len(ms))
	for i, m := range ms {
		out[i] = ToDomainVoucherType(m)
	}
	return out
}

func ToModelFinancialYear(d domain.FinancialYear) models.FinancialYear {
	return models.FinancialYear{
		FinancialYearID: d.FinancialYearID,
		BusinessID:      d.BusinessID,
		Name:            d.Name,
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		IsCurrent:       d.IsCurrent,
		IsLocked:        d.IsLocked,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainFinancialYear(m models.FinancialYear) domain.FinancialYear {
	return domain.FinancialYear{
		FinancialYearID: m.FinancialYearID,
		BusinessID:      m.BusinessID,
		Name:            m.Name,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		IsCurrent:       m.IsCurrent,
		IsLocked:        m.IsLocked,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainFinancialYearSlice(ms []models.FinancialYear) []domain.FinancialYear {
	out := make([]domain.FinancialYear, len(ms))
	for i, m := range ms {
		out[i] = ToDomainFinancialYear(m)
	}
	return out
}
