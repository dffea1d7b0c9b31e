package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelVoucher converts a domain voucher (header only) to its model form.
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:       d.VoucherID,
		BusinessID:      d.BusinessID,
		VoucherTypeID:   d.VoucherTypeID,
		FinancialYearID: d.FinancialYearID,
		VoucherNumber:   d.VoucherNumber,
		Sequence:        d.Sequence,
		Date:            d.Date,
		PartyID:         d.PartyID,
		Narration:       d.Narration,
		TotalAmount:     d.TotalAmount,
		IsPosted:        d.IsPosted,
		IsDeleted:       d.IsDeleted,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a model voucher to its domain form (items not populated).
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:       m.VoucherID,
		BusinessID:      m.BusinessID,
		VoucherTypeID:   m.VoucherTypeID,
		FinancialYearID: m.FinancialYearID,
		VoucherNumber:   m.VoucherNumber,
		Sequence:        m.Sequence,
		Date:            m.Date,
		PartyID:         m.PartyID,
		Narration:       m.Narration,
		TotalAmount:     m.TotalAmount,
		IsPosted:        m.IsPosted,
		IsDeleted:       m.IsDeleted,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelVoucherItem converts a domain voucher item to its model form.
func ToModelVoucherItem(d domain.VoucherItem) models.VoucherItem {
	return models.VoucherItem{
		VoucherItemID:   d.VoucherItemID,
		VoucherID:       d.VoucherID,
		LedgerAccountID: d.LedgerAccountID,
		CostCenterID:    d.CostCenterID,
		DebitAmount:     d.DebitAmount,
		CreditAmount:    d.CreditAmount,
		Narration:       d.Narration,
		Sequence:        d.Sequence,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucherItem converts a model voucher item to its domain form.
func ToDomainVoucherItem(m models.VoucherItem) domain.VoucherItem {
	return domain.VoucherItem{
		VoucherItemID:   m.VoucherItemID,
		VoucherID:       m.VoucherID,
		LedgerAccountID: m.LedgerAccountID,
		CostCenterID:    m.CostCenterID,
		DebitAmount:     m.DebitAmount,
		CreditAmount:    m.CreditAmount,
		Narration:       m.Narration,
		Sequence:        m.Sequence,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVoucherItemSlice converts a slice of model voucher items.
func ToDomainVoucherItemSlice(ms []models.VoucherItem) []domain.VoucherItem {
	out := make([]domain.VoucherItem, len(ms))
	for i, m := range ms {
		out[i] = ToDomainVoucherItem(m)
	}
	return out
}
