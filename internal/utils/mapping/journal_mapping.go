package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelJournalEntry converts a domain journal entry to its model form.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID:  d.JournalEntryID,
		BusinessID:      d.BusinessID,
		FinancialYearID: d.FinancialYearID,
		VoucherID:       d.VoucherID,
		VoucherItemID:   d.VoucherItemID,
		LedgerAccountID: d.LedgerAccountID,
		CostCenterID:    d.CostCenterID,
		Date:            d.Date,
		DebitAmount:     d.DebitAmount,
		CreditAmount:    d.CreditAmount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model journal entry to its domain form.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID:  m.JournalEntryID,
		BusinessID:      m.BusinessID,
		FinancialYearID: m.FinancialYearID,
		VoucherID:       m.VoucherID,
		VoucherItemID:   m.VoucherItemID,
		LedgerAccountID: m.LedgerAccountID,
		CostCenterID:    m.CostCenterID,
		Date:            m.Date,
		DebitAmount:     m.DebitAmount,
		CreditAmount:    m.CreditAmount,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model journal entries.
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	out := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalEntry(m)
	}
	return out
}
