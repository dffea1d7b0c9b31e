package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

func ToModelReconciliation(d domain.AccountReconciliation) models.AccountReconciliation {
	return models.AccountReconciliation{
		ReconciliationID:  d.ReconciliationID,
		BusinessID:        d.BusinessID,
		LedgerAccountID:   d.LedgerAccountID,
		StatementDate:     d.StatementDate,
		StatementBalance:  d.StatementBalance,
		AccountBalance:    d.AccountBalance,
		ReconciledBalance: d.ReconciledBalance,
		Notes:             d.Notes,
		IsCompleted:       d.IsCompleted,
		CompletedAt:       d.CompletedAt,
		CompletedBy:       d.CompletedBy,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainReconciliation(m models.AccountReconciliation) domain.AccountReconciliation {
	return domain.AccountReconciliation{
		ReconciliationID:  m.ReconciliationID,
		BusinessID:        m.BusinessID,
		LedgerAccountID:   m.LedgerAccountID,
		StatementDate:     m.StatementDate,
		StatementBalance:  m.StatementBalance,
		AccountBalance:    m.AccountBalance,
		ReconciledBalance: m.ReconciledBalance,
		Notes:             m.Notes,
		IsCompleted:       m.IsCompleted,
		CompletedAt:       m.CompletedAt,
		CompletedBy:       m.CompletedBy,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainReconciliationSlice(ms []models.AccountReconciliation) []domain.AccountReconciliation {
	out := make([]domain.AccountReconciliation, len(ms))
	for i, m := range ms {
		out[i] = ToDomainReconciliation(m)
	}
	return out
}
