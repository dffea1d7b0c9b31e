package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

func ToModelAccountGroup(d domain.AccountGroup) models.AccountGroup {
	return models.AccountGroup{
		AccountGroupID:     d.AccountGroupID,
		BusinessID:         d.BusinessID,
		Name:               d.Name,
		ParentGroupID:      d.ParentGroupID,
		Nature:             models.AccountNature(d.Nature),
		AffectsGrossProfit: d.AffectsGrossProfit,
		Sequence:           d.Sequence,
		IsSystem:           d.IsSystem,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainAccountGroup(m models.AccountGroup) domain.AccountGroup {
	return domain.AccountGroup{
		AccountGroupID:     m.AccountGroupID,
		BusinessID:         m.BusinessID,
		Name:               m.Name,
		ParentGroupID:      m.ParentGroupID,
		Nature:             domain.AccountNature(m.Nature),
		AffectsGrossProfit: m.AffectsGrossProfit,
		Sequence:           m.Sequence,
		IsSystem:           m.IsSystem,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainAccountGroupSlice(ms []models.AccountGroup) []domain.AccountGroup {
	out := make([]domain.AccountGroup, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccountGroup(m)
	}
	return out
}

func ToModelLedgerAccount(d domain.LedgerAccount) models.LedgerAccount {
	return models.LedgerAccount{
		LedgerAccountID:    d.LedgerAccountID,
		BusinessID:         d.BusinessID,
		AccountGroupID:     d.AccountGroupID,
		Code:               d.Code,
		Name:               d.Name,
		IsBankAccount:      d.IsBankAccount,
		IsCashAccount:      d.IsCashAccount,
		OpeningBalance:     d.OpeningBalance,
		OpeningBalanceType: models.BalanceType(d.OpeningBalanceType),
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainLedgerAccount(m models.LedgerAccount) domain.LedgerAccount {
	return domain.LedgerAccount{
		LedgerAccountID:    m.LedgerAccountID,
		BusinessID:         m.BusinessID,
		AccountGroupID:     m.AccountGroupID,
		Code:               m.Code,
		Name:               m.Name,
		IsBankAccount:      m.IsBankAccount,
		IsCashAccount:      m.IsCashAccount,
		OpeningBalance:     m.OpeningBalance,
		OpeningBalanceType: domain.BalanceType(m.OpeningBalanceType),
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainLedgerAccountSlice(ms []models.LedgerAccount) []domain.LedgerAccount {
	out := make([]domain.LedgerAccount, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLedgerAccount(m)
	}
	return out
}

func ToModelCostCenter(d domain.CostCenter) models.CostCenter {
	return models.CostCenter{
		CostCenterID: d.CostCenterID,
		BusinessID:   d.BusinessID,
		Name:         d.Name,
		Code:         d.Code,
		ParentID:     d.ParentID,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCostCenter(m models.CostCenter) domain.CostCenter {
	return domain.CostCenter{
		CostCenterID: m.CostCenterID,
		BusinessID:   m.BusinessID,
		Name:         m.Name,
		Code:         m.Code,
		ParentID:     m.ParentID,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCostCenterSlice(ms []models.CostCenter) []domain.CostCenter {
	out := make([]domain.CostCenter, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCostCenter(m)
	}
	return out
}
