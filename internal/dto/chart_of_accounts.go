package dto

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountGroupRequest defines the payload for creating an account group.
// Nature is required for root groups and ignored for child groups, which
// inherit the parent's nature.
type CreateAccountGroupRequest struct {
	Name               string               `json:"name" binding:"required"`
	ParentGroupID      *string              `json:"parentGroupID"`
	Nature             domain.AccountNature `json:"nature" binding:"omitempty,oneof=ASSETS LIABILITIES INCOME EXPENSE EQUITY"`
	AffectsGrossProfit bool                 `json:"affectsGrossProfit"`
	Sequence           int                  `json:"sequence"`
}

// UpdateAccountGroupRequest defines the payload for updating an account group.
type UpdateAccountGroupRequest struct {
	Name          *string `json:"name"`
	ParentGroupID *string `json:"parentGroupID"`
	Sequence      *int    `json:"sequence"`
}

// AccountGroupResponse defines the data returned for an account group.
type AccountGroupResponse struct {
	AccountGroupID     string               `json:"accountGroupID"`
	Name               string               `json:"name"`
	ParentGroupID      *string              `json:"parentGroupID"`
	Nature             domain.AccountNature `json:"nature"`
	AffectsGrossProfit bool                 `json:"affectsGrossProfit"`
	Sequence           int                  `json:"sequence"`
	IsSystem           bool                 `json:"isSystem"`
}

// ToAccountGroupResponse converts a domain.AccountGroup to its response DTO.
func ToAccountGroupResponse(g *domain.AccountGroup) AccountGroupResponse {
	return AccountGroupResponse{
		AccountGroupID:     g.AccountGroupID,
		Name:               g.Name,
		ParentGroupID:      g.ParentGroupID,
		Nature:             g.Nature,
		AffectsGrossProfit: g.AffectsGrossProfit,
		Sequence:           g.Sequence,
		IsSystem:           g.IsSystem,
	}
}

// CreateLedgerAccountRequest defines the payload for creating a ledger account.
type CreateLedgerAccountRequest struct {
	AccountGroupID     string             `json:"accountGroupID" binding:"required"`
	Code               *string            `json:"code"`
	Name               string             `json:"name" binding:"required"`
	IsBankAccount      bool               `json:"isBankAccount"`
	IsCashAccount      bool               `json:"isCashAccount"`
	OpeningBalance     decimal.Decimal    `json:"openingBalance"`
	OpeningBalanceType domain.BalanceType `json:"openingBalanceType" binding:"omitempty,oneof=DEBIT CREDIT"`
}

// UpdateLedgerAccountRequest defines the payload for updating a ledger account.
type UpdateLedgerAccountRequest struct {
	Name               *string             `json:"name"`
	Code               *string             `json:"code"`
	AccountGroupID     *string             `json:"accountGroupID"`
	OpeningBalance     *decimal.Decimal    `json:"openingBalance"`
	OpeningBalanceType *domain.BalanceType `json:"openingBalanceType" binding:"omitempty,oneof=DEBIT CREDIT"`
}

// LedgerAccountResponse defines the data returned for a ledger account.
type LedgerAccountResponse struct {
	LedgerAccountID    string             `json:"ledgerAccountID"`
	AccountGroupID     string             `json:"accountGroupID"`
	Code               *string            `json:"code"`
	Name               string             `json:"name"`
	IsBankAccount      bool               `json:"isBankAccount"`
	IsCashAccount      bool               `json:"isCashAccount"`
	OpeningBalance     decimal.Decimal    `json:"openingBalance"`
	OpeningBalanceType domain.BalanceType `json:"openingBalanceType"`
	IsActive           bool               `json:"isActive"`
}

// ToLedgerAccountResponse converts a domain.LedgerAccount to its response DTO.
func ToLedgerAccountResponse(a *domain.LedgerAccount) LedgerAccountResponse {
	return LedgerAccountResponse{
		LedgerAccountID:    a.LedgerAccountID,
		AccountGroupID:     a.AccountGroupID,
		Code:               a.Code,
		Name:               a.Name,
		IsBankAccount:      a.IsBankAccount,
		IsCashAccount:      a.IsCashAccount,
		OpeningBalance:     a.OpeningBalance,
		OpeningBalanceType: a.OpeningBalanceType,
		IsActive:           a.IsActive,
	}
}

// ToLedgerAccountResponses converts a slice of domain ledger accounts.
func ToLedgerAccountResponses(accounts []domain.LedgerAccount) []LedgerAccountResponse {
	out := make([]LedgerAccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToLedgerAccountResponse(&accounts[i])
	}
	return out
}

// AccountBalanceResponse carries an account's computed balance including
// its opening balance.
type AccountBalanceResponse struct {
	LedgerAccountID string             `json:"ledgerAccountID"`
	Balance         decimal.Decimal    `json:"balance"`
	BalanceType     domain.BalanceType `json:"balanceType"`
}

// CreateCostCenterRequest defines the payload for creating a cost center.
type CreateCostCenterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Code     *string `json:"code"`
	ParentID *string `json:"parentID"`
}

// UpdateCostCenterRequest defines the payload for updating a cost center.
type UpdateCostCenterRequest struct {
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	ParentID *string `json:"parentID"`
}

// CostCenterResponse defines the data returned for a cost center.
type CostCenterResponse struct {
	CostCenterID string  `json:"costCenterID"`
	Name         string  `json:"name"`
	Code         *string `json:"code"`
	ParentID     *string `json:"parentID"`
	IsActive     bool    `json:"isActive"`
}

// ToCostCenterResponse converts a domain.CostCenter to its response DTO.
func ToCostCenterResponse(cc *domain.CostCenter) CostCenterResponse {
	return CostCenterResponse{
		CostCenterID: cc.CostCenterID,
		Name:         cc.Name,
		Code:         cc.Code,
		ParentID:     cc.ParentID,
		IsActive:     cc.IsActive,
	}
}
