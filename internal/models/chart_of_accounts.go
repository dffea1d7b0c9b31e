package models

import "github.com/shopspring/decimal"

// AccountNature mirrors domain.AccountNature for storage.
type AccountNature string

// AccountGroup maps to the account_groups table.
type AccountGroup struct {
	AccountGroupID     string        `json:"accountGroupID"`
	BusinessID         string        `json:"businessID"`
	Name               string        `json:"name"`
	ParentGroupID      *string       `json:"parentGroupID"`
	Nature             AccountNature `json:"nature"`
	AffectsGrossProfit bool          `json:"affectsGrossProfit"`
	Sequence           int           `json:"sequence"`
	IsSystem           bool          `json:"isSystem"`
	AuditFields
}

// BalanceType mirrors domain.BalanceType for storage.
type BalanceType string

// LedgerAccount maps to the ledger_accounts table.
type LedgerAccount struct {
	LedgerAccountID    string          `json:"ledgerAccountID"`
	BusinessID         string          `json:"businessID"`
	AccountGroupID     string          `json:"accountGroupID"`
	Code               *string         `json:"code"`
	Name               string          `json:"name"`
	IsBankAccount      bool            `json:"isBankAccount"`
	IsCashAccount      bool            `json:"isCashAccount"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceType BalanceType     `json:"openingBalanceType"`
	IsActive           bool            `json:"isActive"`
	AuditFields
}

// PartyType mirrors domain.PartyType for storage.
type PartyType string

// Party maps to the parties table.
type Party struct {
	PartyID         string           `json:"partyID"`
	BusinessID      string           `json:"businessID"`
	LedgerAccountID string           `json:"ledgerAccountID"`
	Name            string           `json:"name"`
	Type            PartyType        `json:"type"`
	Phone           *string          `json:"phone"`
	Email           *string          `json:"email"`
	Address         *string          `json:"address"`
	TaxID           *string          `json:"taxID"`
	CreditLimit     *decimal.Decimal `json:"creditLimit"`
	CreditPeriod    *int             `json:"creditPeriod"`
	IsActive        bool             `json:"isActive"`
	AuditFields
}

// CostCenter maps to the cost_centers table.
type CostCenter struct {
	CostCenterID string  `json:"costCenterID"`
	BusinessID   string  `json:"businessID"`
	Name         string  `json:"name"`
	Code         *string `json:"code"`
	ParentID     *string `json:"parentID"`
	IsActive     bool    `json:"isActive"`
	AuditFields
}
