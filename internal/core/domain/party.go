package domain

import "github.com/shopspring/decimal"

// PartyType distinguishes customers from suppliers.
type PartyType string

const (
	PartyCustomer PartyType = "CUSTOMER"
	PartySupplier PartyType = "SUPPLIER"
	PartyBoth     PartyType = "BOTH"
)

// Party is a customer or supplier. Each party owns exactly one backing
// ledger account (its receivable/payable control account).
type Party struct {
	PartyID         string           `json:"partyID"` // Primary Key (UUID)
	BusinessID      string           `json:"businessID"`
	LedgerAccountID string           `json:"ledgerAccountID"` // 1:1 control account
	Name            string           `json:"name"`
	Type            PartyType        `json:"type"`
	Phone           *string          `json:"phone"`
	Email           *string          `json:"email"`
	Address         *string          `json:"address"`
	TaxID           *string          `json:"taxID"`
	CreditLimit     *decimal.Decimal `json:"creditLimit"`
	CreditPeriod    *int             `json:"creditPeriod"` // Days
	IsActive        bool             `json:"isActive"`
	AuditFields
}
