package dto

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest defines the payload for creating a party. The matching
// ledger account is created alongside under the supplied account group.
type CreatePartyRequest struct {
	Name           string           `json:"name" binding:"required"`
	Type           domain.PartyType `json:"type" binding:"required,oneof=CUSTOMER SUPPLIER BOTH"`
	AccountGroupID string           `json:"accountGroupID" binding:"required"`
	Phone          *string          `json:"phone"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Address        *string          `json:"address"`
	TaxID          *string          `json:"taxID"`
	CreditLimit    *decimal.Decimal `json:"creditLimit"`
	CreditPeriod   *int             `json:"creditPeriodDays"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	OpeningBalanceType domain.BalanceType `json:"openingBalanceType" binding:"omitempty,oneof=DEBIT CREDIT"`
}

// UpdatePartyRequest defines the payload for updating a party.
type UpdatePartyRequest struct {
	Name         *string           `json:"name"`
	Type         *domain.PartyType `json:"type" binding:"omitempty,oneof=CUSTOMER SUPPLIER BOTH"`
	Phone        *string           `json:"phone"`
	Email        *string           `json:"email" binding:"omitempty,email"`
	Address      *string           `json:"address"`
	TaxID        *string           `json:"taxID"`
	CreditLimit  *decimal.Decimal  `json:"creditLimit"`
	CreditPeriod *int              `json:"creditPeriodDays"`
}

// PartyResponse defines the data returned for a party.
type PartyResponse struct {
	PartyID         string           `json:"partyID"`
	Name            string           `json:"name"`
	Type            domain.PartyType `json:"type"`
	LedgerAccountID string           `json:"ledgerAccountID"`
	Phone           *string          `json:"phone"`
	Email           *string          `json:"email"`
	Address         *string          `json:"address"`
	TaxID           *string          `json:"taxID"`
	CreditLimit     *decimal.Decimal `json:"creditLimit"`
	CreditPeriod    *int             `json:"creditPeriodDays"`
	IsActive        bool             `json:"isActive"`
}

// ToPartyResponse converts a domain.Party to its response DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:         p.PartyID,
		Name:            p.Name,
		Type:            p.Type,
		LedgerAccountID: p.LedgerAccountID,
		Phone:           p.Phone,
		Email:           p.Email,
		Address:         p.Address,
		TaxID:           p.TaxID,
		CreditLimit:     p.CreditLimit,
		CreditPeriod:    p.CreditPeriod,
		IsActive:        p.IsActive,
	}
}

// PartyBalanceResponse carries a party's outstanding ledger balance.
type PartyBalanceResponse struct {
	PartyID     string          `json:"partyID"`
	Balance     decimal.Decimal `json:"balance"`
	BalanceType string          `json:"balanceType"`
}
