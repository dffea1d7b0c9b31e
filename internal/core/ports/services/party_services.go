package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// PartyReaderSvc defines read operations for party data
type PartyReaderSvc interface {
	// GetPartyByID retrieves a specific party by its ID.
	GetPartyByID(ctx context.Context, businessID string, partyID string, requestingUserID string) (*domain.Party, error)

	// ListParties retrieves parties in a business, optionally filtered by type.
	ListParties(ctx context.Context, businessID string, partyType *domain.PartyType, requestingUserID string) ([]domain.Party, error)

	// GetPartyBalance computes the party's outstanding balance from its
	// linked ledger account.
	GetPartyBalance(ctx context.Context, businessID string, partyID string, requestingUserID string) (*dto.PartyBalanceResponse, error)
}

// PartyWriterSvc defines write operations for party data
type PartyWriterSvc interface {
	// CreateParty persists a new party together with its ledger account.
	CreateParty(ctx context.Context, businessID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error)

	// UpdateParty updates an existing party. Name changes propagate to the
	// linked ledger account.
	UpdateParty(ctx context.Context, businessID string, partyID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Party, error)

	// DeactivateParty marks a party and its ledger account inactive.
	DeactivateParty(ctx context.Context, businessID string, partyID string, requestingUserID string) error
}

// PartySvcFacade combines all party-related service interfaces
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
}
