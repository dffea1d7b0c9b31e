package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PartyReader defines read operations for party data.
type PartyReader interface {
	// FindPartyByID retrieves a party by its unique identifier.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves parties of a business, optionally filtered by type.
	ListParties(ctx context.Context, businessID string, partyType *domain.PartyType, activeOnly bool) ([]domain.Party, error)

	// OutstandingBalance returns the signed balance of the party's control
	// account (debit positive) including its opening balance.
	OutstandingBalance(ctx context.Context, partyID string) (decimal.Decimal, error)
}

// PartyWriter defines write operations for party data.
type PartyWriter interface {
	// SavePartyWithAccount persists a party together with its backing control
	// account inside one transaction.
	SavePartyWithAccount(ctx context.Context, party domain.Party, account domain.LedgerAccount) error

	// UpdateParty updates an existing party's details.
	UpdateParty(ctx context.Context, party domain.Party) error

	// DeactivateParty marks a party (and its control account) inactive.
	DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error
}

// PartyRepositoryFacade combines all party-related repository interfaces.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}
