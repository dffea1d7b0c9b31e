package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherItemRequest is a single line on a voucher. Exactly one of
// debitAmount and creditAmount must be positive, the other zero.
type VoucherItemRequest struct {
	LedgerAccountID string          `json:"ledgerAccountID" binding:"required"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	CostCenterID    *string         `json:"costCenterID"`
	Narration       string          `json:"narration"`
}

// CreateVoucherRequest defines the payload for creating a voucher.
// VoucherNumber is only honored for types with manual numbering.
type CreateVoucherRequest struct {
	VoucherTypeID string               `json:"voucherTypeID" binding:"required"`
	Date          time.Time            `json:"date" binding:"required"`
	VoucherNumber *string              `json:"voucherNumber"`
	PartyID       *string              `json:"partyID"`
	Narration     string               `json:"narration"`
	Items         []VoucherItemRequest `json:"items" binding:"required,min=2,dive"`
}

// UpdateVoucherRequest defines the payload for updating a voucher. Items,
// when present, fully replace the existing lines.
type UpdateVoucherRequest struct {
	Date      *time.Time           `json:"date"`
	PartyID   *string              `json:"partyID"`
	Narration *string              `json:"narration"`
	Items     []VoucherItemRequest `json:"items" binding:"omitempty,min=2,dive"`
}

// VoucherItemResponse defines a voucher line in responses.
type VoucherItemResponse struct {
	VoucherItemID   string          `json:"voucherItemID"`
	LedgerAccountID string          `json:"ledgerAccountID"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	CostCenterID    *string         `json:"costCenterID"`
	Narration       string          `json:"narration"`
	Sequence        int             `json:"sequence"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID       string                `json:"voucherID"`
	BusinessID      string                `json:"businessID"`
	VoucherTypeID   string                `json:"voucherTypeID"`
	FinancialYearID string                `json:"financialYearID"`
	VoucherNumber   string                `json:"voucherNumber"`
	Date            time.Time             `json:"date"`
	PartyID         *string               `json:"partyID"`
	Narration       string                `json:"narration"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	IsPosted        bool                  `json:"isPosted"`
	Items           []VoucherItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ToVoucherItemResponse converts a domain voucher item to its response DTO.
func ToVoucherItemResponse(it *domain.VoucherItem) VoucherItemResponse {
	return VoucherItemResponse{
		VoucherItemID:   it.VoucherItemID,
		LedgerAccountID: it.LedgerAccountID,
		DebitAmount:     it.DebitAmount,
		CreditAmount:    it.CreditAmount,
		CostCenterID:    it.CostCenterID,
		Narration:       it.Narration,
		Sequence:        it.Sequence,
	}
}

// ToVoucherResponse converts a domain voucher, including any loaded items.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:       v.VoucherID,
		BusinessID:      v.BusinessID,
		VoucherTypeID:   v.VoucherTypeID,
		FinancialYearID: v.FinancialYearID,
		VoucherNumber:   v.VoucherNumber,
		Date:            v.Date,
		PartyID:         v.PartyID,
		Narration:       v.Narration,
		TotalAmount:     v.TotalAmount,
		IsPosted:        v.IsPosted,
		CreatedAt:       v.CreatedAt,
		CreatedBy:       v.CreatedBy,
	}
	if len(v.Items) > 0 {
		resp.Items = make([]VoucherItemResponse, len(v.Items))
		for i := range v.Items {
			resp.Items[i] = ToVoucherItemResponse(&v.Items[i])
		}
	}
	return resp
}

// ListVouchersParams are query parameters for listing vouchers.
type ListVouchersParams struct {
	VoucherTypeID   *string    `form:"voucherTypeID"`
	FinancialYearID *string    `form:"financialYearID"`
	PartyID         *string    `form:"partyID"`
	FromDate        *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate          *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit           int        `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken       *string    `form:"nextToken"`
}

// ListVouchersResponse is a token-paginated page of vouchers.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// JournalEntryResponse defines a posted journal entry in responses.
type JournalEntryResponse struct {
	JournalEntryID  string          `json:"journalEntryID"`
	VoucherID       string          `json:"voucherID"`
	LedgerAccountID string          `json:"ledgerAccountID"`
	CostCenterID    *string         `json:"costCenterID"`
	Date            time.Time       `json:"date"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
}

// ToJournalEntryResponse converts a domain journal entry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		JournalEntryID:  e.JournalEntryID,
		VoucherID:       e.VoucherID,
		LedgerAccountID: e.LedgerAccountID,
		CostCenterID:    e.CostCenterID,
		Date:            e.Date,
		DebitAmount:     e.DebitAmount,
		CreditAmount:    e.CreditAmount,
	}
}

// ToJournalEntryResponses converts a slice of domain journal entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}

// ListJournalEntriesParams are query parameters for an account's ledger view.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse is a token-paginated page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}
