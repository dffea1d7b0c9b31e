package dto

import "github.com/bizledger/bizledger_app/internal/core/domain"

// CreateVoucherTypeRequest defines the payload for creating a voucher type.
type CreateVoucherTypeRequest struct {
	Code           string               `json:"code" binding:"required,max=10"`
	Name           string               `json:"name" binding:"required"`
	Nature         domain.VoucherNature `json:"nature" binding:"required,oneof=RECEIPT PAYMENT CONTRA JOURNAL SALES PURCHASE DEBIT_NOTE CREDIT_NOTE"`
	Prefix         string               `json:"prefix"`
	AutoNumbering  bool                 `json:"autoNumbering"`
	StartingNumber int64                `json:"startingNumber" binding:"omitempty,min=1"`
}

// UpdateVoucherTypeRequest defines the payload for updating a voucher type.
type UpdateVoucherTypeRequest struct {
	Name          *string `json:"name"`
	Prefix        *string `json:"prefix"`
	AutoNumbering *bool   `json:"autoNumbering"`
}

// VoucherTypeResponse defines the data returned for a voucher type.
type VoucherTypeResponse struct {
	VoucherTypeID  string               `json:"voucherTypeID"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	Nature         domain.VoucherNature `json:"nature"`
	Prefix         string               `json:"prefix"`
	AutoNumbering  bool                 `json:"autoNumbering"`
	StartingNumber int64                `json:"startingNumber"`
	IsSystem       bool                 `json:"isSystem"`
}

// ToVoucherTypeResponse converts a domain.VoucherType to its response DTO.
func ToVoucherTypeResponse(vt *domain.VoucherType) VoucherTypeResponse {
	return VoucherTypeResponse{
		VoucherTypeID:  vt.VoucherTypeID,
		Code:           vt.Code,
		Name:           vt.Name,
		Nature:         vt.Nature,
		Prefix:         vt.Prefix,
		AutoNumbering:  vt.AutoNumbering,
		StartingNumber: vt.StartingNumber,
		IsSystem:       vt.IsSystem,
	}
}
