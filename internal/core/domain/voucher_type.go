package domain

// VoucherNature governs the default behavior of vouchers of a type.
type VoucherNature string

const (
	NatureReceipt    VoucherNature = "RECEIPT"
	NaturePayment    VoucherNature = "PAYMENT"
	NatureContra     VoucherNature = "CONTRA"
	NatureJournal    VoucherNature = "JOURNAL"
	NatureSales      VoucherNature = "SALES"
	NaturePurchase   VoucherNature = "PURCHASE"
	NatureDebitNote  VoucherNature = "DEBIT_NOTE"
	NatureCreditNote VoucherNature = "CREDIT_NOTE"
)

// VoucherType describes a class of vouchers and its numbering scheme.
type VoucherType struct {
	VoucherTypeID  string        `json:"voucherTypeID"` // Primary Key (UUID)
	BusinessID     string        `json:"businessID"`
	Code           string        `json:"code"` // Unique per business
	Name           string        `json:"name"`
	Nature         VoucherNature `json:"nature"`
	Prefix         string        `json:"prefix"`
	AutoNumbering  bool          `json:"autoNumbering"`
	StartingNumber int64         `json:"startingNumber"`
	IsSystem       bool          `json:"isSystem"`
	AuditFields
}
