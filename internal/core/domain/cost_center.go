package domain

// CostCenter is a node in the per-business cost-center tree, used only as an
// optional tag on voucher lines for cross-cutting reporting.
type CostCenter struct {
	CostCenterID string  `json:"costCenterID"` // Primary Key (UUID)
	BusinessID   string  `json:"businessID"`
	Name         string  `json:"name"`
	Code         *string `json:"code"`
	ParentID     *string `json:"parentID"` // Nullable self-reference
	IsActive     bool    `json:"isActive"`
	AuditFields
}
