package domain

// AccountNature classifies a group of accounts by its fundamental accounting nature.
type AccountNature string

const (
	NatureAssets      AccountNature = "ASSETS"
	NatureLiabilities AccountNature = "LIABILITIES"
	NatureIncome      AccountNature = "INCOME"
	NatureExpense     AccountNature = "EXPENSE"
	NatureEquity      AccountNature = "EQUITY"
)

// DebitNormal reports whether accounts of this nature increase on the debit side.
func (n AccountNature) DebitNormal() bool {
	return n == NatureAssets || n == NatureExpense
}

// AccountGroup is a node in the per-business chart-of-accounts tree.
// The nature is stored redundantly on every node for query performance and
// must stay consistent with the root ancestor; the service enforces this on
// insert and re-parent.
type AccountGroup struct {
	AccountGroupID     string        `json:"accountGroupID"` // Primary Key (UUID)
	BusinessID         string        `json:"businessID"`
	Name               string        `json:"name"`
	ParentGroupID      *string       `json:"parentGroupID"` // Nullable self-reference, nil for root groups
	Nature             AccountNature `json:"nature"`
	AffectsGrossProfit bool          `json:"affectsGrossProfit"` // Direct vs indirect income/expense classification
	Sequence           int           `json:"sequence"`           // Display order among siblings
	IsSystem           bool          `json:"isSystem"`           // Seeded groups that cannot be deleted
	AuditFields
}
