package domain_test

import (
	"testing"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestVoucherItem_OneSided(t *testing.T) {
	tests := []struct {
		name string
		item domain.VoucherItem
		want bool
	}{
		{
			name: "debit only",
			item: domain.VoucherItem{DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.Zero},
			want: true,
		},
		{
			name: "credit only",
			item: domain.VoucherItem{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(100)},
			want: true,
		},
		{
			name: "both sides set",
			item: domain.VoucherItem{DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.NewFromInt(100)},
			want: false,
		},
		{
			name: "both zero",
			item: domain.VoucherItem{DebitAmount: decimal.Zero, CreditAmount: decimal.Zero},
			want: false,
		},
		{
			name: "negative debit",
			item: domain.VoucherItem{DebitAmount: decimal.NewFromInt(-5), CreditAmount: decimal.Zero},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.OneSided())
		})
	}
}

func TestBalanced(t *testing.T) {
	items := []domain.VoucherItem{
		{DebitAmount: decimal.NewFromInt(575000), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(500000)},
		{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(75000)},
	}
	assert.True(t, domain.Balanced(items))

	debits, credits := domain.SumSides(items)
	assert.True(t, debits.Equal(decimal.NewFromInt(575000)))
	assert.True(t, credits.Equal(decimal.NewFromInt(575000)))

	unbalanced := []domain.VoucherItem{
		{DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(90)},
	}
	assert.False(t, domain.Balanced(unbalanced))
}

func TestBalanced_DecimalPrecision(t *testing.T) {
	// 0.1 + 0.2 must equal 0.3 exactly under decimal arithmetic.
	items := []domain.VoucherItem{
		{DebitAmount: decimal.RequireFromString("0.1"), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.RequireFromString("0.2"), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.Zero, CreditAmount: decimal.RequireFromString("0.3")},
	}
	assert.True(t, domain.Balanced(items))
}

func TestAccountReconciliation_InBalance(t *testing.T) {
	r := domain.AccountReconciliation{
		StatementBalance:  decimal.NewFromInt(2675000),
		ReconciledBalance: decimal.NewFromInt(2675000),
	}
	assert.True(t, r.InBalance())
	assert.True(t, r.Difference().IsZero())

	r.ReconciledBalance = decimal.NewFromInt(2670000)
	assert.False(t, r.InBalance())
	assert.True(t, r.Difference().Equal(decimal.NewFromInt(5000)))

	// Sub-cent differences are inside the epsilon.
	r.ReconciledBalance = decimal.RequireFromString("2674999.995")
	assert.True(t, r.InBalance())
}
