package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetmail/internal/core"
)

func sampleSummary() core.Summary {
	next := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	return core.Summary{
		Meta: core.Metadata{
			Name:           "Jane",
			SpreadsheetURL: "https://example.test/sheet",
		},
		StartDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		PeriodDays: 14,
		Spend: core.PeriodSpend{Elements: []core.CategorizedSpend{
			{Category: core.CategoryBills, Amount: decimal.NewFromInt(500)},
			{Category: core.CategorySpending, Amount: decimal.NewFromInt(150)},
		}},
		Balances: []core.AccountBalance{
			{Name: "Checking", Manual: decimal.NewFromInt(1000), Calc: decimal.NewFromInt(990), Diff: decimal.NewFromInt(10)},
		},
		Spendables: []core.SpendableOverview{
			{Category: "Groceries", Spendable: decimal.NewFromInt(120), LeftToday: decimal.NewFromInt(5)},
			{Category: "Fun", Spendable: decimal.NewFromInt(80), LeftToday: decimal.NewFromInt(20)},
		},
		LineItems: []core.BudgetLineItem{
			{Description: "Rent", Amount: decimal.NewFromInt(900), Type: core.ExpenseRequiredPayment, PaidFrom: "Checking", NextPayment: &next},
			{Description: "Fun / Games", Amount: decimal.NewFromInt(30), Type: core.ExpenseExpendable},
		},
		Stats: core.PeriodStats{
			WithheldRequiredPayments:       decimal.NewFromInt(600),
			AllocatedSpending:              decimal.NewFromInt(900),
			BudgetAfterWithheldAndSpending: decimal.NewFromInt(300),
			FreeToSpend:                    decimal.NewFromInt(1200),
			TotalBudget:                    decimal.NewFromInt(2000),
		},
		SentAt:       "8:00 AM",
		Horoscope:    "A careful day for spending.",
		HoroscopeURL: "https://example.test/horoscope",
	}
}

func TestBuildContextFlattensDerivedView(t *testing.T) {
	s := sampleSummary()
	ctx := BuildContext(s, time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 5, ctx.DaysLeft)
	assert.True(t, ctx.RemainingSpendable.Equal(decimal.NewFromInt(200)))

	// Sorted views, not the summary's raw order.
	require.Len(t, ctx.Spendables, 2)
	assert.Equal(t, "Fun", ctx.Spendables[0].Category)
	require.Len(t, ctx.LineItems, 2)
	assert.Equal(t, "Fun / Games", ctx.LineItems[0].Description)
}

func TestRenderDefaultTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.Render(sampleSummary(), time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, html, "Jane's Budget")
	assert.Contains(t, html, "$1200.00")
	assert.Contains(t, html, "09/30/2026")
	assert.Contains(t, html, "A careful day for spending.")
	assert.Contains(t, html, "https://example.test/sheet")
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1234.5", "$1234.50"},
		{"-12.5", "-$12.50"},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, FormatMoney(d))
	}
}
