package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary(t *testing.T) Summary {
	t.Helper()
	return Summary{
		Meta:      Metadata{Name: "Jane"},
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Spend: PeriodSpend{Elements: []CategorizedSpend{
			{Category: CategoryBills, Amount: dec(t, "600")},
			{Category: CategorySavings, Amount: dec(t, "200")},
			{Category: CategorySpending, Amount: dec(t, "150")},
		}},
		Spendables: []SpendableOverview{
			{Category: "Groceries", Spendable: dec(t, "120"), LeftToday: dec(t, "5")},
			{Category: "Fun", Spendable: dec(t, "80"), LeftToday: dec(t, "20")},
			{Category: "Gas", Spendable: dec(t, "40"), LeftToday: dec(t, "10")},
		},
		Stats: PeriodStats{
			WithheldRequiredPayments:       dec(t, "500"),
			WithheldSavings:                dec(t, "300"),
			AllocatedSpending:              dec(t, "900"),
			BudgetAfterWithheldAndSpending: dec(t, "300"),
		},
	}
}

func TestDeriveDaysLeft(t *testing.T) {
	s := testSummary(t)

	d := s.Derive(time.Date(2026, 9, 10, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, 5, d.DaysLeft)

	// On the end date itself one day remains; after it, never negative.
	d = s.Derive(time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, d.DaysLeft)
	d = s.Derive(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, d.DaysLeft)
}

func TestDeriveOverspendPerBucket(t *testing.T) {
	d := testSummary(t).Derive(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))

	// Bills 600 against 500 withheld -> 100 over; the other buckets are
	// within allowance and floor at zero.
	assert.True(t, d.OverspentBills.Equal(dec(t, "100")))
	assert.True(t, d.OverspentSavings.IsZero())
	assert.True(t, d.OverspentSpending.IsZero())
	assert.True(t, d.OverflowConsumed.Equal(dec(t, "100")))
	assert.InDelta(t, 100.0/300.0*100, d.OverflowPct, 1e-9)
}

func TestDeriveOverflowPctZeroWhenNoBuffer(t *testing.T) {
	s := testSummary(t)
	s.Stats.BudgetAfterWithheldAndSpending = decimal.Zero
	d := s.Derive(time.Now())
	assert.Equal(t, 0.0, d.OverflowPct)

	s.Stats.BudgetAfterWithheldAndSpending = dec(t, "-50")
	d = s.Derive(time.Now())
	assert.Equal(t, 0.0, d.OverflowPct)
}

func TestDeriveOverflowPctMayExceedHundred(t *testing.T) {
	s := testSummary(t)
	s.Stats.BudgetAfterWithheldAndSpending = dec(t, "40")
	d := s.Derive(time.Now())
	assert.Greater(t, d.OverflowPct, 100.0)
}

func TestDeriveRemainingSpendable(t *testing.T) {
	d := testSummary(t).Derive(time.Now())
	assert.True(t, d.RemainingSpendable.Equal(dec(t, "240")))
}

func TestDeriveSpendableSortIsAViewOnly(t *testing.T) {
	s := testSummary(t)
	d := s.Derive(time.Now())

	require.Len(t, d.Spendables, 3)
	assert.Equal(t, "Fun", d.Spendables[0].Category)
	assert.Equal(t, "Gas", d.Spendables[1].Category)
	assert.Equal(t, "Groceries", d.Spendables[2].Category)

	// The summary's own list keeps its original order.
	assert.Equal(t, "Groceries", s.Spendables[0].Category)

	// Sorting an already sorted list is idempotent.
	again := s.Derive(time.Now())
	assert.Equal(t, d.Spendables, again.Spendables)
}

func TestDeriveLineItemsUndatedFirst(t *testing.T) {
	early := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	s := testSummary(t)
	s.LineItems = []BudgetLineItem{
		{Description: "dated late", NextPayment: &late},
		{Description: "manual one"},
		{Description: "dated early", NextPayment: &early},
		{Description: "manual two"},
	}

	d := s.Derive(time.Now())
	require.Len(t, d.LineItems, 4)
	assert.Equal(t, "manual one", d.LineItems[0].Description)
	assert.Equal(t, "manual two", d.LineItems[1].Description)
	assert.Equal(t, "dated early", d.LineItems[2].Description)
	assert.Equal(t, "dated late", d.LineItems[3].Description)
}

func TestSubjectLine(t *testing.T) {
	s := testSummary(t)
	assert.Equal(t, "NEW BUDGET UNLOCKED FOR Jane!!! - Budget Reminder",
		s.Subject(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Jane Budget Reminder",
		s.Subject(time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)))
}
