package core

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Derived carries the runtime-dependent view of a summary: everything that
// needs "today" or a presentation sort. Deriving never mutates the summary.
type Derived struct {
	Today    time.Time
	DaysLeft int

	RemainingSpendable decimal.Decimal

	SpendingThisPeriod decimal.Decimal
	BillsThisPeriod    decimal.Decimal
	SavingsThisPeriod  decimal.Decimal

	OverspentBills    decimal.Decimal
	OverspentSavings  decimal.Decimal
	OverspentSpending decimal.Decimal

	OverflowConsumed  decimal.Decimal
	OverflowAvailable decimal.Decimal
	OverflowPct       float64

	// Spendables is sorted by LeftToday descending; LineItems by next
	// payment date ascending with undated (manual) items first. Both are
	// copies of the summary's lists.
	Spendables []SpendableOverview
	LineItems  []BudgetLineItem
}

// Derive computes the runtime values for the given moment. The overflow
// percentage measures how much of the post-withholding buffer has been eaten
// by overspending across the three buckets; it is floored at zero but kept
// unclamped above 100 so severe overspend stays visible.
func (s Summary) Derive(now time.Time) Derived {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	daysLeft := int(s.EndDate.Sub(today).Hours() / 24)
	if daysLeft < 0 {
		daysLeft = 0
	}
	daysLeft++ // both endpoints inclusive

	remaining := decimal.Zero
	for _, sp := range s.Spendables {
		remaining = remaining.Add(sp.Spendable)
	}

	overspent := func(actual, allowance decimal.Decimal) decimal.Decimal {
		over := actual.Sub(allowance)
		if over.IsNegative() {
			return decimal.Zero
		}
		return over
	}
	bills := s.Spend.Bills()
	savings := s.Spend.Savings()
	spending := s.Spend.Spending()

	d := Derived{
		Today:              today,
		DaysLeft:           daysLeft,
		RemainingSpendable: remaining,
		SpendingThisPeriod: spending,
		BillsThisPeriod:    bills,
		SavingsThisPeriod:  savings,
		OverspentBills:     overspent(bills, s.Stats.WithheldRequiredPayments),
		OverspentSavings:   overspent(savings, s.Stats.WithheldSavings),
		OverspentSpending:  overspent(spending, s.Stats.AllocatedSpending),
		OverflowAvailable:  s.Stats.BudgetAfterWithheldAndSpending,
	}
	d.OverflowConsumed = d.OverspentBills.Add(d.OverspentSavings).Add(d.OverspentSpending)

	if d.OverflowAvailable.IsPositive() {
		d.OverflowPct = d.OverflowConsumed.Div(d.OverflowAvailable).InexactFloat64() * 100
	}
	if d.OverflowPct < 0 {
		d.OverflowPct = 0
	}

	d.Spendables = append([]SpendableOverview(nil), s.Spendables...)
	slices.SortStableFunc(d.Spendables, func(a, b SpendableOverview) int {
		return b.LeftToday.Cmp(a.LeftToday)
	})

	d.LineItems = append([]BudgetLineItem(nil), s.LineItems...)
	slices.SortStableFunc(d.LineItems, func(a, b BudgetLineItem) int {
		return lineItemSortKey(a).Compare(lineItemSortKey(b))
	})

	return d
}

// lineItemSortKey treats a missing next payment as the minimum date so
// manual items always sort ahead of every dated item.
func lineItemSortKey(it BudgetLineItem) time.Time {
	if it.NextPayment == nil {
		return time.Time{}
	}
	return *it.NextPayment
}
