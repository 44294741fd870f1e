package report

import (
	"time"

	"github.com/shopspring/decimal"

	"budgetmail/internal/core"
)

// Context is the flat set of named values the template renders from. It is
// pure assembly: every number comes from the summary or its derived view,
// nothing is computed here.
type Context struct {
	Today    time.Time
	DaysLeft int

	Meta      core.Metadata
	StartDate time.Time
	EndDate   time.Time

	PeriodDays float64

	SpendingThisPeriod decimal.Decimal
	BillsThisPeriod    decimal.Decimal
	SavingsThisPeriod  decimal.Decimal
	RemainingSpendable decimal.Decimal

	OverflowPct       float64
	OverflowConsumed  decimal.Decimal
	OverflowAvailable decimal.Decimal

	Balances   []core.AccountBalance
	Spendables []core.SpendableOverview
	Payments   []core.PaymentsOverview
	Savings    []core.SavingsOverview
	Transfers  []core.TransferOverview
	LineItems  []core.BudgetLineItem

	Stats core.PeriodStats

	SentAt       string
	Horoscope    string
	HoroscopeURL string
	CustomAlert  string
}

// BuildContext flattens a summary and its derived view into the render
// context. Spendables arrive sorted by what is left today, line items by next
// payment date with manual items first.
func BuildContext(s core.Summary, now time.Time) Context {
	d := s.Derive(now)
	return Context{
		Today:              d.Today,
		DaysLeft:           d.DaysLeft,
		Meta:               s.Meta,
		StartDate:          s.StartDate,
		EndDate:            s.EndDate,
		PeriodDays:         s.PeriodDays,
		SpendingThisPeriod: d.SpendingThisPeriod,
		BillsThisPeriod:    d.BillsThisPeriod,
		SavingsThisPeriod:  d.SavingsThisPeriod,
		RemainingSpendable: d.RemainingSpendable,
		OverflowPct:        d.OverflowPct,
		OverflowConsumed:   d.OverflowConsumed,
		OverflowAvailable:  d.OverflowAvailable,
		Balances:           s.Balances,
		Spendables:         d.Spendables,
		Payments:           s.Payments,
		Savings:            s.Savings,
		Transfers:          s.Transfers,
		LineItems:          d.LineItems,
		Stats:              s.Stats,
		SentAt:             s.SentAt,
		Horoscope:          s.Horoscope,
		HoroscopeURL:       s.HoroscopeURL,
		CustomAlert:        s.CustomAlert,
	}
}
