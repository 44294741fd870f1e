package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMalformedAmount    = errors.New("malformed money amount")
	ErrUnknownSubcategory = errors.New("no category for subcategory")
	ErrLayoutMismatch     = errors.New("sheet layout mismatch")
)

// DateLayout is the fixed date format used throughout the spreadsheet.
const DateLayout = "01/02/2006"

// SpendCategory is the closed set of spend buckets. Every categorized spend
// row falls into exactly one of the three.
type SpendCategory int

const (
	CategorySpending SpendCategory = iota
	CategoryBills
	CategorySavings
)

func (c SpendCategory) String() string {
	switch c {
	case CategoryBills:
		return "Bills"
	case CategorySavings:
		return "Savings"
	default:
		return "Spending"
	}
}

// ExpenseType classifies a budget line item.
type ExpenseType int

const (
	ExpenseExpendable ExpenseType = iota
	ExpenseSaving
	ExpenseRequiredPayment
)

func (t ExpenseType) String() string {
	switch t {
	case ExpenseSaving:
		return "Saving"
	case ExpenseRequiredPayment:
		return "Required Payment"
	default:
		return "Expendable"
	}
}

// CategorizedSpend is one bucket/amount pair of the period's actual spend.
type CategorizedSpend struct {
	Category SpendCategory
	Amount   decimal.Decimal
}

// PeriodSpend is the full set of categorized spend rows for a period.
type PeriodSpend struct {
	Elements []CategorizedSpend
}

func (p PeriodSpend) sumWhere(want SpendCategory, all bool) decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.Elements {
		if all || e.Category == want {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// Spending returns the sum of all discretionary-spend rows.
func (p PeriodSpend) Spending() decimal.Decimal { return p.sumWhere(CategorySpending, false) }

// Bills returns the sum of all bill rows.
func (p PeriodSpend) Bills() decimal.Decimal { return p.sumWhere(CategoryBills, false) }

// Savings returns the sum of all savings rows.
func (p PeriodSpend) Savings() decimal.Decimal { return p.sumWhere(CategorySavings, false) }

// Total returns the sum across all buckets. It always equals
// Spending()+Bills()+Savings() since the category set is closed.
func (p PeriodSpend) Total() decimal.Decimal { return p.sumWhere(0, true) }

// AccountBalance is one account row: the manually entered balance, the
// calculated balance, and their signed difference. Diff is derived by the
// mapper and is always Manual - Calc.
type AccountBalance struct {
	Name   string
	Manual decimal.Decimal
	Calc   decimal.Decimal
	Diff   decimal.Decimal
}

// PaymentsOverview is a category's required-payment total for the period.
type PaymentsOverview struct {
	Category string
	Amount   decimal.Decimal
}

// SavingsOverview is a category's savings total for the period.
type SavingsOverview struct {
	Category string
	Amount   decimal.Decimal
}

// TransferOverview is a planned movement of money between two accounts.
type TransferOverview struct {
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
}

// SpendableOverview is a category's remaining spendable money: the total
// still spendable, the per-day rate for the rest of the period, and what is
// left to spend today.
type SpendableOverview struct {
	Category    string
	Spendable   decimal.Decimal
	FutureDaily decimal.Decimal
	LeftToday   decimal.Decimal
}

// BudgetLineItem is a single budget allocation. Manual items carry a flat
// category and no subcategory or due date; recurring items carry a
// subcategory resolved through the taxonomy, a funding account, and the next
// approximate payment date.
type BudgetLineItem struct {
	Category      string
	Subcategory   string // empty for manual items
	Amount        decimal.Decimal
	TimeframeDays float64
	Description   string
	Type          ExpenseType
	PaidFrom      string     // empty for manual items
	NextPayment   *time.Time // nil for manual items
}

// PeriodStats is the aggregate financial-health snapshot for the period,
// read from a fixed-layout stats column. See ParsePeriodStats for the
// positional contract.
type PeriodStats struct {
	IncomeAccount string

	TotalBudget     decimal.Decimal
	IncomeAtStart   decimal.Decimal
	CheckingAtStart decimal.Decimal

	WithheldRequiredPayments decimal.Decimal
	WithheldSavings          decimal.Decimal

	BalanceAfterWithheld decimal.Decimal
	BudgetAfterWithheld  decimal.Decimal

	AllocatedSpending decimal.Decimal

	BalanceAfterWithheldAndSpending decimal.Decimal
	BudgetAfterWithheldAndSpending  decimal.Decimal
	BudgetAfterWithheldAndSpent     decimal.Decimal

	// OverspentSoft: the allocated spending budget was exceeded.
	// OverspentHard: the checking floor was breached and outside money is
	// needed to cover required payments.
	OverspentSoft bool
	OverspentHard bool

	CheckingFloor decimal.Decimal
	FreeToSpend   decimal.Decimal
}

// Metadata names the budget and links back to its source spreadsheet.
type Metadata struct {
	Name           string
	SpreadsheetURL string
}

// Summary is the root aggregate for one reminder run. It is built once from
// freshly queried spreadsheet data and not mutated afterwards; runtime
// values (days left, overspend, sort views) come from Derive.
type Summary struct {
	Meta Metadata

	StartDate  time.Time
	EndDate    time.Time
	PeriodDays float64

	Spend     PeriodSpend
	Balances  []AccountBalance
	Transfers []TransferOverview

	Spendables []SpendableOverview
	Payments   []PaymentsOverview
	Savings    []SavingsOverview

	LineItems []BudgetLineItem
	Stats     PeriodStats

	SentAt string // display time, e.g. "8:00 AM"

	Horoscope    string
	HoroscopeURL string
	CustomAlert  string
}

// Subject computes the email subject line. The day a new period starts gets
// its own variant; every other day is a plain reminder.
func (s Summary) Subject(today time.Time) string {
	y1, m1, d1 := s.StartDate.Date()
	y2, m2, d2 := today.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "NEW BUDGET UNLOCKED FOR " + s.Meta.Name + "!!! - Budget Reminder"
	}
	return s.Meta.Name + " Budget Reminder"
}
