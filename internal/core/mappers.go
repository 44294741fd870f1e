package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// cell returns the trimmed cell at index i, or "" when the row is shorter.
// The Sheets API omits trailing empty cells, so ragged rows are normal.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParsePeriodSpend consumes categorized-spend rows in label/amount pairs: a
// label row names the bucket, the row below it carries the amount. Labels
// containing "bill" map to Bills, "sav" to Savings, anything else to
// Spending (case-insensitive). Blank rows skip exactly one row so they never
// consume half of a pair.
func ParsePeriodSpend(rows [][]string) (PeriodSpend, error) {
	var out PeriodSpend
	for i := 0; i < len(rows); {
		label := cell(rows[i], 0)
		if label == "" {
			i++
			continue
		}
		var category SpendCategory
		switch lower := strings.ToLower(label); {
		case strings.Contains(lower, "bill"):
			category = CategoryBills
		case strings.Contains(lower, "sav"):
			category = CategorySavings
		default:
			category = CategorySpending
		}
		amountText := ""
		if i+1 < len(rows) {
			amountText = cell(rows[i+1], 0)
		}
		amount, err := ParseMoney(amountText)
		if err != nil {
			return PeriodSpend{}, fmt.Errorf("categorized spend %q: %w", label, err)
		}
		out.Elements = append(out.Elements, CategorizedSpend{Category: category, Amount: amount})
		i += 2
	}
	return out, nil
}

// ParseAccountBalances maps account rows with columns
// [name, amount at start, calculated, manual] into balances. The difference
// is always derived here as manual minus calculated.
func ParseAccountBalances(rows [][]string) ([]AccountBalance, error) {
	out := make([]AccountBalance, 0, len(rows))
	for _, row := range rows {
		name := cell(row, 0)
		calc, err := ParseMoney(cell(row, 2))
		if err != nil {
			return nil, fmt.Errorf("account %q calculated amount: %w", name, err)
		}
		manual, err := ParseMoney(cell(row, 3))
		if err != nil {
			return nil, fmt.Errorf("account %q manual amount: %w", name, err)
		}
		out = append(out, AccountBalance{
			Name:   name,
			Manual: manual,
			Calc:   calc,
			Diff:   manual.Sub(calc),
		})
	}
	return out, nil
}

// ParsePaymentsOverviews reads the payments column (index 1) of the shared
// payments/savings block. Rows whose payment amount is exactly zero are not
// materialized at all.
func ParsePaymentsOverviews(rows [][]string) ([]PaymentsOverview, error) {
	var out []PaymentsOverview
	for _, row := range rows {
		amount, err := ParseMoney(cell(row, 1))
		if err != nil {
			return nil, fmt.Errorf("payments overview %q: %w", cell(row, 0), err)
		}
		if amount.IsZero() {
			continue
		}
		out = append(out, PaymentsOverview{Category: cell(row, 0), Amount: amount})
	}
	return out, nil
}

// ParseSavingsOverviews reads the savings column (index 2) of the same block
// ParsePaymentsOverviews reads, with identical zero-row filtering.
func ParseSavingsOverviews(rows [][]string) ([]SavingsOverview, error) {
	var out []SavingsOverview
	for _, row := range rows {
		amount, err := ParseMoney(cell(row, 2))
		if err != nil {
			return nil, fmt.Errorf("savings overview %q: %w", cell(row, 0), err)
		}
		if amount.IsZero() {
			continue
		}
		out = append(out, SavingsOverview{Category: cell(row, 0), Amount: amount})
	}
	return out, nil
}

// ParseTransferOverviews maps [from, to, amount] rows, dropping zero-amount
// transfers.
func ParseTransferOverviews(rows [][]string) ([]TransferOverview, error) {
	var out []TransferOverview
	for _, row := range rows {
		amount, err := ParseMoney(cell(row, 2))
		if err != nil {
			return nil, fmt.Errorf("transfer %q -> %q: %w", cell(row, 0), cell(row, 1), err)
		}
		if amount.IsZero() {
			continue
		}
		out = append(out, TransferOverview{
			FromAccount: cell(row, 0),
			ToAccount:   cell(row, 1),
			Amount:      amount,
		})
	}
	return out, nil
}

// ParseSpendableOverviews maps [category, spendable, future daily,
// left today] rows. Unlike the filtering mappers, every row is retained,
// zero amounts included.
func ParseSpendableOverviews(rows [][]string) ([]SpendableOverview, error) {
	out := make([]SpendableOverview, 0, len(rows))
	for _, row := range rows {
		spendable, err := ParseMoney(cell(row, 1))
		if err != nil {
			return nil, fmt.Errorf("spendable overview %q: %w", cell(row, 0), err)
		}
		futureDaily, err := ParseMoney(cell(row, 2))
		if err != nil {
			return nil, fmt.Errorf("spendable overview %q future daily: %w", cell(row, 0), err)
		}
		leftToday, err := ParseMoney(cell(row, 3))
		if err != nil {
			return nil, fmt.Errorf("spendable overview %q left today: %w", cell(row, 0), err)
		}
		out = append(out, SpendableOverview{
			Category:    cell(row, 0),
			Spendable:   spendable,
			FutureDaily: futureDaily,
			LeftToday:   leftToday,
		})
	}
	return out, nil
}

// ParseManualLineItems maps manual budget rows with columns
// [category, amount, detail, is per-day expendable]. The flag drives the
// classification: "FALSE" means a required payment, anything else is
// expendable. The description is "<category> / <detail>" when a detail is
// present, otherwise just the category. Manual items span the whole period.
func ParseManualLineItems(periodDays float64, rows [][]string) ([]BudgetLineItem, error) {
	out := make([]BudgetLineItem, 0, len(rows))
	for _, row := range rows {
		category := cell(row, 0)
		amount, err := ParseMoney(cell(row, 1))
		if err != nil {
			return nil, fmt.Errorf("manual budget %q: %w", category, err)
		}
		description := category
		if detail := cell(row, 2); detail != "" {
			description = category + " / " + detail
		}
		expenseType := ExpenseExpendable
		if strings.EqualFold(cell(row, 3), "FALSE") {
			expenseType = ExpenseRequiredPayment
		}
		out = append(out, BudgetLineItem{
			Category:      category,
			Amount:        amount,
			TimeframeDays: periodDays,
			Description:   description,
			Type:          expenseType,
		})
	}
	return out, nil
}

// ParseRecurringLineItems maps recurring budget rows with columns
// [subcategory, description, amount, timeframe days, is saving, paid from,
// adjusted start (unused), next approx payment]. The subcategory must
// resolve to a parent category; a miss means the budget sheet and the
// category taxonomy disagree and the run cannot continue. The "is saving"
// flag drives the classification: "FALSE" means a required payment,
// anything else is a saving.
func ParseRecurringLineItems(tax Taxonomy, rows [][]string) ([]BudgetLineItem, error) {
	out := make([]BudgetLineItem, 0, len(rows))
	for _, row := range rows {
		subcategory := cell(row, 0)
		amount, err := ParseMoney(cell(row, 2))
		if err != nil {
			return nil, fmt.Errorf("recurring budget %q: %w", subcategory, err)
		}
		timeframe, err := strconv.ParseFloat(cell(row, 3), 64)
		if err != nil {
			return nil, fmt.Errorf("recurring budget %q timeframe: %w", subcategory, err)
		}
		expenseType := ExpenseSaving
		if strings.EqualFold(cell(row, 4), "FALSE") {
			expenseType = ExpenseRequiredPayment
		}
		nextPayment, err := time.Parse(DateLayout, cell(row, 7))
		if err != nil {
			return nil, fmt.Errorf("recurring budget %q next payment: %w", subcategory, err)
		}
		category, err := tax.Resolve(subcategory)
		if err != nil {
			return nil, err
		}
		out = append(out, BudgetLineItem{
			Category:      category,
			Subcategory:   subcategory,
			Amount:        amount,
			TimeframeDays: timeframe,
			Description:   cell(row, 1),
			Type:          expenseType,
			PaidFrom:      cell(row, 5),
			NextPayment:   &nextPayment,
		})
	}
	return out, nil
}
