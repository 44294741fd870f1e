package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Row offsets of the stats column. Value rows are interleaved with label
// rows: the account name sits at the top, the first amount three rows down,
// and every later field two rows below the previous one. The upstream sheet
// layout is a hard contract; see ParsePeriodStats.
const (
	statsRowIncomeAccount                   = 0
	statsRowTotalBudget                     = 3
	statsRowIncomeAtStart                   = 5
	statsRowCheckingAtStart                 = 7
	statsRowWithheldRequiredPayments        = 9
	statsRowWithheldSavings                 = 11
	statsRowBalanceAfterWithheld            = 13
	statsRowBudgetAfterWithheld             = 15
	statsRowAllocatedSpending               = 17
	statsRowBalanceAfterWithheldAndSpending = 19
	statsRowBudgetAfterWithheldAndSpending  = 21
	statsRowBudgetAfterWithheldAndSpent     = 23
	statsRowOverspentSoft                   = 25
	statsRowOverspentHard                   = 27
	statsRowCheckingFloor                   = 29
	statsRowFreeToSpend                     = 31

	statsMinRows = statsRowFreeToSpend + 1
)

// ParsePeriodStats extracts the period snapshot from the single-column stats
// block by fixed row index. Too few rows means the sheet layout drifted from
// the contract, which would silently corrupt every field - that is a fatal
// ErrLayoutMismatch, never a partial result.
func ParsePeriodStats(rows [][]string) (PeriodStats, error) {
	if len(rows) < statsMinRows {
		return PeriodStats{}, fmt.Errorf("%w: stats block has %d rows, need %d", ErrLayoutMismatch, len(rows), statsMinRows)
	}

	moneyAt := func(i int) (decimal.Decimal, error) {
		d, err := ParseMoney(cell(rows[i], 0))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("stats row %d: %w", i, err)
		}
		return d, nil
	}
	boolAt := func(i int) bool {
		return strings.EqualFold(cell(rows[i], 0), "TRUE")
	}

	var (
		s   PeriodStats
		err error
	)
	s.IncomeAccount = cell(rows[statsRowIncomeAccount], 0)

	fields := []struct {
		row int
		dst *decimal.Decimal
	}{
		{statsRowTotalBudget, &s.TotalBudget},
		{statsRowIncomeAtStart, &s.IncomeAtStart},
		{statsRowCheckingAtStart, &s.CheckingAtStart},
		{statsRowWithheldRequiredPayments, &s.WithheldRequiredPayments},
		{statsRowWithheldSavings, &s.WithheldSavings},
		{statsRowBalanceAfterWithheld, &s.BalanceAfterWithheld},
		{statsRowBudgetAfterWithheld, &s.BudgetAfterWithheld},
		{statsRowAllocatedSpending, &s.AllocatedSpending},
		{statsRowBalanceAfterWithheldAndSpending, &s.BalanceAfterWithheldAndSpending},
		{statsRowBudgetAfterWithheldAndSpending, &s.BudgetAfterWithheldAndSpending},
		{statsRowBudgetAfterWithheldAndSpent, &s.BudgetAfterWithheldAndSpent},
		{statsRowCheckingFloor, &s.CheckingFloor},
		{statsRowFreeToSpend, &s.FreeToSpend},
	}
	for _, f := range fields {
		if *f.dst, err = moneyAt(f.row); err != nil {
			return PeriodStats{}, err
		}
	}

	s.OverspentSoft = boolAt(statsRowOverspentSoft)
	s.OverspentHard = boolAt(statsRowOverspentHard)
	return s, nil
}
