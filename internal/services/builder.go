// Package services orchestrates a reminder run: querying the spreadsheet's
// named ranges and assembling the core summary.
package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"budgetmail/internal/core"
	"budgetmail/internal/log"
	"budgetmail/internal/sheets"
)

// The named ranges the budget spreadsheet exposes. Their column layouts are
// the positional contract the core mappers parse against.
const (
	rangeCategories       = "Categories!C:Z"
	rangePeriodSize       = "Budgeting!$AH$2"
	rangePeriodStart      = "Budgeting!$AG$2"
	rangePeriodEnd        = "Budgeting!$AG$4"
	rangeAccountBalances  = "Accounts!A2:D"
	rangeSpendable        = "Overview!B2:E"
	rangeTransfers        = "Overview!G2:I"
	rangePaymentsSavings  = "Budgeting!Y2:AB"
	rangeManualBudgets    = "Budgeting!H2:K"
	rangeRecurringBudgets = "Budgeting!O2:V"
	rangePeriodStats      = "Accounts!I:I"
	rangeCategorizedSpend = "Budget Calc!A5:A10"
)

// SummaryBuilder turns freshly queried spreadsheet rows into a core.Summary.
type SummaryBuilder struct {
	querier sheets.RangeQuerier
	logger  *log.Logger
}

func NewSummaryBuilder(querier sheets.RangeQuerier, logger *log.Logger) *SummaryBuilder {
	return &SummaryBuilder{querier: querier, logger: logger.WithComponent(log.ComponentBuilder)}
}

// Build queries every range and assembles the summary. All parse errors are
// surfaced; nothing is retried here - a failed query or a malformed block
// aborts the run.
func (b *SummaryBuilder) Build(ctx context.Context, meta core.Metadata, sentAt string) (core.Summary, error) {
	taxonomy, err := b.buildTaxonomy(ctx)
	if err != nil {
		return core.Summary{}, err
	}

	periodDays, err := b.querySingleFloat(ctx, rangePeriodSize)
	if err != nil {
		return core.Summary{}, fmt.Errorf("period size: %w", err)
	}
	startDate, err := b.querySingleDate(ctx, rangePeriodStart)
	if err != nil {
		return core.Summary{}, fmt.Errorf("period start: %w", err)
	}
	endDate, err := b.querySingleDate(ctx, rangePeriodEnd)
	if err != nil {
		return core.Summary{}, fmt.Errorf("period end: %w", err)
	}

	balanceRows, err := b.querier.Query(ctx, rangeAccountBalances)
	if err != nil {
		return core.Summary{}, err
	}
	balances, err := core.ParseAccountBalances(balanceRows)
	if err != nil {
		return core.Summary{}, err
	}

	spendableRows, err := b.querier.Query(ctx, rangeSpendable)
	if err != nil {
		return core.Summary{}, err
	}
	spendables, err := core.ParseSpendableOverviews(spendableRows)
	if err != nil {
		return core.Summary{}, err
	}

	transferRows, err := b.querier.Query(ctx, rangeTransfers)
	if err != nil {
		return core.Summary{}, err
	}
	transfers, err := core.ParseTransferOverviews(transferRows)
	if err != nil {
		return core.Summary{}, err
	}

	// Payments and savings overviews read different columns of one block.
	overviewRows, err := b.querier.Query(ctx, rangePaymentsSavings)
	if err != nil {
		return core.Summary{}, err
	}
	payments, err := core.ParsePaymentsOverviews(overviewRows)
	if err != nil {
		return core.Summary{}, err
	}
	savings, err := core.ParseSavingsOverviews(overviewRows)
	if err != nil {
		return core.Summary{}, err
	}

	manualRows, err := b.querier.Query(ctx, rangeManualBudgets)
	if err != nil {
		return core.Summary{}, err
	}
	lineItems, err := core.ParseManualLineItems(periodDays, manualRows)
	if err != nil {
		return core.Summary{}, err
	}
	recurringRows, err := b.querier.Query(ctx, rangeRecurringBudgets)
	if err != nil {
		return core.Summary{}, err
	}
	recurring, err := core.ParseRecurringLineItems(taxonomy, recurringRows)
	if err != nil {
		return core.Summary{}, err
	}
	lineItems = append(lineItems, recurring...)

	statsRows, err := b.querier.Query(ctx, rangePeriodStats)
	if err != nil {
		return core.Summary{}, err
	}
	stats, err := core.ParsePeriodStats(statsRows)
	if err != nil {
		return core.Summary{}, err
	}

	spendRows, err := b.querier.Query(ctx, rangeCategorizedSpend)
	if err != nil {
		return core.Summary{}, err
	}
	spend, err := core.ParsePeriodSpend(spendRows)
	if err != nil {
		return core.Summary{}, err
	}

	b.logger.InfoContext(ctx, "Summary built",
		"accounts", len(balances),
		"line_items", len(lineItems),
		"transfers", len(transfers),
		"period_days", periodDays)

	return core.Summary{
		Meta:       meta,
		StartDate:  startDate,
		EndDate:    endDate,
		PeriodDays: periodDays,
		Spend:      spend,
		Balances:   balances,
		Transfers:  transfers,
		Spendables: spendables,
		Payments:   payments,
		Savings:    savings,
		LineItems:  lineItems,
		Stats:      stats,
		SentAt:     sentAt,
	}, nil
}

func (b *SummaryBuilder) buildTaxonomy(ctx context.Context) (core.Taxonomy, error) {
	rows, err := b.querier.Query(ctx, rangeCategories)
	if err != nil {
		return core.Taxonomy{}, fmt.Errorf("categories: %w", err)
	}
	return core.NewTaxonomy(rows), nil
}

func (b *SummaryBuilder) querySingleCell(ctx context.Context, rangeSpec string) (string, error) {
	rows, err := b.querier.Query(ctx, rangeSpec)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return "", fmt.Errorf("%w: range %q is empty", core.ErrLayoutMismatch, rangeSpec)
	}
	return rows[0][0], nil
}

func (b *SummaryBuilder) querySingleFloat(ctx context.Context, rangeSpec string) (float64, error) {
	cell, err := b.querySingleCell(ctx, rangeSpec)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("range %q: %w", rangeSpec, err)
	}
	return v, nil
}

func (b *SummaryBuilder) querySingleDate(ctx context.Context, rangeSpec string) (time.Time, error) {
	cell, err := b.querySingleCell(ctx, rangeSpec)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(core.DateLayout, cell)
	if err != nil {
		return time.Time{}, fmt.Errorf("range %q: %w", rangeSpec, err)
	}
	return t, nil
}
