// Package sheets defines the outbound port to the spreadsheet data source.
package sheets

import "context"

// RangeQuerier reads a named rectangular region of the spreadsheet as rows
// of text cells. Each region's exact column layout is a fixed contract
// between the core mappers and the sheet; adapters only move cells, never
// interpret them.
type RangeQuerier interface {
	Query(ctx context.Context, rangeSpec string) ([][]string, error)
}
