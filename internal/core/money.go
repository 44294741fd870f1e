// Package core holds the budget domain model: money parsing, the
// row-to-entity mappers over raw spreadsheet cells, the category taxonomy,
// the fixed-offset period statistics block, and the summary derivation.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney normalizes free-form currency text into an exact decimal amount.
//
// Every character except digits, '.' and '-' is stripped before parsing, so
// "$1,234.56" and "-$45.00" both work. Empty (or all-whitespace) input is a
// defined zero, not an error. Non-empty input whose stripped residue does not
// parse as a number (e.g. "1.2.3", "--5", a lone "$") is ErrMalformedAmount.
func ParseMoney(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	return d, nil
}
