// Package google adapts the Google Sheets v4 API to the sheets.RangeQuerier
// port, authenticating with a read-only service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"budgetmail/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ sheets.RangeQuerier = (*Client)(nil)

// New creates a read-only Sheets client for one spreadsheet using service
// account credentials from the given file.
func New(ctx context.Context, spreadsheetID, serviceAccountFile string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(serviceAccountFile) == "" {
		return nil, errors.New("missing service account file")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsFile(serviceAccountFile),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// SpreadsheetURL returns the browser URL of the backing spreadsheet.
func (c *Client) SpreadsheetURL() string {
	return "https://docs.google.com/spreadsheets/d/" + c.spreadsheetID
}

// Query fetches a named range and flattens the API's untyped cells into
// trimmed strings.
func (c *Client) Query(ctx context.Context, rangeSpec string) ([][]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	start := time.Now()
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("query range %q: %w", rangeSpec, err)
	}
	slog.DebugContext(ctx, "Queried range",
		"range", rangeSpec,
		"rows", len(resp.Values),
		"duration_ms", time.Since(start).Milliseconds())

	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = toStrings(row)
	}
	return out, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
