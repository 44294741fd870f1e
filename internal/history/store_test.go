package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.Record(ctx, Run{
			Account:     "jane",
			Subject:     "Jane Budget Reminder",
			Recipients:  []string{"jane@example.test"},
			DaysLeft:    14 - i,
			OverflowPct: 12.5,
			SentAt:      base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}
	_, err := store.Record(ctx, Run{
		Account: "bob",
		Subject: "Bob Budget Reminder",
		DryRun:  true,
		SentAt:  base,
	})
	require.NoError(t, err)

	runs, err := store.Recent(ctx, "jane", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Newest first.
	assert.True(t, runs[0].SentAt.After(runs[1].SentAt))
	assert.Equal(t, []string{"jane@example.test"}, runs[0].Recipients)
	assert.Equal(t, 12, runs[0].DaysLeft)
	assert.Equal(t, 12.5, runs[0].OverflowPct)

	all, err := store.Recent(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	bob, err := store.Recent(ctx, "bob", 10)
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.True(t, bob[0].DryRun)
	assert.Empty(t, bob[0].Recipients)
}
