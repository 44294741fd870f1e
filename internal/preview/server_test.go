package preview

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetmail/internal/core"
	"budgetmail/internal/log"
)

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budget-email.html")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func testServer(t *testing.T, templateBody string) *Server {
	t.Helper()
	summary := core.Summary{
		Meta:      core.Metadata{Name: "Jane"},
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	}
	return New(summary, writeTemplate(t, templateBody), "", 0, log.New(log.DefaultConfig()))
}

func TestHandleReportServesRenderedTemplate(t *testing.T) {
	s := testServer(t, "<p>{{.Meta.Name}} has {{.DaysLeft}} days</p>")
	require.NoError(t, s.render())

	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	for _, path := range []string{"/", "/output.html"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "Jane has")
	}
}

func TestRenderWritesOutputFile(t *testing.T) {
	s := testServer(t, "<p>{{.Meta.Name}}</p>")
	s.outputPath = filepath.Join(t.TempDir(), "output.html")
	require.NoError(t, s.render())

	body, err := os.ReadFile(s.outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Jane")
}

func TestRunInitialRenderFailure(t *testing.T) {
	s := testServer(t, "{{.Broken")
	err := s.Run(context.Background(), strings.NewReader(""))
	require.Error(t, err)
}

func TestRunQuitCommand(t *testing.T) {
	s := testServer(t, "<p>ok</p>")

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background(), strings.NewReader("q\n")) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop on quit command")
	}
}
