package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reminder.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	pwdFile := filepath.Join(dir, "app-pwd")
	require.NoError(t, os.WriteFile(pwdFile, []byte("secret\n"), 0600))

	cfg, err := Load(writeConfig(t, `
from-gmail = "sender@gmail.com"
from-gmail-app-pwd-file = "`+pwdFile+`"
history-db = "/tmp/history.db"

[accounts.jane]
name = "Jane"
email = "jane@example.test"
spreadsheet-id = "abc123"
service-account-file = "sa.json"
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "sender@gmail.com", cfg.FromGmail)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, "/tmp/history.db", cfg.HistoryDB)

	a, err := cfg.Account("jane")
	require.NoError(t, err)
	assert.Equal(t, "Jane", a.Name)
	assert.Equal(t, "abc123", a.SpreadsheetID)

	_, err = cfg.Account("bob")
	assert.Error(t, err)

	pwd, err := cfg.AppPassword()
	require.NoError(t, err)
	assert.Equal(t, "secret", pwd)
}

func TestAppPasswordEnvWins(t *testing.T) {
	t.Setenv("GMAIL_APP_PASSWORD", "from-env")
	cfg := &Config{FromGmailAppPwdFile: "/does/not/exist"}
	pwd, err := cfg.AppPassword()
	require.NoError(t, err)
	assert.Equal(t, "from-env", pwd)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
smtp-port = 99999

[accounts.jane]
email = "jane@example.test"
`))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "from-gmail is required")
	assert.Contains(t, msg, "smtp-port")
	assert.Contains(t, msg, "accounts.jane: name is required")
	assert.Contains(t, msg, "accounts.jane: spreadsheet-id is required")
}
