// Package config loads the reminder configuration from a TOML file. The app
// password is read from a file next to the config or taken from the
// GMAIL_APP_PASSWORD environment variable, never from the config itself.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const appPasswordEnv = "GMAIL_APP_PASSWORD"

type Config struct {
	FromGmail           string `toml:"from-gmail"`
	FromGmailAppPwdFile string `toml:"from-gmail-app-pwd-file"`

	SMTPHost string `toml:"smtp-host"`
	SMTPPort int    `toml:"smtp-port"`

	HistoryDB string `toml:"history-db"`

	Accounts map[string]Account `toml:"accounts"`
}

// Account is one reminder recipient and the spreadsheet their budget lives in.
type Account struct {
	Name               string `toml:"name"`
	Email              string `toml:"email"`
	SpreadsheetID      string `toml:"spreadsheet-id"`
	ServiceAccountFile string `toml:"service-account-file"`
}

// Load reads and decodes the config file and fills in defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		SMTPHost:  "smtp.gmail.com",
		SMTPPort:  465,
		HistoryDB: "./data/history.db",
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks everything needed for a send run and reports all problems
// at once.
func (c *Config) Validate() error {
	var errs []string

	if c.FromGmail == "" {
		errs = append(errs, "from-gmail is required")
	}
	if c.FromGmailAppPwdFile == "" && os.Getenv(appPasswordEnv) == "" {
		errs = append(errs, fmt.Sprintf("either from-gmail-app-pwd-file or %s must be set", appPasswordEnv))
	} else if c.FromGmailAppPwdFile != "" {
		if _, err := os.Stat(c.FromGmailAppPwdFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("app password file does not exist: %s", c.FromGmailAppPwdFile))
		}
	}

	if c.SMTPPort < 1 || c.SMTPPort > 65535 {
		errs = append(errs, fmt.Sprintf("invalid smtp-port %d: must be between 1 and 65535", c.SMTPPort))
	}

	if len(c.Accounts) == 0 {
		errs = append(errs, "at least one [accounts.<name>] section is required")
	}
	for key, a := range c.Accounts {
		if a.Name == "" {
			errs = append(errs, fmt.Sprintf("accounts.%s: name is required", key))
		}
		if a.Email == "" {
			errs = append(errs, fmt.Sprintf("accounts.%s: email is required", key))
		}
		if a.SpreadsheetID == "" {
			errs = append(errs, fmt.Sprintf("accounts.%s: spreadsheet-id is required", key))
		}
		if a.ServiceAccountFile == "" {
			errs = append(errs, fmt.Sprintf("accounts.%s: service-account-file is required", key))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Account looks up a recipient account by its section key.
func (c *Config) Account(name string) (Account, error) {
	a, ok := c.Accounts[name]
	if !ok {
		return Account{}, fmt.Errorf("no account found with name %q", name)
	}
	return a, nil
}

// AppPassword resolves the SMTP app password: the environment variable wins,
// then the password file.
func (c *Config) AppPassword() (string, error) {
	if pwd := os.Getenv(appPasswordEnv); pwd != "" {
		return pwd, nil
	}
	data, err := os.ReadFile(c.FromGmailAppPwdFile)
	if err != nil {
		return "", fmt.Errorf("read app password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
