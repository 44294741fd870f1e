// Package cli wires the budgetmail commands together.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"budgetmail/internal/config"
	"budgetmail/internal/core"
	"budgetmail/internal/horoscope"
	"budgetmail/internal/log"
	"budgetmail/internal/services"
	"budgetmail/internal/sheets/google"
)

var (
	flagAccount  string
	flagAt       string
	flagConfig   string
	flagBirthday string
	flagTemplate string
	flagAlert    string
)

var rootCmd = &cobra.Command{
	Use:   "budgetmail",
	Short: "Budget reminder emails from a Google spreadsheet",
	Long: "budgetmail queries a budget spreadsheet, derives the period's " +
		"budget health, and renders it into an HTML reminder email.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAccount, "for", "", "Account to send the reminder for")
	rootCmd.PersistentFlags().StringVar(&flagAt, "at", "", "Display time of the reminder (e.g. \"8:00 AM\")")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "using", "", "Configuration file to use")
	rootCmd.PersistentFlags().StringVar(&flagBirthday, "birthday", "", "Birthday (YYYY-MM-DD or MM-DD) for the optional horoscope")
	rootCmd.PersistentFlags().StringVar(&flagTemplate, "template", "", "Template file to use instead of the built-in one")
	rootCmd.PersistentFlags().StringVar(&flagAlert, "alert", "", "Custom alert line to show at the top of the report")
}

func rootLogger() *log.Logger {
	return log.New(log.DefaultConfig()).WithComponent(log.ComponentApp)
}

func loadConfig() (*config.Config, config.Account, error) {
	if flagConfig == "" {
		return nil, config.Account{}, errors.New("--using is required")
	}
	if flagAccount == "" {
		return nil, config.Account{}, errors.New("--for is required")
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, config.Account{}, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, config.Account{}, err
	}
	account, err := cfg.Account(flagAccount)
	if err != nil {
		return nil, config.Account{}, err
	}
	return cfg, account, nil
}

// buildSummary queries the account's spreadsheet and assembles the summary,
// including the optional horoscope. Horoscope failures are logged and
// swallowed: the reminder goes out without one.
func buildSummary(ctx context.Context, logger *log.Logger, account config.Account) (core.Summary, error) {
	sheet, err := google.New(ctx, account.SpreadsheetID, account.ServiceAccountFile)
	if err != nil {
		return core.Summary{}, err
	}

	builder := services.NewSummaryBuilder(sheet, logger)
	meta := core.Metadata{
		Name:           account.Name,
		SpreadsheetURL: sheet.SpreadsheetURL(),
	}
	summary, err := builder.Build(ctx, meta, flagAt)
	if err != nil {
		return core.Summary{}, fmt.Errorf("build summary for %q: %w", account.Name, err)
	}
	summary.CustomAlert = flagAlert

	if flagBirthday != "" {
		sign, err := horoscope.SignForBirthday(flagBirthday)
		if err != nil {
			logger.Warn("Skipping horoscope", log.FieldError, err.Error())
			return summary, nil
		}
		daily, err := horoscope.NewClient(logger, 12*time.Hour).Fetch(ctx, sign)
		if err != nil {
			logger.Warn("Skipping horoscope", "sign", sign.String(), log.FieldError, err.Error())
			return summary, nil
		}
		summary.Horoscope = daily.Text
		summary.HoroscopeURL = daily.URL
	}

	return summary, nil
}
