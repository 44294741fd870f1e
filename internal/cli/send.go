package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"budgetmail/internal/history"
	"budgetmail/internal/log"
	"budgetmail/internal/mail"
	"budgetmail/internal/report"
)

var flagDryRun bool

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Build the reminder and email it to the account's recipient",
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Do not send email, print the HTML to stdout")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := rootLogger()

	cfg, account, err := loadConfig()
	if err != nil {
		return err
	}

	summary, err := buildSummary(ctx, logger, account)
	if err != nil {
		return err
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	now := time.Now()
	html, err := renderer.Render(summary, now)
	if err != nil {
		return err
	}
	subject := summary.Subject(now)

	if flagDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), html)
	} else {
		password, err := cfg.AppPassword()
		if err != nil {
			return err
		}
		client := mail.NewClient(mail.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.FromGmail,
			Password: password,
		}, logger)
		if err := client.Send(ctx, mail.Message{
			From:     cfg.FromGmail,
			To:       []string{account.Email},
			Subject:  subject,
			HTMLBody: html,
		}); err != nil {
			return err
		}
	}

	derived := summary.Derive(now)
	recordRun(cmd, logger, cfg.HistoryDB, history.Run{
		Account:     flagAccount,
		Subject:     subject,
		Recipients:  []string{account.Email},
		DaysLeft:    derived.DaysLeft,
		OverflowPct: derived.OverflowPct,
		DryRun:      flagDryRun,
		SentAt:      now,
	})
	return nil
}

// recordRun appends the run to the history database. History is bookkeeping,
// not delivery: a failure here only logs.
func recordRun(cmd *cobra.Command, logger *log.Logger, dbPath string, run history.Run) {
	store, err := history.Open(dbPath)
	if err != nil {
		logger.Warn("Cannot open history database", log.FieldError, err.Error())
		return
	}
	defer store.Close()
	if _, err := store.Record(cmd.Context(), run); err != nil {
		logger.Warn("Cannot record run", log.FieldError, err.Error())
	}
}

func newRenderer() (*report.Renderer, error) {
	if flagTemplate != "" {
		return report.NewFromFile(flagTemplate)
	}
	return report.New()
}
