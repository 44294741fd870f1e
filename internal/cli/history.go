package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"budgetmail/internal/config"
	"budgetmail/internal/history"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent reminder runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if flagConfig == "" {
		return errors.New("--using is required")
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), flagAccount, flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SENT AT\tACCOUNT\tSUBJECT\tDAYS LEFT\tOVERFLOW\tMODE")
	for _, run := range runs {
		mode := "sent"
		if run.DryRun {
			mode = "dry-run"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0f%%\t%s\n",
			run.SentAt.Local().Format("2006-01-02 15:04"),
			run.Account,
			run.Subject,
			run.DaysLeft,
			run.OverflowPct,
			mode)
	}
	return w.Flush()
}
