package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"budgetmail/internal/preview"
)

var (
	flagPort   int
	flagOutput string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve a live-reloading render of the reminder for template editing",
	Long: "preview builds the reminder once, renders it against a template " +
		"file on disk, and serves the result over HTTP. The template is " +
		"re-rendered whenever the file changes. Type 'r' to restart the " +
		"server (or 'r <port>' to move it) and 'q' to quit.",
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&flagPort, "port", 8000, "Port for the preview HTTP server")
	previewCmd.Flags().StringVar(&flagOutput, "output", "output.html", "File to write the rendered HTML to")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	logger := rootLogger()

	if flagTemplate == "" {
		return errors.New("--template is required for preview, it names the file being edited")
	}
	if _, err := os.Stat(flagTemplate); err != nil {
		return err
	}

	_, account, err := loadConfig()
	if err != nil {
		return err
	}
	summary, err := buildSummary(cmd.Context(), logger, account)
	if err != nil {
		return err
	}

	srv := preview.New(summary, flagTemplate, flagOutput, flagPort, logger)
	return srv.Run(cmd.Context(), cmd.InOrStdin())
}
