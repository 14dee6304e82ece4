package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gnum-cli/internal/adapters/driving/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Ingest workbooks as they appear in a directory",
	Long: `Watches a directory and ingests any .xlsx workbook created or updated
there. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ingestService == nil {
			return errors.New("ingest service not configured")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return watch.New(args[0], ingestService).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
