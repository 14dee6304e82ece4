package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the full-text index from the purchases table",
	Long: `Drops and recreates the product-name full-text index. The index holds
nothing the table lacks, so this is always safe; use it after an
interrupted ingest left index entries missing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if ingestService == nil {
			return errors.New("ingest service not configured")
		}
		n, err := ingestService.Reindex(context.Background())
		if err != nil {
			return err
		}
		cmd.Printf("Reindexed %d row(s)\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
