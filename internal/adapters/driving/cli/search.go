package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gnum-cli/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search stored purchase rows",
}

var searchCodeCmd = &cobra.Command{
	Use:   "code [product-code]",
	Short: "Look up rows by exact product code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, func(ctx context.Context) ([]domain.PurchaseRecord, error) {
			return searchService.FindByCode(ctx, args[0])
		})
	},
}

var searchNameCmd = &cobra.Command{
	Use:   "name [query]",
	Short: "Search rows by product name substring",
	Long: `Matches rows whose product name contains the query after both are
normalised (decomposed, lowercased, trimmed). Diacritics and letter
case do not matter.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, func(ctx context.Context) ([]domain.PurchaseRecord, error) {
			return searchService.SearchByName(ctx, args[0])
		})
	},
}

var searchSupplierCmd = &cobra.Command{
	Use:   "supplier [query]",
	Short: "Search rows by supplier name substring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, func(ctx context.Context) ([]domain.PurchaseRecord, error) {
			return searchService.SearchBySupplier(ctx, args[0])
		})
	},
}

func init() {
	searchCmd.PersistentFlags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.AddCommand(searchCodeCmd)
	searchCmd.AddCommand(searchNameCmd)
	searchCmd.AddCommand(searchSupplierCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, query func(context.Context) ([]domain.PurchaseRecord, error)) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	rows, err := query(context.Background())
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputRowsJSON(cmd, rows)
	}
	return outputRowsTable(cmd, rows)
}

func outputRowsJSON(cmd *cobra.Command, rows []domain.PurchaseRecord) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputRowsTable(cmd *cobra.Command, rows []domain.PurchaseRecord) error {
	if len(rows) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i := range rows {
		r := &rows[i]
		cmd.Printf("  [%d] %s  %s\n", i+1, r.ProductCode, r.ProductName)
		cmd.Printf("      %s, %s\n", r.Supplier, r.Date)
		cmd.Printf("      %g %s x %g = %g  (%s)\n", r.Qty, r.Unit, r.Price, r.TotalPrice, r.SourceFile)
	}
	cmd.Printf("%d row(s)\n", len(rows))
	return nil
}
