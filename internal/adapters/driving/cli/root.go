// Package cli is the cobra-based driving adapter. It wires the SQLite
// store, the xlsx extractor, and the core services together, and stays
// a thin shell over the driving ports: all ingest and search semantics
// live in internal/core/services.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/gnum-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gnum-cli/internal/adapters/driven/extract/xlsx"
	"github.com/custodia-labs/gnum-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gnum-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gnum-cli/internal/core/services"
	"github.com/custodia-labs/gnum-cli/internal/logger"
	"github.com/custodia-labs/gnum-cli/internal/normalise"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagDataDir string
)

// Wired services, shared by the subcommands.
var (
	store         *sqlite.Store
	ingestService driving.IngestService
	searchService driving.SearchService
)

var rootCmd = &cobra.Command{
	Use:   "gnum",
	Short: "Ingest and search purchase records from Excel workbooks",
	Long: `gnum loads fixed-template .xlsx purchase workbooks into a local
SQLite store and searches it by product code, product name, or supplier.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding purchases.db (default ~/.gnum/data)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices opens the store and builds the services the subcommands
// share. The version command needs none of it.
func initServices(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.SetVerbose(flagVerbose || cfg.GetBool("verbose"))

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = cfg.GetString("data_dir")
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	normaliser := &normalise.Normaliser{StripMarks: cfg.GetBool("search.strip_marks")}
	ingestService = services.NewIngestService(store, xlsx.New())
	searchService = services.NewSearchService(store, normaliser)
	return nil
}

// closeServices releases the store handle after the command ran.
func closeServices() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}
