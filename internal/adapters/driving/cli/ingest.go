package cli

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Load purchase workbooks into the store",
	Long: `Extracts purchase rows from fixed-template .xlsx workbooks and appends
them to the local store. Rows already present (same product code, date,
and supplier) are skipped. Workbooks without a parseable date contribute
nothing; that is reported, not an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	paths := append([]string(nil), args...)
	sortByNumericSuffix(paths)

	summary, err := ingestService.IngestFiles(context.Background(), paths)
	if err != nil {
		return err
	}

	cmd.Printf("Imported %d row(s) from %d file(s)\n", summary.Imported, len(paths))
	if summary.Duplicates > 0 {
		cmd.Printf("Skipped %d row(s) already present\n", summary.Duplicates)
	}
	for _, f := range summary.Failures {
		cmd.Printf("  failed: %s - %s\n", f.Source, f.Reason)
	}
	return nil
}

var fileNumber = regexp.MustCompile(`(\d+)`)

// sortByNumericSuffix orders paths by the first integer in the file
// name (MTIncInner2.xlsx before MTIncInner10.xlsx); files without a
// number sort first, ties stay lexicographic.
func sortByNumericSuffix(paths []string) {
	num := func(p string) int {
		m := fileNumber.FindString(filepath.Base(p))
		if m == "" {
			return -1
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return -1
		}
		return n
	}
	sort.SliceStable(paths, func(i, j int) bool {
		ni, nj := num(paths[i]), num(paths[j])
		if ni != nj {
			return ni < nj
		}
		return paths[i] < paths[j]
	})
}
