// Command gnum ingests fixed-template Excel purchase workbooks into a
// local SQLite store and searches them by product code, name, or
// supplier.
package main

import (
	"os"

	"github.com/custodia-labs/gnum-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
