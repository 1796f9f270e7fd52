// logsift - Log Line Analysis Tool
//
// logsift parses timestamped, leveled log lines, filters and searches them,
// and reports statistics and the results of named queries.
package main

import (
	"os"

	"github.com/ccollicutt/logsift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
