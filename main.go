// archivecheck checks URLs for current liveness and historical presence in
// the Wayback Machine.
package main

import (
	"fmt"
	"os"

	"github.com/jonesrussell/archivecheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
