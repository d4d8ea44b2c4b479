// Command activity-report cleans the Fitbit daily activity export into the
// analysis table and writes the CSV, workbook and narrative report.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
