// =============================================================================
// Daily Report - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Daily Report CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   report serve    - Run the browser form
//   report new      - Write a blank report workbook
//   report totals   - Print total sales for a report file
//   report export   - Render a report as xlsx, csv, pdf or text
//   report email    - E-mail the plain-text report
//   report version  - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Report model, codecs, renderers, mailer, web form
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/daily-report/cmd"
)

func main() {
	cmd.Execute()
}
