// =============================================================================
// Daily Report - New Command
// =============================================================================
//
// This file defines the 'new' command, which writes a blank report workbook
// for today into the output directory.
//
// COMMAND USAGE:
//   report new
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/daily-report/internal/converter"
	"github.com/ginjaninja78/daily-report/internal/report"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Write a blank report workbook",
	Long: `Write an empty report workbook (every room and RV row, no values) to the
output directory. An existing workbook of the same name is archived first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conv := converter.New(mainConfig, logger)
		rep := report.New(mainConfig.SectionSpecs(), time.Now())

		result := conv.Export(rep, converter.FormatXLSX)
		if result.Error != nil {
			return result.Error
		}

		fmt.Printf("Blank report for %s (%s) with %d rows\n", rep.Summary.Date, rep.Summary.Day, len(rep.Rows()))
		printResult(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
