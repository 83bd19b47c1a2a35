// =============================================================================
// Daily Report - Totals Command
// =============================================================================
//
// This file defines the 'totals' command, which imports a report file and
// prints its derived totals.
//
// COMMAND USAGE:
//   report totals --file report.xlsx
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/daily-report/internal/converter"
	"github.com/ginjaninja78/daily-report/internal/totals"
	"github.com/spf13/cobra"
)

var totalsFile string

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Print total sales for a report file",
	Long: `Import a report workbook or CSV file and print total sales (rent + tax +
misc over every row) and the balance column total.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conv := converter.New(mainConfig, logger)
		rep, err := loadReport(mainConfig, conv, totalsFile, "")
		if err != nil {
			return err
		}

		fmt.Printf("Total Sales: %s\n", rep.Summary.TotalSales)
		fmt.Printf("Balance:     %s\n", totals.Balance(rep.Rows()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(totalsCmd)

	totalsCmd.Flags().StringVar(&totalsFile, "file", "", "Report file to read (.xlsx or .csv)")
	_ = totalsCmd.MarkFlagRequired("file")
}
