// =============================================================================
// Daily Report - Export Command
// =============================================================================
//
// This file defines the 'export' command, which renders a report into the
// output directory.
//
// COMMAND USAGE:
//   report export [flags]
//
// FLAGS:
//   --file    : Report file to import first (.xlsx or .csv, optional)
//   --summary : YAML file with the summary fields (optional)
//   --format  : xlsx, csv, pdf, text or all (default pdf)
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/daily-report/internal/converter"
	"github.com/spf13/cobra"
)

var (
	exportFile    string
	exportSummary string
	exportFormat  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a report as xlsx, csv, pdf or text",
	Long: `Import a report file (optional), apply a summary file (optional) and
write the chosen rendering into the output directory. "all" writes every
format concurrently. Previous exports are archived before being replaced,
and archives older than archive_retention_days are removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conv := converter.New(mainConfig, logger)
		rep, err := loadReport(mainConfig, conv, exportFile, exportSummary)
		if err != nil {
			return err
		}

		var results []converter.Result
		if exportFormat == "all" {
			results = conv.ExportAll(rep)
		} else {
			format, err := converter.ParseFormat(exportFormat)
			if err != nil {
				return err
			}
			results = []converter.Result{conv.Export(rep, format)}
		}

		failed := 0
		for _, result := range results {
			printResult(result)
			if result.Error != nil {
				failed++
			}
		}

		if _, err := conv.CleanArchives(); err != nil {
			logger.Warn("failed to clean archives", "error", err)
		}

		if failed > 0 {
			return fmt.Errorf("%d export(s) failed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFile, "file", "", "Report file to import first (.xlsx or .csv)")
	exportCmd.Flags().StringVar(&exportSummary, "summary", "", "YAML file with the summary fields")
	exportCmd.Flags().StringVar(&exportFormat, "format", "pdf", "Output format: xlsx, csv, pdf, text or all")
}
