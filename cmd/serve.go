// =============================================================================
// Daily Report - Serve Command
// =============================================================================
//
// This file defines the 'serve' command, which runs the browser form.
//
// COMMAND USAGE:
//   report serve [--addr :8080] [--file report.xlsx]
//
// =============================================================================

package cmd

import (
	"github.com/ginjaninja78/daily-report/internal/converter"
	"github.com/ginjaninja78/daily-report/internal/mailer"
	"github.com/ginjaninja78/daily-report/internal/web"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the report web form",
	Long: `Serve the report as a browser form. The form supports editing with live
total sales, Excel/CSV import, Excel/CSV/PDF download, a printable text view,
e-mailing the report and clearing the form. The report lives in memory for
the lifetime of the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := mainConfig.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		conv := converter.New(mainConfig, logger)
		rep, err := loadReport(mainConfig, conv, serveFile, "")
		if err != nil {
			return err
		}

		client := mailer.NewClient(mailerConfig(mainConfig), logger)
		server := web.NewServer(mainConfig, rep, conv, client, logger)
		return server.ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveFile, "file", "", "Report file to load at start (.xlsx or .csv)")
}
