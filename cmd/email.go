// =============================================================================
// Daily Report - Email Command
// =============================================================================
//
// This file defines the 'email' command, which sends the plain-text report
// through the configured e-mail service.
//
// COMMAND USAGE:
//   report email --file report.xlsx [--summary summary.yaml] [--dry-run]
//
// The service keys are read from the config file or from REPORT_EMAIL_*
// environment variables (a .env file is loaded automatically).
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/daily-report/internal/converter"
	"github.com/ginjaninja78/daily-report/internal/mailer"
	"github.com/spf13/cobra"
)

var (
	emailFile    string
	emailSummary string
	emailDryRun  bool
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "E-mail the plain-text report",
	Long: `Import a report file, apply a summary file (optional) and send the
plain-text rendering to the configured recipient. A single attempt is made;
on failure the service's response is printed unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conv := converter.New(mainConfig, logger)
		rep, err := loadReport(mainConfig, conv, emailFile, emailSummary)
		if err != nil {
			return err
		}

		msg := conv.Message(rep)
		if emailDryRun {
			fmt.Printf("To: %s\nSubject: %s\n\n%s", msg.To, msg.Subject, msg.Body)
			return nil
		}

		client := mailer.NewClient(mailerConfig(mainConfig), logger)
		outcome := <-client.SendAsync(cmd.Context(), msg)
		if !outcome.OK() {
			var sendErr *mailer.SendError
			if errors.As(outcome.Err, &sendErr) && sendErr.Payload != "" {
				return fmt.Errorf("failed to send email: %s", sendErr.Payload)
			}
			return fmt.Errorf("failed to send email: %w", outcome.Err)
		}

		fmt.Println("Email sent successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	emailCmd.Flags().StringVar(&emailFile, "file", "", "Report file to send (.xlsx or .csv)")
	emailCmd.Flags().StringVar(&emailSummary, "summary", "", "YAML file with the summary fields")
	emailCmd.Flags().BoolVar(&emailDryRun, "dry-run", false, "Print the message instead of sending it")
	_ = emailCmd.MarkFlagRequired("file")
}
