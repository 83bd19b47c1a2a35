package cmd

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/daily-report/internal/config"
	"github.com/ginjaninja78/daily-report/internal/converter"
	"github.com/ginjaninja78/daily-report/internal/mailer"
	"github.com/ginjaninja78/daily-report/internal/report"
	"github.com/ginjaninja78/daily-report/internal/types"
)

// loadReport builds today's report, optionally filled from an import file
// and a summary file. Either path may be empty.
func loadReport(cfg *config.MainConfig, conv *converter.Converter, filePath, summaryPath string) (*report.Report, error) {
	rep := report.New(cfg.SectionSpecs(), time.Now())

	if filePath != "" {
		result := conv.ImportFile(rep, filePath)
		if result.Error != nil {
			return nil, result.Error
		}
		logger.Info("imported report", "file", filePath, "rows", result.Stats.RowsFilled, "total_sales", rep.Summary.TotalSales)
	}

	if summaryPath != "" {
		summary, err := config.LoadSummary(summaryPath)
		if err != nil {
			return nil, err
		}
		if err := applySummary(rep, summary); err != nil {
			return nil, err
		}
	}

	return rep, nil
}

// applySummary copies every non-empty user-entered field of summary into
// the report. Total sales is never copied; it is derived from the rows.
func applySummary(rep *report.Report, summary *types.Summary) error {
	for _, field := range types.SummaryFields {
		value := summary.Get(field)
		if value == "" {
			continue
		}
		if err := rep.SetSummary(field, value); err != nil {
			return fmt.Errorf("failed to apply summary: %w", err)
		}
	}
	return nil
}

func mailerConfig(cfg *config.MainConfig) mailer.Config {
	return mailer.Config{
		Endpoint:   cfg.Email.Endpoint,
		ServiceID:  cfg.Email.ServiceID,
		TemplateID: cfg.Email.TemplateID,
		PublicKey:  cfg.Email.PublicKey,
		PrivateKey: cfg.Email.PrivateKey,
		Timeout:    cfg.Email.Timeout,
	}
}

// printResult reports one export result on stdout.
func printResult(result converter.Result) {
	if result.Error != nil {
		fmt.Printf("  [FAILED] %s: %v\n", result.FilePath, result.Error)
		return
	}
	fmt.Printf("  [OK] %s -> %s (%d bytes, %v)\n",
		result.FilePath, result.OutputFile, result.Stats.BytesWritten, result.Stats.ProcessingTime)
	if result.ArchivedFile != "" {
		fmt.Printf("       previous export archived to %s\n", result.ArchivedFile)
	}
}
