// =============================================================================
// Daily Report - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (report)
//   ├── newCmd     (report new)
//   ├── totalsCmd  (report totals)
//   ├── exportCmd  (report export)
//   ├── emailCmd   (report email)
//   ├── serveCmd   (report serve)
//   └── versionCmd (report version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Loading a .env file, if present
//   2. Loading the main configuration file (defaults if it is missing)
//   3. Layering REPORT_* environment variables and flags on top
//   4. Setting up logging
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ginjaninja78/daily-report/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// mainConfig is the loaded configuration, set by initConfig.
var mainConfig *config.MainConfig

// logger is the application logger, set by initConfig.
var logger *slog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "Daily Report - Motel and RV park daily billing report",

	Long: `Daily Report manages the nightly billing and occupancy report for a motel
with an RV park: a fixed set of room and RV-spot rows plus summary figures.

Key Features:
  - Browser form with live total sales
  - Excel and CSV import/export
  - PDF and plain-text rendering
  - E-mailing the text report to the manager
  - Automatic archival of previous exports

Example Usage:
  report serve                                  # Run the web form on :8080
  report new                                    # Write a blank workbook
  report totals --file output/report.xlsx       # Print total sales
  report export --file day.csv --format pdf     # Render a PDF
  report email --file day.xlsx --summary s.yaml # Send the text report`,

	PersistentPreRunE: initConfig,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). SIGINT and SIGTERM cancel
// the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().String("output-dir", "", "directory for exported reports")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
}

// initConfig loads configuration and sets up logging before any command runs.
func initConfig(_ *cobra.Command, _ []string) error {
	// A missing .env file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix("REPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}
	applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	mainConfig = cfg

	l, err := setupLogging(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	logger = l

	logger.Debug("configuration loaded", "config", cfgFile, "output_dir", cfg.OutputDir, "import_mode", cfg.ImportMode)
	return nil
}

// applyOverrides layers REPORT_* environment variables and flags over the
// configuration file.
func applyOverrides(cfg *config.MainConfig) {
	override := func(key string, dst *string) {
		if v := viper.GetString(key); v != "" {
			*dst = v
		}
	}

	override("output_dir", &cfg.OutputDir)
	override("archive_dir", &cfg.ArchiveDir)
	override("log_level", &cfg.LogLevel)
	override("log_format", &cfg.LogFormat)
	override("import_mode", &cfg.ImportMode)

	override("email.endpoint", &cfg.Email.Endpoint)
	override("email.service_id", &cfg.Email.ServiceID)
	override("email.template_id", &cfg.Email.TemplateID)
	override("email.public_key", &cfg.Email.PublicKey)
	override("email.private_key", &cfg.Email.PrivateKey)
	override("email.to", &cfg.Email.To)

	override("server.addr", &cfg.Server.Addr)

	if verbose {
		cfg.LogLevel = "debug"
	}
}

// setupLogging builds the slog logger and installs it as the default.
func setupLogging(level, format string) (*slog.Logger, error) {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	opts := &slog.HandlerOptions{Level: slogLevel}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l, nil
}
