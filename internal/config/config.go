// =============================================================================
// Daily Report - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the configuration of
// the daily report tool, and for loading report summary files.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): Global application settings
//   2. Summary files (summary.yaml): Summary fields for a CLI-rendered report
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Optional: A missing config file yields the built-in defaults
//   - Layered: cmd/root.go overrides values from flags and REPORT_* env vars
//   - Validated: Section layouts are validated on load
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ginjaninja78/daily-report/internal/render"
	"github.com/ginjaninja78/daily-report/internal/rowspec"
	"github.com/ginjaninja78/daily-report/internal/tabular"
	"github.com/ginjaninja78/daily-report/internal/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// OutputDir is the directory where exported reports are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir receives a copy of an export before it is overwritten.
	// Default: "./output_archive"
	ArchiveDir string `yaml:"archive_dir"`

	// ArchiveRetentionDays removes archived exports older than this many days.
	// Zero keeps archives forever.
	ArchiveRetentionDays int `yaml:"archive_retention_days"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log handler: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// =========================================================================
	// REPORT LAYOUT
	// =========================================================================

	// Sections defines the rows of each section. All three sections must be
	// listed, in report order: page1, page2, rv.
	// Default: page1 101-112 + 114-131, page2 134-137, rv 1-17 excluding 6.
	Sections []SectionConfig `yaml:"sections"`

	// ImportMode selects how imported table rows are matched to report rows.
	// Valid values: "positional", "keyed"
	// Default: "positional"
	ImportMode string `yaml:"import_mode"`

	// ArchiveDateSubdirs files archived exports under YYYY/MM/DD
	// subdirectories of ArchiveDir.
	ArchiveDateSubdirs bool `yaml:"archive_date_subdirs"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	Workbook WorkbookConfig `yaml:"workbook"`
	CSV      CSVConfig      `yaml:"csv"`
	PDF      PDFConfig      `yaml:"pdf"`
	Email    EmailConfig    `yaml:"email"`
	Server   ServerConfig   `yaml:"server"`
}

// SectionConfig defines the rows of one section.
type SectionConfig struct {
	// Name is one of "page1", "page2", "rv".
	Name string `yaml:"name"`

	// Label is the heading used in text renderings.
	Label string `yaml:"label"`

	// Ranges are expanded and concatenated in order.
	Ranges []RangeConfig `yaml:"ranges"`
}

// RangeConfig is an inclusive identifier range.
type RangeConfig struct {
	Start   int   `yaml:"start"`
	End     int   `yaml:"end"`
	Exclude []int `yaml:"exclude,omitempty"`
}

// WorkbookConfig controls spreadsheet export.
type WorkbookConfig struct {
	// FileName default: "report.xlsx"
	FileName string `yaml:"file_name"`

	// SheetName default: "Report"
	SheetName string `yaml:"sheet_name"`
}

// CSVConfig controls CSV export.
type CSVConfig struct {
	// FileName default: "report.csv"
	FileName string `yaml:"file_name"`

	// Delimiter default: ","
	Delimiter string `yaml:"delimiter"`
}

// PDFConfig controls PDF export. Units are millimetres on A4.
type PDFConfig struct {
	FileName   string  `yaml:"file_name"`
	Title      string  `yaml:"title"`
	FontSize   float64 `yaml:"font_size"`
	Left       float64 `yaml:"left"`
	TitleY     float64 `yaml:"title_y"`
	Top        float64 `yaml:"top"`
	LineHeight float64 `yaml:"line_height"`
	SectionGap float64 `yaml:"section_gap"`
	PageHeight float64 `yaml:"page_height"`
}

// EmailConfig holds the messaging service settings. The keys are usually
// supplied through REPORT_EMAIL_* environment variables or a .env file.
type EmailConfig struct {
	Endpoint   string        `yaml:"endpoint"`
	ServiceID  string        `yaml:"service_id"`
	TemplateID string        `yaml:"template_id"`
	PublicKey  string        `yaml:"public_key"`
	PrivateKey string        `yaml:"private_key"`
	To         string        `yaml:"to"`
	Subject    string        `yaml:"subject"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ServerConfig controls the web form.
type ServerConfig struct {
	// Addr default: ":8080"
	Addr string `yaml:"addr"`

	// MaxUploadBytes default: 10 MB
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file. If the file does
//     not exist the defaults are returned.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Fall through with an empty config; defaults fill it in.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.ArchiveDir == "" {
		config.ArchiveDir = "./output_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if len(config.Sections) == 0 {
		config.Sections = defaultSections()
	}
	for i := range config.Sections {
		if config.Sections[i].Label == "" {
			config.Sections[i].Label = defaultLabel(config.Sections[i].Name)
		}
	}
	if config.ImportMode == "" {
		config.ImportMode = tabular.ModePositional
	}

	// Workbook defaults.
	if config.Workbook.FileName == "" {
		config.Workbook.FileName = "report.xlsx"
	}
	if config.Workbook.SheetName == "" {
		config.Workbook.SheetName = "Report"
	}

	// CSV defaults.
	if config.CSV.FileName == "" {
		config.CSV.FileName = "report.csv"
	}
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}

	// PDF defaults.
	layout := render.DefaultLayout()
	if config.PDF.FileName == "" {
		config.PDF.FileName = "report.pdf"
	}
	if config.PDF.Title == "" {
		config.PDF.Title = layout.Title
	}
	if config.PDF.FontSize == 0 {
		config.PDF.FontSize = 10
	}
	if config.PDF.Left == 0 {
		config.PDF.Left = layout.Left
	}
	if config.PDF.TitleY == 0 {
		config.PDF.TitleY = layout.TitleY
	}
	if config.PDF.Top == 0 {
		config.PDF.Top = layout.Top
	}
	if config.PDF.LineHeight == 0 {
		config.PDF.LineHeight = layout.LineHeight
	}
	if config.PDF.SectionGap == 0 {
		config.PDF.SectionGap = layout.SectionGap
	}
	if config.PDF.PageHeight == 0 {
		config.PDF.PageHeight = layout.PageHeight
	}

	// Email defaults.
	if config.Email.Endpoint == "" {
		config.Email.Endpoint = "https://api.emailjs.com/api/v1.0/email/send"
	}
	if config.Email.Subject == "" {
		config.Email.Subject = "Daily Report"
	}
	if config.Email.To == "" {
		config.Email.To = "manager@example.com"
	}
	if config.Email.Timeout == 0 {
		config.Email.Timeout = 30 * time.Second
	}

	// Server defaults.
	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
	if config.Server.MaxUploadBytes == 0 {
		config.Server.MaxUploadBytes = 10 << 20
	}
}

func defaultSections() []SectionConfig {
	var sections []SectionConfig
	for _, spec := range rowspec.Default() {
		section := SectionConfig{Name: string(spec.Section), Label: spec.Label}
		for _, r := range spec.Ranges {
			section.Ranges = append(section.Ranges, RangeConfig{Start: r.Start, End: r.End, Exclude: r.Exclude})
		}
		sections = append(sections, section)
	}
	return sections
}

func defaultLabel(name string) string {
	for _, spec := range rowspec.Default() {
		if string(spec.Section) == name {
			return spec.Label
		}
	}
	return name
}

// Validate checks the configuration. It is run on load and again by the CLI
// after flag and environment overrides are applied.
func (c *MainConfig) Validate() error {
	return validateMainConfig(c)
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	if len(config.Sections) != len(types.Sections) {
		return fmt.Errorf("expected sections %v, got %d", types.Sections, len(config.Sections))
	}
	for i, section := range config.Sections {
		s, err := types.ParseSection(section.Name)
		if err != nil {
			return err
		}
		if s != types.Sections[i] {
			return fmt.Errorf("section %d must be %s, got %s", i+1, types.Sections[i], s)
		}

		if len(section.Ranges) == 0 {
			return fmt.Errorf("section %s has no ranges", s)
		}
		for _, r := range section.Ranges {
			if r.Start <= 0 || r.End < r.Start {
				return fmt.Errorf("section %s: invalid range %d-%d", s, r.Start, r.End)
			}
		}
	}

	switch config.ImportMode {
	case tabular.ModePositional, tabular.ModeKeyed:
	default:
		return fmt.Errorf("unknown import mode %q", config.ImportMode)
	}

	switch config.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", config.LogFormat)
	}

	return nil
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// SectionSpecs converts the configured sections into row specs.
func (c *MainConfig) SectionSpecs() []rowspec.SectionSpec {
	specs := make([]rowspec.SectionSpec, 0, len(c.Sections))
	for _, section := range c.Sections {
		spec := rowspec.SectionSpec{
			Section: types.Section(section.Name),
			Label:   section.Label,
		}
		for _, r := range section.Ranges {
			spec.Ranges = append(spec.Ranges, rowspec.Range{Start: r.Start, End: r.End, Exclude: r.Exclude})
		}
		specs = append(specs, spec)
	}
	return specs
}

// Layout converts the PDF settings into a render layout.
func (c *MainConfig) Layout() render.Layout {
	return render.Layout{
		Title:      c.PDF.Title,
		Left:       c.PDF.Left,
		TitleY:     c.PDF.TitleY,
		Top:        c.PDF.Top,
		LineHeight: c.PDF.LineHeight,
		SectionGap: c.PDF.SectionGap,
		PageHeight: c.PDF.PageHeight,
	}
}

// =============================================================================
// SUMMARY FILES
// =============================================================================

// LoadSummary reads summary fields from a YAML file. Total sales in the
// file is ignored by callers; it is always derived from the rows.
func LoadSummary(path string) (*types.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary file: %w", err)
	}

	var summary types.Summary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse summary file: %w", err)
	}

	return &summary, nil
}
