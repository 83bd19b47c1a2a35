// =============================================================================
// Daily Report - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for report exports:
//   - Directory management
//   - Archival of an export before it is overwritten
//   - Archive file naming
//   - Archive retention
//
// ARCHIVAL STRATEGY:
//   - Exports always go to a fixed name in the output directory
//     (report.xlsx, report.pdf, ...), as an operator expects.
//   - If that file already exists it is copied into the archive directory
//     under a unique name before being replaced.
//   - Archives older than the retention period can be pruned.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for report exports.
type FileManager struct {
	// OutputDir is the directory where exports are written.
	OutputDir string

	// ArchiveDir is the directory for archived exports.
	ArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: output_archive/2024/01/15/report_..._.xlsx
	UseTimestampSubdirs bool

	// ArchiveFormat is the archive file name format (see GenerateArchiveName).
	ArchiveFormat string

	// now is replaceable in tests.
	now func() time.Time
}

// DefaultArchiveFormat names archives after the original file, the time of
// archival and a random UUID.
const DefaultArchiveFormat = "{original}_{timestamp}_{uuid}"

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{
		OutputDir:     outputDir,
		ArchiveDir:    archiveDir,
		ArchiveFormat: DefaultArchiveFormat,
		now:           time.Now,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.OutputDir, fm.ArchiveDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// OutputPath returns the path of an export in the output directory.
func (fm *FileManager) OutputPath(fileName string) string {
	return filepath.Join(fm.OutputDir, fileName)
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// PrepareOutput makes the output directory ready for fileName. If a previous
// export with that name exists it is copied into the archive first.
//
// RETURNS:
//   - The path to write the new export to.
//   - The archive path of the previous export, or "" if there was none.
//   - An error if the directories or the archive copy cannot be created.
func (fm *FileManager) PrepareOutput(fileName string) (string, string, error) {
	if err := fm.EnsureDirectories(); err != nil {
		return "", "", err
	}

	outputPath := fm.OutputPath(fileName)
	if !FileExists(outputPath) {
		return outputPath, "", nil
	}

	archivePath, err := fm.ArchiveFile(outputPath)
	if err != nil {
		return "", "", err
	}
	return outputPath, archivePath, nil
}

// ArchiveFile copies a file into the archive directory.
//
// RETURNS:
//   - The path to the archived file.
//   - An error if archival fails.
func (fm *FileManager) ArchiveFile(filePath string) (string, error) {
	archivePath := fm.getArchivePath(filePath)

	archiveDir := filepath.Dir(archivePath)
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := copyFile(filePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to copy file to archive: %w", err)
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a file.
func (fm *FileManager) getArchivePath(filePath string) string {
	now := fm.clock()
	fileName := GenerateArchiveName(fm.ArchiveFormat, filepath.Base(filePath), now)

	if fm.UseTimestampSubdirs {
		return filepath.Join(
			fm.ArchiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}

	return filepath.Join(fm.ArchiveDir, fileName)
}

func (fm *FileManager) clock() time.Time {
	if fm.now == nil {
		return time.Now()
	}
	return fm.now()
}

// =============================================================================
// ARCHIVE FILE NAMING
// =============================================================================

// GenerateArchiveName generates a unique archive file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Date (YYYYMMDD)
//               {original}  - Original file name (without extension)
//   - original: The original file name; its extension is kept.
//   - now: The time of archival.
//
// EXAMPLE:
//   format:   "{original}_{timestamp}_{uuid}"
//   original: "report.xlsx"
//   output:   "report_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.xlsx"
func GenerateArchiveName(format, original string, now time.Time) string {
	if format == "" {
		format = DefaultArchiveFormat
	}

	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)

	replacer := strings.NewReplacer(
		"{uuid}", uuid.New().String(),
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{original}", base,
	)

	return replacer.Replace(format) + ext
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// CleanOldArchives removes archive files older than the specified duration.
//
// PARAMETERS:
//   - archiveDir: The archive directory to clean.
//   - maxAge: The maximum age of files to keep.
//
// RETURNS:
//   - The number of files removed.
//   - An error if cleaning fails.
func CleanOldArchives(archiveDir string, maxAge time.Duration) (int, error) {
	if !FileExists(archiveDir) {
		return 0, nil
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	err := filepath.Walk(archiveDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return err
			}
			removed++
		}

		return nil
	})

	if err != nil {
		return removed, fmt.Errorf("failed to clean archives: %w", err)
	}

	return removed, nil
}
