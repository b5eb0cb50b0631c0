// =============================================================================
// Cart Parser - File Manager Utility
// =============================================================================
//
// This module provides the file system side of the cart parser:
//   - Reading cart sources (.csv as text, .xlsx through the sheet reader)
//   - Writing exported results to the output directory
//   - Archiving sources after a successful parse
//   - Writing validation error logs
//
// ARCHIVAL STRATEGY:
//   - Sources are moved to the archive directory only after a successful parse
//   - Failed sources stay where they are
//   - Error logs are created in the output directory
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/cart-parser/internal/validation"
	"github.com/ginjaninja78/cart-parser/internal/xlsxparser"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the cart parser.
type FileManager struct {
	// OutputDir is the directory where exported results and error logs go.
	OutputDir string

	// ArchiveDir is the directory sources are moved to after a successful
	// parse. Empty disables archiving.
	ArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: archive/2024/01/15/cart.csv
	UseTimestampSubdirs bool

	// XLSX reads .xlsx sources. Nil means the first sheet of the workbook.
	XLSX *xlsxparser.Reader

	// now is the clock used for timestamps.
	now func() time.Time
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
		XLSX:       xlsxparser.NewReader(),
		now:        time.Now,
	}
}

// =============================================================================
// READING
// =============================================================================

// ReadFile returns the cart text stored at path. Workbooks (.xlsx) are read
// through the sheet reader; everything else is read as UTF-8 text.
//
// Errors from the file system are returned as they are, so callers can test
// them with errors.Is(err, fs.ErrNotExist).
func (fm *FileManager) ReadFile(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		reader := fm.XLSX
		if reader == nil {
			reader = xlsxparser.NewReader()
		}
		return reader.ReadFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output and archive directories if needed.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.OutputDir, fm.ArchiveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// WriteOutput creates fileName in the output directory and fills it with
// write. It returns the path of the written file.
func (fm *FileManager) WriteOutput(fileName string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(fm.OutputDir, fileName)

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	writer := bufio.NewWriter(file)
	if err := write(writer); err != nil {
		file.Close()
		return "", err
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close output file: %w", err)
	}

	return outputPath, nil
}

// GenerateOutputFileName builds a file name from a format.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {original}  - Source file name without extension
//   - source: The source path used for {original}.
//   - ext:    The extension to ensure, without a dot.
//
// EXAMPLE:
//   format: "{original}_{timestamp}"
//   source: "samples/cart.csv", ext: "json"
//   output: "cart_20240115_143022.json"
func (fm *FileManager) GenerateOutputFileName(format, source, ext string) string {
	if format == "" {
		format = "{original}_{uuid}"
	}

	original := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))

	replacer := strings.NewReplacer(
		"{uuid}", uuid.NewString(),
		"{timestamp}", fm.clock().Format("20060102_150405"),
		"{original}", original,
	)
	name := replacer.Replace(format)

	if ext != "" && !strings.HasSuffix(strings.ToLower(name), "."+strings.ToLower(ext)) {
		name += "." + ext
	}

	return name
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a parsed source into the archive directory. With
// no archive directory configured it does nothing and returns filePath.
// An archived file with the same name is never overwritten; the new copy
// gets a UUID suffix instead.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if fm.ArchiveDir == "" {
		return filePath, nil
	}

	archivePath := fm.getArchivePath(filePath)
	if FileExists(archivePath) {
		ext := filepath.Ext(archivePath)
		archivePath = fmt.Sprintf("%s_%s%s", strings.TrimSuffix(archivePath, ext), uuid.NewString(), ext)
	}

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

func (fm *FileManager) getArchivePath(filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := fm.clock()
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

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// WriteErrorLog writes the validation errors of source to a log file in the
// output directory and returns its path. Nothing is written for an empty list.
// Log names carry a UUID so logs written in the same second do not collide.
func (fm *FileManager) WriteErrorLog(source string, errors []validation.ValidationError) (string, error) {
	if len(errors) == 0 {
		return "", nil
	}

	now := fm.clock()
	name := fmt.Sprintf("error_log_%s_%s.txt", now.Format("20060102_150405"), uuid.NewString())

	return fm.WriteOutput(name, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Cart Parser - Error Log\n"+
			"Generated: %s\n"+
			"Source: %s\n"+
			"Total Errors: %d\n"+
			"================================================================================\n\n"+
			"%s",
			now.Format("2006-01-02 15:04:05"),
			source,
			len(errors),
			validation.FormatErrors(errors),
		)
		return err
	})
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// clock returns the current time, falling back to time.Now for a
// FileManager built without NewFileManager.
func (fm *FileManager) clock() time.Time {
	if fm.now == nil {
		return time.Now()
	}
	return fm.now()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
