// =============================================================================
// Record Translator - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a translation:
//   - Reading the input from a file or a stream
//   - Output file naming
//   - Directory management
//   - Writing the output file
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
// INPUT
// =============================================================================

// ReadInput reads the whole input from a file, or from the fallback reader
// (usually stdin) when path is empty or "-".
func ReadInput(path string, fallback io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(fallback)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectory creates a directory and its parents if they don't exist.
func EnsureDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a unique output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//             Any key of params can be used as {key}.
//   - params: A map of placeholder values, e.g. {"input": "csv"}.
//   - extension: The required extension, including the dot.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format:    "{input}_{timestamp}_{uuid}"
//   params:    {"input": "csv"}
//   extension: ".json"
//   output:    "csv_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.json"
func GenerateOutputFileName(format string, params map[string]string, extension string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Path separators would escape the output directory.
	result = strings.NewReplacer("/", "_", "\\", "_").Replace(result)

	if extension != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(extension)) {
		result += extension
	}

	return result
}

// =============================================================================
// OUTPUT
// =============================================================================

// WriteOutputFile writes data to path, creating the parent directory first.
func WriteOutputFile(path string, data []byte) error {
	if err := EnsureDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
