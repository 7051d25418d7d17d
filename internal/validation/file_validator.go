package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "cricketcli/internal/errors"
)

// Supported delivery file formats
const (
	FormatCSV  = ".csv"
	FormatXLSX = ".xlsx"
)

// FileValidator provides file checks shared by both executables
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError(fmt.Sprintf("file %s", path)).WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewParsingError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewParsingError(fmt.Sprintf("%s is a directory, not a file", path), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewParsingError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateDeliveryFile checks that path is a readable CSV or XLSX file and returns its format
func (v *FileValidator) ValidateDeliveryFile(path string) (string, error) {
	if err := v.ValidateFile(path); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != FormatCSV && ext != FormatXLSX {
		v.logger.Error("Unsupported delivery file",
			slog.String("file", path),
			slog.String("extension", ext))
		return "", apperrors.NewParsingError(
			fmt.Sprintf("file %s is not a CSV or XLSX file (extension: %s)", path, ext), nil)
	}

	// Office lock files look like workbooks but are not
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return "", apperrors.NewParsingError(fmt.Sprintf("file %s is a temporary Excel file", path), nil)
	}

	return ext, nil
}

// ValidateOutputDirectory ensures output directory exists and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewRenderError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewRenderError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
