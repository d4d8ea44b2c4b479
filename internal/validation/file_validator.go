package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "fitcli/internal/errors"
	"fitcli/internal/files"
	"fitcli/pkg/contracts/domain"
)

// FileValidator checks the input file and output directory before a run
type FileValidator struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger:   logger,
		validate: validator.New(),
	}
}

// ValidateInputDirectory validates that a dataset directory exists
func (v *FileValidator) ValidateInputDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("Dataset directory does not exist", slog.String("directory", dir))
		return apperrors.NewNotFoundError(fmt.Sprintf("dataset directory %s", dir))
	}
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat directory %s", dir), err)
	}
	if !info.IsDir() {
		v.logger.Error("Dataset path is not a directory", slog.String("path", dir))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is not a directory", dir))
	}
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}

// ValidateInputFile checks that path is a readable, non-empty CSV or Excel file
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist", slog.String("file", path))
		return apperrors.NewNotFoundError(fmt.Sprintf("input file %s", path))
	}
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}
	if !files.IsDataFile(path) {
		return apperrors.NewAppValidationError(fmt.Sprintf("unsupported input file type %q: expected %s",
			filepath.Ext(path), strings.Join(files.DataExtensions, ", ")))
	}
	if info.Size() == 0 {
		return apperrors.NewAppValidationError(fmt.Sprintf("input file %s is empty", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("input file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateRawTable checks the structural tags of a loaded raw table: a
// header must be present. Column names and cell contents are left to the
// activity table builder.
func (v *FileValidator) ValidateRawTable(raw *domain.RawTable) error {
	if raw == nil {
		return apperrors.NewAppValidationError("raw table is nil")
	}
	if err := v.validate.Struct(raw); err != nil {
		return apperrors.NewAppError(apperrors.ErrTypeValidation,
			fmt.Sprintf("input %s has no header row", raw.Source), err)
	}
	return nil
}
