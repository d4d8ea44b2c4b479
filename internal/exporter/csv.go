package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fitcli/internal/config"
	apperrors "fitcli/internal/errors"
	"fitcli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer. Relative file paths are resolved
// against the configured output directory.
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file, replacing any existing file
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	stream, err := w.CreateStreamWriter(filePath, options.Headers, options.BOMPrefix)
	if err != nil {
		return err
	}

	for i, record := range options.Records {
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return stream.Close()
}

// DiagnosticsHeader is the column layout of the null audit CSV
var DiagnosticsHeader = []string{"column", "missing_count"}

// WriteDiagnostics writes the null audit, one row per source column in
// header order
func (w *CSVWriter) WriteDiagnostics(ctx context.Context, filePath string, diag *domain.Diagnostics, bom bool) error {
	if diag == nil {
		return apperrors.NewAppValidationError("diagnostics are nil")
	}

	records := make([][]string, 0, len(diag.MissingValues))
	for _, m := range diag.MissingValues {
		records = append(records, []string{m.Column, formatInt(int64(m.Count))})
	}

	if err := w.WriteCSV(filePath, WriteOptions{Headers: DiagnosticsHeader, Records: records, BOMPrefix: bom}); err != nil {
		return apperrors.NewStorageError("failed to write diagnostics CSV", err)
	}

	w.logger.InfoContext(ctx, "Diagnostics CSV written",
		slog.String("path", w.resolvePath(filePath)),
		slog.Int("columns", len(records)),
		slog.Int("missing", diag.TotalMissing()))
	return nil
}

// WriteActivityTable writes the analysis table with its canonical header
func (w *CSVWriter) WriteActivityTable(ctx context.Context, filePath string, table *domain.ActivityTable, bom bool) error {
	if table == nil {
		return apperrors.NewAppValidationError("activity table is nil")
	}

	stream, err := w.CreateStreamWriter(filePath, table.Columns, bom)
	if err != nil {
		return err
	}

	for i, rec := range table.Records {
		if err := stream.WriteRecord(FormatRecord(rec)); err != nil {
			stream.Close()
			return apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	if err := stream.Close(); err != nil {
		return apperrors.NewStorageError("failed to close analysis CSV", err)
	}

	w.logger.InfoContext(ctx, "Analysis CSV written",
		slog.String("path", w.resolvePath(filePath)),
		slog.Int("record_count", len(table.Records)))
	return nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string, bom bool) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Creating CSV stream writer",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, apperrors.NewStorageError("failed to create directory", err).WithContext("dir", dir)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create file", err).WithContext("path", fullPath)
	}

	if bom {
		if _, err := file.Write(utf8BOM); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write headers", err)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// resolvePath resolves a relative path against the output directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return filepath.Join(w.paths.OutputDir, filePath)
}
