package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "fitcli/internal/errors"
	"fitcli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadOptions configures how an input file is read.
type ReadOptions struct {
	// Sheet selects the worksheet of an Excel input. Empty means the first sheet.
	Sheet string
}

// ReadFile reads a daily activity file into a raw table. The format is
// chosen by extension: .csv or .xlsx.
func ReadFile(path string, opts ReadOptions) (*domain.RawTable, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to open input file", err).WithContext("path", path)
		}
		defer f.Close()
		return ReadCSV(f, filepath.Base(path))
	case ".xlsx", ".xlsm":
		return ReadExcel(path, opts.Sheet)
	default:
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("unsupported input format %q", ext)).WithContext("path", path)
	}
}

// ReadCSV reads comma separated records with a header row. A leading UTF-8
// BOM is dropped. Short rows are padded with empty cells so the null audit
// counts them as missing; a row with more cells than the header is a
// parsing error.
func ReadCSV(r io.Reader, source string) (*domain.RawTable, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read csv content", err)
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to parse csv", err).WithContext("source", source)
	}

	return newRawTable(source, records)
}

// ReadExcel reads the header and data rows of one worksheet.
func ReadExcel(path, sheet string) (*domain.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read worksheet", err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}

	slog.Debug("Read worksheet",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("rows", len(rows)))

	return newRawTable(filepath.Base(path), rows)
}

func newRawTable(source string, records [][]string) (*domain.RawTable, error) {
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("input has no header row", nil).WithContext("source", source)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([][]string, 0, len(records)-1)
	for i, rec := range records[1:] {
		if isBlankRow(rec) {
			continue
		}
		if len(rec) > len(header) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("row %d has %d fields, header has %d", len(rows)+1, len(rec), len(header)), nil).
				WithContext("source", source).
				WithContext("record", i+2)
		}
		row := make([]string, len(header))
		copy(row, rec)
		rows = append(rows, row)
	}

	return &domain.RawTable{
		Source: source,
		Header: header,
		Rows:   rows,
	}, nil
}

func isBlankRow(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
