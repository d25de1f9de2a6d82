package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned when a table file extension is not supported.
var ErrUnsupportedFormat = errors.New("unsupported table format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Row is one data record keyed by the header column names.
type Row map[string]string

// Get returns the trimmed value of a column, or "" when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Raw returns the column value exactly as it appears in the source.
func (r Row) Raw(column string) string {
	return r[column]
}

// ForEachRow streams the data rows of a delimited or spreadsheet table,
// calling fn once per row. The first non-empty row is the header; rows
// shorter than the header are padded with empty strings.
func ForEachRow(path string, fn func(Row) error) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return forEachCSVRow(path, fn)
	case ".xlsx":
		return forEachExcelRow(path, fn)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ReadRows reads a whole table into memory. Convenience wrapper over ForEachRow.
func ReadRows(path string) ([]Row, error) {
	var rows []Row
	err := ForEachRow(path, func(row Row) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func forEachCSVRow(path string, fn func(Row) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open table %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	var header []string
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read table %s: %w", path, err)
		}
		if header == nil {
			if emptyRecord(record) {
				continue
			}
			header = cleanHeader(record)
			continue
		}
		if err := fn(zipRow(header, record)); err != nil {
			return err
		}
	}
}

func forEachExcelRow(path string, fn func(Row) error) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open table %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("table %s has no sheets", path)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("read table %s: %w", path, err)
	}

	var header []string
	for _, record := range records {
		if header == nil {
			if emptyRecord(record) {
				continue
			}
			header = cleanHeader(record)
			continue
		}
		if err := fn(zipRow(header, record)); err != nil {
			return err
		}
	}
	return nil
}

func cleanHeader(record []string) []string {
	header := make([]string, len(record))
	for i, cell := range record {
		header[i] = strings.TrimSpace(cell)
	}
	return header
}

func emptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func zipRow(header, record []string) Row {
	row := make(Row, len(header))
	for i, column := range header {
		if column == "" {
			continue
		}
		if i < len(record) {
			row[column] = record[i]
		} else {
			row[column] = ""
		}
	}
	return row
}
