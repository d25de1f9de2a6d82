package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteTable persists rows as a CSV table with the exact column order given,
// header row first. Missing columns are written as empty cells. Any needed
// parent directories are created.
func WriteTable(path string, columns []string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory for %s: %w", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table %s: %w", path, err)
	}
	defer file.Close()

	buffered := bufio.NewWriterSize(file, 1<<20)
	writer := csv.NewWriter(buffered)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write header of %s: %w", path, err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, column := range columns {
			record[i] = row[column]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row of %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush table %s: %w", path, err)
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("flush table %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close table %s: %w", path, err)
	}
	return nil
}
