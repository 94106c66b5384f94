package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\uFEFF"

// ReadCSVRecords reads a CSV document whose first row is a header and returns
// one map per data row keyed by column name. Rows shorter than the header
// simply lack the trailing keys; extra cells are dropped.
func ReadCSVRecords(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := make([]map[string]string, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+1, err)
		}

		record := make(map[string]string, len(header))
		for i, value := range row {
			if i >= len(header) {
				break
			}
			record[header[i]] = value
		}
		records = append(records, record)
	}

	return records, nil
}
