package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads a CSV stream into a Dataset. The first record is the
// header row; duplicate or empty header cells are disambiguated so rows
// stay addressable by column name.
func ParseCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Dataset{Columns: []string{}, Rows: []Row{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	columns := normalizeHeader(header)

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(rows)+2, err)
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = parseScalar(record[i])
			} else {
				row[col] = nil
			}
		}
		rows = append(rows, row)
	}
	if rows == nil {
		rows = []Row{}
	}
	return &Dataset{
		Columns: columns,
		Rows:    rows,
		Meta:    inferMeta(columns, rows),
	}, nil
}

func normalizeHeader(header []string) []string {
	columns := make([]string, 0, len(header))
	seen := map[string]int{}
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[strings.TrimSpace(raw)]++
		columns = append(columns, name)
	}
	return columns
}
