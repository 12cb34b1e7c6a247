package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of an XLSX stream into a Dataset.
// Cells come back from excelize as display strings, so scalar parsing
// follows the same rules as CSV ingestion.
func ParseXLSX(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Dataset{Columns: []string{}, Rows: []Row{}}, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return &Dataset{Columns: []string{}, Rows: []Row{}}, nil
	}

	columns := normalizeHeader(records[0])
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
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
	return &Dataset{
		Columns: columns,
		Rows:    rows,
		Meta:    inferMeta(columns, rows),
	}, nil
}
