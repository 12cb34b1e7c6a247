package query

import (
	"chartsmith/internal/chart"
	"chartsmith/internal/dataset"
)

// TableResult is the pass-through shape for "table" charts: headers plus
// the filtered, unaggregated rows.
type TableResult struct {
	Headers []string      `json:"headers"`
	Rows    []dataset.Row `json:"rows"`
}

// ExecuteTable routes a table configuration: filters apply, grouping and
// aggregation do not.
func ExecuteTable(d *dataset.Dataset, cfg chart.Config) TableResult {
	if d == nil {
		return TableResult{Headers: []string{}, Rows: []dataset.Row{}}
	}
	rows := filterRows(d.Rows, cfg.Filters)
	if rows == nil {
		rows = []dataset.Row{}
	}
	headers := append([]string{}, d.Columns...)
	return TableResult{Headers: headers, Rows: rows}
}
