package dataset

// Row maps column name to a scalar cell value: string, float64, bool, or nil.
type Row map[string]any

// ColumnMeta is per-column metadata computed at ingestion time.
type ColumnMeta struct {
	Type          string `json:"type"`
	DistinctCount int    `json:"distinctCount"`
	NullCount     int    `json:"nullCount"`
	Samples       []any  `json:"samples"`
}

// Dataset is a parsed tabular dataset. Immutable once parsed.
type Dataset struct {
	Columns []string              `json:"columns"`
	Rows    []Row                 `json:"rows"`
	Meta    map[string]ColumnMeta `json:"meta,omitempty"`
}

// Schema is the lightweight snapshot of a Dataset handed to the prompt
// builder. Created fresh per generation request; never mutated; carries
// no reference back to the Dataset.
type Schema struct {
	Columns     []string          `json:"columns"`
	ColumnTypes map[string]string `json:"columnTypes"`
	SampleRows  []Row             `json:"sampleRows"`
	RowCount    int               `json:"rowCount"`
}

const maxSampleRows = 5

// Extract reduces a dataset to the schema snapshot used for prompting.
// An empty or nil dataset yields an empty column list and RowCount 0.
func Extract(d *Dataset) Schema {
	s := Schema{
		Columns:     []string{},
		ColumnTypes: map[string]string{},
		SampleRows:  []Row{},
	}
	if d == nil {
		return s
	}
	s.Columns = append(s.Columns, d.Columns...)
	for name, meta := range d.Meta {
		if meta.Type != "" {
			s.ColumnTypes[name] = meta.Type
		}
	}
	s.RowCount = len(d.Rows)
	n := len(d.Rows)
	if n > maxSampleRows {
		n = maxSampleRows
	}
	for _, row := range d.Rows[:n] {
		sample := make(Row, len(row))
		for k, v := range row {
			sample[k] = v
		}
		s.SampleRows = append(s.SampleRows, sample)
	}
	return s
}
