package chart

// Type enumerates the chart kinds the pipeline can produce.
type Type string

const (
	TypePie   Type = "pie"
	TypeBar   Type = "bar"
	TypeLine  Type = "line"
	TypeTable Type = "table"
)

// Types lists every supported chart type in prompt order.
var Types = []Type{TypePie, TypeBar, TypeLine, TypeTable}

func (t Type) Valid() bool {
	switch t {
	case TypePie, TypeBar, TypeLine, TypeTable:
		return true
	}
	return false
}

// Operation is an aggregation applied per group.
type Operation string

const (
	OpCount Operation = "count"
	OpSum   Operation = "sum"
	OpAvg   Operation = "avg"
	OpMin   Operation = "min"
	OpMax   Operation = "max"
)

// Operations lists every supported aggregation in prompt order.
var Operations = []Operation{OpCount, OpSum, OpAvg, OpMin, OpMax}

func (o Operation) Valid() bool {
	switch o {
	case OpCount, OpSum, OpAvg, OpMin, OpMax:
		return true
	}
	return false
}

// FilterOp is a comparison operator inside a Filter.
type FilterOp string

const (
	FilterEquals       FilterOp = "equals"
	FilterNotEquals    FilterOp = "not_equals"
	FilterGreaterThan  FilterOp = "greater_than"
	FilterLessThan     FilterOp = "less_than"
	FilterGreaterEqual FilterOp = "greater_equal"
	FilterLessEqual    FilterOp = "less_equal"
	FilterContains     FilterOp = "contains"
)

// SortOrder orders resulting points by value.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filter is a single row predicate. Filters compose with logical AND.
type Filter struct {
	Column   string   `json:"column"`
	Operator FilterOp `json:"operator"`
	Value    any      `json:"value"`
}

// Config is the validated output of the generation pipeline.
// Immutable after validation; consumed by the query engine.
type Config struct {
	ChartType    Type      `json:"chartType"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Filters      []Filter  `json:"filters"`
	GroupBy      string    `json:"groupBy,omitempty"`
	Operation    Operation `json:"operation,omitempty"`
	MetricColumn string    `json:"metricColumn,omitempty"`
	SortOrder    SortOrder `json:"sortOrder,omitempty"`
}

// DataPoint is one renderable label/value pair produced by the query engine.
type DataPoint struct {
	Label    string         `json:"label"`
	Value    float64        `json:"value"`
	Original map[string]any `json:"originalData,omitempty"`
}
