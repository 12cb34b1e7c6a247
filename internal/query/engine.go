package query

import (
	"math"
	"sort"
	"strings"

	"chartsmith/internal/chart"
	"chartsmith/internal/dataset"
)

// Execute applies a validated configuration to raw rows: filter, group,
// aggregate, sort. It never fails on malformed input; edge cases degrade
// to zero values per the documented fallbacks. Configurations with
// chartType "table" belong to ExecuteTable instead — callers branch on
// the chart type before choosing which result shape to expect.
func Execute(d *dataset.Dataset, cfg chart.Config) []chart.DataPoint {
	if d == nil || len(d.Rows) == 0 {
		return []chart.DataPoint{}
	}
	rows := filterRows(d.Rows, cfg.Filters)
	points := aggregateRows(rows, d.Columns, cfg)
	if cfg.SortOrder == chart.SortAsc {
		sort.SliceStable(points, func(i, j int) bool { return points[i].Value < points[j].Value })
	} else if cfg.SortOrder == chart.SortDesc {
		sort.SliceStable(points, func(i, j int) bool { return points[i].Value > points[j].Value })
	}
	return points
}

// filterRows keeps a row iff every filter matches. Filters AND together.
func filterRows(rows []dataset.Row, filters []chart.Filter) []dataset.Row {
	if len(filters) == 0 {
		return rows
	}
	out := make([]dataset.Row, 0, len(rows))
	for _, row := range rows {
		keep := true
		for _, f := range filters {
			if !matchFilter(row, f) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

func matchFilter(row dataset.Row, f chart.Filter) bool {
	cell := row[f.Column] // missing column reads as nil
	switch f.Operator {
	case chart.FilterEquals:
		return looseEqual(cell, f.Value)
	case chart.FilterNotEquals:
		return !looseEqual(cell, f.Value)
	case chart.FilterGreaterThan:
		return compareNumeric(cell, f.Value, func(a, b float64) bool { return a > b })
	case chart.FilterLessThan:
		return compareNumeric(cell, f.Value, func(a, b float64) bool { return a < b })
	case chart.FilterGreaterEqual:
		return compareNumeric(cell, f.Value, func(a, b float64) bool { return a >= b })
	case chart.FilterLessEqual:
		return compareNumeric(cell, f.Value, func(a, b float64) bool { return a <= b })
	case chart.FilterContains:
		return strings.Contains(
			strings.ToLower(stringify(cell)),
			strings.ToLower(stringify(f.Value)),
		)
	default:
		// Unknown operator: do not filter anything out.
		return true
	}
}

// compareNumeric coerces both sides to numbers; a side that will not
// coerce (including nil) is NaN and never matches.
func compareNumeric(cell, ref any, cmp func(a, b float64) bool) bool {
	a, okA := toNumber(cell)
	b, okB := toNumber(ref)
	if !okA || !okB {
		return false
	}
	return cmp(a, b)
}

// aggregateRows groups filtered rows and aggregates each bucket.
func aggregateRows(rows []dataset.Row, columns []string, cfg chart.Config) []chart.DataPoint {
	op := cfg.Operation
	if op != "" && !op.Valid() {
		op = chart.OpCount // unrecognized operation degrades to count
	}

	if cfg.GroupBy == "" {
		if op == chart.OpCount {
			return []chart.DataPoint{{Label: "Total", Value: float64(len(rows))}}
		}
		return rawPoints(rows, columns, cfg.MetricColumn)
	}

	// Bucket rows by the string form of the group cell, first-seen order.
	// Null and missing cells share the literal "Unknown" bucket.
	var order []string
	buckets := map[string][]dataset.Row{}
	for _, row := range rows {
		key := "Unknown"
		if v, ok := row[cfg.GroupBy]; ok && v != nil {
			key = stringify(v)
		}
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], row)
	}

	points := make([]chart.DataPoint, 0, len(order))
	for _, key := range order {
		points = append(points, chart.DataPoint{
			Label: key,
			Value: aggregate(buckets[key], op, cfg.MetricColumn),
		})
	}
	return points
}

// rawPoints is the ungrouped raw mode: one point per row, labeled with
// the first column's value.
func rawPoints(rows []dataset.Row, columns []string, metric string) []chart.DataPoint {
	points := make([]chart.DataPoint, 0, len(rows))
	for _, row := range rows {
		label := ""
		if len(columns) > 0 {
			label = stringify(row[columns[0]])
		}
		value := 0.0
		if metric != "" {
			if n, ok := toNumber(row[metric]); ok {
				value = n
			}
		}
		points = append(points, chart.DataPoint{
			Label:    label,
			Value:    round2(value),
			Original: row,
		})
	}
	return points
}

// aggregate computes one bucket's value. Empty or entirely non-numeric
// buckets yield 0 rather than NaN: a zero bar is more useful to the user
// than a failed render.
func aggregate(bucket []dataset.Row, op chart.Operation, metric string) float64 {
	switch op {
	case chart.OpSum:
		return round2(sumMetric(bucket, metric))
	case chart.OpAvg:
		if len(bucket) == 0 {
			return 0
		}
		return round2(sumMetric(bucket, metric) / float64(len(bucket)))
	case chart.OpMin:
		return round2(extremeMetric(bucket, metric, func(a, b float64) bool { return a < b }))
	case chart.OpMax:
		return round2(extremeMetric(bucket, metric, func(a, b float64) bool { return a > b }))
	default:
		return float64(len(bucket))
	}
}

func sumMetric(bucket []dataset.Row, metric string) float64 {
	total := 0.0
	for _, row := range bucket {
		if n, ok := toNumber(row[metric]); ok {
			total += n
		}
	}
	return total
}

func extremeMetric(bucket []dataset.Row, metric string, better func(a, b float64) bool) float64 {
	found := false
	best := 0.0
	for _, row := range bucket {
		n, ok := toNumber(row[metric])
		if !ok {
			continue
		}
		if !found || better(n, best) {
			best = n
			found = true
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
