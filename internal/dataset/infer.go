package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Column type labels as they appear in schema snapshots and prompts.
const (
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeString  = "string"
)

// parseScalar converts a raw text cell into its typed value.
// Empty cells become nil; numeric text becomes float64; true/false
// become bool; everything else stays a string.
func parseScalar(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}

// inferMeta computes per-column metadata over fully parsed rows.
func inferMeta(columns []string, rows []Row) map[string]ColumnMeta {
	meta := make(map[string]ColumnMeta, len(columns))
	for _, col := range columns {
		var (
			nulls    int
			numbers  int
			booleans int
			strs     int
			distinct = map[string]struct{}{}
			samples  []any
		)
		for _, row := range rows {
			v, ok := row[col]
			if !ok || v == nil {
				nulls++
				continue
			}
			switch v.(type) {
			case float64:
				numbers++
			case bool:
				booleans++
			default:
				strs++
			}
			key := stringify(v)
			if _, seen := distinct[key]; !seen {
				distinct[key] = struct{}{}
				if len(samples) < maxSampleRows {
					samples = append(samples, v)
				}
			}
		}
		meta[col] = ColumnMeta{
			Type:          dominantType(numbers, booleans, strs),
			DistinctCount: len(distinct),
			NullCount:     nulls,
			Samples:       samples,
		}
	}
	return meta
}

// dominantType picks the label for a column: a column is numeric or
// boolean only when every non-null cell agrees; otherwise it is a string.
func dominantType(numbers, booleans, strs int) string {
	switch {
	case numbers > 0 && booleans == 0 && strs == 0:
		return TypeNumber
	case booleans > 0 && numbers == 0 && strs == 0:
		return TypeBoolean
	default:
		return TypeString
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
