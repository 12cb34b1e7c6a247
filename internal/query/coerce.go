package query

import (
	"fmt"
	"strconv"
	"strings"
)

// toNumber coerces a cell to a float64. Follows the loose numeric rules
// of the filter operators: numbers pass through, booleans map to 1/0,
// numeric-looking strings parse, everything else fails.
func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// stringify renders a cell the way group keys and labels need it:
// integers without a decimal tail, booleans as true/false.
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

// looseEqual compares two scalars with loose semantics: nil equals only
// nil, numeric coercions compare as numbers, everything else compares by
// string form.
func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := toNumber(a); ok {
		if fb, ok := toNumber(b); ok {
			return fa == fb
		}
	}
	return stringify(a) == stringify(b)
}
