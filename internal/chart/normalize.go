package chart

import "strings"

// Normalize rewrites token variants the model is known to drift toward
// (long forms, hyphens, symbols) into the canonical constants. Unknown
// tokens are left as-is; validation decides what to do with them.
func (c *Config) Normalize() {
	c.ChartType = Type(strings.ToLower(strings.TrimSpace(string(c.ChartType))))
	c.Operation = normalizeOperation(c.Operation)
	c.SortOrder = normalizeSortOrder(c.SortOrder)
	for i := range c.Filters {
		c.Filters[i].Operator = normalizeFilterOp(c.Filters[i].Operator)
	}
}

func normalizeOperation(op Operation) Operation {
	switch strings.ToLower(strings.TrimSpace(string(op))) {
	case "":
		return ""
	case "count":
		return OpCount
	case "sum", "total":
		return OpSum
	case "avg", "average", "mean":
		return OpAvg
	case "min", "minimum":
		return OpMin
	case "max", "maximum":
		return OpMax
	}
	return op
}

func normalizeSortOrder(s SortOrder) SortOrder {
	switch strings.ToLower(strings.TrimSpace(string(s))) {
	case "":
		return ""
	case "asc", "ascending":
		return SortAsc
	case "desc", "descending":
		return SortDesc
	}
	return s
}

func normalizeFilterOp(op FilterOp) FilterOp {
	switch strings.ToLower(strings.TrimSpace(string(op))) {
	case "equals", "eq", "=", "==":
		return FilterEquals
	case "not_equals", "not-equals", "neq", "!=":
		return FilterNotEquals
	case "greater_than", "greater-than", "gt", ">":
		return FilterGreaterThan
	case "less_than", "less-than", "lt", "<":
		return FilterLessThan
	case "greater_equal", "greater-or-equal", "gte", ">=":
		return FilterGreaterEqual
	case "less_equal", "less-or-equal", "lte", "<=":
		return FilterLessEqual
	case "contains", "like":
		return FilterContains
	}
	return op
}
