package chart

import (
	"encoding/json"
	"testing"

	"chartsmith/internal/tester"
)

func TestNormalize_TokenVariants(t *testing.T) {
	cfg := Config{
		ChartType: Type(" Bar "),
		Operation: Operation("Average"),
		SortOrder: SortOrder("Descending"),
		Filters: []Filter{
			{Column: "a", Operator: FilterOp(">=")},
			{Column: "b", Operator: FilterOp("not-equals")},
			{Column: "c", Operator: FilterOp("like")},
		},
	}
	cfg.Normalize()
	tester.Eq(t, cfg.ChartType, TypeBar)
	tester.Eq(t, cfg.Operation, OpAvg)
	tester.Eq(t, cfg.SortOrder, SortDesc)
	tester.Eq(t, cfg.Filters[0].Operator, FilterGreaterEqual)
	tester.Eq(t, cfg.Filters[1].Operator, FilterNotEquals)
	tester.Eq(t, cfg.Filters[2].Operator, FilterContains)
}

func TestNormalize_UnknownTokensSurvive(t *testing.T) {
	cfg := Config{ChartType: Type("scatter"), Operation: Operation("median")}
	cfg.Normalize()
	tester.Eq(t, cfg.ChartType, Type("scatter"))
	tester.False(t, cfg.ChartType.Valid())
	tester.Eq(t, cfg.Operation, Operation("median"))
	tester.False(t, cfg.Operation.Valid())
}

func TestConfig_JSONShape(t *testing.T) {
	cfg := Config{
		ChartType:    TypePie,
		Title:        "T",
		Filters:      []Filter{},
		GroupBy:      "Region",
		Operation:    OpSum,
		MetricColumn: "Sales",
		SortOrder:    SortDesc,
	}
	out, err := json.Marshal(cfg)
	tester.NoErr(t, err)
	s := string(out)
	for _, key := range []string{`"chartType":"pie"`, `"filters":[]`, `"groupBy":"Region"`, `"metricColumn":"Sales"`, `"sortOrder":"desc"`} {
		tester.Contains(t, s, key)
	}
}
