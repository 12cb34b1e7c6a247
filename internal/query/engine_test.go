package query

import (
	"testing"

	"chartsmith/internal/chart"
	"chartsmith/internal/dataset"
	"chartsmith/internal/tester"
)

func salesData() *dataset.Dataset {
	return &dataset.Dataset{
		Columns: []string{"City", "Sales", "Status"},
		Rows: []dataset.Row{
			{"City": "Tokyo", "Sales": 100.0, "Status": "done"},
			{"City": "Osaka", "Sales": 50.0, "Status": "pending"},
			{"City": "Tokyo", "Sales": 30.0, "Status": "done"},
			{"City": nil, "Sales": 20.0, "Status": "done"},
		},
	}
}

func TestExecute_CountByGroup(t *testing.T) {
	points := Execute(salesData(), chart.Config{
		ChartType: chart.TypeBar,
		GroupBy:   "City",
		Operation: chart.OpCount,
		SortOrder: chart.SortDesc,
	})
	tester.Eq(t, len(points), 3)
	tester.Eq(t, points[0].Label, "Tokyo")
	tester.Eq(t, points[0].Value, 2.0)
	// Osaka and Unknown tie at 1; descending sort is stable, so
	// first-seen order breaks the tie.
	tester.Eq(t, points[1].Label, "Osaka")
	tester.Eq(t, points[2].Label, "Unknown")
}

func TestExecute_NullGroupCellsShareUnknownBucket(t *testing.T) {
	points := Execute(salesData(), chart.Config{GroupBy: "City", Operation: chart.OpSum, MetricColumn: "Sales"})
	var unknown *chart.DataPoint
	for i := range points {
		if points[i].Label == "Unknown" {
			unknown = &points[i]
		}
	}
	tester.True(t, unknown != nil, "expected an Unknown bucket")
	tester.Eq(t, unknown.Value, 20.0)
}

func TestExecute_FilterThenSum(t *testing.T) {
	points := Execute(salesData(), chart.Config{
		Filters:      []chart.Filter{{Column: "Status", Operator: chart.FilterEquals, Value: "done"}},
		GroupBy:      "City",
		Operation:    chart.OpSum,
		MetricColumn: "Sales",
	})
	tester.Eq(t, len(points), 2)
	tester.Eq(t, points[0].Label, "Tokyo")
	tester.Eq(t, points[0].Value, 130.0)
	tester.Eq(t, points[1].Label, "Unknown")
	tester.Eq(t, points[1].Value, 20.0)
}

func TestExecute_FiltersAndTogether(t *testing.T) {
	points := Execute(salesData(), chart.Config{
		Filters: []chart.Filter{
			{Column: "Status", Operator: chart.FilterEquals, Value: "done"},
			{Column: "Sales", Operator: chart.FilterGreaterThan, Value: 25},
		},
		Operation: chart.OpCount,
	})
	// groupBy empty + count = one total point.
	tester.Eq(t, len(points), 1)
	tester.Eq(t, points[0].Label, "Total")
	tester.Eq(t, points[0].Value, 2.0)
}

func TestExecute_CountNeverExceedsFilteredRows(t *testing.T) {
	d := salesData()
	cfgs := []chart.Config{
		{GroupBy: "City", Operation: chart.OpCount},
		{GroupBy: "Status", Operation: chart.OpCount},
		{Operation: chart.OpCount},
	}
	for _, cfg := range cfgs {
		total := 0.0
		for _, p := range Execute(d, cfg) {
			total += p.Value
		}
		tester.Eq(t, total, float64(len(d.Rows)), "counts must partition the rows")
	}
}

func TestExecute_EmptyDataset(t *testing.T) {
	empty := &dataset.Dataset{Columns: []string{"A"}, Rows: nil}
	for _, cfg := range []chart.Config{
		{GroupBy: "A", Operation: chart.OpCount},
		{Operation: chart.OpCount},
		{},
	} {
		points := Execute(empty, cfg)
		tester.True(t, points != nil, "result must be empty, not nil")
		tester.Eq(t, len(points), 0)
	}
	tester.Eq(t, len(Execute(nil, chart.Config{})), 0)
}

func TestExecute_NonexistentColumns(t *testing.T) {
	// Nonexistent groupBy: every row lands in Unknown.
	points := Execute(salesData(), chart.Config{GroupBy: "Nope", Operation: chart.OpCount})
	tester.Eq(t, len(points), 1)
	tester.Eq(t, points[0].Label, "Unknown")
	tester.Eq(t, points[0].Value, 4.0)

	// Nonexistent metric column: sums of nothing are 0.
	points = Execute(salesData(), chart.Config{GroupBy: "City", Operation: chart.OpSum, MetricColumn: "Nope"})
	for _, p := range points {
		tester.Eq(t, p.Value, 0.0)
	}
}

func TestExecute_UnknownOperationDegradesToCount(t *testing.T) {
	points := Execute(salesData(), chart.Config{GroupBy: "City", Operation: chart.Operation("median")})
	tester.Eq(t, len(points), 3)
	tester.Eq(t, points[0].Value, 2.0)
}

func TestExecute_UnknownFilterOperatorKeepsRows(t *testing.T) {
	points := Execute(salesData(), chart.Config{
		Filters:   []chart.Filter{{Column: "City", Operator: chart.FilterOp("between"), Value: "x"}},
		Operation: chart.OpCount,
	})
	tester.Eq(t, points[0].Value, 4.0)
}

func TestExecute_AvgMinMax(t *testing.T) {
	d := salesData()
	avg := Execute(d, chart.Config{GroupBy: "Status", Operation: chart.OpAvg, MetricColumn: "Sales"})
	tester.Eq(t, avg[0].Label, "done")
	tester.Eq(t, avg[0].Value, 50.0) // (100+30+20)/3
	tester.Eq(t, avg[1].Value, 50.0) // pending: 50/1

	min := Execute(d, chart.Config{GroupBy: "Status", Operation: chart.OpMin, MetricColumn: "Sales"})
	tester.Eq(t, min[0].Value, 20.0)
	max := Execute(d, chart.Config{GroupBy: "Status", Operation: chart.OpMax, MetricColumn: "Sales"})
	tester.Eq(t, max[0].Value, 100.0)
}

func TestExecute_RoundsToTwoDecimals(t *testing.T) {
	d := &dataset.Dataset{
		Columns: []string{"G", "V"},
		Rows: []dataset.Row{
			{"G": "a", "V": 1.0},
			{"G": "a", "V": 1.0},
			{"G": "a", "V": 2.0},
		},
	}
	points := Execute(d, chart.Config{GroupBy: "G", Operation: chart.OpAvg, MetricColumn: "V"})
	tester.Eq(t, points[0].Value, 1.33)
}

func TestExecute_NumericFiltersOnStringCells(t *testing.T) {
	d := &dataset.Dataset{
		Columns: []string{"Age"},
		Rows: []dataset.Row{
			{"Age": "30"},
			{"Age": "7"},
			{"Age": "abc"},
			{"Age": nil},
		},
	}
	points := Execute(d, chart.Config{
		Filters:   []chart.Filter{{Column: "Age", Operator: chart.FilterGreaterEqual, Value: 10}},
		Operation: chart.OpCount,
	})
	// "30" coerces and passes; "7" fails the comparison; "abc" and nil
	// cannot coerce and never match.
	tester.Eq(t, points[0].Value, 1.0)
}

func TestExecute_ContainsIsCaseInsensitive(t *testing.T) {
	points := Execute(salesData(), chart.Config{
		Filters:   []chart.Filter{{Column: "Status", Operator: chart.FilterContains, Value: "PEND"}},
		Operation: chart.OpCount,
	})
	tester.Eq(t, points[0].Value, 1.0)
}

func TestExecute_RawModeWithoutGrouping(t *testing.T) {
	points := Execute(salesData(), chart.Config{
		ChartType:    chart.TypeLine,
		Operation:    chart.OpSum,
		MetricColumn: "Sales",
	})
	// One point per row, labeled with the first column, carrying the
	// original row for drill-down.
	tester.Eq(t, len(points), 4)
	tester.Eq(t, points[0].Label, "Tokyo")
	tester.Eq(t, points[0].Value, 100.0)
	tester.True(t, points[0].Original != nil, "raw points carry the original row")
}

func TestExecute_SortAscending(t *testing.T) {
	points := Execute(salesData(), chart.Config{
		GroupBy:      "City",
		Operation:    chart.OpSum,
		MetricColumn: "Sales",
		SortOrder:    chart.SortAsc,
	})
	for i := 1; i < len(points); i++ {
		tester.True(t, points[i-1].Value <= points[i].Value, "ascending order")
	}
}

func TestExecuteTable_FiltersOnly(t *testing.T) {
	res := ExecuteTable(salesData(), chart.Config{
		ChartType: chart.TypeTable,
		Filters: []chart.Filter{{Column: "Status", Operator: chart.FilterEquals, Value: "done"}},
		// grouping and aggregation are ignored for tables
		GroupBy:   "City",
		Operation: chart.OpSum,
	})
	tester.Eq(t, res.Headers, []string{"City", "Sales", "Status"})
	tester.Eq(t, len(res.Rows), 3)
}

func TestExecuteTable_NilDataset(t *testing.T) {
	res := ExecuteTable(nil, chart.Config{})
	tester.True(t, res.Headers != nil && res.Rows != nil, "empty, not nil")
	tester.Eq(t, len(res.Rows), 0)
}
