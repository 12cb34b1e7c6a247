package pipeline

import (
	"strings"

	"chartsmith/internal/dataset"
	"chartsmith/internal/util/jsonutil"
)

// Chart generation prompt. The external model is the one component with no
// type system, so this template is the only enforcement point for output
// shape: it enumerates the supported chart types and operations, pins the
// exact JSON response shape, and shows worked examples. Untrusted schema
// content is embedded JSON-encoded, never inside fence markers.
const promptChart = `You are a chart configuration generator for a data visualization tool.

Task
- You will be given the schema of a tabular dataset ("[SCHEMA]") and a user's natural-language request ("[REQUEST]").
- Produce exactly one JSON object describing the chart to build. No markdown, no code fences, no prose before or after the JSON.

Supported values
- chartType: "pie" | "bar" | "line" | "table"
- operation: "count" | "sum" | "avg" | "min" | "max"
- filter operator: "equals" | "not_equals" | "greater_than" | "less_than" | "greater_equal" | "less_equal" | "contains"
- sortOrder: "asc" | "desc" | null

Output (single JSON object, only these fields)
{
  "chartType": "bar",
  "title": "string",
  "description": "string",
  "filters": [
    {"column": "string", "operator": "equals", "value": "scalar"}
  ],
  "groupBy": "column name or null",
  "operation": "count",
  "metricColumn": "column name or null",
  "sortOrder": "desc"
}

Examples

Request: "Show the number of orders per city"
{
  "chartType": "bar",
  "title": "Orders per City",
  "description": "Number of orders grouped by city.",
  "filters": [],
  "groupBy": "City",
  "operation": "count",
  "metricColumn": null,
  "sortOrder": "desc"
}

Request: "Total sales by region for amounts over 100, as a pie chart"
{
  "chartType": "pie",
  "title": "Total Sales by Region (Amount > 100)",
  "description": "Sum of Sales per Region, restricted to rows with Amount greater than 100.",
  "filters": [
    {"column": "Amount", "operator": "greater_than", "value": 100}
  ],
  "groupBy": "Region",
  "operation": "sum",
  "metricColumn": "Sales",
  "sortOrder": "desc"
}

Request: "List all rows where status contains pending"
{
  "chartType": "table",
  "title": "Pending Rows",
  "description": "Raw rows whose Status contains \"pending\".",
  "filters": [
    {"column": "Status", "operator": "contains", "value": "pending"}
  ],
  "groupBy": null,
  "operation": null,
  "metricColumn": null,
  "sortOrder": null
}

Constraints & notes
- Use only column names that appear in the schema.
- Use operation "count" with metricColumn null when the request asks for totals of rows rather than of a numeric column.
- If operation is "sum", "avg", "min" or "max", metricColumn must name a numeric column.
- groupBy null with operation "count" means one total over all matching rows.
- If unsure, prefer a simple bar chart over guessing exotic options.
`

// BuildPrompt renders the full instruction for one generation request.
// Deterministic: same prompt and schema always produce the same string.
func BuildPrompt(userPrompt string, schema dataset.Schema) string {
	schemaJSON, err := jsonutil.MarshalNoEscape(schema)
	if err != nil {
		schemaJSON = []byte("{}")
	}
	var b strings.Builder
	b.WriteString(promptChart)
	b.WriteString("\n[SCHEMA]\n")
	b.Write(schemaJSON)
	b.WriteString("\n\n[REQUEST]\n")
	b.WriteString(strings.TrimSpace(userPrompt))
	b.WriteString("\n")
	return b.String()
}
