package pipeline

import (
	"context"
	"errors"
	"testing"

	"chartsmith/internal/chart"
	"chartsmith/internal/dataset"
	"chartsmith/internal/llm"
	"chartsmith/internal/tester"
)

type scriptedClient struct {
	text string
	err  error
}

func (s *scriptedClient) Name() string { return "scripted" }
func (s *scriptedClient) Close() error { return nil }
func (s *scriptedClient) Generate(context.Context, string) (*llm.Completion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Completion{Text: s.text, Usage: &llm.Usage{TotalTokens: 10}}, nil
}

func salesSchema() dataset.Schema {
	return dataset.Schema{
		Columns:     []string{"City", "Sales"},
		ColumnTypes: map[string]string{"City": "string", "Sales": "number"},
		SampleRows:  []dataset.Row{},
		RowCount:    3,
	}
}

func TestGenerator_Success(t *testing.T) {
	g := &Generator{LLM: &scriptedClient{
		text: `{"chartType":"bar","title":"Sales by City","filters":[],"groupBy":"City","operation":"sum","metricColumn":"Sales","sortOrder":"desc"}`,
	}}
	resp := g.Run(context.Background(), GenerateRequest{UserPrompt: "sales per city", Schema: salesSchema()})
	tester.True(t, resp.Success)
	tester.Eq(t, resp.Config.ChartType, chart.TypeBar)
	tester.Eq(t, resp.Usage.TotalTokens, 10)
	tester.Eq(t, resp.Error, "")
}

func TestGenerator_TransportErrorIsNotRetried(t *testing.T) {
	g := &Generator{LLM: &scriptedClient{err: errors.New("connection reset")}}
	resp := g.Run(context.Background(), GenerateRequest{UserPrompt: "x", Schema: salesSchema()})
	tester.False(t, resp.Success)
	tester.Eq(t, resp.Error, "Failed to generate chart configuration")
	tester.True(t, resp.Config == nil, "no config on failure")
}

func TestGenerator_ParseFailureUsesClassifiedMessage(t *testing.T) {
	g := &Generator{LLM: &scriptedClient{text: `{"chartType":"scatter","title":"X"}`}}
	resp := g.Run(context.Background(), GenerateRequest{UserPrompt: "x", Schema: salesSchema()})
	tester.False(t, resp.Success)
	tester.Eq(t, resp.Error, "AI requested an unsupported chart type. Please try again.")
	// Token usage is still reported even when parsing fails.
	tester.True(t, resp.Usage != nil, "usage should survive a parse failure")
}

func TestGenerator_TruncatedFakeResponseRepairs(t *testing.T) {
	// The offline client cut mid-answer still yields a working config via
	// the repair path.
	g := &Generator{LLM: &llm.FakeClient{Truncate: 110}}
	resp := g.Run(context.Background(), GenerateRequest{UserPrompt: "count per city", Schema: salesSchema()})
	tester.True(t, resp.Success, resp.Error)
	tester.Eq(t, resp.Config.ChartType, chart.TypeBar)
	tester.Eq(t, resp.Config.GroupBy, "City")
}
