package llm

import (
	"context"
	"regexp"
	"strings"
)

// FakeClient returns a deterministic chart configuration for offline use
// and tests. It reads the column list back out of the prompt so the
// config it fabricates at least references real columns.
type FakeClient struct {
	// Truncate cuts the response after N bytes to exercise repair paths.
	Truncate int
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

var reFakeColumns = regexp.MustCompile(`"columns":\s*\[([^\]]*)\]`)

func (f *FakeClient) Generate(_ context.Context, prompt string) (*Completion, error) {
	group := ""
	if m := reFakeColumns.FindStringSubmatch(prompt); m != nil {
		cols := strings.Split(m[1], ",")
		if len(cols) > 0 {
			group = strings.Trim(strings.TrimSpace(cols[0]), `"`)
		}
	}
	text := `{"chartType":"bar","title":"Count by ` + group + `","description":"Fake offline answer.","filters":[],"groupBy":"` + group + `","operation":"count","metricColumn":null,"sortOrder":"desc"}`
	if f.Truncate > 0 && f.Truncate < len(text) {
		text = text[:f.Truncate]
	}
	return &Completion{
		Text:  text,
		Usage: &Usage{PromptTokens: len(prompt) / 4, CompletionTokens: len(text) / 4, TotalTokens: (len(prompt) + len(text)) / 4},
	}, nil
}
