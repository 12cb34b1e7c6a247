package llm

import (
	"context"
	"log"
	"os"
	"strconv"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
	rl    *rpsLimiter
}

func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	// Optional RPS limiter via env: LLM_RPS/GEMINI_RPS and LLM_BURST/GEMINI_BURST
	rps := envFloat("LLM_RPS", envFloat("GEMINI_RPS", 0))
	burst := envInt("LLM_BURST", envInt("GEMINI_BURST", 0))
	return &GeminiClient{cli: cli, model: model, rl: newRPSLimiter(rps, burst)}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error {
	if g.rl != nil {
		g.rl.Stop()
	}
	return nil
}

// Generate sends the prompt with the shared generation parameters and
// returns the raw text of the first candidate.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (*Completion, error) {
	if err := g.rl.Acquire(ctx); err != nil {
		return nil, err
	}
	log.Printf("llm request (%s): %d bytes", g.Name(), len(prompt))
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](defaultTemperature),
			TopP:            genai.Ptr[float32](defaultTopP),
			TopK:            genai.Ptr[float32](defaultTopK),
			MaxOutputTokens: defaultMaxOutputTokens,
		},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}
	out := &Completion{Text: resp.Candidates[0].Content.Parts[0].Text}
	if um := resp.UsageMetadata; um != nil {
		out.Usage = &Usage{
			PromptTokens:     int(um.PromptTokenCount),
			CompletionTokens: int(um.CandidatesTokenCount),
			TotalTokens:      int(um.TotalTokenCount),
		}
	}
	return out, nil
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
