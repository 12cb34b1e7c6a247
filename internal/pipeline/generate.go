package pipeline

import (
	"context"
	"errors"
	"log"

	"chartsmith/internal/chart"
	"chartsmith/internal/dataset"
	"chartsmith/internal/llm"
)

// GenerateRequest is the pipeline boundary input: the user's instruction
// plus the schema snapshot of the dataset it refers to.
type GenerateRequest struct {
	UserPrompt string         `json:"userPrompt"`
	Schema     dataset.Schema `json:"dataSchema"`
}

// GenerateResponse is the pipeline boundary output contract.
type GenerateResponse struct {
	Success bool          `json:"success"`
	Config  *chart.Config `json:"config,omitempty"`
	Error   string        `json:"error,omitempty"`
	Usage   *llm.Usage    `json:"usage,omitempty"`
}

const msgGenerateFailed = "Failed to generate chart configuration"

// Generator runs one natural-language-to-config generation: build the
// prompt, call the model, parse and validate the answer. Transport errors
// are never retried here; retry policy belongs to the caller.
type Generator struct {
	LLM llm.Client
}

func (g *Generator) Run(ctx context.Context, req GenerateRequest) GenerateResponse {
	prompt := BuildPrompt(req.UserPrompt, req.Schema)
	comp, err := g.LLM.Generate(ctx, prompt)
	if err != nil {
		log.Printf("generate: model call failed: %v", err)
		return GenerateResponse{Success: false, Error: msgGenerateFailed}
	}

	cfg, err := Parse(comp.Text)
	if err != nil {
		log.Printf("generate: parse failed: %v", err)
		msg := msgGenerateFailed
		var pe *ParseError
		if errors.As(err, &pe) {
			msg = pe.Message()
		}
		return GenerateResponse{Success: false, Error: msg, Usage: comp.Usage}
	}
	return GenerateResponse{Success: true, Config: &cfg, Usage: comp.Usage}
}
