package llm

import (
	"context"
	"errors"
)

// Usage reports token consumption for a single generation call.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Completion is the raw text answer from a model, possibly truncated at
// the output-token cap, plus usage accounting when the provider reports it.
type Completion struct {
	Text  string
	Usage *Usage
}

// Client is the boundary to an external text generator. The pipeline
// treats it strictly as string in, string out; parsing and repair of the
// answer happen downstream.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string) (*Completion, error)
	Close() error
}

// ErrEmptyResponse is returned when the provider answers without any text.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// Generation parameters shared by the provider clients. Low temperature
// keeps the JSON answer near-deterministic; the output cap is the reason
// the response parser has to tolerate truncation.
const (
	defaultTemperature     = 0.2
	defaultTopP            = 0.95
	defaultTopK            = 40
	defaultMaxOutputTokens = 1024
)
