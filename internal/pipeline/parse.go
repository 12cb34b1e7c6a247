package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"chartsmith/internal/chart"
	"chartsmith/internal/util/jsonutil"
)

// ParseErrorKind classifies why a model answer could not become a config.
type ParseErrorKind string

const (
	// ErrIncomplete: the answer looks cut off (bracket or string imbalance).
	ErrIncomplete ParseErrorKind = "incomplete"
	// ErrInvalid: syntactically broken in some other way.
	ErrInvalid ParseErrorKind = "invalid"
	// ErrUnsupportedType: parsed fine but names an unknown chart type.
	ErrUnsupportedType ParseErrorKind = "unsupported_chart_type"
)

// User-facing messages per kind; the API returns these verbatim.
const (
	msgIncomplete  = "AI response was incomplete. Please try again."
	msgInvalid     = "AI returned an invalid response. Please try again."
	msgUnsupported = "AI requested an unsupported chart type. Please try again."
)

// ParseError reports a classified parse or validation failure.
type ParseError struct {
	Kind ParseErrorKind
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse chart config (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("parse chart config (%s)", e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Message is the user-facing text for this failure.
func (e *ParseError) Message() string {
	switch e.Kind {
	case ErrIncomplete:
		return msgIncomplete
	case ErrUnsupportedType:
		return msgUnsupported
	default:
		return msgInvalid
	}
}

// rawConfig mirrors chart.Config but keeps filters raw so a missing or
// malformed filters field degrades to empty instead of failing the parse.
type rawConfig struct {
	ChartType    string          `json:"chartType"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Filters      json.RawMessage `json:"filters"`
	GroupBy      string          `json:"groupBy"`
	Operation    string          `json:"operation"`
	MetricColumn string          `json:"metricColumn"`
	SortOrder    string          `json:"sortOrder"`
}

// Parse turns raw model text into a validated chart configuration. It
// tolerates code fences, surrounding prose, and token-limit truncation:
// an unbalanced answer goes through the ordered repair strategies and the
// first candidate that parses wins. Pure function; same input, same result.
func Parse(raw string) (chart.Config, error) {
	text, ok := jsonutil.ExtractObject(raw)
	if !ok {
		return chart.Config{}, &ParseError{Kind: ErrInvalid, Err: fmt.Errorf("no JSON object in response")}
	}

	candidates := []string{text}
	balanced, inString := jsonutil.Balanced(text)
	if !balanced {
		candidates = append(candidates, jsonutil.RepairCandidates(text)...)
	}

	var rc rawConfig
	var lastErr error
	parsed := false
	for _, cand := range candidates {
		rc = rawConfig{}
		if err := json.Unmarshal([]byte(cand), &rc); err != nil {
			lastErr = err
			continue
		}
		parsed = true
		break
	}
	if !parsed {
		kind := ErrInvalid
		if !balanced || inString || looksTruncated(lastErr) {
			kind = ErrIncomplete
		}
		return chart.Config{}, &ParseError{Kind: kind, Err: lastErr}
	}

	cfg := chart.Config{
		ChartType:    chart.Type(rc.ChartType),
		Title:        strings.TrimSpace(rc.Title),
		Description:  strings.TrimSpace(rc.Description),
		Filters:      decodeFilters(rc.Filters),
		GroupBy:      strings.TrimSpace(rc.GroupBy),
		Operation:    chart.Operation(rc.Operation),
		MetricColumn: strings.TrimSpace(rc.MetricColumn),
		SortOrder:    chart.SortOrder(rc.SortOrder),
	}
	cfg.Normalize()
	if !cfg.ChartType.Valid() {
		return chart.Config{}, &ParseError{Kind: ErrUnsupportedType, Err: fmt.Errorf("chart type %q", rc.ChartType)}
	}
	if cfg.Title == "" {
		cfg.Title = "Generated Chart"
	}
	return cfg, nil
}

// decodeFilters coerces the raw filters field to a filter list; anything
// that is not a well-formed array becomes empty. Absence is common and
// harmless, so resilience beats strictness for this one field.
func decodeFilters(raw json.RawMessage) []chart.Filter {
	if len(raw) == 0 {
		return []chart.Filter{}
	}
	var filters []chart.Filter
	if err := json.Unmarshal(raw, &filters); err != nil || filters == nil {
		return []chart.Filter{}
	}
	return filters
}

func looksTruncated(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unexpected end of JSON input") ||
		strings.Contains(msg, "unexpected EOF")
}
