package jsonutil

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MarshalNoEscape encodes v into JSON without escaping <, >, & into <, etc.
// Prompt templates embed sample rows verbatim, so HTML escaping would only
// confuse the model.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Remove trailing newline from json.Encoder.Encode
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return out, nil
}

// ExtractObject slices raw model text down to the outermost JSON object:
// it strips markdown code fences and discards any prose before the first
// '{' and after the last '}'. ok is false when no '{' exists at all.
func ExtractObject(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = stripFences(s)
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end > start {
		return s[start : end+1], true
	}
	// No closing brace at all; hand back the open tail for repair.
	return s[start:], true
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the fence line.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		if len(first) <= 10 && !strings.ContainsAny(first, "{}") {
			s = s[i+1:]
		}
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Balanced reports whether every brace/bracket opened outside a string
// literal is closed, and whether the text ends inside a string literal.
func Balanced(s string) (balanced bool, inString bool) {
	st := scan(s)
	return len(st.stack) == 0 && !st.inString, st.inString
}

// scanState is the structural position at the end of a JSON prefix.
type scanState struct {
	stack    []byte // open '{' and '[' outside strings, in order
	inString bool
	// strOpen is the byte offset of the opening quote of the unterminated
	// string, valid only when inString is true.
	strOpen int
}

func scan(s string) scanState {
	st := scanState{}
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				st.inString = false
			}
			continue
		}
		switch c {
		case '"':
			st.inString = true
			st.strOpen = i
		case '{', '[':
			st.stack = append(st.stack, c)
		case '}':
			if n := len(st.stack); n > 0 && st.stack[n-1] == '{' {
				st.stack = st.stack[:n-1]
			}
		case ']':
			if n := len(st.stack); n > 0 && st.stack[n-1] == '[' {
				st.stack = st.stack[:n-1]
			}
		}
	}
	return st
}

// closers returns the closing sequence for the open-bracket stack.
func closers(stack []byte) string {
	var b strings.Builder
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}

// RepairCandidates generates best-effort completions of a truncated JSON
// object, one per named strategy, in the order they should be attempted:
// drop a dangling comma, terminate an open string, close open brackets.
// Callers try each candidate until one parses.
func RepairCandidates(s string) []string {
	var out []string
	for _, strat := range []func(string) (string, bool){
		closeAfterComma,
		closeUnterminatedString,
		closeOpenBrackets,
	} {
		if fixed, ok := strat(s); ok {
			out = append(out, fixed)
		}
	}
	return out
}

// closeAfterComma handles text cut immediately after a comma (or comma
// plus whitespace): the comma is dropped and the open brackets closed.
func closeAfterComma(s string) (string, bool) {
	st := scan(s)
	if st.inString || len(st.stack) == 0 {
		return "", false
	}
	trimmed := strings.TrimRight(s, " \t\r\n")
	if !strings.HasSuffix(trimmed, ",") {
		return "", false
	}
	trimmed = strings.TrimRight(trimmed[:len(trimmed)-1], " \t\r\n")
	return trimmed + closers(st.stack), true
}

// closeUnterminatedString handles text cut inside a string literal: the
// string is terminated and the open brackets closed. A string cut off in
// key position additionally gets a null value so the object stays valid.
func closeUnterminatedString(s string) (string, bool) {
	st := scan(s)
	if !st.inString {
		return "", false
	}
	fixed := s + `"`
	if isKeyPosition(s, st) {
		fixed += `:null`
	}
	return fixed + closers(st.stack), true
}

// isKeyPosition reports whether the unterminated string opened where an
// object key belongs (directly after '{' or ',' inside an object).
func isKeyPosition(s string, st scanState) bool {
	if n := len(st.stack); n == 0 || st.stack[n-1] != '{' {
		return false
	}
	for i := st.strOpen - 1; i >= 0; i-- {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case '{', ',':
			return true
		default:
			return false
		}
	}
	return false
}

// closeOpenBrackets is the fallback strategy: append whatever closers the
// bracket stack still needs.
func closeOpenBrackets(s string) (string, bool) {
	st := scan(s)
	if st.inString || len(st.stack) == 0 {
		return "", false
	}
	// A dangling "key": tail would still be invalid; give it a null.
	trimmed := strings.TrimRight(s, " \t\r\n")
	if strings.HasSuffix(trimmed, ":") {
		trimmed += "null"
	}
	return trimmed + closers(st.stack), true
}
