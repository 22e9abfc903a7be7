package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// skipToHeader returns the non-empty, trimmed lines after the line
// containing header. The banner and command echo the unit prepends are
// discarded. A missing header yields nil.
func skipToHeader(response, header string) []string {
	lines := strings.Split(response, "\n")
	start := -1
	for i, line := range lines {
		if strings.Contains(line, header) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var out []string
	for _, line := range lines[start:] {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// extractJSONBlock returns the first balanced JSON value in response that
// starts with open ('{' or '[') after the given header token.
func extractJSONBlock(response, header string, open, close byte) (string, error) {
	idx := strings.Index(response, header)
	if idx < 0 {
		return "", fmt.Errorf("no JSON content found after %q: %w", header, nherrors.ErrParsingFailed)
	}
	rest := response[idx+len(header):]

	start := strings.IndexByte(rest, open)
	if start < 0 {
		return "", fmt.Errorf("no JSON content found after %q: %w", header, nherrors.ErrParsingFailed)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(rest); i++ {
		c := rest[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return rest[start : i+1], nil
			}
		}
	}
	// Unbalanced block: hand the remainder to the JSON decoder so the
	// caller reports it as invalid JSON rather than missing content.
	return rest[start:], nil
}

// decodeJSONObject extracts and decodes a JSON object following header.
func decodeJSONObject(response, header string) (map[string]any, error) {
	block, err := extractJSONBlock(response, header, '{', '}')
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(block), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %v: %w", err, nherrors.ErrParsingFailed)
	}
	return obj, nil
}

// asBool coerces the unit's mixed boolean encodings: JSON booleans and the
// strings "true"/"TRUE"/"false"/"FALSE".
func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(t) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// asInt coerces JSON numbers and numeric strings.
func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		var n int
		if _, err := fmt.Sscanf(t, "%d", &n); err == nil {
			return n, true
		}
	}
	return 0, false
}

// asString returns v if it is a JSON string.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func setBool(dst **bool, v any) {
	if b, ok := asBool(v); ok {
		*dst = boolPtr(b)
	}
}

func setInt(dst **int, v any) {
	if n, ok := asInt(v); ok {
		*dst = intPtr(n)
	}
}

func setString(dst **string, v any) {
	if s, ok := asString(v); ok {
		*dst = strPtr(s)
	}
}
