package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// RequireCommandMirror validates the "command mirror" success convention:
// the unit echoes the exact command text back as its first response line.
// Surrounding whitespace is tolerated; anything else is a ResponseError.
func RequireCommandMirror(response, command string) error {
	firstLine := response
	if idx := strings.IndexByte(response, '\n'); idx >= 0 {
		firstLine = response[:idx]
	}
	if strings.TrimSpace(firstLine) != strings.TrimSpace(command) {
		return &nherrors.ResponseError{Expected: command, Actual: strings.TrimSpace(firstLine)}
	}
	return nil
}

// RequireContains validates that the response contains substring, case
// insensitively.
func RequireContains(response, substring string) error {
	if !strings.Contains(strings.ToLower(response), strings.ToLower(substring)) {
		return &nherrors.ResponseError{Expected: substring, Actual: strings.TrimSpace(response)}
	}
	return nil
}

// RequireSuccessIndicator validates the "success"/"failure" body
// convention. When expectedStart is non-empty the response must begin with
// it (whitespace tolerated). A "failure" token is a CommandError; a body
// with neither token is a ResponseError.
func RequireSuccessIndicator(response, expectedStart string) error {
	trimmed := strings.TrimSpace(response)
	if expectedStart != "" && !strings.HasPrefix(trimmed, expectedStart) {
		return &nherrors.ResponseError{
			Reason:   "unexpected response start",
			Expected: expectedStart,
			Actual:   trimmed,
		}
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "failure"):
		return &nherrors.CommandError{Message: "device reported failure: " + trimmed}
	case strings.Contains(lower, "success"):
		return nil
	default:
		return &nherrors.ResponseError{
			Reason:   "response missing success/failure indicator",
			Expected: "success",
			Actual:   trimmed,
		}
	}
}

// ParseJSONResponse extracts and decodes the JSON object after prefix.
func ParseJSONResponse(response, prefix string) (map[string]any, error) {
	idx := strings.Index(response, prefix)
	if idx < 0 {
		return nil, fmt.Errorf("invalid response format, missing %q: %w", prefix, nherrors.ErrParsingFailed)
	}
	body := strings.TrimSpace(response[idx+len(prefix):])

	var obj map[string]any
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %v: %w", err, nherrors.ErrParsingFailed)
	}
	return obj, nil
}

// CheckDeviceNotFound inspects a response for the unit's lookup-failure
// message ('"<device>" does not exist.') and returns the typed error when
// present. Command groups call this before family-specific validation.
func CheckDeviceNotFound(response string) error {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, "does not exist.") {
			name := strings.TrimSpace(strings.TrimSuffix(line, "does not exist."))
			name = strings.Trim(name, `"`)
			return &nherrors.DeviceNotFoundError{DeviceName: name}
		}
	}
	return nil
}
