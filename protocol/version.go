package protocol

import (
	"fmt"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// Version is the unit's reported software versions from
// "config get version".
type Version struct {
	API  string
	Web  string
	Core string
}

// ParseVersion parses the two-line version response:
//
//	API version: v1.21
//	System version: v8.3.1(v8.3.8)
//
// The parenthesized core version is optional; when absent the core version
// equals the web version.
func ParseVersion(response string) (Version, error) {
	var v Version

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "API version:"):
			v.API = strings.TrimPrefix(strings.TrimSpace(strings.TrimPrefix(line, "API version:")), "v")
		case strings.HasPrefix(line, "System version:"):
			sys := strings.TrimSpace(strings.TrimPrefix(line, "System version:"))
			if open := strings.IndexByte(sys, '('); open >= 0 {
				closeIdx := strings.IndexByte(sys, ')')
				if closeIdx > open {
					v.Core = strings.TrimPrefix(sys[open+1:closeIdx], "v")
				}
				sys = sys[:open]
			}
			v.Web = strings.TrimPrefix(strings.TrimSpace(sys), "v")
		}
	}

	if v.API == "" {
		return Version{}, fmt.Errorf("could not find API version in response: %w", nherrors.ErrParsingFailed)
	}
	if v.Web == "" {
		return Version{}, fmt.Errorf("could not find System version in response: %w", nherrors.ErrParsingFailed)
	}
	if v.Core == "" {
		v.Core = v.Web
	}
	return v, nil
}
