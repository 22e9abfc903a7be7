package protocol

import (
	"fmt"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// SceneKey identifies a preset within a video wall or window container.
// The wire encodes it as "<videowall>-<scene>"; the split is on the first
// dash only, so scene names may themselves contain dashes.
type SceneKey struct {
	Videowall string
	Scene     string
}

// parseSceneKey splits a composite scene identifier on its first dash.
func parseSceneKey(item string) (SceneKey, error) {
	idx := strings.IndexByte(item, '-')
	if idx < 0 {
		return SceneKey{}, fmt.Errorf("scene identifier %q missing videowall-scene separator: %w",
			item, nherrors.ErrParsingFailed)
	}
	return SceneKey{Videowall: item[:idx], Scene: item[idx+1:]}, nil
}

// parseSceneItems parses the space-separated scene identifiers after the
// given header. An empty listing is a valid empty result.
func parseSceneItems(response, header string) ([]SceneKey, error) {
	var keys []SceneKey
	for _, line := range skipToHeader(response, header) {
		for _, item := range strings.Fields(line) {
			key, err := parseSceneKey(item)
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// ParseSceneList parses a "scene list:" response into scene keys.
func ParseSceneList(response string) ([]SceneKey, error) {
	return parseSceneItems(response, "scene list:")
}

// ParseWindowSceneList parses a "wscene2 list:" response into scene keys.
func ParseWindowSceneList(response string) ([]SceneKey, error) {
	return parseSceneItems(response, "wscene2 list:")
}

// LogicalScreen is one logical screen of a video wall scene: the TX that
// feeds it and the row-major grid of receivers that compose it.
type LogicalScreen struct {
	Videowall string
	Scene     string
	Screen    string
	TX        string
	Rows      [][]string
}

// ParseLogicalScreens parses a "Video wall information:" response. Each
// screen is a header line "<videowall>-<scene>_<screen> <tx>" followed by
// one or more "Row N: <rx> <rx> ..." lines.
func ParseLogicalScreens(response string) ([]LogicalScreen, error) {
	lines := skipToHeader(response, "Video wall information:")

	var screens []LogicalScreen
	for _, line := range lines {
		if strings.HasPrefix(line, "Row ") {
			if len(screens) == 0 {
				return nil, fmt.Errorf("row line %q before any screen header: %w", line, nherrors.ErrParsingFailed)
			}
			colon := strings.IndexByte(line, ':')
			if colon < 0 {
				return nil, fmt.Errorf("invalid row line %q: %w", line, nherrors.ErrParsingFailed)
			}
			row := strings.Fields(line[colon+1:])
			last := &screens[len(screens)-1]
			last.Rows = append(last.Rows, row)
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("invalid screen header format %q: %w", line, nherrors.ErrParsingFailed)
		}
		name, tx := fields[0], fields[1]

		under := strings.IndexByte(name, '_')
		if under < 0 {
			return nil, fmt.Errorf("screen header %q missing logical screen separator: %w",
				name, nherrors.ErrParsingFailed)
		}
		key, err := parseSceneKey(name[:under])
		if err != nil {
			return nil, err
		}

		screens = append(screens, LogicalScreen{
			Videowall: key.Videowall,
			Scene:     key.Scene,
			Screen:    name[under+1:],
			TX:        tx,
		})
	}
	return screens, nil
}
