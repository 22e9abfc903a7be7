package protocol

import (
	"fmt"
	"strconv"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// MultiviewTile is one source tile in a custom multiview layout, encoded
// on the wire as "tx:x_y_w_h:scaling". Scaling is always explicit.
type MultiviewTile struct {
	TX      string
	X       int
	Y       int
	Width   int
	Height  int
	Scaling string
}

// ParseTileConfig parses a single tile descriptor.
func ParseTileConfig(config string) (MultiviewTile, error) {
	parts := strings.Split(config, ":")
	if len(parts) != 3 {
		return MultiviewTile{}, fmt.Errorf("invalid tile configuration %q: %w", config, nherrors.ErrParsingFailed)
	}

	coords := strings.Split(parts[1], "_")
	if len(coords) != 4 {
		return MultiviewTile{}, fmt.Errorf("invalid tile coordinates in %q: %w", config, nherrors.ErrParsingFailed)
	}

	nums := make([]int, 4)
	for i, c := range coords {
		n, err := strconv.Atoi(c)
		if err != nil {
			return MultiviewTile{}, fmt.Errorf("invalid tile coordinates in %q: %w", config, nherrors.ErrParsingFailed)
		}
		nums[i] = n
	}

	return MultiviewTile{
		TX:      parts[0],
		X:       nums[0],
		Y:       nums[1],
		Width:   nums[2],
		Height:  nums[3],
		Scaling: parts[2],
	}, nil
}

// MultiviewLayout is one receiver's custom multiview configuration.
type MultiviewLayout struct {
	RX    string
	Mode  string
	Tiles []MultiviewTile
}

// ParseMultiviewLayouts parses an "mview information:" response. Each
// line is "<rx> <mode> <tile> <tile> ..." with mode tile or overlay.
func ParseMultiviewLayouts(response string) ([]MultiviewLayout, error) {
	var layouts []MultiviewLayout
	for _, line := range skipToHeader(response, "mview information:") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("invalid multiview layout line format %q: %w", line, nherrors.ErrParsingFailed)
		}

		layout := MultiviewLayout{RX: fields[0], Mode: fields[1]}
		if layout.Mode != "tile" && layout.Mode != "overlay" {
			return nil, fmt.Errorf("invalid multiview mode %q in %q: %w", layout.Mode, line, nherrors.ErrParsingFailed)
		}

		for _, cfg := range fields[2:] {
			tile, err := ParseTileConfig(cfg)
			if err != nil {
				return nil, fmt.Errorf("invalid tile configuration in line %q: %w", line, err)
			}
			layout.Tiles = append(layout.Tiles, tile)
		}
		layouts = append(layouts, layout)
	}
	return layouts, nil
}

// PresetLayout is one receiver's list of preset multiview layout names
// from "mscene list:".
type PresetLayout struct {
	RX      string
	Layouts []string
}

// ParsePresetLayouts parses an "mscene list:" response. Each line is
// "<rx> <layout> <layout> ...". An empty listing is valid.
func ParsePresetLayouts(response string) ([]PresetLayout, error) {
	var presets []PresetLayout
	for _, line := range skipToHeader(response, "mscene list:") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("invalid preset multiview layout line format %q: %w",
				line, nherrors.ErrParsingFailed)
		}
		presets = append(presets, PresetLayout{RX: fields[0], Layouts: fields[1:]})
	}
	return presets, nil
}
