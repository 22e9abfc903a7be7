package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// DeviceFamily selects an overlay color palette. NHD-110/140 transmitters
// take 32-bit ARGB color values; NHD-200 transmitters take 16-bit values.
type DeviceFamily string

const (
	FamilyNHD110140 DeviceFamily = "nhd110_140"
	FamilyNHD200    DeviceFamily = "nhd200"
)

var overlayColors = map[DeviceFamily]map[string]string{
	FamilyNHD110140: {
		"red":    "FFFF0000",
		"white":  "FFFFFFFF",
		"black":  "FF000000",
		"purple": "FFFF00FF",
		"blue":   "FF0000FF",
		"green":  "FF00FFFF",
	},
	FamilyNHD200: {
		"red":    "FC00",
		"white":  "FFFF",
		"yellow": "FF00",
		"gray":   "BDEF",
		"green":  "BB00",
	},
}

// TextOverlayCommands controls the on-screen text overlay transmitters can
// stamp onto their video stream.
type TextOverlayCommands struct {
	s Sender
}

// SetOSD shows or hides the text overlay on the given transmitter.
func (c *TextOverlayCommands) SetOSD(ctx context.Context, enabled bool, tx string) error {
	return sendMirrored(ctx, c.s, fmt.Sprintf("config set device osd %s %s", onOff(enabled), tx))
}

// SetOSDParam configures the overlay text, position, color and size on the
// given transmitter. Position is in pixels within a 1920x1080 frame; size
// runs 1 (smallest) to 4. Color is a hex value for the transmitter's
// family; see ColorHex.
func (c *TextOverlayCommands) SetOSDParam(ctx context.Context, text string, x, y int, color string, size int, tx string) error {
	if x < 0 || x > 1920 {
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "SetOSDParam",
			fmt.Sprintf("position x %d outside [0,1920]", x))
	}
	if y < 0 || y > 1080 {
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "SetOSDParam",
			fmt.Sprintf("position y %d outside [0,1080]", y))
	}
	if size < 1 || size > 4 {
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "SetOSDParam",
			fmt.Sprintf("text size %d outside [1,4]", size))
	}
	command := fmt.Sprintf("config set device osd param %s %d %d %s %d %s", text, x, y, color, size, tx)
	return sendMirrored(ctx, c.s, command)
}

// ColorHex resolves a color name to the hex value the given device family
// expects. Unknown colors return an error naming the available choices.
func ColorHex(name string, family DeviceFamily) (string, error) {
	palette, ok := overlayColors[family]
	if !ok {
		return "", nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "ColorHex",
			fmt.Sprintf("unknown device family %q", family))
	}
	hex, ok := palette[name]
	if !ok {
		available := make([]string, 0, len(palette))
		for color := range palette {
			available = append(available, color)
		}
		sort.Strings(available)
		return "", nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "ColorHex",
			fmt.Sprintf("color %q not available for %s (available: %s)", name, family, strings.Join(available, ", ")))
	}
	return hex, nil
}
