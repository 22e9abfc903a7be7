package commands

import (
	"context"
	"fmt"

	nherrors "github.com/c360/networkhd/errors"
)

// TileConfig places one transmitter's stream inside a custom multiview
// layout. Scaling is "fit" or "stretch"; empty defaults to "fit".
type TileConfig struct {
	TX      string
	X       int
	Y       int
	Width   int
	Height  int
	Scaling string
}

// String renders the tile in the unit's TX:x_y_w_h:scaling form.
func (t TileConfig) String() string {
	scaling := t.Scaling
	if scaling == "" {
		scaling = "fit"
	}
	return fmt.Sprintf("%s:%d_%d_%d_%d:%s", t.TX, t.X, t.Y, t.Width, t.Height, scaling)
}

// MultiviewCommands drives multiview receivers: full-screen and custom tile
// layouts, preset layout scenes and their audio and PiP settings.
type MultiviewCommands struct {
	s Sender
}

// SetSingle shows one transmitter full screen on a multiview receiver.
// Mode is "tile", "overlay" or empty for the unit default.
func (c *MultiviewCommands) SetSingle(ctx context.Context, rx, tx, mode string) error {
	command := joinWords("mview set", rx, mode, tx)
	return sendIndicated(ctx, c.s, command, command)
}

// SetCustom arranges a custom tile layout on a multiview receiver.
func (c *MultiviewCommands) SetCustom(ctx context.Context, rx string, tiles ...TileConfig) error {
	if len(tiles) == 0 {
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "SetCustom",
			"at least one tile is required")
	}
	parts := []string{"mview set", rx, "tile"}
	for _, tile := range tiles {
		parts = append(parts, tile.String())
	}
	command := joinWords(parts...)
	return sendIndicated(ctx, c.s, command, command)
}

// SetAudioSeparate feeds a multiview receiver's audio from a transmitter
// independent of the video tiles.
func (c *MultiviewCommands) SetAudioSeparate(ctx context.Context, rx, tx string) error {
	command := fmt.Sprintf("mview set audio %s separate %s", rx, tx)
	return sendIndicated(ctx, c.s, command, command)
}

// ActivatePreset switches a multiview receiver to a configured preset
// layout.
func (c *MultiviewCommands) ActivatePreset(ctx context.Context, rx, layout string) error {
	command := fmt.Sprintf("mscene active %s %s", rx, layout)
	return sendIndicated(ctx, c.s, command, command)
}

// ChangePresetTile replaces the source of one window in a preset layout.
func (c *MultiviewCommands) ChangePresetTile(ctx context.Context, rx, layout string, window int, tx string) error {
	command := fmt.Sprintf("mscene change %s %s %d %s", rx, layout, window, tx)
	return sendIndicated(ctx, c.s, command, command)
}

// SetPresetAudioWindow takes a preset layout's audio from one of its
// windows.
func (c *MultiviewCommands) SetPresetAudioWindow(ctx context.Context, rx, layout string, window int) error {
	command := fmt.Sprintf("mscene set audio %s %s window %d", rx, layout, window)
	return sendIndicated(ctx, c.s, command, command)
}

// SetPresetAudioSeparate feeds a preset layout's audio from a transmitter
// outside the layout.
func (c *MultiviewCommands) SetPresetAudioSeparate(ctx context.Context, rx, layout, tx string) error {
	command := fmt.Sprintf("mscene set audio %s %s separate %s", rx, layout, tx)
	return sendIndicated(ctx, c.s, command, command)
}

// SetPIPPosition moves a receiver's picture-in-picture window to one of the
// four corners (0 top-left, 1 top-right, 2 bottom-left, 3 bottom-right).
func (c *MultiviewCommands) SetPIPPosition(ctx context.Context, rx string, position int) error {
	if position < 0 || position > 3 {
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "SetPIPPosition",
			fmt.Sprintf("position %d outside [0,3]", position))
	}
	command := fmt.Sprintf("mscene set pipposition %s 2-2 %d", rx, position)
	return sendIndicated(ctx, c.s, command, command)
}
