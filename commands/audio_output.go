package commands

import (
	"context"
	"fmt"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// VolumeAction selects an analog audio volume adjustment.
type VolumeAction string

const (
	VolumeUp     VolumeAction = "up"
	VolumeDown   VolumeAction = "down"
	VolumeMute   VolumeAction = "mute"
	VolumeUnmute VolumeAction = "unmute"
)

// AudioOutputCommands adjusts analog audio output on endpoint devices.
type AudioOutputCommands struct {
	s Sender
}

// SetAnalogVolume applies a volume action to the analog audio output of the
// given devices.
func (c *AudioOutputCommands) SetAnalogVolume(ctx context.Context, action VolumeAction, devices ...string) error {
	switch action {
	case VolumeUp, VolumeDown, VolumeMute, VolumeUnmute:
	default:
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "SetAnalogVolume",
			fmt.Sprintf("unknown volume action %q", action))
	}
	if err := requireDevices(devices, "SetAnalogVolume"); err != nil {
		return err
	}
	command := fmt.Sprintf("config set device audio volume %s analog %s", action, strings.Join(devices, " "))
	return sendMirrored(ctx, c.s, command)
}
