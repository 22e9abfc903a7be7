package commands

import (
	"context"
	"fmt"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// DeviceMode selects where a device's received infrared or RS-232 traffic
// goes: to one named device, to the API session, or to every device.
type DeviceMode string

const (
	ModeSingle DeviceMode = "single"
	ModeAPI    DeviceMode = "api"
	ModeAll    DeviceMode = "all"
)

// MatrixSwitchCommands routes media streams between transmitters and
// receivers. Each media class (primary, video, audio, USB, infrared,
// RS-232) has a set form and a null form that disconnects receivers.
type MatrixSwitchCommands struct {
	s Sender
}

// Set routes a transmitter's primary stream to the given receivers.
func (c *MatrixSwitchCommands) Set(ctx context.Context, tx string, rx ...string) error {
	return c.mediaSet(ctx, "", tx, rx)
}

// SetNull disconnects the primary stream of the given receivers.
func (c *MatrixSwitchCommands) SetNull(ctx context.Context, rx ...string) error {
	return c.mediaSet(ctx, "", "null", rx)
}

// SetVideo routes a transmitter's video stream to the given receivers.
func (c *MatrixSwitchCommands) SetVideo(ctx context.Context, tx string, rx ...string) error {
	return c.mediaSet(ctx, "video", tx, rx)
}

// SetVideoNull disconnects video from the given receivers.
func (c *MatrixSwitchCommands) SetVideoNull(ctx context.Context, rx ...string) error {
	return c.mediaSet(ctx, "video", "null", rx)
}

// SetAudio routes a transmitter's HDMI audio stream to the given receivers.
func (c *MatrixSwitchCommands) SetAudio(ctx context.Context, tx string, rx ...string) error {
	return c.mediaSet(ctx, "audio", tx, rx)
}

// SetAudioNull disconnects HDMI audio from the given receivers.
func (c *MatrixSwitchCommands) SetAudioNull(ctx context.Context, rx ...string) error {
	return c.mediaSet(ctx, "audio", "null", rx)
}

// SetAudio2 routes a transmitter's analog audio stream to the given
// receivers.
func (c *MatrixSwitchCommands) SetAudio2(ctx context.Context, tx string, rx ...string) error {
	return c.mediaSet(ctx, "audio2", tx, rx)
}

// SetAudio2Null disconnects analog audio from the given receivers.
func (c *MatrixSwitchCommands) SetAudio2Null(ctx context.Context, rx ...string) error {
	return c.mediaSet(ctx, "audio2", "null", rx)
}

// SetAudio3 routes a receiver's ARC audio back to a transmitter. ARC runs
// against the downstream direction, so the receiver comes first.
func (c *MatrixSwitchCommands) SetAudio3(ctx context.Context, rx, tx string) error {
	return sendMirrored(ctx, c.s, fmt.Sprintf("matrix audio3 set %s %s", rx, tx))
}

// SetUSB routes a transmitter's USB bus to the given receivers.
func (c *MatrixSwitchCommands) SetUSB(ctx context.Context, tx string, rx ...string) error {
	return c.mediaSet(ctx, "usb", tx, rx)
}

// SetUSBNull disconnects USB from the given receivers.
func (c *MatrixSwitchCommands) SetUSBNull(ctx context.Context, rx ...string) error {
	return c.mediaSet(ctx, "usb", "null", rx)
}

// SetInfrared routes a transmitter's infrared channel to the given
// receivers.
func (c *MatrixSwitchCommands) SetInfrared(ctx context.Context, tx string, rx ...string) error {
	return c.mediaSet(ctx, "infrared", tx, rx)
}

// SetInfraredNull disconnects infrared from the given receivers.
func (c *MatrixSwitchCommands) SetInfraredNull(ctx context.Context, rx ...string) error {
	return c.mediaSet(ctx, "infrared", "null", rx)
}

// SetInfrared2 sets a device's infrared receive mode. ModeSingle requires a
// target device; the other modes take none.
func (c *MatrixSwitchCommands) SetInfrared2(ctx context.Context, device string, mode DeviceMode, target string) error {
	return c.deviceModeSet(ctx, "infrared2", device, mode, target)
}

// SetInfrared2Null clears the infrared receive mode of the given devices.
func (c *MatrixSwitchCommands) SetInfrared2Null(ctx context.Context, devices ...string) error {
	return c.deviceModeNull(ctx, "infrared2", devices)
}

// SetSerial routes a transmitter's RS-232 channel to the given receivers.
func (c *MatrixSwitchCommands) SetSerial(ctx context.Context, tx string, rx ...string) error {
	return c.mediaSet(ctx, "serial", tx, rx)
}

// SetSerialNull disconnects RS-232 from the given receivers.
func (c *MatrixSwitchCommands) SetSerialNull(ctx context.Context, rx ...string) error {
	return c.mediaSet(ctx, "serial", "null", rx)
}

// SetSerial2 sets a device's RS-232 receive mode. ModeSingle requires a
// target device; the other modes take none.
func (c *MatrixSwitchCommands) SetSerial2(ctx context.Context, device string, mode DeviceMode, target string) error {
	return c.deviceModeSet(ctx, "serial2", device, mode, target)
}

// SetSerial2Null clears the RS-232 receive mode of the given devices.
func (c *MatrixSwitchCommands) SetSerial2Null(ctx context.Context, devices ...string) error {
	return c.deviceModeNull(ctx, "serial2", devices)
}

func (c *MatrixSwitchCommands) mediaSet(ctx context.Context, media, tx string, rx []string) error {
	if err := requireDevices(rx, "matrix set"); err != nil {
		return err
	}
	command := joinWords("matrix", media, "set", tx, strings.Join(rx, " "))
	return sendMirrored(ctx, c.s, command)
}

func (c *MatrixSwitchCommands) deviceModeSet(ctx context.Context, media, device string, mode DeviceMode, target string) error {
	switch mode {
	case ModeSingle:
		if target == "" {
			return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "matrix "+media+" set",
				"target device is required for single mode")
		}
	case ModeAPI, ModeAll:
		target = ""
	default:
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "matrix "+media+" set",
			fmt.Sprintf("unknown device mode %q", mode))
	}
	command := joinWords("matrix", media, "set", device, string(mode), target)
	return sendMirrored(ctx, c.s, command)
}

func (c *MatrixSwitchCommands) deviceModeNull(ctx context.Context, media string, devices []string) error {
	if err := requireDevices(devices, "matrix "+media+" set null"); err != nil {
		return err
	}
	command := joinWords("matrix", media, "set", strings.Join(devices, " "), "null")
	return sendMirrored(ctx, c.s, command)
}
