package commands

import (
	"context"
	"fmt"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// SerialSettings frames one RS-232 passthrough send. The zero value is not
// usable; fill every field.
type SerialSettings struct {
	Baudrate int
	DataBits int
	Parity   string // "n", "o" or "e"
	StopBits int
	AppendCR bool
	AppendLF bool
	Hex      bool // data is space-separated hex bytes instead of ASCII
}

func (s SerialSettings) validate() error {
	if s.Baudrate <= 0 {
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "SendSerial",
			fmt.Sprintf("baudrate %d must be positive", s.Baudrate))
	}
	if s.DataBits < 5 || s.DataBits > 8 {
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "SendSerial",
			fmt.Sprintf("data bits %d outside [5,8]", s.DataBits))
	}
	switch s.Parity {
	case "n", "o", "e":
	default:
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "SendSerial",
			fmt.Sprintf("parity %q must be n, o or e", s.Parity))
	}
	if s.StopBits != 1 && s.StopBits != 2 {
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "SendSerial",
			fmt.Sprintf("stop bits %d must be 1 or 2", s.StopBits))
	}
	return nil
}

// DeviceControlCommands drives equipment attached to endpoint devices:
// display power over CEC or RS-232, and raw CEC, infrared and serial
// passthrough.
type DeviceControlCommands struct {
	s Sender
}

// SetSinkPower powers the displays attached to the given receivers on or
// off. With no receivers named the unit applies its configured default
// scope.
func (c *DeviceControlCommands) SetSinkPower(ctx context.Context, on bool, rx ...string) error {
	command := joinWords("config set device sinkpower", onOff(on), strings.Join(rx, " "))
	return sendMirrored(ctx, c.s, command)
}

// CECStandby sends a CEC standby to the sinks on the given devices.
func (c *DeviceControlCommands) CECStandby(ctx context.Context, devices ...string) error {
	return c.cecControl(ctx, "standby", devices)
}

// CECOneTouchPlay sends a CEC one-touch-play (wake and switch input) to the
// sinks on the given devices.
func (c *DeviceControlCommands) CECOneTouchPlay(ctx context.Context, devices ...string) error {
	return c.cecControl(ctx, "onetouchplay", devices)
}

func (c *DeviceControlCommands) cecControl(ctx context.Context, action string, devices []string) error {
	if err := requireDevices(devices, "cec "+action); err != nil {
		return err
	}
	command := fmt.Sprintf("config set device cec %s %s", action, strings.Join(devices, " "))
	return sendMirrored(ctx, c.s, command)
}

// SendCEC transmits a raw hex CEC frame out the given devices' CEC ports.
func (c *DeviceControlCommands) SendCEC(ctx context.Context, data string, devices ...string) error {
	if err := requireDevices(devices, "SendCEC"); err != nil {
		return err
	}
	command := fmt.Sprintf(`cec "%s" %s`, data, strings.Join(devices, " "))
	return sendMirrored(ctx, c.s, command)
}

// SendInfrared transmits an infrared code (pronto hex) out the given
// devices' IR emitter ports. Empty data is allowed; the unit treats it as a
// no-op frame.
func (c *DeviceControlCommands) SendInfrared(ctx context.Context, data string, devices ...string) error {
	if err := requireDevices(devices, "SendInfrared"); err != nil {
		return err
	}
	command := fmt.Sprintf(`infrared "%s" %s`, data, strings.Join(devices, " "))
	return sendMirrored(ctx, c.s, command)
}

// SendSerial transmits data out the given devices' RS-232 ports using the
// supplied port settings.
func (c *DeviceControlCommands) SendSerial(ctx context.Context, settings SerialSettings, data string, devices ...string) error {
	if err := settings.validate(); err != nil {
		return err
	}
	if err := requireDevices(devices, "SendSerial"); err != nil {
		return err
	}
	command := fmt.Sprintf(`serial -b %d-%d%s%d -r %s -n %s -h %s "%s" %s`,
		settings.Baudrate, settings.DataBits, settings.Parity, settings.StopBits,
		onOff(settings.AppendCR), onOff(settings.AppendLF), onOff(settings.Hex),
		data, strings.Join(devices, " "))
	return sendMirrored(ctx, c.s, command)
}
