package commands

import (
	"context"
	"fmt"
	"strings"
)

// RebootResetCommands reboots the controller or endpoint devices and
// restores endpoints to factory defaults. Endpoint devices take several
// seconds to acknowledge; give ctx headroom beyond the usual command
// timeout.
type RebootResetCommands struct {
	s Sender
}

// Reboot restarts the controller itself. The control session drops shortly
// after the unit confirms.
func (c *RebootResetCommands) Reboot(ctx context.Context) error {
	return sendConfirmed(ctx, c.s, "config set reboot", "system will reboot now")
}

// RebootDevices restarts the given endpoint devices.
func (c *RebootResetCommands) RebootDevices(ctx context.Context, devices ...string) error {
	if err := requireDevices(devices, "RebootDevices"); err != nil {
		return err
	}
	command := fmt.Sprintf("config set device reboot %s", strings.Join(devices, " "))
	return sendConfirmed(ctx, c.s, command, "the following device will reboot now")
}

// RestoreFactoryDevices resets the given endpoint devices to factory
// defaults.
func (c *RebootResetCommands) RestoreFactoryDevices(ctx context.Context, devices ...string) error {
	if err := requireDevices(devices, "RestoreFactoryDevices"); err != nil {
		return err
	}
	command := fmt.Sprintf("config set device restorefactory %s", strings.Join(devices, " "))
	return sendConfirmed(ctx, c.s, command, "the following device will restore now")
}
