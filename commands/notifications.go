package commands

import (
	"context"
	"fmt"
	"strings"
)

// NotificationCommands controls which unsolicited notifications the unit
// pushes on this session.
type NotificationCommands struct {
	s Sender
}

// SetCECNotify enables or disables "notify cecinfo" events for the given
// devices. Accepts the ALL_DEV, ALL_TX and ALL_RX selectors.
func (c *NotificationCommands) SetCECNotify(ctx context.Context, enabled bool, devices ...string) error {
	if err := requireDevices(devices, "SetCECNotify"); err != nil {
		return err
	}
	command := fmt.Sprintf("config set device cec notify %s %s", onOff(enabled), strings.Join(devices, " "))
	return sendMirrored(ctx, c.s, command)
}
