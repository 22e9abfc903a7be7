package commands

import (
	"context"
	"fmt"
)

// EndpointCommands configures API endpoint session behavior.
type EndpointCommands struct {
	s Sender
}

// SetSessionAlias switches the session between alias and true-name device
// addressing. All other command groups address devices by whichever form
// this session-wide setting selects.
func (c *EndpointCommands) SetSessionAlias(ctx context.Context, enabled bool) error {
	return sendMirrored(ctx, c.s, fmt.Sprintf("config set session alias %s", onOff(enabled)))
}
