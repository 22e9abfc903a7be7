package commands

import (
	"context"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
	"github.com/c360/networkhd/protocol"
)

// Sender issues one command line and returns the unit's full response body.
// *client.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, command string) (string, error)
}

// Device selector wildcards accepted wherever a command takes a device list.
const (
	AllDevices      = "ALL_DEV"
	AllTransmitters = "ALL_TX"
	AllReceivers    = "ALL_RX"
)

// API aggregates every command group over a single control session.
type API struct {
	Endpoint      *EndpointCommands
	Notifications *NotificationCommands
	Query         *QueryCommands
	AudioOutput   *AudioOutputCommands
	DeviceControl *DeviceControlCommands
	PortSwitch    *PortSwitchCommands
	MatrixSwitch  *MatrixSwitchCommands
	Multiview     *MultiviewCommands
	RebootReset   *RebootResetCommands
	TextOverlay   *TextOverlayCommands
	VideoWall     *VideoWallCommands
}

// NewAPI builds the full command group set over sender.
func NewAPI(sender Sender) (*API, error) {
	if sender == nil {
		return nil, nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "NewAPI", "sender must not be nil")
	}
	return &API{
		Endpoint:      &EndpointCommands{s: sender},
		Notifications: &NotificationCommands{s: sender},
		Query:         &QueryCommands{s: sender},
		AudioOutput:   &AudioOutputCommands{s: sender},
		DeviceControl: &DeviceControlCommands{s: sender},
		PortSwitch:    &PortSwitchCommands{s: sender},
		MatrixSwitch:  &MatrixSwitchCommands{s: sender},
		Multiview:     &MultiviewCommands{s: sender},
		RebootReset:   &RebootResetCommands{s: sender},
		TextOverlay:   &TextOverlayCommands{s: sender},
		VideoWall:     &VideoWallCommands{s: sender},
	}, nil
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

// joinWords assembles a command from its parts, dropping empties so an
// optional trailing device list never leaves a dangling space.
func joinWords(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// send issues the command and pre-screens the response for the unit's
// device-lookup failure message before any family-specific validation.
func send(ctx context.Context, s Sender, command string) (string, error) {
	resp, err := s.Send(ctx, command)
	if err != nil {
		return "", err
	}
	if err := protocol.CheckDeviceNotFound(resp); err != nil {
		return "", err
	}
	return resp, nil
}

// sendMirrored issues a setter whose success convention is the unit echoing
// the command text back.
func sendMirrored(ctx context.Context, s Sender, command string) error {
	resp, err := send(ctx, s, command)
	if err != nil {
		return err
	}
	return protocol.RequireCommandMirror(resp, command)
}

// sendIndicated issues an operation whose response carries an explicit
// "success"/"failure" token.
func sendIndicated(ctx context.Context, s Sender, command, expectedStart string) error {
	resp, err := send(ctx, s, command)
	if err != nil {
		return err
	}
	return protocol.RequireSuccessIndicator(resp, expectedStart)
}

// sendConfirmed issues an operation confirmed by a fixed phrase somewhere
// in the response body.
func sendConfirmed(ctx context.Context, s Sender, command, phrase string) error {
	resp, err := send(ctx, s, command)
	if err != nil {
		return err
	}
	return protocol.RequireContains(resp, phrase)
}

func requireDevices(devices []string, method string) error {
	if len(devices) == 0 {
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", method, "at least one device is required")
	}
	return nil
}
