package client

import (
	"fmt"

	nherrors "github.com/c360/networkhd/errors"
)

// ConnectionState describes where a client is in its connection lifecycle.
type ConnectionState int

const (
	// StateDisconnected is the initial state and the state after a clean
	// Disconnect.
	StateDisconnected ConnectionState = iota
	// StateConnecting means a connection attempt is in progress.
	StateConnecting
	// StateConnected means the transport is open and the dispatcher is
	// running.
	StateConnected
	// StateError means the link died or a connection attempt failed.
	StateError
	// StateReconnecting means a bounded reconnection sequence is in
	// progress.
	StateReconnecting
)

// String returns the lowercase name of the state.
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	case StateReconnecting:
		return "reconnecting"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// validTransitions is the exhaustive lifecycle table. A transition absent
// from the table is a bug in the caller, not a recoverable condition.
var validTransitions = map[ConnectionState][]ConnectionState{
	StateDisconnected: {StateConnecting, StateReconnecting},
	StateConnecting:   {StateConnected, StateError, StateDisconnected},
	StateConnected:    {StateDisconnected, StateError, StateReconnecting},
	StateError:        {StateConnecting, StateReconnecting, StateDisconnected},
	StateReconnecting: {StateConnecting, StateError, StateDisconnected},
}

// CanTransition reports whether the lifecycle table permits moving from s
// to target.
func (s ConnectionState) CanTransition(target ConnectionState) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// transition validates and applies a state change. Callers must hold c.mu.
func (c *Client) transition(target ConnectionState) error {
	if c.state == target {
		return nil
	}
	if !c.state.CanTransition(target) {
		return nherrors.WrapInvalid(
			fmt.Errorf("invalid state transition from %s to %s", c.state, target),
			"client", "transition", "check the connection lifecycle ordering")
	}
	c.logger.Debug("connection state change",
		"from", c.state.String(),
		"to", target.String())
	c.state = target
	if c.collector != nil {
		c.collector.SetConnectionState(target.String())
	}
	return nil
}
