package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionStateString(t *testing.T) {
	assert.Equal(t, "disconnected", StateDisconnected.String())
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "reconnecting", StateReconnecting.String())
	assert.Equal(t, "unknown(42)", ConnectionState(42).String())
}

func TestConnectionStateTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ConnectionState
		to      ConnectionState
		allowed bool
	}{
		{"disconnected to connecting", StateDisconnected, StateConnecting, true},
		{"disconnected to connected skips connecting", StateDisconnected, StateConnected, false},
		{"connecting to connected", StateConnecting, StateConnected, true},
		{"connecting to error", StateConnecting, StateError, true},
		{"connected to reconnecting", StateConnected, StateReconnecting, true},
		{"connected to connecting skips reconnecting", StateConnected, StateConnecting, false},
		{"error to connecting", StateError, StateConnecting, true},
		{"error to reconnecting", StateError, StateReconnecting, true},
		{"error to connected skips connecting", StateError, StateConnected, false},
		{"reconnecting to connecting", StateReconnecting, StateConnecting, true},
		{"reconnecting to disconnected", StateReconnecting, StateDisconnected, true},
		{"disconnected to error", StateDisconnected, StateError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}
