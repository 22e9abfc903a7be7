package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nherrors "github.com/c360/networkhd/errors"
)

func TestSetAnalogVolume(t *testing.T) {
	tests := []struct {
		action  VolumeAction
		devices []string
		want    string
	}{
		{VolumeUp, []string{"TX1"}, "config set device audio volume up analog TX1"},
		{VolumeDown, []string{"RX2"}, "config set device audio volume down analog RX2"},
		{VolumeMute, []string{"RX1"}, "config set device audio volume mute analog RX1"},
		{VolumeUnmute, []string{"RX-Display1"}, "config set device audio volume unmute analog RX-Display1"},
		{VolumeMute, []string{"TX-Main", "RX1"}, "config set device audio volume mute analog TX-Main RX1"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := &fakeSender{}
			c := &AudioOutputCommands{s: s}
			require.NoError(t, c.SetAnalogVolume(context.Background(), tt.action, tt.devices...))
			assert.Equal(t, tt.want, s.lastSent(t))
		})
	}
}

func TestSetAnalogVolumeValidation(t *testing.T) {
	c := &AudioOutputCommands{s: &fakeSender{}}

	err := c.SetAnalogVolume(context.Background(), "louder", "RX1")
	require.Error(t, err)
	assert.True(t, nherrors.IsInvalid(err))

	err = c.SetAnalogVolume(context.Background(), VolumeUp)
	require.Error(t, err)
	assert.True(t, nherrors.IsInvalid(err))
}
