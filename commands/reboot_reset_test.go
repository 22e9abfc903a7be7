package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nherrors "github.com/c360/networkhd/errors"
)

func TestReboot(t *testing.T) {
	s := (&fakeSender{}).respond("config set reboot", "system will reboot now")
	c := &RebootResetCommands{s: s}

	require.NoError(t, c.Reboot(context.Background()))
	assert.Equal(t, "config set reboot", s.lastSent(t))
}

func TestRebootTruncatedConfirmation(t *testing.T) {
	// Extra chatter around the confirmation is fine.
	s := (&fakeSender{}).respond("config set reboot", "Preparing for reboot... system will reboot now. Please wait.")
	c := &RebootResetCommands{s: s}
	require.NoError(t, c.Reboot(context.Background()))

	s = (&fakeSender{}).respond("config set reboot", "no confirmation here")
	c = &RebootResetCommands{s: s}
	err := c.Reboot(context.Background())
	var re *nherrors.ResponseError
	require.ErrorAs(t, err, &re)
}

func TestRebootDevices(t *testing.T) {
	s := (&fakeSender{}).respond("config set device reboot TX1 RX1 TX2",
		"the following device will reboot now: TX1 RX1 TX2")
	c := &RebootResetCommands{s: s}

	require.NoError(t, c.RebootDevices(context.Background(), "TX1", "RX1", "TX2"))
	assert.Equal(t, "config set device reboot TX1 RX1 TX2", s.lastSent(t))

	err := c.RebootDevices(context.Background())
	require.Error(t, err)
	assert.True(t, nherrors.IsInvalid(err))
}

func TestRestoreFactoryDevices(t *testing.T) {
	s := (&fakeSender{}).respond("config set device restorefactory RX2",
		"the following device will restore now: RX2")
	c := &RebootResetCommands{s: s}

	require.NoError(t, c.RestoreFactoryDevices(context.Background(), "RX2"))
	assert.Equal(t, "config set device restorefactory RX2", s.lastSent(t))
}
