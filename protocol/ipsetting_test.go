package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nherrors "github.com/c360/networkhd/errors"
)

func TestParseIPSetting(t *testing.T) {
	setting, err := ParseIPSetting("ipsetting is: ip4addr 169.254.1.1 netmask 255.255.0.0 gateway 169.254.1.254")
	require.NoError(t, err)
	assert.Equal(t, "169.254.1.1", setting.IP4Addr)
	assert.Equal(t, "255.255.0.0", setting.Netmask)
	assert.Equal(t, "169.254.1.254", setting.Gateway)
}

func TestParseIPSetting_SecondInterface(t *testing.T) {
	setting, err := ParseIPSetting("ipsetting2 is: ip4addr 192.168.11.243 netmask 255.255.255.0 gateway 192.168.11.1")
	require.NoError(t, err)
	assert.Equal(t, "192.168.11.243", setting.IP4Addr)
	assert.Equal(t, "255.255.255.0", setting.Netmask)
	assert.Equal(t, "192.168.11.1", setting.Gateway)
}

func TestParseIPSetting_InvalidFormat(t *testing.T) {
	_, err := ParseIPSetting("Invalid response format")
	require.Error(t, err)
	assert.ErrorIs(t, err, nherrors.ErrParsingFailed)
	assert.Contains(t, err.Error(), "invalid IP settings response")
}

func TestParseIPSetting_MissingFields(t *testing.T) {
	_, err := ParseIPSetting("ipsetting is: ip4addr 192.168.1.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required IP settings")
}
