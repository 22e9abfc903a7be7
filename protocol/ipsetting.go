package protocol

import (
	"fmt"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// IPSetting is the unit's network configuration from "config get
// ipsetting" or "config get ipsetting2".
type IPSetting struct {
	IP4Addr string
	Netmask string
	Gateway string
}

// ParseIPSetting parses a line of the form
//
//	ipsetting is: ip4addr 169.254.1.1 netmask 255.255.0.0 gateway 169.254.1.254
//
// All three fields are required.
func ParseIPSetting(response string) (IPSetting, error) {
	var target string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if idx := strings.Index(line, " is:"); idx >= 0 && strings.Contains(line, "ip4addr") {
			target = strings.TrimSpace(line[idx+len(" is:"):])
			break
		}
	}
	if target == "" {
		return IPSetting{}, fmt.Errorf("invalid IP settings response: %w", nherrors.ErrParsingFailed)
	}

	fields := strings.Fields(target)
	var setting IPSetting
	for i := 0; i+1 < len(fields); i += 2 {
		switch fields[i] {
		case "ip4addr":
			setting.IP4Addr = fields[i+1]
		case "netmask":
			setting.Netmask = fields[i+1]
		case "gateway":
			setting.Gateway = fields[i+1]
		}
	}

	if setting.IP4Addr == "" || setting.Netmask == "" || setting.Gateway == "" {
		return IPSetting{}, fmt.Errorf("missing required IP settings in response: %w", nherrors.ErrParsingFailed)
	}
	return setting, nil
}
