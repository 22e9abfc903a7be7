package commands

import (
	"context"
	"fmt"
	"strings"
)

// PortSwitchCommands switches the input and output port wiring of endpoint
// devices: audio/video source selection, KM-over-IP, Dante input and
// per-output muting.
type PortSwitchCommands struct {
	s Sender
}

// SetAudioSource selects a receiver's HDMI output audio source: "hdmi",
// "dmix" or "analog".
func (c *PortSwitchCommands) SetAudioSource(ctx context.Context, rx, source string) error {
	return sendMirrored(ctx, c.s, fmt.Sprintf("config set device audiosource %s %s", rx, source))
}

// SetAudio2Source selects a receiver's analog output audio source: "analog"
// or "dmix".
func (c *PortSwitchCommands) SetAudio2Source(ctx context.Context, rx, source string) error {
	return sendMirrored(ctx, c.s, fmt.Sprintf("config set device audio2source %s %s", rx, source))
}

// SetVideoSource selects a transmitter's video input: "auto", "hdmi" or
// "dp".
func (c *PortSwitchCommands) SetVideoSource(ctx context.Context, tx, source string) error {
	return sendMirrored(ctx, c.s, fmt.Sprintf("config set device videosource %s %s", tx, source))
}

// SetAudioInputType selects the audio input type ("auto", "hdmi", "analog")
// for the given transmitters.
func (c *PortSwitchCommands) SetAudioInputType(ctx context.Context, inputType string, devices ...string) error {
	if err := requireDevices(devices, "SetAudioInputType"); err != nil {
		return err
	}
	command := fmt.Sprintf("config set device audio input type %s %s", inputType, strings.Join(devices, " "))
	return sendMirrored(ctx, c.s, command)
}

// SetKMOverIP enables or disables keyboard/mouse-over-IP on a device.
func (c *PortSwitchCommands) SetKMOverIP(ctx context.Context, enabled bool, device string) error {
	return c.setInfo(ctx, "km_over_ip_enable", onOff(enabled), device)
}

// SetVideoSourceSwitch selects a transmitter's active video input port:
// "hdmi", "usb-c" or "none".
func (c *PortSwitchCommands) SetVideoSourceSwitch(ctx context.Context, source, device string) error {
	return c.setInfo(ctx, "video_source_switch", source, device)
}

// SetDanteAudioInput selects the audio feed ("analog" or "hdmi") a Dante
// transmitter puts on the Dante network.
func (c *PortSwitchCommands) SetDanteAudioInput(ctx context.Context, source, device string) error {
	return c.setInfo(ctx, "dante.audio_input", source, device)
}

// SetAudioMuteAV mutes or unmutes a multiview device's AV output audio.
func (c *PortSwitchCommands) SetAudioMuteAV(ctx context.Context, muted bool, device string) error {
	return c.setInfo(ctx, "audio_mute_av", muteWord(muted), device)
}

// SetAudioMuteHDMI mutes or unmutes a multiview device's HDMI output audio.
func (c *PortSwitchCommands) SetAudioMuteHDMI(ctx context.Context, muted bool, device string) error {
	return c.setInfo(ctx, "audio_mute_hdmi", muteWord(muted), device)
}

// SetAudioSrc selects which input ("hdmiin1".."hdmiin4") feeds a multiview
// device's output audio.
func (c *PortSwitchCommands) SetAudioSrc(ctx context.Context, src, device string) error {
	return c.setInfo(ctx, "audio_src", src, device)
}

func (c *PortSwitchCommands) setInfo(ctx context.Context, key, value, device string) error {
	return sendMirrored(ctx, c.s, fmt.Sprintf("config set device info %s=%s %s", key, value, device))
}

func muteWord(muted bool) string {
	if muted {
		return "mute"
	}
	return "unmute"
}
