package commands

import (
	"context"
	"strings"

	"github.com/c360/networkhd/protocol"
)

// QueryCommands reads the unit's configuration and routing state. Every
// method returns the parsed form from the protocol package rather than raw
// response text.
type QueryCommands struct {
	s Sender
}

// Version reports the unit's API, web and core firmware versions.
func (c *QueryCommands) Version(ctx context.Context) (protocol.Version, error) {
	resp, err := send(ctx, c.s, "config get version")
	if err != nil {
		return protocol.Version{}, err
	}
	return protocol.ParseVersion(resp)
}

// IPSetting reports the addressing of the unit's AV network interface.
func (c *QueryCommands) IPSetting(ctx context.Context) (protocol.IPSetting, error) {
	return c.ipSetting(ctx, "config get ipsetting")
}

// IPSetting2 reports the addressing of the unit's control network interface.
func (c *QueryCommands) IPSetting2(ctx context.Context) (protocol.IPSetting, error) {
	return c.ipSetting(ctx, "config get ipsetting2")
}

func (c *QueryCommands) ipSetting(ctx context.Context, command string) (protocol.IPSetting, error) {
	resp, err := send(ctx, c.s, command)
	if err != nil {
		return protocol.IPSetting{}, err
	}
	return protocol.ParseIPSetting(resp)
}

// DeviceNames lists the names of every device the unit knows about.
func (c *QueryCommands) DeviceNames(ctx context.Context) ([]string, error) {
	resp, err := send(ctx, c.s, "config get devicelist")
	if err != nil {
		return nil, err
	}
	return protocol.ParseDeviceNames(resp)
}

// DeviceList returns the unit's full device inventory with type, group,
// address and online state per device.
func (c *QueryCommands) DeviceList(ctx context.Context) ([]protocol.DeviceEntry, error) {
	resp, err := send(ctx, c.s, "config get devicejsonstring")
	if err != nil {
		return nil, err
	}
	return protocol.ParseDeviceList(resp)
}

// Alias looks up one device's configured alias. An unknown device name
// yields a DeviceNotFoundError.
func (c *QueryCommands) Alias(ctx context.Context, device string) (protocol.AliasEntry, error) {
	resp, err := c.s.Send(ctx, joinWords("config get name", device))
	if err != nil {
		return protocol.AliasEntry{}, err
	}
	return protocol.ParseAlias(resp)
}

// Aliases lists the alias of every device.
func (c *QueryCommands) Aliases(ctx context.Context) ([]protocol.AliasEntry, error) {
	resp, err := c.s.Send(ctx, "config get name")
	if err != nil {
		return nil, err
	}
	return protocol.ParseAliases(resp)
}

// DeviceInfo reports working parameters for the named devices, or for all
// devices when none are named.
func (c *QueryCommands) DeviceInfo(ctx context.Context, devices ...string) ([]protocol.DeviceInfo, error) {
	resp, err := send(ctx, c.s, joinWords("config get device info", strings.Join(devices, " ")))
	if err != nil {
		return nil, err
	}
	return protocol.ParseDeviceInfo(resp)
}

// DeviceStatus reports realtime state for the named devices, or for all
// devices when none are named.
func (c *QueryCommands) DeviceStatus(ctx context.Context, devices ...string) ([]protocol.DeviceStatus, error) {
	resp, err := send(ctx, c.s, joinWords("config get device status", strings.Join(devices, " ")))
	if err != nil {
		return nil, err
	}
	return protocol.ParseDeviceStatus(resp)
}

// Matrix reports the primary stream assignments, optionally filtered to the
// given receivers.
func (c *QueryCommands) Matrix(ctx context.Context, rx ...string) (protocol.Matrix, error) {
	return c.matrixGet(ctx, "", rx)
}

// MatrixVideo reports video stream assignments.
func (c *QueryCommands) MatrixVideo(ctx context.Context, rx ...string) (protocol.Matrix, error) {
	return c.matrixGet(ctx, "video", rx)
}

// MatrixAudio reports HDMI audio stream assignments.
func (c *QueryCommands) MatrixAudio(ctx context.Context, rx ...string) (protocol.Matrix, error) {
	return c.matrixGet(ctx, "audio", rx)
}

// MatrixAudio2 reports analog audio stream assignments.
func (c *QueryCommands) MatrixAudio2(ctx context.Context, rx ...string) (protocol.Matrix, error) {
	return c.matrixGet(ctx, "audio2", rx)
}

// MatrixAudio3 reports ARC stream assignments. Both filters are optional;
// pass empty strings to list everything. A tx filter requires an rx filter,
// matching the unit's positional argument order.
func (c *QueryCommands) MatrixAudio3(ctx context.Context, rx, tx string) (protocol.Matrix, error) {
	resp, err := send(ctx, c.s, joinWords("matrix audio3 get", rx, tx))
	if err != nil {
		return protocol.Matrix{}, err
	}
	return protocol.ParseMatrixAudio3(resp)
}

// MatrixUSB reports USB routing assignments.
func (c *QueryCommands) MatrixUSB(ctx context.Context, rx ...string) (protocol.Matrix, error) {
	return c.matrixGet(ctx, "usb", rx)
}

// MatrixInfrared reports infrared routing assignments.
func (c *QueryCommands) MatrixInfrared(ctx context.Context, rx ...string) (protocol.Matrix, error) {
	return c.matrixGet(ctx, "infrared", rx)
}

// MatrixInfrared2 reports per-device infrared receive modes, optionally
// filtered to the named devices.
func (c *QueryCommands) MatrixInfrared2(ctx context.Context, devices ...string) (protocol.DeviceModeMatrix, error) {
	return c.deviceModeGet(ctx, "infrared2", devices)
}

// MatrixSerial reports RS-232 routing assignments.
func (c *QueryCommands) MatrixSerial(ctx context.Context, rx ...string) (protocol.Matrix, error) {
	return c.matrixGet(ctx, "serial", rx)
}

// MatrixSerial2 reports per-device RS-232 receive modes, optionally
// filtered to the named devices.
func (c *QueryCommands) MatrixSerial2(ctx context.Context, devices ...string) (protocol.DeviceModeMatrix, error) {
	return c.deviceModeGet(ctx, "serial2", devices)
}

func (c *QueryCommands) matrixGet(ctx context.Context, media string, rx []string) (protocol.Matrix, error) {
	resp, err := send(ctx, c.s, joinWords("matrix", media, "get", strings.Join(rx, " ")))
	if err != nil {
		return protocol.Matrix{}, err
	}
	return protocol.ParseMatrix(resp)
}

func (c *QueryCommands) deviceModeGet(ctx context.Context, media string, devices []string) (protocol.DeviceModeMatrix, error) {
	resp, err := send(ctx, c.s, joinWords("matrix", media, "get", strings.Join(devices, " ")))
	if err != nil {
		return protocol.DeviceModeMatrix{}, err
	}
	return protocol.ParseDeviceModeMatrix(resp)
}

// Scenes lists every video wall scene as videowall/scene name pairs.
func (c *QueryCommands) Scenes(ctx context.Context) ([]protocol.SceneKey, error) {
	resp, err := send(ctx, c.s, "scene get")
	if err != nil {
		return nil, err
	}
	return protocol.ParseSceneList(resp)
}

// LogicalScreens lists every video wall logical screen with its geometry.
func (c *QueryCommands) LogicalScreens(ctx context.Context) ([]protocol.LogicalScreen, error) {
	resp, err := send(ctx, c.s, "vw get")
	if err != nil {
		return nil, err
	}
	return protocol.ParseLogicalScreens(resp)
}

// WindowScenes lists every windowing scene as videowall/scene name pairs.
func (c *QueryCommands) WindowScenes(ctx context.Context) ([]protocol.SceneKey, error) {
	resp, err := send(ctx, c.s, "wscene2 get")
	if err != nil {
		return nil, err
	}
	return protocol.ParseWindowSceneList(resp)
}

// MultiviewLayouts reports active multiview tile layouts, for one receiver
// when rx is non-empty or for all multiview receivers otherwise.
func (c *QueryCommands) MultiviewLayouts(ctx context.Context, rx string) ([]protocol.MultiviewLayout, error) {
	resp, err := send(ctx, c.s, joinWords("mview get", rx))
	if err != nil {
		return nil, err
	}
	return protocol.ParseMultiviewLayouts(resp)
}

// PresetLayouts reports configured multiview preset layouts, for one
// receiver when rx is non-empty or for all multiview receivers otherwise.
func (c *QueryCommands) PresetLayouts(ctx context.Context, rx string) ([]protocol.PresetLayout, error) {
	resp, err := send(ctx, c.s, joinWords("mscene get", rx))
	if err != nil {
		return nil, err
	}
	return protocol.ParsePresetLayouts(resp)
}
