package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// DeviceStatus is one entry from "config get devicestatus". The unit
// reports a different field set per device series, so everything beyond
// the identity fields is optional. Values arrive as strings even for
// booleans and integers and are coerced here.
type DeviceStatus struct {
	Aliasname string
	Name      string

	AudioBitrate         *int
	AudioInputFormat     *string
	AudioOutputFormat    *string
	AudioStreamIPAddress *string
	EncodingEnable       *bool
	HDCP                 *string
	HDCPStatus           *string
	HDMIInActive         *bool
	HDMIInFrameRate      *int
	HDMIOutActive        *bool
	HDMIOutAudioEnable   *bool
	HDMIOutFrameRate     *int
	HDMIOutResolution    *string
	LineOutAudioEnable   *bool
	Resolution           *string
	StreamErrorCount     *int
	StreamFrameRate      *int
	StreamResolution     *string
	VideoStreamIPAddress *string
}

// ParseDeviceStatus parses the JSON block after "devices status info:".
func ParseDeviceStatus(response string) ([]DeviceStatus, error) {
	obj, err := decodeJSONObject(response, "devices status info:")
	if err != nil {
		return nil, err
	}

	raw, ok := obj["devices status"].([]any)
	if !ok {
		return nil, fmt.Errorf("no 'devices status' key found in response: %w", nherrors.ErrParsingFailed)
	}

	devices := make([]DeviceStatus, 0, len(raw))
	for _, entry := range raw {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("device status entry is not an object: %w", nherrors.ErrParsingFailed)
		}
		if err := checkDeviceError(fields); err != nil {
			return nil, err
		}
		var d DeviceStatus
		for key, v := range fields {
			switch key {
			case "aliasname":
				d.Aliasname, _ = asString(v)
			case "name":
				d.Name, _ = asString(v)
			case "audio bitrate":
				setInt(&d.AudioBitrate, v)
			case "audio input format":
				setString(&d.AudioInputFormat, v)
			case "audio output format":
				setString(&d.AudioOutputFormat, v)
			case "audio stream ip address":
				setString(&d.AudioStreamIPAddress, v)
			case "encoding enable":
				setBool(&d.EncodingEnable, v)
			case "hdcp":
				setString(&d.HDCP, v)
			case "hdcp status":
				setString(&d.HDCPStatus, v)
			case "hdmi in active":
				setBool(&d.HDMIInActive, v)
			case "hdmi in frame rate":
				setInt(&d.HDMIInFrameRate, v)
			case "hdmi out active":
				setBool(&d.HDMIOutActive, v)
			case "hdmi out audio enable":
				setBool(&d.HDMIOutAudioEnable, v)
			case "hdmi out frame rate":
				setInt(&d.HDMIOutFrameRate, v)
			case "hdmi out resolution":
				setString(&d.HDMIOutResolution, v)
			case "line out audio enable":
				setBool(&d.LineOutAudioEnable, v)
			case "resolution":
				setString(&d.Resolution, v)
			case "stream error count":
				setInt(&d.StreamErrorCount, v)
			case "stream frame rate":
				setInt(&d.StreamFrameRate, v)
			case "stream resolution":
				setString(&d.StreamResolution, v)
			case "video stream ip address":
				setString(&d.VideoStreamIPAddress, v)
			}
			// Unknown keys are ignored; firmware adds fields freely.
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// AudioOutput is one entry of a receiver's audio output list.
type AudioOutput struct {
	Name string
	Mute bool
}

// SinkPowerCEC holds the CEC command pair for display power control.
type SinkPowerCEC struct {
	OneTouchPlay string
	Standby      string
}

// SinkPowerRS232 holds the RS-232 command set for display power control.
type SinkPowerRS232 struct {
	Mode         string
	Param        string
	OneTouchPlay string
	Standby      string
}

// SinkPower describes how a receiver powers its attached display.
type SinkPower struct {
	Mode  string
	CEC   *SinkPowerCEC
	RS232 *SinkPowerRS232
}

// DeviceInfo is one entry from "config get devicejsonstring" info form
// ("devices json info:"). Like DeviceStatus, the field set varies per
// device series.
type DeviceInfo struct {
	Aliasname string
	Name      string

	AnalogAudioDirection *string
	AnalogAudioSource    *string
	Audio                []AudioOutput
	AudioInputType       *string
	BandwidthAdjustMode  *int
	BitPerPixel          *int
	CBRAvgBitrate        *int
	ColorSpace           *string
	EDID                 *string
	EncFPS               *int
	EncGOP               *int
	EncRCMode            *string
	FixQPIQP             *int
	FixQPPQP             *int
	Gateway              *string
	HDCP                 *bool
	HDCP14Enable         *bool
	HDCP22Enable         *bool
	HDMIAudioSource      *string
	IP4Addr              *string
	IPMode               *string
	KMOverIPEnable       *bool
	MAC                  *string
	Netmask              *string
	Profile              *string
	SerialParam          *string
	SinkPower            *SinkPower
	SourceIn             *string
	Stream0Enable        *bool
	Stream0FPSBy2Enable  *bool
	Stream1Enable        *bool
	Stream1FPSBy2Enable  *bool
	Stream1Scale         *string
	Temperature          *int
	TransportType        *string
	VBRMaxBitrate        *int
	VBRMaxQP             *int
	VBRMinQP             *int
	Version              *string
	VideoDetection       *string
	VideoInput           *bool
	VideoMode            *string
	VideoSource          *string
	VideoStretchType     *string
	VideoTiming          *string
}

// ParseDeviceInfo parses the JSON block after "devices json info:".
func ParseDeviceInfo(response string) ([]DeviceInfo, error) {
	obj, err := decodeJSONObject(response, "devices json info:")
	if err != nil {
		return nil, err
	}

	raw, ok := obj["devices"].([]any)
	if !ok {
		return nil, fmt.Errorf("no 'devices' key found in response: %w", nherrors.ErrParsingFailed)
	}

	devices := make([]DeviceInfo, 0, len(raw))
	for _, entry := range raw {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("device info entry is not an object: %w", nherrors.ErrParsingFailed)
		}
		d, err := parseDeviceInfoFields(fields)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// checkDeviceError surfaces the per-device "error" key the unit embeds in
// bulk query results when a named device does not exist.
func checkDeviceError(fields map[string]any) error {
	msg, ok := asString(fields["error"])
	if !ok || msg == "" {
		return nil
	}
	name, _ := asString(fields["name"])
	return &nherrors.DeviceQueryError{DeviceName: name, Message: msg}
}

func parseDeviceInfoFields(fields map[string]any) (DeviceInfo, error) {
	var d DeviceInfo
	if err := checkDeviceError(fields); err != nil {
		return DeviceInfo{}, err
	}
	for key, v := range fields {
		switch key {
		case "aliasname":
			d.Aliasname, _ = asString(v)
		case "name":
			d.Name, _ = asString(v)
		case "analog_audio_direction":
			setString(&d.AnalogAudioDirection, v)
		case "analog_audio_source":
			setString(&d.AnalogAudioSource, v)
		case "audio":
			outputs, err := parseAudioOutputs(v)
			if err != nil {
				return DeviceInfo{}, err
			}
			d.Audio = outputs
		case "audio_input_type":
			setString(&d.AudioInputType, v)
		case "bandwidth_adjust_mode":
			setInt(&d.BandwidthAdjustMode, v)
		case "bit_perpixel":
			setInt(&d.BitPerPixel, v)
		case "cbr_avg_bitrate":
			setInt(&d.CBRAvgBitrate, v)
		case "color_space":
			setString(&d.ColorSpace, v)
		case "edid":
			// The literal string "null" means no EDID captured.
			if s, ok := asString(v); ok && s != "null" {
				d.EDID = strPtr(s)
			}
		case "enc_fps":
			setInt(&d.EncFPS, v)
		case "enc_gop":
			setInt(&d.EncGOP, v)
		case "enc_rc_mode":
			setString(&d.EncRCMode, v)
		case "fixqp_iqp":
			setInt(&d.FixQPIQP, v)
		case "fixqp_pqp":
			setInt(&d.FixQPPQP, v)
		case "gateway":
			setString(&d.Gateway, v)
		case "hdcp":
			setBool(&d.HDCP, v)
		case "hdcp14_enable":
			setBool(&d.HDCP14Enable, v)
		case "hdcp22_enable":
			setBool(&d.HDCP22Enable, v)
		case "hdmi_audio_source":
			setString(&d.HDMIAudioSource, v)
		case "ip4addr":
			setString(&d.IP4Addr, v)
		case "ip_mode":
			setString(&d.IPMode, v)
		case "km_over_ip_enable":
			setBool(&d.KMOverIPEnable, v)
		case "mac":
			setString(&d.MAC, v)
		case "netmask":
			setString(&d.Netmask, v)
		case "profile":
			setString(&d.Profile, v)
		case "serial_param":
			setString(&d.SerialParam, v)
		case "sinkpower":
			sp, err := parseSinkPower(v)
			if err != nil {
				return DeviceInfo{}, err
			}
			d.SinkPower = sp
		case "sourcein":
			setString(&d.SourceIn, v)
		case "stream0_enable":
			setBool(&d.Stream0Enable, v)
		case "stream0fps_by2_enable":
			setBool(&d.Stream0FPSBy2Enable, v)
		case "stream1_enable":
			setBool(&d.Stream1Enable, v)
		case "stream1fps_by2_enable":
			setBool(&d.Stream1FPSBy2Enable, v)
		case "stream1_scale":
			setString(&d.Stream1Scale, v)
		case "temperature":
			setInt(&d.Temperature, v)
		case "transport_type":
			setString(&d.TransportType, v)
		case "vbr_max_bitrate":
			setInt(&d.VBRMaxBitrate, v)
		case "vbr_max_qp":
			setInt(&d.VBRMaxQP, v)
		case "vbr_min_qp":
			setInt(&d.VBRMinQP, v)
		case "version":
			setString(&d.Version, v)
		case "videodetection":
			setString(&d.VideoDetection, v)
		case "video_input":
			setBool(&d.VideoInput, v)
		case "video_mode":
			setString(&d.VideoMode, v)
		case "video_source":
			setString(&d.VideoSource, v)
		case "video_stretch_type":
			setString(&d.VideoStretchType, v)
		case "video_timing":
			setString(&d.VideoTiming, v)
		}
	}
	return d, nil
}

func parseAudioOutputs(v any) ([]AudioOutput, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("audio field is not an array: %w", nherrors.ErrParsingFailed)
	}
	outputs := make([]AudioOutput, 0, len(raw))
	for _, entry := range raw {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("audio output entry is not an object: %w", nherrors.ErrParsingFailed)
		}
		var out AudioOutput
		out.Name, _ = asString(fields["name"])
		if b, ok := asBool(fields["mute"]); ok {
			out.Mute = b
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func parseSinkPower(v any) (*SinkPower, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("sinkpower field is not an object: %w", nherrors.ErrParsingFailed)
	}
	sp := &SinkPower{}
	sp.Mode, _ = asString(fields["mode"])

	if cec, ok := fields["cec"].(map[string]any); ok {
		c := &SinkPowerCEC{}
		c.OneTouchPlay, _ = asString(cec["onetouchplay"])
		c.Standby, _ = asString(cec["standby"])
		sp.CEC = c
	}
	if rs, ok := fields["rs232"].(map[string]any); ok {
		r := &SinkPowerRS232{}
		r.Mode, _ = asString(rs["mode"])
		r.Param, _ = asString(rs["param"])
		r.OneTouchPlay, _ = asString(rs["onetouchplay"])
		r.Standby, _ = asString(rs["standby"])
		sp.RS232 = r
	}
	return sp, nil
}

// DeviceGroup is a membership entry in a DeviceEntry's group list.
type DeviceGroup struct {
	Name     string `json:"name"`
	Sequence int    `json:"sequence"`
}

// DeviceEntry is one device from the controller's "device json string"
// inventory listing. Unlike the status/info forms, this JSON uses native
// types, so it decodes directly.
type DeviceEntry struct {
	AliasName   string        `json:"aliasName"`
	DeviceType  string        `json:"deviceType"`
	Group       []DeviceGroup `json:"group"`
	IP          string        `json:"ip"`
	Online      bool          `json:"online"`
	Sequence    int           `json:"sequence"`
	TrueName    string        `json:"trueName"`
	NameOverlay *bool         `json:"nameoverlay,omitempty"`
	TXName      *string       `json:"txName,omitempty"`
}

// ParseDeviceList parses the JSON array after "device json string:".
func ParseDeviceList(response string) ([]DeviceEntry, error) {
	block, err := extractJSONBlock(response, "device json string:", '[', ']')
	if err != nil {
		return nil, fmt.Errorf("no JSON array content found in response: %w", nherrors.ErrParsingFailed)
	}
	var devices []DeviceEntry
	if err := json.Unmarshal([]byte(block), &devices); err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %v: %w", err, nherrors.ErrParsingFailed)
	}
	return devices, nil
}

// ParseDeviceNames parses the flat "devicelist is TX1 RX1 ..." listing.
func ParseDeviceNames(response string) ([]string, error) {
	const marker = "devicelist is"
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, marker) {
			continue
		}
		names := strings.Fields(line[len(marker):])
		if len(names) == 0 {
			return nil, fmt.Errorf("devicelist response names no devices: %w", nherrors.ErrParsingFailed)
		}
		return names, nil
	}
	return nil, fmt.Errorf("invalid devicelist response %q: %w", strings.TrimSpace(response), nherrors.ErrParsingFailed)
}

// AliasEntry maps a device hostname to its configured alias. A nil Alias
// means the unit reports the alias as null.
type AliasEntry struct {
	Hostname string
	Alias    *string
}

// parseAliasLine parses one "<hostname>'s alias is <alias>" line.
func parseAliasLine(line string) (AliasEntry, error) {
	line = strings.TrimSpace(line)

	// Lookup failures arrive as: "DISPLAY1" does not exist.
	if strings.HasSuffix(line, "does not exist.") {
		name := strings.TrimSpace(strings.TrimSuffix(line, "does not exist."))
		name = strings.Trim(name, `"`)
		return AliasEntry{}, &nherrors.DeviceNotFoundError{DeviceName: name}
	}

	const marker = "'s alias is "
	idx := strings.Index(line, marker)
	if idx < 0 {
		return AliasEntry{}, fmt.Errorf("invalid name response %q: %w", line, nherrors.ErrParsingFailed)
	}

	entry := AliasEntry{Hostname: line[:idx]}
	alias := strings.TrimSpace(line[idx+len(marker):])
	if alias != "null" {
		entry.Alias = strPtr(alias)
	}
	return entry, nil
}

// ParseAlias parses a single alias response line.
func ParseAlias(response string) (AliasEntry, error) {
	for _, line := range strings.Split(response, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return parseAliasLine(line)
	}
	return AliasEntry{}, fmt.Errorf("invalid name response: empty: %w", nherrors.ErrParsingFailed)
}

// ParseAliases parses a multi-line alias listing.
func ParseAliases(response string) ([]AliasEntry, error) {
	var entries []AliasEntry
	for _, line := range strings.Split(response, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := parseAliasLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("invalid name response: empty: %w", nherrors.ErrParsingFailed)
	}
	return entries, nil
}
