package protocol

import (
	"fmt"
	"strconv"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// Notification categories as they appear on the wire after "notify ".
const (
	CategoryEndpoint = "endpoint"
	CategoryCEC      = "cecinfo"
	CategoryInfrared = "irinfo"
	CategorySerial   = "serialinfo"
	CategoryVideo    = "video"
	CategorySink     = "sink"
)

// Notification is a parsed unsolicited event line. Category identifies the
// wire category the event arrived under.
type Notification interface {
	Category() string
}

// EndpointStatusEvent reports a device coming online or going offline.
type EndpointStatusEvent struct {
	Device string `json:"device"`
	Online bool   `json:"online"`
}

// Category implements Notification.
func (EndpointStatusEvent) Category() string { return CategoryEndpoint }

// CECDataEvent carries CEC data a device received on its HDMI port.
type CECDataEvent struct {
	Device string `json:"device"`
	Data   string `json:"data"`
}

// Category implements Notification.
func (CECDataEvent) Category() string { return CategoryCEC }

// InfraredDataEvent carries infrared data a device received.
type InfraredDataEvent struct {
	Device string `json:"device"`
	Data   string `json:"data"`
}

// Category implements Notification.
func (InfraredDataEvent) Category() string { return CategoryInfrared }

// SerialDataEvent carries RS-232 data a device received, with the declared
// payload length and encoding. A zero-length payload is valid.
type SerialDataEvent struct {
	Device string `json:"device"`
	Format string `json:"format"`
	Length int    `json:"length"`
	Data   string `json:"data"`
}

// Category implements Notification.
func (SerialDataEvent) Category() string { return CategorySerial }

// VideoStatusEvent reports a device finding or losing its video input.
// Source names the upstream TX when the unit includes it.
type VideoStatusEvent struct {
	Status string  `json:"status"`
	Device string  `json:"device"`
	Source *string `json:"source,omitempty"`
}

// Category implements Notification.
func (VideoStatusEvent) Category() string { return CategoryVideo }

// SinkStatusEvent reports a receiver finding or losing its attached sink.
type SinkStatusEvent struct {
	Status string `json:"status"`
	Device string `json:"device"`
}

// Category implements Notification.
func (SinkStatusEvent) Category() string { return CategorySink }

// NotificationCategory extracts the category token from a raw notify line
// without fully parsing it.
func NotificationCategory(line string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) < 2 || fields[0] != "notify" {
		return "", fmt.Errorf("unknown notification type %q: %w", line, nherrors.ErrParsingFailed)
	}
	switch fields[1] {
	case CategoryEndpoint, CategoryCEC, CategoryInfrared, CategorySerial, CategoryVideo, CategorySink:
		return fields[1], nil
	}
	return "", fmt.Errorf("unknown notification type %q: %w", line, nherrors.ErrParsingFailed)
}

// ParseNotification parses a raw notify line into its typed event.
func ParseNotification(line string) (Notification, error) {
	category, err := NotificationCategory(line)
	if err != nil {
		return nil, err
	}
	switch category {
	case CategoryEndpoint:
		return ParseEndpointStatus(line)
	case CategoryCEC:
		return ParseCECData(line)
	case CategoryInfrared:
		return ParseInfraredData(line)
	case CategorySerial:
		return ParseSerialData(line)
	case CategoryVideo:
		return ParseVideoStatus(line)
	case CategorySink:
		return ParseSinkStatus(line)
	}
	return nil, fmt.Errorf("unknown notification type %q: %w", line, nherrors.ErrParsingFailed)
}

// ParseEndpointStatus parses "notify endpoint +|- <device>". Some firmware
// emits an em dash for offline.
func ParseEndpointStatus(line string) (EndpointStatusEvent, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) != 4 || fields[0] != "notify" || fields[1] != CategoryEndpoint {
		return EndpointStatusEvent{}, fmt.Errorf("invalid endpoint status notification format %q: %w",
			line, nherrors.ErrParsingFailed)
	}

	var online bool
	switch fields[2] {
	case "+":
		online = true
	case "-", "–":
		online = false
	default:
		return EndpointStatusEvent{}, fmt.Errorf("invalid endpoint status indicator %q: %w",
			fields[2], nherrors.ErrParsingFailed)
	}
	return EndpointStatusEvent{Device: fields[3], Online: online}, nil
}

// parseQuotedPayload parses '<device> "<payload>"' where the device name
// may contain spaces and the payload is everything between the first and
// last double quote.
func parseQuotedPayload(line, prefix, kind string) (device, payload string, err error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, prefix) {
		return "", "", fmt.Errorf("invalid %s data notification format %q: %w", kind, line, nherrors.ErrParsingFailed)
	}
	rest := trimmed[len(prefix):]

	first := strings.IndexByte(rest, '"')
	last := strings.LastIndexByte(rest, '"')
	if first < 0 {
		return "", "", fmt.Errorf("invalid %s data notification format %q: %w", kind, line, nherrors.ErrParsingFailed)
	}
	if first == last {
		return "", "", fmt.Errorf("invalid %s data notification format (unclosed quotes) %q: %w",
			kind, line, nherrors.ErrParsingFailed)
	}
	return strings.TrimSpace(rest[:first]), rest[first+1 : last], nil
}

// ParseCECData parses 'notify cecinfo <device> "<hex>"'.
func ParseCECData(line string) (CECDataEvent, error) {
	device, payload, err := parseQuotedPayload(line, "notify cecinfo ", "CEC")
	if err != nil {
		return CECDataEvent{}, err
	}
	return CECDataEvent{Device: device, Data: payload}, nil
}

// ParseInfraredData parses 'notify irinfo <device> "<code>"'.
func ParseInfraredData(line string) (InfraredDataEvent, error) {
	device, payload, err := parseQuotedPayload(line, "notify irinfo ", "infrared")
	if err != nil {
		return InfraredDataEvent{}, err
	}
	return InfraredDataEvent{Device: device, Data: payload}, nil
}

// ParseSerialData parses "notify serialinfo <device> <hex|ascii> <len>:"
// followed by the payload, which may begin on the same line or after a
// CR/LF. The declared length is not validated against the payload; units
// routinely disagree with themselves.
func ParseSerialData(line string) (SerialDataEvent, error) {
	const prefix = "notify serialinfo "
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, prefix) {
		return SerialDataEvent{}, fmt.Errorf("invalid serial data notification format %q: %w",
			line, nherrors.ErrParsingFailed)
	}
	rest := trimmed[len(prefix):]

	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return SerialDataEvent{}, fmt.Errorf("invalid serial data notification format (no colon) %q: %w",
			line, nherrors.ErrParsingFailed)
	}

	header := strings.Fields(rest[:colon])
	if len(header) != 3 {
		return SerialDataEvent{}, fmt.Errorf("invalid serial data notification header %q: %w",
			rest[:colon], nherrors.ErrParsingFailed)
	}

	format := header[1]
	if format != "hex" && format != "ascii" {
		return SerialDataEvent{}, fmt.Errorf("invalid serial data format: %s: %w", format, nherrors.ErrParsingFailed)
	}

	length, err := strconv.Atoi(header[2])
	if err != nil {
		return SerialDataEvent{}, fmt.Errorf("invalid serial data length %q: %w", header[2], nherrors.ErrParsingFailed)
	}

	payload := strings.TrimLeft(rest[colon+1:], "\r\n")
	return SerialDataEvent{
		Device: header[0],
		Format: format,
		Length: length,
		Data:   payload,
	}, nil
}

// ParseVideoStatus parses "notify video found|lost <device> [source]".
func ParseVideoStatus(line string) (VideoStatusEvent, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) < 4 || len(fields) > 5 || fields[0] != "notify" || fields[1] != CategoryVideo {
		return VideoStatusEvent{}, fmt.Errorf("invalid video status notification format %q: %w",
			line, nherrors.ErrParsingFailed)
	}

	status := fields[2]
	if status != "found" && status != "lost" {
		return VideoStatusEvent{}, fmt.Errorf("invalid video status: %s: %w", status, nherrors.ErrParsingFailed)
	}

	event := VideoStatusEvent{Status: status, Device: fields[3]}
	if len(fields) == 5 {
		event.Source = strPtr(fields[4])
	}
	return event, nil
}

// ParseSinkStatus parses "notify sink found|lost <device>".
func ParseSinkStatus(line string) (SinkStatusEvent, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) != 4 || fields[0] != "notify" || fields[1] != CategorySink {
		return SinkStatusEvent{}, fmt.Errorf("invalid sink status notification format %q: %w",
			line, nherrors.ErrParsingFailed)
	}

	status := fields[2]
	if status != "found" && status != "lost" {
		return SinkStatusEvent{}, fmt.Errorf("invalid sink status: %s: %w", status, nherrors.ErrParsingFailed)
	}
	return SinkStatusEvent{Status: status, Device: fields[3]}, nil
}
