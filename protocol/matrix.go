package protocol

import (
	"fmt"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// MatrixAssignment is one TX→RX routing pair. A nil TX means the receiver
// has no source assigned (the wire encodes this as "NULL" or "null").
type MatrixAssignment struct {
	TX *string
	RX string
}

// Matrix is a full routing listing for one media class.
type Matrix struct {
	Assignments []MatrixAssignment
}

// ParseMatrix parses the standard "TX RX" pair listing emitted by matrix,
// matrix video, matrix audio, matrix audio2, matrix usb, matrix infrared
// and matrix serial queries. An empty listing is a valid empty matrix.
func ParseMatrix(response string) (Matrix, error) {
	lines := linesAfterInformationHeader(response)

	var m Matrix
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return Matrix{}, fmt.Errorf("invalid matrix assignment line format %q: %w", line, nherrors.ErrParsingFailed)
		}
		a := MatrixAssignment{RX: fields[1]}
		if !strings.EqualFold(fields[0], "null") {
			a.TX = strPtr(fields[0])
		}
		m.Assignments = append(m.Assignments, a)
	}
	return m, nil
}

// ParseMatrixAudio3 parses the audio3 listing, which alternates RX and TX
// on separate lines (RX first). A dangling RX with no following TX is a
// parse error.
func ParseMatrixAudio3(response string) (Matrix, error) {
	lines := linesAfterInformationHeader(response)

	var m Matrix
	for i := 0; i < len(lines); i += 2 {
		if i+1 >= len(lines) {
			return Matrix{}, fmt.Errorf("invalid matrix audio3 response format: missing TX for RX %q: %w",
				lines[i], nherrors.ErrParsingFailed)
		}
		rx := lines[i]
		tx := lines[i+1]
		a := MatrixAssignment{RX: rx}
		if !strings.EqualFold(tx, "null") {
			a.TX = strPtr(tx)
		}
		m.Assignments = append(m.Assignments, a)
	}
	return m, nil
}

// DeviceModeAssignment is one routing-mode entry from the infrared2 or
// serial2 listings. Target is set iff Mode is "single".
type DeviceModeAssignment struct {
	Device string
	Mode   string
	Target *string
}

// DeviceModeMatrix is a full infrared2/serial2 routing-mode listing.
type DeviceModeMatrix struct {
	Assignments []DeviceModeAssignment
}

// parseDeviceModeAssignment parses one "<device> <mode> [target]" line.
// Valid modes are single (target required), api, all and null.
func parseDeviceModeAssignment(line string) (DeviceModeAssignment, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return DeviceModeAssignment{}, fmt.Errorf("invalid assignment line format %q: %w", line, nherrors.ErrParsingFailed)
	}

	a := DeviceModeAssignment{Device: fields[0], Mode: fields[1]}
	switch a.Mode {
	case "single":
		if len(fields) != 3 {
			return DeviceModeAssignment{}, fmt.Errorf("mode single requires a target device in %q: %w",
				line, nherrors.ErrParsingFailed)
		}
		a.Target = strPtr(fields[2])
	case "api", "all", "null":
		if len(fields) != 2 {
			return DeviceModeAssignment{}, fmt.Errorf("mode %s takes no target device in %q: %w",
				a.Mode, line, nherrors.ErrParsingFailed)
		}
	default:
		return DeviceModeAssignment{}, fmt.Errorf("invalid assignment mode %q in %q: %w",
			a.Mode, line, nherrors.ErrParsingFailed)
	}
	return a, nil
}

// ParseDeviceModeMatrix parses the infrared2/serial2 listings.
func ParseDeviceModeMatrix(response string) (DeviceModeMatrix, error) {
	lines := linesAfterInformationHeader(response)

	var m DeviceModeMatrix
	for _, line := range lines {
		a, err := parseDeviceModeAssignment(line)
		if err != nil {
			return DeviceModeMatrix{}, err
		}
		m.Assignments = append(m.Assignments, a)
	}
	return m, nil
}

// linesAfterInformationHeader returns the data lines after the family's
// "... information:" header line, skipping banner and echo.
func linesAfterInformationHeader(response string) []string {
	lines := strings.Split(response, "\n")
	start := -1
	for i, line := range lines {
		if strings.HasSuffix(strings.TrimSpace(line), "information:") {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var out []string
	for _, line := range lines[start:] {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
