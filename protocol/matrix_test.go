package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nherrors "github.com/c360/networkhd/errors"
)

func TestParseMatrix(t *testing.T) {
	response := "matrix information:\nSource1 Display1\nSource1 Display2\nSource2 Display3\nNULL Display4"
	m, err := ParseMatrix(response)
	require.NoError(t, err)
	require.Len(t, m.Assignments, 4)

	assert.Equal(t, "Source1", *m.Assignments[0].TX)
	assert.Equal(t, "Display1", m.Assignments[0].RX)
	assert.Equal(t, "Source2", *m.Assignments[2].TX)
	assert.Nil(t, m.Assignments[3].TX, "NULL TX means no source assigned")
	assert.Equal(t, "Display4", m.Assignments[3].RX)
}

func TestParseMatrix_LowercaseNull(t *testing.T) {
	m, err := ParseMatrix("matrix serial information:\nnull Display4")
	require.NoError(t, err)
	require.Len(t, m.Assignments, 1)
	assert.Nil(t, m.Assignments[0].TX)
}

func TestParseMatrix_RoundTrip(t *testing.T) {
	pairs := []string{"Source1 Display1", "Source2 Display3", "tx9 rx12"}
	response := "matrix information:\n" + strings.Join(pairs, "\n")
	m, err := ParseMatrix(response)
	require.NoError(t, err)
	require.Len(t, m.Assignments, len(pairs))
	for i, a := range m.Assignments {
		assert.Equal(t, pairs[i], *a.TX+" "+a.RX)
	}
}

func TestParseMatrix_MediaClassHeaders(t *testing.T) {
	for _, header := range []string{
		"matrix video information:",
		"matrix audio information:",
		"matrix audio2 information:",
		"matrix usb information:",
		"matrix infrared information:",
		"matrix serial information:",
	} {
		t.Run(header, func(t *testing.T) {
			m, err := ParseMatrix(header + "\nSource1 Display1\nSource2 Display3")
			require.NoError(t, err)
			require.Len(t, m.Assignments, 2)
			assert.Equal(t, "Source2", *m.Assignments[1].TX)
			assert.Equal(t, "Display3", m.Assignments[1].RX)
		})
	}
}

func TestParseMatrix_Empty(t *testing.T) {
	m, err := ParseMatrix("matrix information:")
	require.NoError(t, err)
	assert.Empty(t, m.Assignments)
}

func TestParseMatrix_SkipsEcho(t *testing.T) {
	m, err := ParseMatrix("matrix get\nmatrix information:\nSource1 Display1\nSource2 Display2")
	require.NoError(t, err)
	assert.Len(t, m.Assignments, 2)
}

func TestParseMatrix_OneTokenLine(t *testing.T) {
	_, err := ParseMatrix("matrix information:\nSource1\nSource2 Display2")
	require.Error(t, err)
	assert.ErrorIs(t, err, nherrors.ErrParsingFailed)
	assert.Contains(t, err.Error(), "invalid matrix assignment line format")
}

func TestParseMatrixAudio3(t *testing.T) {
	response := "matrix audio3 information:\nDisplay1\nSource1\nDisplay2\nSource3\nDisplay5\nSource2"
	m, err := ParseMatrixAudio3(response)
	require.NoError(t, err)
	require.Len(t, m.Assignments, 3)
	assert.Equal(t, "Display1", m.Assignments[0].RX)
	assert.Equal(t, "Source1", *m.Assignments[0].TX)
	assert.Equal(t, "Display5", m.Assignments[2].RX)
	assert.Equal(t, "Source2", *m.Assignments[2].TX)
}

func TestParseMatrixAudio3_OddLineCount(t *testing.T) {
	_, err := ParseMatrixAudio3("matrix audio3 information:\nDisplay1\nSource1\nDisplay2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing TX for RX")
}

func TestParseDeviceModeAssignment(t *testing.T) {
	tests := []struct {
		line   string
		device string
		mode   string
		target string
	}{
		{"source1 single display1", "source1", "single", "display1"},
		{"display1 api", "display1", "api", ""},
		{"source2 all", "source2", "all", ""},
		{"display2 null", "display2", "null", ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			a, err := parseDeviceModeAssignment(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.device, a.Device)
			assert.Equal(t, tt.mode, a.Mode)
			if tt.target == "" {
				assert.Nil(t, a.Target)
			} else {
				require.NotNil(t, a.Target)
				assert.Equal(t, tt.target, *a.Target)
			}
		})
	}
}

func TestParseDeviceModeAssignment_Invalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing mode", "source1"},
		{"single without target", "source1 single"},
		{"api with target", "display1 api display2"},
		{"unknown mode", "source1 broadcast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDeviceModeAssignment(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, nherrors.ErrParsingFailed)
		})
	}
}

func TestParseDeviceModeMatrix(t *testing.T) {
	response := "matrix infrared2 information:\nsource1 single display1\ndisplay1 api\nsource2 api\ndisplay2 null"
	m, err := ParseDeviceModeMatrix(response)
	require.NoError(t, err)
	require.Len(t, m.Assignments, 4)

	assert.Equal(t, "source1", m.Assignments[0].Device)
	assert.Equal(t, "single", m.Assignments[0].Mode)
	assert.Equal(t, "display1", *m.Assignments[0].Target)
	assert.Equal(t, "api", m.Assignments[1].Mode)
	assert.Nil(t, m.Assignments[1].Target)
	assert.Equal(t, "null", m.Assignments[3].Mode)
}

func TestParseDeviceModeMatrix_Serial2(t *testing.T) {
	m, err := ParseDeviceModeMatrix("matrix serial2 information:\ndisplay1 api\nsource1 single display1")
	require.NoError(t, err)
	require.Len(t, m.Assignments, 2)
	assert.Equal(t, "display1", m.Assignments[0].Device)
	assert.Equal(t, "single", m.Assignments[1].Mode)
}
