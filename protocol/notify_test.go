package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nherrors "github.com/c360/networkhd/errors"
)

func TestParseEndpointStatus(t *testing.T) {
	event, err := ParseEndpointStatus("notify endpoint + source1")
	require.NoError(t, err)
	assert.True(t, event.Online)
	assert.Equal(t, "source1", event.Device)

	event, err = ParseEndpointStatus("notify endpoint - display1")
	require.NoError(t, err)
	assert.False(t, event.Online)
	assert.Equal(t, "display1", event.Device)
}

func TestParseEndpointStatus_EmDash(t *testing.T) {
	// Some firmware revisions emit U+2013 for offline.
	event, err := ParseEndpointStatus("notify endpoint – display1")
	require.NoError(t, err)
	assert.False(t, event.Online)
	assert.Equal(t, "display1", event.Device)
}

func TestParseEndpointStatus_Whitespace(t *testing.T) {
	event, err := ParseEndpointStatus("  notify endpoint + source1  ")
	require.NoError(t, err)
	assert.True(t, event.Online)
}

func TestParseEndpointStatus_Invalid(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"too few parts", "notify endpoint +", "invalid endpoint status notification format"},
		{"too many parts", "notify endpoint + display1 extra", "invalid endpoint status notification format"},
		{"wrong prefix", "invalid endpoint + display1", "invalid endpoint status notification format"},
		{"wrong category", "notify invalid + display1", "invalid endpoint status notification format"},
		{"bad indicator", "notify endpoint = display1", "invalid endpoint status indicator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEndpointStatus(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, nherrors.ErrParsingFailed)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseCECData(t *testing.T) {
	event, err := ParseCECData(`notify cecinfo display1 "FF36"`)
	require.NoError(t, err)
	assert.Equal(t, "display1", event.Device)
	assert.Equal(t, "FF36", event.Data)
}

func TestParseCECData_DeviceNameWithSpaces(t *testing.T) {
	event, err := ParseCECData(`notify cecinfo display 1 "FF36"`)
	require.NoError(t, err)
	assert.Equal(t, "display 1", event.Device)
	assert.Equal(t, "FF36", event.Data)
}

func TestParseCECData_EmptyPayload(t *testing.T) {
	event, err := ParseCECData(`notify cecinfo display1 ""`)
	require.NoError(t, err)
	assert.Equal(t, "", event.Data)
}

func TestParseCECData_UnclosedQuotes(t *testing.T) {
	for _, line := range []string{
		`notify cecinfo display1 FF36"`,
		`notify cecinfo display1 "FF36`,
	} {
		_, err := ParseCECData(line)
		require.Error(t, err, line)
		assert.Contains(t, err.Error(), "unclosed quotes")
	}
}

func TestParseCECData_NoQuotes(t *testing.T) {
	_, err := ParseCECData("notify cecinfo display1 FF36")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid CEC data notification format")
	assert.NotContains(t, err.Error(), "unclosed quotes")
}

func TestParseInfraredData(t *testing.T) {
	event, err := ParseInfraredData(`notify irinfo display1 "0000 0067 0000 0015"`)
	require.NoError(t, err)
	assert.Equal(t, "display1", event.Device)
	assert.Equal(t, "0000 0067 0000 0015", event.Data)
}

func TestParseInfraredData_UnclosedQuotes(t *testing.T) {
	_, err := ParseInfraredData(`notify irinfo display1 "0000`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed quotes")
}

func TestParseSerialData(t *testing.T) {
	event, err := ParseSerialData("notify serialinfo display1 hex 371:\r\n48656c6c6f")
	require.NoError(t, err)
	assert.Equal(t, "display1", event.Device)
	assert.Equal(t, "hex", event.Format)
	assert.Equal(t, 371, event.Length)
	assert.Equal(t, "48656c6c6f", event.Data)
}

func TestParseSerialData_ASCIIInline(t *testing.T) {
	event, err := ParseSerialData("notify serialinfo display1 hex 10:48656c6c6f")
	require.NoError(t, err)
	assert.Equal(t, 10, event.Length)
	assert.Equal(t, "48656c6c6f", event.Data)
}

func TestParseSerialData_ZeroLength(t *testing.T) {
	event, err := ParseSerialData("notify serialinfo display1 hex 0:")
	require.NoError(t, err)
	assert.Equal(t, 0, event.Length)
	assert.Equal(t, "", event.Data)
}

func TestParseSerialData_PayloadWithColon(t *testing.T) {
	event, err := ParseSerialData("notify serialinfo display1 ascii 10:\r\nhello:world")
	require.NoError(t, err)
	assert.Equal(t, "hello:world", event.Data)
}

func TestParseSerialData_Invalid(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"no colon", "notify serialinfo display1 hex 10 data", "no colon"},
		{"too few header parts", "notify serialinfo display1 hex:data", "invalid serial data notification header"},
		{"too many header parts", "notify serialinfo display1 hex 10 extra:data", "invalid serial data notification header"},
		{"bad format", "notify serialinfo display1 invalid 10:data", "invalid serial data format: invalid"},
		{"bad length", "notify serialinfo display1 hex abc:data", "invalid serial data length"},
		{"wrong prefix", "invalid serialinfo display1 hex 10:data", "invalid serial data notification format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSerialData(tt.line)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseVideoStatus(t *testing.T) {
	event, err := ParseVideoStatus("notify video found display1 source1")
	require.NoError(t, err)
	assert.Equal(t, "found", event.Status)
	assert.Equal(t, "display1", event.Device)
	require.NotNil(t, event.Source)
	assert.Equal(t, "source1", *event.Source)
}

func TestParseVideoStatus_NoSource(t *testing.T) {
	event, err := ParseVideoStatus("notify video lost source1")
	require.NoError(t, err)
	assert.Equal(t, "lost", event.Status)
	assert.Equal(t, "source1", event.Device)
	assert.Nil(t, event.Source)
}

func TestParseVideoStatus_Invalid(t *testing.T) {
	_, err := ParseVideoStatus("notify video")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid video status notification format")

	_, err = ParseVideoStatus("notify video invalid display1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid video status: invalid")
}

func TestParseSinkStatus(t *testing.T) {
	event, err := ParseSinkStatus("notify sink lost display1")
	require.NoError(t, err)
	assert.Equal(t, "lost", event.Status)
	assert.Equal(t, "display1", event.Device)

	_, err = ParseSinkStatus("notify sink broken display1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sink status")
}

func TestNotificationCategory(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"notify endpoint + display1", CategoryEndpoint},
		{`notify cecinfo display1 "FF36"`, CategoryCEC},
		{`notify irinfo display1 "0000"`, CategoryInfrared},
		{"notify serialinfo display1 hex 0:", CategorySerial},
		{"notify video found display1", CategoryVideo},
		{"notify sink lost display1", CategorySink},
	}
	for _, tt := range tests {
		got, err := NotificationCategory(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got)
	}
}

func TestNotificationCategory_Unknown(t *testing.T) {
	for _, line := range []string{"notify unknown data", "invalid notification format", "", "   "} {
		_, err := NotificationCategory(line)
		require.Error(t, err, "line %q", line)
		assert.Contains(t, err.Error(), "unknown notification type")
	}
}

func TestParseNotification_DispatchesByCategory(t *testing.T) {
	event, err := ParseNotification("notify endpoint + display1")
	require.NoError(t, err)
	endpoint, ok := event.(EndpointStatusEvent)
	require.True(t, ok)
	assert.True(t, endpoint.Online)
	assert.Equal(t, CategoryEndpoint, event.Category())

	event, err = ParseNotification("notify serialinfo display1 hex 10:\r\n48656c6c6f")
	require.NoError(t, err)
	serial, ok := event.(SerialDataEvent)
	require.True(t, ok)
	assert.Equal(t, 10, serial.Length)
	assert.Equal(t, "48656c6c6f", serial.Data)
}
