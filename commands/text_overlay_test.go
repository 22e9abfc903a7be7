package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nherrors "github.com/c360/networkhd/errors"
)

func TestSetOSD(t *testing.T) {
	s := &fakeSender{}
	c := &TextOverlayCommands{s: s}

	require.NoError(t, c.SetOSD(context.Background(), true, "TX1"))
	assert.Equal(t, "config set device osd on TX1", s.lastSent(t))

	require.NoError(t, c.SetOSD(context.Background(), false, "TX-Display"))
	assert.Equal(t, "config set device osd off TX-Display", s.lastSent(t))
}

func TestSetOSDParam(t *testing.T) {
	s := &fakeSender{}
	c := &TextOverlayCommands{s: s}

	require.NoError(t, c.SetOSDParam(context.Background(), "Test Message", 100, 200, "FFFF0000", 2, "TX1"))
	assert.Equal(t, "config set device osd param Test Message 100 200 FFFF0000 2 TX1", s.lastSent(t))

	// Boundary positions are inclusive.
	require.NoError(t, c.SetOSDParam(context.Background(), "Boundary Test", 0, 1080, "FFFFFFFF", 4, "TX-Main"))
	assert.Equal(t, "config set device osd param Boundary Test 0 1080 FFFFFFFF 4 TX-Main", s.lastSent(t))
}

func TestSetOSDParamValidation(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		size    int
		wantMsg string
	}{
		{"x too low", -1, 100, 2, "position x"},
		{"x too high", 1921, 100, 2, "position x"},
		{"y too low", 100, -1, 2, "position y"},
		{"y too high", 100, 1081, 2, "position y"},
		{"size too low", 100, 100, 0, "text size"},
		{"size too high", 100, 100, 5, "text size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &TextOverlayCommands{s: &fakeSender{}}
			err := c.SetOSDParam(context.Background(), "Test", tt.x, tt.y, "FFFF0000", tt.size, "TX1")
			require.Error(t, err)
			assert.True(t, nherrors.IsInvalid(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		family DeviceFamily
		color  string
		want   string
	}{
		{FamilyNHD110140, "red", "FFFF0000"},
		{FamilyNHD110140, "white", "FFFFFFFF"},
		{FamilyNHD110140, "black", "FF000000"},
		{FamilyNHD110140, "purple", "FFFF00FF"},
		{FamilyNHD110140, "blue", "FF0000FF"},
		{FamilyNHD110140, "green", "FF00FFFF"},
		{FamilyNHD200, "red", "FC00"},
		{FamilyNHD200, "white", "FFFF"},
		{FamilyNHD200, "yellow", "FF00"},
		{FamilyNHD200, "gray", "BDEF"},
		{FamilyNHD200, "green", "BB00"},
	}
	for _, tt := range tests {
		t.Run(string(tt.family)+"/"+tt.color, func(t *testing.T) {
			hex, err := ColorHex(tt.color, tt.family)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex)
		})
	}
}

func TestColorHexUnknownColor(t *testing.T) {
	_, err := ColorHex("orange", FamilyNHD110140)
	require.Error(t, err)
	assert.True(t, nherrors.IsInvalid(err))
	assert.Contains(t, err.Error(), `color "orange" not available for nhd110_140`)
	assert.Contains(t, err.Error(), "black, blue, green, purple, red, white")

	_, err = ColorHex("red", "nhd999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown device family")
}
