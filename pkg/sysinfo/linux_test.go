//go:build linux
// +build linux

package sysinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseXrandrDimensions(t *testing.T) {
	out := []byte(`Screen 0: minimum 320 x 200, current 2560 x 1440, maximum 16384 x 16384
DP-1 connected primary 2560x1440+0+0 (normal left inverted right x axis y axis) 597mm x 336mm
`)
	w, h, err := parseDimensions(xrandrCurrent, out)
	require.NoError(t, err)
	assert.Equal(t, 2560, w)
	assert.Equal(t, 1440, h)
}

func TestParseXdpyinfoDimensions(t *testing.T) {
	out := []byte(`screen #0:
  dimensions:    1920x1080 pixels (508x285 millimeters)
  resolution:    96x96 dots per inch
`)
	w, h, err := parseDimensions(xdpyinfoDimensions, out)
	require.NoError(t, err)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
}

func TestParseDimensionsNoMatch(t *testing.T) {
	_, _, err := parseDimensions(xrandrCurrent, []byte("no displays here"))
	assert.Error(t, err)
}
