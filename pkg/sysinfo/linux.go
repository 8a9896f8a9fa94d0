//go:build linux
// +build linux

// Package sysinfo reports the primary screen size, used to target crops at
// the native resolution.
package sysinfo

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

var (
	// xrandrCurrent matches "current 1920 x 1080" in the xrandr header line.
	xrandrCurrent = regexp.MustCompile(`current\s+(\d+)\s*x\s*(\d+)`)
	// xdpyinfoDimensions matches "dimensions:    1920x1080 pixels".
	xdpyinfoDimensions = regexp.MustCompile(`dimensions:\s+(\d+)x(\d+)\s+pixels`)
)

// GetScreenDimensions returns the desktop dimensions in pixels. xrandr is
// tried first, xdpyinfo as a fallback; both require an X display (XWayland
// included).
func GetScreenDimensions() (int, int, error) {
	if out, err := exec.Command("xrandr", "--query").Output(); err == nil {
		if w, h, err := parseDimensions(xrandrCurrent, out); err == nil {
			return w, h, nil
		}
	}

	out, err := exec.Command("xdpyinfo").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("querying screen resolution: %w", err)
	}
	return parseDimensions(xdpyinfoDimensions, out)
}

// parseDimensions extracts a width/height pair using the given pattern.
func parseDimensions(pattern *regexp.Regexp, out []byte) (int, int, error) {
	matches := pattern.FindSubmatch(out)
	if len(matches) < 3 {
		return 0, 0, fmt.Errorf("no screen dimensions in output")
	}
	width, errW := strconv.Atoi(string(matches[1]))
	height, errH := strconv.Atoi(string(matches[2]))
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("parsing screen dimensions: %v, %v", errW, errH)
	}
	return width, height, nil
}
