//go:build windows
// +build windows

package sysinfo

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// GetScreenDimensions returns the primary desktop dimensions in pixels.
func GetScreenDimensions() (int, int, error) {
	width := windows.GetSystemMetrics(windows.SM_CXSCREEN)
	height := windows.GetSystemMetrics(windows.SM_CYSCREEN)
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("GetSystemMetrics reported %dx%d", width, height)
	}
	return int(width), int(height), nil
}
