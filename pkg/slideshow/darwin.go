//go:build darwin
// +build darwin

package slideshow

import (
	"fmt"
	"os/exec"

	"github.com/dixieflatline76/Easel/pkg/sysinfo"
	"github.com/dixieflatline76/Easel/util/log"
)

// macOSOS implements the OS interface for macOS.
type macOSOS struct{}

// getOS returns a new instance of the macOSOS struct.
func getOS() OS {
	return &macOSOS{}
}

// setWallpaper sets the desktop wallpaper on macOS.
func (m *macOSOS) setWallpaper(imagePath string) error {
	// Use AppleScript to set the wallpaper
	script := fmt.Sprintf(`
        tell application "Finder"
            set desktop picture to POSIX file "%s"
        end tell
    `, imagePath)

	cmd := exec.Command("osascript", "-e", script)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to set wallpaper: %w", err)
	}

	return nil
}

// setWallpaperStyle is a no-op on macOS: the scaling mode is picture
// metadata managed by the Dock, not a separate per-user setting.
func (m *macOSOS) setWallpaperStyle(style Style) error {
	log.Debugf("macOS: wallpaper style %s requested, no separate style commit", style)
	return nil
}

// getDesktopDimension returns the desktop dimensions on macOS.
func (m *macOSOS) getDesktopDimension() (int, int, error) {
	return sysinfo.GetScreenDimensions()
}
