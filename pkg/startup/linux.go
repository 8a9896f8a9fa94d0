//go:build linux
// +build linux

package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dixieflatline76/Easel/config"
)

// desktopEntry is the XDG autostart entry template.
const desktopEntry = `[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
`

// entryPath returns the autostart .desktop file path for the current user.
func entryPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	return filepath.Join(configDir, "autostart", strings.ToLower(config.AppName)+".desktop"), nil
}

// IsEnabled reports whether the autostart desktop entry is present.
func IsEnabled() (bool, error) {
	path, err := entryPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Enable writes the autostart desktop entry for the current executable.
func Enable(minimized bool) error {
	command, err := launchCommand(minimized)
	if err != nil {
		return err
	}
	path, err := entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating autostart directory: %w", err)
	}

	contents := fmt.Sprintf(desktopEntry, config.AppName, command)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		return fmt.Errorf("writing autostart entry: %w", err)
	}
	return nil
}

// Disable removes the autostart desktop entry if present.
func Disable() error {
	path, err := entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing autostart entry: %w", err)
	}
	return nil
}
