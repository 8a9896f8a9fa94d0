//go:build windows
// +build windows

package startup

import (
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/dixieflatline76/Easel/config"
)

// runKey is the per-user startup registry key.
const runKey = `Software\Microsoft\Windows\CurrentVersion\Run`

// IsEnabled reports whether the startup registry value is present.
func IsEnabled() (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("opening startup registry key: %w", err)
	}
	defer key.Close()

	_, _, err = key.GetStringValue(config.AppName)
	if err == registry.ErrNotExist {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading startup registry value: %w", err)
	}
	return true, nil
}

// Enable registers the current executable to run at login.
func Enable(minimized bool) error {
	command, err := launchCommand(minimized)
	if err != nil {
		return err
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening startup registry key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(config.AppName, command); err != nil {
		return fmt.Errorf("setting startup registry value: %w", err)
	}
	return nil
}

// Disable removes the startup registry value if present.
func Disable() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening startup registry key: %w", err)
	}
	defer key.Close()

	err = key.DeleteValue(config.AppName)
	if err == registry.ErrNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("removing startup registry value: %w", err)
	}
	return nil
}
