//go:build darwin
// +build darwin

package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dixieflatline76/Easel/config"
)

// launchAgent is the per-user LaunchAgent template.
const launchAgent = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
%s    </array>
    <key>RunAtLoad</key>
    <true/>
</dict>
</plist>
`

// agentLabel is the reverse-DNS LaunchAgent label.
func agentLabel() string {
	return "com.dixieflatline76." + strings.ToLower(config.AppName)
}

// agentPath returns the LaunchAgent plist path for the current user.
func agentPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", agentLabel()+".plist"), nil
}

// IsEnabled reports whether the LaunchAgent plist is present.
func IsEnabled() (bool, error) {
	path, err := agentPath()
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

// Enable writes the LaunchAgent plist for the current executable.
func Enable(minimized bool) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolving current executable: %w", err)
	}
	path, err := agentPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating LaunchAgents directory: %w", err)
	}

	args := fmt.Sprintf("        <string>%s</string>\n        <string>--startup</string>\n", exe)
	if minimized {
		args += "        <string>--minimized</string>\n"
	}
	contents := fmt.Sprintf(launchAgent, agentLabel(), args)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		return fmt.Errorf("writing LaunchAgent plist: %w", err)
	}
	return nil
}

// Disable removes the LaunchAgent plist if present.
func Disable() error {
	path, err := agentPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing LaunchAgent plist: %w", err)
	}
	return nil
}
