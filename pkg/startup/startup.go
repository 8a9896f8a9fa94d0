// Package startup registers Easel in the current user's autostart list so
// a running slideshow resumes after login. Registration points at the
// current executable with the --startup flag; the UI layer decides what a
// startup launch looks like (e.g. minimized).
package startup

import (
	"fmt"
	"os"
)

// launchCommand builds the autostart command line for the current
// executable.
func launchCommand(minimized bool) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolving current executable: %w", err)
	}
	command := fmt.Sprintf("%q --startup", exe)
	if minimized {
		command += " --minimized"
	}
	return command, nil
}
