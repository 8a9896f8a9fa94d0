//go:build darwin
// +build darwin

package sysinfo

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

// pixelPair matches "3456 x 2234" inside strings like
// "2880 x 1864 Retina" or "1710 x 1107 @ 60.00Hz".
var pixelPair = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)

// displayProfile is the subset of `system_profiler SPDisplaysDataType -json`
// output we care about: each GPU carries its attached displays.
type displayProfile struct {
	GPUs []struct {
		Displays []displayEntry `json:"spdisplays_ndrvs"`
	} `json:"SPDisplaysDataType"`
}

type displayEntry struct {
	Pixels string `json:"_spdisplays_pixels"` // e.g. "3420 x 2214"
	Main   string `json:"spdisplays_main"`    // "spdisplays_yes" on the primary
}

// GetScreenDimensions returns the primary desktop dimensions on macOS.
func GetScreenDimensions() (int, int, error) {
	out, err := exec.Command("system_profiler", "SPDisplaysDataType", "-json").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("running system_profiler: %w", err)
	}
	return parsePrimaryResolution(out)
}

// parsePrimaryResolution picks the main display from the profiler output,
// falling back to the first display when none is flagged as main.
func parsePrimaryResolution(data []byte) (int, int, error) {
	var profile displayProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return 0, 0, fmt.Errorf("decoding system_profiler JSON: %w", err)
	}

	var first *displayEntry
	for _, gpu := range profile.GPUs {
		for i, display := range gpu.Displays {
			if display.Main == "spdisplays_yes" {
				return parsePixelPair(display.Pixels)
			}
			if first == nil {
				first = &gpu.Displays[i]
			}
		}
	}
	if first != nil {
		return parsePixelPair(first.Pixels)
	}
	return 0, 0, fmt.Errorf("no displays in system_profiler output")
}

func parsePixelPair(s string) (int, int, error) {
	matches := pixelPair.FindStringSubmatch(s)
	if len(matches) < 3 {
		return 0, 0, fmt.Errorf("no resolution in %q", s)
	}
	width, errW := strconv.Atoi(matches[1])
	height, errH := strconv.Atoi(matches[2])
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("parsing resolution %q: %v, %v", s, errW, errH)
	}
	return width, height, nil
}
