//go:build linux
// +build linux

package slideshow

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dixieflatline76/Easel/pkg/sysinfo"
)

// linuxOS implements the OS interface for Linux.
type linuxOS struct{}

// getOS returns a new instance of the linuxOS struct.
func getOS() OS {
	return &linuxOS{}
}

// desktopEnvironment sniffs the current desktop environment, lowercased.
func desktopEnvironment() string {
	desktopEnv := os.Getenv("XDG_CURRENT_DESKTOP")
	if desktopEnv == "" {
		desktopEnv = os.Getenv("DESKTOP_SESSION")
	}
	return strings.ToLower(desktopEnv)
}

// setWallpaper sets the desktop wallpaper on Linux, supporting X11 and some
// Wayland compositors.
func (l *linuxOS) setWallpaper(imagePath string) error {
	desktopEnv := desktopEnvironment()

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		// Wayland
		if strings.Contains(desktopEnv, "gnome") || strings.Contains(desktopEnv, "mutter") {
			return l.setWallpaperGNOME(imagePath)
		} else if strings.Contains(desktopEnv, "sway") {
			return l.setWallpaperSway(imagePath)
		}
		return fmt.Errorf("unsupported Wayland compositor: %s", desktopEnv)
	}

	// X11
	switch {
	case strings.Contains(desktopEnv, "gnome") || strings.Contains(desktopEnv, "unity") || strings.Contains(desktopEnv, "cinnamon"):
		return l.setWallpaperGNOME(imagePath)
	case strings.Contains(desktopEnv, "kde"):
		return l.setWallpaperKDE(imagePath)
	case strings.Contains(desktopEnv, "xfce"):
		return l.setWallpaperXFCE(imagePath)
	default:
		return fmt.Errorf("unsupported X11 desktop environment: %s", desktopEnv)
	}
}

// setWallpaperStyle commits the display style for the current desktop
// environment. Environments without a per-user style knob reject with an
// error from the underlying tool.
func (l *linuxOS) setWallpaperStyle(style Style) error {
	desktopEnv := desktopEnvironment()
	switch {
	case strings.Contains(desktopEnv, "gnome") || strings.Contains(desktopEnv, "unity") ||
		strings.Contains(desktopEnv, "cinnamon") || strings.Contains(desktopEnv, "mutter"):
		cmd := exec.Command("gsettings", "set", "org.gnome.desktop.background", "picture-options", gnomePictureOption(style))
		return cmd.Run()
	case strings.Contains(desktopEnv, "xfce"):
		cmd := exec.Command("xfconf-query",
			"--channel", "xfce4-desktop",
			"--property", "/backdrop/screen0/monitor0/workspace0/image-style",
			"--set", xfceImageStyle(style))
		return cmd.Run()
	default:
		// KDE and Sway take the scaling mode together with the image; there
		// is no separate style commit.
		return nil
	}
}

// gnomePictureOption maps a Style to the org.gnome.desktop.background
// picture-options value.
func gnomePictureOption(style Style) string {
	switch style {
	case StyleFit:
		return "scaled"
	case StyleStretch:
		return "stretched"
	case StyleTile:
		return "wallpaper"
	case StyleCenter:
		return "centered"
	case StyleSpan:
		return "spanned"
	default:
		return "zoom"
	}
}

// xfceImageStyle maps a Style to the xfce4-desktop image-style value.
func xfceImageStyle(style Style) string {
	switch style {
	case StyleCenter:
		return "1"
	case StyleTile:
		return "2"
	case StyleStretch:
		return "3"
	case StyleFit:
		return "4"
	case StyleSpan:
		return "6"
	default: // fill
		return "5"
	}
}

// getDesktopDimension returns the desktop dimensions on Linux.
func (l *linuxOS) getDesktopDimension() (int, int, error) {
	return sysinfo.GetScreenDimensions()
}

// setWallpaperGNOME sets the wallpaper for GNOME-based desktop environments.
func (l *linuxOS) setWallpaperGNOME(imagePath string) error {
	cmd := exec.Command("gsettings", "set", "org.gnome.desktop.background", "picture-uri", fmt.Sprintf("file://%s", imagePath))
	return cmd.Run()
}

// setWallpaperKDE sets the wallpaper for KDE.
func (l *linuxOS) setWallpaperKDE(imagePath string) error {
	// Find the appropriate Plasma plugin
	plasmashellProc, err := exec.Command("pgrep", "-f", "plasmashell").Output()
	if err != nil {
		return fmt.Errorf("failed to find plasmashell process: %w", err)
	}

	plasmashellPID := strings.TrimSpace(string(plasmashellProc))

	dbusSendCmd := fmt.Sprintf(`dbus-send --session \
        --dest=org.kde.plasmashell \
        /PlasmaShell,%s \
        org.kde.PlasmaShell.evaluateScript \
        'string:
            var allDesktops = desktops();
            for (i=0;i<allDesktops.length;i++) {
                d = allDesktops[i];
                d.wallpaperPlugin = "org.kde.image";
                d.currentConfigGroup = Array("Wallpaper", "org.kde.image", "General");
                d.writeConfig("Image", "file://%s");
            }
        '`, plasmashellPID, imagePath)

	cmd := exec.Command("sh", "-c", dbusSendCmd)
	return cmd.Run()
}

// setWallpaperXFCE sets the wallpaper for XFCE.
func (l *linuxOS) setWallpaperXFCE(imagePath string) error {
	cmd := exec.Command("xfconf-query",
		"--channel", "xfce4-desktop",
		"--property", "/backdrop/screen0/monitor0/workspace0/last-image",
		"--set", imagePath)
	return cmd.Run()
}

// setWallpaperSway sets the wallpaper for Sway.
func (l *linuxOS) setWallpaperSway(imagePath string) error {
	cmd := exec.Command("swaybg", imagePath) // Make sure swaybg is installed
	return cmd.Run()
}
