//go:build windows
// +build windows

package slideshow

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows/registry"

	"github.com/dixieflatline76/Easel/pkg/sysinfo"
)

var (
	user32               = syscall.NewLazyDLL("user32.dll")
	systemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

// Windows API constants (defined manually)
const (
	SPISetDeskWallpaper = 0x0014
	SPIFUpdateIniFile   = 0x01
	SPIFSendChange      = 0x02
)

// desktopKey is the registry key holding the per-user wallpaper style.
const desktopKey = `Control Panel\Desktop`

// windowsOS implements the OS interface for Windows.
type windowsOS struct{}

// getOS returns a new instance of the windowsOS struct.
func getOS() OS {
	return &windowsOS{}
}

// setWallpaper sets the wallpaper to the given image file path.
func (w *windowsOS) setWallpaper(imagePath string) error {
	imagePathUTF16, err := syscall.UTF16PtrFromString(imagePath)
	if err != nil {
		return err
	}

	ret, _, err := systemParametersInfo.Call(
		uintptr(SPISetDeskWallpaper),
		uintptr(0),
		uintptr(unsafe.Pointer(imagePathUTF16)),
		uintptr(SPIFUpdateIniFile|SPIFSendChange),
	)
	if ret == 0 {
		return err
	}

	return nil
}

// setWallpaperStyle writes the WallpaperStyle/TileWallpaper value pair to
// the current user's desktop registry key.
func (w *windowsOS) setWallpaperStyle(style Style) error {
	styleValue, tileValue, err := styleRegistryValues(style)
	if err != nil {
		return err
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, desktopKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening desktop registry key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue("WallpaperStyle", styleValue); err != nil {
		return fmt.Errorf("setting WallpaperStyle: %w", err)
	}
	if err := key.SetStringValue("TileWallpaper", tileValue); err != nil {
		return fmt.Errorf("setting TileWallpaper: %w", err)
	}
	return nil
}

// styleRegistryValues maps a Style to the documented Windows registry
// value pair.
func styleRegistryValues(style Style) (string, string, error) {
	switch style {
	case StyleFill:
		return "10", "0", nil
	case StyleFit:
		return "6", "0", nil
	case StyleStretch:
		return "2", "0", nil
	case StyleTile:
		return "0", "1", nil
	case StyleCenter:
		return "0", "0", nil
	case StyleSpan:
		return "22", "0", nil
	}
	return "", "", fmt.Errorf("unknown wallpaper style %q", style)
}

// getDesktopDimension returns the desktop dimension (width and height) in pixels.
func (w *windowsOS) getDesktopDimension() (int, int, error) {
	return sysinfo.GetScreenDimensions()
}
