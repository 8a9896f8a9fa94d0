package slideshow

// OS is an interface for abstracting OS-specific wallpaper operations.
// The concrete implementation is selected at build time by getOS(); tests
// substitute a mock.
type OS interface {
	// setWallpaper commits the image at the given path as the desktop
	// background for the current user.
	setWallpaper(imagePath string) error
	// setWallpaperStyle commits the display style configuration. The style
	// must be committed before (or together with) the image so a new image
	// renders with the intended fit mode.
	setWallpaperStyle(style Style) error
	// getDesktopDimension returns the primary screen size in pixels.
	getDesktopDimension() (int, int, error)
}
