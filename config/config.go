// Package config resolves the per-user directories and file paths used by
// Easel. All state is scoped to the current user: settings live under the
// user's home directory, the wallpaper cache artifact under the user's
// cache directory.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// GetPath returns the path to the user's config directory.
func GetPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Error getting user home directory: %v", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName))
}

// GetSettingsFilename returns the path to the user's settings file.
func GetSettingsFilename() string {
	return filepath.Join(GetPath(), SettingsFile)
}

// GetCacheDir returns the per-user cache directory for the wallpaper artifact.
func GetCacheDir() string {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		log.Fatalf("Error getting user cache directory: %v", err)
	}
	return filepath.Join(userCacheDir, strings.ToLower(AppName))
}

// GetCachePath returns the path of the converted wallpaper artifact.
func GetCachePath() string {
	return filepath.Join(GetCacheDir(), CacheFile)
}
