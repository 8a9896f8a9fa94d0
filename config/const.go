package config

import "strings"

// AppVersion is the version of the application.
var AppVersion string // Or get it from version.txt during build

// AppName is the name of the application.
const AppName = "Easel"

// SettingsFile is the name of the persisted settings document.
const SettingsFile = "settings.json"

// CacheFile is the name of the converted wallpaper artifact.
const CacheFile = "wallpaper.bmp"

// HistoryFile is the name of the rotation history database.
const HistoryFile = "history.db"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"
