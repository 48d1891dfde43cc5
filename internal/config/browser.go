package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultHistoryPath returns the location of the default Chrome profile's
// History database for the current platform.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "History"
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "Google", "Chrome", "User Data", "Default", "History")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Default", "History")
	default:
		return filepath.Join(home, ".config", "google-chrome", "Default", "History")
	}
}
