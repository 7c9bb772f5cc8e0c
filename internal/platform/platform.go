package platform

import (
	"os/user"
	"path/filepath"
	"runtime"
)

// Platform represents the operating system platform
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Unknown Platform = "unknown"
)

// Info contains platform-specific information and paths
type Info struct {
	OS           Platform
	HomeDir      string
	Username     string
	DownloadsDir string
	ConfigDir    string
}

// Detect returns the current platform
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// GetInfo returns platform-specific information
func GetInfo() (*Info, error) {
	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}

	homeDir := currentUser.HomeDir
	username := currentUser.Username

	switch Detect() {
	case MacOS:
		return getMacOSInfo(homeDir, username), nil
	case Linux:
		return getLinuxInfo(homeDir, username), nil
	default:
		// Other systems still get a usable Downloads guess
		return &Info{
			OS:           Unknown,
			HomeDir:      homeDir,
			Username:     username,
			DownloadsDir: filepath.Join(homeDir, "Downloads"),
			ConfigDir:    filepath.Join(homeDir, ".config"),
		}, nil
	}
}
