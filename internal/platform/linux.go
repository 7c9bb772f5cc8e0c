package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// getLinuxInfo returns platform-specific information for Linux
func getLinuxInfo(homeDir, username string) *Info {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = filepath.Join(homeDir, ".config")
	}

	return &Info{
		OS:           Linux,
		HomeDir:      homeDir,
		Username:     username,
		DownloadsDir: linuxDownloadsDir(homeDir, configDir),
		ConfigDir:    configDir,
	}
}

// linuxDownloadsDir honours XDG_DOWNLOAD_DIR from the environment or
// user-dirs.dirs, falling back to ~/Downloads.
func linuxDownloadsDir(homeDir, configDir string) string {
	if dir := os.Getenv("XDG_DOWNLOAD_DIR"); dir != "" {
		return expandHome(dir, homeDir)
	}

	data, err := os.ReadFile(filepath.Join(configDir, "user-dirs.dirs"))
	if err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			value, ok := strings.CutPrefix(line, "XDG_DOWNLOAD_DIR=")
			if !ok {
				continue
			}
			value = strings.Trim(value, `"`)
			if value != "" {
				return expandHome(value, homeDir)
			}
		}
	}

	return filepath.Join(homeDir, "Downloads")
}

func expandHome(path, homeDir string) string {
	if rest, ok := strings.CutPrefix(path, "$HOME"); ok {
		return filepath.Join(homeDir, rest)
	}
	return path
}
