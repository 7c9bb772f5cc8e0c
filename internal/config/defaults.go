package config

import (
	"path/filepath"

	"github.com/fenilsonani/autosorter/internal/platform"
)

const (
	// DefaultPollInterval is the pause between passes, in seconds
	DefaultPollInterval = 60
	// DefaultCategoryName collects every extension no category claims
	DefaultCategoryName = "Others"
	// DefaultLogFileName is the append-only log kept next to the config
	DefaultLogFileName = "auto_sorter.log"
)

// DefaultCategories returns the built-in category table. Order matters:
// the first category claiming an extension wins.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Pictures", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg"}},
		{Name: "Documents", Extensions: []string{".pdf", ".docx", ".txt", ".pptx", ".xlsx", ".csv", ".md"}},
		{Name: "Audio", Extensions: []string{".mp3", ".wav", ".aac", ".flac"}},
		{Name: "Video", Extensions: []string{".mp4", ".mov", ".avi", ".mkv"}},
		{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z", ".tar.gz"}},
		{Name: "Scripts", Extensions: []string{".py", ".js", ".sh", ".bat"}},
	}
}

// GetDefault returns the default configuration
func GetDefault() *Config {
	cfg := &Config{
		PollInterval:    DefaultPollInterval,
		DefaultCategory: DefaultCategoryName,
		HiddenPrefix:    ".",
		Watch:           false, // Plain polling unless explicitly enabled
		Categories:      DefaultCategories(),
		Log: LogConfig{
			File:    DefaultLogFileName,
			Level:   "info",
			Console: true,
		},
	}

	if info, err := platform.GetInfo(); err == nil {
		configDir := configDirFor(info)
		cfg.WatchDir = info.DownloadsDir
		cfg.Log.File = filepath.Join(configDir, DefaultLogFileName)
		cfg.LockFile = filepath.Join(configDir, "autosorter.lock")
	}

	return cfg
}
