package classifier

import (
	"testing"

	"github.com/fenilsonani/autosorter/internal/config"
)

func newDefault() *Classifier {
	return New(&config.Config{
		DefaultCategory: "Others",
		Categories:      config.DefaultCategories(),
	})
}

func TestClassifyConfiguredExtensions(t *testing.T) {
	c := newDefault()

	for _, category := range config.DefaultCategories() {
		for _, ext := range category.Extensions {
			if got := c.Classify(ext); got != category.Name {
				t.Errorf("Classify(%q) = %s, want %s", ext, got, category.Name)
			}
		}
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := newDefault()

	tests := []struct {
		ext  string
		want string
	}{
		{".JPG", "Pictures"},
		{".Png", "Pictures"},
		{".PDF", "Documents"},
		{".Mp3", "Audio"},
		{".MKV", "Video"},
		{".TAR.GZ", "Archives"},
		{".Sh", "Scripts"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := c.Classify(tt.ext); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.ext, got, tt.want)
			}
		})
	}
}

func TestClassifyUnknownFallsBackToDefault(t *testing.T) {
	c := newDefault()

	for _, ext := range []string{".xyz", "", ".", ".jpgx", "jpg", ".gz", ".tar"} {
		if got := c.Classify(ext); got != "Others" {
			t.Errorf("Classify(%q) = %s, want Others", ext, got)
		}
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	c := New(&config.Config{
		DefaultCategory: "Others",
		Categories: []config.Category{
			{Name: "First", Extensions: []string{".dat"}},
			{Name: "Second", Extensions: []string{".DAT", ".bin"}},
		},
	})

	if got := c.Classify(".dat"); got != "First" {
		t.Errorf("expected First, got %s", got)
	}
	if got := c.Classify(".bin"); got != "Second" {
		t.Errorf("expected Second, got %s", got)
	}
}

func TestClassifyEmptyDefault(t *testing.T) {
	c := New(&config.Config{})
	if got := c.Classify(".png"); got != config.DefaultCategoryName {
		t.Errorf("expected %s, got %s", config.DefaultCategoryName, got)
	}
}

func TestExtension(t *testing.T) {
	c := newDefault()

	tests := []struct {
		name string
		want string
	}{
		{"photo.png", ".png"},
		{"backup.tar.gz", ".tar.gz"},
		{"BACKUP.TAR.GZ", ".TAR.GZ"},
		{"notes.backup.gz", ".gz"},
		{"Makefile", ""},
		{".tar.gz", ".gz"},
		{"archive.v2.zip", ".zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Extension(tt.name); got != tt.want {
				t.Errorf("Extension(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassifyName(t *testing.T) {
	c := newDefault()

	tests := map[string]string{
		"photo.png":     "Pictures",
		"notes.txt":     "Documents",
		"script.py":     "Scripts",
		"unknown.xyz":   "Others",
		"backup.tar.gz": "Archives",
		"README":        "Others",
	}

	for name, want := range tests {
		if got := c.ClassifyName(name); got != want {
			t.Errorf("ClassifyName(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestCategories(t *testing.T) {
	c := newDefault()

	names := c.Categories()
	want := []string{"Pictures", "Documents", "Audio", "Video", "Archives", "Scripts", "Others"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: expected %s, got %s", i, want[i], names[i])
		}
	}
	if c.Default() != "Others" {
		t.Errorf("expected default Others, got %s", c.Default())
	}
}
