package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{"negative", -1, "0 B"},
		{"empty pass", 0, "0 B"},
		{"small text file", 100, "100 B"},
		{"just under a kilobyte", KB - 1, "1023 B"},
		{"exactly a kilobyte", KB, "1.00 KB"},
		{"moved total of a photo and a note", 2148, "2.10 KB"},
		{"song", 5 * MB, "5.00 MB"},
		{"video", 3 * GB / 2, "1.50 GB"},
		{"disk image", 2 * TB, "2.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Errorf("FormatBytes(%d) = %s, want %s", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	os.WriteFile(a, []byte("abc"), 0644)
	os.WriteFile(b, []byte("abd"), 0644)

	hashA, err := HashFile(a)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	// SHA-256 of "abc"
	if hashA != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("unexpected digest %s", hashA)
	}

	hashB, _ := HashFile(b)
	if hashA == hashB {
		t.Error("different contents must hash differently")
	}

	if _, err := HashFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
