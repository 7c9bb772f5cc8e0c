package scanner

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/fenilsonani/autosorter/internal/config"
	"github.com/fenilsonani/autosorter/internal/testutil"
)

func newScanner(dir string) *Scanner {
	return New(&config.Config{WatchDir: dir, HiddenPrefix: "."})
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestListEligibleOnly(t *testing.T) {
	f := testutil.NewFixture(t)

	f.CreateFiles("b.txt", "a.png", "c.py")
	f.CreateFile(".hidden", []byte("secret"))
	f.CreateFile(".DS_Store", []byte{0})
	f.CreateDir("Pictures")
	f.CreateFile(filepath.Join("sub", "nested.txt"), []byte("nested"))

	entries, err := newScanner(f.WatchDir).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	got := names(entries)
	want := []string{"a.png", "b.txt", "c.py"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	for _, e := range entries {
		if e.Path != filepath.Join(f.WatchDir, e.Name) {
			t.Errorf("unexpected path %s for %s", e.Path, e.Name)
		}
	}
}

func TestListSkipsSymlinks(t *testing.T) {
	f := testutil.NewFixture(t)

	target := f.CreateFile(filepath.Join("real", "data.txt"), []byte("data"))
	f.CreateSymlink(target, "link.txt")
	f.CreateSymlink(f.Path("real"), "dirlink")
	f.CreateFiles("plain.txt")

	entries, err := newScanner(f.WatchDir).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	got := names(entries)
	if len(got) != 1 || got[0] != "plain.txt" {
		t.Errorf("expected only plain.txt, got %v", got)
	}
}

func TestListCustomHiddenPrefix(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFiles("~lock.docx", ".profile", "keep.txt")

	s := New(&config.Config{WatchDir: f.WatchDir, HiddenPrefix: "~"})
	entries, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	got := names(entries)
	if len(got) != 2 || got[0] != ".profile" || got[1] != "keep.txt" {
		t.Errorf("expected [.profile keep.txt], got %v", got)
	}
}

func TestListEmptyDir(t *testing.T) {
	f := testutil.NewFixture(t)

	entries, err := newScanner(f.WatchDir).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", names(entries))
	}
}

func TestListMissingDir(t *testing.T) {
	f := testutil.NewFixture(t)

	_, err := newScanner(filepath.Join(f.RootDir, "missing")).List()
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.Is(err, ErrWatchDirMissing) {
		t.Errorf("expected ErrWatchDirMissing, got %v", err)
	}
}

func TestListWatchDirIsFile(t *testing.T) {
	f := testutil.NewFixture(t)
	file := f.CreateFile("plain.txt", []byte("x"))

	_, err := newScanner(file).List()
	if err == nil {
		t.Fatal("expected error when watch dir is a file")
	}
	if errors.Is(err, ErrWatchDirMissing) {
		t.Errorf("did not expect ErrWatchDirMissing, got %v", err)
	}
}
