package daemon

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fenilsonani/autosorter/internal/testutil"
)

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestDaemonStartStop(t *testing.T) {
	f := testutil.NewFixture(t)
	cfg := newTestConfig(f)
	logger, logs := testutil.NewLogger()

	d, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	d.Poller().interval = 10 * time.Millisecond

	f.CreateFiles("song.flac")

	done := make(chan error, 1)
	go func() { done <- d.Start(context.Background()) }()

	if !eventually(t, 2*time.Second, func() bool {
		return f.FileExists(f.Path(filepath.Join("Audio", "song.flac")))
	}) {
		t.Fatal("daemon did not sort the file")
	}
	if !d.IsRunning() {
		t.Error("expected daemon to report running")
	}

	d.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}

	if d.IsRunning() {
		t.Error("expected daemon to report stopped")
	}

	out := logs.String()
	for _, want := range []string{"Monitoring " + f.WatchDir + " every 60s", "Shutting down auto-sorter"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got:\n%s", want, out)
		}
	}
}

func TestDaemonSingleInstance(t *testing.T) {
	f := testutil.NewFixture(t)
	cfg := newTestConfig(f)
	logger, _ := testutil.NewLogger()

	first, _ := New(cfg, logger)
	first.Poller().interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- first.Start(ctx) }()

	if !eventually(t, 2*time.Second, first.IsRunning) {
		t.Fatal("first daemon did not start")
	}
	// let the first daemon take the lock
	if !eventually(t, 2*time.Second, func() bool { return first.Poller().State() == StateIdle }) {
		t.Fatal("first daemon never completed a pass")
	}

	second, _ := New(cfg, logger)
	err := second.Start(context.Background())
	if err == nil || !strings.Contains(err.Error(), "already running") {
		t.Errorf("expected lock error for second instance, got %v", err)
	}

	cancel()
	<-done

	// the lock is released on exit
	third, _ := New(cfg, logger)
	third.Poller().interval = 10 * time.Millisecond
	ctx3, cancel3 := context.WithCancel(context.Background())
	cancel3()
	if err := third.Start(ctx3); err != nil {
		t.Errorf("expected lock to be free after shutdown, got %v", err)
	}
}

func TestDaemonWithWatch(t *testing.T) {
	f := testutil.NewFixture(t)
	cfg := newTestConfig(f)
	cfg.Watch = true
	logger, _ := testutil.NewLogger()

	d, _ := New(cfg, logger)
	d.Poller().interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	if !eventually(t, 2*time.Second, func() bool { return d.Poller().State() == StateIdle }) {
		t.Fatal("daemon never went idle")
	}

	f.CreateFiles("clip.mkv")

	// default settle is 2s, so allow a little more
	if !eventually(t, 5*time.Second, func() bool {
		return f.FileExists(f.Path(filepath.Join("Video", "clip.mkv")))
	}) {
		t.Error("watch mode did not trigger an early pass")
	}

	cancel()
	<-done
}

func TestDaemonDoubleStart(t *testing.T) {
	f := testutil.NewFixture(t)
	cfg := newTestConfig(f)
	cfg.LockFile = ""
	logger, _ := testutil.NewLogger()

	d, _ := New(cfg, logger)
	d.Poller().interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	if !eventually(t, 2*time.Second, d.IsRunning) {
		t.Fatal("daemon did not start")
	}
	if err := d.Start(ctx); err == nil {
		t.Error("expected error starting a running daemon")
	}

	cancel()
	<-done
}
