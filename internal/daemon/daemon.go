package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/fenilsonani/autosorter/internal/config"
	"github.com/fenilsonani/autosorter/internal/logging"
	"github.com/gofrs/flock"
)

// Daemon runs the poller as a long-lived process: it holds the
// single-instance lock and turns SIGINT/SIGTERM into cancellation.
type Daemon struct {
	config *config.Config
	logger *slog.Logger
	poller *Poller
	lock   *flock.Flock

	running atomic.Bool
	mu      sync.Mutex
	cancel  context.CancelFunc
}

// New creates a new daemon instance
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires a configuration")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	d := &Daemon{
		config: cfg,
		logger: logger,
		poller: NewPoller(cfg, logger),
	}
	if cfg.LockFile != "" {
		d.lock = flock.New(cfg.LockFile)
	}

	return d, nil
}

// Poller returns the daemon's poller
func (d *Daemon) Poller() *Poller {
	return d.poller
}

// Start runs the daemon until ctx is cancelled, Stop is called, or the
// process receives SIGINT or SIGTERM. It blocks for the daemon's lifetime.
func (d *Daemon) Start(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return errors.New("daemon already running")
	}
	defer d.running.Store(false)

	if err := d.acquireLock(); err != nil {
		return err
	}
	defer d.releaseLock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	d.setupSignalHandlers(ctx, cancel)

	if d.config.Watch {
		d.startWatcher(ctx)
	}

	d.logger.Info(fmt.Sprintf("Monitoring %s every %ds", d.config.WatchDir, d.config.PollInterval),
		"watch", d.config.Watch)

	return d.poller.Run(ctx)
}

// Stop asks a running daemon to exit after its current pass
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
}

// IsRunning returns whether the daemon is running
func (d *Daemon) IsRunning() bool {
	return d.running.Load()
}

// startWatcher wires filesystem notifications into the poller. Failure to
// watch is not fatal: the poller keeps its fixed interval.
func (d *Daemon) startWatcher(ctx context.Context) {
	w, err := NewWatcher(d.config, d.logger)
	if err != nil {
		d.logger.Warn("Filesystem watch unavailable, polling only", "error", err)
		return
	}

	d.poller.SetWake(w.Wake())
	w.Start()

	go func() {
		<-ctx.Done()
		if err := w.Stop(); err != nil {
			d.logger.Warn("Failed to stop watcher", "error", err)
		}
	}()
}

// setupSignalHandlers cancels the run context on SIGINT or SIGTERM
func (d *Daemon) setupSignalHandlers(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			d.logger.Info("Received shutdown signal", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
}

// acquireLock takes the single-instance lock, if one is configured
func (d *Daemon) acquireLock() error {
	if d.lock == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(d.lock.Path()), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another auto-sorter instance is already running (lock: %s)", d.lock.Path())
	}
	return nil
}

// releaseLock releases the single-instance lock
func (d *Daemon) releaseLock() {
	if d.lock == nil {
		return
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("Failed to release lock", "error", err)
	}
}
