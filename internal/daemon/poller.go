package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fenilsonani/autosorter/internal/classifier"
	"github.com/fenilsonani/autosorter/internal/config"
	"github.com/fenilsonani/autosorter/internal/mover"
	"github.com/fenilsonani/autosorter/internal/scanner"
	"github.com/google/uuid"
)

// State is the poller's position in its scan/sleep cycle
type State int32

const (
	StateScanning State = iota
	StateIdle
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// PassResult is the outcome of one scan-and-move pass over the watch dir
type PassResult struct {
	ID       string
	Started  time.Time
	Duration time.Duration
	Dir      string
	Eligible int
	Moved    []mover.Result
	Failed   []*mover.MoveError
	Err      error // pass-level failure; per-file failures are in Failed
}

// MovedBytes returns the total size of the files moved in the pass
func (r *PassResult) MovedBytes() int64 {
	var total int64
	for _, moved := range r.Moved {
		total += moved.Size
	}
	return total
}

// fileMover is the part of mover.Mover the poller depends on
type fileMover interface {
	Move(path string) (*mover.Result, *mover.MoveError)
}

// Poller scans the watch directory, moves every eligible file, then sleeps
// for the poll interval, until its context is cancelled.
type Poller struct {
	scanner  *scanner.Scanner
	logger   *slog.Logger
	interval time.Duration
	wake     <-chan struct{}
	state    atomic.Int32

	// newMover returns the mover for one pass, logging to logger
	newMover func(logger *slog.Logger) fileMover
}

// NewPoller creates a poller for cfg
func NewPoller(cfg *config.Config, logger *slog.Logger) *Poller {
	m := mover.New(classifier.New(cfg), logger)

	return &Poller{
		scanner:  scanner.New(cfg),
		logger:   logger,
		interval: cfg.Interval(),
		newMover: func(l *slog.Logger) fileMover { return m.WithLogger(l) },
	}
}

// SetWake registers a channel that ends the idle period early. Must be
// called before Run.
func (p *Poller) SetWake(wake <-chan struct{}) {
	p.wake = wake
}

// State returns the current state
func (p *Poller) State() State {
	return State(p.state.Load())
}

// Pass performs one scan over the watch directory. It never fails: a
// missing directory or an unexpected panic is logged and reported in
// PassResult.Err, and each file that cannot be moved is recorded in
// PassResult.Failed while the remaining files are still attempted.
func (p *Poller) Pass() (result *PassResult) {
	result = &PassResult{
		ID:      uuid.NewString(),
		Started: time.Now(),
		Dir:     p.scanner.Dir(),
	}
	logger := p.logger.With("pass", result.ID)

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("scan pass panicked: %v", r)
			logger.Error("Unexpected error during scan", "error", result.Err)
		}
		result.Duration = time.Since(result.Started)
	}()

	entries, err := p.scanner.List()
	if err != nil {
		result.Err = err
		if errors.Is(err, scanner.ErrWatchDirMissing) {
			logger.Error("Watch folder does not exist", "dir", result.Dir)
		} else {
			logger.Error("Failed to list watch folder", "dir", result.Dir, "error", err)
		}
		return result
	}

	result.Eligible = len(entries)
	m := p.newMover(logger)

	for _, entry := range entries {
		moved, moveErr := m.Move(entry.Path)
		if moveErr != nil {
			result.Failed = append(result.Failed, moveErr)
			continue
		}
		result.Moved = append(result.Moved, *moved)
	}

	if result.Eligible > 0 {
		logger.Info("Scan complete",
			"moved", len(result.Moved),
			"failed", len(result.Failed),
			"duration", time.Since(result.Started).Round(time.Millisecond))
	}

	return result
}

// Run alternates between a pass and an idle period until ctx is
// cancelled. Cancellation is only observed between passes, so a pass in
// progress always completes.
func (p *Poller) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		p.state.Store(int32(StateScanning))
		p.Pass()

		p.state.Store(int32(StateIdle))
		if !p.idle(ctx) {
			break
		}
	}

	p.logger.Info("Shutting down auto-sorter")
	return nil
}

// idle waits for the poll interval or a wake-up; false means cancelled
func (p *Poller) idle(ctx context.Context) bool {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	case <-p.wake:
		p.logger.Debug("New files detected, scanning early")
		return true
	}
}
