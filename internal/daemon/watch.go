package daemon

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fenilsonani/autosorter/internal/config"
	"github.com/fsnotify/fsnotify"
)

// defaultSettle is how long the watch directory must stay quiet after a
// new file appears before the poller is woken, so that files still being
// written are not picked up half-way.
const defaultSettle = 2 * time.Second

// Watcher wakes the poller when files are added to the watch directory
type Watcher struct {
	watcher      *fsnotify.Watcher
	dir          string
	hiddenPrefix string
	settle       time.Duration
	logger       *slog.Logger
	wake         chan struct{}
	done         chan struct{}
}

// NewWatcher starts watching the configured directory
func NewWatcher(cfg *config.Config, logger *slog.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(cfg.WatchDir); err != nil {
		w.Close()
		return nil, err
	}

	return &Watcher{
		watcher:      w,
		dir:          filepath.Clean(cfg.WatchDir),
		hiddenPrefix: cfg.HiddenPrefix,
		settle:       defaultSettle,
		logger:       logger,
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
	}, nil
}

// Wake returns the channel signalled when new files have settled
func (w *Watcher) Wake() <-chan struct{} {
	return w.wake
}

// Start begins processing events in the background
func (w *Watcher) Start() {
	go w.eventLoop()
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) eventLoop() {
	var (
		timer   *time.Timer
		settled <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				timer.Reset(w.settle)
			}
			settled = timer.C
		case <-settled:
			settled = nil
			select {
			case w.wake <- struct{}{}:
			default:
				// a wake-up is already pending
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", "error", err)
		}
	}
}

// relevant reports whether event is a new or growing eligible file
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	if filepath.Dir(event.Name) != w.dir {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), w.hiddenPrefix) {
		return false
	}

	info, err := os.Lstat(event.Name)
	return err == nil && info.Mode().IsRegular()
}
