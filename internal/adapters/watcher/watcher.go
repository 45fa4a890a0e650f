// Package watcher watches directories for boundary geometry changes
// and delivers debounced reload events.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Operation classifies what happened to a watched file.
type Operation int

const (
	OpCreate Operation = iota
	OpModify
	OpDelete
)

func (o Operation) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpModify:
		return "modify"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event is one debounced change to a boundary file.
type Event struct {
	Path      string
	Operation Operation
}

// Handler is called once per settled event.
type Handler func(ctx context.Context, event Event) error

// Config holds watcher configuration.
type Config struct {
	Paths    []string
	Debounce time.Duration
}

// Watcher coalesces bursts of file system notifications into single
// events. Editors and sync tools tend to write a boundary file several
// times in quick succession; the handler only fires after the file has
// been quiet for the debounce window.
type Watcher struct {
	fs       *fsnotify.Watcher
	handler  Handler
	logger   *slog.Logger
	paths    []string
	debounce time.Duration

	mu      sync.Mutex
	settled map[string]*pending
}

// pending tracks the coalesced operation and the timer that will fire
// once the path goes quiet.
type pending struct {
	op    Operation
	timer *time.Timer
}

// New creates a watcher over the configured directories.
func New(cfg Config, handler Handler, logger *slog.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}

	return &Watcher{
		fs:       fs,
		handler:  handler,
		logger:   logger,
		paths:    cfg.Paths,
		debounce: cfg.Debounce,
		settled:  make(map[string]*pending),
	}, nil
}

// Start registers the watch paths and begins dispatching events. Paths
// that cannot be watched are logged and skipped so a missing directory
// does not keep the server from coming up.
func (w *Watcher) Start(ctx context.Context) error {
	for _, path := range w.paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			w.logger.Warn("invalid watch path", "path", path, "error", err)
			continue
		}
		if err := w.fs.Add(abs); err != nil {
			w.logger.Warn("failed to watch path", "path", abs, "error", err)
			continue
		}
		w.logger.Info("watching directory", "path", abs)
	}

	go w.run(ctx)
	return nil
}

// Stop closes the underlying watcher and cancels pending timers.
func (w *Watcher) Stop() error {
	err := w.fs.Close()

	w.mu.Lock()
	for path, p := range w.settled {
		p.timer.Stop()
		delete(w.settled, path)
	}
	w.mu.Unlock()

	return err
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.observe(ctx, event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// observe folds a raw notification into the pending state for its
// path and arms (or re-arms) the debounce timer.
func (w *Watcher) observe(ctx context.Context, event fsnotify.Event) {
	if !isBoundaryFile(event.Name) {
		return
	}

	op := classify(event.Op)
	w.logger.Debug("file event", "path", event.Name, "op", op.String())

	w.mu.Lock()
	defer w.mu.Unlock()

	if p, ok := w.settled[event.Name]; ok {
		p.op = mergeOps(p.op, op)
		p.timer.Reset(w.debounce)
		return
	}

	p := &pending{op: op}
	path := event.Name
	p.timer = time.AfterFunc(w.debounce, func() {
		w.fire(ctx, path)
	})
	w.settled[path] = p
}

// fire dispatches the settled event for the path.
func (w *Watcher) fire(ctx context.Context, path string) {
	w.mu.Lock()
	p, ok := w.settled[path]
	if ok {
		delete(w.settled, path)
	}
	w.mu.Unlock()
	if !ok {
		return
	}

	event := Event{Path: path, Operation: p.op}
	w.logger.Info("file settled", "path", path, "operation", p.op.String())

	if err := w.handler(ctx, event); err != nil {
		w.logger.Error("handler error",
			"path", path,
			"operation", p.op.String(),
			"error", err,
		)
	}
}

// mergeOps coalesces two operations on the same path. A delete wins
// unless the file was recreated afterwards.
func mergeOps(old, next Operation) Operation {
	switch {
	case old == OpDelete && next == OpCreate:
		return OpCreate
	case next == OpDelete:
		return OpDelete
	default:
		return old
	}
}

// classify maps an fsnotify operation onto ours. Renames count as
// deletes because the file is gone from its watched location.
func classify(op fsnotify.Op) Operation {
	switch {
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return OpDelete
	case op.Has(fsnotify.Create):
		return OpCreate
	default:
		return OpModify
	}
}

// isBoundaryFile reports whether the path names a boundary geometry
// file.
func isBoundaryFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".geojson") || strings.HasSuffix(lower, ".json")
}
