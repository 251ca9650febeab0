// Package watch re-validates map files as they change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tilecheck/internal/checker"
	"github.com/cory-johannsen/tilecheck/internal/tilemap"
)

// FileChecker checks one map file.
type FileChecker interface {
	CheckFile(ctx context.Context, path string) (checker.Report, error)
}

// ReportFunc receives every report the watcher produces.
type ReportFunc func(checker.Report)

// Watcher checks every map in a directory once, then again each time a map is
// created or written. It implements server.Service.
type Watcher struct {
	dir      string
	ext      string
	debounce time.Duration
	check    FileChecker
	onReport ReportFunc
	logger   *zap.Logger

	ready     chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
	fsw       *fsnotify.Watcher
}

// New creates a Watcher for map files with extension ext in dir.
//
// Precondition: check and logger must be non-nil; debounce must not be negative.
func New(dir, ext string, debounce time.Duration, check FileChecker, onReport ReportFunc, logger *zap.Logger) *Watcher {
	if onReport == nil {
		onReport = func(checker.Report) {}
	}
	return &Watcher{
		dir:      dir,
		ext:      ext,
		debounce: debounce,
		check:    check,
		onReport: onReport,
		logger:   logger,
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the directory is being watched and the initial pass is done.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Start watches until ctx is cancelled or the underlying watcher fails.
//
// Postcondition: Returns ctx.Err() on cancellation, or the watcher failure.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	w.mu.Lock()
	w.fsw = fsw
	w.mu.Unlock()
	defer w.Stop()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.logger.Info("watching maps", zap.String("dir", w.dir), zap.Duration("debounce", w.debounce))

	w.initialPass(ctx)
	close(w.ready)

	due := make(chan string)
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !tilemap.HasExtension(ev.Name, w.ext) {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				if t, ok := pending[ev.Name]; ok {
					t.Stop()
					delete(pending, ev.Name)
				}
				w.logger.Info("map removed", zap.String("path", ev.Name))
			case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
				w.schedule(ctx, ev.Name, pending, due)
			}

		case path := <-due:
			delete(pending, path)
			w.checkOne(ctx, path)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher: %w", err)
		}
	}
}

// Stop closes the underlying watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	fsw := w.fsw
	w.mu.Unlock()
	if fsw == nil {
		return nil
	}
	var err error
	w.closeOnce.Do(func() { err = fsw.Close() })
	return err
}

func (w *Watcher) schedule(ctx context.Context, path string, pending map[string]*time.Timer, due chan<- string) {
	if w.debounce == 0 {
		w.checkOne(ctx, path)
		return
	}
	if t, ok := pending[path]; ok {
		t.Stop()
	}
	pending[path] = time.AfterFunc(w.debounce, func() {
		select {
		case due <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) initialPass(ctx context.Context) {
	paths, err := tilemap.ListMapFiles(w.dir, w.ext)
	if err != nil {
		w.logger.Warn("initial pass found no maps", zap.String("dir", w.dir), zap.Error(err))
		return
	}
	for _, p := range paths {
		w.checkOne(ctx, p)
	}
}

func (w *Watcher) checkOne(ctx context.Context, path string) {
	rep, err := w.check.CheckFile(ctx, filepath.Clean(path))
	if err != nil {
		w.logger.Error("checking map", zap.String("path", path), zap.Error(err))
		return
	}
	w.onReport(rep)
}
