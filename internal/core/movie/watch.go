// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Refresher reloads the catalogue. [Service] is the production implementation.
type Refresher interface {
	Refresh(context context.Context) (Snapshot, error)
}

// Watcher refreshes the catalogue whenever a local CSV file changes.
//
// The parent directory is watched rather than the file itself so that editors
// which replace the file on save keep triggering events.
type Watcher struct {
	watcher   *fsnotify.Watcher
	target    string
	refresher Refresher
	debounce  time.Duration
	logger    *slog.Logger

	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path. Remote locations are rejected.
func NewWatcher(path string, refresher Refresher, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("movie: watcher needs a local path")
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("movie: resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("movie: create watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(target)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("movie: watch %s: %w", filepath.Dir(target), err)
	}

	return &Watcher{
		watcher:   fsWatcher,
		target:    target,
		refresher: refresher,
		debounce:  debounce,
		logger:    logger,
		closeCh:   make(chan struct{}),
	}, nil
}

// Close stops the watcher; Run returns shortly after.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Run blocks, refreshing once per burst of changes, until ctx is done or Close is called.
func (w *Watcher) Run(context context.Context) {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Info("movie_csv_changed", slog.String("path", w.target))
			if _, err := w.refresher.Refresh(context); err != nil {
				w.logger.Warn("movie_watch_refresh_failed", slog.Any("error", err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("movie_watch_error", slog.Any("error", err))

		case <-w.closeCh:
			return

		case <-context.Done():
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == w.target
}
