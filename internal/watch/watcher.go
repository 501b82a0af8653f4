// Package watch keeps a live catalog snapshot, rebuilding it when the
// catalog file or a pack changes (or on a timer for the database source)
// and notifying subscribers of each new version.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"golang.org/x/sync/singleflight"

	"github.com/gzhole/pegbot/internal/catalog"
)

// LoadFunc builds a fresh snapshot from wherever the catalog lives.
type LoadFunc func(ctx context.Context) (*catalog.Snapshot, error)

// Listener is called with every new snapshot.
type Listener func(*catalog.Snapshot)

// FileLoader loads the catalog file and its packs.
func FileLoader(catalogPath, packsDir string, requireOverride *bool) LoadFunc {
	return func(context.Context) (*catalog.Snapshot, error) {
		snap, _, err := catalog.LoadSnapshot(catalogPath, packsDir, requireOverride)
		return snap, err
	}
}

type Watcher struct {
	load   LoadFunc
	logger *slog.Logger

	mu        sync.RWMutex
	snapshot  *catalog.Snapshot
	version   int64
	listeners []*subscriber

	group  singleflight.Group
	packs  *fsnotify.Watcher
	done   chan struct{}
	closed bool
	once   sync.Once
}

// New loads the first snapshot. The watcher does nothing further until
// WatchFiles or Poll is started.
func New(ctx context.Context, load LoadFunc, logger *slog.Logger) (*Watcher, error) {
	if load == nil {
		return nil, fmt.Errorf("watch: load function is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{load: load, logger: logger, done: make(chan struct{})}
	if err := w.reload(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

// Snapshot returns the current snapshot. Snapshots are immutable, so the
// caller may keep using it after a reload.
func (w *Watcher) Snapshot() *catalog.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot
}

// Subscribe registers fn and immediately delivers the current snapshot to it.
// Each listener runs on its own goroutine and sees versions in increasing
// order; when reloads outpace a slow listener it skips straight to the
// newest snapshot.
func (w *Watcher) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	sub := &subscriber{fn: fn}
	w.mu.Lock()
	w.listeners = append(w.listeners, sub)
	snap := w.snapshot
	w.mu.Unlock()
	w.offer(sub, snap)
}

// Reload rebuilds the snapshot now and notifies subscribers. On error the
// previous snapshot stays in place. Concurrent calls share one load.
func (w *Watcher) Reload(ctx context.Context) error {
	_, err, _ := w.group.Do("reload", func() (any, error) {
		if err := w.reload(ctx); err != nil {
			return nil, err
		}
		w.notify()
		return nil, nil
	})
	return err
}

func (w *Watcher) reload(ctx context.Context) error {
	snap, err := w.load(ctx)
	if err != nil {
		return fmt.Errorf("watch: reload: %w", err)
	}

	w.mu.Lock()
	w.version++
	snap.Version = w.version
	w.snapshot = snap
	w.mu.Unlock()

	w.logger.Info("catalog reloaded",
		"version", snap.Version,
		"source", snap.Source,
		"keywords", len(snap.Catalog.Primary()),
		"penalty_keywords", len(snap.Catalog.Penalty()),
		"weights", snap.Weights.Len())
	return nil
}

func (w *Watcher) notify() {
	w.mu.RLock()
	snap := w.snapshot
	listeners := append([]*subscriber(nil), w.listeners...)
	w.mu.RUnlock()
	for _, sub := range listeners {
		w.offer(sub, snap)
	}
}

// subscriber holds at most one pending snapshot for a listener.
type subscriber struct {
	fn Listener

	mu        sync.Mutex
	pending   *catalog.Snapshot
	delivered int64
	running   bool
}

// offer queues snap for sub, replacing an older pending snapshot, and
// starts a delivery goroutine if none is running.
func (w *Watcher) offer(sub *subscriber, snap *catalog.Snapshot) {
	sub.mu.Lock()
	if sub.pending == nil || snap.Version > sub.pending.Version {
		sub.pending = snap
	}
	if sub.running {
		sub.mu.Unlock()
		return
	}
	sub.running = true
	sub.mu.Unlock()
	go w.drain(sub)
}

func (w *Watcher) drain(sub *subscriber) {
	for {
		sub.mu.Lock()
		snap := sub.pending
		sub.pending = nil
		if snap == nil {
			sub.running = false
			sub.mu.Unlock()
			return
		}
		if snap.Version <= sub.delivered {
			sub.mu.Unlock()
			continue
		}
		sub.delivered = snap.Version
		sub.mu.Unlock()
		w.deliver(sub.fn, snap)
	}
}

func (w *Watcher) deliver(fn Listener, snap *catalog.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("catalog listener panic", "panic", r)
		}
	}()
	fn(snap)
}

func (w *Watcher) isClosed() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.closed
}

// WatchFiles reloads on changes to the catalog file (through viper's config
// watcher) and to YAML files in packsDir. Either path may be empty; a
// catalog file that does not exist yet is not watched.
func (w *Watcher) WatchFiles(catalogPath, packsDir string) error {
	if catalogPath != "" {
		if _, err := os.Stat(catalogPath); err == nil {
			v := viper.New()
			v.SetConfigFile(catalogPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("watch: read catalog: %w", err)
			}
			v.OnConfigChange(func(evt fsnotify.Event) {
				if w.isClosed() {
					return
				}
				if err := w.Reload(context.Background()); err != nil {
					w.logger.Error("catalog reload failed", "file", evt.Name, "error", err)
				}
			})
			v.WatchConfig()
		} else {
			w.logger.Warn("catalog file not found, not watching it", "path", catalogPath)
		}
	}

	if packsDir == "" {
		return nil
	}
	if _, err := os.Stat(packsDir); err != nil {
		w.logger.Warn("packs directory not found, not watching it", "path", packsDir)
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := fsw.Add(packsDir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch: add %s: %w", packsDir, err)
	}
	w.packs = fsw
	go w.processPackEvents()
	return nil
}

func (w *Watcher) processPackEvents() {
	for {
		select {
		case evt, ok := <-w.packs.Events:
			if !ok {
				return
			}
			if !isPackFile(evt.Name) {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) &&
				!evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
				continue
			}
			if err := w.Reload(context.Background()); err != nil {
				w.logger.Error("pack reload failed", "file", evt.Name, "error", err)
			}
		case err, ok := <-w.packs.Errors:
			if !ok {
				return
			}
			w.logger.Error("pack watcher error", "error", err)
		}
	}
}

// Poll reloads every interval until ctx is done or the watcher is closed.
func (w *Watcher) Poll(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.done:
				return
			case <-ticker.C:
				if err := w.Reload(ctx); err != nil {
					w.logger.Error("catalog poll failed", "error", err)
				}
			}
		}
	}()
}

// Close stops the pack watcher and polling. Viper keeps its file watch
// until the process exits, but its callbacks become no-ops.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.done)
		if w.packs != nil {
			err = w.packs.Close()
		}
	})
	return err
}

func isPackFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
