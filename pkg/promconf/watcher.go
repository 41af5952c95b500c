// SPDX-License-Identifier: GPL-3.0-or-later

package promconf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/netdata/netdata/go/promtext/logger"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher reloads a configuration file when it changes on disk.
// Rapid events are collapsed, and a reload whose content is byte-identical
// to the last applied one is ignored.
type Watcher struct {
	*logger.Logger

	Path     string
	Debounce time.Duration

	lastHash uint64
}

func NewWatcher(path string) *Watcher {
	return &Watcher{
		Logger:   logger.New().With("component", "config watcher"),
		Path:     path,
		Debounce: defaultDebounce,
	}
}

// Run loads the file, hands it to apply and then calls apply again after
// every change until ctx is done. Invalid files are logged and skipped.
// An error loading the initial file is returned.
func (w *Watcher) Run(ctx context.Context, apply func(*Config)) error {
	cfg, _, err := w.load()
	if err != nil {
		return err
	}
	apply(cfg)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	// editors often replace the file, so the directory is watched
	path := filepath.Clean(w.Path)
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch '%s': %w", path, err)
	}

	w.Infof("watching '%s'", path)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != path || event.Op == fsnotify.Chmod {
				continue
			}
			w.Debugf("event %s on '%s'", event.Op, event.Name)
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.Warningf("watch error: %v", err)
		case <-timer.C:
			cfg, changed, err := w.load()
			if err != nil {
				w.Errorf("reload failed, keeping the previous configuration: %v", err)
				continue
			}
			if !changed {
				w.Debug("configuration content unchanged")
				continue
			}
			w.Info("configuration reloaded")
			apply(cfg)
		}
	}
}

func (w *Watcher) load() (*Config, bool, error) {
	bs, err := os.ReadFile(w.Path)
	if err != nil {
		return nil, false, err
	}

	sum := xxhash.Sum64(bs)
	if sum == w.lastHash && w.lastHash != 0 {
		return nil, false, nil
	}

	cfg, err := Parse(bs)
	if err != nil {
		return nil, false, fmt.Errorf("'%s': %w", w.Path, err)
	}
	w.lastHash = sum

	return cfg, true, nil
}
