package repository

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// CatalogWatcher reloads a catalog file into a CatalogMemory whenever the
// file is written or recreated. A file that fails to load leaves the previous
// listings in place.
type CatalogWatcher struct {
	path    string
	catalog *CatalogMemory
	log     *slog.Logger
	watcher *fsnotify.Watcher
}

// NewCatalogWatcher watches the directory holding path, since editors often
// replace files instead of writing them in place.
func NewCatalogWatcher(path string, catalog *CatalogMemory, log *slog.Logger) (*CatalogWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &CatalogWatcher{
		path:    abs,
		catalog: catalog,
		log:     log,
		watcher: watcher,
	}, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *CatalogWatcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("catalog watcher error", "err", err)
		}
	}
}

func (w *CatalogWatcher) reload() {
	vehicles, err := LoadCatalogFile(w.path)
	if err != nil {
		w.log.Warn("catalog reload skipped", "path", w.path, "err", err)
		return
	}
	w.catalog.Replace(vehicles)
	w.log.Info("catalog reloaded", "path", w.path, "vehicles", len(vehicles))
}
