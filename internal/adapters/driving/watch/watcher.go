// Package watch ingests purchase workbooks as they appear in a
// directory. It is a driving adapter: fsnotify events in, calls on the
// ingest port out.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/gnum-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gnum-cli/internal/logger"
)

// defaultSettle is how long a file must stay quiet before it is
// ingested. Workbooks copied into the directory arrive as several
// write events; ingesting a half-copied file would read a corrupt
// archive.
const defaultSettle = 2 * time.Second

// Watcher ingests .xlsx files created or updated under one directory.
type Watcher struct {
	dir    string
	ingest driving.IngestService
	settle time.Duration
}

// New creates a watcher for dir.
func New(dir string, ingest driving.IngestService) *Watcher {
	return &Watcher{dir: dir, ingest: ingest, settle: defaultSettle}
}

// Run watches until ctx is cancelled. Per-file ingest failures are
// logged and watching continues; only a watcher-level failure returns
// an error.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for workbooks", w.dir)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.settle / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !isWorkbook(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case now := <-ticker.C:
			var ready []string
			for path, last := range pending {
				if now.Sub(last) >= w.settle {
					ready = append(ready, path)
					delete(pending, path)
				}
			}
			if len(ready) == 0 {
				continue
			}

			summary, err := w.ingest.IngestFiles(ctx, ready)
			if err != nil {
				logger.Warn("Ingest failed for %v: %v", ready, err)
				continue
			}
			logger.Info("Ingested %d row(s) from %d new file(s)", summary.Imported, len(ready))
			for _, f := range summary.Failures {
				logger.Warn("Failed document %s: %s", f.Source, f.Reason)
			}
		}
	}
}

// isWorkbook reports whether path looks like a purchase workbook.
// Excel lock files ("~$...") are skipped.
func isWorkbook(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".xlsx")
}
