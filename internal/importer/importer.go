// Package importer owns the auto-import run loop: it watches the drop
// directory, debounces file-change bursts, and runs ingestion passes that
// turn candidate image groups into persisted listings.
package importer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/patrickmn/go-cache"

	"github.com/solerack/solerack/internal/conf"
	"github.com/solerack/solerack/internal/converter"
	"github.com/solerack/solerack/internal/datastore"
	"github.com/solerack/solerack/internal/errors"
	"github.com/solerack/solerack/internal/imagefile"
	"github.com/solerack/solerack/internal/ledger"
	"github.com/solerack/solerack/internal/logging"
	"github.com/solerack/solerack/internal/telemetry"
)

// candidateCacheTTL bounds how long a match-candidate query result is reused
// within a single ingestion pass. The cache is flushed at the start of every
// pass anyway; the TTL is a backstop.
const candidateCacheTTL = time.Minute

// Importer runs ingestion passes over the drop directory. Exactly one pass
// is active at a time; triggers arriving while a pass runs are dropped.
type Importer struct {
	settings *conf.Settings
	store    datastore.Interface
	ledger   *ledger.Ledger
	conv     *converter.Converter
	metrics  *telemetry.Metrics
	logger   *slog.Logger

	// running is the run-exclusion lock: true exactly while a pass executes.
	running atomic.Bool

	// Per-filename debounce timers, replaced when a file changes again
	// before its quiet period elapses.
	timersMu sync.Mutex
	timers   map[string]*time.Timer

	// Match-candidate query cache, scoped to one pass.
	candidates *cache.Cache

	// now and sleep are overridable for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// New creates an Importer. metrics may be nil when telemetry is disabled.
func New(settings *conf.Settings, store datastore.Interface, ldg *ledger.Ledger, conv *converter.Converter, metrics *telemetry.Metrics) *Importer {
	return &Importer{
		settings:   settings,
		store:      store,
		ledger:     ldg,
		conv:       conv,
		metrics:    metrics,
		logger:     logging.ForService("import"),
		timers:     make(map[string]*time.Timer),
		candidates: cache.New(candidateCacheTTL, 2*candidateCacheTTL),
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

// Start ensures the drop and upload directories exist, runs an initial
// ingestion pass, and then blocks serving watch events and the periodic
// backstop ticker until ctx is cancelled.
func (imp *Importer) Start(ctx context.Context) error {
	if err := imp.ensureDirectories(); err != nil {
		return err
	}

	// Process anything already sitting in the drop directory.
	if err := imp.Run(ctx); err != nil {
		imp.logger.Error("Initial ingestion pass failed", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "create-watcher").
			Build()
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(imp.settings.Import.DropDir); err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "watch-drop-directory").
			Context("dir", imp.settings.Import.DropDir).
			Build()
	}

	imp.logger.Info("Auto-import service started",
		"dir", imp.settings.Import.DropDir,
		"interval", imp.settings.Import.Interval,
		"settle", imp.settings.Import.Settle)

	ticker := time.NewTicker(imp.settings.Import.Interval)
	defer ticker.Stop()
	defer imp.stopTimers()

	for {
		select {
		case <-ctx.Done():
			imp.logger.Info("Auto-import service stopping")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			imp.handleEvent(ctx, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			imp.logger.Warn("File watcher error", "error", err)

		case <-ticker.C:
			// Backstop in case the watcher missed an event.
			imp.trigger(ctx)
		}
	}
}

// handleEvent resets the debounce timer for a changed image file. The scan
// fires only after the file has been quiet for the settle period, so a burst
// of copies coalesces into one pass.
func (imp *Importer) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	filename := filepath.Base(event.Name)
	if !imagefile.IsImageFile(filename) {
		return
	}

	imp.timersMu.Lock()
	defer imp.timersMu.Unlock()

	if old, ok := imp.timers[filename]; ok {
		old.Stop()
	}

	imp.timers[filename] = time.AfterFunc(imp.settings.Import.Settle, func() {
		imp.timersMu.Lock()
		delete(imp.timers, filename)
		imp.timersMu.Unlock()
		imp.trigger(ctx)
	})
}

// trigger starts an ingestion pass unless imports are disabled or a pass is
// already running, in which case the trigger is dropped.
func (imp *Importer) trigger(ctx context.Context) {
	if !imp.settings.Import.Enabled {
		return
	}
	if err := imp.Run(ctx); err != nil {
		imp.logger.Error("Ingestion pass failed", "error", err)
	}
}

func (imp *Importer) stopTimers() {
	imp.timersMu.Lock()
	defer imp.timersMu.Unlock()
	for filename, timer := range imp.timers {
		timer.Stop()
		delete(imp.timers, filename)
	}
}

func (imp *Importer) ensureDirectories() error {
	for _, dir := range []string{imp.settings.Import.DropDir, imp.settings.Import.UploadDir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.New(err).
					Category(errors.CategoryFileIO).
					Context("operation", "create-directory").
					Context("dir", dir).
					Build()
			}
			imp.logger.Info("Created directory", "dir", dir)
		}
	}
	return nil
}
