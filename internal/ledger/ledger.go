// Package ledger tracks which source image filenames have already been
// ingested. The set is persisted as a small JSON document so it survives
// process restarts; losing the backing file only causes files to be
// re-scanned, never lost.
package ledger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/solerack/solerack/internal/errors"
	"github.com/solerack/solerack/internal/logging"
)

// fileFormat is the on-disk shape of the ledger.
type fileFormat struct {
	Processed   []string  `json:"processed"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Ledger is a durable, additive set of processed filenames.
type Ledger struct {
	mu        sync.Mutex
	path      string
	processed map[string]struct{}
	logger    *slog.Logger
}

// New creates a ledger backed by the given file path and loads any existing
// state. A missing or corrupt backing file is treated as an empty set.
func New(path string) *Ledger {
	l := &Ledger{
		path:      path,
		processed: make(map[string]struct{}),
		logger:    logging.ForService("ledger"),
	}
	l.load()
	return l
}

func (l *Ledger) load() {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn("Failed to read ledger file, starting empty", "path", l.path, "error", err)
		}
		return
	}

	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		l.logger.Warn("Ledger file is corrupt, starting empty", "path", l.path, "error", err)
		return
	}

	for _, f := range ff.Processed {
		l.processed[f] = struct{}{}
	}
	l.logger.Info("Loaded processed files from ledger", "count", len(l.processed))
}

// IsProcessed reports whether the filename has already been ingested.
func (l *Ledger) IsProcessed(filename string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.processed[filename]
	return ok
}

// MarkProcessed adds the filenames to the set and persists synchronously.
// It must only be called after the corresponding persistence step succeeded:
// re-processing a file is idempotent-safe, losing track of one is not.
func (l *Ledger) MarkProcessed(filenames []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, f := range filenames {
		l.processed[f] = struct{}{}
	}
	return l.persist()
}

// Size returns the number of filenames in the set.
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.processed)
}

// Reset clears the set and removes the backing file. Test use only.
func (l *Ledger) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.processed = make(map[string]struct{})
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("path", l.path).
			Build()
	}
	return nil
}

// persist writes the set through a temp file and rename. Caller holds the lock.
func (l *Ledger) persist() error {
	ff := fileFormat{
		Processed:   make([]string, 0, len(l.processed)),
		LastUpdated: time.Now(),
	}
	for f := range l.processed {
		ff.Processed = append(ff.Processed, f)
	}

	data, err := json.MarshalIndent(&ff, "", "  ")
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "marshal-ledger").
			Build()
	}

	dir := filepath.Dir(l.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(err).
				Category(errors.CategoryFileIO).
				Context("operation", "create-ledger-directory").
				Build()
		}
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "create-ledger-tempfile").
			Build()
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "write-ledger").
			Build()
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "close-ledger-tempfile").
			Build()
	}

	if err := os.Rename(tmpName, l.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "replace-ledger").
			Build()
	}

	return nil
}
