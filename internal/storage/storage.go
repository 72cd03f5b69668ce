// Package storage persists a habit.Collection between runs.
//
// The whole collection is the unit of persistence: Load reads everything,
// Save replaces everything. Two backends exist, a JSON file (default) and a
// SQLite database, chosen by configuration.
package storage

import (
	"fmt"
	"time"

	"github.com/HendryAvila/habits/internal/config"
	"github.com/HendryAvila/habits/internal/habit"
	"go.uber.org/zap"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// Store defines the persistence interface for the habit collection.
// Abstracted so the shell and the MCP tools never see the backend.
type Store interface {
	// Load returns the stored collection. Missing data yields an empty
	// collection; malformed data yields a *StorageError.
	Load() (*habit.Collection, error)
	// Save replaces the stored data with c.
	Save(c *habit.Collection) error
	// Reset moves the current data aside and returns where it went. An
	// absent data file returns "" and no error.
	Reset() (string, error)
	// Path is the data file location.
	Path() string
	Close() error
}

// StorageError reports data that could not be read or written. The stored
// data is left untouched.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Open returns the store selected by cfg.Backend.
func Open(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.DataFile(), logger), nil
	case config.BackendJSON, "":
		return NewJSONStore(cfg.DataFile(), logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// record is the persisted shape of one habit, shared by both backends.
type record struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Periodicity habit.Periodicity `json:"periodicity"`
	CreatedAt   time.Time         `json:"created_at"`
	Completions []time.Time       `json:"completions"`
}

func toRecords(c *habit.Collection) []record {
	hs := c.Habits()
	out := make([]record, len(hs))
	for i, h := range hs {
		out[i] = record{
			ID:          h.ID(),
			Name:        h.Name(),
			Periodicity: h.Periodicity(),
			CreatedAt:   h.CreatedAt(),
			Completions: h.Completions(),
		}
	}
	return out
}

// fromRecords rebuilds a collection, enforcing every habit and collection
// invariant.
func fromRecords(recs []record) (*habit.Collection, error) {
	hs := make([]*habit.Habit, 0, len(recs))
	for i, r := range recs {
		h, err := habit.Restore(r.ID, r.Name, r.Periodicity, r.CreatedAt, r.Completions)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		hs = append(hs, h)
	}
	return habit.NewCollection(hs...)
}

// backupPath returns the location a corrupt data file is moved to.
func backupPath(path string) string {
	return path + ".corrupt-" + timeNow().UTC().Format("20060102T150405Z")
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
