package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HendryAvila/habits/internal/habit"
	"go.uber.org/zap"
)

// JSONStore implements Store as a single indented JSON array on disk.
type JSONStore struct {
	path   string
	logger *zap.Logger
}

// NewJSONStore creates a store backed by the file at path. The file and its
// directory are created on the first Save.
func NewJSONStore(path string, logger *zap.Logger) *JSONStore {
	return &JSONStore{path: path, logger: orNop(logger)}
}

// Path returns the data file location.
func (s *JSONStore) Path() string { return s.path }

// Close is a no-op; the file is only open during Load and Save.
func (s *JSONStore) Close() error { return nil }

// Load reads the collection. A missing or blank file is an empty collection.
func (s *JSONStore) Load() (*habit.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("data file absent, starting empty", zap.String("path", s.path))
			return habit.NewCollection()
		}
		return nil, &StorageError{Op: "load", Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return habit.NewCollection()
	}

	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		s.logger.Error("malformed data file", zap.String("path", s.path), zap.Error(err))
		return nil, &StorageError{Op: "load", Path: s.path, Err: fmt.Errorf("parsing habits: %w", err)}
	}

	c, err := fromRecords(recs)
	if err != nil {
		s.logger.Error("invalid habit data", zap.String("path", s.path), zap.Error(err))
		return nil, &StorageError{Op: "load", Path: s.path, Err: err}
	}

	s.logger.Debug("loaded habits", zap.String("path", s.path), zap.Int("count", c.Len()))
	return c, nil
}

// Save writes the collection atomically: a temp file in the same directory
// is synced and renamed over the target.
func (s *JSONStore) Save(c *habit.Collection) error {
	data, err := json.MarshalIndent(toRecords(c), "", "  ")
	if err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: fmt.Errorf("marshaling habits: %w", err)}
	}
	data = append(data, '\n')

	if err := writeAtomic(s.path, data); err != nil {
		s.logger.Error("saving habits failed", zap.String("path", s.path), zap.Error(err))
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}

	s.logger.Debug("saved habits", zap.String("path", s.path), zap.Int("count", c.Len()))
	return nil
}

// Reset renames the data file to <path>.corrupt-<timestamp>.
func (s *JSONStore) Reset() (string, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	dst := backupPath(s.path)
	if err := os.Rename(s.path, dst); err != nil {
		return "", &StorageError{Op: "reset", Path: s.path, Err: err}
	}
	s.logger.Info("moved data file aside", zap.String("path", s.path), zap.String("backup", dst))
	return dst, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}
