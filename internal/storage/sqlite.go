package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/HendryAvila/habits/internal/habit"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLiteStore implements Store on a SQLite database. The connection is
// opened lazily so a file that is not a database surfaces as a
// *StorageError from Load, where the caller can choose to Reset.
type SQLiteStore struct {
	path   string
	logger *zap.Logger
	db     *sql.DB
}

// NewSQLiteStore creates a store backed by the database at path.
func NewSQLiteStore(path string, logger *zap.Logger) *SQLiteStore {
	return &SQLiteStore{path: path, logger: orNop(logger)}
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the underlying database connection, if open.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) conn() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := openDB("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration: %w", err)
	}

	s.db = db
	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS habits (
			id          TEXT    PRIMARY KEY,
			name        TEXT    NOT NULL UNIQUE,
			periodicity TEXT    NOT NULL CHECK (periodicity IN ('daily', 'weekly')),
			created_at  TEXT    NOT NULL,
			position    INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS completions (
			habit_id     TEXT    NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
			seq          INTEGER NOT NULL,
			completed_at TEXT    NOT NULL,
			PRIMARY KEY (habit_id, seq)
		);
	`)
	return err
}

// Load reads every habit in insertion order with its completions.
func (s *SQLiteStore) Load() (*habit.Collection, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("database absent, starting empty", zap.String("path", s.path))
		return habit.NewCollection()
	}

	db, err := s.conn()
	if err != nil {
		s.logger.Error("opening database failed", zap.String("path", s.path), zap.Error(err))
		return nil, &StorageError{Op: "load", Path: s.path, Err: err}
	}

	recs, err := loadRecords(db)
	if err != nil {
		s.logger.Error("reading habits failed", zap.String("path", s.path), zap.Error(err))
		return nil, &StorageError{Op: "load", Path: s.path, Err: err}
	}

	c, err := fromRecords(recs)
	if err != nil {
		s.logger.Error("invalid habit data", zap.String("path", s.path), zap.Error(err))
		return nil, &StorageError{Op: "load", Path: s.path, Err: err}
	}

	s.logger.Debug("loaded habits", zap.String("path", s.path), zap.Int("count", c.Len()))
	return c, nil
}

func loadRecords(db *sql.DB) ([]record, error) {
	rows, err := db.Query(`SELECT id, name, periodicity, created_at FROM habits ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	defer rows.Close()

	var recs []record
	index := make(map[string]int)
	for rows.Next() {
		var r record
		var created string
		if err := rows.Scan(&r.ID, &r.Name, &r.Periodicity, &created); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("habit %q created_at: %w", r.Name, err)
		}
		r.Completions = []time.Time{}
		index[r.ID] = len(recs)
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := db.Query(`SELECT habit_id, completed_at FROM completions ORDER BY habit_id, seq`)
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var id, at string
		if err := crows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("completion for %s: %w", id, err)
		}
		i, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("completion references unknown habit %s", id)
		}
		recs[i].Completions = append(recs[i].Completions, ts)
	}
	return recs, crows.Err()
}

// Save replaces the table contents inside a single transaction.
func (s *SQLiteStore) Save(c *habit.Collection) error {
	db, err := s.conn()
	if err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}

	if err := saveRecords(db, toRecords(c)); err != nil {
		s.logger.Error("saving habits failed", zap.String("path", s.path), zap.Error(err))
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}

	s.logger.Debug("saved habits", zap.String("path", s.path), zap.Int("count", c.Len()))
	return nil
}

func saveRecords(db *sql.DB, recs []record) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM completions`); err != nil {
		return fmt.Errorf("clear completions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM habits`); err != nil {
		return fmt.Errorf("clear habits: %w", err)
	}

	for pos, r := range recs {
		if _, err := tx.Exec(
			`INSERT INTO habits (id, name, periodicity, created_at, position) VALUES (?, ?, ?, ?, ?)`,
			r.ID, r.Name, string(r.Periodicity), r.CreatedAt.Format(time.RFC3339Nano), pos,
		); err != nil {
			return fmt.Errorf("insert habit %q: %w", r.Name, err)
		}
		for seq, ts := range r.Completions {
			if _, err := tx.Exec(
				`INSERT INTO completions (habit_id, seq, completed_at) VALUES (?, ?, ?)`,
				r.ID, seq, ts.Format(time.RFC3339Nano),
			); err != nil {
				return fmt.Errorf("insert completion for %q: %w", r.Name, err)
			}
		}
	}

	return tx.Commit()
}

// Reset closes the database and renames it, with its WAL sidecars, to
// <path>.corrupt-<timestamp>.
func (s *SQLiteStore) Reset() (string, error) {
	if err := s.Close(); err != nil {
		s.logger.Warn("closing database before reset", zap.Error(err))
	}
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	dst := backupPath(s.path)
	if err := os.Rename(s.path, dst); err != nil {
		return "", &StorageError{Op: "reset", Path: s.path, Err: err}
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if _, err := os.Stat(s.path + suffix); err == nil {
			_ = os.Rename(s.path+suffix, dst+suffix)
		}
	}

	s.logger.Info("moved database aside", zap.String("path", s.path), zap.String("backup", dst))
	return dst, nil
}
