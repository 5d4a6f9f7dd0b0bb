package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("store: not found")

// Store owns the SQLite handle and hands out repositories.
// Writes from every repository are serialized through a single mutex.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	mu  sync.Mutex
}

// Open connects to the SQLite database at dsn, applies pragmas and
// creates any missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withConnPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := New(db)
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return s, nil
}

// New wraps an already opened database without migrating it.
func New(db *sql.DB) *Store {
	return &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db)}
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Attempts returns the attempt repository.
func (s *Store) Attempts() AttemptRepo {
	return &attemptRepo{store: s}
}

// Tracking returns the syllabus tracking repository.
func (s *Store) Tracking() TrackingRepo {
	return &trackingRepo{store: s}
}

// Usage returns the study-time and streak repository.
func (s *Store) Usage() UsageRepo {
	return &usageRepo{store: s}
}

// Preferences returns the key/value settings repository.
func (s *Store) Preferences() PreferenceRepo {
	return &preferenceRepo{store: s}
}

// Activity returns the activity feed repository.
func (s *Store) Activity() ActivityRepo {
	return &activityRepo{store: s}
}

// Reset deletes all user data while keeping the schema.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	for _, t := range Tables {
		query, args := entsql.Dialect(dialect.SQLite).Delete(t.Name).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("clear %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

// exec runs a write statement under the store's write lock.
func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.ExecContext(ctx, query, args...)
}

// withConnPragmas adds per-connection pragmas to the DSN so that every
// pooled connection gets them, not only the first one.
func withConnPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. PREPIZ_DB environment variable
// 2. $XDG_DATA_HOME/prepiz/prepiz.db
// 3. ~/.local/share/prepiz/prepiz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("PREPIZ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "prepiz", "prepiz.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
