// Package sqlite implements core.KeyValue on a single-table SQLite database
// using the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	_ "modernc.org/sqlite"

	"github.com/aretw0/thoughts/pkg/core"
)

// DefaultFilename is the database file created inside the data directory.
const DefaultFilename = "thoughts.db"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Config holds the configuration for the SQLite repository.
type Config struct {
	Dir       string
	Filename  string // defaults to DefaultFilename
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
}

// Repository implements core.KeyValue on SQLite.
type Repository struct {
	config Config
	path   string

	mu        sync.RWMutex
	db        *sql.DB
	missing   bool // read-only and no database file
	lastWrite *time.Time
}

// NewRepository creates a repository. Call Initialize before use.
func NewRepository(config Config) *Repository {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{
		config: config,
		path:   filepath.Join(config.Dir, config.Filename),
	}
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// Initialize opens the database and applies the schema. In read-only mode
// the file is opened with mode=ro and never created; a missing file reads
// as an empty store.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.ReadOnly {
		return r.openReadOnly(ctx)
	}
	if r.config.MustExist {
		if _, err := os.Stat(r.config.Dir); err != nil {
			return fmt.Errorf("data directory does not exist: %s", r.config.Dir)
		}
	} else if err := os.MkdirAll(r.config.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", r.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	r.mu.Lock()
	r.db = db
	r.mu.Unlock()

	r.config.Logger.Debug("sqlite store ready", "path", r.path)
	return nil
}

func (r *Repository) openReadOnly(ctx context.Context) error {
	if _, err := os.Stat(r.path); errors.Is(err, os.ErrNotExist) {
		r.mu.Lock()
		r.missing = true
		r.mu.Unlock()
		r.config.Logger.Debug("sqlite store missing, reading as empty", "path", r.path)
		return nil
	}

	db, err := sql.Open("sqlite", "file:"+r.path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to open database: %w", err)
	}

	r.mu.Lock()
	r.db = db
	r.mu.Unlock()

	r.config.Logger.Debug("sqlite store ready (read-only)", "path", r.path)
	return nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Repository) handle() (*sql.DB, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.missing {
		return nil, nil
	}
	if r.db == nil {
		return nil, errors.New("sqlite repository is not initialized")
	}
	return r.db, nil
}

// Get reads the value stored under key.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db, err := r.handle()
	if err != nil {
		return nil, false, err
	}
	if db == nil {
		return nil, false, nil
	}

	var value []byte
	err = db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Set overwrites the value stored under key.
func (r *Repository) Set(ctx context.Context, key string, value []byte) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	db, err := r.handle()
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	r.mu.Lock()
	r.lastWrite = &now
	r.mu.Unlock()
	return nil
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path      string     `json:"path"`
	Open      bool       `json:"open"`
	ReadOnly  bool       `json:"read_only"`
	LastWrite *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RepositoryState{
		Path:      r.path,
		Open:      r.db != nil,
		ReadOnly:  r.config.ReadOnly,
		LastWrite: r.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite"
}

var (
	_ core.KeyValue                = (*Repository)(nil)
	_ core.Initializer             = (*Repository)(nil)
	_ introspection.Introspectable = (*Repository)(nil)
	_ introspection.Component      = (*Repository)(nil)
)
