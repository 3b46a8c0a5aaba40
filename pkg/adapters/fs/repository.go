// Package fs implements core.KeyValue on the local filesystem: one file per
// key inside a data directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/thoughts/pkg/core"
)

// Repository implements core.KeyValue using files named <key><ext>.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	written       map[string][32]byte // last checksum we wrote, per file
	watcherActive bool
	lastWrite     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	MustExist bool
	Extension string // e.g. ".json"; defaults to ".json"
	ReadOnly  bool
	Logger    *slog.Logger
	// ErrorHandler receives runtime errors from the watch loop.
	ErrorHandler func(error)
	// Debounce coalesces bursts of filesystem events. Zero means 50ms.
	Debounce time.Duration
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Extension == "" {
		config.Extension = ".json"
	}
	if !strings.HasPrefix(config.Extension, ".") {
		config.Extension = "." + config.Extension
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	if config.Debounce == 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Repository{
		Path:    config.Path,
		config:  config,
		written: make(map[string][32]byte),
	}
}

// Initialize ensures the data directory exists.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			if r.config.ReadOnly {
				// Nothing stored yet; reads will report the key as absent.
				return nil
			}
			return fmt.Errorf("data directory does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// FilePath returns the file backing key.
func (r *Repository) FilePath(key string) string {
	return filepath.Join(r.Path, key+r.config.Extension)
}

// Get reads the value stored under key.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(r.FilePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set atomically overwrites the value stored under key.
func (r *Repository) Set(ctx context.Context, key string, value []byte) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	filename := r.FilePath(key)
	sum, err := writeFileAtomic(filename, value, 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	now := time.Now()
	r.mu.Lock()
	r.written[filename] = sum
	r.lastWrite = &now
	r.mu.Unlock()

	r.config.Logger.Debug("wrote key", "key", key, "path", filename, "bytes", len(value))
	return nil
}

// ownWrite reports whether filename still holds exactly what we last wrote.
func (r *Repository) ownWrite(filename string) bool {
	r.mu.RLock()
	want, ok := r.written[filename]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	got, err := checksumFile(filename)
	if err != nil {
		return false
	}
	return got == want
}

// keyFor maps a path inside the data directory back to its key.
func (r *Repository) keyFor(path string) (string, bool) {
	rel, err := filepath.Rel(r.Path, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	if filepath.Ext(rel) != r.config.Extension {
		return "", false
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), r.config.Extension), true
}

func validateKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

var (
	_ core.KeyValue    = (*Repository)(nil)
	_ core.Initializer = (*Repository)(nil)
	_ core.Watchable   = (*Repository)(nil)
)
