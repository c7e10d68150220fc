package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"builders-panel/config"
	"builders-panel/pkg/log"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations.sql
var migrations string

var (
	instance *sql.DB
	mu       sync.RWMutex
)

func isMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}

// Open opens the database file, creating its directory, and applies the schema when
// cfg.Migrate is set. The pool holds a single connection so in-memory databases survive.
func Open(ctx context.Context, cfg config.SQLiteConfig) (*sql.DB, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if !isMemory(cfg.Path) {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if cfg.BusyTimeout > 0 {
		_, _ = db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()))
	}
	if !isMemory(cfg.Path) {
		_, _ = db.ExecContext(ctx, "PRAGMA journal_mode = WAL")
	}

	if cfg.Migrate {
		if _, err := db.ExecContext(ctx, migrations); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate SQLite database: %w", err)
		}
	}
	return db, nil
}

// Connect opens the shared database once. It returns the existing instance when already connected.
func Connect(ctx context.Context, l log.Logger, cfg config.SQLiteConfig) (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	db, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	instance = db
	l.Infof(ctx, "config.sqlite.Connect: opened %s", cfg.Path)
	return instance, nil
}

// Disconnect closes the shared database and allows Connect to be called again.
func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil
	}
	if err := instance.Close(); err != nil {
		return fmt.Errorf("failed to close SQLite database: %w", err)
	}
	instance = nil
	return nil
}

// HealthCheck pings the shared database.
func HealthCheck(ctx context.Context) error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return fmt.Errorf("SQLite database not initialized")
	}
	return instance.PingContext(ctx)
}
